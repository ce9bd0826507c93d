package spec

import (
	"fmt"
	"reflect"
	"time"

	"specgo.dev/go/spec/internal/genrand"
	"specgo.dev/go/spec/internal/regexop"
	"specgo.dev/go/spec/internal/sentinel"
)

// FSpecOption configures optional parts of an FSpec beyond args/ret.
type FSpecOption func(*fspecSpec)

// Block attaches an fspec describing a callback argument that the
// function under test receives: any func-valued argument produced by a
// trial is checked against blockSpec (§4.8).
func Block(blockSpec any) FSpecOption {
	return func(f *fspecSpec) { f.block = blockSpec }
}

// FnConstraint attaches a relation over {args, ret} that must hold for
// every trial, checked as Conform(constraint, map[string]any{"args": ...,
// "ret": ...}) (§4.8).
func FnConstraint(constraint any) FSpecOption {
	return func(f *fspecSpec) { f.fnConstraint = constraint }
}

// FSpec describes the calling contract of a function value: its argument
// list (typically a Cat/RegexOp boxed with AsSpec), its return value
// spec, and optionally a block sub-spec and an fn constraint (§4.8).
// conform(f) runs Cfg.FSpecIterations generative trials — generate args,
// call f, check ret, check any func-valued arg against block, check fn —
// and returns f unchanged only if every trial passes.
func FSpec(args, ret any, opts ...FSpecOption) Spec {
	fs := &fspecSpec{args: args, ret: ret}
	for _, o := range opts {
		o(fs)
	}
	return fs
}

type fspecSpec struct {
	args, ret, block, fnConstraint any
}

func (f *fspecSpec) conform(v any) any {
	if v == nil {
		return sentinel.Invalid
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Func {
		return sentinel.Invalid
	}
	probs, err := f.check(rv, Cfg.FSpecIterations)
	if err != nil || len(probs) > 0 {
		return sentinel.Invalid
	}
	return v
}

func (f *fspecSpec) unform(v any) any { return v }

func (f *fspecSpec) explain(path []any, via []string, in []any, v any) []Problem {
	if v == nil || reflect.ValueOf(v).Kind() != reflect.Func {
		return []Problem{{Path: path, Val: v, Reason: "not a function", Via: via, In: in}}
	}
	probs, err := f.check(reflect.ValueOf(v), Cfg.FSpecIterations)
	if err != nil {
		return []Problem{{Path: path, Val: v, Reason: err.Error(), Via: via, In: in}}
	}
	out := make([]Problem, len(probs))
	for i, p := range probs {
		out[i] = Problem{Path: path, Val: p.Val, Reason: p.Reason, Via: via, In: in}
	}
	return out
}

func (f *fspecSpec) gen(overrides map[string]genrand.Gen, path []any, rmap *regexop.RMap) genrand.Gen {
	g, _ := overrideFor(overrides, path)
	return g
}

// CheckFn generatively tests fn against fs (which must have been built
// with FSpec): it samples trials argument lists from fs's args spec,
// calls fn with each, and reports every trial whose return value fails
// ret, whose func-valued argument fails block, or whose (args, ret) pair
// fails the fn constraint (§4.8, §7).
func CheckFn(fs Spec, fn any, trials int) ([]Problem, error) {
	fsp, ok := fs.(*fspecSpec)
	if !ok {
		return nil, fmt.Errorf("spec: CheckFn requires a spec built with FSpec")
	}
	rv := reflect.ValueOf(fn)
	if fn == nil || rv.Kind() != reflect.Func {
		return nil, fmt.Errorf("spec: CheckFn: %#v is not a function", fn)
	}
	return fsp.check(rv, trials)
}

// check runs trials generative trials of rv against f's args/ret/block/fn
// sub-specs, collecting every problem found.
func (f *fspecSpec) check(rv reflect.Value, trials int) ([]Problem, error) {
	argsSp, _ := mustResolve(f.args)
	retSp, _ := mustResolve(f.ret)
	g := argsSp.gen(nil, nil, regexop.NewRMap(Cfg.RecursionLimit))
	if g == nil {
		return nil, &NoGenError{Spec: f.args}
	}
	rnd := genrand.NewDefault(uint64(time.Now().UnixNano()))
	var probs []Problem
	for i := 0; i < trials; i++ {
		argsVal, ok := g(rnd, 10)
		if !ok {
			continue
		}
		seq, _ := argsVal.([]any)
		in := make([]reflect.Value, len(seq))
		for j, a := range seq {
			in[j] = reflect.ValueOf(a)
		}
		probs = append(probs, f.runTrial(rv, retSp, seq, in)...)
	}
	return probs, nil
}

func (f *fspecSpec) checkBlockArgs(seq []any) []Problem {
	if f.block == nil {
		return nil
	}
	blockSp, _ := mustResolve(f.block)
	var probs []Problem
	for _, a := range seq {
		if a == nil || reflect.ValueOf(a).Kind() != reflect.Func {
			continue
		}
		if sentinel.IsInvalid(blockSp.conform(a)) {
			probs = append(probs, Problem{Val: a, Reason: "callback argument does not conform to block"})
		}
	}
	return probs
}

func (f *fspecSpec) runTrial(rv reflect.Value, retSp Spec, seq []any, in []reflect.Value) []Problem {
	if probs := f.checkBlockArgs(seq); len(probs) > 0 {
		return probs
	}
	var probs []Problem
	var retVal any
	func() {
		defer func() {
			if r := recover(); r != nil {
				probs = append(probs, Problem{Val: seq, Reason: fmt.Sprintf("panicked: %v", r)})
			}
		}()
		out := rv.Call(in)
		if len(out) > 0 {
			retVal = out[0].Interface()
		}
	}()
	if len(probs) > 0 {
		return probs
	}
	conformedRet := retSp.conform(retVal)
	if sentinel.IsInvalid(conformedRet) {
		return []Problem{{Val: retVal, Reason: "return value does not conform", In: seq}}
	}
	if f.fnConstraint != nil {
		constraintSp, _ := mustResolve(f.fnConstraint)
		pair := map[string]any{"args": seq, "ret": conformedRet}
		if sentinel.IsInvalid(constraintSp.conform(pair)) {
			return []Problem{{Val: pair, Reason: "fn constraint failed"}}
		}
	}
	return nil
}
