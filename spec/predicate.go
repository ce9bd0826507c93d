package spec

import (
	"fmt"
	"reflect"
	"regexp"

	"specgo.dev/go/spec/internal/genrand"
	"specgo.dev/go/spec/internal/regexop"
	"specgo.dev/go/spec/internal/sentinel"
	"specgo.dev/go/spec/internal/shapeeq"
)

// Set is a value-enumeration predicate (§4.1): it conforms a value iff the
// value is one of its members, via the member itself (no transformation).
type Set []any

func NewSet(members ...any) Set { return Set(members) }

// Contains reports whether v is a member of s.
func (s Set) Contains(v any) bool {
	for _, m := range s {
		if shapeeq.Equal(m, v) {
			return true
		}
	}
	return false
}

// OfType returns a predicate matching any value whose dynamic type is
// identical to sample's, for use with Predicate (the Go analogue of a
// class/type predicate: spec.Def("foo/n", spec.OfType(0))).
func OfType(sample any) func(any) bool {
	t := reflect.TypeOf(sample)
	return func(v any) bool {
		return v != nil && reflect.TypeOf(v) == t
	}
}

// Predicate wraps a bare predicate value as a Spec (§4.1): a func(any)
// bool, any other single-argument bool-returning func (matched via
// reflection so typed predicates like func(n int) bool work directly), a
// *regexp.Regexp (full-string match), or a Set.
func Predicate(pred any) Spec {
	conform, raw := compilePredicate(pred)
	var def genrand.Gen
	if s, ok := pred.(Set); ok && len(s) > 0 {
		vals := append([]any(nil), []any(s)...)
		def = func(r genrand.Rand, size int) (any, bool) { return r.Choose(vals...), true }
	}
	return &predicateSpec{conformFn: conform, raw: raw, defaultGen: def}
}

func compilePredicate(pred any) (conform func(any) any, raw any) {
	switch p := pred.(type) {
	case func(any) bool:
		return func(v any) any {
			if p(v) {
				return v
			}
			return sentinel.Invalid
		}, pred
	case *regexp.Regexp:
		return func(v any) any {
			s, ok := v.(string)
			if !ok {
				return sentinel.Invalid
			}
			if fullyMatches(p, s) {
				return v
			}
			return sentinel.Invalid
		}, pred
	case Set:
		return func(v any) any {
			if p.Contains(v) {
				return v
			}
			return sentinel.Invalid
		}, pred
	default:
		rv := reflect.ValueOf(pred)
		if rv.Kind() == reflect.Func && rv.Type().NumIn() == 1 && rv.Type().NumOut() == 1 && rv.Type().Out(0).Kind() == reflect.Bool {
			inT := rv.Type().In(0)
			return func(v any) any {
				if v == nil {
					return sentinel.Invalid
				}
				vv := reflect.ValueOf(v)
				if !vv.Type().AssignableTo(inT) {
					return sentinel.Invalid
				}
				out := rv.Call([]reflect.Value{vv})
				if out[0].Bool() {
					return v
				}
				return sentinel.Invalid
			}, pred
		}
		panic(&InvalidSpecError{Msg: fmt.Sprintf("%#v is not a predicate, regexp or set", pred)})
	}
}

func fullyMatches(p *regexp.Regexp, s string) bool {
	loc := p.FindStringIndex(s)
	return loc != nil && loc[0] == 0 && loc[1] == len(s)
}

type predicateSpec struct {
	conformFn  func(any) any
	raw        any
	defaultGen genrand.Gen
}

func (p *predicateSpec) conform(v any) any {
	result, _ := p.callConform(v)
	return result
}

// callConform runs conformFn with panic recovery: a predicate that raises
// is treated as a failing predicate, and the recovered value is captured
// as a reason rather than propagating to the caller (§7).
func (p *predicateSpec) callConform(v any) (result any, reason string) {
	defer func() {
		if r := recover(); r != nil {
			result = sentinel.Invalid
			reason = fmt.Sprintf("panicked: %v", r)
		}
	}()
	return p.conformFn(v), ""
}

func (p *predicateSpec) unform(v any) any { return v }

func (p *predicateSpec) explain(path []any, via []string, in []any, v any) []Problem {
	result, reason := p.callConform(v)
	if sentinel.IsInvalid(result) {
		return []Problem{{Path: path, Pred: p.raw, Val: v, Reason: reason, Via: via, In: in}}
	}
	return nil
}

func (p *predicateSpec) gen(overrides map[string]genrand.Gen, path []any, rmap *regexop.RMap) genrand.Gen {
	if g, ok := overrideFor(overrides, path); ok {
		return g
	}
	return p.defaultGen
}
