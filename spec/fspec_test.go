package spec_test

import (
	"testing"

	"github.com/go-quicktest/qt"

	"specgo.dev/go/spec"
	"specgo.dev/go/spec/internal/genrand"
)

func TestFSpecConformChecksCallable(t *testing.T) {
	args := spec.AsSpec(spec.Cat("n", intSpec()))
	ret := intSpec()
	fs := spec.FSpec(args, ret)
	qt.Assert(t, qt.IsTrue(spec.Valid(fs, func(n int) int { return n + 1 })))
	qt.Assert(t, qt.IsTrue(spec.IsInvalid(spec.Conform(fs, 5))))
}

func smallNatSpec() spec.Spec {
	return spec.WithGen(
		spec.Predicate(func(v any) bool { n, ok := v.(int); return ok && n >= 0 && n < 100 }),
		func(r genrand.Rand, size int) (any, bool) { return r.Range(0, 99), true },
	)
}

func TestCheckFnFindsFailingReturn(t *testing.T) {
	args := spec.AsSpec(spec.Cat("n", smallNatSpec()))
	ret := spec.Predicate(func(v any) bool { n, ok := v.(int); return ok && n >= 0 })
	fs := spec.FSpec(args, ret)

	negate := func(n int) int { return -n }
	probs, err := spec.CheckFn(fs, negate, 50)
	qt.Assert(t, qt.IsNil(err))
	foundFailure := false
	for _, p := range probs {
		if p.Reason == "return value does not conform" {
			foundFailure = true
		}
	}
	qt.Assert(t, qt.IsTrue(foundFailure))
}

func TestFSpecConformRunsGenerativeTrials(t *testing.T) {
	args := spec.AsSpec(spec.Cat("n", smallNatSpec()))
	ret := spec.Predicate(func(v any) bool { n, ok := v.(int); return ok && n >= 0 })

	negate := func(n int) int { return -n }
	qt.Assert(t, qt.IsTrue(spec.IsInvalid(spec.Conform(spec.FSpec(args, ret), negate))))

	identity := func(n int) int { return n }
	qt.Assert(t, qt.IsTrue(spec.Valid(spec.FSpec(args, ret), identity)))
}

func TestFSpecBlockChecksCallbackArgument(t *testing.T) {
	cbArgs := spec.AsSpec(spec.Cat("x", intSpec()))
	cbRet := intSpec()
	blockSpec := spec.FSpec(cbArgs, cbRet)

	goodCb := func(x int) int { return x + 1 }
	badCb := func(x int) string { return "nope" }

	cbPred := spec.Predicate(func(v any) bool { return true })
	argsSpec := spec.WithGen(spec.AsSpec(spec.Cat("cb", cbPred)), func(r genrand.Rand, size int) (any, bool) {
		if r.Range(0, 1) == 0 {
			return []any{goodCb}, true
		}
		return []any{badCb}, true
	})

	fs := spec.FSpec(argsSpec, intSpec(), spec.Block(blockSpec))
	caller := func(cb any) int {
		if f, ok := cb.(func(int) int); ok {
			return f(1)
		}
		return 0
	}
	probs, err := spec.CheckFn(fs, caller, 50)
	qt.Assert(t, qt.IsNil(err))
	found := false
	for _, p := range probs {
		if p.Reason == "callback argument does not conform to block" {
			found = true
		}
	}
	qt.Assert(t, qt.IsTrue(found))
}
