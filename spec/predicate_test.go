package spec_test

import (
	"testing"

	"github.com/go-quicktest/qt"

	"specgo.dev/go/spec"
)

func TestPredicatePanicBecomesProblem(t *testing.T) {
	s := spec.Predicate(func(v any) bool {
		n := v.(int) // panics for non-int input
		return n > 0
	})
	qt.Assert(t, qt.IsTrue(spec.IsInvalid(spec.Conform(s, "not an int"))))

	probs := spec.ExplainData(s, "not an int")
	qt.Assert(t, qt.Equals(len(probs), 1))
	qt.Assert(t, qt.Not(qt.Equals(probs[0].Reason, "")))
}

func TestPredicateSucceedsWithoutPanicking(t *testing.T) {
	s := spec.Predicate(func(v any) bool { n, ok := v.(int); return ok && n > 0 })
	qt.Assert(t, qt.IsTrue(spec.Valid(s, 5)))
	qt.Assert(t, qt.IsNil(spec.ExplainData(s, 5)))
}
