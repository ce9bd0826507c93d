package spec_test

import (
	"fmt"
	"testing"

	"github.com/go-quicktest/qt"

	"specgo.dev/go/spec"
)

func TestPredicateConformValid(t *testing.T) {
	spec.ResetRegistry()
	isEven := spec.Predicate(func(v any) bool {
		n, ok := v.(int)
		return ok && n%2 == 0
	})
	qt.Assert(t, qt.Equals(spec.Conform(isEven, 4), 4))
	qt.Assert(t, qt.IsTrue(spec.IsInvalid(spec.Conform(isEven, 3))))
}

func TestDefAndGet(t *testing.T) {
	spec.ResetRegistry()
	spec.Def("specgo.test/even", spec.Predicate(func(v any) bool {
		n, ok := v.(int)
		return ok && n%2 == 0
	}))
	qt.Assert(t, qt.IsTrue(spec.Valid("specgo.test/even", 2)))
	qt.Assert(t, qt.Not(qt.IsTrue(spec.Valid("specgo.test/even", 3))))
}

func TestDefAlias(t *testing.T) {
	spec.ResetRegistry()
	spec.Def("specgo.test/pos", spec.Predicate(func(v any) bool {
		n, ok := v.(int)
		return ok && n > 0
	}))
	spec.Def("specgo.test/positive-alias", "specgo.test/pos")
	qt.Assert(t, qt.IsTrue(spec.Valid("specgo.test/positive-alias", 1)))
	qt.Assert(t, qt.Not(qt.IsTrue(spec.Valid("specgo.test/positive-alias", -1))))
}

func TestAndThreadsConformedValue(t *testing.T) {
	toInt := spec.Conformer(
		func(v any) any {
			s, ok := v.(string)
			if !ok {
				return spec.INVALID
			}
			n := 0
			for _, c := range s {
				if c < '0' || c > '9' {
					return spec.INVALID
				}
				n = n*10 + int(c-'0')
			}
			return n
		},
		func(v any) any {
			n, _ := v.(int)
			return fmt.Sprintf("%d", n)
		},
	)
	positive := spec.Predicate(func(v any) bool { n, ok := v.(int); return ok && n > 0 })
	s := spec.And(toInt, positive)
	qt.Assert(t, qt.Equals(spec.Conform(s, "42"), 42))
	qt.Assert(t, qt.IsTrue(spec.IsInvalid(spec.Conform(s, "-1"))))
	qt.Assert(t, qt.IsTrue(spec.IsInvalid(spec.Conform(s, "abc"))))
}

func TestOrReturnsTaggedBranch(t *testing.T) {
	s := spec.Or(
		"s", spec.Predicate(func(v any) bool { _, ok := v.(string); return ok }),
		"n", spec.Predicate(func(v any) bool { _, ok := v.(int); return ok }),
	)
	got := spec.Conform(s, 7)
	qt.Assert(t, qt.DeepEquals(got, [2]any{"n", 7}))
}

func TestNilable(t *testing.T) {
	s := spec.Nilable(spec.Predicate(func(v any) bool { n, ok := v.(int); return ok && n > 0 }))
	qt.Assert(t, qt.Equals(spec.Conform(s, nil), nil))
	qt.Assert(t, qt.Equals(spec.Conform(s, 5), 5))
	qt.Assert(t, qt.IsTrue(spec.IsInvalid(spec.Conform(s, -5))))
}

func TestTuple(t *testing.T) {
	s := spec.Tuple(
		spec.Predicate(func(v any) bool { _, ok := v.(string); return ok }),
		spec.Predicate(func(v any) bool { n, ok := v.(int); return ok && n > 0 }),
	)
	got := spec.Conform(s, []any{"x", 3})
	qt.Assert(t, qt.DeepEquals(got, []any{"x", 3}))
	qt.Assert(t, qt.IsTrue(spec.IsInvalid(spec.Conform(s, []any{"x"}))))
}

func TestAssertPanicsOnInvalid(t *testing.T) {
	spec.Configure(func(c *spec.Config) { c.CheckAsserts = true })
	defer spec.ResetConfig()
	defer func() {
		r := recover()
		qt.Assert(t, qt.Not(qt.IsNil(r)))
	}()
	s := spec.Predicate(func(v any) bool { n, ok := v.(int); return ok && n > 0 })
	spec.Assert(s, -1)
}

func TestAssertIsNoOpByDefault(t *testing.T) {
	spec.ResetConfig()
	s := spec.Predicate(func(v any) bool { n, ok := v.(int); return ok && n > 0 })
	qt.Assert(t, qt.Equals(spec.Assert(s, -1), -1))
}
