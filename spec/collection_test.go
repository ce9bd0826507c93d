package spec_test

import (
	"math"
	"testing"

	"github.com/go-quicktest/qt"

	"specgo.dev/go/spec"
	"specgo.dev/go/spec/internal/genrand"
)

func intSpec() spec.Spec {
	return spec.WithGen(
		spec.Predicate(func(v any) bool { _, ok := v.(int); return ok }),
		func(r genrand.Rand, size int) (any, bool) { return r.Range(-1000, 1000), true },
	)
}

func TestEveryNonTransforming(t *testing.T) {
	s := spec.Every(intSpec())
	in := []any{1, 2, 3}
	got := spec.Conform(s, in)
	qt.Assert(t, qt.DeepEquals(got, in))
	qt.Assert(t, qt.IsTrue(spec.IsInvalid(spec.Conform(s, []any{1, "x"}))))
}

func TestEveryCountBounds(t *testing.T) {
	s := spec.Every(intSpec(), spec.MinCount(2), spec.MaxCount(3))
	qt.Assert(t, qt.IsTrue(spec.IsInvalid(spec.Conform(s, []any{1}))))
	qt.Assert(t, qt.IsTrue(spec.Valid(s, []any{1, 2})))
	qt.Assert(t, qt.IsTrue(spec.IsInvalid(spec.Conform(s, []any{1, 2, 3, 4}))))
}

func TestCollOfConformsElements(t *testing.T) {
	toStr := spec.Conformer(
		func(v any) any {
			n, ok := v.(int)
			if !ok {
				return spec.INVALID
			}
			return n * 2
		},
		func(v any) any { return v },
	)
	s := spec.CollOf(toStr)
	got := spec.Conform(s, []any{1, 2, 3})
	qt.Assert(t, qt.DeepEquals(got, []any{2, 4, 6}))
}

func TestCollOfDistinct(t *testing.T) {
	s := spec.CollOf(intSpec(), spec.DistinctElems())
	qt.Assert(t, qt.IsTrue(spec.Valid(s, []any{1, 2, 3})))
	qt.Assert(t, qt.IsTrue(spec.IsInvalid(spec.Conform(s, []any{1, 1, 2}))))
}

func TestHashOfConformsPairs(t *testing.T) {
	s := spec.HashOf(
		spec.Predicate(func(v any) bool { _, ok := v.(string); return ok }),
		intSpec(),
	)
	in := map[any]any{"a": 1, "b": 2}
	got := spec.Conform(s, in)
	qt.Assert(t, qt.DeepEquals(got, map[any]any{"a": 1, "b": 2}))
}

func TestEverySamplesWithinCheckLimit(t *testing.T) {
	spec.Configure(func(c *spec.Config) { c.CollCheckLimit = 5 })
	defer spec.ResetConfig()

	s := spec.Every(intSpec())
	big := make([]any, 1000)
	for i := range big {
		big[i] = 1
	}
	big[999] = "not an int" // beyond the sampled window
	qt.Assert(t, qt.IsTrue(spec.Valid(s, big)))
}

func TestEveryExplainCollectsAcrossSampledElements(t *testing.T) {
	spec.Configure(func(c *spec.Config) { c.CollCheckLimit = 10; c.CollErrorLimit = 2 })
	defer spec.ResetConfig()

	s := spec.Every(intSpec())
	in := []any{"a", 1, "b", 1, "c", 1, "d", 1, 1, 1}
	probs := spec.ExplainData(s, in)
	qt.Assert(t, qt.Equals(len(probs), 2))
}

func TestDefaultCollSizeHonorsGenMax(t *testing.T) {
	s := spec.Every(intSpec(), spec.GenMax(3))
	g, err := spec.Gen(s, nil)
	qt.Assert(t, qt.IsNil(err))
	v, ok := g(genrand.NewDefault(1), 10)
	qt.Assert(t, qt.IsTrue(ok))
	seq, ok := v.([]any)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(len(seq), 3))
}

func TestFloatInBounds(t *testing.T) {
	s := spec.FloatIn(0, 1, false, false)
	qt.Assert(t, qt.IsTrue(spec.Valid(s, 0.5)))
	qt.Assert(t, qt.IsTrue(spec.IsInvalid(spec.Conform(s, 1.5))))
	qt.Assert(t, qt.IsTrue(spec.IsInvalid(spec.Conform(s, math.Inf(1)))))
	qt.Assert(t, qt.IsTrue(spec.IsInvalid(spec.Conform(s, math.NaN()))))
}

func TestFloatInAllowsInfiniteAndNaN(t *testing.T) {
	s := spec.FloatIn(0, 1, true, true)
	qt.Assert(t, qt.IsTrue(spec.Valid(s, math.Inf(1))))
	qt.Assert(t, qt.IsTrue(spec.Valid(s, math.Inf(-1))))
	qt.Assert(t, qt.IsTrue(spec.Valid(s, math.NaN())))
}

func TestMapOfPreservesOrder(t *testing.T) {
	s := spec.MapOf(
		spec.Predicate(func(v any) bool { _, ok := v.(string); return ok }),
		intSpec(),
	)
	in := [][2]any{{"b", 2}, {"a", 1}}
	got := spec.Conform(s, in)
	qt.Assert(t, qt.DeepEquals(got, [][2]any{{"b", 2}, {"a", 1}}))
}
