package spec_test

import (
	"testing"

	"github.com/go-quicktest/qt"

	"specgo.dev/go/spec"
)

func TestKeysRequiredAndRegistered(t *testing.T) {
	spec.ResetRegistry()
	spec.Def("specgo.test/name", spec.Predicate(func(v any) bool { _, ok := v.(string); return ok }))
	spec.Def("specgo.test/age", spec.Predicate(func(v any) bool { n, ok := v.(int); return ok && n >= 0 }))

	s := spec.Keys(spec.Req("specgo.test/name"), spec.Opt("specgo.test/age"))

	ok := map[string]any{"specgo.test/name": "ada", "specgo.test/age": 30}
	qt.Assert(t, qt.IsTrue(spec.Valid(s, ok)))

	missing := map[string]any{"specgo.test/age": 30}
	qt.Assert(t, qt.IsTrue(spec.IsInvalid(spec.Conform(s, missing))))

	badType := map[string]any{"specgo.test/name": "ada", "specgo.test/age": -1}
	qt.Assert(t, qt.IsTrue(spec.IsInvalid(spec.Conform(s, badType))))
}

func TestKeysAndOrReq(t *testing.T) {
	spec.ResetRegistry()
	spec.Def("specgo.test/a", spec.Predicate(func(any) bool { return true }))
	spec.Def("specgo.test/b", spec.Predicate(func(any) bool { return true }))
	spec.Def("specgo.test/c", spec.Predicate(func(any) bool { return true }))

	s := spec.Keys(spec.Req(spec.AndKeys("specgo.test/a", spec.OrKeys("specgo.test/b", "specgo.test/c"))))

	qt.Assert(t, qt.IsTrue(spec.Valid(s, map[string]any{"specgo.test/a": 1, "specgo.test/b": 2})))
	qt.Assert(t, qt.IsTrue(spec.Valid(s, map[string]any{"specgo.test/a": 1, "specgo.test/c": 2})))
	qt.Assert(t, qt.IsTrue(spec.IsInvalid(spec.Conform(s, map[string]any{"specgo.test/a": 1}))))
	qt.Assert(t, qt.IsTrue(spec.IsInvalid(spec.Conform(s, map[string]any{"specgo.test/b": 1}))))
}

func TestKeysReqUnMatchesLocalName(t *testing.T) {
	spec.ResetRegistry()
	spec.Def("specgo.test/name", spec.Predicate(func(v any) bool { _, ok := v.(string); return ok }))
	spec.Def("specgo.test/age", spec.Predicate(func(v any) bool { n, ok := v.(int); return ok && n >= 0 }))

	s := spec.Keys(spec.ReqUn("specgo.test/name"), spec.OptUn("specgo.test/age"))

	ok := map[string]any{"name": "ada", "age": 30}
	qt.Assert(t, qt.IsTrue(spec.Valid(s, ok)))

	missing := map[string]any{"age": 30}
	qt.Assert(t, qt.IsTrue(spec.IsInvalid(spec.Conform(s, missing))))

	badType := map[string]any{"name": "ada", "age": -1}
	qt.Assert(t, qt.IsTrue(spec.IsInvalid(spec.Conform(s, badType))))
}

func TestKeysReqUnRoundTripsThroughUnform(t *testing.T) {
	spec.ResetRegistry()
	spec.Def("specgo.test/name", spec.Predicate(func(v any) bool { _, ok := v.(string); return ok }))

	s := spec.Keys(spec.ReqUn("specgo.test/name"))
	in := map[string]any{"name": "lin"}
	conformed := spec.Conform(s, in)
	qt.Assert(t, qt.DeepEquals(spec.Unform(s, conformed), in))
}

func TestMergeExplainReportsEachReferencingComponent(t *testing.T) {
	spec.ResetRegistry()
	spec.Def("specgo.test/n", spec.Predicate(func(v any) bool { _, ok := v.(int); return ok }))

	s := spec.Merge(
		spec.Keys(spec.Req("specgo.test/n")),
		spec.Keys(spec.Req("specgo.test/n")),
	)
	probs := spec.ExplainData(s, map[string]any{"specgo.test/n": "not an int"})
	qt.Assert(t, qt.Equals(len(probs), 2))
}

func TestMergeUnionsConformedMaps(t *testing.T) {
	spec.ResetRegistry()
	spec.Def("specgo.test/x", spec.Predicate(func(v any) bool { _, ok := v.(int); return ok }))
	spec.Def("specgo.test/y", spec.Predicate(func(v any) bool { _, ok := v.(int); return ok }))

	s := spec.Merge(
		spec.Keys(spec.Req("specgo.test/x")),
		spec.Keys(spec.Req("specgo.test/y")),
	)

	got := spec.Conform(s, map[string]any{"specgo.test/x": 1, "specgo.test/y": 2})
	qt.Assert(t, qt.DeepEquals(got, map[string]any{"specgo.test/x": 1, "specgo.test/y": 2}))
	qt.Assert(t, qt.IsTrue(spec.IsInvalid(spec.Conform(s, map[string]any{"specgo.test/x": 1}))))
}
