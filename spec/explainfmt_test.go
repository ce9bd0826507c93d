package spec_test

import (
	"strings"
	"testing"

	"github.com/go-quicktest/qt"

	"specgo.dev/go/spec"
)

func TestFormatExplainSuccess(t *testing.T) {
	qt.Assert(t, qt.Equals(spec.FormatExplain(nil, 1), "Success!\n"))
}

func TestFormatExplainLineShape(t *testing.T) {
	spec.ResetRegistry()
	spec.Def("specgo.test/pos", spec.Predicate(func(v any) bool { n, ok := v.(int); return ok && n > 0 }))

	probs := spec.ExplainData("specgo.test/pos", -1)
	got := spec.FormatExplain(probs, -1)

	qt.Assert(t, qt.IsTrue(strings.Contains(got, "val: -1 fails")))
	qt.Assert(t, qt.IsTrue(strings.Contains(got, "spec: specgo.test/pos")))
	qt.Assert(t, qt.IsTrue(strings.Contains(got, "predicate:")))
	qt.Assert(t, qt.IsTrue(!strings.Contains(got, "via:")))
}
