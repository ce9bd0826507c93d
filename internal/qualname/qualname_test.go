package qualname

import (
	"testing"

	"github.com/go-quicktest/qt"
)

func TestParse(t *testing.T) {
	n, err := Parse("ns/local")
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(n.Namespace(), "ns"))
	qt.Assert(t, qt.Equals(n.Local(), "local"))
	qt.Assert(t, qt.Equals(n.String(), "ns/local"))
}

func TestParseRejectsUnqualified(t *testing.T) {
	for _, s := range []string{"local", "", "/local", "ns/", "ns/a/b"} {
		_, err := Parse(s)
		qt.Assert(t, qt.IsNotNil(err), qt.Commentf("input %q", s))
	}
}

func TestEqualAfterNormalization(t *testing.T) {
	// "é" as a single rune vs "e" + combining acute accent.
	a, err := Parse("ns/café")
	qt.Assert(t, qt.IsNil(err))
	b, err := Parse("ns/café")
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.IsTrue(a.Equal(b)))
}
