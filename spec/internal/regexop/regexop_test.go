package regexop

import (
	"testing"

	"github.com/go-quicktest/qt"
	"specgo.dev/go/spec/internal/sentinel"
)

func intLeaf() Node {
	return &LeafNode{
		ConformFn: func(v any) any {
			if _, ok := v.(int); ok {
				return v
			}
			return sentinel.Invalid
		},
		Raw: "int",
	}
}

func strLeaf() Node {
	return &LeafNode{
		ConformFn: func(v any) any {
			if _, ok := v.(string); ok {
				return v
			}
			return sentinel.Invalid
		},
		Raw: "string",
	}
}

func zeroOrMore(seed func() Node) *RepNode {
	p := seed()
	return &RepNode{P1: p, P2: p, Ret: []any{}, Splice: true, ID: NewID()}
}

func TestZeroOrMoreEmpty(t *testing.T) {
	r := zeroOrMore(intLeaf)
	got := ReConform(r, nil)
	qt.Assert(t, qt.DeepEquals(got.([]any), []any{}))
}

func TestZeroOrMoreMatches(t *testing.T) {
	r := zeroOrMore(intLeaf)
	got := ReConform(r, []any{1, 2, 3})
	qt.Assert(t, qt.DeepEquals(got.([]any), []any{1, 2, 3}))
}

func TestZeroOrMoreRejectsWrongType(t *testing.T) {
	r := zeroOrMore(intLeaf)
	got := ReConform(r, []any{1, "x"})
	qt.Assert(t, qt.IsTrue(sentinel.IsInvalid(got)))
}

func TestOneOrMoreEmptyFails(t *testing.T) {
	// one_or_more(p) == cat(p, zero_or_more(p))
	rep := zeroOrMore(intLeaf)
	oneOrMore := &PcatNode{
		Preds:  []Node{intLeaf(), rep},
		Splice: []bool{false, true},
		Ret:    []any{},
	}
	got := ReConform(oneOrMore, nil)
	qt.Assert(t, qt.IsTrue(sentinel.IsInvalid(got)))
}

func TestCatKeyed(t *testing.T) {
	c := &PcatNode{
		Keys:   []string{"qty", "unit"},
		Preds:  []Node{intLeaf(), strLeaf()},
		Splice: []bool{false, false},
		Ret:    NewRet(true),
	}
	got := ReConform(c, []any{2, "teaspoon"})
	qt.Assert(t, qt.DeepEquals(got.(map[string]any), map[string]any{"qty": 2, "unit": "teaspoon"}))
}

func TestCatKeyedWrongType(t *testing.T) {
	c := &PcatNode{
		Keys:   []string{"qty", "unit"},
		Preds:  []Node{intLeaf(), strLeaf()},
		Splice: []bool{false, false},
		Ret:    NewRet(true),
	}
	got := ReConform(c, []any{2, 3})
	qt.Assert(t, qt.IsTrue(sentinel.IsInvalid(got)))
	probs := ReExplain(c, []any{2, 3})
	qt.Assert(t, qt.HasLen(probs, 1))
	qt.Assert(t, qt.DeepEquals(probs[0].Path, []any{"unit"}))
	qt.Assert(t, qt.Equals(probs[0].Val, 3))
}

func TestAltFirstMatch(t *testing.T) {
	a := &AltNode{
		Keys:  []string{"name", "id"},
		Preds: []Node{strLeaf(), intLeaf()},
	}
	got := ReConform(a, []any{"abc"})
	pair := got.([2]any)
	qt.Assert(t, qt.Equals(pair[0], "name"))
	qt.Assert(t, qt.Equals(pair[1], "abc"))
}
