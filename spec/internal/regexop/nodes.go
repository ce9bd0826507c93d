// Package regexop implements L5, the sequence-regex sub-engine: a
// Brzozowski-derivative based matcher over user-defined specs. It is kept
// internal to the spec package because a regex op is not itself a Spec
// (§4.7 of the data model) — only the public constructors in spec/regex.go
// (Cat, Alt, ZeroOrMore, ...) and the AsSpec wrapper may build or observe
// one.
package regexop

import "specgo.dev/go/spec/internal/genrand"

// Node is the closed sum type of regex-op variants (§3, §4.7.1). A nil Node
// denotes the failure state (the empty language, "no match") — deriv,
// acceptNil and preturn all treat it uniformly rather than needing a
// dedicated Fail variant.
type Node interface {
	isNode()
}

// Accept matches the empty input and yields Ret.
type AcceptNode struct{ Ret any }

func (*AcceptNode) isNode() {}

// Leaf wraps a single resolved spec consumed against exactly one input
// element. ConformFn must return sentinel.Invalid on failure. GenFn may be
// nil when the wrapped spec has no generator and none was overridden.
type LeafNode struct {
	ConformFn func(v any) any
	GenFn     genrand.Gen
	Raw       any    // original predicate/spec, for explain's "pred" field
	Name      string // qualified name of the wrapped spec, if any, for via
}

func (*LeafNode) isNode() {}

// Pcat is sequential concatenation (§4.7.1). Keys is nil for an unkeyed
// (ordered-sequence) cat; otherwise len(Keys) == len(Preds) and Ret
// accumulates into a map[string]any instead of a []any. Splice marks,
// per slot, whether that slot's contribution should be flattened into Ret
// (set for slots built by inlining a bare, unboxed nested regex op) or
// appended as a single element (set for slots built from a resolved Spec,
// including a boxed nested Regex).
type PcatNode struct {
	Keys   []string
	Preds  []Node
	Splice []bool
	Ret    any
}

func (*PcatNode) isNode() {}

// Alt is first-match alternation (§4.7.1, §4.7.3).
type AltNode struct {
	Keys  []string
	Preds []Node
}

func (*AltNode) isNode() {}

// Rep is Kleene-star-like repetition. P2 is the seed predicate; P1 is the
// current residual, identical (by pointer) to P2 before any input has been
// consumed against this repetition — that identity is exactly how
// AcceptNil distinguishes "no reps consumed yet" (always nil-accepting)
// from "partway through a rep" (nil-accepting iff P1 is). ID is a stable
// identifier used by the recursion-limit accounting in gen.go.
type RepNode struct {
	P1, P2 Node
	Ret    any
	Splice bool
	ID     int
}

func (*RepNode) isNode() {}

// Amp matches P1, then applies the conjunction of Preds (each itself a
// Leaf wrapping a constraining spec) to the resulting value; used by
// constrained (amp).
type AmpNode struct {
	P1    Node
	Preds []Node
}

func (*AmpNode) isNode() {}

// nilReturnType is the fresh sentinel distinguishing "this regex op
// legitimately returned no value" from the host's null/nil, per §9's open
// question: the two are kept distinct inside the engine and converted to
// a real nil only at ReConform's outermost boundary.
type nilReturnType struct{}

// NilReturn is the regex-engine's internal empty-match value.
var NilReturn any = nilReturnType{}

func isNilReturn(v any) bool {
	_, ok := v.(nilReturnType)
	return ok
}

var nextID int

// NewID allocates a fresh stable id for a Rep node, used by the recursion
// map (rmap) in gen.go to enforce the recursion limit (§4.7.4). Alt nodes
// carry no id and are not counted.
func NewID() int {
	nextID++
	return nextID
}
