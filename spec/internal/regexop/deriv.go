package regexop

import (
	"log"

	"specgo.dev/go/internal/specdebug"
	"specgo.dev/go/spec/internal/sentinel"
)

// AcceptNil reports whether the empty sequence is in L(r) (§4.7.2).
func AcceptNil(n Node) bool {
	switch x := n.(type) {
	case nil:
		return false
	case *AcceptNode:
		return true
	case *LeafNode:
		return false
	case *PcatNode:
		for _, p := range x.Preds {
			if !AcceptNil(p) {
				return false
			}
		}
		return true
	case *AltNode:
		for _, p := range x.Preds {
			if AcceptNil(p) {
				return true
			}
		}
		return false
	case *RepNode:
		if x.P1 == x.P2 {
			return true
		}
		return AcceptNil(x.P1)
	case *AmpNode:
		if !AcceptNil(x.P1) {
			return false
		}
		return !sentinel.IsInvalid(applyPreds(x.Preds, Preturn(x.P1)))
	default:
		return false
	}
}

// Preturn is the value produced when input ended in state r (§4.7.2).
func Preturn(n Node) any {
	switch x := n.(type) {
	case nil:
		return sentinel.Invalid
	case *AcceptNode:
		return x.Ret
	case *LeafNode:
		return sentinel.Invalid
	case *PcatNode:
		return pcatFinalReturn(x)
	case *AltNode:
		for i, p := range x.Preds {
			if AcceptNil(p) {
				v := Preturn(p)
				if x.Keys != nil {
					return [2]any{x.Keys[i], v}
				}
				return v
			}
		}
		return sentinel.Invalid
	case *RepNode:
		if x.P1 == x.P2 {
			return x.Ret
		}
		return addSingle(x.Ret, Preturn(x.P1), x.Splice)
	case *AmpNode:
		return applyPreds(x.Preds, Preturn(x.P1))
	default:
		return sentinel.Invalid
	}
}

// pcatFinalReturn folds in the still-pending predecessors' own preturn
// values on top of the already-accumulated Ret, respecting keys/splice.
func pcatFinalReturn(x *PcatNode) any {
	ret := x.Ret
	for i, p := range x.Preds {
		key := ""
		if x.Keys != nil {
			key = x.Keys[i]
		}
		splice := x.Splice != nil && x.Splice[i]
		ret = addContribution(ret, key, Preturn(p), splice)
	}
	return ret
}

// NewRet allocates the zero accumulator for a Pcat: a map when keyed,
// otherwise an ordered slice.
func NewRet(keyed bool) any {
	if keyed {
		return map[string]any{}
	}
	return []any{}
}

func addContribution(ret any, key string, v any, splice bool) any {
	if isNilReturn(v) {
		// The nil-return sentinel only needs to survive long enough to
		// reach ReConform's outermost boundary (§9); once it is folded
		// into a surrounding container it becomes a plain host nil so it
		// never leaks into a caller's conformed value.
		v = nil
	}
	if key != "" {
		m, _ := ret.(map[string]any)
		m2 := make(map[string]any, len(m)+1)
		for k, vv := range m {
			m2[k] = vv
		}
		m2[key] = v
		return m2
	}
	s, _ := ret.([]any)
	if splice {
		if vs, ok := v.([]any); ok {
			out := make([]any, 0, len(s)+len(vs))
			out = append(out, s...)
			out = append(out, vs...)
			return out
		}
	}
	out := make([]any, 0, len(s)+1)
	out = append(out, s...)
	out = append(out, v)
	return out
}

func addSingle(ret any, v any, splice bool) any {
	return addContribution(ret, "", v, splice)
}

func applyPreds(preds []Node, v any) any {
	cur := v
	for _, p := range preds {
		leaf, ok := p.(*LeafNode)
		if !ok {
			return sentinel.Invalid
		}
		cur = leaf.ConformFn(cur)
		if sentinel.IsInvalid(cur) {
			return sentinel.Invalid
		}
	}
	return cur
}

// alt2 is the internal (unkeyed) 2-way alternation used to resolve
// ambiguity in Pcat/Rep derivatives: branch1 (keep extending the current
// element) is preferred over branch2 (treat the current element as done),
// matching standard greedy Kleene-star semantics.
func alt2(a, b Node) Node {
	switch {
	case a == nil && b == nil:
		return nil
	case b == nil:
		return a
	case a == nil:
		return b
	default:
		return &AltNode{Preds: []Node{a, b}}
	}
}

// Deriv computes the regex accepting the suffixes of strings in L(r) after
// consuming x (§4.7.2) — the central operation of the engine.
func Deriv(n Node, x any) Node {
	if specdebug.Flags.LogDeriv {
		log.Printf("regexop: deriv %T consuming %#v", n, x)
	}
	switch r := n.(type) {
	case nil:
		return nil
	case *AcceptNode:
		return nil
	case *LeafNode:
		v := r.ConformFn(x)
		if sentinel.IsInvalid(v) {
			return nil
		}
		return &AcceptNode{Ret: v}
	case *PcatNode:
		return derivPcat(r, x)
	case *AltNode:
		var preds []Node
		var keys []string
		for i, p := range r.Preds {
			d := Deriv(p, x)
			if d == nil {
				continue
			}
			preds = append(preds, d)
			if r.Keys != nil {
				keys = append(keys, r.Keys[i])
			}
		}
		if len(preds) == 0 {
			return nil
		}
		return &AltNode{Keys: keys, Preds: preds}
	case *RepNode:
		return derivRep(r, x)
	case *AmpNode:
		d := Deriv(r.P1, x)
		if d == nil {
			return nil
		}
		if acc, ok := d.(*AcceptNode); ok {
			v := applyPreds(r.Preds, acc.Ret)
			if sentinel.IsInvalid(v) {
				return nil
			}
			return &AcceptNode{Ret: v}
		}
		return &AmpNode{P1: d, Preds: r.Preds}
	default:
		return nil
	}
}

func derivPcat(r *PcatNode, x any) Node {
	if len(r.Preds) == 0 {
		return nil
	}
	p0 := r.Preds[0]

	var branch1 Node
	if d0 := Deriv(p0, x); d0 != nil {
		newPreds := make([]Node, len(r.Preds))
		copy(newPreds, r.Preds)
		newPreds[0] = d0
		branch1 = &PcatNode{Keys: r.Keys, Preds: newPreds, Splice: r.Splice, Ret: r.Ret}
	}

	var branch2 Node
	if AcceptNil(p0) {
		key := ""
		if r.Keys != nil {
			key = r.Keys[0]
		}
		splice := r.Splice != nil && r.Splice[0]
		tail := &PcatNode{
			Keys:   dropFirst(r.Keys),
			Preds:  r.Preds[1:],
			Splice: dropFirstBool(r.Splice),
			Ret:    addContribution(r.Ret, key, Preturn(p0), splice),
		}
		branch2 = Deriv(tail, x)
	}

	return alt2(branch1, branch2)
}

func derivRep(r *RepNode, x any) Node {
	var branch1 Node
	if d := Deriv(r.P1, x); d != nil {
		branch1 = &RepNode{P1: d, P2: r.P2, Ret: r.Ret, Splice: r.Splice, ID: r.ID}
	}

	var branch2 Node
	if AcceptNil(r.P1) {
		newRet := addSingle(r.Ret, Preturn(r.P1), r.Splice)
		fresh := &RepNode{P1: r.P2, P2: r.P2, Ret: newRet, Splice: r.Splice, ID: r.ID}
		branch2 = Deriv(fresh, x)
	}

	return alt2(branch1, branch2)
}

func dropFirst(s []string) []string {
	if s == nil {
		return nil
	}
	return s[1:]
}

func dropFirstBool(s []bool) []bool {
	if s == nil {
		return nil
	}
	return s[1:]
}

// ReConform folds Deriv over xs; at the end, if AcceptNil, yields Preturn
// (normalizing NilReturn to a real nil), otherwise the Invalid sentinel
// (§4.7.2, §8's fold_left property).
func ReConform(n Node, xs []any) any {
	cur := n
	for _, x := range xs {
		cur = Deriv(cur, x)
		if cur == nil {
			return sentinel.Invalid
		}
	}
	if !AcceptNil(cur) {
		return sentinel.Invalid
	}
	v := Preturn(cur)
	if isNilReturn(v) {
		return nil
	}
	return v
}
