package regexop

// Problem is a regex-engine-local failure record; the spec package
// translates it into a spec.Problem, prefixing Path with the enclosing
// spec's own path (§4.7.2). It carries no input position, so the
// translated problem's In is the enclosing spec's In unchanged.
type Problem struct {
	Path   []any
	Pred   any
	Val    any
	Reason string
}

// ReExplain walks xs tracking the derivative; on the first failure it
// descends into opExplain at the current state. It reports "Extra input"
// when a residual Accept is followed by more input, and "Insufficient
// input" when xs is exhausted in a non-nil-accepting state (§4.7.2).
func ReExplain(n Node, xs []any) []Problem {
	cur := n
	for i, x := range xs {
		if _, ok := cur.(*AcceptNode); ok {
			return []Problem{{Val: xs[i:], Reason: "Extra input"}}
		}
		d := Deriv(cur, x)
		if d == nil {
			return opExplain(cur, x)
		}
		cur = d
	}
	if _, ok := cur.(*AcceptNode); !ok && !AcceptNil(cur) {
		return []Problem{{Reason: "Insufficient input"}}
	}
	return nil
}

// opExplain finds the specific leaf (or leaves, across alt branches) that
// rejected x in state n.
func opExplain(n Node, x any) []Problem {
	switch r := n.(type) {
	case nil:
		return []Problem{{Val: x, Reason: "Extra input"}}
	case *LeafNode:
		return []Problem{{Pred: r.Raw, Val: x}}
	case *PcatNode:
		for i, p := range r.Preds {
			if _, ok := p.(*AcceptNode); ok {
				// This slot already matched; the failure is further along.
				continue
			}
			key := ""
			if r.Keys != nil {
				key = r.Keys[i]
			}
			return prefixKey(opExplain(p, x), key)
		}
		return []Problem{{Val: x, Reason: "Extra input"}}
	case *AltNode:
		var probs []Problem
		for i, p := range r.Preds {
			key := ""
			if r.Keys != nil {
				key = r.Keys[i]
			}
			probs = append(probs, prefixKey(opExplain(p, x), key)...)
		}
		return probs
	case *RepNode:
		return opExplain(r.P1, x)
	case *AmpNode:
		return opExplain(r.P1, x)
	default:
		return []Problem{{Val: x, Reason: "Extra input"}}
	}
}

func prefixKey(probs []Problem, key string) []Problem {
	if key == "" {
		return probs
	}
	out := make([]Problem, len(probs))
	for i, p := range probs {
		np := make([]any, 0, len(p.Path)+1)
		np = append(np, key)
		np = append(np, p.Path...)
		out[i] = Problem{Path: np, Pred: p.Pred, Val: p.Val, Reason: p.Reason}
	}
	return out
}
