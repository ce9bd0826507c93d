package spec

import (
	"specgo.dev/go/spec/internal/genrand"
	"specgo.dev/go/spec/internal/regexop"
	"specgo.dev/go/spec/internal/sentinel"
)

// RegexOp is an unboxed sequence-regex grammar built from Cat, Alt,
// ZeroOrMore, OneOrMore, ZeroOrOne and Constrained (§4.7). It is not
// itself a Spec: it has no meaning standalone until either nested inside
// another RegexOp (where it splices: its own grammar is inlined into the
// parent sequence) or boxed with AsSpec (where it consumes exactly one
// outer sequence element, whose value is itself conformed as a whole
// subsequence) (§4.7.3).
type RegexOp struct{ n reNode }

// reNode is the lazily-resolved blueprint for a regexop.Node: leaves hold
// the original spec-or-name rather than a compiled predicate, so
// resolution happens fresh on every conform/explain/gen call and can see
// specs defined after the RegexOp was built.
type reNode interface{ isReNode() }

type reLeaf struct{ item any }
type reCat struct {
	keys   []string
	kids   []reNode
	splice []bool
}
type reAlt struct {
	keys []string
	kids []reNode
}
type reRep struct {
	kid    reNode
	id     int
	splice bool
}
type reAmp struct {
	kid   reNode
	preds []any
}
type reEps struct{}

func (*reLeaf) isReNode() {}
func (*reCat) isReNode()  {}
func (*reAlt) isReNode()  {}
func (*reRep) isReNode()  {}
func (*reAmp) isReNode()  {}
func (*reEps) isReNode()  {}

// toReNode builds the blueprint for one cat/alt slot. A bare nested
// RegexOp splices (its grammar flattens into the parent); anything else
// (a Spec, a registered name, or a bare predicate) becomes a single
// sequence-consuming leaf.
func toReNode(item any) (reNode, bool) {
	if ro, ok := item.(RegexOp); ok {
		return ro.n, true
	}
	return &reLeaf{item: item}, false
}

func nameIfString(item any) string {
	s, _ := item.(string)
	return s
}

// Cat is ordered concatenation (§4.7.1). kvs alternates a string key and a
// spec-or-name/RegexOp, e.g. Cat("qty", IntSpec, "unit", StringSpec).
func Cat(kvs ...any) RegexOp {
	if len(kvs)%2 != 0 {
		panic(&InvalidSpecError{Msg: "cat: arguments must alternate key, spec"})
	}
	c := &reCat{}
	for i := 0; i < len(kvs); i += 2 {
		key, _ := kvs[i].(string)
		kid, splice := toReNode(kvs[i+1])
		c.keys = append(c.keys, key)
		c.kids = append(c.kids, kid)
		c.splice = append(c.splice, splice)
	}
	return RegexOp{n: c}
}

// Alt is first-match alternation (§4.7.1). kvs alternates a string key and
// a spec-or-name/RegexOp, tried left to right.
func Alt(kvs ...any) RegexOp {
	if len(kvs)%2 != 0 {
		panic(&InvalidSpecError{Msg: "alt: arguments must alternate key, spec"})
	}
	a := &reAlt{}
	for i := 0; i < len(kvs); i += 2 {
		key, _ := kvs[i].(string)
		kid, _ := toReNode(kvs[i+1])
		a.keys = append(a.keys, key)
		a.kids = append(a.kids, kid)
	}
	return RegexOp{n: a}
}

// ZeroOrMore matches item zero or more times, collecting its matches in
// order (§4.7.1).
func ZeroOrMore(item any) RegexOp {
	kid, splice := toReNode(item)
	return RegexOp{n: &reRep{kid: kid, id: regexop.NewID(), splice: splice}}
}

// OneOrMore matches item one or more times; built as cat(item,
// zero_or_more(item)) rather than a dedicated node, since the two are
// observably equivalent (§8).
func OneOrMore(item any) RegexOp {
	kid, splice := toReNode(item)
	rep := ZeroOrMore(item)
	return RegexOp{n: &reCat{kids: []reNode{kid, rep.n}, splice: []bool{splice, true}}}
}

// ZeroOrOne matches item zero or one times (§4.7.1), built as an untagged
// alt between item and the empty match.
func ZeroOrOne(item any) RegexOp {
	kid, _ := toReNode(item)
	return RegexOp{n: &reAlt{kids: []reNode{kid, &reEps{}}}}
}

// Constrained matches item, then applies the conjunction of preds to the
// value it produced, failing the whole match if any rejects it (§4.7.1's
// "amp" operator, for cross-field constraints over a cat's result).
func Constrained(item any, preds ...any) RegexOp {
	kid, _ := toReNode(item)
	return RegexOp{n: &reAmp{kid: kid, preds: preds}}
}

// AsSpec boxes a RegexOp as an ordinary Spec (§4.7.3): the boxed spec
// conforms a whole sequence value against ro's grammar. Nested inside
// another Cat/Alt, the box consumes exactly one outer element rather than
// splicing ro's own alternatives into the parent.
func AsSpec(ro RegexOp) Spec {
	return &regexSpec{blueprint: ro.n}
}

type regexSpec struct{ blueprint reNode }

func compileRe(n reNode, overrides map[string]genrand.Gen, path []any, rmap *regexop.RMap) regexop.Node {
	switch x := n.(type) {
	case *reLeaf:
		sp, _ := mustResolve(x.item)
		return &regexop.LeafNode{
			ConformFn: sp.conform,
			GenFn:     sp.gen(overrides, path, rmap),
			Raw:       x.item,
			Name:      nameIfString(x.item),
		}
	case *reEps:
		return &regexop.AcceptNode{Ret: regexop.NilReturn}
	case *reCat:
		preds := make([]regexop.Node, len(x.kids))
		for i, k := range x.kids {
			childPath := path
			if x.keys != nil && x.keys[i] != "" {
				childPath = append(append([]any{}, path...), x.keys[i])
			}
			preds[i] = compileRe(k, overrides, childPath, rmap)
		}
		return &regexop.PcatNode{Keys: nonEmptyKeys(x.keys), Preds: preds, Splice: x.splice, Ret: regexop.NewRet(nonEmptyKeys(x.keys) != nil)}
	case *reAlt:
		preds := make([]regexop.Node, len(x.kids))
		for i, k := range x.kids {
			childPath := path
			if x.keys != nil && i < len(x.keys) && x.keys[i] != "" {
				childPath = append(append([]any{}, path...), x.keys[i])
			}
			preds[i] = compileRe(k, overrides, childPath, rmap)
		}
		return &regexop.AltNode{Keys: nonEmptyKeys(x.keys), Preds: preds}
	case *reRep:
		seed := compileRe(x.kid, overrides, path, rmap)
		return &regexop.RepNode{P1: seed, P2: seed, Ret: []any{}, Splice: x.splice, ID: x.id}
	case *reAmp:
		p1 := compileRe(x.kid, overrides, path, rmap)
		preds := make([]regexop.Node, len(x.preds))
		for i, p := range x.preds {
			sp, _ := mustResolve(p)
			preds[i] = &regexop.LeafNode{ConformFn: sp.conform, Raw: p}
		}
		return &regexop.AmpNode{P1: p1, Preds: preds}
	default:
		return nil
	}
}

func nonEmptyKeys(keys []string) []string {
	if keys == nil {
		return nil
	}
	for _, k := range keys {
		if k == "" {
			return nil
		}
	}
	return keys
}

func (r *regexSpec) conform(v any) any {
	seq, ok := toSlice(v)
	if !ok && v != nil {
		return sentinel.Invalid
	}
	node := compileRe(r.blueprint, nil, nil, regexop.NewRMap(Cfg.RecursionLimit))
	return regexop.ReConform(node, seq)
}

func (r *regexSpec) unform(v any) any {
	return unformRe(r.blueprint, v)
}

func unformRe(n reNode, v any) []any {
	switch x := n.(type) {
	case *reLeaf:
		sp, _ := mustResolve(x.item)
		return []any{sp.unform(v)}
	case *reEps:
		return nil
	case *reCat:
		var out []any
		if keys := nonEmptyKeys(x.keys); keys != nil {
			m, _ := v.(map[string]any)
			for i, k := range keys {
				out = append(out, unformRe(x.kids[i], m[k])...)
			}
			return out
		}
		seq, _ := v.([]any)
		idx := 0
		spliceSeen := false
		for i, kid := range x.kids {
			if x.splice[i] {
				n := 0
				if !spliceSeen {
					spliceSeen = true
					n = len(seq) - idx
					for _, s := range x.splice[i+1:] {
						if !s {
							n--
						}
					}
					if n < 0 {
						n = 0
					}
				}
				out = append(out, unformRe(kid, seq[idx:idx+n])...)
				idx += n
				continue
			}
			if idx < len(seq) {
				out = append(out, unformRe(kid, seq[idx])...)
				idx++
			}
		}
		return out
	case *reAlt:
		if pair, ok := v.([2]any); ok {
			keys := nonEmptyKeys(x.keys)
			for i, k := range keys {
				if k == pair[0] {
					return unformRe(x.kids[i], pair[1])
				}
			}
		}
		if len(x.kids) > 0 {
			return unformRe(x.kids[0], v)
		}
		return nil
	case *reRep:
		seq, _ := v.([]any)
		var out []any
		for _, el := range seq {
			out = append(out, unformRe(x.kid, el)...)
		}
		return out
	case *reAmp:
		return unformRe(x.kid, v)
	default:
		return nil
	}
}

func (r *regexSpec) explain(path []any, via []string, in []any, v any) []Problem {
	seq, ok := toSlice(v)
	if !ok && v != nil {
		return []Problem{{Path: path, Val: v, Reason: "not a sequence", Via: via, In: in}}
	}
	node := compileRe(r.blueprint, nil, nil, regexop.NewRMap(Cfg.RecursionLimit))
	probs := regexop.ReExplain(node, seq)
	out := make([]Problem, len(probs))
	for i, p := range probs {
		out[i] = Problem{
			Path:   append(append([]any{}, path...), p.Path...),
			Pred:   p.Pred,
			Val:    p.Val,
			Reason: p.Reason,
			Via:    via,
			In:     in,
		}
	}
	return out
}

func (r *regexSpec) gen(overrides map[string]genrand.Gen, path []any, rmap *regexop.RMap) genrand.Gen {
	if g, ok := overrideFor(overrides, path); ok {
		return g
	}
	node := compileRe(r.blueprint, overrides, path, rmap)
	return regexop.ReGen(node, Cfg.ReGenMax, Cfg.ReGenIterations, rmap)
}
