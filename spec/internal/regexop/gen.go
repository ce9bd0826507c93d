package regexop

import (
	"log"

	"specgo.dev/go/internal/specdebug"
	"specgo.dev/go/spec/internal/genrand"
	"specgo.dev/go/spec/internal/sentinel"
)

// RMap is the per-id recursion counter (§4.7.4, §9): it bounds how many
// times a generation path re-enters the same Rep id before that Rep
// generates only the empty sequence; Alt nodes are not counted. It is threaded as an immutable value so sibling
// branches of a single generation attempt don't interfere with each
// other's counts.
type RMap struct {
	limit  int
	counts map[int]int
}

// NewRMap creates an empty recursion map with the given per-id limit.
func NewRMap(limit int) *RMap {
	return &RMap{limit: limit, counts: map[int]int{}}
}

// Exceeded reports whether id has already been entered limit times.
func (m *RMap) Exceeded(id int) bool {
	exceeded := m.counts[id] >= m.limit
	if exceeded && specdebug.Flags.LogGen {
		log.Printf("regexop: gen pruning recursive node %d at limit %d", id, m.limit)
	}
	return exceeded
}

// Enter returns a new RMap with id's count incremented by one.
func (m *RMap) Enter(id int) *RMap {
	next := make(map[int]int, len(m.counts)+1)
	for k, v := range m.counts {
		next[k] = v
	}
	next[id]++
	return &RMap{limit: m.limit, counts: next}
}

// ReGen produces a generator of sequences ([]any) by case analysis over
// the node kind (§4.7.4). genMax bounds how many iterations a Rep
// generates; iterations bounds how many times Amp resamples its base
// generator looking for a value that satisfies its predicate conjunction.
func ReGen(n Node, genMax, iterations int, rmap *RMap) genrand.Gen {
	switch x := n.(type) {
	case nil:
		return nil
	case *AcceptNode:
		if isNilReturn(x.Ret) {
			return func(genrand.Rand, int) (any, bool) { return []any{}, true }
		}
		return func(genrand.Rand, int) (any, bool) { return []any{x.Ret}, true }
	case *LeafNode:
		return genLeaf(x)
	case *PcatNode:
		return genPcat(x, genMax, iterations, rmap)
	case *AltNode:
		return genAlt(x, genMax, iterations, rmap)
	case *RepNode:
		return genRep(x, genMax, iterations, rmap)
	case *AmpNode:
		return genAmp(x, genMax, iterations, rmap)
	default:
		return nil
	}
}

func genLeaf(x *LeafNode) genrand.Gen {
	if x.GenFn == nil {
		return nil
	}
	g := x.GenFn
	return func(r genrand.Rand, size int) (any, bool) {
		v, ok := g(r, size)
		if !ok {
			return nil, false
		}
		return []any{v}, true
	}
}

func genPcat(x *PcatNode, genMax, iterations int, rmap *RMap) genrand.Gen {
	gens := make([]genrand.Gen, len(x.Preds))
	for i, p := range x.Preds {
		g := ReGen(p, genMax, iterations, rmap)
		if g == nil {
			return nil
		}
		gens[i] = g
	}
	return func(r genrand.Rand, size int) (any, bool) {
		var out []any
		for _, g := range gens {
			v, ok := g(r, size)
			if !ok {
				return nil, false
			}
			out = append(out, v.([]any)...)
		}
		return out, true
	}
}

func genAlt(x *AltNode, genMax, iterations int, rmap *RMap) genrand.Gen {
	var gens []genrand.Gen
	for _, p := range x.Preds {
		if g := ReGen(p, genMax, iterations, rmap); g != nil {
			gens = append(gens, g)
		}
	}
	if len(gens) == 0 {
		return nil
	}
	return func(r genrand.Rand, size int) (any, bool) {
		choice := gens[r.Range(0, len(gens)-1)]
		return choice(r, size)
	}
}

func genRep(x *RepNode, genMax, iterations int, rmap *RMap) genrand.Gen {
	if rmap.Exceeded(x.ID) {
		return func(genrand.Rand, int) (any, bool) { return []any{}, true }
	}
	seedGen := ReGen(x.P2, genMax, iterations, rmap.Enter(x.ID))
	if seedGen == nil {
		return nil
	}
	return func(r genrand.Rand, size int) (any, bool) {
		n := r.Range(0, genMax)
		out := make([]any, 0, n)
		for i := 0; i < n; i++ {
			v, ok := seedGen(r, size)
			if !ok {
				return nil, false
			}
			out = append(out, v.([]any)...)
		}
		return out, true
	}
}

func genAmp(x *AmpNode, genMax, iterations int, rmap *RMap) genrand.Gen {
	base := ReGen(x.P1, genMax, iterations, rmap)
	if base == nil {
		return nil
	}
	return func(r genrand.Rand, size int) (any, bool) {
		for i := 0; i < iterations; i++ {
			v, ok := base(r, size)
			if !ok {
				continue
			}
			seq, ok := v.([]any)
			if !ok || len(seq) != 1 {
				continue
			}
			conformed := applyPreds(x.Preds, seq[0])
			if !sentinel.IsInvalid(conformed) {
				return []any{conformed}, true
			}
		}
		return nil, false
	}
}
