package spec

import (
	"fmt"
	"math"

	"specgo.dev/go/spec/internal/genrand"
	"specgo.dev/go/spec/internal/regexop"
	"specgo.dev/go/spec/internal/sentinel"
)

// And composes specs as a conjunction (§4.1): the value threads through
// each in order, each receiving the previous one's conformed output, and
// fails on the first one that rejects it. Items are resolved lazily on
// every call, so a name not yet defined at And-construction time may be
// defined before the spec is actually used.
func And(items ...any) Spec {
	return &andSpec{items: items}
}

type andSpec struct{ items []any }

func (a *andSpec) conform(v any) any {
	cur := v
	for _, it := range a.items {
		sp, _ := mustResolve(it)
		cur = sp.conform(cur)
		if sentinel.IsInvalid(cur) {
			return sentinel.Invalid
		}
	}
	return cur
}

func (a *andSpec) unform(v any) any {
	cur := v
	for i := len(a.items) - 1; i >= 0; i-- {
		sp, _ := mustResolve(a.items[i])
		cur = sp.unform(cur)
	}
	return cur
}

func (a *andSpec) explain(path []any, via []string, in []any, v any) []Problem {
	cur := v
	for _, it := range a.items {
		sp, itVia := mustResolve(it)
		conformed := sp.conform(cur)
		if sentinel.IsInvalid(conformed) {
			return sp.explain(path, append(append([]string{}, via...), itVia...), in, cur)
		}
		cur = conformed
	}
	return nil
}

func (a *andSpec) gen(overrides map[string]genrand.Gen, path []any, rmap *regexop.RMap) genrand.Gen {
	if g, ok := overrideFor(overrides, path); ok {
		return g
	}
	if len(a.items) == 0 {
		return nil
	}
	first, _ := mustResolve(a.items[0])
	g0 := first.gen(overrides, path, rmap)
	if g0 == nil {
		return nil
	}
	return genrand.Filter(g0, func(v any) bool {
		return !sentinel.IsInvalid(a.conform(v))
	}, 100)
}

// Or composes alternatives as a tagged disjunction (§4.1): kvs alternates
// a string tag and a spec-or-name, e.g. Or("str", stringSpec, "int",
// intSpec). Conform returns the [2]any{tag, conformedValue} of the first
// matching branch, tried in the order given.
func Or(kvs ...any) Spec {
	if len(kvs)%2 != 0 {
		panic(&InvalidSpecError{Msg: "or: arguments must alternate tag, spec"})
	}
	o := &orSpec{}
	for i := 0; i < len(kvs); i += 2 {
		key, ok := kvs[i].(string)
		if !ok {
			panic(&InvalidSpecError{Msg: fmt.Sprintf("or: tag %v is not a string", kvs[i])})
		}
		o.keys = append(o.keys, key)
		o.items = append(o.items, kvs[i+1])
	}
	return o
}

type orSpec struct {
	keys  []string
	items []any
}

func (o *orSpec) indexOf(key string) int {
	for i, k := range o.keys {
		if k == key {
			return i
		}
	}
	return -1
}

func (o *orSpec) conform(v any) any {
	for i, it := range o.items {
		sp, _ := mustResolve(it)
		c := sp.conform(v)
		if !sentinel.IsInvalid(c) {
			return [2]any{o.keys[i], c}
		}
	}
	return sentinel.Invalid
}

func (o *orSpec) unform(v any) any {
	pair, ok := v.([2]any)
	if !ok {
		return v
	}
	key, _ := pair[0].(string)
	idx := o.indexOf(key)
	if idx < 0 {
		return v
	}
	sp, _ := mustResolve(o.items[idx])
	return sp.unform(pair[1])
}

func (o *orSpec) explain(path []any, via []string, in []any, v any) []Problem {
	var probs []Problem
	for i, it := range o.items {
		sp, itVia := mustResolve(it)
		if sentinel.IsInvalid(sp.conform(v)) {
			sub := sp.explain(append(append([]any{}, path...), o.keys[i]), append(append([]string{}, via...), itVia...), in, v)
			probs = append(probs, sub...)
		}
	}
	return probs
}

func (o *orSpec) gen(overrides map[string]genrand.Gen, path []any, rmap *regexop.RMap) genrand.Gen {
	if g, ok := overrideFor(overrides, path); ok {
		return g
	}
	var wgens []genrand.WeightedGen
	for i, it := range o.items {
		sp, _ := mustResolve(it)
		g := sp.gen(overrides, append(append([]any{}, path...), o.keys[i]), rmap)
		if g != nil {
			wgens = append(wgens, genrand.WeightedGen{Weight: 1, Gen: g})
		}
	}
	if len(wgens) == 0 {
		return nil
	}
	return func(r genrand.Rand, size int) (any, bool) { return r.Freq(wgens) }
}

// Nilable wraps inner so that nil is always accepted, in addition to
// whatever inner accepts (§4.1).
func Nilable(inner any) Spec {
	return &nilableSpec{inner: inner}
}

type nilableSpec struct{ inner any }

func (n *nilableSpec) conform(v any) any {
	if v == nil {
		return nil
	}
	sp, _ := mustResolve(n.inner)
	return sp.conform(v)
}

func (n *nilableSpec) unform(v any) any {
	if v == nil {
		return nil
	}
	sp, _ := mustResolve(n.inner)
	return sp.unform(v)
}

func (n *nilableSpec) explain(path []any, via []string, in []any, v any) []Problem {
	if v == nil {
		return nil
	}
	sp, itVia := mustResolve(n.inner)
	return sp.explain(path, append(append([]string{}, via...), itVia...), in, v)
}

func (n *nilableSpec) gen(overrides map[string]genrand.Gen, path []any, rmap *regexop.RMap) genrand.Gen {
	if g, ok := overrideFor(overrides, path); ok {
		return g
	}
	sp, _ := mustResolve(n.inner)
	inner := sp.gen(overrides, path, rmap)
	if inner == nil {
		return genrand.Const(nil)
	}
	return func(r genrand.Rand, size int) (any, bool) {
		return r.Freq([]genrand.WeightedGen{
			{Weight: 1, Gen: genrand.Const(nil)},
			{Weight: 9, Gen: inner},
		})
	}
}

// Conformer wraps an arbitrary transformation as a Spec (§4.1). conformFn
// must return spec.INVALID to reject a value. unformFn must be the exact
// inverse of conformFn on every value conformFn accepts, since this
// engine resolved the "must a conformer supply its own inverse" open
// question in favor of requiring one explicitly rather than silently
// falling back to identity (see SPEC_FULL.md §13): an identity-shaped
// conformer can simply pass the same function twice.
func Conformer(conformFn func(any) any, unformFn func(any) any) Spec {
	if unformFn == nil {
		panic(&InvalidSpecError{Msg: "conformer: unformFn must not be nil"})
	}
	return &conformerSpec{conformFn: conformFn, unformFn: unformFn}
}

type conformerSpec struct {
	conformFn func(any) any
	unformFn  func(any) any
}

func (c *conformerSpec) conform(v any) any { return c.conformFn(v) }

func (c *conformerSpec) unform(v any) any { return c.unformFn(v) }

func (c *conformerSpec) explain(path []any, via []string, in []any, v any) []Problem {
	if sentinel.IsInvalid(c.conformFn(v)) {
		return []Problem{{Path: path, Pred: "conformer", Val: v, Via: via, In: in}}
	}
	return nil
}

func (c *conformerSpec) gen(overrides map[string]genrand.Gen, path []any, rmap *regexop.RMap) genrand.Gen {
	g, _ := overrideFor(overrides, path)
	return g
}

// Tuple specs a fixed-length, heterogeneous positional sequence (§4.1):
// each element is conformed against the spec at the same index.
func Tuple(items ...any) Spec {
	return &tupleSpec{items: items}
}

type tupleSpec struct{ items []any }

func (t *tupleSpec) conform(v any) any {
	seq, ok := toSlice(v)
	if !ok || len(seq) != len(t.items) {
		return sentinel.Invalid
	}
	out := make([]any, len(t.items))
	for i, it := range t.items {
		sp, _ := mustResolve(it)
		c := sp.conform(seq[i])
		if sentinel.IsInvalid(c) {
			return sentinel.Invalid
		}
		out[i] = c
	}
	return out
}

func (t *tupleSpec) unform(v any) any {
	seq, ok := toSlice(v)
	if !ok {
		return v
	}
	out := make([]any, len(t.items))
	for i, it := range t.items {
		sp, _ := mustResolve(it)
		if i < len(seq) {
			out[i] = sp.unform(seq[i])
		}
	}
	return out
}

func (t *tupleSpec) explain(path []any, via []string, in []any, v any) []Problem {
	seq, ok := toSlice(v)
	if !ok {
		return []Problem{{Path: path, Val: v, Reason: "not a sequence", Via: via, In: in}}
	}
	if len(seq) != len(t.items) {
		return []Problem{{Path: path, Val: v, Reason: fmt.Sprintf("expected %d elements, got %d", len(t.items), len(seq)), Via: via, In: in}}
	}
	for i, it := range t.items {
		sp, itVia := mustResolve(it)
		if sentinel.IsInvalid(sp.conform(seq[i])) {
			return sp.explain(append(append([]any{}, path...), i), append(append([]string{}, via...), itVia...), append(append([]any{}, in...), i), seq[i])
		}
	}
	return nil
}

func (t *tupleSpec) gen(overrides map[string]genrand.Gen, path []any, rmap *regexop.RMap) genrand.Gen {
	if g, ok := overrideFor(overrides, path); ok {
		return g
	}
	gens := make([]genrand.Gen, len(t.items))
	for i, it := range t.items {
		sp, _ := mustResolve(it)
		g := sp.gen(overrides, append(append([]any{}, path...), i), rmap)
		if g == nil {
			return nil
		}
		gens[i] = g
	}
	return func(r genrand.Rand, size int) (any, bool) {
		out := make([]any, len(gens))
		for i, g := range gens {
			v, ok := g(r, size)
			if !ok {
				return nil, false
			}
			out[i] = v
		}
		return out, true
	}
}

// FloatIn specs a float64 within [min, max], with infinite and nan
// separately controlling whether ±Inf and NaN are accepted regardless of
// the bounds (§6.1).
func FloatIn(min, max float64, infinite, nan bool) Spec {
	return &floatInSpec{min: min, max: max, infinite: infinite, nan: nan}
}

type floatInSpec struct {
	min, max         float64
	infinite, nan bool
}

func (f *floatInSpec) valid(v any) bool {
	n, ok := v.(float64)
	if !ok {
		return false
	}
	switch {
	case math.IsNaN(n):
		return f.nan
	case math.IsInf(n, 0):
		return f.infinite
	default:
		return n >= f.min && n <= f.max
	}
}

func (f *floatInSpec) conform(v any) any {
	if f.valid(v) {
		return v
	}
	return sentinel.Invalid
}

func (f *floatInSpec) unform(v any) any { return v }

func (f *floatInSpec) explain(path []any, via []string, in []any, v any) []Problem {
	if f.valid(v) {
		return nil
	}
	return []Problem{{
		Path:   path,
		Val:    v,
		Reason: fmt.Sprintf("not a float in [%v, %v] (infinite=%v, nan=%v)", f.min, f.max, f.infinite, f.nan),
		Via:    via,
		In:     in,
	}}
}

func (f *floatInSpec) gen(overrides map[string]genrand.Gen, path []any, rmap *regexop.RMap) genrand.Gen {
	if g, ok := overrideFor(overrides, path); ok {
		return g
	}
	inRange := genrand.Gen(func(r genrand.Rand, size int) (any, bool) {
		return f.min + r.Float64()*(f.max-f.min), true
	})
	wgens := []genrand.WeightedGen{{Weight: 90, Gen: inRange}}
	if f.infinite {
		wgens = append(wgens, genrand.WeightedGen{Weight: 5, Gen: func(r genrand.Rand, size int) (any, bool) {
			if r.Range(0, 1) == 0 {
				return math.Inf(1), true
			}
			return math.Inf(-1), true
		}})
	}
	if f.nan {
		wgens = append(wgens, genrand.WeightedGen{Weight: 5, Gen: func(r genrand.Rand, size int) (any, bool) {
			return math.NaN(), true
		}})
	}
	return func(r genrand.Rand, size int) (any, bool) { return r.Freq(wgens) }
}
