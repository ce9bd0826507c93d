package spec

import (
	"fmt"

	"github.com/mpvl/unique"

	"specgo.dev/go/spec/internal/genrand"
	"specgo.dev/go/spec/internal/regexop"
	"specgo.dev/go/spec/internal/sentinel"
)

// CollOptions configures the collection specs (§4.5). Zero value means no
// constraint on that dimension.
type CollOptions struct {
	MinCount    int
	HasMinCount bool
	MaxCount    int
	HasMaxCount bool
	Count       int
	HasCount    bool
	Distinct    bool
	Kind        func(any) bool
	Into        any
	GenMax      int
	HasGenMax   bool
}

// CollOption mutates a CollOptions; constructors below build the common
// ones (a Go rendering of clojure.spec's keyword-argument collection
// options).
type CollOption func(*CollOptions)

func MinCount(n int) CollOption { return func(o *CollOptions) { o.MinCount = n; o.HasMinCount = true } }
func MaxCount(n int) CollOption { return func(o *CollOptions) { o.MaxCount = n; o.HasMaxCount = true } }
func ExactCount(n int) CollOption { return func(o *CollOptions) { o.Count = n; o.HasCount = true } }
func DistinctElems() CollOption  { return func(o *CollOptions) { o.Distinct = true } }
func KindOf(pred func(any) bool) CollOption { return func(o *CollOptions) { o.Kind = pred } }
func Into(sample any) CollOption { return func(o *CollOptions) { o.Into = sample } }

// GenMax bounds how many elements a collection spec generates, overriding
// the ≤20 default generation size (§4.5).
func GenMax(n int) CollOption { return func(o *CollOptions) { o.GenMax = n; o.HasGenMax = true } }

func buildOptions(opts []CollOption) CollOptions {
	var o CollOptions
	for _, f := range opts {
		f(&o)
	}
	return o
}

func (o CollOptions) checkCount(n int) (string, bool) {
	if o.HasCount && n != o.Count {
		return fmt.Sprintf("expected exactly %d elements, got %d", o.Count, n), false
	}
	if o.HasMinCount && n < o.MinCount {
		return fmt.Sprintf("expected at least %d elements, got %d", o.MinCount, n), false
	}
	if o.HasMaxCount && n > o.MaxCount {
		return fmt.Sprintf("expected at most %d elements, got %d", o.MaxCount, n), false
	}
	return "", true
}

// sortableStrings adapts a []string to unique.Interface so unique.Sort can
// dedup it in place.
type sortableStrings []string

func (s sortableStrings) Len() int           { return len(s) }
func (s sortableStrings) Less(i, j int) bool { return s[i] < s[j] }
func (s sortableStrings) Swap(i, j int)      { s[i], s[j] = s[j], s[i] }
func (s sortableStrings) Copy(dst, src int)  { s[dst] = s[src] }

func (o CollOptions) checkDistinct(elems []any) bool {
	if !o.Distinct {
		return true
	}
	keys := make(sortableStrings, len(elems))
	for i, e := range elems {
		keys[i] = fmt.Sprintf("%#v", e)
	}
	deduped := unique.Sort(keys)
	return deduped == len(keys)
}

// Every specs a homogeneous collection by applying elemSpec to each
// element and checking any collection-wide options, without conforming or
// transforming the elements: on success it returns the input collection
// unchanged (§4.5).
func Every(elemSpec any, opts ...CollOption) Spec {
	o := buildOptions(opts)
	return &everySpec{elem: elemSpec, opts: o}
}

type everySpec struct {
	elem any
	opts CollOptions
}

func (e *everySpec) checkAll(v any) (seq []any, ok bool) {
	if e.opts.Kind != nil && !e.opts.Kind(v) {
		return nil, false
	}
	seq, ok = toSlice(v)
	if !ok {
		return nil, false
	}
	if _, ok := e.opts.checkCount(len(seq)); !ok {
		return nil, false
	}
	if !e.opts.checkDistinct(seq) {
		return nil, false
	}
	sp, _ := mustResolve(e.elem)
	for _, el := range sampleLimit(seq, Cfg.CollCheckLimit) {
		if sentinel.IsInvalid(sp.conform(el)) {
			return nil, false
		}
	}
	return seq, true
}

// sampleLimit returns the prefix of seq that Every actually checks: with
// limit <= 0 the whole sequence is sampled, otherwise at most limit
// elements, so a very large but all-valid collection still conforms
// (§4.5, §8).
func sampleLimit(seq []any, limit int) []any {
	if limit <= 0 || limit >= len(seq) {
		return seq
	}
	return seq[:limit]
}

func (e *everySpec) conform(v any) any {
	if _, ok := e.checkAll(v); !ok {
		return sentinel.Invalid
	}
	return v
}

func (e *everySpec) unform(v any) any { return v }

func (e *everySpec) explain(path []any, via []string, in []any, v any) []Problem {
	if e.opts.Kind != nil && !e.opts.Kind(v) {
		return []Problem{{Path: path, Val: v, Reason: "not of the expected collection kind", Via: via, In: in}}
	}
	seq, ok := toSlice(v)
	if !ok {
		return []Problem{{Path: path, Val: v, Reason: "not a collection", Via: via, In: in}}
	}
	if reason, ok := e.opts.checkCount(len(seq)); !ok {
		return []Problem{{Path: path, Val: v, Reason: reason, Via: via, In: in}}
	}
	if !e.opts.checkDistinct(seq) {
		return []Problem{{Path: path, Val: v, Reason: "elements are not distinct", Via: via, In: in}}
	}
	sp, elVia := mustResolve(e.elem)
	var probs []Problem
	for i, el := range sampleLimit(seq, Cfg.CollCheckLimit) {
		if sentinel.IsInvalid(sp.conform(el)) {
			probs = append(probs, sp.explain(append(append([]any{}, path...), i), append(append([]string{}, via...), elVia...), append(append([]any{}, in...), i), el)...)
			if Cfg.CollErrorLimit > 0 && len(probs) >= Cfg.CollErrorLimit {
				break
			}
		}
	}
	return probs
}

func (e *everySpec) gen(overrides map[string]genrand.Gen, path []any, rmap *regexop.RMap) genrand.Gen {
	if g, ok := overrideFor(overrides, path); ok {
		return g
	}
	sp, _ := mustResolve(e.elem)
	elemGen := sp.gen(overrides, append(append([]any{}, path...), "*"), rmap)
	if elemGen == nil {
		return nil
	}
	n := defaultCollSize(e.opts)
	return func(r genrand.Rand, size int) (any, bool) {
		out := make([]any, 0, n)
		for i := 0; i < n; i++ {
			v, ok := elemGen(r, size)
			if !ok {
				return nil, false
			}
			out = append(out, v)
		}
		return shapeInto(out, e.opts.Into), true
	}
}

func defaultCollSize(o CollOptions) int {
	n := 20
	if o.HasGenMax {
		n = o.GenMax
	}
	if o.HasCount {
		n = o.Count
	}
	if o.HasMinCount && n < o.MinCount {
		n = o.MinCount
	}
	if o.HasMaxCount && n > o.MaxCount {
		n = o.MaxCount
	}
	return n
}

// CollOf is like Every but transforming: each element is conformed and the
// result collected into a new collection shaped by the Into option (a
// plain []any by default) (§4.5).
func CollOf(elemSpec any, opts ...CollOption) Spec {
	o := buildOptions(opts)
	return &collOfSpec{elem: elemSpec, opts: o}
}

type collOfSpec struct {
	elem any
	opts CollOptions
}

func (c *collOfSpec) conform(v any) any {
	if c.opts.Kind != nil && !c.opts.Kind(v) {
		return sentinel.Invalid
	}
	seq, ok := toSlice(v)
	if !ok {
		return sentinel.Invalid
	}
	if _, ok := c.opts.checkCount(len(seq)); !ok {
		return sentinel.Invalid
	}
	sp, _ := mustResolve(c.elem)
	out := make([]any, 0, len(seq))
	for _, el := range seq {
		cv := sp.conform(el)
		if sentinel.IsInvalid(cv) {
			return sentinel.Invalid
		}
		out = append(out, cv)
	}
	if !c.opts.checkDistinct(out) {
		return sentinel.Invalid
	}
	return shapeInto(out, c.opts.Into)
}

func (c *collOfSpec) unform(v any) any {
	seq, ok := toSlice(v)
	if !ok {
		return v
	}
	sp, _ := mustResolve(c.elem)
	out := make([]any, len(seq))
	for i, el := range seq {
		out[i] = sp.unform(el)
	}
	return out
}

func (c *collOfSpec) explain(path []any, via []string, in []any, v any) []Problem {
	e := &everySpec{elem: c.elem, opts: c.opts}
	return e.explain(path, via, in, v)
}

func (c *collOfSpec) gen(overrides map[string]genrand.Gen, path []any, rmap *regexop.RMap) genrand.Gen {
	e := &everySpec{elem: c.elem, opts: c.opts}
	return e.gen(overrides, path, rmap)
}

// MapOf specs an ordered association: a [][2]any of key/value pairs, or
// any []any of [2]any entries, each conformed against keySpec and valSpec
// and returned in the same order they were given (§4.5's "map_of" as an
// order-preserving association, distinct from HashOf's native map).
func MapOf(keySpec, valSpec any, opts ...CollOption) Spec {
	o := buildOptions(opts)
	return &mapOfSpec{key: keySpec, val: valSpec, opts: o, ordered: true}
}

// HashOf specs an unordered association backed by a native Go map (§4.5's
// "hash_of").
func HashOf(keySpec, valSpec any, opts ...CollOption) Spec {
	o := buildOptions(opts)
	return &mapOfSpec{key: keySpec, val: valSpec, opts: o, ordered: false}
}

type mapOfSpec struct {
	key, val any
	opts     CollOptions
	ordered  bool
}

func (m *mapOfSpec) conform(v any) any {
	pairs, ok := toPairs(v)
	if !ok {
		return sentinel.Invalid
	}
	if _, ok := m.opts.checkCount(len(pairs)); !ok {
		return sentinel.Invalid
	}
	ksp, _ := mustResolve(m.key)
	vsp, _ := mustResolve(m.val)
	if m.ordered {
		out := make([][2]any, 0, len(pairs))
		for _, p := range pairs {
			ck := ksp.conform(p[0])
			cv := vsp.conform(p[1])
			if sentinel.IsInvalid(ck) || sentinel.IsInvalid(cv) {
				return sentinel.Invalid
			}
			out = append(out, [2]any{ck, cv})
		}
		return out
	}
	out := make(map[any]any, len(pairs))
	for _, p := range pairs {
		ck := ksp.conform(p[0])
		cv := vsp.conform(p[1])
		if sentinel.IsInvalid(ck) || sentinel.IsInvalid(cv) {
			return sentinel.Invalid
		}
		out[ck] = cv
	}
	return out
}

func (m *mapOfSpec) unform(v any) any {
	ksp, _ := mustResolve(m.key)
	vsp, _ := mustResolve(m.val)
	pairs, ok := toPairs(v)
	if !ok {
		return v
	}
	if m.ordered {
		out := make([][2]any, len(pairs))
		for i, p := range pairs {
			out[i] = [2]any{ksp.unform(p[0]), vsp.unform(p[1])}
		}
		return out
	}
	out := make(map[any]any, len(pairs))
	for _, p := range pairs {
		out[ksp.unform(p[0])] = vsp.unform(p[1])
	}
	return out
}

func (m *mapOfSpec) explain(path []any, via []string, in []any, v any) []Problem {
	pairs, ok := toPairs(v)
	if !ok {
		return []Problem{{Path: path, Val: v, Reason: "not an association", Via: via, In: in}}
	}
	if reason, ok := m.opts.checkCount(len(pairs)); !ok {
		return []Problem{{Path: path, Val: v, Reason: reason, Via: via, In: in}}
	}
	ksp, kVia := mustResolve(m.key)
	vsp, vVia := mustResolve(m.val)
	for _, p := range pairs {
		if sentinel.IsInvalid(ksp.conform(p[0])) {
			return ksp.explain(append(append([]any{}, path...), "key"), append(append([]string{}, via...), kVia...), in, p[0])
		}
		if sentinel.IsInvalid(vsp.conform(p[1])) {
			return vsp.explain(append(append([]any{}, path...), p[0]), append(append([]string{}, via...), vVia...), in, p[1])
		}
	}
	return nil
}

func (m *mapOfSpec) gen(overrides map[string]genrand.Gen, path []any, rmap *regexop.RMap) genrand.Gen {
	if g, ok := overrideFor(overrides, path); ok {
		return g
	}
	ksp, _ := mustResolve(m.key)
	vsp, _ := mustResolve(m.val)
	kg := ksp.gen(overrides, append(append([]any{}, path...), "key"), rmap)
	vg := vsp.gen(overrides, append(append([]any{}, path...), "val"), rmap)
	if kg == nil || vg == nil {
		return nil
	}
	n := defaultCollSize(m.opts)
	ordered := m.ordered
	return func(r genrand.Rand, size int) (any, bool) {
		if ordered {
			out := make([][2]any, 0, n)
			for i := 0; i < n; i++ {
				k, ok := kg(r, size)
				if !ok {
					return nil, false
				}
				v, ok := vg(r, size)
				if !ok {
					return nil, false
				}
				out = append(out, [2]any{k, v})
			}
			return out, true
		}
		out := make(map[any]any, n)
		for i := 0; i < n; i++ {
			k, ok := kg(r, size)
			if !ok {
				return nil, false
			}
			v, ok := vg(r, size)
			if !ok {
				return nil, false
			}
			out[k] = v
		}
		return out, true
	}
}
