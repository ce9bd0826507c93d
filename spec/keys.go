package spec

import (
	"fmt"

	"specgo.dev/go/internal/qualname"
	"specgo.dev/go/spec/internal/genrand"
	"specgo.dev/go/spec/internal/regexop"
	"specgo.dev/go/spec/internal/sentinel"
)

// localOf returns the local part of a qualified name, or name unchanged if
// it does not parse as one.
func localOf(name string) string {
	n, err := qualname.Parse(name)
	if err != nil {
		return name
	}
	return n.Local()
}

// keyExpr is a boolean combination of key-presence requirements, built by
// AndKeys/OrKeys, for use inside Req (§4.6's "req supports logical
// combinations of keys", matching clojure.spec's (and k1 (or k2 k3))
// req-key expressions).
type keyExpr struct {
	and  bool
	kids []any // each a plain string key name or a nested *keyExpr
}

// AndKeys requires every one of exprs (key names or nested AndKeys/OrKeys
// expressions) to be present.
func AndKeys(exprs ...any) any { return &keyExpr{and: true, kids: exprs} }

// OrKeys requires at least one of exprs to be present.
func OrKeys(exprs ...any) any { return &keyExpr{and: false, kids: exprs} }

// evalKeyExpr walks e, a key name or AndKeys/OrKeys combination, deciding
// presence through present so the same expression shape can be checked
// either by exact qualified name (req) or by local part (req_un).
func evalKeyExpr(e any, present func(string) bool) bool {
	switch x := e.(type) {
	case string:
		return present(x)
	case *keyExpr:
		if x.and {
			for _, k := range x.kids {
				if !evalKeyExpr(k, present) {
					return false
				}
			}
			return true
		}
		for _, k := range x.kids {
			if evalKeyExpr(k, present) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

func flattenKeyNames(e any, out map[string]bool) {
	switch x := e.(type) {
	case string:
		out[x] = true
	case *keyExpr:
		for _, k := range x.kids {
			flattenKeyNames(k, out)
		}
	}
}

// KeysOption configures Keys (§4.6).
type KeysOption func(*keysOptions)

type keysOptions struct {
	req   []any // plain key names or AndKeys/OrKeys expressions
	opt   []string
	reqUn []any // like req, but matched by local name (§4.6)
	optUn []string
}

// Req adds required-key expressions: plain qualified-name strings, or
// AndKeys/OrKeys combinations of them.
func Req(exprs ...any) KeysOption {
	return func(o *keysOptions) { o.req = append(o.req, exprs...) }
}

// Opt documents optional keys: present values are still conformed against
// any spec registered under their name, but their absence is not an error.
func Opt(names ...string) KeysOption {
	return func(o *keysOptions) {
		for _, n := range names {
			o.opt = append(o.opt, n)
		}
	}
}

// ReqUn is Req's unqualified counterpart: each qualified name is looked up
// by its full name to find its value spec, but presence and the value's
// map key are both checked against the name's local part alone, for maps
// whose keys are bare local names rather than qualified names (§4.6).
func ReqUn(exprs ...any) KeysOption {
	return func(o *keysOptions) { o.reqUn = append(o.reqUn, exprs...) }
}

// OptUn is Opt's unqualified counterpart (§4.6).
func OptUn(names ...string) KeysOption {
	return func(o *keysOptions) {
		o.optUn = append(o.optUn, names...)
	}
}

// Keys specs a map[string]any by key presence and, for any key registered
// as a qualified-name spec, by the shape of its value (§4.6). A key with
// no registered spec passes through unconstrained: Keys is open by
// default, matching clojure.spec's map-of-registered-keywords model.
func Keys(opts ...KeysOption) Spec {
	var o keysOptions
	for _, f := range opts {
		f(&o)
	}
	return &keysSpec{opts: o}
}

type keysSpec struct{ opts keysOptions }

func (k *keysSpec) checkReq(m map[string]any) (failed any, ok bool) {
	presentQualified := func(name string) bool { _, ok := m[name]; return ok }
	for _, req := range k.opts.req {
		if !evalKeyExpr(req, presentQualified) {
			return req, false
		}
	}
	presentLocal := func(name string) bool { _, ok := m[localOf(name)]; return ok }
	for _, req := range k.opts.reqUn {
		if !evalKeyExpr(req, presentLocal) {
			return req, false
		}
	}
	return nil, true
}

// unKeyNames returns the qualified names of every key declared through
// ReqUn/OptUn, deduplicated.
func (k *keysSpec) unKeyNames() []string {
	names := map[string]bool{}
	for _, req := range k.opts.reqUn {
		flattenKeyNames(req, names)
	}
	for _, n := range k.opts.optUn {
		names[n] = true
	}
	out := make([]string, 0, len(names))
	for n := range names {
		out = append(out, n)
	}
	return out
}

func (k *keysSpec) conform(v any) any {
	m, ok := v.(map[string]any)
	if !ok {
		return sentinel.Invalid
	}
	if _, ok := k.checkReq(m); !ok {
		return sentinel.Invalid
	}
	out := make(map[string]any, len(m))
	for key, val := range m {
		if sp, err := Get(key); err == nil {
			c := sp.conform(val)
			if sentinel.IsInvalid(c) {
				return sentinel.Invalid
			}
			out[key] = c
			continue
		}
		out[key] = val
	}
	for _, qname := range k.unKeyNames() {
		local := localOf(qname)
		val, present := m[local]
		if !present {
			continue
		}
		sp, err := Get(qname)
		if err != nil {
			continue
		}
		c := sp.conform(val)
		if sentinel.IsInvalid(c) {
			return sentinel.Invalid
		}
		out[local] = c
	}
	return out
}

func (k *keysSpec) unform(v any) any {
	m, ok := v.(map[string]any)
	if !ok {
		return v
	}
	out := make(map[string]any, len(m))
	for key, val := range m {
		if sp, err := Get(key); err == nil {
			out[key] = sp.unform(val)
			continue
		}
		out[key] = val
	}
	for _, qname := range k.unKeyNames() {
		local := localOf(qname)
		val, present := m[local]
		if !present {
			continue
		}
		if sp, err := Get(qname); err == nil {
			out[local] = sp.unform(val)
		}
	}
	return out
}

func (k *keysSpec) explain(path []any, via []string, in []any, v any) []Problem {
	m, ok := v.(map[string]any)
	if !ok {
		return []Problem{{Path: path, Val: v, Reason: "not a map", Via: via, In: in}}
	}
	if req, ok := k.checkReq(m); !ok {
		return []Problem{{Path: path, Val: v, Reason: fmt.Sprintf("missing required key(s): %v", req), Via: via, In: in}}
	}
	for key, val := range m {
		sp, err := Get(key)
		if err != nil {
			continue
		}
		if sentinel.IsInvalid(sp.conform(val)) {
			return sp.explain(append(append([]any{}, path...), key), via, in, val)
		}
	}
	for _, qname := range k.unKeyNames() {
		local := localOf(qname)
		val, present := m[local]
		if !present {
			continue
		}
		sp, err := Get(qname)
		if err != nil {
			continue
		}
		if sentinel.IsInvalid(sp.conform(val)) {
			return sp.explain(append(append([]any{}, path...), local), via, in, val)
		}
	}
	return nil
}

func (k *keysSpec) gen(overrides map[string]genrand.Gen, path []any, rmap *regexop.RMap) genrand.Gen {
	if g, ok := overrideFor(overrides, path); ok {
		return g
	}
	needed := map[string]bool{}
	for _, req := range k.opts.req {
		flattenKeyNames(req, needed)
	}
	neededUn := map[string]bool{}
	for _, req := range k.opts.reqUn {
		flattenKeyNames(req, neededUn)
	}
	gens := make(map[string]genrand.Gen, len(needed))
	for key := range needed {
		sp, err := Get(key)
		if err != nil {
			return nil
		}
		g := sp.gen(overrides, append(append([]any{}, path...), key), rmap)
		if g == nil {
			return nil
		}
		gens[key] = g
	}
	unGens := make(map[string]genrand.Gen, len(neededUn)) // keyed by local name
	for qname := range neededUn {
		sp, err := Get(qname)
		if err != nil {
			return nil
		}
		local := localOf(qname)
		g := sp.gen(overrides, append(append([]any{}, path...), local), rmap)
		if g == nil {
			return nil
		}
		unGens[local] = g
	}
	optGens := map[string]genrand.Gen{}
	for _, key := range k.opts.opt {
		sp, err := Get(key)
		if err != nil {
			continue
		}
		if g := sp.gen(overrides, append(append([]any{}, path...), key), rmap); g != nil {
			optGens[key] = g
		}
	}
	optUnGens := map[string]genrand.Gen{}
	for _, qname := range k.opts.optUn {
		sp, err := Get(qname)
		if err != nil {
			continue
		}
		local := localOf(qname)
		if g := sp.gen(overrides, append(append([]any{}, path...), local), rmap); g != nil {
			optUnGens[local] = g
		}
	}
	return func(r genrand.Rand, size int) (any, bool) {
		out := map[string]any{}
		for key, g := range gens {
			v, ok := g(r, size)
			if !ok {
				return nil, false
			}
			out[key] = v
		}
		for local, g := range unGens {
			v, ok := g(r, size)
			if !ok {
				return nil, false
			}
			out[local] = v
		}
		for key, g := range optGens {
			if r.Range(0, 1) == 1 {
				if v, ok := g(r, size); ok {
					out[key] = v
				}
			}
		}
		for local, g := range optUnGens {
			if r.Range(0, 1) == 1 {
				if v, ok := g(r, size); ok {
					out[local] = v
				}
			}
		}
		return out, true
	}
}

// Merge combines several Keys (or other map-shaped) specs into one whose
// value must conform to every one of specs, with their conformed maps
// unioned together (§4.6).
func Merge(specs ...any) Spec {
	return &mergeSpec{specs: specs}
}

type mergeSpec struct{ specs []any }

func (m *mergeSpec) conform(v any) any {
	out := map[string]any{}
	for _, it := range m.specs {
		sp, _ := mustResolve(it)
		c := sp.conform(v)
		if sentinel.IsInvalid(c) {
			return sentinel.Invalid
		}
		if cm, ok := c.(map[string]any); ok {
			for k, vv := range cm {
				out[k] = vv
			}
		}
	}
	return out
}

func (m *mergeSpec) unform(v any) any {
	out := map[string]any{}
	for _, it := range m.specs {
		sp, _ := mustResolve(it)
		if cm, ok := sp.unform(v).(map[string]any); ok {
			for k, vv := range cm {
				out[k] = vv
			}
		}
	}
	return out
}

func (m *mergeSpec) explain(path []any, via []string, in []any, v any) []Problem {
	var probs []Problem
	for _, it := range m.specs {
		sp, itVia := mustResolve(it)
		probs = append(probs, sp.explain(path, append(append([]string{}, via...), itVia...), in, v)...)
	}
	return probs
}

func (m *mergeSpec) gen(overrides map[string]genrand.Gen, path []any, rmap *regexop.RMap) genrand.Gen {
	if g, ok := overrideFor(overrides, path); ok {
		return g
	}
	gens := make([]genrand.Gen, 0, len(m.specs))
	for _, it := range m.specs {
		sp, _ := mustResolve(it)
		g := sp.gen(overrides, path, rmap)
		if g == nil {
			return nil
		}
		gens = append(gens, g)
	}
	return func(r genrand.Rand, size int) (any, bool) {
		out := map[string]any{}
		for _, g := range gens {
			v, ok := g(r, size)
			if !ok {
				return nil, false
			}
			if cm, ok := v.(map[string]any); ok {
				for k, vv := range cm {
					out[k] = vv
				}
			}
		}
		return out, true
	}
}
