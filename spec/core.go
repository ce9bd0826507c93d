// Package spec implements the spec algebra and evaluation engine: a
// library for describing the expected shape of values with composable
// specs, then asking any spec to decide conformance, destructure a value,
// explain failures with precise paths, and generate random conforming
// values for property-based testing (see SPEC_FULL.md).
package spec

import (
	"fmt"
	"time"

	"specgo.dev/go/internal/qualname"
	"specgo.dev/go/spec/internal/genrand"
	"specgo.dev/go/spec/internal/registry"
	"specgo.dev/go/spec/internal/regexop"
	"specgo.dev/go/spec/internal/sentinel"
)

// INVALID is the sentinel value used throughout the engine as the marker
// for conformance failure (§3). No user spec may legitimately
// produce it as a conformed value.
var INVALID = sentinel.Invalid

// IsInvalid reports whether v is the INVALID sentinel.
func IsInvalid(v any) bool { return sentinel.IsInvalid(v) }

// Problem is a single structured failure record (§3).
type Problem struct {
	Path   []any
	Pred   any
	Val    any
	Reason string
	Via    []string
	In     []any
}

// Spec is the common contract every spec variant implements (§4.2). It is
// a closed sum type: only the variants defined in this package (Predicate,
// And, Or, Tuple, Nilable, Conformer, Every, CollOf, Keys, Merge, Regex,
// FSpec) may satisfy it, since its methods are unexported (§9's "Dynamic
// dispatch on spec variant" design note).
type Spec interface {
	conform(v any) any
	unform(v any) any
	explain(path []any, via []string, in []any, v any) []Problem
	gen(overrides map[string]genrand.Gen, path []any, rmap *regexop.RMap) genrand.Gen
}

var reg = registry.New()

func init() {
	reg.Reset(builtins())
}

func asRegistryName(x any) (string, bool) {
	s, ok := x.(string)
	return s, ok
}

// Def registers spec under name in the global registry (§4.1). name must
// be a qualified name ("ns/local"). specOrName is a Spec, another
// qualified name (registering an alias), or a bare predicate (a
// type/class, value set, textual pattern, or callable), which is wrapped
// as a Predicate spec.
func Def(name string, specOrName any) {
	n, err := qualname.Parse(name)
	if err != nil {
		panic(&InvalidSpecError{Msg: err.Error()})
	}
	var toStore any
	switch v := specOrName.(type) {
	case Spec:
		toStore = v
	case string:
		if _, err := qualname.Parse(v); err != nil {
			panic(&InvalidSpecError{Msg: fmt.Sprintf("def %s: alias target %q: %v", name, v, err)})
		}
		toStore = v
	default:
		toStore = Predicate(v)
	}
	reg.Def(n.String(), toStore)
}

// Get looks up the spec registered under name, following any alias chain.
func Get(name string) (Spec, error) {
	n, err := qualname.Parse(name)
	if err != nil {
		return nil, err
	}
	resolved, _, err := registry.Resolve(n.String(), reg.Snapshot(), asRegistryName)
	if err != nil {
		return nil, err
	}
	sp, ok := resolved.(Spec)
	if !ok {
		return nil, fmt.Errorf("spec: %q does not resolve to a spec", name)
	}
	return sp, nil
}

// ResetRegistry discards all definitions and restores the fixed built-in
// set (§4.1, §6.3).
func ResetRegistry() {
	reg.Reset(builtins())
}

// resolveSpecOrName accepts a Spec, a qualified-name string, or a bare
// predicate, and returns the resolved Spec plus the via-chain of names
// traversed to reach it.
func resolveSpecOrName(s any) (Spec, []string, error) {
	switch v := s.(type) {
	case Spec:
		return v, nil, nil
	case string:
		if _, err := qualname.Parse(v); err != nil {
			return nil, nil, err
		}
		resolved, chain, err := registry.Resolve(v, reg.Snapshot(), asRegistryName)
		if err != nil {
			return nil, chain, err
		}
		sp, ok := resolved.(Spec)
		if !ok {
			return nil, chain, fmt.Errorf("spec: %q does not resolve to a spec", v)
		}
		return sp, chain, nil
	default:
		return Predicate(v), nil, nil
	}
}

func mustResolve(s any) (Spec, []string) {
	sp, via, err := resolveSpecOrName(s)
	if err != nil {
		panic(&InvalidSpecError{Msg: err.Error()})
	}
	return sp, via
}

// Conform decides whether v conforms to s, returning either a (possibly
// transformed) conformed value or the INVALID sentinel (§4.2).
func Conform(s any, v any) any {
	sp, _ := mustResolve(s)
	return sp.conform(v)
}

// Unform inverts Conform: unform(s, conform(s, v)) == v whenever conform
// succeeded and s is built only from non-transforming parts, or from
// conformers supplied with a correct inverse (§3).
func Unform(s any, v any) any {
	sp, _ := mustResolve(s)
	return sp.unform(v)
}

// Valid reports whether v conforms to s.
func Valid(s any, v any) bool {
	return !sentinel.IsInvalid(Conform(s, v))
}

// ExplainData returns the problems that explain why v does not conform to
// s, or nil if it does (§4.2).
func ExplainData(s any, v any) []Problem {
	sp, via := mustResolve(s)
	return sp.explain(nil, via, nil, v)
}

// ExplainStr renders ExplainData as the textual form described in §4.9.
func ExplainStr(s any, v any) string {
	return FormatExplain(ExplainData(s, v), v)
}

// Explain writes ExplainStr(s, v) to stdout.
func Explain(s any, v any) {
	fmt.Println(ExplainStr(s, v))
}

// GenOverrides maps a registered spec name or dotted path to a generator
// used in place of that sub-spec's default (§3's "Overrides").
type GenOverrides map[string]genrand.Gen

// Gen returns a generator for s, or a NoGenError if none can be built
// without an override (§4.2, §7).
func Gen(s any, overrides GenOverrides) (genrand.Gen, error) {
	sp, _ := mustResolve(s)
	rmap := regexop.NewRMap(Cfg.RecursionLimit)
	g := sp.gen(overrides, nil, rmap)
	if g == nil {
		return nil, &NoGenError{Path: nil, Spec: s}
	}
	return g, nil
}

// WithGen returns a copy of s that always generates using g instead of its
// default generator.
func WithGen(s Spec, g genrand.Gen) Spec {
	return &withGen{Spec: s, g: g}
}

type withGen struct {
	Spec
	g genrand.Gen
}

func (w *withGen) gen(map[string]genrand.Gen, []any, *regexop.RMap) genrand.Gen { return w.g }

// ExerciseResult pairs a generated value with its conformed form.
type ExerciseResult struct {
	Value     any
	Conformed any
}

// Exercise generates n values for s and conforms each, for interactive
// inspection (§6.1, §13).
func Exercise(s any, n int, overrides GenOverrides) ([]ExerciseResult, error) {
	sp, _ := mustResolve(s)
	rmap := regexop.NewRMap(Cfg.RecursionLimit)
	g := sp.gen(overrides, nil, rmap)
	if g == nil {
		return nil, &NoGenError{Path: nil, Spec: s}
	}
	rnd := genrand.NewDefault(uint64(time.Now().UnixNano()))
	out := make([]ExerciseResult, 0, n)
	for i := 0; i < n; i++ {
		v, ok := g(rnd, 10)
		if !ok {
			return nil, &NoGenError{Path: nil, Spec: s}
		}
		out = append(out, ExerciseResult{Value: v, Conformed: sp.conform(v)})
	}
	return out, nil
}

// Assert returns v unchanged if Cfg.CheckAsserts is false; otherwise it
// conforms v against s and panics with AssertionFailed if it does not
// conform (§7).
func Assert(s any, v any) any {
	if !Cfg.CheckAsserts {
		return v
	}
	if sentinel.IsInvalid(Conform(s, v)) {
		panic(&AssertionFailed{Explain: ExplainData(s, v)})
	}
	return v
}
