package spec

import (
	"fmt"
	"reflect"
	"strings"

	"specgo.dev/go/spec/internal/genrand"
)

// toSlice coerces v to a []any if it is seqable: a []any directly, or any
// other slice/array reflectable element-wise. ok is false for anything
// else (including maps and scalars).
func toSlice(v any) (out []any, ok bool) {
	if s, is := v.([]any); is {
		return s, true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		out = make([]any, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			out[i] = rv.Index(i).Interface()
		}
		return out, true
	default:
		return nil, false
	}
}

// toPairs coerces v into an ordered slice of [2]any key/value pairs: a
// native Go map (order nondeterministic, since Go maps carry none), or a
// []any of [2]any entries (order preserved as given).
func toPairs(v any) (out [][2]any, ok bool) {
	if pairs, is := v.([][2]any); is {
		return pairs, true
	}
	if seq, is := v.([]any); is {
		out = make([][2]any, 0, len(seq))
		for _, e := range seq {
			pair, is := e.([2]any)
			if !is {
				return nil, false
			}
			out = append(out, pair)
		}
		return out, true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map {
		return nil, false
	}
	out = make([][2]any, 0, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		out = append(out, [2]any{iter.Key().Interface(), iter.Value().Interface()})
	}
	return out, true
}

// shapeInto converts a []any of already-conformed elements into the
// collection shape sample describes: a plain []any by default, or a
// reflect-driven slice of sample's type when sample is a slice. A sample
// of any other kind is ignored and the []any is returned.
func shapeInto(elems []any, sample any) any {
	if sample == nil {
		return elems
	}
	st := reflect.TypeOf(sample)
	if st.Kind() != reflect.Slice {
		return elems
	}
	out := reflect.MakeSlice(st, 0, len(elems))
	for _, e := range elems {
		out = reflect.Append(out, reflect.ValueOf(e))
	}
	return out.Interface()
}

func pathKey(path []any) string {
	parts := make([]string, len(path))
	for i, p := range path {
		parts[i] = fmt.Sprint(p)
	}
	return strings.Join(parts, ".")
}

func overrideFor(overrides map[string]genrand.Gen, path []any) (genrand.Gen, bool) {
	g, ok := overrides[pathKey(path)]
	return g, ok
}
