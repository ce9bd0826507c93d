package spec

import (
	"github.com/cockroachdb/apd/v3"
	"github.com/google/uuid"

	"specgo.dev/go/spec/internal/genrand"
)

// builtins returns the fixed set of specs ResetRegistry restores (§4.1,
// §6.3): the scalar predicates every engine needs out of the box, plus a
// couple of domain ones (uuid, decimal) that exercise this engine's
// supplemental third-party stack.
func builtins() map[string]any {
	b := map[string]any{}
	def := func(name string, sp Spec) { b[name] = sp }

	anySpec := Predicate(func(v any) bool { return true })
	def("specgo.core/any", WithGen(anySpec, func(r genrand.Rand, size int) (any, bool) {
		return r.Choose(0, "", true, []any{}, nil), true
	}))

	booleanSpec := Predicate(func(v any) bool { _, ok := v.(bool); return ok })
	def("specgo.core/boolean", WithGen(booleanSpec, func(r genrand.Rand, size int) (any, bool) {
		return r.Choose(true, false), true
	}))

	positiveInt := Predicate(func(v any) bool { n, ok := v.(int); return ok && n > 0 })
	def("specgo.core/positive_integer", WithGen(positiveInt, func(r genrand.Rand, size int) (any, bool) {
		return r.Range(1, 1_000_000), true
	}))

	naturalInt := Predicate(func(v any) bool { n, ok := v.(int); return ok && n >= 0 })
	def("specgo.core/natural_integer", WithGen(naturalInt, func(r genrand.Rand, size int) (any, bool) {
		return r.Range(0, 1_000_000), true
	}))

	negativeInt := Predicate(func(v any) bool { n, ok := v.(int); return ok && n < 0 })
	def("specgo.core/negative_integer", WithGen(negativeInt, func(r genrand.Rand, size int) (any, bool) {
		return -r.Range(1, 1_000_000), true
	}))

	emptySpec := Predicate(isEmptyValue)
	def("specgo.core/empty", WithGen(emptySpec, func(r genrand.Rand, size int) (any, bool) {
		return []any{}, true
	}))

	uuidSpec := Predicate(func(v any) bool {
		s, ok := v.(string)
		if !ok {
			return false
		}
		_, err := uuid.Parse(s)
		return err == nil
	})
	def("specgo.contrib/uuid", WithGen(uuidSpec, func(r genrand.Rand, size int) (any, bool) {
		return uuid.New().String(), true
	}))

	decimalSpec := Predicate(func(v any) bool {
		switch x := v.(type) {
		case *apd.Decimal:
			return true
		case string:
			_, _, err := apd.NewFromString(x)
			return err == nil
		default:
			return false
		}
	})
	def("specgo.contrib/decimal", WithGen(decimalSpec, func(r genrand.Rand, size int) (any, bool) {
		return apd.New(int64(r.Range(-1_000_000, 1_000_000)), int32(r.Range(-3, 3))), true
	}))

	return b
}

func isEmptyValue(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case string:
		return x == ""
	case map[string]any:
		return len(x) == 0
	default:
		seq, ok := toSlice(v)
		return ok && len(seq) == 0
	}
}
