package spec_test

import (
	"testing"

	"github.com/go-quicktest/qt"

	"specgo.dev/go/spec"
)

func TestBuiltinsRegistered(t *testing.T) {
	spec.ResetRegistry()
	qt.Assert(t, qt.IsTrue(spec.Valid("specgo.core/boolean", true)))
	qt.Assert(t, qt.IsTrue(spec.IsInvalid(spec.Conform("specgo.core/boolean", 1))))
	qt.Assert(t, qt.IsTrue(spec.Valid("specgo.core/positive_integer", 1)))
	qt.Assert(t, qt.IsTrue(spec.IsInvalid(spec.Conform("specgo.core/positive_integer", 0))))
	qt.Assert(t, qt.IsTrue(spec.Valid("specgo.core/natural_integer", 0)))
	qt.Assert(t, qt.IsTrue(spec.Valid("specgo.core/negative_integer", -1)))
	qt.Assert(t, qt.IsTrue(spec.Valid("specgo.core/empty", "")))
	qt.Assert(t, qt.IsTrue(spec.Valid("specgo.core/empty", []any{})))
}

func TestUUIDBuiltinGen(t *testing.T) {
	spec.ResetRegistry()
	g, err := spec.Gen("specgo.contrib/uuid", nil)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Not(qt.IsNil(g)))
}

func TestDecimalBuiltin(t *testing.T) {
	spec.ResetRegistry()
	qt.Assert(t, qt.IsTrue(spec.Valid("specgo.contrib/decimal", "3.14")))
	qt.Assert(t, qt.IsTrue(spec.IsInvalid(spec.Conform("specgo.contrib/decimal", "not-a-number"))))
}
