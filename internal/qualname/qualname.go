// Package qualname parses and validates the qualified names used as
// registry keys throughout specgo: a two-part symbolic identifier of the
// form "namespace/local" (§3 of the spec).
package qualname

import (
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Name is a parsed qualified name.
type Name struct {
	full  string
	ns    string
	local string
}

// INVALID is a qualified name reserved for conformance failure. The engine
// itself marks failure with the separate spec.INVALID sentinel value.
var INVALID = Name{full: "specgo.invalid/invalid", ns: "specgo.invalid", local: "invalid"}

// Parse splits s into its namespace and local parts. s must contain exactly
// one '/' separating two non-empty parts. Unicode input is normalized to
// NFC first, so visually identical names compare equal regardless of the
// normal form the caller used to build the string.
func Parse(s string) (Name, error) {
	s = norm.NFC.String(s)
	i := strings.IndexByte(s, '/')
	if i <= 0 || i == len(s)-1 {
		return Name{}, fmt.Errorf("qualname: %q is not a qualified name of the form ns/local", s)
	}
	ns, local := s[:i], s[i+1:]
	if strings.ContainsRune(local, '/') {
		return Name{}, fmt.Errorf("qualname: %q has more than one '/'", s)
	}
	return Name{full: s, ns: ns, local: local}, nil
}

// MustParse is like Parse but panics on error; for use with constant names.
func MustParse(s string) Name {
	n, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return n
}

// String returns the full "ns/local" form.
func (n Name) String() string { return n.full }

// Namespace returns the part before '/'.
func (n Name) Namespace() string { return n.ns }

// Local returns the part after '/'.
func (n Name) Local() string { return n.local }

// IsZero reports whether n is the zero Name (not a valid qualified name).
func (n Name) IsZero() bool { return n.full == "" }

// Equal reports whether two names denote the same qualified name.
func (n Name) Equal(o Name) bool { return n.full == o.full }
