// Package shapeeq provides the "shape-equal" comparison the data model
// (§3) requires of conform: a non-transforming spec's conformed output
// must compare structurally equal to its input, across the plain maps,
// slices and scalars values flow through this engine as.
package shapeeq

import "github.com/google/go-cmp/cmp"

// Equal reports whether a and b are deeply, structurally equal.
func Equal(a, b any) bool {
	return cmp.Equal(a, b)
}
