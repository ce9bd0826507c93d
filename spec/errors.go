package spec

import "fmt"

// InvalidSpecError is raised when a spec cannot be built or resolved: an
// unparseable qualified name, an alias cycle, or a predicate value that
// compilePredicate does not recognize.
type InvalidSpecError struct {
	Msg string
}

func (e *InvalidSpecError) Error() string { return "spec: invalid spec: " + e.Msg }

// NoGenError is returned by Gen and Exercise when no generator can be
// derived for Spec without an override (§4.2, §7).
type NoGenError struct {
	Path []any
	Spec any
}

func (e *NoGenError) Error() string {
	if len(e.Path) == 0 {
		return fmt.Sprintf("spec: unable to construct gen for %#v", e.Spec)
	}
	return fmt.Sprintf("spec: unable to construct gen for %#v at path %v", e.Spec, e.Path)
}

// AssertionFailed is the panic value raised by Assert when a value does
// not conform and Cfg.CheckAsserts is enabled.
type AssertionFailed struct {
	Explain []Problem
}

func (e *AssertionFailed) Error() string {
	return FormatExplain(e.Explain, nil)
}
