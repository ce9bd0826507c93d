// Package specdebug holds the process-wide SPECGO_DEBUG trace flags.
package specdebug

import (
	"sync"

	"specgo.dev/go/internal/envflag"
)

// Flags holds the set of SPECGO_DEBUG flags. It is initialized by Init.
var Flags Config

// Config holds the set of known SPECGO_DEBUG flags. These are tracing
// toggles only; the numeric engine knobs from §6.1 (recursion limit,
// fspec iterations, collection sampling limits) live in spec.Config
// instead, since envflag only supports boolean fields.
type Config struct {
	// LogDeriv traces every deriv call taken by the regex-op engine: the
	// node kind and the consumed element.
	LogDeriv bool

	// LogGen traces recursion-limit pruning decisions made by re_gen for
	// Rep nodes.
	LogGen bool

	// LogRegistry traces def/reg_resolve calls against the global registry.
	LogRegistry bool
}

// Init initializes Flags. Note: this isn't named "init" because we don't
// always want it to be called (for example not in deterministic tests),
// and because we want the failure mode to be one of error, not panic,
// which would be the only option if it were a top-level init function.
func Init() error {
	return initOnce()
}

var initOnce = sync.OnceValue(func() error {
	return envflag.Init(&Flags, "SPECGO_DEBUG")
})
