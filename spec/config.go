package spec

// Config holds the tunables that affect generation and runtime checking
// across the whole engine (§6, §7). There is a single process-wide Cfg,
// mutated only through Configure, mirroring the teacher's small
// package-level settings structs rather than threading a config value
// through every call.
type Config struct {
	// RecursionLimit bounds how many times generation may re-enter the
	// same Rep node id while building a value for a regex grammar
	// (§4.7.4); Alt nodes are not counted.
	RecursionLimit int
	// ReGenMax bounds how many repetitions a ZeroOrMore/OneOrMore
	// generates.
	ReGenMax int
	// ReGenIterations bounds how many times Constrained resamples its base
	// generator looking for a value that satisfies its predicates.
	ReGenIterations int
	// FSpecIterations is how many generative trials an FSpec's conform
	// runs by default: generate args, call the function, check ret (and
	// fn, if set) (§4.8, §6.1).
	FSpecIterations int
	// CollCheckLimit bounds how many elements Every samples when checking
	// membership; with all sampled elements valid, a collection conforms
	// even if it is far larger than this limit (§4.5, §6.1).
	CollCheckLimit int
	// CollErrorLimit bounds how many problems Every's explain reports in
	// one call (§6.1).
	CollErrorLimit int
	// CheckAsserts gates whether Assert actually conforms its argument;
	// when false Assert is a no-op, for disabling runtime checks in
	// production builds (§7).
	CheckAsserts bool
}

// Cfg is the active configuration; ResetConfig restores defaultConfig.
var Cfg = defaultConfig()

func defaultConfig() Config {
	return Config{
		RecursionLimit:  4,
		ReGenMax:        8,
		ReGenIterations: 100,
		FSpecIterations: 21,
		CollCheckLimit:  101,
		CollErrorLimit:  20,
		CheckAsserts:    false,
	}
}

// Configure applies f to a copy of the current Cfg and installs the
// result, e.g. Configure(func(c *Config) { c.CheckAsserts = false }).
func Configure(f func(*Config)) {
	c := Cfg
	f(&c)
	Cfg = c
}

// ResetConfig restores Cfg to its defaults.
func ResetConfig() {
	Cfg = defaultConfig()
}
