/*
Package config binds the chart driver's tunables through
github.com/npillmayer/schuko/gconf, a global configuration facility
(gconf.GetBool("panic-on-parser-stuck") is one familiar use of the
pattern this follows), and exposes them as a typed Options value a
chart.Decoder can be constructed with.

gconf centralizes flags an embedding application wants to set once (from a
config file, CLI flags, or env vars) and have every subsystem read by key,
rather than threading a bespoke options struct through every call site.
Decoder construction still accepts explicit functional options (package
chart's idiom) for callers who are not running inside a gconf-configured
application, e.g. unit tests.
*/
package config

import "github.com/npillmayer/schuko/gconf"

// Keys are the gconf flag names this package reads. An embedding
// application sets these through whatever mechanism it initializes gconf
// with (flags, file, env); Load falls back to the given defaults for any
// key gconf does not know about.
const (
	KeyUseCubePrune  = "joshua-use-cube-prune"
	KeyBeamWidth     = "joshua-beam-width"
	KeyFuzz1         = "joshua-fuzz1"
	KeyFuzz2         = "joshua-fuzz2"
	KeyKBest         = "joshua-k-best"
	KeySentenceTimeo = "joshua-sentence-timeout-ms"
)

// Options are the decoder's tunables: whether to use cube pruning or
// exhaustive combination, the beam/fuzz pruning thresholds, the k-best
// cap (a per-SuperItem node cap, also used as the cube-pruning pop
// limit), and a per-sentence timeout.
type Options struct {
	UseCubePrune      bool
	BeamWidth         float64
	Fuzz1             float64
	Fuzz2             float64
	KBest             int
	SentenceTimeoutMs int
}

// Defaults returns conservative defaults: exhaustive combination, no
// beam/fuzz pruning (zero margins and an unbounded k), no timeout.
func Defaults() Options {
	return Options{
		UseCubePrune:      false,
		BeamWidth:         0,
		Fuzz1:             0,
		Fuzz2:             0,
		KBest:             0,
		SentenceTimeoutMs: 0,
	}
}

// Load reads gconf for every key above, falling back to defaults' fields
// when gconf has no value configured. Call this once at application
// startup, after the embedding program has initialized gconf.
func Load(defaults Options) Options {
	opts := defaults
	if gconf.IsSet(KeyUseCubePrune) {
		opts.UseCubePrune = gconf.GetBool(KeyUseCubePrune)
	}
	if gconf.IsSet(KeyBeamWidth) {
		opts.BeamWidth = gconf.GetFloat64(KeyBeamWidth)
	}
	if gconf.IsSet(KeyFuzz1) {
		opts.Fuzz1 = gconf.GetFloat64(KeyFuzz1)
	}
	if gconf.IsSet(KeyFuzz2) {
		opts.Fuzz2 = gconf.GetFloat64(KeyFuzz2)
	}
	if gconf.IsSet(KeyKBest) {
		opts.KBest = gconf.GetInt(KeyKBest)
	}
	if gconf.IsSet(KeySentenceTimeo) {
		opts.SentenceTimeoutMs = gconf.GetInt(KeySentenceTimeo)
	}
	return opts
}
