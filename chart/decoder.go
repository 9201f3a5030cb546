/*
Package chart implements the chart driver: the CKY-over-lattice outer
loop that seeds axioms, advances every grammar's dot chart, completes
rules into shared bins, closes unary chains, and finally transitions
every span-(0,N) derivation into the goal symbol and returns the
cheapest goal node as the hypergraph root. It generalizes the
classic Earley outer loop from "one Earley set per input token" to "one
bin per (i,j) cell of a lattice", and configures a Decoder through the
functional-options constructor idiom.
*/
package chart

import (
	"github.com/jrs026/joshua/config"
	"github.com/jrs026/joshua/grammar"
	"github.com/jrs026/joshua/symbol"
)

// Decoder holds everything that stays fixed across many Parse calls: the
// loaded grammars, the shared symbol table, the synthetic-rule source,
// and the tunable configuration. Per-sentence state (bins, dot charts,
// diagnostics) is allocated fresh inside Parse, so one Decoder can serve
// concurrently decoded sentences.
type Decoder struct {
	grammars       []grammar.Grammar
	tab            *symbol.Table
	synth          *grammar.SyntheticGrammar
	cfg            config.Options
	numFeatures    int
	haveLM         bool
	oovNonterminal symbol.ID
}

// Option configures a Decoder at construction time.
type Option func(*Decoder)

// WithConfig installs the decoder's tunable Options (beam/fuzz margins,
// cube pruning, k-best cap, timeout). Defaults to config.Defaults().
func WithConfig(cfg config.Options) Option {
	return func(d *Decoder) { d.cfg = cfg }
}

// WithNumFeatures tells the decoder how many components the feature
// vectors of synthesized (OOV, manual, goal) rules need. It must match
// whatever the caller's feature.Bank expects to read by index.
func WithNumFeatures(n int) Option {
	return func(d *Decoder) { d.numFeatures = n }
}

// WithHaveLM marks whether the feature bank includes a language model. The
// flag is passed to grammar.SyntheticGrammar.ConstructOOVRule, which
// builds the same rule either way; an LM cost for OOV rules comes from an
// LM feature function in the bank that checks Rule.IsOOV.
func WithHaveLM(haveLM bool) Option {
	return func(d *Decoder) { d.haveLM = haveLM }
}

// WithOOVNonterminal overrides the nonterminal OOV rules bridge through.
// Defaults to symbol.Untranslated.
func WithOOVNonterminal(nt symbol.ID) Option {
	return func(d *Decoder) { d.oovNonterminal = nt }
}

// NewDecoder creates a Decoder over the given grammars (tried in order at
// every cell) and symbol table.
func NewDecoder(grammars []grammar.Grammar, tab *symbol.Table, opts ...Option) *Decoder {
	d := &Decoder{
		grammars:       grammars,
		tab:            tab,
		cfg:            config.Defaults(),
		numFeatures:    1,
		oovNonterminal: symbol.Untranslated,
	}
	for _, opt := range opts {
		opt(d)
	}
	d.synth = grammar.NewSyntheticGrammar(d.oovNonterminal)
	return d
}
