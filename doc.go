/*
Package joshua implements the chart-parsing core of a synchronous
context-free grammar (SCFG) decoder for statistical machine translation.

Given a source-side word lattice, a set of weighted SCFG grammars, a bank
of feature functions (optionally including an n-gram language model), and
optional per-span constraints, package chart builds a packed hypergraph
of all derivations whose source projection covers the lattice, scored
under the feature functions and subject to pruning.

The packages making up the core are, leaves first:

	symbol      shared, mintable terminal/nonterminal id table
	lattice     read-only DAG of source positions with weighted arcs
	grammar     grammar/trie adapter: matchOne, rule collections, synthetic rules
	constraint  span-indexed LHS/RHS filters and hard-rule spans
	feature     feature-function bank, including an n-gram LM feature
	hypergraph  the packed derivation DAG: HGNode ("or"), HyperEdge ("and")
	dotchart    Earley-style dot-item advancement through a grammar trie
	bin         per-cell node store: pruning, cube-pruning, unary closure
	chart       the CKY-over-lattice driver tying all of the above together
	diagnostics per-decode counters, independent of global state
	config      decoder configuration flags bound through schuko/gconf

A thorough discussion of the algorithm this package implements may be
found in the documentation of package chart.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2026 the joshua authors.
*/
package joshua
