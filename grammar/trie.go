package grammar

import "github.com/jrs026/joshua/symbol"

// TrieNode is a position within a grammar's source-RHS trie, analogous to
// an LR(0) item's goto-set traversal, adapted from "advance an LR(0) item
// across a symbol" to "advance a dot position across a symbol of a
// source RHS".
type TrieNode interface {
	// MatchOne returns the child reached by consuming sym, or (nil, false)
	// if no rule's source RHS continues with sym at this position.
	MatchOne(sym symbol.ID) (TrieNode, bool)
	// Rules returns the RuleCollection completed at this node, or nil if
	// no rule's source RHS ends exactly here.
	Rules() *RuleCollection
}

// Trie roots a grammar's source-RHS index.
type Trie interface {
	Root() TrieNode
}

// Grammar is the interface the chart driver needs from a loaded SCFG
// grammar. Grammar loading and trie construction from rule extraction are
// out of scope for this module; MemGrammar below is a minimal reference
// implementation sufficient for tests and cmd/chartdump.
type Grammar interface {
	TrieRoot() TrieNode
	// HasRuleForSpan reports whether this grammar could possibly produce
	// a rule covering span (i,j) of a sentence of length n, e.g. a glue
	// grammar restricting itself to spans starting at 0.
	HasRuleForSpan(i, j, n uint64) bool
}

// --- in-memory reference implementation -------------------------------

type memTrieNode struct {
	children map[symbol.ID]*memTrieNode
	rules    *RuleCollection
}

func newMemTrieNode() *memTrieNode {
	return &memTrieNode{children: make(map[symbol.ID]*memTrieNode)}
}

func (n *memTrieNode) MatchOne(sym symbol.ID) (TrieNode, bool) {
	child, ok := n.children[sym]
	if !ok {
		return nil, false
	}
	return child, true
}

func (n *memTrieNode) Rules() *RuleCollection {
	return n.rules
}

func (n *memTrieNode) child(sym symbol.ID) *memTrieNode {
	c, ok := n.children[sym]
	if !ok {
		c = newMemTrieNode()
		n.children[sym] = c
	}
	return c
}

// MemGrammar is a minimal in-memory Grammar backed by a hand-built trie.
// Construct with NewMemGrammar and populate with AddRule.
type MemGrammar struct {
	root      *memTrieNode
	spanGuard func(i, j, n uint64) bool
}

// NewMemGrammar creates an empty MemGrammar. By default HasRuleForSpan
// always returns true; call SetSpanGuard to restrict it (e.g. for a
// glue grammar).
func NewMemGrammar() *MemGrammar {
	return &MemGrammar{
		root:      newMemTrieNode(),
		spanGuard: func(i, j, n uint64) bool { return true },
	}
}

// SetSpanGuard installs a predicate governing HasRuleForSpan.
func (g *MemGrammar) SetSpanGuard(guard func(i, j, n uint64) bool) {
	g.spanGuard = guard
}

// AddRule inserts a rule into the trie, indexed by its source RHS.
func (g *MemGrammar) AddRule(r *Rule) {
	node := g.root
	for _, sym := range r.SourceRHS {
		node = node.child(sym)
	}
	if node.rules == nil {
		node.rules = NewRuleCollection(r)
	} else {
		node.rules.Add(r)
	}
}

// TrieRoot implements Grammar.
func (g *MemGrammar) TrieRoot() TrieNode {
	return g.root
}

// HasRuleForSpan implements Grammar.
func (g *MemGrammar) HasRuleForSpan(i, j, n uint64) bool {
	return g.spanGuard(i, j, n)
}
