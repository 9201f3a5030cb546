/*
Package hypergraph implements the packed derivation DAG the chart driver
builds: HGNode ("or" nodes, one per equivalence class of derivations
covering a span under a given LHS and feature state) and HyperEdge ("and"
nodes, one per rule application). It is a signature-deduplicated,
by-reference node store in the shared-packed-parse-forest tradition,
generalized from "dedup by grammar symbol" to "dedup by (LHS,
feature-state-signature)", since an SCFG decoder must keep derivations
separate whenever a feature function (most importantly a language model)
would score them differently downstream, not merely whenever their
source symbols differ.
*/
package hypergraph

import (
	"fmt"

	"github.com/jrs026/joshua/grammar"
	"github.com/jrs026/joshua/symbol"
)

// HGNode is an "or" node: the set of HyperEdges deriving (I, J) under LHS
// with a given feature-state signature. Two derivations of the same span
// under the same LHS are folded into one HGNode iff their feature
// functions produce the same signature.
type HGNode struct {
	I, J      uint64
	LHS       symbol.ID
	Signature string

	Edges []*HyperEdge

	// BestCost is the best (lowest) total cost of any derivation through
	// this node; EstTotalCost additionally folds in the outside/future
	// cost estimate used for pruning and for the bin's sorted view.
	BestCost     float64
	EstTotalCost float64
}

func (n *HGNode) String() string {
	return fmt.Sprintf("[%v (%d,%d) %q]", n.LHS, n.I, n.J, n.Signature)
}

// HyperEdge is an "and" node: one rule application, its antecedent
// HGNodes in slot order, the transition cost this application contributes
// (on top of the antecedents' own BestCost), and the raw per-feature
// state fingerprint that fed into the parent node's Signature.
type HyperEdge struct {
	Rule           *grammar.Rule
	Antecedents    []*HGNode
	TransitionCost float64
	StateFragment  string
}

// TotalCost returns this edge's contribution to a derivation cost: its
// own transition cost plus the best cost of every antecedent.
func (e *HyperEdge) TotalCost() float64 {
	cost := e.TransitionCost
	for _, a := range e.Antecedents {
		cost += a.BestCost
	}
	return cost
}

// New creates a fresh, edge-less HGNode for (i, j, lhs, signature). Bins
// are responsible for indexing nodes by signature and never constructing
// duplicates; package hypergraph only models the node/edge shapes.
func New(i, j uint64, lhs symbol.ID, signature string) *HGNode {
	return &HGNode{I: i, J: j, LHS: lhs, Signature: signature}
}

// AddEdge appends a HyperEdge to n and updates BestCost/EstTotalCost if
// the new edge improves on the current best.
func (n *HGNode) AddEdge(e *HyperEdge, estTotalCost float64) {
	n.Edges = append(n.Edges, e)
	cost := e.TotalCost()
	if len(n.Edges) == 1 || cost < n.BestCost {
		n.BestCost = cost
		n.EstTotalCost = estTotalCost
	}
}

// HyperGraph is the immutable output of a chart parse: a root HGNode
// (the goal node, covering the whole sentence) plus bookkeeping.
type HyperGraph struct {
	Root    *HGNode
	SentID  int
	SentLen uint64
}

// SuperItem is the equivalence class of HGNodes in a cell sharing the
// same LHS nonterminal, conceptually (I, J, LHS) -> list<HGNode>.
// DotItems advance by consuming a whole SuperItem at once, so a rule
// application only has to be instantiated once per distinct LHS
// reachable in a cell, rather than once per HGNode.
type SuperItem struct {
	I, J  uint64
	LHS   symbol.ID
	Nodes []*HGNode
}

// NewSuperItem creates an empty SuperItem for (i, j, lhs).
func NewSuperItem(i, j uint64, lhs symbol.ID) *SuperItem {
	return &SuperItem{I: i, J: j, LHS: lhs}
}

// Add appends a node to the SuperItem's equivalence class.
func (s *SuperItem) Add(n *HGNode) {
	s.Nodes = append(s.Nodes, n)
}

func (s *SuperItem) String() string {
	return fmt.Sprintf("SuperItem(%v, (%d,%d), |%d nodes|)", s.LHS, s.I, s.J, len(s.Nodes))
}
