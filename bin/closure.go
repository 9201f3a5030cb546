package bin

import (
	"github.com/jrs026/joshua/feature"
	"github.com/jrs026/joshua/grammar"
	"github.com/jrs026/joshua/hypergraph"
)

// UnaryClosure applies every unary rule (arity 1, matched directly off
// the grammar's trie root) reachable from the nodes already in the bin,
// agenda-style, until no new node is produced.
//
// Acyclicity: a node is only pushed onto the agenda the first time
// AddDeductionInBin creates it. A unary chain that cycles back to an
// already-seen (LHS, signature) merges into the existing node instead of
// creating a new one, so it is never re-enqueued: the agenda can only
// grow by the finite number of distinct (LHS, signature) pairs reachable
// in this cell, guaranteeing termination without an explicit visited-rule
// check.
func (b *Bin) UnaryClosure(g grammar.Grammar, bank feature.Bank, accept Accept) {
	agenda := append([]*hypergraph.HGNode(nil), b.allNodes...)
	for len(agenda) > 0 {
		node := agenda[0]
		agenda = agenda[1:]

		child, ok := g.TrieRoot().MatchOne(node.LHS)
		if !ok {
			continue
		}
		rules := child.Rules()
		if rules == nil || rules.Arity() != 1 {
			continue
		}
		for _, r := range rules.SortedRules() {
			if !accept(r) {
				continue
			}
			before := len(b.allNodes)
			result := b.AddDeductionInBin(r, []*hypergraph.HGNode{node}, bank)
			if result != nil && len(b.allNodes) > before {
				agenda = append(agenda, result)
			}
		}
	}
}

// TransitToGoal completes a GOAL pseudo-rule over a single root
// antecedent, producing (or merging into) the bin's goal HGNode.
//
// TransitToGoal itself never adds a finalization cost: if LM
// finalization scoring is wanted, it belongs to a feature function that
// special-cases the GOAL rule (e.g. by checking rule.LHS), not to this
// method. This keeps goal-transition cost a property of the configured
// feature bank, matching how every other transition cost is computed.
func (b *Bin) TransitToGoal(goalRule *grammar.Rule, root *hypergraph.HGNode, bank feature.Bank) *hypergraph.HGNode {
	return b.AddDeductionInBin(goalRule, []*hypergraph.HGNode{root}, bank)
}
