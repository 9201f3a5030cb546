/*
Package feature defines the FeatureFunction contract consumed by the bin
package's compute_item step, plus a small bank of concrete feature
functions (a rule-score feature, a word-penalty feature, and an n-gram
language-model feature). Real LM state computation is an embedding
application's concern; what follows is the minimal bank needed to
exercise and test the core.
*/
package feature

import (
	"strings"

	"github.com/jrs026/joshua/grammar"
	"github.com/jrs026/joshua/hypergraph"
)

// Contribution is what a single FeatureFunction contributes to scoring one
// rule application: a transition cost, a future-cost estimate (folded into
// est_total_cost), and a fragment of the resulting HGNode's equivalence
// signature.
type Contribution struct {
	Cost             float64
	FutureCost       float64
	StateFingerprint string
}

// FeatureFunction scores a single rule application against its antecedent
// HGNodes (one per nonterminal slot, in slot order).
type FeatureFunction interface {
	Name() string
	Transition(rule *grammar.Rule, antecedents []*hypergraph.HGNode, i, j uint64) Contribution
}

// Bank aggregates a list of FeatureFunctions into the single
// (transitionCost, futureCost, signature) triple bin.ComputeItem needs.
type Bank []FeatureFunction

// Compute runs every feature function over (rule, antecedents, i, j) and
// folds their contributions together. The resulting signature is every
// feature function's fingerprint, joined by '|': two HGNodes are
// equivalent only if every feature function considers them equivalent.
func (b Bank) Compute(rule *grammar.Rule, antecedents []*hypergraph.HGNode, i, j uint64) (transitionCost, futureCost float64, signature string) {
	var parts []string
	for _, ff := range b {
		c := ff.Transition(rule, antecedents, i, j)
		transitionCost += c.Cost
		futureCost += c.FutureCost
		parts = append(parts, c.StateFingerprint)
	}
	return transitionCost, futureCost, strings.Join(parts, "|")
}
