/*
Package grammar defines the external collaborator interfaces the chart
driver needs from an SCFG grammar (trie lookup, rule collections, and
synthesis of OOV/manual rules), plus a minimal in-memory implementation
(MemGrammar) used by tests and by cmd/chartdump. Grammar loading from an
on-disk format and trie construction from a full rule extraction run are
left to embedding applications.
*/
package grammar

import (
	"fmt"
	"sort"

	"github.com/jrs026/joshua/symbol"
)

// Rule is an SCFG production: a left-hand-side nonterminal, a source-side
// RHS (mixed terminals and nonterminal slots), a parallel target-side RHS,
// the number of nonterminal slots (arity), and a fixed-length feature vector.
type Rule struct {
	LHS       symbol.ID
	SourceRHS []symbol.ID // nonterminal slots interleaved with terminals
	TargetRHS []symbol.ID
	Arity     int
	Features  []float64

	// IsOOV marks a rule synthesized per lattice-arc terminal, one that no
	// loaded grammar covers. Feature functions may special-case it, e.g. to charge a fixed
	// out-of-vocabulary LM cost instead of scoring the (absent) n-gram.
	IsOOV bool
	// IsManual marks a rule synthesized from a ConstraintSpan's RULE entry.
	IsManual bool
}

func (r *Rule) String() string {
	return fmt.Sprintf("%v -> %v (arity %d)", r.LHS, r.SourceRHS, r.Arity)
}

// LHSSymbol and TargetRHSSymbols satisfy package constraint's RuleView,
// so a *Rule can be passed straight to constraint.Table.Accepts without
// package constraint needing to import package grammar.
func (r *Rule) LHSSymbol() symbol.ID { return r.LHS }

func (r *Rule) TargetRHSSymbols() []symbol.ID { return r.TargetRHS }

// RuleCollection is the set of rules sitting at a single trie node, i.e.
// rules sharing the same source RHS up to terminal identity. All rules in
// a collection share the same arity.
type RuleCollection struct {
	arity int
	rules []*Rule
	dirty bool
}

// NewRuleCollection builds a RuleCollection. All rules must share the same
// arity; NewRuleCollection panics otherwise, since a trie node with mixed
// arities would violate the trie's own indexing invariant.
func NewRuleCollection(rules ...*Rule) *RuleCollection {
	rc := &RuleCollection{}
	for _, r := range rules {
		rc.Add(r)
	}
	return rc
}

// Add inserts a rule into the collection.
func (rc *RuleCollection) Add(r *Rule) {
	if len(rc.rules) == 0 {
		rc.arity = r.Arity
	} else if r.Arity != rc.arity {
		panic(fmt.Sprintf("grammar: rule collection arity mismatch: %d != %d", r.Arity, rc.arity))
	}
	rc.rules = append(rc.rules, r)
	rc.dirty = true
}

// Arity returns the shared nonterminal-slot count of every rule in rc.
func (rc *RuleCollection) Arity() int {
	return rc.arity
}

// Len reports how many rules rc holds.
func (rc *RuleCollection) Len() int {
	return len(rc.rules)
}

// SortedRules returns the rules ordered ascending by a rule-intrinsic cost:
// the unweighted sum of the feature vector. This is a cheap static ordering
// used to prioritize cube-pruning axes and exhaustive enumeration; the real
// cost (weighted, combined with antecedents) is only known after
// FeatureFunction scoring in package bin.
func (rc *RuleCollection) SortedRules() []*Rule {
	if rc.dirty {
		sort.SliceStable(rc.rules, func(i, j int) bool {
			return intrinsicCost(rc.rules[i]) < intrinsicCost(rc.rules[j])
		})
		rc.dirty = false
	}
	out := make([]*Rule, len(rc.rules))
	copy(out, rc.rules)
	return out
}

func intrinsicCost(r *Rule) float64 {
	var sum float64
	for _, f := range r.Features {
		sum += f
	}
	return sum
}
