package grammar

import "github.com/jrs026/joshua/symbol"

// SyntheticGrammar synthesizes the two kinds of rule the chart driver
// builds itself rather than retrieving from a loaded grammar: OOV rules
// (one per lattice-arc terminal) and manual rules (one per RULE entry of
// a ConstraintSpan). It is a dedicated home for these rules rather than
// borrowing the first configured grammar.
type SyntheticGrammar struct {
	oovNonterminal symbol.ID
}

// NewSyntheticGrammar creates a SyntheticGrammar whose OOV rules bridge
// through oovNonterminal (typically symbol.Untranslated, but callers may
// configure a different bridging nonterminal).
func NewSyntheticGrammar(oovNonterminal symbol.ID) *SyntheticGrammar {
	return &SyntheticGrammar{oovNonterminal: oovNonterminal}
}

// ConstructOOVRule synthesizes an arity-0 rule for a single lattice-arc
// terminal: source and target RHS are both the terminal itself. Feature
// values are zero, except that the rule is flagged IsOOV so an n-gram LM
// feature function may charge its own out-of-vocabulary cost when haveLM
// is true; the synthetic grammar itself never bakes an LM cost into the
// static feature vector, since it does not know the LM's feature index.
func (g *SyntheticGrammar) ConstructOOVRule(numFeatures int, terminal symbol.ID, haveLM bool) *Rule {
	return &Rule{
		LHS:       g.oovNonterminal,
		SourceRHS: []symbol.ID{terminal},
		TargetRHS: []symbol.ID{terminal},
		Arity:     0,
		Features:  make([]float64, numFeatures),
		IsOOV:     true,
	}
}

// ConstructManualRule synthesizes a rule from a ConstraintSpan's RULE
// entry. Manual rules are arity-0 only; callers are
// responsible for passing arity 0 (package constraint only models the
// data; package chart always passes arity 0 and rejects a feature vector
// of the wrong length as MalformedConstraint at seeding time).
func (g *SyntheticGrammar) ConstructManualRule(lhs symbol.ID, sourceRHS, targetRHS []symbol.ID, features []float64, arity int) *Rule {
	return &Rule{
		LHS:       lhs,
		SourceRHS: sourceRHS,
		TargetRHS: targetRHS,
		Arity:     arity,
		Features:  features,
		IsManual:  true,
	}
}

// ConstructGoalRule synthesizes the arity-1 pseudo-rule "GOAL -> fromLHS"
// used to transition a span-(0,N) derivation into the designated goal
// symbol. Its static feature vector is all zero: any finalization
// cost (e.g. an n-gram LM's end-of-sentence cost) belongs to a feature
// function that special-cases rule.LHS == goalSymbol, not to the
// synthetic grammar.
func (g *SyntheticGrammar) ConstructGoalRule(goalSymbol, fromLHS symbol.ID, numFeatures int) *Rule {
	return &Rule{
		LHS:       goalSymbol,
		SourceRHS: []symbol.ID{fromLHS},
		TargetRHS: []symbol.ID{fromLHS},
		Arity:     1,
		Features:  make([]float64, numFeatures),
	}
}

// ZeroFeatures returns a fresh all-zero feature vector of the given
// length, used to force a hard-rule span's manual rule to contribute no
// cost.
func ZeroFeatures(numFeatures int) []float64 {
	return make([]float64, numFeatures)
}
