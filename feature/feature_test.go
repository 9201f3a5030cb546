package feature

import (
	"testing"

	"github.com/jrs026/joshua/grammar"
	"github.com/jrs026/joshua/symbol"
)

func TestRuleScoreFeatureReadsIndexedComponent(t *testing.T) {
	r := &grammar.Rule{Features: []float64{1.0, 2.0, 3.0}}
	f := RuleScoreFeature{Index: 1, Weight: 10}
	c := f.Transition(r, nil, 0, 1)
	if c.Cost != 20 {
		t.Errorf("Cost = %v, want 20", c.Cost)
	}
}

func TestWordPenaltyFeatureCountsTerminalsOnly(t *testing.T) {
	tab := symbol.NewTable()
	w1 := tab.AddTerminal("w1")
	w2 := tab.AddTerminal("w2")
	nt := tab.AddNonterminal("X")
	r := &grammar.Rule{TargetRHS: []symbol.ID{w1, nt, w2}}
	f := WordPenaltyFeature{Weight: 0.5}
	c := f.Transition(r, nil, 0, 1)
	if c.Cost != 1.0 {
		t.Errorf("Cost = %v, want 1.0 (2 terminals * 0.5)", c.Cost)
	}
}

func TestNGramLMFeatureScoresOOVSeparately(t *testing.T) {
	lm := NewToyLM(2, 9.0)
	f := NGramLMFeature{LM: lm, OOVCost: 100}
	r := &grammar.Rule{IsOOV: true}
	c := f.Transition(r, nil, 0, 1)
	if c.Cost != 100 {
		t.Errorf("OOV cost = %v, want 100", c.Cost)
	}
}

func TestNGramLMFeatureFallsBackToDefaultCost(t *testing.T) {
	tab := symbol.NewTable()
	w := tab.AddTerminal("w")
	lm := NewToyLM(2, 9.0)
	f := NGramLMFeature{LM: lm}
	r := &grammar.Rule{TargetRHS: []symbol.ID{w}}
	c := f.Transition(r, nil, 0, 1)
	if c.Cost != 9.0 {
		t.Errorf("Cost = %v, want default 9.0 for an unseen word", c.Cost)
	}
}

func TestBankComputeSumsCostsAndJoinsSignature(t *testing.T) {
	tab := symbol.NewTable()
	w := tab.AddTerminal("w")
	bank := Bank{
		RuleScoreFeature{Index: 0, Weight: 1},
		WordPenaltyFeature{Weight: 1},
	}
	r := &grammar.Rule{Features: []float64{2}, TargetRHS: []symbol.ID{w}}
	cost, future, sig := bank.Compute(r, nil, 0, 1)
	if cost != 3 { // 2 (rule score) + 1 (word penalty)
		t.Errorf("cost = %v, want 3", cost)
	}
	if future != 0 {
		t.Errorf("future = %v, want 0", future)
	}
	if sig != "|" { // both builtins emit an empty fingerprint
		t.Errorf("signature = %q, want %q", sig, "|")
	}
}
