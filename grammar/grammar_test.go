package grammar

import (
	"testing"

	"github.com/jrs026/joshua/symbol"
)

func TestMemGrammarMatchOneWalksTrie(t *testing.T) {
	tab := symbol.NewTable()
	s := tab.AddNonterminal("S")
	a := tab.AddTerminal("a")
	b := tab.AddTerminal("b")

	g := NewMemGrammar()
	g.AddRule(&Rule{LHS: s, SourceRHS: []symbol.ID{a, b}, TargetRHS: []symbol.ID{a, b}, Arity: 0, Features: []float64{1}})

	root := g.TrieRoot()
	n1, ok := root.MatchOne(a)
	if !ok {
		t.Fatalf("expected root to match terminal a")
	}
	if n1.Rules() != nil {
		t.Errorf("expected no rule collection after consuming only 'a'")
	}
	n2, ok := n1.MatchOne(b)
	if !ok {
		t.Fatalf("expected node after 'a' to match terminal b")
	}
	rc := n2.Rules()
	if rc == nil || rc.Len() != 1 {
		t.Fatalf("expected exactly one rule after consuming 'a b', got %v", rc)
	}
	if rc.Arity() != 0 {
		t.Errorf("expected arity 0, got %d", rc.Arity())
	}
}

func TestRuleCollectionSortedBySumOfFeatures(t *testing.T) {
	rc := NewRuleCollection(
		&Rule{Features: []float64{3, 3}},
		&Rule{Features: []float64{1, 1}},
		&Rule{Features: []float64{2, 2}},
	)
	sorted := rc.SortedRules()
	want := []float64{2, 4, 6}
	for i, r := range sorted {
		if intrinsicCost(r) != want[i] {
			t.Errorf("SortedRules()[%d] intrinsic cost = %v, want %v", i, intrinsicCost(r), want[i])
		}
	}
}

func TestRuleCollectionRejectsMixedArity(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("expected panic inserting mismatched-arity rule into a RuleCollection")
		}
	}()
	rc := NewRuleCollection(&Rule{Arity: 0})
	rc.Add(&Rule{Arity: 1})
}

func TestConstructOOVRuleIsArityZeroAndFlagged(t *testing.T) {
	tab := symbol.NewTable()
	term := tab.AddTerminal("xyzzy")
	sg := NewSyntheticGrammar(symbol.Untranslated)
	r := sg.ConstructOOVRule(3, term, true)
	if r.Arity != 0 {
		t.Errorf("OOV rule arity = %d, want 0", r.Arity)
	}
	if !r.IsOOV {
		t.Errorf("expected IsOOV flag set")
	}
	if len(r.Features) != 3 {
		t.Errorf("expected 3 feature slots, got %d", len(r.Features))
	}
	for _, f := range r.Features {
		if f != 0 {
			t.Errorf("expected OOV rule's static feature vector to be all-zero, got %v", r.Features)
		}
	}
}
