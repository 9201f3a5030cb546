package chart

import (
	"context"
	"errors"
	"testing"

	"github.com/jrs026/joshua/config"
	"github.com/jrs026/joshua/constraint"
	"github.com/jrs026/joshua/feature"
	"github.com/jrs026/joshua/grammar"
	"github.com/jrs026/joshua/lattice"
	"github.com/jrs026/joshua/symbol"
)

func scoreBank() feature.Bank {
	return feature.Bank{feature.RuleScoreFeature{Index: 0, Weight: 1}}
}

func TestParseSingleTerminalSingleRule(t *testing.T) {
	tab := symbol.NewTable()
	hello := tab.AddTerminal("hello")
	s := tab.AddNonterminal("S")
	goal := tab.AddNonterminal("GOAL")

	lat := lattice.New(1)
	lat.AddArc(0, 1, hello, 0)

	g := grammar.NewMemGrammar()
	g.AddRule(&grammar.Rule{LHS: s, SourceRHS: []symbol.ID{hello}, TargetRHS: []symbol.ID{hello}, Arity: 0, Features: []float64{1}})

	d := NewDecoder([]grammar.Grammar{g}, tab, WithNumFeatures(1))
	hg, diag, err := d.Parse(context.Background(), lat, scoreBank(), constraint.NewTable(), goal, 1)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if hg.Root.LHS != goal {
		t.Errorf("root LHS = %v, want GOAL", hg.Root.LHS)
	}
	if diag.Added == 0 {
		t.Errorf("expected at least one node added")
	}
}

func TestParseUnaryChain(t *testing.T) {
	tab := symbol.NewTable()
	w := tab.AddTerminal("w")
	x := tab.AddNonterminal("X")
	y := tab.AddNonterminal("Y")
	goal := tab.AddNonterminal("GOAL")

	lat := lattice.New(1)
	lat.AddArc(0, 1, w, 0)

	g := grammar.NewMemGrammar()
	g.AddRule(&grammar.Rule{LHS: x, SourceRHS: []symbol.ID{w}, TargetRHS: []symbol.ID{w}, Arity: 0, Features: []float64{0}})
	g.AddRule(&grammar.Rule{LHS: y, SourceRHS: []symbol.ID{x}, TargetRHS: []symbol.ID{x}, Arity: 1, Features: []float64{0}})

	d := NewDecoder([]grammar.Grammar{g}, tab, WithNumFeatures(1))
	hg, _, err := d.Parse(context.Background(), lat, scoreBank(), constraint.NewTable(), goal, 2)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if hg.Root.LHS != goal {
		t.Errorf("root LHS = %v, want GOAL", hg.Root.LHS)
	}
}

func TestParseOOVFallback(t *testing.T) {
	tab := symbol.NewTable()
	unseen := tab.AddTerminal("zorblax")
	goal := tab.AddNonterminal("GOAL")

	lat := lattice.New(1)
	lat.AddArc(0, 1, unseen, 2.5)

	g := grammar.NewMemGrammar() // empty: no rule covers "zorblax"
	d := NewDecoder([]grammar.Grammar{g}, tab, WithNumFeatures(1))
	hg, _, err := d.Parse(context.Background(), lat, scoreBank(), constraint.NewTable(), goal, 3)
	if err != nil {
		t.Fatalf("Parse returned error: %v, want OOV fallback to succeed", err)
	}
	if hg.Root.LHS != goal {
		t.Errorf("root LHS = %v, want GOAL", hg.Root.LHS)
	}
}

func TestParseHardRuleConstraintSuppressesGrammar(t *testing.T) {
	tab := symbol.NewTable()
	w := tab.AddTerminal("w")
	s := tab.AddNonterminal("S")
	goal := tab.AddNonterminal("GOAL")

	lat := lattice.New(1)
	lat.AddArc(0, 1, w, 0)

	g := grammar.NewMemGrammar()
	g.AddRule(&grammar.Rule{LHS: s, SourceRHS: []symbol.ID{w}, TargetRHS: []symbol.ID{w}, Arity: 0, Features: []float64{999}})

	ctab := constraint.NewTable()
	ctab.IndexSpan(constraint.Span{
		Start: 0, End: 1, Hard: true,
		Rules: []constraint.Rule{{
			Kind: constraint.RULE, LHS: "MANUAL",
			SourceRHS: []string{"w"}, TargetRHS: []string{"manual-translation"},
			Features: []float64{0},
		}},
	})

	d := NewDecoder([]grammar.Grammar{g}, tab, WithNumFeatures(1))
	hg, _, err := d.Parse(context.Background(), lat, scoreBank(), ctab, goal, 4)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	// The only edge reaching GOAL must come through the manual rule, not
	// through the suppressed grammar rule (feature 999 against the manual
	// rule's zeroed features).
	if len(hg.Root.Edges) == 0 {
		t.Fatalf("goal node has no edges")
	}
	manual := tab.AddNonterminal("MANUAL")
	for _, e := range hg.Root.Edges {
		if len(e.Antecedents) != 1 || e.Antecedents[0].LHS != manual {
			t.Errorf("expected goal derivation to run through MANUAL, got antecedent LHS %v", e.Antecedents[0].LHS)
		}
	}
}

func TestParseSoftRuleConstraintAddsAxiomWithoutSuppressingGrammar(t *testing.T) {
	tab := symbol.NewTable()
	w := tab.AddTerminal("w")
	s := tab.AddNonterminal("S")
	goal := tab.AddNonterminal("GOAL")

	lat := lattice.New(1)
	lat.AddArc(0, 1, w, 0)

	g := grammar.NewMemGrammar()
	g.AddRule(&grammar.Rule{LHS: s, SourceRHS: []symbol.ID{w}, TargetRHS: []symbol.ID{w}, Arity: 0, Features: []float64{5}})

	ctab := constraint.NewTable()
	ctab.IndexSpan(constraint.Span{
		Start: 0, End: 1, Hard: false,
		Rules: []constraint.Rule{{
			Kind: constraint.RULE, LHS: "MANUAL",
			SourceRHS: []string{"w"}, TargetRHS: []string{"manual-translation"},
			Features: []float64{1},
		}},
	})

	d := NewDecoder([]grammar.Grammar{g}, tab, WithNumFeatures(1))
	hg, _, err := d.Parse(context.Background(), lat, scoreBank(), ctab, goal, 8)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	// A non-hard RULE entry must be seeded as an axiom regardless of
	// hardness, alongside, not instead of, the ordinary grammar rule and
	// OOV fallback.
	manual := tab.AddNonterminal("MANUAL")
	sawManual, sawGrammar := false, false
	for _, e := range hg.Root.Edges {
		if len(e.Antecedents) != 1 {
			continue
		}
		switch e.Antecedents[0].LHS {
		case manual:
			sawManual = true
		case s:
			sawGrammar = true
		}
	}
	if !sawManual {
		t.Errorf("expected a goal derivation through the soft manual rule")
	}
	if !sawGrammar {
		t.Errorf("expected the ordinary grammar rule to still be live at (0,1)")
	}
}

func TestParseCubePruneMatchesExhaustiveBestCostUnbounded(t *testing.T) {
	tab := symbol.NewTable()
	w := tab.AddTerminal("w")
	x := tab.AddNonterminal("X")
	goal := tab.AddNonterminal("GOAL")

	lat := lattice.New(1)
	lat.AddArc(0, 1, w, 0)

	g := grammar.NewMemGrammar()
	g.AddRule(&grammar.Rule{LHS: x, SourceRHS: []symbol.ID{w}, TargetRHS: []symbol.ID{w}, Arity: 0, Features: []float64{3}})
	g.AddRule(&grammar.Rule{LHS: x, SourceRHS: []symbol.ID{w}, TargetRHS: []symbol.ID{w}, Arity: 0, Features: []float64{1}})

	exhaustive := NewDecoder([]grammar.Grammar{g}, tab, WithNumFeatures(1))
	hgE, _, err := exhaustive.Parse(context.Background(), lat, scoreBank(), constraint.NewTable(), goal, 5)
	if err != nil {
		t.Fatalf("exhaustive Parse error: %v", err)
	}

	cubeCfg := config.Defaults()
	cubeCfg.UseCubePrune = true
	cubed := NewDecoder([]grammar.Grammar{g}, tab, WithNumFeatures(1), WithConfig(cubeCfg))
	hgC, _, err := cubed.Parse(context.Background(), lat, scoreBank(), constraint.NewTable(), goal, 6)
	if err != nil {
		t.Fatalf("cube-pruned Parse error: %v", err)
	}

	if hgE.Root.BestCost != hgC.Root.BestCost {
		t.Errorf("best cost mismatch: exhaustive=%v cube=%v", hgE.Root.BestCost, hgC.Root.BestCost)
	}
}

func TestParseNoDerivationError(t *testing.T) {
	tab := symbol.NewTable()
	goal := tab.AddNonterminal("GOAL")
	lat := lattice.New(0) // empty sentence, no arcs, no axioms possible

	g := grammar.NewMemGrammar()
	d := NewDecoder([]grammar.Grammar{g}, tab, WithNumFeatures(1))
	_, _, err := d.Parse(context.Background(), lat, scoreBank(), constraint.NewTable(), goal, 7)
	if !errors.Is(err, ErrNoDerivation) {
		t.Fatalf("err = %v, want ErrNoDerivation", err)
	}
}
