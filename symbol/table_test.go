package symbol

import "testing"

func TestInternTerminalsIdempotent(t *testing.T) {
	tab := NewTable()
	a1 := tab.AddTerminal("casa")
	a2 := tab.AddTerminal("casa")
	if a1 != a2 {
		t.Errorf("expected stable id for repeated terminal, got %v and %v", a1, a2)
	}
	if !a1.IsTerminal() {
		t.Errorf("expected %v to be a terminal", a1)
	}
}

func TestInternNonterminalsAreNegative(t *testing.T) {
	tab := NewTable()
	s := tab.AddNonterminal("S")
	if !s.IsNonterminal() {
		t.Errorf("expected %v to be a nonterminal", s)
	}
	if s == Untranslated {
		t.Errorf("freshly minted nonterminal collided with Untranslated")
	}
	s2 := tab.AddNonterminal("S")
	if s != s2 {
		t.Errorf("expected stable id for repeated nonterminal, got %v and %v", s, s2)
	}
}

func TestGetWordRoundTrips(t *testing.T) {
	tab := NewTable()
	words := []string{"el", "gato", "negro"}
	ids := tab.AddTerminals(words)
	for i, id := range ids {
		if got := tab.GetWord(id); got != words[i] {
			t.Errorf("GetWord(%v) = %q, want %q", id, got, words[i])
		}
	}
	goal := tab.AddNonterminal("GOAL")
	if got := tab.GetWord(goal); got != "GOAL" {
		t.Errorf("GetWord(%v) = %q, want GOAL", goal, got)
	}
}

func TestUntranslatedPreseeded(t *testing.T) {
	tab := NewTable()
	if got := tab.GetWord(Untranslated); got == "" {
		t.Errorf("expected Untranslated to resolve to a name out of the box")
	}
}
