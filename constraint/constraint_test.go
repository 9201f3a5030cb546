package constraint

import (
	"testing"

	"github.com/jrs026/joshua/symbol"
)

type fakeRule struct {
	lhs symbol.ID
	rhs []symbol.ID
}

func (f fakeRule) LHSSymbol() symbol.ID           { return f.lhs }
func (f fakeRule) TargetRHSSymbols() []symbol.ID { return f.rhs }

func TestAcceptsUnconstrainedCellAlwaysTrue(t *testing.T) {
	tab := symbol.NewTable()
	ct := NewTable()
	r := fakeRule{lhs: tab.AddNonterminal("X")}
	if !ct.Accepts(0, 1, r, tab) {
		t.Errorf("expected an unindexed cell to accept every rule")
	}
}

func TestAcceptsLHSFilter(t *testing.T) {
	tab := symbol.NewTable()
	s := tab.AddNonterminal("S")
	x := tab.AddNonterminal("X")
	ct := NewTable()
	ct.IndexSpan(Span{Start: 0, End: 2, Rules: []Rule{{Kind: LHS, LHS: "S"}}})

	if !ct.Accepts(0, 2, fakeRule{lhs: s}, tab) {
		t.Errorf("expected matching LHS to be accepted")
	}
	if ct.Accepts(0, 2, fakeRule{lhs: x}, tab) {
		t.Errorf("expected non-matching LHS to be rejected")
	}
}

func TestAcceptsRHSFilterElementwise(t *testing.T) {
	tab := symbol.NewTable()
	ct := NewTable()
	ct.IndexSpan(Span{Start: 0, End: 2, Rules: []Rule{{Kind: RHS, NativeRHS: []string{"cat", "dog"}}}})

	match := fakeRule{rhs: tab.AddTerminals([]string{"cat", "dog"})}
	mismatchLen := fakeRule{rhs: tab.AddTerminals([]string{"cat"})}
	mismatchWord := fakeRule{rhs: tab.AddTerminals([]string{"cat", "fish"})}

	if !ct.Accepts(0, 2, match, tab) {
		t.Errorf("expected exact RHS match to be accepted")
	}
	if ct.Accepts(0, 2, mismatchLen, tab) {
		t.Errorf("expected length mismatch to be rejected")
	}
	if ct.Accepts(0, 2, mismatchWord, tab) {
		t.Errorf("expected word mismatch to be rejected")
	}
}

func TestIsHardlyContained(t *testing.T) {
	ct := NewTable()
	ct.IndexSpan(Span{Start: 0, End: 4, Hard: true})
	if !ct.IsHardlyContained(1, 3) {
		t.Errorf("expected (1,3) to be contained in hard span [0,4]")
	}
	if ct.IsHardlyContained(0, 5) {
		t.Errorf("expected (0,5) to exceed hard span [0,4]")
	}
}
