package lattice

import (
	"testing"

	"github.com/jrs026/joshua/symbol"
)

func TestValidateRejectsNonMonotoneArc(t *testing.T) {
	tab := symbol.NewTable()
	a := tab.AddTerminal("a")
	l := New(2)
	l.AddArc(1, 0, a, 1.0)
	if err := l.Validate(); err == nil {
		t.Errorf("expected Validate to reject a non-monotone arc")
	}
}

func TestValidateRejectsOutOfRangeArc(t *testing.T) {
	tab := symbol.NewTable()
	a := tab.AddTerminal("a")
	l := New(1)
	l.AddArc(0, 5, a, 1.0)
	if err := l.Validate(); err == nil {
		t.Errorf("expected Validate to reject an arc exceeding sentence length")
	}
}

func TestPositionsCoversZeroToN(t *testing.T) {
	l := New(3)
	got := l.Positions()
	want := []uint64{0, 1, 2, 3}
	if len(got) != len(want) {
		t.Fatalf("Positions() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Positions()[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestArcsFromReturnsInsertionOrder(t *testing.T) {
	tab := symbol.NewTable()
	a := tab.AddTerminal("a")
	b := tab.AddTerminal("b")
	l := New(2)
	l.AddArc(0, 1, a, 0.5)
	l.AddArc(0, 1, b, 1.5)
	arcs := l.ArcsFrom(0)
	if len(arcs) != 2 || arcs[0].Label != a || arcs[1].Label != b {
		t.Errorf("ArcsFrom(0) = %v, want [a, b] in insertion order", arcs)
	}
}
