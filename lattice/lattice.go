/*
Package lattice implements a read-only DAG of source positions, the
input structure the chart driver consumes. A plain sentence is a
lattice with one arc per position; a true word lattice additionally
carries competing alternative spellings/segmentations with per-arc costs.
*/
package lattice

import (
	"fmt"

	"github.com/jrs026/joshua/symbol"
)

// Arc is a single edge of the lattice, labeled with a terminal symbol
// and carrying a non-negative cost.
type Arc struct {
	From  uint64
	To    uint64
	Label symbol.ID
	Cost  float64
}

func (a Arc) String() string {
	return fmt.Sprintf("%d --%v/%.3f--> %d", a.From, a.Label, a.Cost, a.To)
}

// Lattice is a directed acyclic graph over positions 0..N. Arcs must be
// monotone (From < To) and the graph must be acyclic; Validate checks both.
type Lattice struct {
	sentLen uint64
	out     map[uint64][]Arc // adjacency by source position
}

// New creates an empty lattice over positions 0..sentLen.
func New(sentLen uint64) *Lattice {
	return &Lattice{
		sentLen: sentLen,
		out:     make(map[uint64][]Arc),
	}
}

// AddArc inserts an arc into the lattice. It does not validate monotonicity;
// call Validate once the lattice is fully built.
func (l *Lattice) AddArc(from, to uint64, label symbol.ID, cost float64) {
	l.out[from] = append(l.out[from], Arc{From: from, To: to, Label: label, Cost: cost})
}

// SentLen returns N, the number of source positions spanned by the lattice.
func (l *Lattice) SentLen() uint64 {
	return l.sentLen
}

// ArcsFrom returns the arcs leaving position pos, in insertion order.
func (l *Lattice) ArcsFrom(pos uint64) []Arc {
	return l.out[pos]
}

// Positions returns every position 0..SentLen, inclusive, regardless of
// whether it has outgoing arcs: every position bounds a span on one side
// or the other, so every position must be addressable, not just those
// with an arc leaving them.
func (l *Lattice) Positions() []uint64 {
	positions := make([]uint64, l.sentLen+1)
	for i := range positions {
		positions[i] = uint64(i)
	}
	return positions
}

// Validate reports a non-nil error if the lattice is non-monotone (an arc
// with To <= From) or contains a position cycle reachable via arcs.
func (l *Lattice) Validate() error {
	for from, arcs := range l.out {
		for _, a := range arcs {
			if a.To <= from {
				return fmt.Errorf("lattice: non-monotone arc %v", a)
			}
			if a.To > l.sentLen {
				return fmt.Errorf("lattice: arc %v exceeds sentence length %d", a, l.sentLen)
			}
		}
	}
	// Positions are already totally ordered by construction (To > From is
	// enforced above), so no arc sequence can revisit an earlier position;
	// a monotone DAG over a finite position range cannot cycle.
	return nil
}
