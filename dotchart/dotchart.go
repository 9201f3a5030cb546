package dotchart

import (
	"github.com/npillmayer/schuko/tracing"

	"github.com/jrs026/joshua/grammar"
	"github.com/jrs026/joshua/hypergraph"
	"github.com/jrs026/joshua/lattice"
)

// tracer traces with key 'joshua.dotchart', following the package's
// per-subsystem tracing-key convention (tracing.Select("joshua.<pkg>")).
func tracer() tracing.Trace {
	return tracing.Select("joshua.dotchart")
}

// DotBin is the set of DotItems living in cell (i, j) for one grammar.
type DotBin struct {
	items map[string]*DotItem // keyed by DotItem.key(), for de-duplication
	order []*DotItem          // insertion order, for deterministic iteration
}

func newDotBin() *DotBin {
	return &DotBin{items: make(map[string]*DotItem)}
}

// add inserts item if its key is not already present; returns true if it
// was newly added.
func (b *DotBin) add(item DotItem) bool {
	k := item.key()
	if _, ok := b.items[k]; ok {
		return false
	}
	it := item
	b.items[k] = &it
	b.order = append(b.order, &it)
	return true
}

// Items returns the DotItems of the bin, in insertion order.
func (b *DotBin) Items() []*DotItem {
	return b.order
}

// Empty reports whether the bin holds no DotItems.
func (b *DotBin) Empty() bool {
	return b == nil || len(b.order) == 0
}

// CellSource is the narrow view a DotChart needs of the hypergraph bins
// it shares a cell grid with: the SuperItems already completed in (i, j).
// Implemented by *bin.Chart; kept as an interface here so package dotchart
// never has to import package bin (it is the other way around: the chart
// driver hands a *bin.Chart to dotchart through this interface).
type CellSource interface {
	SuperItems(i, j uint64) []*hypergraph.SuperItem
}

// DotChart is the per-grammar Earley-style dot chart: dotBins[i][j] holds
// the DotItems for every span (i,j), 0 <= i <= j <= N.
type DotChart struct {
	g      grammar.Grammar
	lat    *lattice.Lattice
	n      uint64
	bins   [][]*DotBin // bins[i][j]
	nAdded int
}

// New creates a DotChart for one grammar over a lattice of the given
// sentence length.
func New(g grammar.Grammar, lat *lattice.Lattice) *DotChart {
	n := lat.SentLen()
	bins := make([][]*DotBin, n+1)
	for i := range bins {
		bins[i] = make([]*DotBin, n+1)
	}
	return &DotChart{g: g, lat: lat, n: n, bins: bins}
}

func (c *DotChart) bin(i, j uint64) *DotBin {
	if c.bins[i][j] == nil {
		c.bins[i][j] = newDotBin()
	}
	return c.bins[i][j]
}

// Bin returns the DotBin for (i,j), or nil if nothing has been seeded or
// advanced into it yet.
func (c *DotChart) Bin(i, j uint64) *DotBin {
	return c.bins[i][j]
}

// NAdded returns how many unique DotItems have been added over this
// DotChart's lifetime.
func (c *DotChart) NAdded() int {
	return c.nAdded
}

// Seed places an initial DotItem at (i,i), at the trie root with empty
// antecedents and zero lattice cost, for every lattice position i.
func (c *DotChart) Seed() {
	root := c.g.TrieRoot()
	for _, i := range c.lat.Positions() {
		if c.bin(i, i).add(DotItem{TNode: root}) {
			c.nAdded++
		}
	}
}

// ExpandCell extends DotItems of (i, k), for every k in [i, j), into
// (i, j) by one symbol consumed from [k, j): a terminal advance over
// lattice arcs from k to j, and a nonterminal advance over SuperItems
// completed at (k, j).
func (c *DotChart) ExpandCell(i, j uint64, cells CellSource) {
	for k := i; k < j; k++ {
		src := c.bins[i][k]
		if src.Empty() {
			continue
		}
		for _, d := range src.Items() {
			c.terminalAdvance(*d, k, j, i)
		}
		for _, d := range src.Items() {
			c.nonterminalAdvance(*d, k, j, i, cells)
		}
	}
}

func (c *DotChart) terminalAdvance(d DotItem, k, j, i uint64) {
	for _, arc := range c.lat.ArcsFrom(k) {
		if arc.To != j {
			continue
		}
		child, ok := d.TNode.MatchOne(arc.Label)
		if !ok {
			continue
		}
		next := DotItem{TNode: child, ants: d.ants, LatticeCost: d.LatticeCost + arc.Cost}
		if c.bin(i, j).add(next) {
			c.nAdded++
			tracer().Debugf("dotchart: terminal advance @ (%d,%d) via %v", i, j, arc.Label)
		}
	}
}

func (c *DotChart) nonterminalAdvance(d DotItem, k, j, i uint64, cells CellSource) {
	for _, super := range cells.SuperItems(k, j) {
		child, ok := d.TNode.MatchOne(super.LHS)
		if !ok {
			continue
		}
		next := DotItem{TNode: child, ants: d.ants.appended(super), LatticeCost: d.LatticeCost}
		if c.bin(i, j).add(next) {
			c.nAdded++
			tracer().Debugf("dotchart: nonterminal advance @ (%d,%d) via %v", i, j, super.LHS)
		}
	}
}

// StartDotItems seeds new DotItems at (i, j) for every SuperItem
// completed in (i, j) whose LHS the trie root can consume directly.
func (c *DotChart) StartDotItems(i, j uint64, cells CellSource) {
	root := c.g.TrieRoot()
	for _, super := range cells.SuperItems(i, j) {
		child, ok := root.MatchOne(super.LHS)
		if !ok {
			continue
		}
		next := DotItem{TNode: child, ants: (*antecedents)(nil).appended(super)}
		if c.bin(i, j).add(next) {
			c.nAdded++
		}
	}
}

// ReleaseBefore drops dot bins for (i, j) once every wider cell that
// could still consume them has been processed: once all spans (i', j')
// with i' <= i and j <= j' are complete, (i, j)'s dot bins may be freed.
// Callers (the chart driver) are responsible for knowing when that
// condition holds; this method simply performs the release.
func (c *DotChart) ReleaseBefore(i, j uint64) {
	c.bins[i][j] = nil
}
