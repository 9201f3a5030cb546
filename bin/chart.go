package bin

import (
	"github.com/jrs026/joshua/config"
	"github.com/jrs026/joshua/diagnostics"
	"github.com/jrs026/joshua/hypergraph"
)

// Chart is the (i,j) grid of Bins spanning one sentence, shared by every
// grammar the chart driver combines. It implements package dotchart's
// CellSource interface, so the chart driver can hand a *Chart straight
// to a dotchart.DotChart without either package importing the other
// directly.
type Chart struct {
	n    uint64
	bins [][]*Bin
	cfg  config.Options
	diag *diagnostics.Counters
}

// NewChart allocates an empty (n+1)x(n+1) grid of Bins.
func NewChart(n uint64, cfg config.Options, diag *diagnostics.Counters) *Chart {
	bins := make([][]*Bin, n+1)
	for i := range bins {
		bins[i] = make([]*Bin, n+1)
	}
	return &Chart{n: n, bins: bins, cfg: cfg, diag: diag}
}

// Bin returns the Bin for (i,j), creating it on first access.
func (c *Chart) Bin(i, j uint64) *Bin {
	if c.bins[i][j] == nil {
		c.bins[i][j] = newBin(i, j, c.cfg, c.diag)
	}
	return c.bins[i][j]
}

// SuperItems implements dotchart.CellSource.
func (c *Chart) SuperItems(i, j uint64) []*hypergraph.SuperItem {
	if c.bins[i][j] == nil {
		return nil
	}
	return c.bins[i][j].SuperItemsSlice()
}

// ReleaseBefore drops the Bin at (i,j), mirroring dotchart.ReleaseBefore's
// resource policy once (i,j) can no longer be consumed by any still-open
// wider span.
func (c *Chart) ReleaseBefore(i, j uint64) {
	c.bins[i][j] = nil
}
