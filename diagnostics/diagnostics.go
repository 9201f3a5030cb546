/*
Package diagnostics holds the per-parse counters exposed to callers:
n_dotitem_added, n_prepruned, n_prepruned_fuzz1, n_prepruned_fuzz2,
n_merged, n_added, n_pruned, n_called_compute_item. Counters live on a
Counters value owned by one chart.Decoder.Parse call, not behind
package-level globals, so that concurrent sentences never share mutable
counter state.
*/
package diagnostics

import "fmt"

// Counters accumulates the diagnostic counts of a single parse. The zero
// value is ready to use.
type Counters struct {
	DotItemsAdded     int
	PrePruned         int
	PrePrunedFuzz1    int
	PrePrunedFuzz2    int
	Merged            int
	Added             int
	Pruned            int
	CalledComputeItem int
}

func (c *Counters) String() string {
	return fmt.Sprintf(
		"dotitems_added=%d prepruned=%d prepruned_fuzz1=%d prepruned_fuzz2=%d merged=%d added=%d pruned=%d called_compute_item=%d",
		c.DotItemsAdded, c.PrePruned, c.PrePrunedFuzz1, c.PrePrunedFuzz2, c.Merged, c.Added, c.Pruned, c.CalledComputeItem,
	)
}

// Rows renders the counters as (name, value) pairs, convenient for
// cmd/chartdump's pterm table.
func (c *Counters) Rows() [][2]string {
	return [][2]string{
		{"n_dotitem_added", fmt.Sprint(c.DotItemsAdded)},
		{"n_prepruned", fmt.Sprint(c.PrePruned)},
		{"n_prepruned_fuzz1", fmt.Sprint(c.PrePrunedFuzz1)},
		{"n_prepruned_fuzz2", fmt.Sprint(c.PrePrunedFuzz2)},
		{"n_merged", fmt.Sprint(c.Merged)},
		{"n_added", fmt.Sprint(c.Added)},
		{"n_pruned", fmt.Sprint(c.Pruned)},
		{"n_called_compute_item", fmt.Sprint(c.CalledComputeItem)},
	}
}
