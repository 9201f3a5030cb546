package bin

import (
	"fmt"
	"sort"
	"strings"

	"github.com/emirpasic/gods/trees/binaryheap"

	"github.com/jrs026/joshua/feature"
	"github.com/jrs026/joshua/grammar"
	"github.com/jrs026/joshua/hypergraph"
)

// Accept narrows a candidate grammar rule down to the ones still live at
// this cell. Span-constraint filtering (package constraint) is plugged
// in here by the chart driver, so package bin never has to import
// package constraint.
type Accept func(rule *grammar.Rule) bool

// CompleteCellExhaustive combines every rule in rules (all sharing the
// same arity as len(antecedents)) against every antecedent HGNode tuple
// by full Cartesian product.
func (b *Bin) CompleteCellExhaustive(rules []*grammar.Rule, antecedents []*hypergraph.SuperItem, bank feature.Bank, accept Accept) {
	if len(rules) == 0 {
		return
	}
	if len(antecedents) == 0 {
		for _, r := range rules {
			if accept(r) {
				b.AddDeductionInBin(r, nil, bank)
			}
		}
		return
	}
	combos := cartesian(antecedents)
	for _, r := range rules {
		if !accept(r) {
			continue
		}
		for _, combo := range combos {
			b.AddDeductionInBin(r, combo, bank)
		}
	}
}

func cartesian(antecedents []*hypergraph.SuperItem) [][]*hypergraph.HGNode {
	combos := [][]*hypergraph.HGNode{{}}
	for _, super := range antecedents {
		var next [][]*hypergraph.HGNode
		for _, prefix := range combos {
			for _, node := range super.Nodes {
				extended := make([]*hypergraph.HGNode, len(prefix)+1)
				copy(extended, prefix)
				extended[len(prefix)] = node
				next = append(next, extended)
			}
		}
		combos = next
	}
	return combos
}

// cubeCorner is one point in the cube-pruning search space: a rule index
// plus one antecedent-slot index per nonterminal slot.
type cubeCorner struct {
	ruleIdx int
	slotIdx []int
}

func (c cubeCorner) key() string {
	parts := make([]string, 1+len(c.slotIdx))
	parts[0] = fmt.Sprint(c.ruleIdx)
	for i, s := range c.slotIdx {
		parts[i+1] = fmt.Sprint(s)
	}
	return strings.Join(parts, "|")
}

// CompleteCellCubePrune applies cube pruning (Chiang 2007; Huang & Chiang
// 2005) instead of full Cartesian enumeration: rules (pre-sorted by
// intrinsic cost) and each antecedent's nodes (sorted by BestCost
// ascending) form the axes of a cube; a priority-queue frontier expands
// only the best-looking corners first and stops after popCap pops,
// rather than visiting every combination. popCap <= 0 means unbounded
// (falls back to visiting every corner, which is exhaustive but in
// cube-sorted order, so cube pruning and exhaustive combination agree on
// the best derivation whenever pruning is disabled).
func (b *Bin) CompleteCellCubePrune(rules []*grammar.Rule, antecedents []*hypergraph.SuperItem, bank feature.Bank, accept Accept, popCap int) {
	if len(rules) == 0 {
		return
	}
	var live []*grammar.Rule
	for _, r := range rules {
		if accept(r) {
			live = append(live, r)
		}
	}
	if len(live) == 0 {
		return
	}

	sortedSlots := make([][]*hypergraph.HGNode, len(antecedents))
	for i, super := range antecedents {
		nodes := make([]*hypergraph.HGNode, len(super.Nodes))
		copy(nodes, super.Nodes)
		sortByBestCostAscending(nodes)
		sortedSlots[i] = nodes
	}

	if len(antecedents) == 0 {
		// Arity 0: there is nothing to cube over but the rule axis itself.
		for _, r := range live {
			b.AddDeductionInBin(r, nil, bank)
		}
		return
	}

	comparator := func(x, y interface{}) int {
		cx, cy := x.(scoredCorner), y.(scoredCorner)
		switch {
		case cx.estTotalCost < cy.estTotalCost:
			return -1
		case cx.estTotalCost > cy.estTotalCost:
			return 1
		default:
			return 0
		}
	}
	frontier := binaryheap.NewWith(comparator)
	seen := make(map[string]bool)

	push := func(corner cubeCorner) {
		k := corner.key()
		if seen[k] {
			return
		}
		seen[k] = true
		if !withinBounds(corner, len(live), sortedSlots) {
			return
		}
		combo, rule := materialize(corner, live, sortedSlots)
		_, estTotalCost, _ := b.ComputeItem(bank, rule, combo)
		if b.cfg.Fuzz2 > 0 && len(b.allNodes) > 0 && estTotalCost > b.cutoff+b.cfg.Fuzz2 {
			b.diag.PrePrunedFuzz2++
			return
		}
		frontier.Push(scoredCorner{corner: corner, estTotalCost: estTotalCost})
	}

	push(cubeCorner{ruleIdx: 0, slotIdx: make([]int, len(antecedents))})

	pops := 0
	for {
		if popCap > 0 && pops >= popCap {
			break
		}
		v, ok := frontier.Pop()
		if !ok {
			break
		}
		pops++
		sc := v.(scoredCorner)
		combo, rule := materialize(sc.corner, live, sortedSlots)
		b.AddDeductionInBin(rule, combo, bank)

		// expand neighbors: +1 on the rule axis, +1 on each slot axis.
		next := cubeCorner{ruleIdx: sc.corner.ruleIdx + 1, slotIdx: append([]int(nil), sc.corner.slotIdx...)}
		push(next)
		for i := range sc.corner.slotIdx {
			next := cubeCorner{ruleIdx: sc.corner.ruleIdx, slotIdx: append([]int(nil), sc.corner.slotIdx...)}
			next.slotIdx[i]++
			push(next)
		}
	}
}

type scoredCorner struct {
	corner       cubeCorner
	estTotalCost float64
}

func withinBounds(c cubeCorner, numRules int, slots [][]*hypergraph.HGNode) bool {
	if c.ruleIdx >= numRules {
		return false
	}
	for i, idx := range c.slotIdx {
		if idx >= len(slots[i]) {
			return false
		}
	}
	return true
}

func materialize(c cubeCorner, rules []*grammar.Rule, slots [][]*hypergraph.HGNode) ([]*hypergraph.HGNode, *grammar.Rule) {
	combo := make([]*hypergraph.HGNode, len(slots))
	for i, idx := range c.slotIdx {
		combo[i] = slots[i][idx]
	}
	return combo, rules[c.ruleIdx]
}

func sortByBestCostAscending(nodes []*hypergraph.HGNode) {
	sort.SliceStable(nodes, func(i, j int) bool {
		return nodes[i].BestCost < nodes[j].BestCost
	})
}
