/*
Package bin implements the completed-derivation side of a chart cell: Bin
holds the signature-deduplicated HGNodes and per-LHS SuperItems for one
span, and Chart is the (i,j) grid of Bins the whole parse shares.

Node deduplication follows a shared-packed-parse-forest discipline: fold
multiple derivations of the same (symbol, span) into one node and
distinguish them only by a structural signature. Bin generalizes that
idea from "same RHS symbols" to "same feature-function signature", since
an SCFG decoder must keep two derivations of the same span and LHS
separate whenever a feature function (a language model, chiefly) would
later score them differently.
*/
package bin

import (
	"fmt"
	"sort"

	"github.com/npillmayer/schuko/tracing"

	"github.com/jrs026/joshua/config"
	"github.com/jrs026/joshua/diagnostics"
	"github.com/jrs026/joshua/feature"
	"github.com/jrs026/joshua/grammar"
	"github.com/jrs026/joshua/hypergraph"
	"github.com/jrs026/joshua/symbol"
)

func tracer() tracing.Trace {
	return tracing.Select("joshua.bin")
}

func nodeKey(lhs symbol.ID, signature string) string {
	return fmt.Sprintf("%d|%s", lhs, signature)
}

// Bin is the set of HGNodes completed for one cell (i,j), indexed by
// (LHS, signature) for merge-or-create lookup and grouped into
// per-LHS SuperItems for the dot chart to consume.
type Bin struct {
	i, j uint64

	nodesByKey map[string]*hypergraph.HGNode
	allNodes   []*hypergraph.HGNode // insertion order
	superItems map[symbol.ID]*hypergraph.SuperItem

	cutoff float64 // best EstTotalCost seen so far in this bin
	cfg    config.Options
	diag   *diagnostics.Counters
}

func newBin(i, j uint64, cfg config.Options, diag *diagnostics.Counters) *Bin {
	return &Bin{
		i:          i,
		j:          j,
		nodesByKey: make(map[string]*hypergraph.HGNode),
		superItems: make(map[symbol.ID]*hypergraph.SuperItem),
		cfg:        cfg,
		diag:       diag,
	}
}

// Nodes returns every HGNode in the bin, in insertion order.
func (b *Bin) Nodes() []*hypergraph.HGNode {
	return b.allNodes
}

// SuperItem returns the SuperItem grouping every HGNode sharing lhs, or
// nil if lhs has no completed derivation in this cell.
func (b *Bin) SuperItem(lhs symbol.ID) *hypergraph.SuperItem {
	return b.superItems[lhs]
}

// SuperItemsSlice returns every SuperItem in the bin. Order is not
// meaningful; callers that need determinism should sort by LHS.
func (b *Bin) SuperItemsSlice() []*hypergraph.SuperItem {
	out := make([]*hypergraph.SuperItem, 0, len(b.superItems))
	for _, s := range b.superItems {
		out = append(out, s)
	}
	return out
}

// GetSortedItems returns the bin's HGNodes ordered ascending by
// EstTotalCost (stable, so nodes of equal cost keep insertion order).
func (b *Bin) GetSortedItems() []*hypergraph.HGNode {
	out := make([]*hypergraph.HGNode, len(b.allNodes))
	copy(out, b.allNodes)
	sort.SliceStable(out, func(x, y int) bool {
		return out[x].EstTotalCost < out[y].EstTotalCost
	})
	return out
}

// ComputeItem runs rule's feature functions over its antecedents and
// returns the triple AddDeductionInBin needs. It is split out from
// AddDeductionInBin because cube pruning (CompleteCellCubePrune) needs to
// call it many times per candidate cube corner before deciding which
// corners to materialize.
func (b *Bin) ComputeItem(bank feature.Bank, rule *grammar.Rule, antecedents []*hypergraph.HGNode) (transitionCost, estTotalCost float64, signature string) {
	b.diag.CalledComputeItem++
	cost, future, sig := bank.Compute(rule, antecedents, b.i, b.j)
	ant := 0.0
	for _, a := range antecedents {
		ant += a.BestCost
	}
	return cost, cost + ant + future, sig
}

// AddDeductionInBin is the single entry point for inserting one candidate
// derivation into the bin: pre-prune against the running cutoff, merge
// into an existing node if one already carries this (LHS, signature), or
// create a new HGNode and its SuperItem slot otherwise.
//
// Returns the resulting (possibly pre-existing) HGNode, or nil if the
// candidate was pre-pruned.
func (b *Bin) AddDeductionInBin(rule *grammar.Rule, antecedents []*hypergraph.HGNode, bank feature.Bank) *hypergraph.HGNode {
	transitionCost, estTotalCost, signature := b.ComputeItem(bank, rule, antecedents)

	if b.cfg.BeamWidth > 0 && len(b.allNodes) > 0 && estTotalCost > b.cutoff+b.cfg.BeamWidth {
		b.diag.PrePruned++
		return nil
	}

	key := nodeKey(rule.LHS, signature)
	node, exists := b.nodesByKey[key]
	if exists {
		if b.cfg.Fuzz1 > 0 && estTotalCost > node.EstTotalCost+b.cfg.Fuzz1 {
			b.diag.PrePrunedFuzz1++
			return nil
		}
		edge := &hypergraph.HyperEdge{Rule: rule, Antecedents: antecedents, TransitionCost: transitionCost, StateFragment: signature}
		node.AddEdge(edge, estTotalCost)
		b.diag.Merged++
		return node
	}

	node = hypergraph.New(b.i, b.j, rule.LHS, signature)
	node.AddEdge(&hypergraph.HyperEdge{Rule: rule, Antecedents: antecedents, TransitionCost: transitionCost, StateFragment: signature}, estTotalCost)
	b.nodesByKey[key] = node
	b.allNodes = append(b.allNodes, node)
	b.diag.Added++

	super, ok := b.superItems[rule.LHS]
	if !ok {
		super = hypergraph.NewSuperItem(b.i, b.j, rule.LHS)
		b.superItems[rule.LHS] = super
	}
	super.Add(node)

	if len(b.allNodes) == 1 || estTotalCost < b.cutoff {
		b.cutoff = estTotalCost
	}

	if b.cfg.KBest > 0 {
		b.evictBeyondKBest(rule.LHS)
	}

	tracer().Debugf("bin (%d,%d): added %v", b.i, b.j, node)
	return node
}

// evictBeyondKBest drops the worst-scoring nodes of a SuperItem once it
// exceeds the configured k-best cap, counting each eviction as pruned.
// A dropped node leaves the SuperItem and the signature index (a later
// candidate with the same signature creates a fresh node), but it stays
// in Nodes() and in any HyperEdge that already references it: structure
// already handed out to a caller is never un-shared.
func (b *Bin) evictBeyondKBest(lhs symbol.ID) {
	super := b.superItems[lhs]
	if len(super.Nodes) <= b.cfg.KBest {
		return
	}
	sort.SliceStable(super.Nodes, func(x, y int) bool {
		return super.Nodes[x].BestCost < super.Nodes[y].BestCost
	})
	kept := super.Nodes[:b.cfg.KBest]
	dropped := super.Nodes[b.cfg.KBest:]
	super.Nodes = kept
	for _, n := range dropped {
		delete(b.nodesByKey, nodeKey(n.LHS, n.Signature))
		b.diag.Pruned++
	}
}

// AddAxiom inserts an arity-0 rule (an OOV or manual/synthetic rule) as a
// fresh derivation with no antecedents.
func (b *Bin) AddAxiom(rule *grammar.Rule, bank feature.Bank) *hypergraph.HGNode {
	return b.AddDeductionInBin(rule, nil, bank)
}
