package chart

import (
	"context"
	"fmt"

	"github.com/npillmayer/schuko/tracing"

	"github.com/jrs026/joshua/bin"
	"github.com/jrs026/joshua/constraint"
	"github.com/jrs026/joshua/diagnostics"
	"github.com/jrs026/joshua/dotchart"
	"github.com/jrs026/joshua/feature"
	"github.com/jrs026/joshua/grammar"
	"github.com/jrs026/joshua/hypergraph"
	"github.com/jrs026/joshua/lattice"
	"github.com/jrs026/joshua/symbol"
)

func tracer() tracing.Trace {
	return tracing.Select("joshua.chart")
}

// Parse runs the full CKY-over-lattice decode: seed axioms, sweep every
// span in increasing width order advancing dot charts and completing
// rules into bins, close unary chains, transition every span-(0,N)
// derivation into goalSymbol, and return the cheapest goal node as the
// hypergraph root. ctx is polled once per completed
// cell; a cancelled context aborts the sweep and returns ctx.Err().
func (d *Decoder) Parse(ctx context.Context, lat *lattice.Lattice, bank feature.Bank, constraints *constraint.Table, goalSymbol symbol.ID, sentID int) (*hypergraph.HyperGraph, *diagnostics.Counters, error) {
	if err := lat.Validate(); err != nil {
		return nil, nil, &LatticeInconsistencyError{Err: err}
	}
	n := lat.SentLen()
	diag := &diagnostics.Counters{}
	bc := bin.NewChart(n, d.cfg, diag)

	dcs := make([]*dotchart.DotChart, len(d.grammars))
	for gi, g := range d.grammars {
		dc := dotchart.New(g, lat)
		dc.Seed()
		dcs[gi] = dc
	}

	if err := d.seedAxioms(lat, constraints, bc, bank); err != nil {
		return nil, diag, err
	}

	for width := uint64(1); width <= n; width++ {
		for i := uint64(0); i+width <= n; i++ {
			j := i + width

			hard := constraints.IsHardlyContained(i, j)

			for gi, g := range d.grammars {
				dc := dcs[gi]
				dc.ExpandCell(i, j, bc)
				if hard || !g.HasRuleForSpan(i, j, n) {
					continue
				}
				d.completeCell(bc, dc, i, j, g, bank, constraints)
			}

			for _, g := range d.grammars {
				if !hard {
					bc.Bin(i, j).UnaryClosure(g, bank, d.acceptor(constraints, i, j))
				}
			}
			for _, dc := range dcs {
				dc.StartDotItems(i, j, bc)
			}

			// Once row i's widest cell (i, n) has been advanced into, no
			// wider cell can ever again read dotBins[i][k] for any k:
			// ExpandCell(i, j') only reads row i, and j' <= n is the last
			// such j'. Release the whole row now rather than carry it
			// for the rest of the sweep.
			if j == n {
				for _, dc := range dcs {
					for k := i; k <= n; k++ {
						dc.ReleaseBefore(i, k)
					}
				}
			}

			if err := ctx.Err(); err != nil {
				diag.DotItemsAdded = sumDotItemsAdded(dcs)
				return nil, diag, err
			}
		}
	}
	diag.DotItemsAdded = sumDotItemsAdded(dcs)

	hg, err := d.transitionToGoal(bc, n, goalSymbol, bank, sentID)
	if err != nil {
		return nil, diag, err
	}
	return hg, diag, nil
}

func sumDotItemsAdded(dcs []*dotchart.DotChart) int {
	total := 0
	for _, dc := range dcs {
		total += dc.NAdded()
	}
	return total
}

func (d *Decoder) acceptor(constraints *constraint.Table, i, j uint64) bin.Accept {
	return func(r *grammar.Rule) bool {
		return constraints.Accepts(i, j, r, d.tab)
	}
}

func (d *Decoder) completeCell(bc *bin.Chart, dc *dotchart.DotChart, i, j uint64, g grammar.Grammar, bank feature.Bank, constraints *constraint.Table) {
	cell := dc.Bin(i, j)
	if cell.Empty() {
		return
	}
	accept := d.acceptor(constraints, i, j)
	for _, item := range cell.Items() {
		coll := item.TNode.Rules()
		if coll == nil {
			continue
		}
		rules := coll.SortedRules()
		antecedents := item.Antecedents()
		if d.cfg.UseCubePrune {
			bc.Bin(i, j).CompleteCellCubePrune(rules, antecedents, bank, accept, d.cfg.KBest)
		} else {
			bc.Bin(i, j).CompleteCellExhaustive(rules, antecedents, bank, accept)
		}
	}
}

// seedAxioms places the two kinds of rule the chart never retrieves from
// a loaded grammar: one OOV rule per lattice arc, and one manual rule per
// RULE-kind constraint entry.
func (d *Decoder) seedAxioms(lat *lattice.Lattice, constraints *constraint.Table, bc *bin.Chart, bank feature.Bank) error {
	n := lat.SentLen()
	for pos := uint64(0); pos < n; pos++ {
		for _, arc := range lat.ArcsFrom(pos) {
			if constraints.IsHardlyContained(arc.From, arc.To) {
				continue // a hard manual rule supersedes the OOV fallback
			}
			rule := d.synth.ConstructOOVRule(d.numFeatures, arc.Label, d.haveLM)
			bc.Bin(arc.From, arc.To).AddAxiom(rule, bank)
		}
	}
	for _, span := range constraints.AllSpans() {
		if err := d.seedManualRules(span, bc, bank); err != nil {
			return err
		}
	}
	return nil
}

// seedManualRules synthesizes an axiom for every RULE-kind entry of span,
// whether or not span is hard. Hard spans additionally force the manual
// rule's feature vector to all zero.
func (d *Decoder) seedManualRules(span constraint.Span, bc *bin.Chart, bank feature.Bank) error {
	for _, cr := range span.Rules {
		if cr.Kind != constraint.RULE {
			continue
		}
		if len(cr.Features) != d.numFeatures {
			return &MalformedConstraintError{Span: span, Reason: fmt.Sprintf("rule has %d features, decoder expects %d", len(cr.Features), d.numFeatures)}
		}
		lhs := d.tab.AddNonterminal(cr.LHS)
		source := d.tab.AddTerminals(cr.SourceRHS)
		target := d.tab.AddTerminals(cr.TargetRHS)
		features := cr.Features
		if span.Hard {
			features = grammar.ZeroFeatures(d.numFeatures)
		}
		rule := d.synth.ConstructManualRule(lhs, source, target, features, 0)
		bc.Bin(span.Start, span.End).AddAxiom(rule, bank)
	}
	return nil
}

// transitionToGoal builds a GOAL pseudo-rule for every distinct LHS
// reachable at (0,N) and folds each candidate's derivations into the
// goal bin, then returns the cheapest resulting goal node.
func (d *Decoder) transitionToGoal(bc *bin.Chart, n uint64, goalSymbol symbol.ID, bank feature.Bank, sentID int) (*hypergraph.HyperGraph, error) {
	root := bc.Bin(0, n)
	for _, super := range root.SuperItemsSlice() {
		if super.LHS == goalSymbol {
			continue
		}
		goalRule := d.synth.ConstructGoalRule(goalSymbol, super.LHS, d.numFeatures)
		for _, node := range super.Nodes {
			root.TransitToGoal(goalRule, node, bank)
		}
	}

	goalSuper := root.SuperItem(goalSymbol)
	if goalSuper == nil || len(goalSuper.Nodes) == 0 {
		return nil, &NoDerivationError{SentID: sentID, SentLen: n}
	}
	best := goalSuper.Nodes[0]
	for _, node := range goalSuper.Nodes[1:] {
		if node.BestCost < best.BestCost {
			best = node
		}
	}
	tracer().Debugf("sentence %d: goal node %v", sentID, best)
	return &hypergraph.HyperGraph{Root: best, SentID: sentID, SentLen: n}, nil
}
