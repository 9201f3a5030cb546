/*
chartdump is a thin demonstration CLI wiring a toy lattice, a toy glue
grammar, and a small feature bank through package chart, then rendering
the resulting hypergraph and diagnostics counters with pterm. It is
scaffolding to exercise the library end to end, not a production
decoder driver: real grammar loading, tokenization, and an embedding
application's own CLI belong elsewhere.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2026 the joshua authors.
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/pterm/pterm"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"

	"github.com/jrs026/joshua/chart"
	"github.com/jrs026/joshua/config"
	"github.com/jrs026/joshua/constraint"
	"github.com/jrs026/joshua/feature"
	"github.com/jrs026/joshua/grammar"
	"github.com/jrs026/joshua/hypergraph"
	"github.com/jrs026/joshua/lattice"
	"github.com/jrs026/joshua/symbol"
)

func tracer() tracing.Trace {
	return tracing.Select("joshua.chartdump")
}

func main() {
	sentence := flag.String("sentence", "the black cat sleeps", "whitespace-separated source sentence")
	useCube := flag.Bool("cube-prune", false, "use cube pruning instead of exhaustive combination")
	beam := flag.Float64("beam", 0, "beam width (0 disables beam pruning)")
	kbest := flag.Int("kbest", 0, "per-SuperItem k-best cap (0 disables)")
	haveLM := flag.Bool("lm", true, "score a toy bigram language-model feature")
	tlevel := flag.String("trace", "Info", "trace level [Debug|Info|Error]")
	timeout := flag.Duration("timeout", 5*time.Second, "per-sentence decode timeout")
	flag.Parse()

	initDisplay()
	gtrace.SyntaxTracer = gologadapter.New()
	tracer().SetTraceLevel(tracing.TraceLevelFromString(*tlevel))
	pterm.Info.Println("joshua chartdump")

	tab := symbol.NewTable()
	words := strings.Fields(*sentence)
	lat := buildLattice(tab, words)
	g, x, goal := buildGlueGrammar(tab)
	bank, toyLM := buildFeatureBank(*haveLM)

	cfg := config.Defaults()
	cfg.UseCubePrune = *useCube
	cfg.BeamWidth = *beam
	cfg.KBest = *kbest

	d := chart.NewDecoder([]grammar.Grammar{g}, tab,
		chart.WithConfig(cfg),
		chart.WithNumFeatures(2),
		chart.WithHaveLM(*haveLM),
		chart.WithOOVNonterminal(x),
	)
	if toyLM != nil {
		seedToyLM(toyLM, tab, words)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	hg, diag, err := d.Parse(ctx, lat, bank, constraint.NewTable(), goal, 1)
	if err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(1)
	}

	pterm.DefaultSection.Println("Hypergraph")
	root := pterm.NewTreeFromLeveledList(leveledHyperGraph(tab, hg.Root, 0))
	pterm.DefaultTree.WithRoot(root).Render()

	pterm.DefaultSection.Println("Diagnostics")
	rows := diag.Rows()
	data := make(pterm.TableData, 0, len(rows)+1)
	data = append(data, []string{"counter", "value"})
	for _, r := range rows {
		data = append(data, []string{r[0], r[1]})
	}
	if err := pterm.DefaultTable.WithHasHeader().WithData(data).Render(); err != nil {
		pterm.Error.Println(err.Error())
	}
}

func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{Text: "  >>", Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack)}
	pterm.Error.Prefix = pterm.Prefix{Text: "  Error", Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack)}
}

func buildLattice(tab *symbol.Table, words []string) *lattice.Lattice {
	lat := lattice.New(uint64(len(words)))
	for i, w := range words {
		lat.AddArc(uint64(i), uint64(i+1), tab.AddTerminal(w), 0)
	}
	return lat
}

// buildGlueGrammar constructs a minimal demonstration grammar: every
// source word becomes an X via the OOV fallback (wired to bridge through
// X instead of the default untranslated marker), and a glue rule
// GOAL -> GOAL X folds neighboring X spans left to right. This is only
// enough structure to exercise the chart driver end to end; real grammar
// loading is an embedding application's job.
func buildGlueGrammar(tab *symbol.Table) (g *grammar.MemGrammar, x, goal symbol.ID) {
	x = tab.AddNonterminal("X")
	goal = tab.AddNonterminal("GOAL")
	g = grammar.NewMemGrammar()
	g.AddRule(&grammar.Rule{LHS: goal, SourceRHS: []symbol.ID{x}, TargetRHS: []symbol.ID{x}, Arity: 1, Features: []float64{0, 0}})
	g.AddRule(&grammar.Rule{LHS: goal, SourceRHS: []symbol.ID{goal, x}, TargetRHS: []symbol.ID{goal, x}, Arity: 2, Features: []float64{0, 0}})
	return g, x, goal
}

func buildFeatureBank(haveLM bool) (feature.Bank, *feature.ToyLM) {
	bank := feature.Bank{
		feature.RuleScoreFeature{Index: 0, Weight: 1},
		feature.WordPenaltyFeature{Weight: 0.1},
	}
	if !haveLM {
		return bank, nil
	}
	lm := feature.NewToyLM(2, 1.5)
	bank = append(bank, feature.NGramLMFeature{LM: lm, OOVCost: 100})
	return bank, lm
}

// seedToyLM gives the demo LM a mild preference for the sentence's own
// word order. The demo grammar brings every word in through an OOV rule,
// which NGramLMFeature charges its fixed OOVCost without consulting the
// LM, so these scores do not change chartdump's output.
func seedToyLM(lm *feature.ToyLM, tab *symbol.Table, words []string) {
	var history []symbol.ID
	for _, w := range words {
		id := tab.AddTerminal(w)
		lm.Set(history, id, 0.25)
		history = append(history, id)
		if len(history) >= lm.Order()-1 {
			history = history[len(history)-(lm.Order()-1):]
		}
	}
}

func leveledHyperGraph(tab *symbol.Table, n *hypergraph.HGNode, level int) pterm.LeveledList {
	var ll pterm.LeveledList
	label := fmt.Sprintf("%s (%d,%d) cost=%.3f", tab.GetWord(n.LHS), n.I, n.J, n.BestCost)
	ll = append(ll, pterm.LeveledListItem{Level: level, Text: label})
	if len(n.Edges) == 0 {
		return ll
	}
	best := n.Edges[0]
	for _, e := range n.Edges[1:] {
		if e.TotalCost() < best.TotalCost() {
			best = e
		}
	}
	for _, ant := range best.Antecedents {
		ll = append(ll, leveledHyperGraph(tab, ant, level+1)...)
	}
	return ll
}
