/*
Package constraint implements a span-indexed filter/axiom table:
ConstraintSpan, ConstraintRule, and the lookup table the chart driver
consults while seeding and while completing rules into a cell.
*/
package constraint

import (
	"fmt"

	"github.com/jrs026/joshua/symbol"
)

// RuleKind distinguishes the three kinds of entry a ConstraintSpan may carry.
type RuleKind int

const (
	// RULE entries synthesize a manual axiom; they never participate in filtering.
	RULE RuleKind = iota
	// LHS entries accept a grammar rule iff its LHS matches.
	LHS
	// RHS entries accept a grammar rule iff its target RHS matches elementwise.
	RHS
)

func (k RuleKind) String() string {
	switch k {
	case RULE:
		return "RULE"
	case LHS:
		return "LHS"
	case RHS:
		return "RHS"
	default:
		return "?"
	}
}

// Rule is one entry of a ConstraintSpan.
type Rule struct {
	Kind RuleKind
	// LHS is the nonterminal name for a LHS-kind rule.
	LHS string
	// NativeRHS is the target-side word sequence for a RHS-kind rule.
	NativeRHS []string
	// For a RULE-kind entry: the manual rule's source/target RHS and features.
	SourceRHS []string
	TargetRHS []string
	Features  []float64
}

// Span is a ConstraintSpan: a source interval [Start, End] with a hardness
// flag and a list of ConstraintRules.
type Span struct {
	Start, End uint64
	Hard       bool
	Rules      []Rule
}

func (s Span) String() string {
	return fmt.Sprintf("[%d,%d]%s", s.Start, s.End, map[bool]string{true: " (hard)", false: ""}[s.Hard])
}

// Table indexes constraint spans for fast per-cell lookup during seeding
// and completion, keyed by a plain comparable (i,j) struct rather than a
// formatted string.
type Table struct {
	filters   map[cellKey][]Rule // LHS/RHS rules indexed by (i,j)
	hardSpans []Span             // recorded hard-rule spans, for containment checks
	allSpans  []Span             // every indexed span, for RULE-entry axiom seeding
}

type cellKey struct{ i, j uint64 }

// NewTable builds an empty Table.
func NewTable() *Table {
	return &Table{filters: make(map[cellKey][]Rule)}
}

// IndexSpan records a ConstraintSpan's LHS/RHS rules for filtering, and
// remembers the span itself (hard or not) so the chart driver can later
// seed every RULE entry as an axiom. RULE entries are not indexed into
// the filter table; they never participate in filtering, only in axiom
// seeding, which the chart driver drives from AllSpans.
func (t *Table) IndexSpan(span Span) {
	var filterRules []Rule
	for _, r := range span.Rules {
		if r.Kind == LHS || r.Kind == RHS {
			filterRules = append(filterRules, r)
		}
	}
	if len(filterRules) > 0 {
		key := cellKey{span.Start, span.End}
		t.filters[key] = append(t.filters[key], filterRules...)
	}
	t.allSpans = append(t.allSpans, span)
	if span.Hard {
		t.hardSpans = append(t.hardSpans, span)
	}
}

// AllSpans returns every span indexed so far, hard or not, so the chart
// driver can seed manual axioms from every RULE-kind entry: axiom
// seeding applies to all ConstraintSpans, not only hard ones.
func (t *Table) AllSpans() []Span {
	return t.allSpans
}

// IsHardlyContained reports whether [i,j) falls inside some recorded
// hard-rule span [s,e]: s <= i && j <= e.
func (t *Table) IsHardlyContained(i, j uint64) bool {
	for _, hs := range t.hardSpans {
		if hs.Start <= i && j <= hs.End {
			return true
		}
	}
	return false
}

// HardSpans returns the recorded hard-rule spans, for diagnostics/testing.
func (t *Table) HardSpans() []Span {
	return t.hardSpans
}

// RuleView is the minimal shape of a grammar.Rule the filter needs to
// look at; kept narrow here so package constraint need not import
// package grammar (constraint is a lower-level, grammar-agnostic layer).
type RuleView interface {
	LHSSymbol() symbol.ID
	TargetRHSSymbols() []symbol.ID
}

// Accepts reports whether gRule survives the filter at (i,j): true if no
// ConstraintSpan indexes (i,j) at all, or if at least one LHS/RHS
// ConstraintRule in that span accepts it.
func (t *Table) Accepts(i, j uint64, gRule RuleView, tab *symbol.Table) bool {
	rules, ok := t.filters[cellKey{i, j}]
	if !ok {
		return true
	}
	for _, cRule := range rules {
		switch cRule.Kind {
		case LHS:
			if gRule.LHSSymbol() == tab.AddNonterminal(cRule.LHS) {
				return true
			}
		case RHS:
			if rhsMatches(gRule.TargetRHSSymbols(), cRule.NativeRHS, tab) {
				return true
			}
		}
	}
	return false
}

func rhsMatches(gRHS []symbol.ID, native []string, tab *symbol.Table) bool {
	if len(gRHS) != len(native) {
		return false
	}
	want := tab.AddTerminals(native)
	for i, w := range want {
		if gRHS[i] != w {
			return false
		}
	}
	return true
}
