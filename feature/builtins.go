package feature

import (
	"fmt"

	"github.com/jrs026/joshua/grammar"
	"github.com/jrs026/joshua/hypergraph"
	"github.com/jrs026/joshua/symbol"
)

// RuleScoreFeature reads a single component out of a rule's static
// feature vector and scales it by a weight. This is the simplest
// possible feature function, standing in for the many linear features a
// real model bank would carry (phrase-translation probabilities,
// lexical weights, and so on).
type RuleScoreFeature struct {
	Index  int
	Weight float64
}

func (f RuleScoreFeature) Name() string { return fmt.Sprintf("RuleScore[%d]", f.Index) }

func (f RuleScoreFeature) Transition(rule *grammar.Rule, _ []*hypergraph.HGNode, _, _ uint64) Contribution {
	if f.Index >= len(rule.Features) {
		return Contribution{}
	}
	return Contribution{Cost: f.Weight * rule.Features[f.Index]}
}

// WordPenaltyFeature charges a fixed cost per target-side terminal a rule
// introduces, discouraging (or encouraging, for negative weights)
// verbose output.
type WordPenaltyFeature struct {
	Weight float64
}

func (f WordPenaltyFeature) Name() string { return "WordPenalty" }

func (f WordPenaltyFeature) Transition(rule *grammar.Rule, _ []*hypergraph.HGNode, _, _ uint64) Contribution {
	var words int
	for _, s := range rule.TargetRHS {
		if s.IsTerminal() {
			words++
		}
	}
	return Contribution{Cost: f.Weight * float64(words)}
}

// LanguageModel scores a single word following a history of prior words.
// A real implementation would back this with a loaded n-gram model file;
// ToyLM below is an in-memory stand-in sufficient for tests.
type LanguageModel interface {
	Order() int
	Score(history []symbol.ID, word symbol.ID) float64
}

// NGramLMFeature scores the target-side terminal sequence a rule
// introduces, directly, against an n-gram LanguageModel. It does not
// attempt to stitch together cross-antecedent boundary words (that
// requires carrying left/right n-gram state on HGNode signatures, which
// belongs to a full LM feature function of its own); it scores only the
// words the rule itself contributes, in order, maintaining a rolling
// history reset at the start of the rule.
// The OOV fallback cost is charged once per OOV rule instead of scoring
// an n-gram over a single unknown word.
type NGramLMFeature struct {
	LM      LanguageModel
	OOVCost float64
}

func (f NGramLMFeature) Name() string { return "NGramLM" }

func (f NGramLMFeature) Transition(rule *grammar.Rule, _ []*hypergraph.HGNode, _, _ uint64) Contribution {
	if rule.IsOOV {
		return Contribution{Cost: f.OOVCost, StateFingerprint: "oov"}
	}
	var cost float64
	var history []symbol.ID
	for _, s := range rule.TargetRHS {
		if !s.IsTerminal() {
			history = nil // a nonterminal slot breaks the rolling history
			continue
		}
		cost += f.LM.Score(history, s)
		history = append(history, s)
		if len(history) >= f.LM.Order()-1 {
			history = history[len(history)-(f.LM.Order()-1):]
		}
	}
	return Contribution{Cost: cost, StateFingerprint: fingerprint(history)}
}

func fingerprint(history []symbol.ID) string {
	s := "lm:"
	for _, h := range history {
		s += fmt.Sprintf("%d,", int32(h))
	}
	return s
}

// ToyLM is an in-memory n-gram language model backed by explicit
// (history, word) -> cost entries, falling back to a fixed unigram cost
// for unseen continuations. It exists to exercise have_lm wiring in tests
// and cmd/chartdump, not to be a serious language model.
type ToyLM struct {
	order       int
	scores      map[string]float64
	defaultCost float64
}

// NewToyLM creates a ToyLM of the given n-gram order (>= 1).
func NewToyLM(order int, defaultCost float64) *ToyLM {
	if order < 1 {
		order = 1
	}
	return &ToyLM{order: order, scores: make(map[string]float64), defaultCost: defaultCost}
}

// Set records an explicit score for (history, word).
func (lm *ToyLM) Set(history []symbol.ID, word symbol.ID, cost float64) {
	lm.scores[key(history, word)] = cost
}

// Order implements LanguageModel.
func (lm *ToyLM) Order() int { return lm.order }

// Score implements LanguageModel.
func (lm *ToyLM) Score(history []symbol.ID, word symbol.ID) float64 {
	if c, ok := lm.scores[key(history, word)]; ok {
		return c
	}
	return lm.defaultCost
}

func key(history []symbol.ID, word symbol.ID) string {
	s := fmt.Sprintf("%d:", int32(word))
	for _, h := range history {
		s += fmt.Sprintf("%d,", int32(h))
	}
	return s
}
