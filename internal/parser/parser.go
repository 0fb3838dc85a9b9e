// Package parser implements the parsing orchestrator: it sequences store
// detection, extraction, normalization, and scoring for one email, then
// applies the auto-processing policy. Each parse is a pure function of
// the email and the static grammar tables, so a single Parser is safe to
// share across arbitrarily many goroutines.
package parser

import (
	"fmt"
	"log/slog"

	"github.com/jburchel/kitchentory/internal/detect"
	"github.com/jburchel/kitchentory/internal/extract"
	"github.com/jburchel/kitchentory/internal/grammar"
	"github.com/jburchel/kitchentory/internal/model"
	"github.com/jburchel/kitchentory/internal/normalize"
	"github.com/jburchel/kitchentory/internal/score"
)

// State names the orchestrator's pipeline stages.
type State string

// Pipeline states. Transitions are strictly sequential; a stage failure
// jumps straight to StateTerminal.
const (
	StateReceived    State = "RECEIVED"
	StateDetecting   State = "DETECTING"
	StateExtracting  State = "EXTRACTING"
	StateNormalizing State = "NORMALIZING"
	StateScoring     State = "SCORING"
	StateDecided     State = "DECIDED"
	StateTerminal    State = "TERMINAL"
)

// DefaultAutoProcessThreshold is the confidence floor for committing a
// receipt without review.
const DefaultAutoProcessThreshold = 0.80

// Config holds the tunable policy surface.
type Config struct {
	CeilingOverrides     map[model.StoreIdentity]float64
	AutoProcessThreshold float64
}

// DefaultConfig returns the default policy configuration.
func DefaultConfig() Config {
	return Config{
		AutoProcessThreshold: DefaultAutoProcessThreshold,
	}
}

// Parser is the engine's sole entry point.
type Parser struct {
	detector   *detect.Detector
	registry   *grammar.Registry
	normalizer *normalize.Normalizer
	scorer     *score.Scorer
	threshold  float64
}

// New creates a parser with the default vocabulary and policy.
func New() *Parser {
	return NewWithConfig(normalize.DefaultVocabulary(), DefaultConfig())
}

// NewWithConfig creates a parser with a custom vocabulary and policy. A
// nil vocabulary means the built-in defaults.
func NewWithConfig(vocab *normalize.Vocabulary, cfg Config) *Parser {
	if vocab == nil {
		vocab = normalize.DefaultVocabulary()
	}
	threshold := cfg.AutoProcessThreshold
	if threshold <= 0 || threshold > 1 {
		threshold = DefaultAutoProcessThreshold
	}
	return &Parser{
		detector:   detect.New(),
		registry:   grammar.NewRegistry(),
		normalizer: normalize.New(vocab),
		scorer:     score.NewScorer(cfg.CeilingOverrides),
		threshold:  threshold,
	}
}

// Result pairs the parsed receipt with the derived import decision.
type Result struct {
	Receipt  *model.ParsedReceipt
	Decision model.ImportDecision
}

// Parse runs the full pipeline for one email. It never returns an error:
// every failure mode is recorded on the receipt and resolves to a
// conservative ManualReview decision.
func (p *Parser) Parse(email *model.IncomingEmail) (result *Result) {
	receipt := &model.ParsedReceipt{
		Store:    model.StoreGeneric,
		RawEmail: email,
	}

	// A stage blowing up on malformed input must never escape as a
	// panic or leak a partial AutoProcess.
	defer func() {
		if r := recover(); r != nil {
			slog.Error("parse stage panicked", "panic", r)
			receipt.ParsingErrors = append(receipt.ParsingErrors, model.ParseError{
				Kind:       model.ErrGrammarMatchFailure,
				Detail:     fmt.Sprintf("internal failure: %v", r),
				LineOffset: -1,
			})
			receipt.OverallConfidence = 0
			result = &Result{Receipt: receipt, Decision: model.DecisionManualReview}
		}
	}()

	state := StateReceived

	// Detecting.
	state = p.transition(state, StateDetecting)
	store, matched := p.detector.Detect(email)
	receipt.Store = store
	if !matched {
		receipt.ParsingErrors = append(receipt.ParsingErrors, model.ParseError{
			Kind:       model.ErrDetectionAmbiguous,
			Detail:     fmt.Sprintf("no detection rule matched sender %q", email.Sender),
			LineOffset: -1,
		})
	}

	// Extracting.
	state = p.transition(state, StateExtracting)
	if isBlank(email.Body) {
		receipt.ParsingErrors = append(receipt.ParsingErrors, model.ParseError{
			Kind:       model.ErrEmptyBody,
			Detail:     "email body is empty",
			LineOffset: -1,
		})
		return p.terminate(state, receipt)
	}

	extracted, g, ok := p.extractWithFallback(store, email.Body, receipt)
	receipt.SkippedLines = extracted.SkippedLines
	if !ok {
		return p.terminate(state, receipt)
	}

	// Normalizing uses the grammar that actually produced the
	// candidates, which after a fallback is the generic one.
	state = p.transition(state, StateNormalizing)
	items := make([]model.ParsedReceiptItem, 0, len(extracted.Candidates))
	for _, candidate := range extracted.Candidates {
		item, err := p.normalizer.Normalize(candidate, g)
		if err != nil {
			slog.Debug("dropping candidate", "line", candidate.LineOffset, "error", err)
			receipt.ParsingErrors = append(receipt.ParsingErrors, model.ParseError{
				Kind:       model.ErrNormalization,
				Detail:     err.Error(),
				LineOffset: candidate.LineOffset,
			})
			continue
		}
		items = append(items, item)
	}
	items = p.normalizer.Dedup(items)

	// Scoring.
	state = p.transition(state, StateScoring)
	for i := range items {
		confidence, applied := p.scorer.ScoreItem(items[i])
		items[i].ItemConfidence = confidence
		for _, rule := range applied {
			items[i].Notes = append(items[i].Notes, "penalty: "+rule)
		}
	}
	receipt.Items = items
	receipt.OrderID = extracted.OrderID
	receipt.OverallConfidence = p.scorer.ScoreReceipt(store, items, score.StructuralSignals{
		HasOrderID:     extracted.OrderID != "",
		HasTotals:      extracted.MatchedTotals,
		CandidateLines: len(extracted.Candidates),
		SkippedLines:   extracted.SkippedLines,
	})

	// Decided.
	state = p.transition(state, StateDecided)
	decision := model.DecisionManualReview
	if receipt.OverallConfidence >= p.threshold && len(receipt.ParsingErrors) == 0 {
		decision = model.DecisionAutoProcess
	}

	p.transition(state, StateTerminal)
	slog.Info("parse complete",
		"store", receipt.Store,
		"items", len(receipt.Items),
		"skipped", receipt.SkippedLines,
		"confidence", receipt.OverallConfidence,
		"errors", len(receipt.ParsingErrors),
		"decision", decision)

	return &Result{Receipt: receipt, Decision: decision}
}

// extractWithFallback runs extraction with the store grammar and, when a
// store-specific grammar yields zero items, records the failure and
// retries once with the Generic grammar. The recorded error still forces
// manual review even when the retry finds items. The returned grammar is
// the one that produced the candidates, so normalization applies the
// matching unit hints and prefixes.
func (p *Parser) extractWithFallback(store model.StoreIdentity, body string, receipt *model.ParsedReceipt) (extract.Result, *grammar.ReceiptGrammar, bool) {
	g := p.registry.For(store)
	res := extract.Extract(body, g)
	if len(res.Candidates) > 0 {
		return res, g, true
	}

	receipt.ParsingErrors = append(receipt.ParsingErrors, model.ParseError{
		Kind:       model.ErrGrammarMatchFailure,
		Detail:     fmt.Sprintf("%s grammar produced zero items", store),
		LineOffset: -1,
	})

	if store == model.StoreGeneric {
		return res, g, false
	}

	slog.Debug("store grammar produced no items, retrying with generic grammar", "store", store)
	g = p.registry.Generic()
	res = extract.Extract(body, g)
	if len(res.Candidates) == 0 {
		return res, g, false
	}
	return res, g, true
}

// terminate finishes a parse that failed at document level: empty item
// list, zero confidence, manual review.
func (p *Parser) terminate(state State, receipt *model.ParsedReceipt) *Result {
	p.transition(state, StateTerminal)
	receipt.Items = []model.ParsedReceiptItem{}
	receipt.OverallConfidence = 0
	slog.Info("parse terminated",
		"store", receipt.Store,
		"errors", len(receipt.ParsingErrors))
	return &Result{Receipt: receipt, Decision: model.DecisionManualReview}
}

func (p *Parser) transition(from, to State) State {
	slog.Debug("parser state transition", "from", from, "to", to)
	return to
}

func isBlank(s string) bool {
	for _, r := range s {
		if r != ' ' && r != '\t' && r != '\n' && r != '\r' {
			return false
		}
	}
	return true
}
