// Package extract turns an email body into raw candidate items by
// applying a store grammar line by line. Extraction is a pure function:
// no normalization, no dedup, no side effects.
package extract

import (
	"regexp"
	"strings"

	"github.com/jburchel/kitchentory/internal/grammar"
	"github.com/jburchel/kitchentory/internal/model"
)

// Result carries the extracted candidates plus the document-level signals
// the confidence scorer needs.
type Result struct {
	OrderID       string
	Candidates    []model.RawCandidateItem
	SkippedLines  int // non-empty, non-structural lines no pattern matched
	MatchedTotals bool
}

// scanState drives the two-line merge: a dangling name line only becomes
// a candidate if the very next line is price-only.
type scanState int

const (
	stateIdle scanState = iota
	statePendingName
)

// Extract applies the grammar to the body and returns candidates in
// document order. Duplicate lines are kept; merging identical items is a
// normalization concern.
func Extract(body string, g *grammar.ReceiptGrammar) Result {
	var res Result

	var (
		state         scanState
		pendingName   string
		pendingOffset int
	)

	dropPending := func() {
		if state == statePendingName {
			res.SkippedLines++
			state = stateIdle
		}
	}

	for offset, raw := range strings.Split(body, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			dropPending()
			continue
		}

		orderIDLine := false
		if g.OrderIDPattern != nil {
			if m := g.OrderIDPattern.FindStringSubmatch(line); len(m) > 1 {
				if res.OrderID == "" {
					res.OrderID = m[1]
				}
				orderIDLine = true
			}
		}

		if g.TotalsPattern != nil && g.TotalsPattern.MatchString(line) {
			res.MatchedTotals = true
			dropPending()
			continue
		}

		if isBoilerplate(line, g.Boilerplate) {
			dropPending()
			continue
		}

		if state == statePendingName {
			if candidate, ok := mergePriceLine(pendingName, pendingOffset, line, g.PriceOnlyPattern); ok {
				res.Candidates = append(res.Candidates, candidate)
				state = stateIdle
				continue
			}
			// The pending name never got its price line.
			res.SkippedLines++
			state = stateIdle
		}

		if candidate, ok := matchItemLine(line, offset, g.ItemLinePatterns); ok {
			res.Candidates = append(res.Candidates, candidate)
			continue
		}

		if g.DanglingNamePattern != nil && g.DanglingNamePattern.MatchString(line) {
			state = statePendingName
			pendingName = line
			pendingOffset = offset
			continue
		}

		// An order-id line is structural, like totals and boilerplate.
		if orderIDLine {
			continue
		}

		res.SkippedLines++
	}

	dropPending()

	return res
}

// matchItemLine tries the grammar's item patterns most-specific-first.
func matchItemLine(line string, offset int, patterns []grammar.LinePattern) (model.RawCandidateItem, bool) {
	for _, p := range patterns {
		if candidate, ok := p.Match(line, offset); ok {
			return candidate, true
		}
	}
	return model.RawCandidateItem{}, false
}

// mergePriceLine combines a dangling name line with a following
// price-only line into one candidate anchored at the name's offset.
func mergePriceLine(name string, nameOffset int, line string, priceOnly *regexp.Regexp) (model.RawCandidateItem, bool) {
	if priceOnly == nil {
		return model.RawCandidateItem{}, false
	}
	m := priceOnly.FindStringSubmatch(line)
	if m == nil {
		return model.RawCandidateItem{}, false
	}

	candidate := model.RawCandidateItem{
		RawText:    name,
		LineOffset: nameOffset,
		Merged:     true,
	}
	if idx := priceOnly.SubexpIndex("qty"); idx >= 0 && idx < len(m) {
		candidate.RawQuantity = m[idx]
	}
	if idx := priceOnly.SubexpIndex("price"); idx >= 0 && idx < len(m) {
		candidate.RawPrice = m[idx]
	}
	return candidate, true
}

func isBoilerplate(line string, patterns []*regexp.Regexp) bool {
	for _, p := range patterns {
		if p.MatchString(line) {
			return true
		}
	}
	return false
}
