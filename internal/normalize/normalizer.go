// Package normalize cleans raw candidate items into canonical parsed
// items: name cleanup, quantity and price parsing, unit mapping, and
// category inference against the shared vocabulary tables.
package normalize

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jburchel/kitchentory/internal/grammar"
	"github.com/jburchel/kitchentory/internal/model"
)

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	skuCodeRe    = regexp.MustCompile(`\b\d{6,}\b`)
	currencyRe   = regexp.MustCompile(`[$,]`)
)

// Normalizer converts raw candidates into parsed receipt items. It holds
// no mutable state and is safe for concurrent use.
type Normalizer struct {
	vocab *Vocabulary
}

// New creates a normalizer over the given vocabulary.
func New(vocab *Vocabulary) *Normalizer {
	return &Normalizer{vocab: vocab}
}

// Normalize cleans a single candidate. It returns an error only when the
// candidate is unusable (empty name after cleaning); the caller drops
// that one candidate and records the error, the receipt survives.
func (n *Normalizer) Normalize(c model.RawCandidateItem, g *grammar.ReceiptGrammar) (model.ParsedReceiptItem, error) {
	name := n.cleanName(c.RawText, g.StripPrefixes)
	if name == "" {
		return model.ParsedReceiptItem{}, fmt.Errorf("candidate at line %d has no usable name: %q", c.LineOffset, c.RawText)
	}

	item := model.ParsedReceiptItem{
		Name:       name,
		Unit:       n.canonicalUnit(c.RawUnit, g),
		Category:   DefaultCategory,
		LineOffset: c.LineOffset,
	}
	if c.Merged {
		item.Notes = append(item.Notes, "merged from name and price lines")
	}

	if qty, err := strconv.ParseFloat(strings.TrimSpace(c.RawQuantity), 64); err == nil && qty > 0 {
		item.Quantity = qty
	} else {
		item.Quantity = 1
		item.QuantityDefaulted = true
		item.Notes = append(item.Notes, "quantity defaulted to 1")
	}

	if price := parsePrice(c.RawPrice); price > 0 {
		item.Price = &price
	}

	if category, ok := n.vocab.CategoryFor(name); ok {
		item.Category = category
	} else {
		item.CategoryDefaulted = true
	}

	return item, nil
}

// Dedup merges items whose (name, unit) pair repeats: quantities sum,
// prices average, first-appearance order is kept. This is the only place
// merging happens.
func (n *Normalizer) Dedup(items []model.ParsedReceiptItem) []model.ParsedReceiptItem {
	type key struct {
		name string
		unit string
	}

	index := make(map[key]int)
	merged := make([]model.ParsedReceiptItem, 0, len(items))

	for _, item := range items {
		k := key{name: item.Name, unit: item.Unit}
		at, seen := index[k]
		if !seen {
			index[k] = len(merged)
			merged = append(merged, item)
			continue
		}

		kept := &merged[at]
		kept.Quantity += item.Quantity
		kept.Price = averagePrice(kept.Price, item.Price)
		kept.QuantityDefaulted = kept.QuantityDefaulted || item.QuantityDefaulted
		kept.Notes = append(kept.Notes, fmt.Sprintf("merged duplicate line %d", item.LineOffset))
	}

	return merged
}

// cleanName strips store prefixes and SKU codes, collapses whitespace,
// title-cases, and truncates to the model cap.
func (n *Normalizer) cleanName(raw string, prefixes []string) string {
	name := strings.TrimSpace(raw)

	for _, prefix := range prefixes {
		if len(name) > len(prefix) && strings.EqualFold(name[:len(prefix)], prefix) {
			name = name[len(prefix):]
			break
		}
	}

	name = skuCodeRe.ReplaceAllString(name, "")
	name = whitespaceRe.ReplaceAllString(name, " ")
	name = strings.Trim(name, " .,;:-_*#")
	if name == "" {
		return ""
	}

	// Casers carry internal state, so build one per call rather than
	// sharing across goroutines.
	name = cases.Title(language.English).String(strings.ToLower(name))
	if len(name) > model.MaxItemNameLength {
		cut := model.MaxItemNameLength
		// Back up to a rune boundary so the cap never splits a rune.
		for cut > 0 && !utf8.RuneStart(name[cut]) {
			cut--
		}
		name = name[:cut]
	}
	return name
}

func (n *Normalizer) canonicalUnit(raw string, g *grammar.ReceiptGrammar) string {
	token := strings.ToLower(strings.TrimSpace(raw))
	if token == "" {
		return DefaultUnit
	}
	if g.UnitHints != nil {
		if unit, ok := g.UnitHints[token]; ok {
			// Store hints map onto the shared vocabulary, not past it.
			if canonical, found := n.vocab.CanonicalUnit(unit); found {
				return canonical
			}
			return unit
		}
	}
	if unit, ok := n.vocab.CanonicalUnit(token); ok {
		return unit
	}
	return DefaultUnit
}

// parsePrice returns 0 for anything unusable; zero and negative prices
// are "no price", not errors.
func parsePrice(raw string) float64 {
	cleaned := currencyRe.ReplaceAllString(strings.TrimSpace(raw), "")
	if cleaned == "" {
		return 0
	}
	price, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || price <= 0 {
		return 0
	}
	return price
}

func averagePrice(a, b *float64) *float64 {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	default:
		avg := (*a + *b) / 2
		return &avg
	}
}
