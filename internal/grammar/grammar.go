// Package grammar defines the per-store extraction grammars used to pull
// item lines out of receipt emails. Grammars are static: built once at
// startup, immutable after, safe for concurrent reads.
package grammar

import (
	"regexp"

	"github.com/jburchel/kitchentory/internal/model"
)

// LinePattern is one item-line shape. Patterns use named capture groups:
// "name" (required), "qty", "unit" and "price" (all optional).
type LinePattern struct {
	Name    string
	Pattern *regexp.Regexp
}

// Match tries the pattern against a single line. On success it returns a
// raw candidate populated from the named capture groups.
func (p LinePattern) Match(line string, offset int) (model.RawCandidateItem, bool) {
	m := p.Pattern.FindStringSubmatch(line)
	if m == nil {
		return model.RawCandidateItem{}, false
	}

	candidate := model.RawCandidateItem{
		RawText:    line,
		LineOffset: offset,
	}
	for _, group := range []struct {
		dst *string
		key string
	}{
		{&candidate.RawQuantity, "qty"},
		{&candidate.RawUnit, "unit"},
		{&candidate.RawPrice, "price"},
	} {
		if idx := p.Pattern.SubexpIndex(group.key); idx >= 0 && idx < len(m) {
			*group.dst = m[idx]
		}
	}
	if idx := p.Pattern.SubexpIndex("name"); idx >= 0 && idx < len(m) {
		candidate.RawText = m[idx]
	}
	return candidate, true
}

// ReceiptGrammar bundles everything needed to extract items from one
// store's receipt format.
type ReceiptGrammar struct {
	Store model.StoreIdentity

	// ItemLinePatterns are tried in order, most specific first.
	ItemLinePatterns []LinePattern

	// DanglingNamePattern matches a line holding only an item name; when
	// the following line matches PriceOnlyPattern the two merge into one
	// candidate.
	DanglingNamePattern *regexp.Regexp
	PriceOnlyPattern    *regexp.Regexp

	// TotalsPattern matches the order-total line; used both to filter
	// structural lines and as a document-level confidence anchor.
	TotalsPattern *regexp.Regexp

	// OrderIDPattern captures the order id in group 1.
	OrderIDPattern *regexp.Regexp

	// Boilerplate lines are discarded before item matching.
	Boilerplate []*regexp.Regexp

	// UnitHints maps store-specific unit spellings onto the canonical
	// vocabulary, consulted before the shared table.
	UnitHints map[string]string

	// StripPrefixes are store-specific brand or SKU prefixes removed
	// from item names during normalization.
	StripPrefixes []string
}

// pattern compiles an item-line pattern, case-insensitive by default.
func pattern(name, expr string) LinePattern {
	return LinePattern{Name: name, Pattern: regexp.MustCompile("(?i)" + expr)}
}

// rx compiles a bare helper regex, case-insensitive by default.
func rx(expr string) *regexp.Regexp {
	return regexp.MustCompile("(?i)" + expr)
}

// commonBoilerplate matches structural lines no store grammar should ever
// treat as items: totals blocks, payment lines, greetings, separators.
func commonBoilerplate() []*regexp.Regexp {
	return []*regexp.Regexp{
		rx(`^\s*(sub\s*total|subtotal|total|tax|tip|sales\s*tax|delivery\s*fee|service\s*fee|bag\s*fee|fees?|savings|discount|coupon|refund|credit)\b`),
		rx(`^\s*(visa|mastercard|amex|discover|debit|credit\s*card|gift\s*card|ebt|payment|paid\s*with|card\s*ending)\b`),
		rx(`^\s*(thank\s*you|thanks\s*for|questions\?|contact\s*us|customer\s*(service|care)|unsubscribe|privacy|terms)\b`),
		rx(`^\s*(your\s*(order|receipt|delivery)|order\s*(summary|details|confirmation)|delivered|shipped|estimated)\b`),
		rx(`^\s*[-=*_]{3,}\s*$`),
		rx(`^\s*\d{1,2}[/-]\d{1,2}[/-]\d{2,4}\s*$`),
		rx(`^\s*\d{1,2}:\d{2}\s*(am|pm)?\s*$`),
	}
}

// genericPriceOnly matches a line holding just a price, optionally with a
// leading quantity ("$3.98", "2 x $3.98", "2 @ $1.99").
func genericPriceOnly() *regexp.Regexp {
	return rx(`^\s*(?:(?P<qty>\d+(?:\.\d+)?)\s*[x@]\s*)?\$?(?P<price>\d{1,4}\.\d{2})\s*$`)
}

// genericDanglingName matches a plausible bare item-name line: some
// letters, no price, not suspiciously long.
func genericDanglingName() *regexp.Regexp {
	return rx(`^\s*[a-z][a-z0-9&'.,() -]{2,80}\s*$`)
}
