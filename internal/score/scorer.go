// Package score computes per-item and whole-receipt confidence from
// extraction quality signals.
package score

import "github.com/jburchel/kitchentory/internal/model"

// Structural factor values. Document-level anchors (order id, totals
// line) gate how much individual item quality is allowed to count.
const (
	structuralBoth    = 1.0
	structuralOne     = 0.85
	structuralNeither = 0.7
)

// skipPenaltyWeight scales the skipped-line discount: a body where every
// content line was unrecognized loses half its confidence.
const skipPenaltyWeight = 0.5

// StructuralSignals records the document-level extraction signals:
// which anchors matched, and how many content lines produced candidates
// versus how many no pattern recognized.
type StructuralSignals struct {
	HasOrderID     bool
	HasTotals      bool
	CandidateLines int
	SkippedLines   int
}

// Scorer applies the penalty rule table and per-store ceilings.
type Scorer struct {
	ceilings map[model.StoreIdentity]float64
	rules    []PenaltyRule
}

// NewScorer creates a scorer. Ceiling overrides replace the per-store
// defaults for the stores they name; pass nil to use defaults only.
func NewScorer(ceilingOverrides map[model.StoreIdentity]float64) *Scorer {
	return &Scorer{
		ceilings: ceilingOverrides,
		rules:    Rules(),
	}
}

// ScoreItem returns the item confidence and the names of the penalty
// rules that applied, for audit.
func (s *Scorer) ScoreItem(item model.ParsedReceiptItem) (float64, []string) {
	confidence := 1.0
	var applied []string

	for _, rule := range s.rules {
		if rule.Applies(item) {
			confidence -= rule.Deduction
			applied = append(applied, rule.Name)
		}
	}

	if confidence < 0 {
		confidence = 0
	}
	return confidence, applied
}

// ScoreReceipt computes the overall confidence:
// min(ceiling, mean(itemConfidences) * structuralFactor). A receipt with
// no items scores 0 regardless of structure.
func (s *Scorer) ScoreReceipt(store model.StoreIdentity, items []model.ParsedReceiptItem, signals StructuralSignals) float64 {
	if len(items) == 0 {
		return 0
	}

	sum := 0.0
	for _, item := range items {
		sum += item.ItemConfidence
	}
	confidence := (sum / float64(len(items))) * StructuralFactor(signals) * SkipFactor(signals)

	if ceiling := s.Ceiling(store); confidence > ceiling {
		confidence = ceiling
	}
	if confidence < 0 {
		confidence = 0
	}
	if confidence > 1 {
		confidence = 1
	}
	return confidence
}

// Ceiling returns the effective confidence ceiling for a store.
func (s *Scorer) Ceiling(store model.StoreIdentity) float64 {
	if s.ceilings != nil {
		if ceiling, ok := s.ceilings[store]; ok {
			return ceiling
		}
	}
	return store.ConfidenceCeiling()
}

// SkipFactor discounts receipts whose bodies were mostly unrecognized:
// the discount grows with the share of content lines no pattern matched,
// so a clean receipt and one buried in garbage score differently even
// when the extracted items look identical.
func SkipFactor(signals StructuralSignals) float64 {
	total := signals.CandidateLines + signals.SkippedLines
	if total == 0 || signals.SkippedLines == 0 {
		return 1.0
	}
	return 1.0 - skipPenaltyWeight*float64(signals.SkippedLines)/float64(total)
}

// StructuralFactor converts the anchor signals into the receipt-level
// multiplier.
func StructuralFactor(signals StructuralSignals) float64 {
	switch {
	case signals.HasOrderID && signals.HasTotals:
		return structuralBoth
	case signals.HasOrderID || signals.HasTotals:
		return structuralOne
	default:
		return structuralNeither
	}
}
