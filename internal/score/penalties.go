package score

import "github.com/jburchel/kitchentory/internal/model"

// Per-item penalty deductions. Each item starts at 1.0 and every rule
// that applies subtracts its deduction, floored at 0.
const (
	PenaltyQuantityDefaulted = 0.15
	PenaltyPriceAbsent       = 0.10
	PenaltyCategoryDefaulted = 0.05
	PenaltyShortName         = 0.20
)

// minNameLength is the shortest cleaned name that doesn't look garbled.
const minNameLength = 3

// PenaltyRule is one named deduction. Keeping the rule set as an ordered
// table makes each rule independently testable and lets the review UI
// show exactly which penalties applied.
type PenaltyRule struct {
	Applies   func(model.ParsedReceiptItem) bool
	Name      string
	Deduction float64
}

// Rules returns the ordered penalty rule table.
func Rules() []PenaltyRule {
	return []PenaltyRule{
		{
			Name:      "quantity_defaulted",
			Deduction: PenaltyQuantityDefaulted,
			Applies: func(item model.ParsedReceiptItem) bool {
				return item.QuantityDefaulted
			},
		},
		{
			Name:      "price_absent",
			Deduction: PenaltyPriceAbsent,
			Applies: func(item model.ParsedReceiptItem) bool {
				return item.Price == nil
			},
		},
		{
			Name:      "category_defaulted",
			Deduction: PenaltyCategoryDefaulted,
			Applies: func(item model.ParsedReceiptItem) bool {
				return item.CategoryDefaulted
			},
		},
		{
			Name:      "short_name",
			Deduction: PenaltyShortName,
			Applies: func(item model.ParsedReceiptItem) bool {
				return len(item.Name) < minNameLength
			},
		},
	}
}
