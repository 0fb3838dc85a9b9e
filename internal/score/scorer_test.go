package score

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jburchel/kitchentory/internal/model"
)

func cleanItem() model.ParsedReceiptItem {
	price := 4.29
	return model.ParsedReceiptItem{
		Name:     "Whole Milk",
		Quantity: 1,
		Unit:     "item",
		Price:    &price,
		Category: "Dairy",
	}
}

func TestScoreItem_PenaltyTable(t *testing.T) {
	s := NewScorer(nil)

	tests := []struct {
		mutate       func(*model.ParsedReceiptItem)
		name         string
		wantApplied  []string
		wantConfidence float64
	}{
		{
			name:         "clean item scores full confidence",
			mutate:       func(*model.ParsedReceiptItem) {},
			wantApplied:  nil,
			wantConfidence: 1.0,
		},
		{
			name: "quantity defaulted",
			mutate: func(item *model.ParsedReceiptItem) {
				item.QuantityDefaulted = true
			},
			wantApplied:  []string{"quantity_defaulted"},
			wantConfidence: 0.85,
		},
		{
			name: "price absent",
			mutate: func(item *model.ParsedReceiptItem) {
				item.Price = nil
			},
			wantApplied:  []string{"price_absent"},
			wantConfidence: 0.90,
		},
		{
			name: "category defaulted",
			mutate: func(item *model.ParsedReceiptItem) {
				item.CategoryDefaulted = true
			},
			wantApplied:  []string{"category_defaulted"},
			wantConfidence: 0.95,
		},
		{
			name: "short name",
			mutate: func(item *model.ParsedReceiptItem) {
				item.Name = "Ox"
			},
			wantApplied:  []string{"short_name"},
			wantConfidence: 0.80,
		},
		{
			name: "penalties stack",
			mutate: func(item *model.ParsedReceiptItem) {
				item.QuantityDefaulted = true
				item.Price = nil
				item.CategoryDefaulted = true
			},
			wantApplied:  []string{"quantity_defaulted", "price_absent", "category_defaulted"},
			wantConfidence: 0.70,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := cleanItem()
			tt.mutate(&item)

			confidence, applied := s.ScoreItem(item)
			assert.InDelta(t, tt.wantConfidence, confidence, 0.0001)
			assert.Equal(t, tt.wantApplied, applied)
		})
	}
}

func TestScoreItem_FloorsAtZero(t *testing.T) {
	s := NewScorer(nil)

	// Worst case item under every penalty at once.
	item := model.ParsedReceiptItem{
		Name:              "X",
		QuantityDefaulted: true,
		CategoryDefaulted: true,
	}
	confidence, _ := s.ScoreItem(item)
	assert.GreaterOrEqual(t, confidence, 0.0)
	assert.InDelta(t, 0.50, confidence, 0.0001)
	assert.LessOrEqual(t, confidence, 1.0)
}

func TestSkipFactor(t *testing.T) {
	tests := []struct {
		name    string
		signals StructuralSignals
		want    float64
	}{
		{"no lines at all", StructuralSignals{}, 1.0},
		{"nothing skipped", StructuralSignals{CandidateLines: 4}, 1.0},
		{"half skipped", StructuralSignals{CandidateLines: 2, SkippedLines: 2}, 0.75},
		{"mostly garbage", StructuralSignals{CandidateLines: 2, SkippedLines: 8}, 0.6},
		{"only garbage", StructuralSignals{SkippedLines: 5}, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, SkipFactor(tt.signals), 0.0001)
		})
	}
}

func TestScoreReceipt_SkippedLinesDiscount(t *testing.T) {
	s := NewScorer(nil)
	perfect := []model.ParsedReceiptItem{{ItemConfidence: 1.0}, {ItemConfidence: 1.0}}

	clean := s.ScoreReceipt(model.StoreInstacart, perfect, StructuralSignals{
		HasOrderID: true, HasTotals: true, CandidateLines: 2,
	})
	garbled := s.ScoreReceipt(model.StoreInstacart, perfect, StructuralSignals{
		HasOrderID: true, HasTotals: true, CandidateLines: 2, SkippedLines: 2,
	})

	assert.InDelta(t, 1.0, clean, 0.0001)
	assert.InDelta(t, 0.75, garbled, 0.0001)
	assert.Less(t, garbled, clean)
}

func TestStructuralFactor(t *testing.T) {
	assert.Equal(t, 1.0, StructuralFactor(StructuralSignals{HasOrderID: true, HasTotals: true}))
	assert.Equal(t, 0.85, StructuralFactor(StructuralSignals{HasOrderID: true}))
	assert.Equal(t, 0.85, StructuralFactor(StructuralSignals{HasTotals: true}))
	assert.Equal(t, 0.7, StructuralFactor(StructuralSignals{}))
}

func TestScoreReceipt(t *testing.T) {
	s := NewScorer(nil)

	items := []model.ParsedReceiptItem{
		{ItemConfidence: 1.0},
		{ItemConfidence: 0.8},
	}

	t.Run("both anchors", func(t *testing.T) {
		got := s.ScoreReceipt(model.StoreInstacart, items, StructuralSignals{HasOrderID: true, HasTotals: true})
		assert.InDelta(t, 0.90, got, 0.0001)
	})

	t.Run("no anchors reduces structurally", func(t *testing.T) {
		perfect := []model.ParsedReceiptItem{{ItemConfidence: 1.0}, {ItemConfidence: 1.0}}
		got := s.ScoreReceipt(model.StoreInstacart, perfect, StructuralSignals{})
		assert.InDelta(t, 0.70, got, 0.0001)
	})

	t.Run("generic ceiling caps the score", func(t *testing.T) {
		perfect := []model.ParsedReceiptItem{{ItemConfidence: 1.0}}
		got := s.ScoreReceipt(model.StoreGeneric, perfect, StructuralSignals{HasOrderID: true, HasTotals: true})
		assert.InDelta(t, 0.60, got, 0.0001)
	})

	t.Run("beta tier ceiling", func(t *testing.T) {
		perfect := []model.ParsedReceiptItem{{ItemConfidence: 1.0}}
		got := s.ScoreReceipt(model.StoreTarget, perfect, StructuralSignals{HasOrderID: true, HasTotals: true})
		assert.InDelta(t, 0.85, got, 0.0001)
	})

	t.Run("no items scores zero", func(t *testing.T) {
		got := s.ScoreReceipt(model.StoreInstacart, nil, StructuralSignals{HasOrderID: true, HasTotals: true})
		assert.Equal(t, 0.0, got)
	})
}

func TestScoreReceipt_CeilingOverride(t *testing.T) {
	s := NewScorer(map[model.StoreIdentity]float64{
		model.StoreGeneric: 0.9,
	})

	perfect := []model.ParsedReceiptItem{{ItemConfidence: 1.0}}
	got := s.ScoreReceipt(model.StoreGeneric, perfect, StructuralSignals{HasOrderID: true, HasTotals: true})
	assert.InDelta(t, 0.9, got, 0.0001)

	// Stores without an override keep their default ceiling.
	got = s.ScoreReceipt(model.StoreTarget, perfect, StructuralSignals{HasOrderID: true, HasTotals: true})
	assert.InDelta(t, 0.85, got, 0.0001)
}

func TestScoreReceipt_BoundedZeroToOne(t *testing.T) {
	s := NewScorer(nil)

	for _, store := range model.AllStores() {
		items := []model.ParsedReceiptItem{{ItemConfidence: 1.0}}
		got := s.ScoreReceipt(store, items, StructuralSignals{HasOrderID: true, HasTotals: true})
		assert.GreaterOrEqual(t, got, 0.0)
		assert.LessOrEqual(t, got, 1.0)
		assert.LessOrEqual(t, got, s.Ceiling(store))
	}
}
