package normalize

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jburchel/kitchentory/internal/grammar"
	"github.com/jburchel/kitchentory/internal/model"
)

func testNormalizer() *Normalizer {
	return New(DefaultVocabulary())
}

func genericGrammarForTest() *grammar.ReceiptGrammar {
	return grammar.NewRegistry().Generic()
}

func TestNormalizer_Normalize(t *testing.T) {
	n := testNormalizer()
	g := genericGrammarForTest()

	tests := []struct {
		name          string
		candidate     model.RawCandidateItem
		wantName      string
		wantQuantity  float64
		wantUnit      string
		wantCategory  string
		wantDefaulted bool
		wantPrice     *float64
	}{
		{
			name: "clean candidate",
			candidate: model.RawCandidateItem{
				RawText:     "ORGANIC  BANANAS",
				RawQuantity: "2",
				RawPrice:    "1.58",
			},
			wantName:     "Organic Bananas",
			wantQuantity: 2,
			wantUnit:     "item",
			wantCategory: "Produce",
			wantPrice:    floatPtr(1.58),
		},
		{
			name: "zero quantity defaults to one with flag",
			candidate: model.RawCandidateItem{
				RawText:     "Whole Milk",
				RawQuantity: "0",
				RawPrice:    "4.29",
			},
			wantName:      "Whole Milk",
			wantQuantity:  1,
			wantUnit:      "item",
			wantCategory:  "Dairy",
			wantDefaulted: true,
			wantPrice:     floatPtr(4.29),
		},
		{
			name: "missing quantity defaults to one with flag",
			candidate: model.RawCandidateItem{
				RawText:  "Sourdough Bread",
				RawPrice: "5.49",
			},
			wantName:      "Sourdough Bread",
			wantQuantity:  1,
			wantUnit:      "item",
			wantCategory:  "Pantry",
			wantDefaulted: true,
			wantPrice:     floatPtr(5.49),
		},
		{
			name: "unit synonym maps to canonical vocabulary",
			candidate: model.RawCandidateItem{
				RawText:     "Honeycrisp Apples",
				RawQuantity: "2.5",
				RawUnit:     "lbs",
				RawPrice:    "4.98",
			},
			wantName:     "Honeycrisp Apples",
			wantQuantity: 2.5,
			wantUnit:     "lb",
			wantCategory: "Produce",
			wantPrice:    floatPtr(4.98),
		},
		{
			name: "unknown unit defaults to item",
			candidate: model.RawCandidateItem{
				RawText:     "Mystery Snack",
				RawQuantity: "1",
				RawUnit:     "blorb",
				RawPrice:    "2.00",
			},
			wantName:     "Mystery Snack",
			wantQuantity: 1,
			wantUnit:     "item",
			wantCategory: "Pantry",
			wantPrice:    floatPtr(2.00),
		},
		{
			name: "negative price becomes absent",
			candidate: model.RawCandidateItem{
				RawText:     "Greek Yogurt",
				RawQuantity: "1",
				RawPrice:    "-2.00",
			},
			wantName:     "Greek Yogurt",
			wantQuantity: 1,
			wantUnit:     "item",
			wantCategory: "Dairy",
			wantPrice:    nil,
		},
		{
			name: "sku code stripped from name",
			candidate: model.RawCandidateItem{
				RawText:     "Frozen Pizza 00787420397",
				RawQuantity: "1",
				RawPrice:    "6.99",
			},
			wantName:     "Frozen Pizza",
			wantQuantity: 1,
			wantUnit:     "item",
			wantCategory: "Frozen",
			wantPrice:    floatPtr(6.99),
		},
		{
			name: "no category keyword defaults to Other",
			candidate: model.RawCandidateItem{
				RawText:     "Paper Towels",
				RawQuantity: "1",
				RawPrice:    "8.99",
			},
			wantName:     "Paper Towels",
			wantQuantity: 1,
			wantUnit:     "item",
			wantCategory: "Other",
			wantPrice:    floatPtr(8.99),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item, err := n.Normalize(tt.candidate, g)
			require.NoError(t, err)

			assert.Equal(t, tt.wantName, item.Name)
			assert.Equal(t, tt.wantQuantity, item.Quantity)
			assert.Equal(t, tt.wantUnit, item.Unit)
			assert.Equal(t, tt.wantCategory, item.Category)
			assert.Equal(t, tt.wantDefaulted, item.QuantityDefaulted)
			if tt.wantPrice == nil {
				assert.Nil(t, item.Price)
			} else {
				require.NotNil(t, item.Price)
				assert.InDelta(t, *tt.wantPrice, *item.Price, 0.001)
			}
			assert.Greater(t, item.Quantity, 0.0)
		})
	}
}

func TestNormalizer_EmptyNameIsError(t *testing.T) {
	n := testNormalizer()
	g := genericGrammarForTest()

	_, err := n.Normalize(model.RawCandidateItem{
		RawText:    "  123456789  ",
		RawPrice:   "1.00",
		LineOffset: 7,
	}, g)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 7")
}

func TestNormalizer_StoreBrandPrefixStripped(t *testing.T) {
	n := testNormalizer()
	g := grammar.NewRegistry().For(model.StoreWalmart)

	item, err := n.Normalize(model.RawCandidateItem{
		RawText:     "GV WHOLE MILK",
		RawQuantity: "1",
		RawPrice:    "3.27",
	}, g)
	require.NoError(t, err)
	assert.Equal(t, "Whole Milk", item.Name)
}

func TestNormalizer_NameTruncatedToLimit(t *testing.T) {
	n := testNormalizer()
	g := genericGrammarForTest()

	item, err := n.Normalize(model.RawCandidateItem{
		RawText:     "cheese " + strings.Repeat("x", 300),
		RawQuantity: "1",
		RawPrice:    "1.00",
	}, g)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(item.Name), model.MaxItemNameLength)
}

func TestNormalizer_TruncationKeepsRuneBoundaries(t *testing.T) {
	n := testNormalizer()
	g := genericGrammarForTest()

	// The multi-byte runes straddle the byte cap; the cut must land on a
	// rune boundary, never inside one.
	item, err := n.Normalize(model.RawCandidateItem{
		RawText:     strings.Repeat("a", 199) + "ñññ",
		RawQuantity: "1",
		RawPrice:    "1.00",
	}, g)
	require.NoError(t, err)
	assert.True(t, utf8.ValidString(item.Name))
	assert.LessOrEqual(t, len(item.Name), model.MaxItemNameLength)
}

func TestNormalizer_Dedup(t *testing.T) {
	n := testNormalizer()

	items := []model.ParsedReceiptItem{
		{Name: "Oat Milk", Unit: "item", Quantity: 1, Price: floatPtr(3.99), LineOffset: 1},
		{Name: "Bananas", Unit: "lb", Quantity: 2, Price: floatPtr(1.18), LineOffset: 2},
		{Name: "Oat Milk", Unit: "item", Quantity: 1, Price: floatPtr(4.19), LineOffset: 3},
	}

	merged := n.Dedup(items)

	require.Len(t, merged, 2)
	// First-appearance order preserved.
	assert.Equal(t, "Oat Milk", merged[0].Name)
	assert.Equal(t, "Bananas", merged[1].Name)

	assert.Equal(t, 2.0, merged[0].Quantity, "quantities sum")
	require.NotNil(t, merged[0].Price)
	assert.InDelta(t, 4.09, *merged[0].Price, 0.001, "prices average")
	assert.NotEmpty(t, merged[0].Notes, "merge leaves an audit note")
}

func TestNormalizer_DedupDifferentUnitsKeptSeparate(t *testing.T) {
	n := testNormalizer()

	items := []model.ParsedReceiptItem{
		{Name: "Bananas", Unit: "lb", Quantity: 2},
		{Name: "Bananas", Unit: "each", Quantity: 3},
	}

	merged := n.Dedup(items)
	assert.Len(t, merged, 2)
}

func floatPtr(f float64) *float64 { return &f }
