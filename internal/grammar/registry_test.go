package grammar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jburchel/kitchentory/internal/model"
)

func TestRegistry_EveryStoreRegistered(t *testing.T) {
	r := NewRegistry()

	for _, store := range model.AllStores() {
		g := r.For(store)
		require.NotNil(t, g, "no grammar for %s", store)
		assert.Equal(t, store, g.Store)
		assert.NotEmpty(t, g.ItemLinePatterns, "%s has no item patterns", store)
		assert.NotNil(t, g.TotalsPattern, "%s has no totals pattern", store)
		assert.NotNil(t, g.OrderIDPattern, "%s has no order id pattern", store)
	}
}

func TestRegistry_UnknownStoreFallsBackToGeneric(t *testing.T) {
	r := NewRegistry()

	g := r.For(model.StoreIdentity("corner-bodega"))
	require.NotNil(t, g)
	assert.Equal(t, model.StoreGeneric, g.Store)
}

func TestLinePattern_Match(t *testing.T) {
	tests := []struct {
		name      string
		store     model.StoreIdentity
		line      string
		wantName  string
		wantQty   string
		wantPrice string
	}{
		{
			name:      "instacart qty x name price",
			store:     model.StoreInstacart,
			line:      "2 x Organic Bananas $1.58",
			wantName:  "Organic Bananas",
			wantQty:   "2",
			wantPrice: "1.58",
		},
		{
			name:      "instacart name with parenthesized qty",
			store:     model.StoreInstacart,
			line:      "Horizon Whole Milk (3) $12.87",
			wantName:  "Horizon Whole Milk",
			wantQty:   "3",
			wantPrice: "12.87",
		},
		{
			name:      "walmart name with upc and price",
			store:     model.StoreWalmart,
			line:      "GV WHOLE MILK 1 GAL 007874203972 $3.27",
			wantName:  "GV WHOLE MILK 1 GAL",
			wantQty:   "",
			wantPrice: "3.27",
		},
		{
			name:      "amazon fresh qty prefix",
			store:     model.StoreAmazonFresh,
			line:      "Qty: 2 Happy Belly Penne $2.58",
			wantName:  "Happy Belly Penne",
			wantQty:   "2",
			wantPrice: "2.58",
		},
		{
			name:      "kroger weighted item",
			store:     model.StoreKroger,
			line:      "Honeycrisp Apples 2.5 lb $4.98",
			wantName:  "Honeycrisp Apples",
			wantQty:   "2.5",
			wantPrice: "4.98",
		},
		{
			name:      "costco item code line",
			store:     model.StoreCostco,
			line:      "1234567 KS ORG EGGS 24CT 7.99",
			wantName:  "KS ORG EGGS 24CT",
			wantQty:   "",
			wantPrice: "7.99",
		},
		{
			name:      "whole foods tax flag line",
			store:     model.StoreWholeFoods,
			line:      "365 WFM OG BANANAS 0.99 F",
			wantName:  "365 WFM OG BANANAS",
			wantQty:   "",
			wantPrice: "0.99",
		},
		{
			name:      "generic currency anchored",
			store:     model.StoreGeneric,
			line:      "Sourdough Loaf $5.49",
			wantName:  "Sourdough Loaf",
			wantQty:   "",
			wantPrice: "5.49",
		},
	}

	r := NewRegistry()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := r.For(tt.store)

			var matched bool
			for _, p := range g.ItemLinePatterns {
				if candidate, ok := p.Match(tt.line, 0); ok {
					matched = true
					assert.Equal(t, tt.wantName, candidate.RawText)
					assert.Equal(t, tt.wantQty, candidate.RawQuantity)
					assert.Equal(t, tt.wantPrice, candidate.RawPrice)
					break
				}
			}
			require.True(t, matched, "no pattern matched %q", tt.line)
		})
	}
}

func TestGrammar_TotalsAndOrderID(t *testing.T) {
	r := NewRegistry()

	g := r.For(model.StoreInstacart)
	assert.True(t, g.TotalsPattern.MatchString("Order total: $45.67"))
	m := g.OrderIDPattern.FindStringSubmatch("Order # A1B2C3D4")
	if assert.Len(t, m, 2) {
		assert.Equal(t, "A1B2C3D4", m[1])
	}

	g = r.Generic()
	assert.True(t, g.TotalsPattern.MatchString("GRAND TOTAL $102.50"))
	assert.False(t, g.TotalsPattern.MatchString("Organic Bananas $1.58"))
}

func TestGrammar_BoilerplateFiltersStructuralLines(t *testing.T) {
	g := NewRegistry().Generic()

	structural := []string{
		"Subtotal $40.12",
		"Tax $3.55",
		"Thank you for shopping!",
		"VISA ending 1234",
		"-----",
	}
	for _, line := range structural {
		matched := false
		for _, p := range g.Boilerplate {
			if p.MatchString(line) {
				matched = true
				break
			}
		}
		assert.True(t, matched, "boilerplate should match %q", line)
	}
}
