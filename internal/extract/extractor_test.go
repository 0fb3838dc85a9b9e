package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jburchel/kitchentory/internal/grammar"
	"github.com/jburchel/kitchentory/internal/model"
)

func TestExtract_DocumentOrder(t *testing.T) {
	g := grammar.NewRegistry().For(model.StoreInstacart)
	body := `Your Instacart order

2 x Organic Bananas $1.58
1 x Whole Milk $4.29
3 x Greek Yogurt $5.97

Order total: $11.84`

	res := Extract(body, g)

	require.Len(t, res.Candidates, 3)
	assert.Equal(t, "Organic Bananas", res.Candidates[0].RawText)
	assert.Equal(t, "Whole Milk", res.Candidates[1].RawText)
	assert.Equal(t, "Greek Yogurt", res.Candidates[2].RawText)
	assert.True(t, res.Candidates[0].LineOffset < res.Candidates[1].LineOffset)
	assert.True(t, res.MatchedTotals)
}

func TestExtract_DuplicateLinesNotMerged(t *testing.T) {
	g := grammar.NewRegistry().For(model.StoreInstacart)
	body := "1 x Oat Milk $3.99\n1 x Oat Milk $3.99"

	res := Extract(body, g)

	// Merging identical items happens in normalization, not here.
	require.Len(t, res.Candidates, 2)
}

func TestExtract_OrderID(t *testing.T) {
	g := grammar.NewRegistry().For(model.StoreInstacart)
	body := "Order # ABC-123456\n2 x Organic Bananas $1.58"

	res := Extract(body, g)

	assert.Equal(t, "ABC-123456", res.OrderID)
}

func TestExtract_OrderIDLineNotCountedAsSkipped(t *testing.T) {
	g := grammar.NewRegistry().For(model.StoreInstacart)
	body := `Order # ABC-123456
Garbage @@@@
2 x Organic Bananas $1.58`

	res := Extract(body, g)

	require.Len(t, res.Candidates, 1)
	assert.Equal(t, "ABC-123456", res.OrderID)
	// The order-id line is structural; only the garbled line skips.
	assert.Equal(t, 1, res.SkippedLines)
}

func TestExtract_TwoLineMerge(t *testing.T) {
	g := grammar.NewRegistry().For(model.StoreAmazonFresh)
	body := `Happy Belly Whole Milk, Gallon
$3.64
Organic Fuji Apples
2 x $4.99`

	res := Extract(body, g)

	require.Len(t, res.Candidates, 2)

	first := res.Candidates[0]
	assert.True(t, first.Merged)
	assert.Equal(t, "Happy Belly Whole Milk, Gallon", first.RawText)
	assert.Equal(t, "3.64", first.RawPrice)
	assert.Equal(t, 0, first.LineOffset, "merged candidate anchors at the name line")

	second := res.Candidates[1]
	assert.True(t, second.Merged)
	assert.Equal(t, "2", second.RawQuantity)
	assert.Equal(t, "4.99", second.RawPrice)
}

func TestExtract_DanglingNameWithoutPriceIsSkipped(t *testing.T) {
	g := grammar.NewRegistry().Generic()
	body := `Organic Bananas
Some unparseable ### line %%%
Sourdough Loaf $5.49`

	res := Extract(body, g)

	require.Len(t, res.Candidates, 1)
	assert.Equal(t, "Sourdough Loaf", res.Candidates[0].RawText)
	// The dangling name and the garbled line both count as skipped.
	assert.Equal(t, 2, res.SkippedLines)
}

func TestExtract_BoilerplateNotCountedAsSkipped(t *testing.T) {
	g := grammar.NewRegistry().Generic()
	body := `Thank you for shopping!
Subtotal $9.00
Tax $0.81
1 x Eggs $4.29`

	res := Extract(body, g)

	require.Len(t, res.Candidates, 1)
	assert.Equal(t, 0, res.SkippedLines)
}

func TestExtract_EmptyBody(t *testing.T) {
	g := grammar.NewRegistry().Generic()

	res := Extract("", g)

	assert.Empty(t, res.Candidates)
	assert.Zero(t, res.SkippedLines)
	assert.False(t, res.MatchedTotals)
}
