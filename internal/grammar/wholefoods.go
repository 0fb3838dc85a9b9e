package grammar

import "github.com/jburchel/kitchentory/internal/model"

// wholeFoodsGrammar handles Whole Foods Market in-store e-receipts. Basic
// tier: lines end with a tax flag letter.
//
//	365 WFM OG BANANAS 0.99 F
//	ORGANIC AVOCADO EACH 2.50 T
func wholeFoodsGrammar() *ReceiptGrammar {
	return &ReceiptGrammar{
		Store: model.StoreWholeFoods,
		ItemLinePatterns: []LinePattern{
			pattern("name-unit-price-flag",
				`^(?P<name>.+?)\s+(?P<unit>each|ea|lb|oz)\s+\$?(?P<price>\d{1,4}\.\d{2})\s*[ftn]?$`),
			pattern("name-price-flag",
				`^(?P<name>[a-z0-9].+?)\s+\$?(?P<price>\d{1,4}\.\d{2})\s*[ftn]?$`),
		},
		DanglingNamePattern: genericDanglingName(),
		PriceOnlyPattern:    genericPriceOnly(),
		TotalsPattern:       rx(`^\s*total:?\s+\$?\d{1,5}\.\d{2}`),
		OrderIDPattern:      rx(`(?:transaction|order)\s*#?\s*(\d{6,})`),
		Boilerplate: append(commonBoilerplate(),
			rx(`^\s*(prime\s*(member|savings)|amazon\s*prime)\b`),
		),
		UnitHints: map[string]string{
			"ea": "each",
		},
		StripPrefixes: []string{"365 WFM ", "365 ", "WFM "},
	}
}
