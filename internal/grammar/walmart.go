package grammar

import "github.com/jburchel/kitchentory/internal/model"

// walmartGrammar handles Walmart grocery order emails. Walmart lines are
// terse and upper-cased, often carrying a shelf code between the name and
// the price:
//
//	GV WHOLE MILK 1 GAL 007874203972 $3.27
//	GREAT VALUE LARGE EGGS 12CT $2.92
//	Qty 2  BANANAS EACH $0.58
func walmartGrammar() *ReceiptGrammar {
	return &ReceiptGrammar{
		Store: model.StoreWalmart,
		ItemLinePatterns: []LinePattern{
			pattern("name-upc-price",
				`^(?P<name>.+?)\s+\d{11,14}\s+\$?(?P<price>\d{1,4}\.\d{2})$`),
			pattern("qty-name-unit-price",
				`^qty\s*(?P<qty>\d+)\s+(?P<name>.+?)\s+(?P<unit>each|ea|lb|oz|ct|gal)\s+\$?(?P<price>\d{1,4}\.\d{2})$`),
			pattern("name-ct-price",
				`^(?P<name>.+?\d+\s*(?P<unit>ct|oz|lb|gal))\s+\$?(?P<price>\d{1,4}\.\d{2})$`),
			pattern("name-price",
				`^(?P<name>[a-z0-9].+?)\s+\$?(?P<price>\d{1,4}\.\d{2})$`),
		},
		DanglingNamePattern: genericDanglingName(),
		PriceOnlyPattern:    genericPriceOnly(),
		TotalsPattern:       rx(`^\s*(order\s*)?total\s+\$?\d{1,5}\.\d{2}`),
		OrderIDPattern:      rx(`order\s*#?\s*(\d{7,15})`),
		Boilerplate: append(commonBoilerplate(),
			rx(`^\s*(pickup|curbside|store\s*#|st#|op#|te#|tr#)\b`),
			rx(`^\s*(walmart\.com|save\s+money)\b`),
		),
		UnitHints: map[string]string{
			"ea": "each",
		},
		StripPrefixes: []string{"GV ", "Great Value ", "Marketside "},
	}
}
