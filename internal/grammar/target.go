package grammar

import "github.com/jburchel/kitchentory/internal/model"

// targetGrammar handles Target order and drive-up emails. Beta tier: the
// two template shapes seen so far.
//
//	Good & Gather Large Eggs 12ct $3.49
//	2 × Market Pantry Penne Pasta $1.89
func targetGrammar() *ReceiptGrammar {
	return &ReceiptGrammar{
		Store: model.StoreTarget,
		ItemLinePatterns: []LinePattern{
			pattern("qty-times-name-price",
				`^(?P<qty>\d+)\s*[x×]\s*(?P<name>.+?)\s+\$(?P<price>\d{1,4}\.\d{2})$`),
			pattern("name-size-price",
				`^(?P<name>.+?\d+\s*(?P<unit>ct|oz|lb|fl oz|gal))\s+\$(?P<price>\d{1,4}\.\d{2})$`),
			pattern("name-price",
				`^(?P<name>[a-z].+?)\s+\$(?P<price>\d{1,4}\.\d{2})$`),
		},
		DanglingNamePattern: genericDanglingName(),
		PriceOnlyPattern:    genericPriceOnly(),
		TotalsPattern:       rx(`^\s*total:?\s+\$\d{1,5}\.\d{2}`),
		OrderIDPattern:      rx(`order\s*#?\s*(\d{10,14})`),
		Boilerplate: append(commonBoilerplate(),
			rx(`^\s*(drive\s*up|redcard|circle\s*(earnings|offers)?)\b`),
		),
		UnitHints:     nil,
		StripPrefixes: []string{"Good & Gather ", "Market Pantry ", "Favorite Day "},
	}
}
