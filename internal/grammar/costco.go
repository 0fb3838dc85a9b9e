package grammar

import "github.com/jburchel/kitchentory/internal/model"

// costcoGrammar handles Costco same-day delivery emails. Basic tier: item
// lines carry a numeric item code before the name.
//
//	1234567 KS ORG EGGS 24CT 7.99
func costcoGrammar() *ReceiptGrammar {
	return &ReceiptGrammar{
		Store: model.StoreCostco,
		ItemLinePatterns: []LinePattern{
			pattern("code-name-price",
				`^\d{5,8}\s+(?P<name>.+?)\s+\$?(?P<price>\d{1,4}\.\d{2})$`),
			pattern("name-price",
				`^(?P<name>[a-z].+?)\s+\$?(?P<price>\d{1,4}\.\d{2})$`),
		},
		DanglingNamePattern: genericDanglingName(),
		PriceOnlyPattern:    genericPriceOnly(),
		TotalsPattern:       rx(`^\s*(order\s*)?total:?\s+\$?\d{1,5}\.\d{2}`),
		OrderIDPattern:      rx(`order\s*(?:number|#)?:?\s*(\d{9,})`),
		Boilerplate: append(commonBoilerplate(),
			rx(`^\s*(membership|warehouse|gold\s*star|executive)\b`),
		),
		UnitHints:     nil,
		StripPrefixes: []string{"KS ", "Kirkland Signature ", "Kirkland "},
	}
}
