package grammar

import "github.com/jburchel/kitchentory/internal/model"

// krogerGrammar handles Kroger (and banner) pickup emails.
//
//	KRO 2% REDUCED FAT MILK $2.99
//	2 @ $1.49 SIMPLE TRUTH ORGANIC BANANAS $2.98
func krogerGrammar() *ReceiptGrammar {
	return &ReceiptGrammar{
		Store: model.StoreKroger,
		ItemLinePatterns: []LinePattern{
			pattern("qty-at-unitprice-name-price",
				`^(?P<qty>\d+(?:\.\d+)?)\s*@\s*\$\d{1,4}\.\d{2,3}\s+(?P<name>.+?)\s+\$(?P<price>\d{1,4}\.\d{2})$`),
			pattern("name-weight-price",
				`^(?P<name>.+?)\s+(?P<qty>\d+(?:\.\d+)?)\s*(?P<unit>lb|lbs|oz)\s+\$(?P<price>\d{1,4}\.\d{2})$`),
			pattern("name-price",
				`^(?P<name>[a-z].+?)\s+\$(?P<price>\d{1,4}\.\d{2})$`),
		},
		DanglingNamePattern: genericDanglingName(),
		PriceOnlyPattern:    genericPriceOnly(),
		TotalsPattern:       rx(`^\s*(order\s*)?total:?\s+\$\d{1,5}\.\d{2}`),
		OrderIDPattern:      rx(`order\s*(?:number|#)?:?\s*([a-z0-9]{8,})`),
		Boilerplate: append(commonBoilerplate(),
			rx(`^\s*(fuel\s*points?|plus\s*card|boost|clicklist)\b`),
		),
		UnitHints:     nil,
		StripPrefixes: []string{"KRO ", "Kroger ", "Simple Truth ", "Simple Truth Organic ", "Private Selection "},
	}
}
