package grammar

import "github.com/jburchel/kitchentory/internal/model"

// instacartGrammar handles Instacart order-delivered emails. Item lines
// come in a few shapes depending on the email template vintage:
//
//	2 x Organic Bananas $1.58
//	Organic Bananas (2) $1.58
//	Organic Bananas, 2 lb $1.58
//	1 Horizon Whole Milk, Half Gallon $4.29
func instacartGrammar() *ReceiptGrammar {
	return &ReceiptGrammar{
		Store: model.StoreInstacart,
		ItemLinePatterns: []LinePattern{
			pattern("qty-x-name-unit-price",
				`^(?P<qty>\d+(?:\.\d+)?)\s*x\s+(?P<name>.+?),\s*(?P<qty2>\d+(?:\.\d+)?)?\s*(?P<unit>lb|lbs|oz|fl oz|gal|gallon|half gallon|ct|count|each|pk|pack)\s+\$(?P<price>\d{1,4}\.\d{2})$`),
			pattern("qty-x-name-price",
				`^(?P<qty>\d+(?:\.\d+)?)\s*x\s+(?P<name>.+?)\s+\$(?P<price>\d{1,4}\.\d{2})$`),
			pattern("name-paren-qty-price",
				`^(?P<name>.+?)\s*\((?P<qty>\d+(?:\.\d+)?)\)\s+\$(?P<price>\d{1,4}\.\d{2})$`),
			pattern("name-comma-qty-unit-price",
				`^(?P<name>.+?),\s*(?P<qty>\d+(?:\.\d+)?)\s*(?P<unit>lb|lbs|oz|fl oz|gal|gallon|ct|count|each|pk|pack)\s+\$(?P<price>\d{1,4}\.\d{2})$`),
			pattern("leading-qty-name-price",
				`^(?P<qty>\d+)\s+(?P<name>[a-z].+?)\s+\$(?P<price>\d{1,4}\.\d{2})$`),
		},
		DanglingNamePattern: genericDanglingName(),
		PriceOnlyPattern:    genericPriceOnly(),
		TotalsPattern:       rx(`^\s*(order\s*)?total:?\s+\$\d{1,5}\.\d{2}`),
		OrderIDPattern:      rx(`order\s*#\s*([a-z0-9-]{6,})`),
		Boilerplate: append(commonBoilerplate(),
			rx(`^\s*(replaced|refunded|out of stock|shopper|tipped|picked for you)\b`),
			rx(`^\s*(view|track|rate)\s+(your\s+)?order\b`),
		),
		UnitHints: map[string]string{
			"half gallon": "gal",
			"pk":          "pack",
		},
		StripPrefixes: nil,
	}
}
