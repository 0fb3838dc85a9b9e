package grammar

import "github.com/jburchel/kitchentory/internal/model"

// amazonFreshGrammar handles Amazon Fresh delivery confirmation emails.
//
//	Organic Gala Apples, 3 lb Qty: 1 $4.99
//	Qty: 2 365 Everyday Value Penne $2.58
//	Happy Belly Whole Milk, 1 Gallon
//	$3.64
func amazonFreshGrammar() *ReceiptGrammar {
	return &ReceiptGrammar{
		Store: model.StoreAmazonFresh,
		ItemLinePatterns: []LinePattern{
			pattern("name-unit-qty-price",
				`^(?P<name>.+?),\s*(?P<qty2>\d+(?:\.\d+)?)\s*(?P<unit>lb|lbs|oz|fl oz|gal|gallon|ct|count|pack)\s+qty:\s*(?P<qty>\d+)\s+\$(?P<price>\d{1,4}\.\d{2})$`),
			pattern("qty-prefix-name-price",
				`^qty:\s*(?P<qty>\d+)\s+(?P<name>.+?)\s+\$(?P<price>\d{1,4}\.\d{2})$`),
			pattern("name-qty-price",
				`^(?P<name>.+?)\s+qty:\s*(?P<qty>\d+)\s+\$(?P<price>\d{1,4}\.\d{2})$`),
			pattern("name-price",
				`^(?P<name>[a-z].{2,}?)\s{2,}\$(?P<price>\d{1,4}\.\d{2})$`),
		},
		DanglingNamePattern: genericDanglingName(),
		PriceOnlyPattern:    genericPriceOnly(),
		TotalsPattern:       rx(`^\s*(order|grand)?\s*total:?\s+\$\d{1,5}\.\d{2}`),
		OrderIDPattern:      rx(`order\s*#?\s*(\d{3}-\d{7}-\d{7})`),
		Boilerplate: append(commonBoilerplate(),
			rx(`^\s*(sold\s+by|ships\s+from|arriving|window|attended|doorstep|substitut)`),
			rx(`^\s*(amazon\.com|prime|manage\s+your\s+order)\b`),
		),
		UnitHints: map[string]string{
			"gallon": "gal",
		},
		StripPrefixes: []string{"365 Everyday Value", "Happy Belly", "Amazon Brand"},
	}
}
