package grammar

import "github.com/jburchel/kitchentory/internal/model"

// safewayGrammar handles Safeway / Albertsons order confirmation emails.
//
//	Lucerne Whole Milk Gallon  1  $4.49
//	Signature Select Penne  2  $3.58
func safewayGrammar() *ReceiptGrammar {
	return &ReceiptGrammar{
		Store: model.StoreSafeway,
		ItemLinePatterns: []LinePattern{
			pattern("name-qty-price-columns",
				`^(?P<name>.+?)\s{2,}(?P<qty>\d+(?:\.\d+)?)\s{2,}\$?(?P<price>\d{1,4}\.\d{2})$`),
			pattern("qty-x-name-price",
				`^(?P<qty>\d+)\s*x\s+(?P<name>.+?)\s+\$(?P<price>\d{1,4}\.\d{2})$`),
			pattern("name-price",
				`^(?P<name>[a-z].+?)\s+\$(?P<price>\d{1,4}\.\d{2})$`),
		},
		DanglingNamePattern: genericDanglingName(),
		PriceOnlyPattern:    genericPriceOnly(),
		TotalsPattern:       rx(`^\s*(estimated\s*)?total:?\s+\$\d{1,5}\.\d{2}`),
		OrderIDPattern:      rx(`order\s*#?\s*(\d{8,})`),
		Boilerplate: append(commonBoilerplate(),
			rx(`^\s*(for\s*u|just\s*for\s*u|club\s*card|rewards?)\b`),
		),
		UnitHints:     nil,
		StripPrefixes: []string{"Lucerne ", "Signature Select ", "O Organics "},
	}
}
