package grammar

import "github.com/jburchel/kitchentory/internal/model"

// genericGrammar is the best-effort fallback for unrecognized retailers.
// It leans on currency anchors and "qty x name" shapes rather than any
// template knowledge, which is why receipts parsed with it are capped at
// the Generic confidence ceiling.
func genericGrammar() *ReceiptGrammar {
	return &ReceiptGrammar{
		Store: model.StoreGeneric,
		ItemLinePatterns: []LinePattern{
			pattern("qty-x-name-price",
				`^(?P<qty>\d+(?:\.\d+)?)\s*[x×@]\s*(?P<name>.+?)\s+\$?(?P<price>\d{1,4}\.\d{2})$`),
			pattern("name-qty-unit-price",
				`^(?P<name>.+?)\s+(?P<qty>\d+(?:\.\d+)?)\s*(?P<unit>lb|lbs|oz|fl oz|gal|ct|count|each|pack|pk)\s+\$?(?P<price>\d{1,4}\.\d{2})$`),
			pattern("name-currency-price",
				`^(?P<name>.+?)\s+\$(?P<price>\d{1,4}\.\d{2})$`),
			pattern("name-bare-price",
				`^(?P<name>[a-z].{2,}?)\s{2,}(?P<price>\d{1,4}\.\d{2})$`),
		},
		DanglingNamePattern: genericDanglingName(),
		PriceOnlyPattern:    genericPriceOnly(),
		TotalsPattern:       rx(`(?:^|\s)(?:grand\s*)?total:?\s+\$?\d{1,5}\.\d{2}`),
		OrderIDPattern:      rx(`order\s*(?:number|id|#)?:?\s*#?\s*([a-z0-9][a-z0-9-]{5,})`),
		Boilerplate:         commonBoilerplate(),
		UnitHints:           nil,
		StripPrefixes:       nil,
	}
}
