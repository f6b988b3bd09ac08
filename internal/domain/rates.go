package domain

// BaseCurrency is the currency all product prices and order totals are
// persisted in.
const BaseCurrency = "UAH"

// SupportedCurrencies lists every currency a visitor may view prices in,
// base currency first.
var SupportedCurrencies = []string{BaseCurrency, "USD", "EUR"}

// CurrencySymbols is used by the presentation layer to format prices.
var CurrencySymbols = map[string]string{
	"UAH": "₴",
	"USD": "$",
	"EUR": "€",
}

// RateTable maps a currency code to the multiplier that converts a
// base-currency amount into that currency:
//
//	display = base * table[ccy]
//
// The base currency always maps to 1 and every rate is strictly positive.
type RateTable map[string]float64

// FallbackRates is the hard-coded table served before the first successful
// refresh of the live feed.
func FallbackRates() RateTable {
	return RateTable{
		"UAH": 1,
		"USD": 1.0 / 41.0,
		"EUR": 1.0 / 47.0,
	}
}

// IsSupportedCurrency reports whether ccy is one of SupportedCurrencies.
func IsSupportedCurrency(ccy string) bool {
	for _, c := range SupportedCurrencies {
		if c == ccy {
			return true
		}
	}
	return false
}
