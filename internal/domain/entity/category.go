package entity

import "strings"

// Category identifies a user-selectable class of Bitpanda holdings.
type Category string

const (
	CategoryFiat       Category = "FIAT"
	CategoryCryptocoin Category = "CRYPTOCOIN"
	CategoryLeverage   Category = "LEVERAGE"
	CategoryIndex      Category = "INDEX"
	CategoryStock      Category = "STOCK"
	CategoryETF        Category = "ETF"
	CategoryETC        Category = "ETC"
	CategoryMetal      Category = "METAL"
)

// AllCategories returns every supported category in display order.
func AllCategories() []Category {
	return []Category{
		CategoryFiat,
		CategoryCryptocoin,
		CategoryLeverage,
		CategoryIndex,
		CategoryStock,
		CategoryETF,
		CategoryETC,
		CategoryMetal,
	}
}

// ParseCategory maps a string (case-insensitive) to a known Category.
func ParseCategory(s string) (Category, bool) {
	c := Category(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range AllCategories() {
		if c == known {
			return known, true
		}
	}
	return "", false
}

// IsAsset reports whether the category is served by the combined
// /asset-wallets endpoint rather than the separate /fiatwallets endpoint.
func (c Category) IsAsset() bool {
	return c != CategoryFiat
}

// DefaultCurrency is used when the configuration does not specify one.
const DefaultCurrency = "EUR"

// SupportedCurrencies lists the display currencies Bitpanda quotes fiat
// wallets and ticker prices in.
var SupportedCurrencies = []string{"EUR", "USD", "CHF", "GBP", "TRY", "PLN", "HUF", "CZK", "SEK", "DKK"}

// IsSupportedCurrency reports whether code is a valid display currency.
func IsSupportedCurrency(code string) bool {
	for _, c := range SupportedCurrencies {
		if strings.EqualFold(c, code) {
			return true
		}
	}
	return false
}
