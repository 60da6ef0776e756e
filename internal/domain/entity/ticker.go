package entity

import "github.com/shopspring/decimal"

// TickerTable maps an instrument symbol to its quotes per display currency.
// It is refreshed once per poll cycle and used only within that cycle.
type TickerTable map[string]map[string]Amount

// Price returns the quote for symbol in currency, or zero when either the
// symbol or the currency is missing from the table.
func (t TickerTable) Price(symbol, currency string) decimal.Decimal {
	quotes, ok := t[symbol]
	if !ok {
		return decimal.Zero
	}
	price, ok := quotes[currency]
	if !ok {
		return decimal.Zero
	}
	return price.Decimal
}
