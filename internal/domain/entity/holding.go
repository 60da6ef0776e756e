package entity

import "github.com/shopspring/decimal"

// Holding is one instrument's balance within a category. Holdings with a zero
// or negative token balance are never emitted.
type Holding struct {
	Name           string          `json:"name"`
	Symbol         string          `json:"symbol"`
	TokenBalance   decimal.Decimal `json:"token_balance"`
	ConvertedValue decimal.Decimal `json:"converted_value"`
}

// CategorySnapshot is the normalized result for one wallet category at one
// poll. TotalValue keeps full precision; rounding to two decimal places is a
// presentation concern.
type CategorySnapshot struct {
	TotalValue decimal.Decimal `json:"total_value"`
	Holdings   []Holding       `json:"holdings"`
}

// ZeroCategorySnapshot is the result for a category with no matching wallets.
func ZeroCategorySnapshot() CategorySnapshot {
	return CategorySnapshot{
		TotalValue: decimal.Zero,
		Holdings:   []Holding{},
	}
}
