package entity

import (
	"bytes"

	"github.com/shopspring/decimal"
)

// Amount is a decimal that survives the loose typing of the Bitpanda API:
// balances and prices arrive as JSON strings or numbers, and occasionally as
// null. Anything unparsable decodes as zero instead of failing the response.
type Amount struct {
	decimal.Decimal
}

// NewAmount wraps a decimal into an Amount.
func NewAmount(d decimal.Decimal) Amount {
	return Amount{Decimal: d}
}

// UnmarshalJSON never returns an error; malformed values degrade to zero.
func (a *Amount) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		a.Decimal = decimal.Zero
		return nil
	}

	var d decimal.Decimal
	if err := d.UnmarshalJSON(trimmed); err != nil {
		a.Decimal = decimal.Zero
		return nil
	}
	a.Decimal = d
	return nil
}
