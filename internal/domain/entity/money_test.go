package entity

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestAmountUnmarshalJSON(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want decimal.Decimal
	}{
		{"string number", `"123.45"`, decimal.RequireFromString("123.45")},
		{"bare number", `50000`, decimal.NewFromInt(50000)},
		{"high precision", `"0.000000000000000001"`, decimal.RequireFromString("0.000000000000000001")},
		{"null", `null`, decimal.Zero},
		{"empty string", `""`, decimal.Zero},
		{"garbage", `"not-a-number"`, decimal.Zero},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var a Amount
			require.NoError(t, a.UnmarshalJSON([]byte(tc.raw)))
			require.True(t, tc.want.Equal(a.Decimal), "got %s, want %s", a.Decimal, tc.want)
		})
	}
}
