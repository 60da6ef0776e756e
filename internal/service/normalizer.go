package service

import (
	"strings"

	"github.com/shopspring/decimal"

	domain "bitpanda_watcher/internal/domain/entity"
	"bitpanda_watcher/internal/entity"
)

// LeverageClass partitions asset symbols between ordinary and leveraged
// instruments.
type LeverageClass int

const (
	Ordinary LeverageClass = iota
	LeveragedLong
	LeveragedShort
)

const (
	leverageLongSuffix  = "2L"
	leverageShortSuffix = "1S"
)

// ClassifySymbol reports whether a symbol names an ordinary instrument or a
// leveraged token. Bitpanda marks leveraged tokens with a symbol suffix:
// BTC2L is a 2x long on BTC, BTC1S a 1x short.
func ClassifySymbol(symbol string) LeverageClass {
	switch {
	case strings.HasSuffix(symbol, leverageLongSuffix):
		return LeveragedLong
	case strings.HasSuffix(symbol, leverageShortSuffix):
		return LeveragedShort
	default:
		return Ordinary
	}
}

// NormalizeFiat reduces a /fiatwallets response to the single wallet matching
// the display currency. Fiat balances are already denominated in their own
// currency, so the balance is taken verbatim without price conversion; every
// other fiat wallet in the response is ignored.
func NormalizeFiat(resp *entity.FiatWalletsResponse, targetCurrency string) domain.CategorySnapshot {
	snapshot := domain.ZeroCategorySnapshot()
	if resp == nil {
		return snapshot
	}

	for _, wallet := range resp.Data {
		attrs := wallet.Attributes
		if attrs.FiatSymbol != targetCurrency {
			continue
		}

		balance := attrs.Balance.Decimal
		snapshot.TotalValue = balance
		if balance.GreaterThan(decimal.Zero) {
			name := attrs.Name
			if name == "" {
				name = attrs.FiatSymbol
			}
			snapshot.Holdings = append(snapshot.Holdings, domain.Holding{
				Name:           name,
				Symbol:         attrs.FiatSymbol,
				TokenBalance:   balance,
				ConvertedValue: balance.Round(2),
			})
		}
		// There is only one wallet per fiat currency.
		return snapshot
	}
	return snapshot
}

// NormalizeAssetCategory extracts one category from the combined
// /asset-wallets response and converts its balances through the ticker
// table. Wallets without a positive balance are dropped; a symbol missing
// from the ticker (or missing the target currency) keeps its holding with a
// zero converted value. A category absent from the response yields a zero
// snapshot, never an error.
func NormalizeAssetCategory(
	resp *entity.AssetWalletsResponse,
	category domain.Category,
	paths []string,
	ticker domain.TickerTable,
	targetCurrency string,
) domain.CategorySnapshot {
	snapshot := domain.ZeroCategorySnapshot()
	if resp == nil || len(paths) == 0 {
		return snapshot
	}

	group, ok := resp.LookupWalletGroup(paths)
	if !ok {
		return snapshot
	}

	total := decimal.Zero
	for _, wallet := range group.Attributes.Wallets {
		attrs := wallet.Attributes
		balance := attrs.Balance.Decimal
		if balance.LessThanOrEqual(decimal.Zero) {
			continue
		}
		if !includeInCategory(category, attrs.Symbol) {
			continue
		}

		price := ticker.Price(attrs.Symbol, targetCurrency)
		converted := balance.Mul(price)
		total = total.Add(converted)

		snapshot.Holdings = append(snapshot.Holdings, domain.Holding{
			Name:           attrs.Name,
			Symbol:         attrs.Symbol,
			TokenBalance:   balance,
			ConvertedValue: converted.Round(2),
		})
	}

	snapshot.TotalValue = total
	return snapshot
}

// includeInCategory applies the leveraged/ordinary partition to the shared
// cryptocoin wallet list; every other category takes its whole group.
func includeInCategory(category domain.Category, symbol string) bool {
	switch category {
	case domain.CategoryLeverage:
		return ClassifySymbol(symbol) != Ordinary
	case domain.CategoryCryptocoin:
		return ClassifySymbol(symbol) == Ordinary
	default:
		return true
	}
}
