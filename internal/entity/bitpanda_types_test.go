package entity

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const assetWalletsFixture = `{
  "data": {
    "type": "data",
    "attributes": {
      "cryptocoin": {
        "attributes": {
          "wallets": [
            {"type": "wallet", "id": "w1", "attributes": {"cryptocoin_symbol": "BTC", "name": "Bitcoin", "balance": "0.5"}},
            {"type": "wallet", "id": "w2", "attributes": {"cryptocoin_symbol": "ETH2L", "name": "Ethereum 2x Long", "balance": "10"}}
          ]
        }
      },
      "commodity": {
        "metal": {
          "attributes": {
            "wallets": [
              {"type": "wallet", "id": "w3", "attributes": {"cryptocoin_symbol": "XAU", "name": "Gold", "balance": "2"}}
            ]
          }
        }
      },
      "security": {
        "stock": {
          "attributes": {
            "wallets": []
          }
        }
      }
    }
  }
}`

func TestLookupWalletGroupFlatPath(t *testing.T) {
	var resp AssetWalletsResponse
	require.NoError(t, json.Unmarshal([]byte(assetWalletsFixture), &resp))

	group, ok := resp.LookupWalletGroup([]string{"cryptocoin"})
	require.True(t, ok)
	require.Len(t, group.Attributes.Wallets, 2)
	require.Equal(t, "BTC", group.Attributes.Wallets[0].Attributes.Symbol)
	require.Equal(t, "Bitcoin", group.Attributes.Wallets[0].Attributes.Name)
}

func TestLookupWalletGroupNestedPath(t *testing.T) {
	var resp AssetWalletsResponse
	require.NoError(t, json.Unmarshal([]byte(assetWalletsFixture), &resp))

	// The flat candidate misses, the nested one resolves.
	group, ok := resp.LookupWalletGroup([]string{"metal", "security.metal", "commodity.metal"})
	require.True(t, ok)
	require.Len(t, group.Attributes.Wallets, 1)
	require.Equal(t, "XAU", group.Attributes.Wallets[0].Attributes.Symbol)
}

func TestLookupWalletGroupFirstMatchWins(t *testing.T) {
	var resp AssetWalletsResponse
	require.NoError(t, json.Unmarshal([]byte(assetWalletsFixture), &resp))

	group, ok := resp.LookupWalletGroup([]string{"security.stock", "commodity.metal"})
	require.True(t, ok)
	require.Empty(t, group.Attributes.Wallets)
}

func TestLookupWalletGroupNoMatch(t *testing.T) {
	var resp AssetWalletsResponse
	require.NoError(t, json.Unmarshal([]byte(assetWalletsFixture), &resp))

	_, ok := resp.LookupWalletGroup([]string{"etf", "security.etf", "commodity.etf", "index.etf"})
	require.False(t, ok)
}

func TestFiatWalletsDecode(t *testing.T) {
	raw := `{"data": [
      {"type": "fiat_wallet", "id": "f1", "attributes": {"fiat_id": "1", "fiat_symbol": "EUR", "name": "EUR Wallet", "balance": "123.45"}},
      {"type": "fiat_wallet", "id": "f2", "attributes": {"fiat_id": "2", "fiat_symbol": "USD", "name": "USD Wallet", "balance": null}}
    ]}`

	var resp FiatWalletsResponse
	require.NoError(t, json.Unmarshal([]byte(raw), &resp))
	require.Len(t, resp.Data, 2)
	require.Equal(t, "EUR", resp.Data[0].Attributes.FiatSymbol)
	require.Equal(t, "123.45", resp.Data[0].Attributes.Balance.String())
	require.True(t, resp.Data[1].Attributes.Balance.IsZero())
}
