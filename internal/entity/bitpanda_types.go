package entity

import (
	"strings"

	jsoniter "github.com/json-iterator/go"

	domain "bitpanda_watcher/internal/domain/entity"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// FiatWalletsResponse mirrors the GET /fiatwallets response.
type FiatWalletsResponse struct {
	Data []FiatWallet `json:"data"`
}

// FiatWallet is a single fiat wallet record.
type FiatWallet struct {
	Type       string               `json:"type"`
	ID         string               `json:"id"`
	Attributes FiatWalletAttributes `json:"attributes"`
}

// FiatWalletAttributes carries the fields the normalizer reads from a fiat
// wallet.
type FiatWalletAttributes struct {
	FiatID     string        `json:"fiat_id"`
	FiatSymbol string        `json:"fiat_symbol"`
	Name       string        `json:"name"`
	Balance    domain.Amount `json:"balance"`
}

// AssetWalletsResponse mirrors the GET /asset-wallets response. The
// attributes object mixes two shapes under one key space: a category node
// (attributes.wallets[]) or a grouping node (security, commodity, index)
// nesting further category nodes. It stays raw until LookupWalletGroup
// resolves a concrete path.
type AssetWalletsResponse struct {
	Data AssetWalletsData `json:"data"`
}

// AssetWalletsData is the top-level data object of /asset-wallets.
type AssetWalletsData struct {
	Type       string                         `json:"type"`
	Attributes map[string]jsoniter.RawMessage `json:"attributes"`
}

// WalletGroup is one asset sub-category node holding its wallet list.
type WalletGroup struct {
	Attributes WalletGroupAttributes `json:"attributes"`
}

// WalletGroupAttributes wraps the wallets of one sub-category.
type WalletGroupAttributes struct {
	Wallets []AssetWallet `json:"wallets"`
}

// AssetWallet is a single asset wallet record.
type AssetWallet struct {
	Type       string                `json:"type"`
	ID         string                `json:"id"`
	Attributes AssetWalletAttributes `json:"attributes"`
}

// AssetWalletAttributes carries the fields the normalizer reads from an asset
// wallet.
type AssetWalletAttributes struct {
	Symbol  string        `json:"cryptocoin_symbol"`
	Name    string        `json:"name"`
	Balance domain.Amount `json:"balance"`
}

// LookupWalletGroup resolves the first of the given dot-paths that leads to a
// wallet group, e.g. "cryptocoin" or "security.stock". A missing key or a
// node of the wrong shape skips to the next candidate; no match returns false.
func (r *AssetWalletsResponse) LookupWalletGroup(paths []string) (WalletGroup, bool) {
	for _, path := range paths {
		if group, ok := r.resolvePath(path); ok {
			return group, true
		}
	}
	return WalletGroup{}, false
}

func (r *AssetWalletsResponse) resolvePath(path string) (WalletGroup, bool) {
	segments := strings.Split(path, ".")
	raw, ok := r.Data.Attributes[segments[0]]
	if !ok {
		return WalletGroup{}, false
	}

	for _, segment := range segments[1:] {
		var nested map[string]jsoniter.RawMessage
		if err := json.Unmarshal(raw, &nested); err != nil {
			return WalletGroup{}, false
		}
		raw, ok = nested[segment]
		if !ok {
			return WalletGroup{}, false
		}
	}

	var group WalletGroup
	if err := json.Unmarshal(raw, &group); err != nil {
		return WalletGroup{}, false
	}
	return group, true
}
