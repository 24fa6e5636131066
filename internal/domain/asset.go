// Package domain defines core data structures used throughout the bridge.
package domain

import "github.com/shopspring/decimal"

// FiatAsset fiat currency supported on the source side.
type FiatAsset struct {
	// Code currency code, unique within the fiat catalog.
	Code string `json:"code"`
	// Name human-readable currency name.
	Name string `json:"name"`
	// Rate units of this currency per one USD (USD = 1).
	Rate decimal.Decimal `json:"rate"`
}

// CryptoAsset cryptocurrency supported on both sides of a conversion.
type CryptoAsset struct {
	// Code asset code, unique within the crypto catalog.
	Code string `json:"code"`
	// Name human-readable asset name.
	Name string `json:"name"`
	// Price USD price of one unit.
	Price decimal.Decimal `json:"price"`
	// Network settlement network the asset lives on.
	Network string `json:"network"`
	// Fee transaction fee in native units.
	Fee decimal.Decimal `json:"fee"`
	// IsNew marks recently listed assets in selectors.
	IsNew bool `json:"is_new,omitempty"`
}

// Label returns the selector label, flagging recently listed assets.
func (a *CryptoAsset) Label() string {
	if a.IsNew {
		return a.Code + " (New)"
	}
	return a.Code
}
