// Package catalog holds the static table of supported assets and their
// reference prices. The catalog is built once at startup and never mutated;
// it is passed into the conversion engine as a value so a live price feed
// could replace it without touching computation logic.
package catalog

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/puentelabs/puente/internal/domain"
)

// ErrAssetNotFound is returned when a code does not resolve in its catalog.
var ErrAssetNotFound = errors.New("asset not found in catalog")

// Catalog fiat and crypto asset tables. Fiat and crypto codes are separate
// namespaces.
type Catalog struct {
	// Version identifies the price table revision.
	Version string `json:"version"`
	// Fiat source-side fiat currencies.
	Fiat []domain.FiatAsset `json:"fiat"`
	// Crypto assets, the only valid destination catalog.
	Crypto []domain.CryptoAsset `json:"crypto"`
}

// FiatByCode resolves a fiat asset by code.
func (c *Catalog) FiatByCode(code string) (domain.FiatAsset, error) {
	for _, a := range c.Fiat {
		if a.Code == code {
			return a, nil
		}
	}
	return domain.FiatAsset{}, errors.Wrapf(ErrAssetNotFound, "fiat %s", code)
}

// CryptoByCode resolves a crypto asset by code.
func (c *Catalog) CryptoByCode(code string) (domain.CryptoAsset, error) {
	for _, a := range c.Crypto {
		if a.Code == code {
			return a, nil
		}
	}
	return domain.CryptoAsset{}, errors.Wrapf(ErrAssetNotFound, "crypto %s", code)
}

// Validate checks catalog invariants: unique codes per namespace, strictly
// positive prices and rates, and presence of the default assets the source
// mode machine resets to.
func (c *Catalog) Validate() error {
	fiatSeen := make(map[string]struct{}, len(c.Fiat))
	for _, a := range c.Fiat {
		if a.Code == "" {
			return fmt.Errorf("fiat asset with empty code")
		}
		if _, ok := fiatSeen[a.Code]; ok {
			return fmt.Errorf("duplicate fiat code %s", a.Code)
		}
		fiatSeen[a.Code] = struct{}{}
		if !a.Rate.GreaterThan(decimal.Zero) {
			return fmt.Errorf("fiat %s has non-positive rate %s", a.Code, a.Rate.String())
		}
	}

	cryptoSeen := make(map[string]struct{}, len(c.Crypto))
	for _, a := range c.Crypto {
		if a.Code == "" {
			return fmt.Errorf("crypto asset with empty code")
		}
		if _, ok := cryptoSeen[a.Code]; ok {
			return fmt.Errorf("duplicate crypto code %s", a.Code)
		}
		cryptoSeen[a.Code] = struct{}{}
		if !a.Price.GreaterThan(decimal.Zero) {
			return fmt.Errorf("crypto %s has non-positive price %s", a.Code, a.Price.String())
		}
		if a.Fee.IsNegative() {
			return fmt.Errorf("crypto %s has negative fee %s", a.Code, a.Fee.String())
		}
	}

	if _, ok := fiatSeen[domain.DefaultFiatCode]; !ok {
		return fmt.Errorf("catalog is missing default fiat asset %s", domain.DefaultFiatCode)
	}
	if _, ok := cryptoSeen[domain.DefaultCryptoCode]; !ok {
		return fmt.Errorf("catalog is missing default destination asset %s", domain.DefaultCryptoCode)
	}
	return nil
}
