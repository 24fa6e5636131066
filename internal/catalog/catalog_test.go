package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/puentelabs/puente/internal/domain"
)

func TestDefaultIsValid(t *testing.T) {
	cat := Default()
	require.NoError(t, cat.Validate())
	require.Len(t, cat.Fiat, 3)
	require.Len(t, cat.Crypto, 9)
}

func TestLookups(t *testing.T) {
	cat := Default()

	usd, err := cat.FiatByCode("USD")
	require.NoError(t, err)
	require.True(t, usd.Rate.Equal(decimal.NewFromInt(1)))

	pi, err := cat.CryptoByCode("PI")
	require.NoError(t, err)
	require.True(t, pi.IsNew)
	require.Equal(t, "Pi", pi.Network)

	_, err = cat.FiatByCode("JPY")
	require.True(t, errors.Is(err, ErrAssetNotFound))

	_, err = cat.CryptoByCode("DOGE")
	require.True(t, errors.Is(err, ErrAssetNotFound))

	// namespaces are separate: USD is fiat, not crypto
	_, err = cat.CryptoByCode("USD")
	require.True(t, errors.Is(err, ErrAssetNotFound))
}

func TestValidate(t *testing.T) {
	one := decimal.NewFromInt(1)

	tests := []struct {
		name    string
		mutate  func(c *Catalog)
		wantErr string
	}{
		{
			name:    "duplicate fiat code",
			mutate:  func(c *Catalog) { c.Fiat = append(c.Fiat, domain.FiatAsset{Code: "USD", Rate: one}) },
			wantErr: "duplicate fiat code USD",
		},
		{
			name:    "duplicate crypto code",
			mutate:  func(c *Catalog) { c.Crypto = append(c.Crypto, domain.CryptoAsset{Code: "BTC", Price: one}) },
			wantErr: "duplicate crypto code BTC",
		},
		{
			name:    "zero rate",
			mutate:  func(c *Catalog) { c.Fiat[1].Rate = decimal.Zero },
			wantErr: "non-positive rate",
		},
		{
			name:    "negative price",
			mutate:  func(c *Catalog) { c.Crypto[0].Price = decimal.NewFromInt(-1) },
			wantErr: "non-positive price",
		},
		{
			name:    "negative fee",
			mutate:  func(c *Catalog) { c.Crypto[0].Fee = decimal.NewFromInt(-1) },
			wantErr: "negative fee",
		},
		{
			name: "missing default destination",
			mutate: func(c *Catalog) {
				kept := c.Crypto[:0]
				for _, a := range c.Crypto {
					if a.Code != domain.DefaultCryptoCode {
						kept = append(kept, a)
					}
				}
				c.Crypto = kept
			},
			wantErr: "missing default destination asset",
		},
		{
			name: "missing default fiat",
			mutate: func(c *Catalog) {
				kept := c.Fiat[:0]
				for _, a := range c.Fiat {
					if a.Code != domain.DefaultFiatCode {
						kept = append(kept, a)
					}
				}
				c.Fiat = kept
			},
			wantErr: "missing default fiat asset",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cat := Default()
			tc.mutate(&cat)
			err := cat.Validate()
			require.Error(t, err)
			require.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.yaml")
	content := `version: test
fiat:
  - code: USD
    name: US Dollar
    rate: "1"
  - code: EUR
    name: Euro
    rate: "0.92"
crypto:
  - code: PI
    name: Pi
    price: "50"
    network: Pi
    fee: "0.001"
    is_new: true
  - code: BTC
    name: Bitcoin
    price: "100000"
    network: Bitcoin
    fee: "0.0001"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cat, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "test", cat.Version)
	require.Len(t, cat.Crypto, 2)

	pi, err := cat.CryptoByCode("PI")
	require.NoError(t, err)
	require.True(t, pi.Price.Equal(decimal.NewFromInt(50)))
	require.True(t, pi.IsNew)
}

func TestLoadRejectsInvalid(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		content string
	}{
		{
			name: "bad price",
			content: `fiat:
  - code: USD
    rate: "1"
crypto:
  - code: PI
    price: "fifty"
    fee: "0.001"
`,
		},
		{
			name: "fails validation",
			content: `fiat:
  - code: USD
    rate: "1"
crypto:
  - code: BTC
    price: "100000"
    fee: "0.0001"
`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(dir, tc.name+".yaml")
			require.NoError(t, os.WriteFile(path, []byte(tc.content), 0o644))
			_, err := Load(path)
			require.Error(t, err)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}
