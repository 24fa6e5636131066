package catalog

import (
	"os"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/puentelabs/puente/internal/domain"
)

type fiatTmp struct {
	Code string `yaml:"code"`
	Name string `yaml:"name"`
	Rate string `yaml:"rate"`
}

type cryptoTmp struct {
	Code    string `yaml:"code"`
	Name    string `yaml:"name"`
	Price   string `yaml:"price"`
	Network string `yaml:"network"`
	Fee     string `yaml:"fee"`
	IsNew   bool   `yaml:"is_new,omitempty"`
}

type catalogTmp struct {
	Version string      `yaml:"version"`
	Fiat    []fiatTmp   `yaml:"fiat"`
	Crypto  []cryptoTmp `yaml:"crypto"`
}

// Load reads a catalog from a yaml file and validates it. A deployment can
// swap the price table this way without a rebuild.
func Load(path string) (Catalog, error) {
	f, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, errors.Wrap(err, "read catalog file")
	}

	var tmp catalogTmp
	if err := yaml.Unmarshal(f, &tmp); err != nil {
		return Catalog{}, errors.Wrap(err, "parse catalog file")
	}

	c := Catalog{Version: tmp.Version}
	for _, a := range tmp.Fiat {
		rate, err := decimal.NewFromString(a.Rate)
		if err != nil {
			return Catalog{}, errors.Wrapf(err, "incorrect 'rate' for fiat %s", a.Code)
		}
		c.Fiat = append(c.Fiat, domain.FiatAsset{Code: a.Code, Name: a.Name, Rate: rate})
	}
	for _, a := range tmp.Crypto {
		price, err := decimal.NewFromString(a.Price)
		if err != nil {
			return Catalog{}, errors.Wrapf(err, "incorrect 'price' for crypto %s", a.Code)
		}
		fee, err := decimal.NewFromString(a.Fee)
		if err != nil {
			return Catalog{}, errors.Wrapf(err, "incorrect 'fee' for crypto %s", a.Code)
		}
		c.Crypto = append(c.Crypto, domain.CryptoAsset{
			Code:    a.Code,
			Name:    a.Name,
			Price:   price,
			Network: a.Network,
			Fee:     fee,
			IsNew:   a.IsNew,
		})
	}

	if err := c.Validate(); err != nil {
		return Catalog{}, errors.Wrap(err, "invalid catalog")
	}
	return c, nil
}
