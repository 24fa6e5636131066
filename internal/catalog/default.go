package catalog

import (
	"github.com/shopspring/decimal"

	"github.com/puentelabs/puente/internal/domain"
)

// Default returns the built-in price table.
func Default() Catalog {
	return Catalog{
		Version: "2024-static",
		Fiat: []domain.FiatAsset{
			{Code: "USD", Name: "US Dollar", Rate: decimal.NewFromInt(1)},
			{Code: "EUR", Name: "Euro", Rate: decimal.NewFromFloat(0.92)},
			{Code: "GBP", Name: "British Pound", Rate: decimal.NewFromFloat(0.79)},
		},
		Crypto: []domain.CryptoAsset{
			{Code: "BTC", Name: "Bitcoin", Price: decimal.NewFromInt(100000), Network: "Bitcoin", Fee: decimal.NewFromFloat(0.0001)},
			{Code: "ETH", Name: "Ethereum", Price: decimal.NewFromInt(5420), Network: "Ethereum", Fee: decimal.NewFromFloat(0.0015)},
			{Code: "PI", Name: "Pi", Price: decimal.NewFromInt(50), Network: "Pi", Fee: decimal.NewFromFloat(0.001), IsNew: true},
			{Code: "XMR", Name: "Monero", Price: decimal.NewFromInt(720), Network: "Monero", Fee: decimal.NewFromFloat(0.01)},
			{Code: "XMRT", Name: "XMRT", Price: decimal.NewFromFloat(0.85), Network: "XMRT", Fee: decimal.NewFromFloat(0.002), IsNew: true},
			{Code: "BNB", Name: "BNB", Price: decimal.NewFromInt(855), Network: "BSC", Fee: decimal.NewFromFloat(0.0005)},
			{Code: "SOL", Name: "Solana", Price: decimal.NewFromInt(275), Network: "Solana", Fee: decimal.NewFromFloat(0.0001)},
			{Code: "USDT", Name: "USDT", Price: decimal.NewFromFloat(1.0001), Network: "Ethereum", Fee: decimal.NewFromFloat(0.0015)},
			{Code: "USDC", Name: "USDC", Price: decimal.NewFromInt(1), Network: "Ethereum", Fee: decimal.NewFromFloat(0.0015)},
		},
	}
}
