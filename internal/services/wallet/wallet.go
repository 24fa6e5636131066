// Package wallet provides the wallet session collaborators of the bridge.
package wallet

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/puentelabs/puente/internal/domain"
)

// Provider manages the external wallet session. Implementations delegate the
// actual connection flow to a wallet library; the bridge only reads the
// resulting session state.
type Provider interface {
	Connect(ctx context.Context) (domain.Session, error)
	Disconnect()
	Session() domain.Session
}

// BalanceReader answers balance queries used for pre-submission validation.
type BalanceReader interface {
	Balance(ctx context.Context, address, assetCode string) (decimal.Decimal, error)
}
