// Package feeoracle provides gas price sources for the network fee estimate.
package feeoracle

import (
	"context"

	"github.com/shopspring/decimal"
)

// Oracle supplies the current gas price in native units per gas. A zero
// price means no live data is available and callers fall back to the static
// catalog fee.
type Oracle interface {
	GasPrice(ctx context.Context) (decimal.Decimal, error)
}

// Static is the no-live-data oracle. It always reports a zero gas price so
// the fee estimate stays on the catalog's fixed per-asset fee.
type Static struct{}

// NewStatic creates a Static oracle.
func NewStatic() *Static {
	return &Static{}
}

// GasPrice always returns zero.
func (*Static) GasPrice(_ context.Context) (decimal.Decimal, error) {
	return decimal.Zero, nil
}
