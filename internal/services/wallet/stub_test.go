package wallet

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestStubProviderSessionLifecycle(t *testing.T) {
	p := NewStubProvider([]string{"PI", "BTC"}, decimal.NewFromInt(10), nil)

	require.False(t, p.Session().Connected)

	session, err := p.Connect(context.Background())
	require.NoError(t, err)
	require.True(t, session.Connected)
	require.Equal(t, demoAddress, session.Address)
	require.Equal(t, session, p.Session())

	p.Disconnect()
	require.False(t, p.Session().Connected)
	require.Empty(t, p.Session().Address)
}

func TestStubProviderBalance(t *testing.T) {
	p := NewStubProvider([]string{"PI", "BTC"}, decimal.NewFromInt(10), nil)
	ctx := context.Background()

	session, err := p.Connect(ctx)
	require.NoError(t, err)

	balance, err := p.Balance(ctx, session.Address, "PI")
	require.NoError(t, err)
	require.True(t, balance.Equal(decimal.NewFromInt(10)))

	// unknown asset and foreign address both report zero
	balance, err = p.Balance(ctx, session.Address, "DOGE")
	require.NoError(t, err)
	require.True(t, balance.IsZero())

	balance, err = p.Balance(ctx, "pi9999other", "PI")
	require.NoError(t, err)
	require.True(t, balance.IsZero())
}

func TestStubProviderDebit(t *testing.T) {
	p := NewStubProvider([]string{"BTC"}, decimal.NewFromInt(10), nil)
	ctx := context.Background()

	session, err := p.Connect(ctx)
	require.NoError(t, err)

	p.Debit("BTC", decimal.NewFromFloat(2.5))

	balance, err := p.Balance(ctx, session.Address, "BTC")
	require.NoError(t, err)
	require.True(t, balance.Equal(decimal.NewFromFloat(7.5)), "got %s", balance)
}
