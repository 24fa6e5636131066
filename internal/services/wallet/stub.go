package wallet

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/puentelabs/puente/internal/domain"
)

// demoAddress is the fixed account the stub connects to.
const demoAddress = "pi1234abcd9f03e21d75678"

// StubProvider is an in-memory wallet session with per-asset balances. It
// stands in for the external wallet-connection library and doubles as the
// balance reader for crypto-sourced transfers.
type StubProvider struct {
	mu       sync.RWMutex
	session  domain.Session
	balances map[string]decimal.Decimal
	logger   *zap.Logger
}

// NewStubProvider creates a stub wallet seeding every crypto asset with the
// given starting balance.
func NewStubProvider(assetCodes []string, seed decimal.Decimal, logger *zap.Logger) *StubProvider {
	if logger == nil {
		logger = zap.NewNop()
	}
	balances := make(map[string]decimal.Decimal, len(assetCodes))
	for _, code := range assetCodes {
		balances[code] = seed
	}
	return &StubProvider{balances: balances, logger: logger}
}

// Connect opens the stub session.
func (p *StubProvider) Connect(_ context.Context) (domain.Session, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.session = domain.Session{Address: demoAddress, Connected: true}
	p.logger.Info("wallet connected", zap.String("address", p.session.ShortAddress()))
	return p.session, nil
}

// Disconnect drops the session.
func (p *StubProvider) Disconnect() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.session.Connected {
		p.logger.Info("wallet disconnected", zap.String("address", p.session.ShortAddress()))
	}
	p.session = domain.Session{}
}

// Session returns the current session snapshot.
func (p *StubProvider) Session() domain.Session {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.session
}

// Balance returns the stubbed balance of the connected account. Unknown
// assets report zero.
func (p *StubProvider) Balance(_ context.Context, address, assetCode string) (decimal.Decimal, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if address != p.session.Address {
		return decimal.Zero, nil
	}
	return p.balances[assetCode], nil
}

// Debit reduces a balance after a simulated transfer.
func (p *StubProvider) Debit(assetCode string, amount decimal.Decimal) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.balances[assetCode] = p.balances[assetCode].Sub(amount)
}
