package feeoracle

import (
	"context"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// weiExponent converts wei to native units.
const weiExponent = -18

// EthOracle fetches the suggested gas price from an Ethereum RPC node and
// keeps the last known value. The oracle is opportunistic: a fetch failure
// leaves the cached value in place and never fails a quote.
type EthOracle struct {
	client *ethclient.Client
	logger *zap.Logger

	mu     sync.RWMutex
	last   decimal.Decimal
	lastAt time.Time
}

// NewEthOracle dials the RPC endpoint and returns the oracle.
func NewEthOracle(ctx context.Context, rpcURL string, logger *zap.Logger) (*EthOracle, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	client, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, errors.Wrap(err, "dial eth rpc")
	}
	return &EthOracle{client: client, logger: logger}, nil
}

// GasPrice returns the last known gas price in native units, refreshing it
// from the node when no value has been cached yet.
func (o *EthOracle) GasPrice(ctx context.Context) (decimal.Decimal, error) {
	o.mu.RLock()
	last, lastAt := o.last, o.lastAt
	o.mu.RUnlock()
	if !lastAt.IsZero() {
		return last, nil
	}
	return o.refresh(ctx)
}

// LastUpdate returns the cached gas price and when it was fetched.
func (o *EthOracle) LastUpdate() (decimal.Decimal, time.Time) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.last, o.lastAt
}

// Run polls the node until ctx is cancelled, keeping the cache warm.
func (o *EthOracle) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	o.logger.Info("starting gas price poller", zap.Duration("poll_interval", interval))
	for {
		select {
		case <-ctx.Done():
			o.logger.Info("context done, stopping gas price poller")
			return ctx.Err()
		case <-ticker.C:
			if _, err := o.refresh(ctx); err != nil {
				o.logger.Warn("gas price refresh failed", zap.Error(err))
			}
		}
	}
}

func (o *EthOracle) refresh(ctx context.Context) (decimal.Decimal, error) {
	wei, err := o.client.SuggestGasPrice(ctx)
	if err != nil {
		return decimal.Zero, errors.Wrap(err, "suggest gas price")
	}
	price := decimal.NewFromBigInt(wei, weiExponent)

	o.mu.Lock()
	o.last = price
	o.lastAt = time.Now()
	o.mu.Unlock()

	o.logger.Debug("gas price updated", zap.String("native_per_gas", price.String()))
	return price, nil
}
