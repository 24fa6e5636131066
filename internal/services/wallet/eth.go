package wallet

import (
	"context"
	"strings"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// EthReader reads on-chain ETH balances for pre-submission validation when
// an RPC endpoint is configured. Non-ETH assets fall through to the given
// fallback reader.
type EthReader struct {
	client   *ethclient.Client
	fallback BalanceReader
}

// NewEthReader dials the RPC endpoint.
func NewEthReader(ctx context.Context, rpcURL string, fallback BalanceReader) (*EthReader, error) {
	client, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, errors.Wrap(err, "dial eth rpc")
	}
	return &EthReader{client: client, fallback: fallback}, nil
}

// Balance queries the node for ETH and delegates everything else.
func (r *EthReader) Balance(ctx context.Context, address, assetCode string) (decimal.Decimal, error) {
	if !strings.EqualFold(assetCode, "ETH") || !ValidateAddress(address) {
		if r.fallback != nil {
			return r.fallback.Balance(ctx, address, assetCode)
		}
		return decimal.Zero, nil
	}
	wei, err := r.client.BalanceAt(ctx, ethcommon.HexToAddress(address), nil)
	if err != nil {
		return decimal.Zero, errors.Wrap(err, "balance at")
	}
	return decimal.NewFromBigInt(wei, -18), nil
}

// ValidateAddress reports whether the address is a well-formed hex account
// address.
func ValidateAddress(address string) bool {
	return ethcommon.IsHexAddress(address)
}

var _ BalanceReader = (*EthReader)(nil)
