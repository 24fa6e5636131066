package bridge

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/puentelabs/puente/internal/catalog"
	"github.com/puentelabs/puente/internal/domain"
	"github.com/puentelabs/puente/internal/services/converter"
	"github.com/puentelabs/puente/internal/services/notify"
	"github.com/puentelabs/puente/internal/services/wallet"
)

func testService(t *testing.T, seed decimal.Decimal) (*Service, *wallet.StubProvider, *[]domain.Notification) {
	t.Helper()

	engine := converter.New(catalog.Default())
	provider := wallet.NewStubProvider([]string{"BTC", "ETH", "PI"}, seed, nil)

	var notifications []domain.Notification
	sink := notify.FuncSink(func(n domain.Notification) {
		notifications = append(notifications, n)
	})

	svc, err := New(engine, provider, provider, nil, sink, nil)
	require.NoError(t, err)
	return svc, provider, &notifications
}

func TestNewRequiresEngine(t *testing.T) {
	_, err := New(nil, nil, nil, nil, nil, nil)
	require.Error(t, err)
}

func TestQuotePinnedScenario(t *testing.T) {
	svc, _, _ := testService(t, decimal.NewFromInt(10))

	q := svc.Quote(context.Background(), domain.ConversionRequest{
		Amount:      "100",
		SourceMode:  domain.SourceModeFiat,
		SourceCode:  "USD",
		DestCode:    "PI",
		SlippagePct: decimal.NewFromFloat(0.5),
	})
	require.Equal(t, "1.990000", q.Output.StringFixed(6))
	require.NotEmpty(t, q.ID)
	require.False(t, q.Timestamp.IsZero())
}

func TestSubmitRequiresConnection(t *testing.T) {
	svc, _, notifications := testService(t, decimal.NewFromInt(10))

	_, err := svc.Submit(context.Background(), domain.ConversionRequest{
		Amount:     "100",
		SourceMode: domain.SourceModeFiat,
		SourceCode: "USD",
		DestCode:   "PI",
	})
	require.True(t, errors.Is(err, ErrNotConnected))
	require.Len(t, *notifications, 1)
	require.Equal(t, domain.SeverityWarning, (*notifications)[0].Severity)
}

func TestSubmitRejectsZeroQuote(t *testing.T) {
	svc, _, notifications := testService(t, decimal.NewFromInt(10))
	ctx := context.Background()

	session := svc.Connect(ctx)
	require.True(t, session.Connected)

	for _, req := range []domain.ConversionRequest{
		{Amount: "", SourceMode: domain.SourceModeFiat, SourceCode: "USD", DestCode: "PI"},
		{Amount: "100", SourceMode: domain.SourceModeFiat, SourceCode: "USD", DestCode: "NOPE"},
	} {
		_, err := svc.Submit(ctx, req)
		require.True(t, errors.Is(err, ErrZeroQuote))
	}
	require.Len(t, *notifications, 2)
}

func TestSubmitInsufficientBalance(t *testing.T) {
	svc, _, notifications := testService(t, decimal.NewFromInt(1))
	ctx := context.Background()

	svc.Connect(ctx)

	_, err := svc.Submit(ctx, domain.ConversionRequest{
		Amount:      "2",
		SourceMode:  domain.SourceModeCrypto,
		SourceCode:  "BTC",
		DestCode:    "PI",
		SlippagePct: decimal.NewFromFloat(1),
	})
	require.True(t, errors.Is(err, ErrInsufficientBalance))

	last := (*notifications)[len(*notifications)-1]
	require.Equal(t, domain.SeverityWarning, last.Severity)
	require.Equal(t, "Insufficient balance", last.Title)
}

func TestSubmitTransferDebitsWallet(t *testing.T) {
	svc, provider, notifications := testService(t, decimal.NewFromInt(10))
	ctx := context.Background()

	session := svc.Connect(ctx)
	require.True(t, session.Connected)

	ref, err := svc.Submit(ctx, domain.ConversionRequest{
		Amount:      "1",
		SourceMode:  domain.SourceModeCrypto,
		SourceCode:  "BTC",
		DestCode:    "PI",
		SlippagePct: decimal.NewFromFloat(1),
	})
	require.NoError(t, err)
	require.NotEmpty(t, ref)

	balance, err := provider.Balance(ctx, session.Address, "BTC")
	require.NoError(t, err)
	require.True(t, balance.Equal(decimal.NewFromInt(9)), "got %s", balance)

	last := (*notifications)[len(*notifications)-1]
	require.Equal(t, domain.SeverityInfo, last.Severity)
	require.Equal(t, "Submission accepted", last.Title)
	require.Contains(t, last.Description, ref)
}

func TestSubmitBuyLeavesBalancesAlone(t *testing.T) {
	svc, provider, _ := testService(t, decimal.NewFromInt(10))
	ctx := context.Background()

	session := svc.Connect(ctx)

	_, err := svc.Submit(ctx, domain.ConversionRequest{
		Amount:      "100",
		SourceMode:  domain.SourceModeFiat,
		SourceCode:  "USD",
		DestCode:    "PI",
		SlippagePct: decimal.NewFromFloat(0.5),
	})
	require.NoError(t, err)

	balance, err := provider.Balance(ctx, session.Address, "PI")
	require.NoError(t, err)
	require.True(t, balance.Equal(decimal.NewFromInt(10)))
}

func TestToggleMode(t *testing.T) {
	svc, _, _ := testService(t, decimal.NewFromInt(10))

	mode, code := svc.ToggleMode(domain.SourceModeFiat)
	require.Equal(t, domain.SourceModeCrypto, mode)
	require.Equal(t, domain.DefaultCryptoCode, code)

	mode, code = svc.ToggleMode(mode)
	require.Equal(t, domain.SourceModeFiat, mode)
	require.Equal(t, domain.DefaultFiatCode, code)
}

func TestProcessingFee(t *testing.T) {
	svc, _, _ := testService(t, decimal.NewFromInt(10))

	fee := svc.ProcessingFee(domain.SourceModeFiat)
	require.NotNil(t, fee)
	require.True(t, fee.Equal(ProcessingFeePct))

	require.Nil(t, svc.ProcessingFee(domain.SourceModeCrypto))
}

func TestDisconnectDropsSession(t *testing.T) {
	svc, _, _ := testService(t, decimal.NewFromInt(10))
	ctx := context.Background()

	svc.Connect(ctx)
	require.True(t, svc.Session().Connected)

	svc.Disconnect()
	require.False(t, svc.Session().Connected)
}
