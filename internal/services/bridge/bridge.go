// Package bridge wires the conversion engine to its collaborators: wallet
// session, balance reader, fee oracle and notification sink. Collaborators
// are injected and optional; absent ones default to stubs so the simple and
// the wallet-integrated variants of the widget are the same component.
package bridge

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/puentelabs/puente/internal/domain"
	"github.com/puentelabs/puente/internal/services/converter"
	"github.com/puentelabs/puente/internal/services/feeoracle"
	"github.com/puentelabs/puente/internal/services/notify"
	"github.com/puentelabs/puente/internal/services/wallet"
)

var (
	// ErrNotConnected submission attempted without a wallet session.
	ErrNotConnected = errors.New("wallet is not connected")
	// ErrZeroQuote submission attempted on a non-positive quote.
	ErrZeroQuote = errors.New("quoted output is not positive")
	// ErrInsufficientBalance the requested amount exceeds the wallet balance.
	ErrInsufficientBalance = errors.New("insufficient balance")
)

// ProcessingFeePct fixed payment-processing fee shown for fiat-sourced
// purchases. Display only, it is never deducted from the quote.
var ProcessingFeePct = decimal.NewFromFloat(1.5)

// debiter is implemented by wallet stubs that track balances locally.
type debiter interface {
	Debit(assetCode string, amount decimal.Decimal)
}

// Service is the bridge orchestrator.
type Service struct {
	engine   *converter.Engine
	wallet   wallet.Provider
	balances wallet.BalanceReader
	fees     feeoracle.Oracle
	notifier notify.Sink
	logger   *zap.Logger
}

// New creates a Service. Nil collaborators default to no-op implementations.
func New(engine *converter.Engine, w wallet.Provider, balances wallet.BalanceReader, fees feeoracle.Oracle, notifier notify.Sink, logger *zap.Logger) (*Service, error) {
	if engine == nil {
		return nil, errors.New("engine is required for bridge service")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if fees == nil {
		fees = feeoracle.NewStatic()
	}
	if notifier == nil {
		notifier = notify.NopSink{}
	}
	return &Service{
		engine:   engine,
		wallet:   w,
		balances: balances,
		fees:     fees,
		notifier: notifier,
		logger:   logger,
	}, nil
}

// Engine exposes the underlying conversion engine.
func (s *Service) Engine() *converter.Engine {
	return s.engine
}

// Quote computes a stamped quote, blending the live gas price into the
// network fee estimate when the oracle has one.
func (s *Service) Quote(ctx context.Context, req domain.ConversionRequest) domain.Quote {
	q := s.engine.Quote(req)
	q.ID = uuid.NewString()
	q.Timestamp = time.Now()

	gas, err := s.fees.GasPrice(ctx)
	if err != nil {
		s.logger.Debug("fee oracle unavailable, using catalog fee", zap.Error(err))
		return q
	}
	q.NetworkFeeUSD = s.engine.NetworkFeeUSD(req.DestCode, gas)
	return q
}

// ToggleMode flips the source mode and returns the reset source asset code.
func (s *Service) ToggleMode(m domain.SourceMode) (domain.SourceMode, string) {
	return m.Toggle()
}

// ProcessingFee returns the fixed processing fee percentage for fiat-sourced
// requests and nil otherwise.
func (s *Service) ProcessingFee(mode domain.SourceMode) *decimal.Decimal {
	if mode != domain.SourceModeFiat {
		return nil
	}
	fee := ProcessingFeePct
	return &fee
}

// Connect opens a wallet session. Failures are notified, not fatal.
func (s *Service) Connect(ctx context.Context) domain.Session {
	if s.wallet == nil {
		s.notifier.Notify(domain.Notification{
			Severity:    domain.SeverityWarning,
			Title:       "Wallet unavailable",
			Description: "no wallet provider is configured",
		})
		return domain.Session{}
	}
	session, err := s.wallet.Connect(ctx)
	if err != nil {
		s.logger.Error("wallet connection failed", zap.Error(err))
		s.notifier.Notify(domain.Notification{
			Severity:    domain.SeverityError,
			Title:       "Connection failed",
			Description: err.Error(),
		})
		return domain.Session{}
	}
	return session
}

// Disconnect drops the wallet session if one exists.
func (s *Service) Disconnect() {
	if s.wallet != nil {
		s.wallet.Disconnect()
	}
}

// Session returns the current wallet session snapshot.
func (s *Service) Session() domain.Session {
	if s.wallet == nil {
		return domain.Session{}
	}
	return s.wallet.Session()
}

// Submit validates and submits a buy (fiat source) or transfer (crypto
// source). Settlement is stubbed: the action is logged and acknowledged via
// the notification sink, nothing touches a chain. Returns the reference id
// of the accepted submission.
func (s *Service) Submit(ctx context.Context, req domain.ConversionRequest) (string, error) {
	session := s.Session()
	if !session.Connected {
		s.notifier.Notify(domain.Notification{
			Severity:    domain.SeverityWarning,
			Title:       "Wallet required",
			Description: "connect a wallet before submitting",
		})
		return "", ErrNotConnected
	}

	q := s.Quote(ctx, req)
	if !q.Positive() {
		s.notifier.Notify(domain.Notification{
			Severity:    domain.SeverityWarning,
			Title:       "Nothing to submit",
			Description: "the quoted output is zero",
		})
		return "", ErrZeroQuote
	}

	amount := converter.ParseAmount(req.Amount)
	if req.SourceMode == domain.SourceModeCrypto {
		if err := s.checkBalance(ctx, session.Address, req.SourceCode, amount); err != nil {
			return "", err
		}
	}

	ref := uuid.NewString()
	action := "buy"
	if req.SourceMode == domain.SourceModeCrypto {
		action = "transfer"
		if d, ok := s.balances.(debiter); ok {
			d.Debit(req.SourceCode, amount)
		}
	}

	s.logger.Info("simulated submission",
		zap.String("ref", ref),
		zap.String("action", action),
		zap.String("source", req.SourceCode),
		zap.String("dest", req.DestCode),
		zap.String("amount", amount.String()),
		zap.String("output", q.Output.StringFixed(6)))

	s.notifier.Notify(domain.Notification{
		Severity:    domain.SeverityInfo,
		Title:       "Submission accepted",
		Description: q.String() + " (ref " + ref + ")",
	})
	return ref, nil
}

func (s *Service) checkBalance(ctx context.Context, address, assetCode string, amount decimal.Decimal) error {
	if s.balances == nil {
		return nil
	}
	balance, err := s.balances.Balance(ctx, address, assetCode)
	if err != nil {
		s.notifier.Notify(domain.Notification{
			Severity:    domain.SeverityError,
			Title:       "Submission failed",
			Description: err.Error(),
		})
		return errors.Wrap(err, "balance query")
	}
	if balance.LessThan(amount) {
		s.notifier.Notify(domain.Notification{
			Severity:    domain.SeverityWarning,
			Title:       "Insufficient balance",
			Description: "have " + balance.String() + " " + assetCode + ", need " + amount.String(),
		})
		return ErrInsufficientBalance
	}
	return nil
}
