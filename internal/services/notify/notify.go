// Package notify routes transient user-facing messages to a sink.
package notify

import (
	"go.uber.org/zap"

	"github.com/puentelabs/puente/internal/domain"
)

// Sink renders a transient message somewhere the user can see it.
type Sink interface {
	Notify(n domain.Notification)
}

// ZapSink writes notifications to the log, mapping severity to log levels.
type ZapSink struct {
	logger *zap.Logger
}

// NewZapSink creates a ZapSink.
func NewZapSink(logger *zap.Logger) *ZapSink {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ZapSink{logger: logger}
}

// Notify logs the notification.
func (s *ZapSink) Notify(n domain.Notification) {
	fields := []zap.Field{zap.String("title", n.Title), zap.String("description", n.Description)}
	switch n.Severity {
	case domain.SeverityWarning:
		s.logger.Warn("notification", fields...)
	case domain.SeverityError:
		s.logger.Error("notification", fields...)
	default:
		s.logger.Info("notification", fields...)
	}
}

// NopSink discards everything.
type NopSink struct{}

// Notify does nothing.
func (NopSink) Notify(domain.Notification) {}

// FuncSink adapts a function to the Sink interface.
type FuncSink func(n domain.Notification)

// Notify calls the function.
func (f FuncSink) Notify(n domain.Notification) { f(n) }
