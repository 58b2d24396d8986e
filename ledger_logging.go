package burnguard

import (
	"context"
	"log/slog"
	"time"
)

// LedgerOp names the ledger operation that produced a log event.
type LedgerOp string

const (
	OpActivate   LedgerOp = "activate"
	OpApply      LedgerOp = "apply"
	OpDeactivate LedgerOp = "deactivate"
)

// LedgerLogEvent describes one per-identifier outcome.
type LedgerLogEvent struct {
	Op         LedgerOp
	Identifier string
	ActorID    string
	Outcome    string
	Original   ValuePair
	Value      ValuePair
	At         time.Time
	Err        error
}

// LedgerLogger records ledger events.
type LedgerLogger interface {
	LogLedger(LedgerLogEvent)
}

// LedgerLoggerFunc adapts a function to LedgerLogger.
type LedgerLoggerFunc func(LedgerLogEvent)

// LogLedger implements LedgerLogger.
func (f LedgerLoggerFunc) LogLedger(event LedgerLogEvent) {
	if f != nil {
		f(event)
	}
}

type noopLedgerLogger struct{}

func (noopLedgerLogger) LogLedger(LedgerLogEvent) {}

// WithLogger attaches a ledger logger. A nil logger disables logging.
func WithLogger(logger LedgerLogger) Option {
	return func(cfg *ledgerConfig) {
		if logger == nil {
			cfg.logger = noopLedgerLogger{}
			return
		}
		cfg.logger = logger
	}
}

// NewSlogLogger returns a LedgerLogger writing structured records to logger.
// Missing lookups and hook failures log at warn level, everything else at debug.
func NewSlogLogger(logger *slog.Logger) LedgerLogger {
	if logger == nil {
		logger = slog.Default()
	}
	return LedgerLoggerFunc(func(event LedgerLogEvent) {
		level := slog.LevelDebug
		if event.Outcome == "missing" || event.Err != nil {
			level = slog.LevelWarn
		}
		attrs := []slog.Attr{
			slog.String("op", string(event.Op)),
			slog.String("identifier", event.Identifier),
			slog.String("outcome", event.Outcome),
			slog.String("original", event.Original.String()),
		}
		if event.Outcome == "applied" || event.Outcome == "restored" {
			attrs = append(attrs, slog.String("value", event.Value.String()))
		}
		if event.ActorID != "" {
			attrs = append(attrs, slog.String("actor", event.ActorID))
		}
		if event.Err != nil {
			attrs = append(attrs, slog.String("error", event.Err.Error()))
		}
		logger.LogAttrs(context.Background(), level, "burnguard ledger", attrs...)
	})
}
