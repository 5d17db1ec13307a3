package transgate

import (
	"context"
	"log/slog"
)

const (
	exchangeContextKey contextKey = iota
)

type exchangeContextData struct {
	exchangeID string
	logger     *slog.Logger
}

// contextKey
type contextKey int

// ContextExchangeID get the exchange id stored in context
func ContextExchangeID(ctx context.Context) string {
	s, ok := ctx.Value(exchangeContextKey).(*exchangeContextData)
	if ok {
		return s.exchangeID
	}
	return ""
}

// ContextLogger get the logger stored in context. Falls back to
// slog.Default when the context carries no exchange data.
func ContextLogger(ctx context.Context) *slog.Logger {
	s, ok := ctx.Value(exchangeContextKey).(*exchangeContextData)
	if ok && s.logger != nil {
		return s.logger
	}
	return slog.Default()
}

// ContextWithLogger generate a context with the provided logger
func ContextWithLogger(ctx context.Context, l *slog.Logger) context.Context {
	if l == nil {
		return ctx
	}
	s, ok := ctx.Value(exchangeContextKey).(*exchangeContextData)
	if ok {
		s.logger = l
		return ctx
	}
	return context.WithValue(ctx, exchangeContextKey, &exchangeContextData{logger: l})
}

func contextWithExchange(ctx context.Context, exchangeID string, l *slog.Logger) context.Context {
	return context.WithValue(ctx, exchangeContextKey, &exchangeContextData{
		exchangeID: exchangeID,
		logger:     l,
	})
}
