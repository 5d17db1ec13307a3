package transgate

import (
	"context"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const (
	spanKeyExchangeID        = "exchange.id"
	spanKeyExchangeMethod    = "exchange.method"
	spanKeyExchangePath      = "exchange.path"
	spanKeyDecodeRequest     = "exchange.decode_request"
	spanKeyEncodeResponse    = "exchange.encode_response"
	attrKeyExchangeMode      = "mode"
	attrKeyExchangeOutcome   = "outcome"
	exchangeModeTranscode    = "transcode"
	exchangeModePassthrough  = "passthrough"
	exchangeOutcomeOK        = "ok"
	exchangeOutcomeError     = "error"
	instrumentationScopeName = "transgate"
)

// Gateway wraps an application and transcodes request/response bodies
// between MessagePack and JSON. A Gateway is immutable after New and safe
// for concurrent use; all per-exchange state lives in Handle.
type Gateway struct {
	app App
	cfg *gatewayConfig
}

// New creates a gateway around the provided application.
func New(app App, opts ...Option) *Gateway {
	cfg := newGatewayConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return &Gateway{app: app, cfg: cfg}
}

// ContentType returns the MessagePack media type the gateway negotiates on.
func (g *Gateway) ContentType() string {
	return g.cfg.contentType
}

// Handle processes one exchange. It computes the negotiated encoding from
// env.Headers, rewrites the forwarded envelope, and runs the application
// with recv/send wrapped to buffer and transcode bodies as negotiated.
//
// env is mutated: when the request body will be decoded, Content-Type is
// rewritten to application/json and Content-Length is dropped (the decoded
// length is unknown until the body is buffered).
//
// Errors from the application, the transport and the codecs are returned
// as-is; check with IsDecodeError, IsEncodeError and
// errors.Is(err, ErrStreamingNotSupported).
func (g *Gateway) Handle(ctx context.Context, env *Envelope, recv ReceiveFunc, send SendFunc) error {
	if recv == nil {
		return ErrReceiveNotAttached
	}
	if send == nil {
		return ErrSendNotAttached
	}

	exchangeID := uuid.NewString()
	ex := newExchange(g.cfg, env)
	ctx = contextWithExchange(ctx, exchangeID, g.cfg.logger)

	if g.cfg.tracingEnabled {
		tracer := otel.Tracer(instrumentationScopeName)
		var span trace.Span
		ctx, span = tracer.Start(ctx, "transgate.exchange",
			trace.WithAttributes(
				attribute.String(spanKeyExchangeID, exchangeID),
				attribute.String(spanKeyExchangeMethod, env.Method),
				attribute.String(spanKeyExchangePath, env.Path),
				attribute.Bool(spanKeyDecodeRequest, ex.decodeRequest),
				attribute.Bool(spanKeyEncodeResponse, ex.encodeResponse)),
			trace.WithSpanKind(trace.SpanKindInternal))
		defer span.End()
	}

	err := g.app(ctx, env, ex.receive(recv), ex.send(send))
	if err != nil {
		g.cfg.logger.ErrorContext(ctx, "exchange failed",
			"exchange_id", exchangeID,
			"method", env.Method,
			"path", env.Path,
			"error", err,
		)
	}

	if g.cfg.metricsEnabled {
		meter := otel.Meter(instrumentationScopeName)
		handled, _ := meter.Int64Counter("transgate.exchanges",
			metric.WithDescription("Total number of exchanges handled"))
		mode := exchangeModePassthrough
		if ex.decodeRequest || ex.encodeResponse {
			mode = exchangeModeTranscode
		}
		outcome := exchangeOutcomeOK
		if err != nil {
			outcome = exchangeOutcomeError
		}
		handled.Add(ctx, 1, metric.WithAttributes(
			attribute.String(attrKeyExchangeMode, mode),
			attribute.String(attrKeyExchangeOutcome, outcome)))
	}

	return err
}
