package transgate

import (
	"log/slog"

	"github.com/rbaliyan/transgate/payload"
)

var (
	// DefaultContentType is the MessagePack media type negotiated on.
	// See https://www.iana.org/assignments/media-types/application/vnd.msgpack.
	// Older implementations may use application/x-msgpack; override with
	// WithContentType.
	DefaultContentType = "application/vnd.msgpack"

	// JSONContentType is the media type presented to the application for
	// decoded request bodies and expected on encodable responses.
	JSONContentType = "application/json"
)

// gatewayConfig gateway configuration
type gatewayConfig struct {
	contentType    string
	naiveBuffering bool
	tracingEnabled bool
	metricsEnabled bool
	msgpack        payload.Codec
	json           payload.Codec
	logger         *slog.Logger
}

// newGatewayConfig get config with defaults applied
func newGatewayConfig() *gatewayConfig {
	return &gatewayConfig{
		contentType:    DefaultContentType,
		tracingEnabled: true,
		metricsEnabled: true,
		msgpack:        payload.MsgPack{},
		json:           payload.JSON{},
		logger:         slog.Default(),
	}
}

// Option gateway options
type Option func(*gatewayConfig)

// WithContentType set the MessagePack media type the gateway negotiates on.
// An empty value is ignored.
func WithContentType(v string) Option {
	return func(c *gatewayConfig) {
		if v != "" {
			c.contentType = v
		}
	}
}

// WithNaiveBuffering allow bodies split across multiple chunks to be
// buffered whole before transcoding. No size limit is enforced once
// enabled, so memory usage is bounded only by the peer.
func WithNaiveBuffering(v bool) Option {
	return func(c *gatewayConfig) {
		c.naiveBuffering = v
	}
}

// WithMsgPackCodec inject the codec used for the MessagePack side of the
// exchange. The codec must be safe for concurrent use.
func WithMsgPackCodec(codec payload.Codec) Option {
	return func(c *gatewayConfig) {
		if codec != nil {
			c.msgpack = codec
		}
	}
}

// WithJSONCodec inject the codec used for the JSON side of the exchange.
// The codec must be safe for concurrent use.
func WithJSONCodec(codec payload.Codec) Option {
	return func(c *gatewayConfig) {
		if codec != nil {
			c.json = codec
		}
	}
}

// WithTracing enable/disable OpenTelemetry tracing for exchanges
func WithTracing(v bool) Option {
	return func(c *gatewayConfig) {
		c.tracingEnabled = v
	}
}

// WithMetrics enable/disable OpenTelemetry metrics for exchanges
func WithMetrics(v bool) Option {
	return func(c *gatewayConfig) {
		c.metricsEnabled = v
	}
}

// WithLogger set logger for the gateway
func WithLogger(l *slog.Logger) Option {
	return func(c *gatewayConfig) {
		if l != nil {
			c.logger = l
		}
	}
}
