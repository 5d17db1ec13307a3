// Package transgate provides a transcoding gateway that converts request and
// response bodies between MessagePack and JSON based on declared content types.
//
// The gateway wraps an application that consumes a duplex message stream
// (begin, body chunks with a continuation flag, disconnect). It inspects the
// Content-Type and Accept headers once per exchange, buffers complete bodies
// in memory, transcodes them with pluggable codecs, and rewrites the headers
// so both sides see a consistent envelope. Anything it does not recognize is
// forwarded unchanged.
//
// Basic example:
//
//	app := func(ctx context.Context, env *transgate.Envelope, recv transgate.ReceiveFunc, send transgate.SendFunc) error {
//	    // env.Headers carries "Content-Type: application/json" even when the
//	    // client sent MessagePack; recv returns the body as JSON bytes.
//	    ...
//	}
//
//	gw := transgate.New(app)
//	err := gw.Handle(ctx, env, recv, send)
//
// Negotiation:
//   - A request with Content-Type matching the configured MessagePack media
//     type is decoded and handed to the application as JSON, with the
//     forwarded Content-Type rewritten to application/json.
//   - When Accept lists the MessagePack media type and the application
//     responds with JSON, the response body is re-encoded as MessagePack and
//     Content-Type/Content-Length are rewritten.
//   - When neither applies the exchange is a byte-for-byte passthrough.
//
// Buffering:
// Bodies are always buffered whole before transcoding; there is no
// chunk-at-a-time transcoding. A body split across multiple chunks is only
// accepted when naive buffering is enabled with WithNaiveBuffering(true),
// and then without any size limit - callers accept the memory cost.
// Otherwise the gateway fails fast with ErrStreamingNotSupported on the
// first continuation chunk.
//
// Gateway Options:
//   - WithContentType: set the MessagePack media type to negotiate on.
//     Default is application/vnd.msgpack; older peers may need
//     application/x-msgpack.
//   - WithNaiveBuffering: allow multi-chunk bodies to be buffered.
//   - WithMsgPackCodec / WithJSONCodec: inject the codecs used for the
//     MessagePack and JSON sides. Defaults are payload.MsgPack and
//     payload.JSON.
//   - WithTracing / WithMetrics: enable/disable OpenTelemetry tracing and
//     metrics. Default is true.
//   - WithLogger: set a structured logger for the gateway.
//
// Exchanges are independent: the gateway keeps no state across exchanges and
// a single Gateway may serve any number of them concurrently, provided the
// injected codecs are safe for concurrent use (the defaults are).
//
// The httpgw subpackage adapts the gateway to net/http, and the payload
// subpackage holds the codec implementations and content-type registry.
package transgate
