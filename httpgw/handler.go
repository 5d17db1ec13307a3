// Package httpgw adapts the transcoding gateway to net/http.
//
// The handler wraps an inner http.Handler: MessagePack request bodies are
// decoded to JSON before the inner handler sees them, and JSON responses
// are re-encoded as MessagePack when the client asked for it via Accept.
//
//	mux := http.NewServeMux()
//	mux.HandleFunc("/orders", ordersHandler)
//	h := httpgw.New(mux, httpgw.WithGatewayOptions(transgate.WithNaiveBuffering(true)))
//	http.ListenAndServe(":8080", h)
//
// Responses from the inner handler are buffered whole before forwarding;
// incremental flushing is not propagated. Chunked request bodies count as
// streamed for the gateway's buffering policy and are rejected with
// 501 Not Implemented unless naive buffering is enabled.
package httpgw

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/rbaliyan/transgate"
	"github.com/rbaliyan/transgate/ratelimit"
)

// requestKey carries the original *http.Request through the gateway to the
// inner handler.
type requestKey struct{}

// readChunkSize is the read size for request bodies of unknown length.
const readChunkSize = 32 << 10

// handlerConfig handler configuration
type handlerConfig struct {
	gwOpts  []transgate.Option
	limiter ratelimit.Limiter
	logger  *slog.Logger
}

// Option handler options
type Option func(*handlerConfig)

// WithGatewayOptions pass options through to the underlying gateway.
func WithGatewayOptions(opts ...transgate.Option) Option {
	return func(c *handlerConfig) {
		c.gwOpts = append(c.gwOpts, opts...)
	}
}

// WithLimiter guard the handler with a rate limiter. Requests that exceed
// the limit are rejected with 429 before any buffering happens. Buffered
// transcoding holds whole bodies in memory, so a limiter is the practical
// cap on memory usage when naive buffering is enabled.
func WithLimiter(l ratelimit.Limiter) Option {
	return func(c *handlerConfig) {
		c.limiter = l
	}
}

// WithLogger set logger for the handler
func WithLogger(l *slog.Logger) Option {
	return func(c *handlerConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// Handler implements http.Handler around an inner handler and a transcoding
// gateway.
type Handler struct {
	next    http.Handler
	gw      *transgate.Gateway
	limiter ratelimit.Limiter
	logger  *slog.Logger
}

// New creates an HTTP middleware around next.
func New(next http.Handler, opts ...Option) *Handler {
	cfg := &handlerConfig{logger: slog.Default()}
	for _, opt := range opts {
		opt(cfg)
	}
	h := &Handler{
		next:    next,
		limiter: cfg.limiter,
		logger:  cfg.logger,
	}
	gwOpts := append([]transgate.Option{transgate.WithLogger(cfg.logger)}, cfg.gwOpts...)
	h.gw = transgate.New(h.run, gwOpts...)
	return h
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.limiter != nil && !h.limiter.Allow(r.Context()) {
		h.logger.WarnContext(r.Context(), "rate limit exceeded",
			"method", r.Method,
			"path", r.URL.Path,
		)
		http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
		return
	}

	env := &transgate.Envelope{
		Method:  r.Method,
		Path:    r.URL.Path,
		Proto:   r.Proto,
		Headers: fromHTTPHeader(r.Header),
	}
	fw := &forwardWriter{w: w}
	ctx := context.WithValue(r.Context(), requestKey{}, r)

	err := h.gw.Handle(ctx, env, newRequestReceiver(r), fw.send)
	if err == nil {
		return
	}
	if fw.wroteHeader {
		// Too late for an error status; the gateway already logged it.
		return
	}
	http.Error(w, http.StatusText(statusForError(err)), statusForError(err))
}

// run is the gateway-side application: it collects the (already transcoded)
// request body, replays the request against the inner handler and forwards
// the captured response through send.
func (h *Handler) run(ctx context.Context, env *transgate.Envelope, recv transgate.ReceiveFunc, send transgate.SendFunc) error {
	var body bytes.Buffer
	for {
		msg, err := recv(ctx)
		if err != nil {
			return err
		}
		if msg.Type == transgate.TypeDisconnect {
			break
		}
		if msg.Type != transgate.TypeRequestBody {
			continue
		}
		body.Write(msg.Body)
		if !msg.More {
			break
		}
	}

	orig, _ := ctx.Value(requestKey{}).(*http.Request)
	if orig == nil {
		return errors.New("httpgw: request missing from context")
	}

	r := orig.Clone(ctx)
	r.Body = io.NopCloser(bytes.NewReader(body.Bytes()))
	r.ContentLength = int64(body.Len())
	r.TransferEncoding = nil
	r.Header = toHTTPHeader(env.Headers)
	if body.Len() > 0 {
		r.Header.Set("Content-Length", strconv.Itoa(body.Len()))
	}

	rec := &captureWriter{header: make(http.Header)}
	h.next.ServeHTTP(rec, r)

	begin := transgate.Message{
		Type:    transgate.TypeResponseBegin,
		Status:  rec.statusOrDefault(),
		Headers: fromHTTPHeader(rec.header),
	}
	if err := send(ctx, begin); err != nil {
		return err
	}
	return send(ctx, transgate.Message{
		Type: transgate.TypeResponseBody,
		Body: rec.body.Bytes(),
	})
}

// newRequestReceiver turns an HTTP request body into the gateway's inbound
// message stream. Bodies with a known length arrive as a single message;
// bodies of unknown length (chunked transfer) arrive as continuation chunks
// and therefore trip the buffering policy unless naive buffering is on.
func newRequestReceiver(r *http.Request) transgate.ReceiveFunc {
	var done bool
	return func(ctx context.Context) (transgate.Message, error) {
		if err := ctx.Err(); err != nil {
			return transgate.Message{}, err
		}
		if done {
			return transgate.Message{Type: transgate.TypeDisconnect}, nil
		}
		if r.ContentLength >= 0 {
			body, err := io.ReadAll(r.Body)
			if err != nil {
				return transgate.Message{}, err
			}
			done = true
			return transgate.Message{Type: transgate.TypeRequestBody, Body: body}, nil
		}

		buf := make([]byte, readChunkSize)
		n, err := r.Body.Read(buf)
		chunk := append([]byte(nil), buf[:n]...)
		switch {
		case err == nil:
			return transgate.Message{Type: transgate.TypeRequestBody, Body: chunk, More: true}, nil
		case errors.Is(err, io.EOF):
			done = true
			return transgate.Message{Type: transgate.TypeRequestBody, Body: chunk}, nil
		default:
			return transgate.Message{}, err
		}
	}
}

// forwardWriter translates outbound gateway messages into writes on the
// real http.ResponseWriter.
type forwardWriter struct {
	w           http.ResponseWriter
	wroteHeader bool
}

func (fw *forwardWriter) send(ctx context.Context, msg transgate.Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	switch msg.Type {
	case transgate.TypeResponseBegin:
		dst := fw.w.Header()
		for key, vals := range msg.Headers {
			dst[key] = vals
		}
		status := msg.Status
		if status == 0 {
			status = http.StatusOK
		}
		fw.w.WriteHeader(status)
		fw.wroteHeader = true
	case transgate.TypeResponseBody:
		if !fw.wroteHeader {
			fw.w.WriteHeader(http.StatusOK)
			fw.wroteHeader = true
		}
		if _, err := fw.w.Write(msg.Body); err != nil {
			return err
		}
	}
	return nil
}

// captureWriter buffers the inner handler's response so the gateway can
// transcode it whole.
type captureWriter struct {
	header http.Header
	status int
	body   bytes.Buffer
}

func (c *captureWriter) Header() http.Header {
	return c.header
}

func (c *captureWriter) WriteHeader(status int) {
	if c.status == 0 {
		c.status = status
	}
}

func (c *captureWriter) Write(p []byte) (int, error) {
	if c.status == 0 {
		c.status = http.StatusOK
	}
	return c.body.Write(p)
}

func (c *captureWriter) statusOrDefault() int {
	if c.status == 0 {
		return http.StatusOK
	}
	return c.status
}

// statusForError maps gateway errors to HTTP status codes. Malformed client
// input is a 400; a streamed body without the buffering opt-in is a 501; app
// side failures are 500.
func statusForError(err error) int {
	switch {
	case errors.Is(err, transgate.ErrStreamingNotSupported):
		return http.StatusNotImplemented
	case transgate.IsDecodeError(err):
		var decodeErr *transgate.DecodeError
		errors.As(err, &decodeErr)
		if decodeErr.ContentType == transgate.JSONContentType {
			// The inner handler produced a body that claimed to be JSON
			// but was not.
			return http.StatusInternalServerError
		}
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// fromHTTPHeader converts an http.Header to gateway headers.
func fromHTTPHeader(h http.Header) transgate.Headers {
	out := make(transgate.Headers, len(h))
	for key, vals := range h {
		out[key] = append([]string(nil), vals...)
	}
	return out
}

// toHTTPHeader converts gateway headers back to an http.Header.
func toHTTPHeader(h transgate.Headers) http.Header {
	out := make(http.Header, len(h))
	for key, vals := range h {
		out[key] = append([]string(nil), vals...)
	}
	return out
}
