package transgate

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
)

// exchangeState tracks one direction of an exchange.
type exchangeState int

const (
	// stateAwaitingHeaders - the direction has not seen its envelope yet.
	stateAwaitingHeaders exchangeState = iota
	// statePassthrough - no transcoding negotiated, messages forwarded as-is.
	statePassthrough
	// stateBuffering - body chunks are being accumulated.
	stateBuffering
	// stateForwarded - the transcoded body has been handed on.
	stateForwarded
	// stateDone - the direction is complete.
	stateDone
)

// String returns a string representation of the exchange state.
func (s exchangeState) String() string {
	switch s {
	case stateAwaitingHeaders:
		return "awaiting_headers"
	case statePassthrough:
		return "passthrough"
	case stateBuffering:
		return "buffering"
	case stateForwarded:
		return "forwarded"
	case stateDone:
		return "done"
	default:
		return fmt.Sprintf("unknown(%d)", s)
	}
}

// exchange holds the per-exchange transcoding state: the negotiated
// encoding, one state machine and buffer per direction, and the held
// response begin message. It is created in Handle and discarded when the
// exchange completes; nothing is shared across exchanges.
type exchange struct {
	cfg *gatewayConfig

	// Negotiated once from the inbound envelope. encodeResponse is an
	// initial guess: it is revoked when the application's response turns
	// out not to be JSON.
	decodeRequest  bool
	encodeResponse bool

	reqState  exchangeState
	respState exchangeState
	reqBuf    bytes.Buffer
	respBuf   bytes.Buffer

	// begin is the response begin message held back until the complete
	// body is available and Content-Length can be computed.
	begin Message
}

// newExchange computes the negotiated encoding from env.Headers and rewrites
// the forwarded envelope. When the request will be decoded, the application
// sees Content-Type: application/json; Content-Length is dropped because the
// decoded length is unknown until the body has been buffered.
func newExchange(cfg *gatewayConfig, env *Envelope) *exchange {
	ex := &exchange{
		cfg:       cfg,
		reqState:  statePassthrough,
		respState: statePassthrough,
	}
	if env.Headers == nil {
		env.Headers = NewHeaders()
	}
	ex.decodeRequest = env.Headers.ContentType() == cfg.contentType
	ex.encodeResponse = env.Headers.Accepts(cfg.contentType)
	if ex.decodeRequest {
		env.Headers.Set("Content-Type", JSONContentType)
		env.Headers.Del("Content-Length")
		ex.reqState = stateBuffering
	}
	if ex.encodeResponse {
		ex.respState = stateAwaitingHeaders
	}
	return ex
}

// receive wraps the transport receive function with request-body decoding.
func (ex *exchange) receive(next ReceiveFunc) ReceiveFunc {
	return func(ctx context.Context) (Message, error) {
		msg, err := next(ctx)
		if err != nil {
			return msg, err
		}
		if ex.reqState != stateBuffering || msg.Type != TypeRequestBody {
			// Disconnects and unknown message types pass straight through,
			// as does everything once the body has been handed over.
			return msg, nil
		}

		if msg.More && !ex.cfg.naiveBuffering {
			return Message{}, ErrStreamingNotSupported
		}

		ex.reqBuf.Write(msg.Body)
		if msg.More {
			// Keep the application reading; the real body arrives with the
			// final chunk.
			msg.Body = nil
			return msg, nil
		}

		body, err := ex.transcodeRequest()
		if err != nil {
			return Message{}, err
		}
		ex.reqState = stateDone
		msg.Body = body
		return msg, nil
	}
}

// send wraps the transport send function with response-body encoding.
func (ex *exchange) send(next SendFunc) SendFunc {
	return func(ctx context.Context, msg Message) error {
		switch ex.respState {
		case stateAwaitingHeaders:
			if msg.Type != TypeResponseBegin {
				// Disconnects and unknown types are forwarded even before
				// the response opens.
				return next(ctx, msg)
			}
			if msg.Headers.ContentType() != JSONContentType {
				// Client accepts MessagePack, but the application did not
				// respond with JSON. It may even have sent MessagePack
				// itself; either way there is nothing to transcode.
				ex.encodeResponse = false
				ex.respState = statePassthrough
				return next(ctx, msg)
			}
			ex.begin = msg
			ex.respState = stateBuffering
			return nil

		case stateBuffering:
			if msg.Type != TypeResponseBody {
				return next(ctx, msg)
			}
			if msg.More && !ex.cfg.naiveBuffering {
				return ErrStreamingNotSupported
			}
			ex.respBuf.Write(msg.Body)
			if msg.More {
				return nil
			}

			body, err := ex.transcodeResponse()
			if err != nil {
				return err
			}
			ex.begin.Headers.Set("Content-Type", ex.cfg.contentType)
			ex.begin.Headers.Set("Content-Length", strconv.Itoa(len(body)))
			ex.respState = stateForwarded
			if err := next(ctx, ex.begin); err != nil {
				return err
			}
			msg.Body = body
			if err := next(ctx, msg); err != nil {
				return err
			}
			ex.respState = stateDone
			return nil

		default:
			return next(ctx, msg)
		}
	}
}

// transcodeRequest converts the buffered MessagePack request body to JSON.
func (ex *exchange) transcodeRequest() ([]byte, error) {
	var v any
	if err := ex.cfg.msgpack.Decode(ex.reqBuf.Bytes(), &v); err != nil {
		return nil, &DecodeError{ContentType: ex.cfg.contentType, Err: err}
	}
	out, err := ex.cfg.json.Encode(v)
	if err != nil {
		return nil, &EncodeError{ContentType: JSONContentType, Err: err}
	}
	return out, nil
}

// transcodeResponse converts the buffered JSON response body to MessagePack.
func (ex *exchange) transcodeResponse() ([]byte, error) {
	var v any
	if err := ex.cfg.json.Decode(ex.respBuf.Bytes(), &v); err != nil {
		return nil, &DecodeError{ContentType: JSONContentType, Err: err}
	}
	out, err := ex.cfg.msgpack.Encode(v)
	if err != nil {
		return nil, &EncodeError{ContentType: ex.cfg.contentType, Err: err}
	}
	return out, nil
}
