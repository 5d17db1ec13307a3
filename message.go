package transgate

import "context"

// MessageType tags a message in the duplex stream. The set is open: the
// gateway forwards any type it does not recognize without touching it.
type MessageType int

const (
	// TypeUnknown is the zero value. Messages with unknown types are
	// forwarded unmodified.
	TypeUnknown MessageType = iota
	// TypeRequestBody carries a chunk of the inbound request body.
	TypeRequestBody
	// TypeResponseBegin carries the response status and headers. It opens
	// the outbound side of an exchange.
	TypeResponseBegin
	// TypeResponseBody carries a chunk of the outbound response body.
	TypeResponseBody
	// TypeDisconnect signals that the peer went away. It is forwarded
	// immediately in either direction and never buffered.
	TypeDisconnect
)

// String returns a string representation of the message type.
func (t MessageType) String() string {
	switch t {
	case TypeRequestBody:
		return "request.body"
	case TypeResponseBegin:
		return "response.begin"
	case TypeResponseBody:
		return "response.body"
	case TypeDisconnect:
		return "disconnect"
	default:
		return "unknown"
	}
}

// Message is one ordered unit of the duplex stream between the transport,
// the gateway and the application.
type Message struct {
	// Type tags the message. Unknown types pass through the gateway.
	Type MessageType

	// Status is the response status code. Set on TypeResponseBegin only.
	Status int

	// Headers is the response envelope. Set on TypeResponseBegin only.
	Headers Headers

	// Body is the chunk payload for body-carrying messages.
	Body []byte

	// More reports whether further chunks of the same body follow.
	More bool
}

// Envelope is the metadata portion of an inbound exchange, delivered before
// any body chunk. The gateway mutates Headers before handing the envelope to
// the application.
type Envelope struct {
	Method  string
	Path    string
	Proto   string
	Headers Headers
}

// ReceiveFunc delivers the next inbound message. It blocks until a message
// is available or ctx is done.
type ReceiveFunc func(ctx context.Context) (Message, error)

// SendFunc forwards an outbound message to the transport.
type SendFunc func(ctx context.Context, msg Message) error

// App is the application wrapped by the gateway. It reads the request body
// through recv and produces its response through send: one TypeResponseBegin
// followed by one or more TypeResponseBody messages, the last with More
// unset.
type App func(ctx context.Context, env *Envelope, recv ReceiveFunc, send SendFunc) error
