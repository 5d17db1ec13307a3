// Package payload provides body serialization/deserialization for the
// transcoding gateway.
//
// A Codec pairs an encode/decode implementation with the media type it
// produces. The gateway holds one codec per side of an exchange
// (MessagePack outside, JSON inside); the registry maps media types to
// codecs for Accept-header negotiation.
//
// Usage:
//
//	// Inject a custom MessagePack codec
//	gw := transgate.New(app, transgate.WithMsgPackCodec(myCodec))
//
//	// Negotiate a response codec from an Accept header
//	codec, ok := payload.Negotiate(r.Header.Get("Accept"))
package payload

// Codec encodes/decodes a body payload.
// Implementations must be safe for concurrent use.
type Codec interface {
	// Encode serializes the payload to bytes.
	Encode(v any) ([]byte, error)

	// Decode deserializes bytes to the target type.
	// The target must be a pointer.
	Decode(data []byte, v any) error

	// ContentType returns the MIME type (e.g., "application/json").
	ContentType() string
}

// Default returns the default codec (JSON).
func Default() Codec {
	return JSON{}
}
