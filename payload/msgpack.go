package payload

import "github.com/vmihailenco/msgpack/v5"

// MsgPack implements Codec using MessagePack serialization.
// MessagePack is a binary format that's more compact than JSON
// while maintaining schema-less flexibility.
//
// The registered content type is application/vnd.msgpack, the IANA
// assignment. Peers that still use application/x-msgpack can be served by
// registering the codec again under AltContentType:
//
//	payload.RegisterAs(payload.MsgPack{}, payload.MsgPack{}.AltContentType())
type MsgPack struct{}

// Encode serializes the payload to MessagePack bytes.
func (MsgPack) Encode(v any) ([]byte, error) {
	return msgpack.Marshal(v)
}

// Decode deserializes MessagePack bytes to the target type.
func (MsgPack) Decode(data []byte, v any) error {
	return msgpack.Unmarshal(data, v)
}

// ContentType returns the MIME type for MessagePack.
func (MsgPack) ContentType() string {
	return "application/vnd.msgpack"
}

// AltContentType returns the legacy MessagePack MIME type still used by
// older implementations.
func (MsgPack) AltContentType() string {
	return "application/x-msgpack"
}

// Compile-time check.
var _ Codec = MsgPack{}

func init() {
	Register(MsgPack{})
}
