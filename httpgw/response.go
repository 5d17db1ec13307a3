package httpgw

import (
	"net/http"
	"strconv"

	"github.com/rbaliyan/transgate/payload"
)

// WriteMsgPack writes v as a MessagePack response with the given status.
// Content-Type and Content-Length are set from the encoded body.
func WriteMsgPack(w http.ResponseWriter, status int, v any) error {
	return write(w, status, v, payload.MsgPack{})
}

// WriteJSON writes v as a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) error {
	return write(w, status, v, payload.JSON{})
}

// Render writes v encoded with a codec negotiated from the request's Accept
// header via the payload registry. Falls back to JSON when nothing in the
// Accept list is registered.
func Render(w http.ResponseWriter, r *http.Request, status int, v any) error {
	codec, ok := payload.Negotiate(r.Header.Get("Accept"))
	if !ok {
		codec = payload.Default()
	}
	return write(w, status, v, codec)
}

func write(w http.ResponseWriter, status int, v any, codec payload.Codec) error {
	body, err := codec.Encode(v)
	if err != nil {
		return err
	}
	w.Header().Set("Content-Type", codec.ContentType())
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(status)
	_, err = w.Write(body)
	return err
}
