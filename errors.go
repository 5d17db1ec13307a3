package transgate

import (
	"errors"
	"fmt"
)

var (
	// ErrStreamingNotSupported indicates a body arrived in multiple chunks
	// while naive buffering is disabled. The gateway reports it on the first
	// continuation chunk, before any partial transcoding happens.
	// Enable buffering with WithNaiveBuffering(true) to accept such bodies.
	ErrStreamingNotSupported = errors.New("streamed body not supported without naive buffering")

	// ErrReceiveNotAttached is returned when a receive function was never
	// wired to an exchange. This is a programming error in the transport
	// integration, not a runtime condition.
	ErrReceiveNotAttached = errors.New("receive function not attached")

	// ErrSendNotAttached is the send-side counterpart of
	// ErrReceiveNotAttached.
	ErrSendNotAttached = errors.New("send function not attached")
)

// DecodeError indicates the buffered body could not be decoded with the
// negotiated codec. The malformed bytes are never forwarded; the error
// surfaces to the transport layer instead.
type DecodeError struct {
	// ContentType is the media type the body claimed to be.
	ContentType string
	// Err is the underlying codec error.
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s body: %v", e.ContentType, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// IsDecodeError checks if an error indicates a body decode failure.
func IsDecodeError(err error) bool {
	var decodeErr *DecodeError
	return errors.As(err, &decodeErr)
}

// EncodeError indicates a successfully decoded body could not be re-encoded
// with the target codec.
type EncodeError struct {
	// ContentType is the media type the body was being encoded to.
	ContentType string
	// Err is the underlying codec error.
	Err error
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("encode %s body: %v", e.ContentType, e.Err)
}

func (e *EncodeError) Unwrap() error {
	return e.Err
}

// IsEncodeError checks if an error indicates a body encode failure.
func IsEncodeError(err error) bool {
	var encodeErr *EncodeError
	return errors.As(err, &encodeErr)
}
