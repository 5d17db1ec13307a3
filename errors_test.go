package transgate

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestDecodeError(t *testing.T) {
	inner := errors.New("unexpected byte")
	err := &DecodeError{ContentType: "application/vnd.msgpack", Err: inner}

	if !IsDecodeError(err) {
		t.Error("expected IsDecodeError to match")
	}
	if !errors.Is(err, inner) {
		t.Error("expected Unwrap to expose the codec error")
	}
	if !strings.Contains(err.Error(), "application/vnd.msgpack") {
		t.Errorf("expected content type in message, got %q", err.Error())
	}

	// Wrapped errors still match.
	wrapped := fmt.Errorf("handling exchange: %w", err)
	if !IsDecodeError(wrapped) {
		t.Error("expected IsDecodeError to match wrapped error")
	}
	if IsEncodeError(wrapped) {
		t.Error("decode error must not match IsEncodeError")
	}
}

func TestEncodeError(t *testing.T) {
	inner := errors.New("unsupported type")
	err := &EncodeError{ContentType: "application/json", Err: inner}

	if !IsEncodeError(err) {
		t.Error("expected IsEncodeError to match")
	}
	if !errors.Is(err, inner) {
		t.Error("expected Unwrap to expose the codec error")
	}
	if IsDecodeError(err) {
		t.Error("encode error must not match IsDecodeError")
	}
}

func TestSentinelErrors(t *testing.T) {
	wrapped := fmt.Errorf("request body: %w", ErrStreamingNotSupported)
	if !errors.Is(wrapped, ErrStreamingNotSupported) {
		t.Error("expected errors.Is to match wrapped sentinel")
	}
	if IsDecodeError(ErrStreamingNotSupported) {
		t.Error("sentinel must not match IsDecodeError")
	}
}
