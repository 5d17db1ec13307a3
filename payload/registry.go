package payload

import (
	"mime"
	"strings"
	"sync"
)

var (
	mu       sync.RWMutex
	registry = map[string]Codec{
		"application/json": JSON{},
	}
)

// normalize strips media-type parameters and lower-cases the type, so
// "Application/JSON; charset=utf-8" keys the same entry as
// "application/json".
func normalize(contentType string) string {
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(strings.Split(contentType, ";")[0]))
	}
	return mt
}

// Register adds a codec to the global registry under its own ContentType().
// Codecs are looked up by media type during negotiation.
func Register(codec Codec) {
	RegisterAs(codec, codec.ContentType())
}

// RegisterAs adds a codec under an explicit media type, for codecs that
// must answer to more than one identifier (e.g. legacy MessagePack types).
func RegisterAs(codec Codec, contentType string) {
	mu.Lock()
	defer mu.Unlock()
	registry[normalize(contentType)] = codec
}

// Get retrieves a codec by media type from the global registry.
// Parameters (charset etc.) are ignored.
func Get(contentType string) (Codec, bool) {
	mu.RLock()
	defer mu.RUnlock()
	c, ok := registry[normalize(contentType)]
	return c, ok
}

// MustGet retrieves a codec by media type, returning the default JSON codec
// if the requested media type is not registered.
func MustGet(contentType string) Codec {
	if c, ok := Get(contentType); ok {
		return c
	}
	return JSON{}
}

// Negotiate picks a codec for an Accept header value. The header may list
// several media types separated by commas; the first one with a registered
// codec wins. Quality parameters are ignored. Returns false when nothing in
// the list is registered.
func Negotiate(accept string) (Codec, bool) {
	for _, part := range strings.Split(accept, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if c, ok := Get(part); ok {
			return c, true
		}
	}
	return nil, false
}
