package transgate

import (
	"fmt"
	"mime"
	"net/textproto"
	"sort"
	"strings"
)

// Headers is a case-insensitive header multimap. Keys are stored in
// canonical MIME form, so Get("content-type") and Get("Content-Type") are
// equivalent.
type Headers map[string][]string

// NewHeaders creates an empty header map.
func NewHeaders() Headers {
	return Headers{}
}

// Get returns the first value for the provided key, or "".
func (h Headers) Get(key string) string {
	if h == nil {
		return ""
	}
	if v, ok := h[textproto.CanonicalMIMEHeaderKey(key)]; ok && len(v) > 0 {
		return v[0]
	}
	return ""
}

// Values returns all values for the provided key.
func (h Headers) Values(key string) []string {
	if h == nil {
		return nil
	}
	return h[textproto.CanonicalMIMEHeaderKey(key)]
}

// Set replaces all values for the key with the single provided value.
func (h Headers) Set(key, value string) Headers {
	h[textproto.CanonicalMIMEHeaderKey(key)] = []string{value}
	return h
}

// Add appends a value to the key.
func (h Headers) Add(key, value string) Headers {
	k := textproto.CanonicalMIMEHeaderKey(key)
	h[k] = append(h[k], value)
	return h
}

// Del removes all values for the key.
func (h Headers) Del(key string) {
	delete(h, textproto.CanonicalMIMEHeaderKey(key))
}

// ContentType returns the media type of the Content-Type header with any
// parameters (charset etc.) stripped, lower-cased. Returns "" when the
// header is absent or unparseable.
func (h Headers) ContentType() string {
	ct := h.Get("Content-Type")
	if ct == "" {
		return ""
	}
	mt, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(strings.Split(ct, ";")[0]))
	}
	return mt
}

// Accepts reports whether the Accept header lists the provided media type.
// Each Accept value may itself be a comma-separated list; quality
// parameters are ignored.
func (h Headers) Accepts(mediaType string) bool {
	mediaType = strings.ToLower(mediaType)
	for _, v := range h.Values("Accept") {
		for _, part := range strings.Split(v, ",") {
			mt, _, err := mime.ParseMediaType(strings.TrimSpace(part))
			if err != nil {
				continue
			}
			if mt == mediaType {
				return true
			}
		}
	}
	return false
}

// Copy returns a deep copy of the headers.
func (h Headers) Copy() Headers {
	if h == nil {
		return nil
	}
	h1 := make(Headers, len(h))
	for key, vals := range h {
		h1[key] = append([]string(nil), vals...)
	}
	return h1
}

// Convert headers to string
func (h Headers) String() string {
	if h == nil {
		return ""
	}
	keys := make([]string, 0, len(h))
	for key := range h {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	vals := make([]string, 0, len(keys))
	for _, key := range keys {
		vals = append(vals, fmt.Sprintf("%s=%s", key, strings.Join(h[key], ", ")))
	}
	return fmt.Sprintf("Headers{%s}", strings.Join(vals, ", "))
}
