package httpgw

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/vmihailenco/msgpack/v5"
)

func TestWriteMsgPack(t *testing.T) {
	w := httptest.NewRecorder()
	if err := WriteMsgPack(w, http.StatusCreated, map[string]string{"id": "o-1"}); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	if w.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", w.Code)
	}
	if got := w.Header().Get("Content-Type"); got != "application/vnd.msgpack" {
		t.Errorf("expected msgpack content type, got %q", got)
	}

	var decoded map[string]string
	if err := msgpack.Unmarshal(w.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid MessagePack body: %v", err)
	}
	if decoded["id"] != "o-1" {
		t.Errorf("expected id=o-1, got %v", decoded)
	}
}

func TestWriteJSON(t *testing.T) {
	w := httptest.NewRecorder()
	if err := WriteJSON(w, http.StatusOK, map[string]int{"a": 1}); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if got := w.Header().Get("Content-Type"); got != "application/json" {
		t.Errorf("expected json content type, got %q", got)
	}
	var decoded map[string]int
	if err := json.Unmarshal(w.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	if decoded["a"] != 1 {
		t.Errorf("expected a=1, got %v", decoded)
	}
}

func TestRender(t *testing.T) {
	tests := []struct {
		name     string
		accept   string
		wantType string
	}{
		{"msgpack", "application/vnd.msgpack", "application/vnd.msgpack"},
		{"json", "application/json", "application/json"},
		{"fallback", "text/html", "application/json"},
		{"none", "", "application/json"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/", nil)
			if tt.accept != "" {
				r.Header.Set("Accept", tt.accept)
			}
			w := httptest.NewRecorder()
			if err := Render(w, r, http.StatusOK, map[string]string{"k": "v"}); err != nil {
				t.Fatalf("render failed: %v", err)
			}
			if got := w.Header().Get("Content-Type"); got != tt.wantType {
				t.Errorf("expected %q, got %q", tt.wantType, got)
			}
		})
	}
}
