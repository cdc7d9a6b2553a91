package assist

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

func TestAsk(t *testing.T) {
	respJSON := `{"choices":[{"message":{"role":"assistant","content":"Rotate with legumes."}}]}`

	var gotAuth string
	var gotReq chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewDecoder(r.Body).Decode(&gotReq)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, respJSON)
	}))
	defer srv.Close()

	c := NewClient("test-key", srv.URL, "anthropic/claude-opus-4")
	answer, err := c.Ask(context.Background(), "What should I plant after wheat?")
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}

	if answer != "Rotate with legumes." {
		t.Errorf("answer = %q, want %q", answer, "Rotate with legumes.")
	}
	if gotAuth != "Bearer test-key" {
		t.Errorf("Authorization = %q, want %q", gotAuth, "Bearer test-key")
	}
	if gotReq.Model != "anthropic/claude-opus-4" {
		t.Errorf("model = %q, want %q", gotReq.Model, "anthropic/claude-opus-4")
	}
	if len(gotReq.Messages) != 2 || gotReq.Messages[1].Content != "What should I plant after wheat?" {
		t.Errorf("messages = %+v", gotReq.Messages)
	}
}

func TestAsk_Unconfigured(t *testing.T) {
	c := NewClient("", "http://unused", "m")

	if c.Configured() {
		t.Error("Configured() = true for empty API key")
	}
	if _, err := c.Ask(context.Background(), "hi"); err != ErrNotConfigured {
		t.Errorf("Ask = %v, want ErrNotConfigured", err)
	}
}

func TestAsk_RetriesOnRateLimit(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		fmt.Fprint(w, `{"choices":[{"message":{"role":"assistant","content":"ok"}}]}`)
	}))
	defer srv.Close()

	c := NewClient("k", srv.URL, "m")
	answer, err := c.Ask(context.Background(), "q")
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}
	if answer != "ok" {
		t.Errorf("answer = %q, want %q", answer, "ok")
	}
	if calls.Load() != 2 {
		t.Errorf("upstream called %d times, want 2", calls.Load())
	}
}

func TestAsk_NoRetryOnServerError(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient("k", srv.URL, "m")
	if _, err := c.Ask(context.Background(), "q"); err == nil {
		t.Fatal("expected error for HTTP 500, got nil")
	}
	if calls.Load() != 1 {
		t.Errorf("upstream called %d times, want 1", calls.Load())
	}
}
