package anthropic

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func serve(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := New("test-key", WithBaseURL(srv.URL), WithModel("test-model"), WithMaxTokens(1024))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}

func TestGenerate(t *testing.T) {
	c := serve(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/messages" {
			t.Errorf("path = %s, want /v1/messages", r.URL.Path)
		}
		if got := r.Header.Get("x-api-key"); got != "test-key" {
			t.Errorf("x-api-key = %q", got)
		}
		if r.Header.Get("anthropic-version") == "" {
			t.Error("anthropic-version header missing")
		}

		var req map[string]any
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req["model"] != "test-model" {
			t.Errorf("model = %v", req["model"])
		}
		if req["max_tokens"] != float64(1024) {
			t.Errorf("max_tokens = %v", req["max_tokens"])
		}

		_ = json.NewEncoder(w).Encode(map[string]any{
			"content": []map[string]string{
				{"type": "thinking", "text": ""},
				{"type": "text", "text": "## Executive Summary\nplan text"},
			},
		})
	})

	got, err := c.Generate(context.Background(), "system prompt", "user prompt")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if got != "## Executive Summary\nplan text" {
		t.Errorf("Generate = %q", got)
	}
}

func TestGenerate_EmptyTextBlock(t *testing.T) {
	c := serve(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"content": []map[string]string{
				{"type": "text", "text": ""},
				{"type": "text", "text": "never reached"},
			},
		})
	})

	got, err := c.Generate(context.Background(), "s", "u")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if got != "" {
		t.Errorf("got = %q, want first text block as-is", got)
	}
}

func TestGenerate_NoTextBlock(t *testing.T) {
	c := serve(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"content": []map[string]string{{"type": "tool_use"}},
		})
	})

	_, err := c.Generate(context.Background(), "s", "u")
	if !errors.Is(err, ErrNoTextContent) {
		t.Errorf("err = %v, want ErrNoTextContent", err)
	}
}

func TestGenerate_HTTPError(t *testing.T) {
	c := serve(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"type":"overloaded_error"}}`, http.StatusServiceUnavailable)
	})

	_, err := c.Generate(context.Background(), "s", "u")
	if err == nil {
		t.Fatal("expected error for non-200 status")
	}
}

func TestNew_RequiresKey(t *testing.T) {
	if _, err := New(""); err == nil {
		t.Error("expected error for empty api key")
	}
}
