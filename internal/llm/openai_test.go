package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/futureproof-labs/insight/config"
)

func TestCompleteSendsPromptAndTrims(t *testing.T) {
	var gotAuth string
	var gotReq chatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Fatalf("path: got %q", r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"  Final Answer: hi  \n"}}]}`))
	}))
	defer server.Close()

	p := NewOpenAIProvider(config.LLMConfig{
		APIKey:      "key",
		BaseURL:     server.URL,
		Model:       "gpt-4o",
		Temperature: 0.2,
	})
	got, err := p.Complete(context.Background(), "hello")
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if got != "Final Answer: hi" {
		t.Fatalf("got %q", got)
	}
	if gotAuth != "Bearer key" {
		t.Fatalf("auth header: got %q", gotAuth)
	}
	if gotReq.Model != "gpt-4o" || len(gotReq.Messages) != 1 || gotReq.Messages[0].Content != "hello" {
		t.Fatalf("request: got %+v", gotReq)
	}
}

func TestCompleteAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"rate limited","type":"rate_limit"}}`))
	}))
	defer server.Close()

	p := NewOpenAIProvider(config.LLMConfig{APIKey: "key", BaseURL: server.URL, Model: "gpt-4o"})
	_, err := p.Complete(context.Background(), "hello")
	if err == nil || !strings.Contains(err.Error(), "rate limited") {
		t.Fatalf("expected rate limit error, got %v", err)
	}
}

func TestCompleteMissingKey(t *testing.T) {
	p := NewOpenAIProvider(config.LLMConfig{Model: "gpt-4o"})
	if _, err := p.Complete(context.Background(), "hello"); err == nil {
		t.Fatalf("expected error without API key")
	}
}

func TestCompleteNoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer server.Close()

	p := NewOpenAIProvider(config.LLMConfig{APIKey: "key", BaseURL: server.URL, Model: "gpt-4o"})
	if _, err := p.Complete(context.Background(), "hello"); err == nil {
		t.Fatalf("expected error on empty choices")
	}
}

func TestNewProviderUnknownType(t *testing.T) {
	if _, err := NewProvider(config.LLMConfig{Type: "mystery"}); err == nil {
		t.Fatalf("expected error for unknown provider type")
	}
}
