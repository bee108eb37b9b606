package providers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func openAICompletion(content string, tokens int) map[string]any {
	return map[string]any{
		"id":      "chatcmpl-1",
		"object":  "chat.completion",
		"created": 1700000000,
		"model":   "gpt-4.1-mini",
		"choices": []map[string]any{
			{
				"index":         0,
				"finish_reason": "stop",
				"message":       map[string]any{"role": "assistant", "content": content},
			},
		},
		"usage": map[string]any{
			"prompt_tokens":     tokens - 5,
			"completion_tokens": 5,
			"total_tokens":      tokens,
		},
	}
}

func TestOpenAI_Review(t *testing.T) {
	var got map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("path = %q, want /chat/completions", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Error("Missing or wrong Authorization header")
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decoding request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(openAICompletion("## Feedback", 50))
	}))
	defer server.Close()

	o := newOpenAI("test-key", "gpt-4.1-mini", server.URL+"/", server.Client())

	resp, err := o.Review(context.Background(), ReviewRequest{
		SystemPrompt: "system",
		UserPrompt:   "user",
		MaxTokens:    10,
		Temperature:  0.5,
	})
	if err != nil {
		t.Fatalf("Review error: %v", err)
	}
	if resp.Content != "## Feedback" {
		t.Errorf("Content = %q, want %q", resp.Content, "## Feedback")
	}
	if resp.TokensUsed != 50 {
		t.Errorf("TokensUsed = %d, want 50", resp.TokensUsed)
	}
	if got["model"] != "gpt-4.1-mini" {
		t.Errorf("model = %v", got["model"])
	}
	if got["max_completion_tokens"] != float64(10) {
		t.Errorf("max_completion_tokens = %v, want 10", got["max_completion_tokens"])
	}
	if msgs, ok := got["messages"].([]any); !ok || len(msgs) != 2 {
		t.Errorf("messages = %v, want system+user", got["messages"])
	}
	if _, ok := got["top_p"]; ok {
		t.Error("top_p should be omitted when unset")
	}
}

func TestOpenAI_RateLimit(t *testing.T) {
	fastRetries(t)

	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.Header().Set("Content-Type", "application/json")
		if attempts <= 2 {
			w.WriteHeader(429)
			w.Write([]byte(`{"error":{"message":"rate limited","type":"rate_limit"}}`))
			return
		}
		json.NewEncoder(w).Encode(openAICompletion("ok", 10))
	}))
	defer server.Close()

	o := newOpenAI("test-key", "gpt-4.1-mini", server.URL+"/", server.Client())

	resp, err := o.Review(context.Background(), ReviewRequest{UserPrompt: "test"})
	if err != nil {
		t.Fatalf("Review error after retries: %v", err)
	}
	if resp.Content != "ok" {
		t.Errorf("Content = %q, want %q", resp.Content, "ok")
	}
	if attempts != 3 {
		t.Errorf("Expected 3 attempts (2 retries), got %d", attempts)
	}
}

func TestOpenAI_AuthError(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(401)
		w.Write([]byte(`{"error":{"message":"invalid api key","type":"invalid_request_error"}}`))
	}))
	defer server.Close()

	o := newOpenAI("bad-key", "gpt-4.1-mini", server.URL+"/", server.Client())

	_, err := o.Review(context.Background(), ReviewRequest{UserPrompt: "test"})
	if !IsAuthError(err) {
		t.Fatalf("Expected auth error, got: %v", err)
	}
	if attempts != 1 {
		t.Errorf("Expected 1 attempt for auth error, got %d", attempts)
	}
}

func TestOpenAI_NoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"x","object":"chat.completion","choices":[]}`))
	}))
	defer server.Close()

	o := newOpenAI("test-key", "gpt-4.1-mini", server.URL+"/", server.Client())
	if _, err := o.Review(context.Background(), ReviewRequest{UserPrompt: "test"}); err == nil {
		t.Fatal("Expected error for response without choices")
	}
}

func TestOpenAI_Name(t *testing.T) {
	o := newOpenAI("k", "m", "", http.DefaultClient)
	if o.Name() != "openai" {
		t.Errorf("Name() = %q, want %q", o.Name(), "openai")
	}
}
