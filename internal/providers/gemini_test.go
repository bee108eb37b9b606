package providers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newTestGemini(t *testing.T, server *httptest.Server) *Gemini {
	t.Helper()
	g, err := newGemini(context.Background(), "test-key", "gemini-2.5-pro", server.URL, server.Client())
	if err != nil {
		t.Fatalf("newGemini error: %v", err)
	}
	return g
}

func TestGemini_Review(t *testing.T) {
	var got map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("x-goog-api-key") != "test-key" {
			t.Error("Missing API key in x-goog-api-key header")
		}
		if !strings.HasSuffix(r.URL.Path, "/models/gemini-2.5-pro:generateContent") {
			t.Errorf("path = %q", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decoding request: %v", err)
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"candidates": [{
				"content": {"role": "model", "parts": [{"text": "## 🌟 Overall Feedback\n"}, {"text": "Nice."}]}
			}],
			"usageMetadata": {"totalTokenCount": 75}
		}`))
	}))
	defer server.Close()

	resp, err := newTestGemini(t, server).Review(context.Background(), ReviewRequest{
		SystemPrompt: "system",
		UserPrompt:   "user",
		Temperature:  0.5,
		TopP:         0.95,
	})
	if err != nil {
		t.Fatalf("Review error: %v", err)
	}
	if resp.Content != "## 🌟 Overall Feedback\nNice." {
		t.Errorf("Content = %q", resp.Content)
	}
	if resp.TokensUsed != 75 {
		t.Errorf("TokensUsed = %d, want 75", resp.TokensUsed)
	}

	if _, ok := got["systemInstruction"]; !ok {
		t.Error("request is missing systemInstruction")
	}
	genCfg, _ := got["generationConfig"].(map[string]any)
	if genCfg == nil {
		t.Fatal("request is missing generationConfig")
	}
	if genCfg["maxOutputTokens"] != float64(defaultMaxTokens) {
		t.Errorf("maxOutputTokens = %v, want %d", genCfg["maxOutputTokens"], defaultMaxTokens)
	}
	if genCfg["topP"] == nil || genCfg["temperature"] == nil {
		t.Errorf("sampling parameters missing: %v", genCfg)
	}
}

func TestGemini_AuthError(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(403)
		w.Write([]byte(`{"error":{"code":403,"message":"API key not valid","status":"PERMISSION_DENIED"}}`))
	}))
	defer server.Close()

	_, err := newTestGemini(t, server).Review(context.Background(), ReviewRequest{UserPrompt: "test"})
	if !IsAuthError(err) {
		t.Fatalf("Expected auth error, got: %v", err)
	}
	if attempts != 1 {
		t.Errorf("Expected 1 attempt, got %d", attempts)
	}
}

func TestGemini_RateLimitRetries(t *testing.T) {
	fastRetries(t)

	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.Header().Set("Content-Type", "application/json")
		if attempts == 1 {
			w.WriteHeader(429)
			w.Write([]byte(`{"error":{"code":429,"message":"quota","status":"RESOURCE_EXHAUSTED"}}`))
			return
		}
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"ok"}]}}]}`))
	}))
	defer server.Close()

	resp, err := newTestGemini(t, server).Review(context.Background(), ReviewRequest{UserPrompt: "test"})
	if err != nil {
		t.Fatalf("Review error: %v", err)
	}
	if resp.Content != "ok" || attempts != 2 {
		t.Errorf("Content = %q, attempts = %d", resp.Content, attempts)
	}
	if resp.TokensUsed != 0 {
		t.Errorf("TokensUsed = %d, want 0 without usage metadata", resp.TokensUsed)
	}
}

func TestGemini_NoCandidates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"candidates":[]}`))
	}))
	defer server.Close()

	if _, err := newTestGemini(t, server).Review(context.Background(), ReviewRequest{UserPrompt: "test"}); err == nil {
		t.Fatal("Expected error for response without candidates")
	}
}

func TestGemini_Name(t *testing.T) {
	g := &Gemini{}
	if g.Name() != "gemini" {
		t.Errorf("Name() = %q, want %q", g.Name(), "gemini")
	}
}

func TestFirstEnv(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("GOOGLE_API_KEY", "")
	t.Setenv("API_KEY", "fallback")

	if got := firstEnv("GEMINI_API_KEY", "GOOGLE_API_KEY", "API_KEY"); got != "fallback" {
		t.Errorf("firstEnv = %q, want fallback", got)
	}

	t.Setenv("GOOGLE_API_KEY", "google")
	if got := firstEnv("GEMINI_API_KEY", "GOOGLE_API_KEY", "API_KEY"); got != "google" {
		t.Errorf("firstEnv = %q, want google", got)
	}
}

func TestNewGemini_KeyFallback(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("GOOGLE_API_KEY", "")
	t.Setenv("API_KEY", "")

	_, err := NewGemini("gemini-2.5-pro")
	if !IsAuthError(err) {
		t.Fatalf("NewGemini without keys: err = %v, want auth error", err)
	}

	t.Setenv("API_KEY", "from-dotenv")
	g, err := NewGemini("gemini-2.5-pro")
	if err != nil {
		t.Fatalf("NewGemini with API_KEY: %v", err)
	}
	if g.Name() != "gemini" {
		t.Errorf("Name() = %q", g.Name())
	}
}
