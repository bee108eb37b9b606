package providers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"google.golang.org/genai"
)

// Gemini implements the Reviewer interface on the Google Gen AI SDK.
type Gemini struct {
	model  string
	client *genai.Client
}

// NewGemini creates a new Gemini provider. The key is read from
// GEMINI_API_KEY, then GOOGLE_API_KEY, then API_KEY.
func NewGemini(model string) (*Gemini, error) {
	key := firstEnv("GEMINI_API_KEY", "GOOGLE_API_KEY", "API_KEY")
	if key == "" {
		return nil, &authError{message: "GEMINI_API_KEY (or GOOGLE_API_KEY) environment variable is not set"}
	}
	return newGemini(context.Background(), key, model, os.Getenv("GUARDIAN_GEMINI_BASE_URL"), &http.Client{Timeout: 300 * time.Second})
}

func newGemini(ctx context.Context, apiKey, model, baseURL string, httpClient *http.Client) (*Gemini, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      apiKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPClient:  httpClient,
		HTTPOptions: genai.HTTPOptions{BaseURL: baseURL},
	})
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}
	return &Gemini{model: model, client: client}, nil
}

func (g *Gemini) Name() string { return "gemini" }

func (g *Gemini) Review(ctx context.Context, req ReviewRequest) (ReviewResponse, error) {
	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(req.SystemPrompt, genai.RoleUser),
		MaxOutputTokens:   int32(maxTokensOrDefault(req.MaxTokens)),
	}
	if req.Temperature > 0 {
		cfg.Temperature = genai.Ptr(float32(req.Temperature))
	}
	if req.TopP > 0 {
		cfg.TopP = genai.Ptr(float32(req.TopP))
	}

	var resp ReviewResponse
	err := retryWithBackoff(ctx, 3, func() error {
		result, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(req.UserPrompt), cfg)
		if err != nil {
			return mapGeminiError(err)
		}
		if len(result.Candidates) == 0 || result.Candidates[0].Content == nil || len(result.Candidates[0].Content.Parts) == 0 {
			return fmt.Errorf("no content in response")
		}

		var content strings.Builder
		for _, part := range result.Candidates[0].Content.Parts {
			if part != nil {
				content.WriteString(part.Text)
			}
		}
		if content.Len() == 0 {
			return fmt.Errorf("empty text content in API response")
		}

		resp = ReviewResponse{Content: content.String()}
		if result.UsageMetadata != nil {
			resp.TokensUsed = int(result.UsageMetadata.TotalTokenCount)
		}
		return nil
	})

	return resp, err
}

func mapGeminiError(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return classifyGemini(apiErr, err)
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return classifyGemini(*apiErrPtr, err)
	}
	return fmt.Errorf("sending request: %w", err)
}

func classifyGemini(apiErr genai.APIError, orig error) error {
	if mapped := classifyStatus(apiErr.Code, apiErr.Message); mapped != nil {
		return mapped
	}
	return orig
}

func firstEnv(names ...string) string {
	for _, n := range names {
		if v := os.Getenv(n); v != "" {
			return v
		}
	}
	return ""
}
