package providers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// OpenAI implements the Reviewer interface on the official OpenAI SDK.
type OpenAI struct {
	model  string
	client openai.Client
}

// NewOpenAI creates a new OpenAI provider. GUARDIAN_OPENAI_BASE_URL may point
// it at any OpenAI-compatible endpoint.
func NewOpenAI(model string) (*OpenAI, error) {
	key := os.Getenv("OPENAI_API_KEY")
	if key == "" {
		return nil, &authError{message: "OPENAI_API_KEY environment variable is not set"}
	}
	return newOpenAI(key, model, os.Getenv("GUARDIAN_OPENAI_BASE_URL"), &http.Client{Timeout: 300 * time.Second}), nil
}

func newOpenAI(apiKey, model, baseURL string, httpClient *http.Client) *OpenAI {
	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithHTTPClient(httpClient),
		// Retries are owned by retryWithBackoff so every provider behaves alike.
		option.WithMaxRetries(0),
	}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	return &OpenAI{
		model:  model,
		client: openai.NewClient(opts...),
	}
}

func (o *OpenAI) Name() string { return "openai" }

func (o *OpenAI) Review(ctx context.Context, req ReviewRequest) (ReviewResponse, error) {
	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(o.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(req.SystemPrompt),
			openai.UserMessage(req.UserPrompt),
		},
		MaxCompletionTokens: openai.Int(int64(maxTokensOrDefault(req.MaxTokens))),
	}
	if req.Temperature > 0 {
		params.Temperature = openai.Float(req.Temperature)
	}
	if req.TopP > 0 {
		params.TopP = openai.Float(req.TopP)
	}

	var resp ReviewResponse
	err := retryWithBackoff(ctx, 3, func() error {
		completion, err := o.client.Chat.Completions.New(ctx, params)
		if err != nil {
			return mapOpenAIError(err)
		}
		if len(completion.Choices) == 0 {
			return fmt.Errorf("no choices in response")
		}
		content := completion.Choices[0].Message.Content
		if content == "" {
			return fmt.Errorf("empty text content in API response")
		}
		resp = ReviewResponse{
			Content:    content,
			TokensUsed: int(completion.Usage.TotalTokens),
		}
		return nil
	})

	return resp, err
}

func mapOpenAIError(err error) error {
	var apiErr *openai.Error
	if !errors.As(err, &apiErr) {
		return fmt.Errorf("sending request: %w", err)
	}
	if mapped := classifyStatus(apiErr.StatusCode, apiErr.Message); mapped != nil {
		return mapped
	}
	return err
}
