package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/saulo-duarte/lingua-lambda/internal/config"
	"google.golang.org/genai"
)

const DefaultGeminiModel = "gemini-2.0-flash"

func NewGeminiClient(ctx context.Context, apiKey string, opts Options) (Client, error) {
	if apiKey == "" {
		return nil, errors.New("missing gemini api key")
	}
	gc, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	if opts.Model == "" {
		opts.Model = DefaultGeminiModel
	}

	return &retryingClient{
		name: "gemini",
		opts: opts,
		generate: func(ctx context.Context, model, prompt string) (string, error) {
			result, err := gc.Models.GenerateContent(ctx, model, genai.Text(prompt), nil)
			if err != nil {
				return "", err
			}
			raw := result.Text()
			config.WithContext(ctx).Debugf("[LLM] Raw gemini response:\n%s", raw)
			return raw, nil
		},
		classify: classifyGeminiError,
	}, nil
}

func classifyGeminiError(err error) FailureReason {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Code == http.StatusTooManyRequests || apiErr.Status == "RESOURCE_EXHAUSTED" {
			return ReasonRateLimited
		}
	}
	return ReasonUpstream
}
