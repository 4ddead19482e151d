package llm

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/saulo-duarte/lingua-lambda/internal/config"
)

// Client sends one prompt to a text generation service.
type Client interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

type Options struct {
	Model string
	// Timeout bounds a single attempt. Zero disables it.
	Timeout time.Duration
	// MaxRetries is the number of extra attempts after a retryable failure.
	MaxRetries int
	// Backoff is multiplied by the attempt number between retries.
	Backoff time.Duration
}

// generateFunc performs one raw call against the provider.
type generateFunc func(ctx context.Context, model, prompt string) (string, error)

// classifyFunc maps a provider error to a failure reason.
type classifyFunc func(err error) FailureReason

type retryingClient struct {
	name     string
	opts     Options
	generate generateFunc
	classify classifyFunc
}

func (c *retryingClient) Complete(ctx context.Context, prompt string) (string, error) {
	log := config.WithContext(ctx).WithField("provider", c.name)

	var lastErr *GenerationFailure
	for attempt := 0; attempt <= c.opts.MaxRetries; attempt++ {
		if attempt > 0 {
			wait := c.opts.Backoff * time.Duration(attempt)
			log.WithError(lastErr).Warnf("Retrying completion (attempt %d of %d) in %s", attempt+1, c.opts.MaxRetries+1, wait)
			select {
			case <-ctx.Done():
				return "", c.contextFailure(ctx.Err())
			case <-time.After(wait):
			}
		}

		text, err := c.attempt(ctx, prompt)
		if err == nil {
			return text, nil
		}
		lastErr = err
		if ctx.Err() != nil || !err.retryable() {
			break
		}
	}

	log.WithError(lastErr).Error("Completion failed")
	return "", lastErr
}

func (c *retryingClient) attempt(ctx context.Context, prompt string) (string, *GenerationFailure) {
	callCtx := ctx
	if c.opts.Timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, c.opts.Timeout)
		defer cancel()
	}

	raw, err := c.generate(callCtx, c.opts.Model, prompt)
	if err != nil {
		if ctxErr := callCtx.Err(); ctxErr != nil {
			return "", c.contextFailure(ctxErr)
		}
		return "", &GenerationFailure{Reason: c.classify(err), Cause: err}
	}

	if strings.TrimSpace(raw) == "" {
		return "", &GenerationFailure{Reason: ReasonEmpty, Cause: errors.New("model returned no text")}
	}
	return raw, nil
}

func (c *retryingClient) contextFailure(err error) *GenerationFailure {
	if errors.Is(err, context.DeadlineExceeded) {
		return &GenerationFailure{Reason: ReasonTimeout, Cause: err}
	}
	return &GenerationFailure{Reason: ReasonCanceled, Cause: err}
}
