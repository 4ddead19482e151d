package llm

import (
	"errors"
	"fmt"
	"net/http"
)

var ErrGenerationFailure = errors.New("generation failure")

type FailureReason string

const (
	ReasonUpstream    FailureReason = "upstream"
	ReasonRateLimited FailureReason = "rate_limited"
	ReasonEmpty       FailureReason = "empty_response"
	ReasonTimeout     FailureReason = "timeout"
	ReasonCanceled    FailureReason = "canceled"
)

// GenerationFailure is returned for every unsuccessful completion.
type GenerationFailure struct {
	Reason FailureReason
	Cause  error
}

func (e *GenerationFailure) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("generation failure (%s)", e.Reason)
	}
	return fmt.Sprintf("generation failure (%s): %v", e.Reason, e.Cause)
}

func (e *GenerationFailure) Unwrap() error {
	return e.Cause
}

func (e *GenerationFailure) Is(target error) bool {
	return target == ErrGenerationFailure
}

func (e *GenerationFailure) HTTPStatus() int {
	switch e.Reason {
	case ReasonRateLimited:
		return http.StatusTooManyRequests
	case ReasonTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusBadGateway
	}
}

func (e *GenerationFailure) retryable() bool {
	return e.Reason == ReasonRateLimited || e.Reason == ReasonUpstream
}
