package service

import (
	"errors"
	"fmt"
)

// Generation failure categories. Each carries a distinct user-facing meaning
// and must not be collapsed into a generic failure at the API boundary.
var (
	// ErrUpstreamUnavailable covers network failures and 5xx responses from
	// the model provider.
	ErrUpstreamUnavailable = errors.New("meal generation failed, please try again")

	// ErrResponseTruncated means the model hit its output-length ceiling.
	// Partial JSON is never repaired.
	ErrResponseTruncated = errors.New("response was cut short, try generating a shorter meal plan")

	// ErrResponseBlocked means the provider's safety filtering blocked the
	// response.
	ErrResponseBlocked = errors.New("the request was blocked by content filters, please adjust your inputs and try again")

	// ErrResponseMalformed means the response text could not be parsed into
	// conforming meals.
	ErrResponseMalformed = errors.New("failed to parse meal plan, please try again")
)

// PartialGenerationError reports a chunked month generation that stopped
// partway. Meals from completed chunks are preserved alongside the error so
// the caller can decide whether to keep or discard them.
type PartialGenerationError struct {
	CompletedChunks int
	TotalChunks     int
	CompletedDays   int
	Cause           error
}

func (e *PartialGenerationError) Error() string {
	return fmt.Sprintf("days 1-%d generated, generation stopped at day %d: %v",
		e.CompletedDays, e.CompletedDays+1, e.Cause)
}

func (e *PartialGenerationError) Unwrap() error {
	return e.Cause
}
