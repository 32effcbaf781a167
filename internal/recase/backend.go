// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package recase fixes the capitalization of document paragraphs with a
// hosted language model. Paragraphs are sent in bounded-concurrency batches;
// throttled requests are retried with exponential backoff and a failed
// paragraph never aborts the rest of the run.
package recase

import (
	"context"
	"errors"

	"github.com/aws/smithy-go"
)

// Backend abstracts the language-model API so tests can supply a mock.
// Recase returns the model's rewrite of one paragraph.
type Backend interface {
	Recase(ctx context.Context, text string) (string, error)
}

var (
	// ErrThrottled is wrapped by backends into errors caused by API rate
	// limiting. Only these errors are retried.
	ErrThrottled = errors.New("request throttled")

	// ErrRateLimitExceeded is returned once throttling retries are exhausted.
	ErrRateLimitExceeded = errors.New("max retries exceeded for rate limiting")

	// ErrInvalidParagraph is returned for out-of-range paragraph numbers.
	ErrInvalidParagraph = errors.New("invalid paragraph number")
)

// throttlingCodes are the AWS error codes treated as rate limiting.
var throttlingCodes = map[string]bool{
	"ThrottlingException": true,
}

// IsThrottling reports whether err is an AWS API error signalling rate limiting.
func IsThrottling(err error) bool {
	var ae smithy.APIError
	if errors.As(err, &ae) {
		return throttlingCodes[ae.ErrorCode()]
	}
	return false
}
