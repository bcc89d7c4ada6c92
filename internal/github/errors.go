package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	gh "github.com/google/go-github/v68/github"
)

// rateLimitTip is appended to throttling messages.
const rateLimitTip = "\n\nTip: Add a GitHub personal access token to increase your rate limits."

// ErrCancelled is returned when a search is abandoned because its context
// was cancelled. It is not a failure.
var ErrCancelled = errors.New("github: search cancelled")

// APIError is a non-success response from the search endpoint.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// RateLimited reports whether the response was a throttling rejection.
func (e *APIError) RateLimited() bool {
	return isThrottleStatus(e.StatusCode) && strings.Contains(strings.ToLower(e.Message), "rate limit")
}

// TransportError is a request that never produced a response.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return e.Err.Error()
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// IsRateLimited checks if err is a throttling rejection.
func IsRateLimited(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.RateLimited()
}

func isThrottleStatus(code int) bool {
	return code == http.StatusForbidden || code == http.StatusTooManyRequests
}

// newAPIError builds an APIError from a status code and the server-supplied
// message, synthesizing "<code> <reason>" when the body carried none.
func newAPIError(code int, message string) *APIError {
	if strings.TrimSpace(message) == "" {
		message = fmt.Sprintf("%d %s", code, http.StatusText(code))
	}
	e := &APIError{StatusCode: code, Message: message}
	if e.RateLimited() {
		e.Message += rateLimitTip
	}
	return e
}

// classify maps an error returned by go-github onto this package's
// taxonomy.
func classify(ctx context.Context, err error) error {
	if ctx.Err() != nil || errors.Is(err, context.Canceled) {
		return ErrCancelled
	}

	var rateErr *gh.RateLimitError
	if errors.As(err, &rateErr) {
		return newAPIError(statusOf(rateErr.Response, http.StatusForbidden), rateErr.Message)
	}
	var abuseErr *gh.AbuseRateLimitError
	if errors.As(err, &abuseErr) {
		return newAPIError(statusOf(abuseErr.Response, http.StatusForbidden), abuseErr.Message)
	}
	var respErr *gh.ErrorResponse
	if errors.As(err, &respErr) && respErr.Response != nil {
		return newAPIError(respErr.Response.StatusCode, respErr.Message)
	}
	return &TransportError{Err: err}
}

func statusOf(resp *http.Response, fallback int) int {
	if resp == nil {
		return fallback
	}
	return resp.StatusCode
}
