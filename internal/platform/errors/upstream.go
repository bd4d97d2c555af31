package errors

import (
	"context"
	stderrs "errors"
	"net"
	"net/http"
)

// Upstream graph store classification helpers
// The aggregation layer never retries on its own; the graph client consults
// IsRetryable to decide whether another attempt is worth the backoff

// FromUpstreamStatus maps an upstream HTTP status to an ErrorCode
// 2xx never reaches here; callers handle success before classifying
func FromUpstreamStatus(status int) ErrorCode {
	switch status {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return ErrorCodeInvalidArgument
	case http.StatusNotFound:
		return ErrorCodeNotFound
	case http.StatusTooManyRequests:
		return ErrorCodeTooManyRequests
	case http.StatusBadGateway, http.StatusServiceUnavailable:
		return ErrorCodeUnavailable
	case http.StatusGatewayTimeout:
		return ErrorCodeGatewayTimeout
	default:
		return ErrorCodeUpstream
	}
}

// IsRetryable reports whether another attempt against the upstream store may
// succeed. Caller input errors and absent resources are never retryable
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	switch CodeOf(err) {
	case ErrorCodeUnavailable, ErrorCodeGatewayTimeout, ErrorCodeTooManyRequests:
		return true
	}
	// transport-level failures without a code: timeouts and refused conns
	var nerr net.Error
	if stderrs.As(err, &nerr) && nerr.Timeout() {
		return true
	}
	return stderrs.Is(err, context.DeadlineExceeded)
}

// IsTerminal reports whether the error must surface immediately without retry
func IsTerminal(err error) bool {
	switch CodeOf(err) {
	case ErrorCodeInvalidArgument, ErrorCodeValidation, ErrorCodeJSON, ErrorCodeNotFound:
		return true
	}
	return false
}
