package argus

import (
	"context"
	"errors"
	"net"
	"net/http"
)

// retryDecision is what the watch loop does with a failed poll.
type retryDecision int

const (
	// retryNow polls again immediately. An expired long poll means the
	// server had nothing to report, not that anything is wrong.
	retryNow retryDecision = iota

	// retryBackoff polls again after a growing delay.
	retryBackoff

	// abortWatch ends the stream and surfaces the error.
	abortWatch
)

// classifyWatchError decides how the watch loop reacts to a poll error.
//
// Deadline expiry and network timeouts restart the poll immediately.
// Server-side failures and transport faults are assumed transient and
// retried with backoff. Client-side rejections and undecodable bodies
// will not get better on their own, so they abort; the exceptions are
// 408 and 429, which the server hands out under load.
func classifyWatchError(err error) retryDecision {
	if errors.Is(err, context.DeadlineExceeded) {
		return retryNow
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return retryNow
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.StatusCode >= http.StatusInternalServerError:
			return retryBackoff
		case apiErr.StatusCode == http.StatusRequestTimeout,
			apiErr.StatusCode == http.StatusTooManyRequests:
			return retryBackoff
		case apiErr.StatusCode >= http.StatusBadRequest:
			return abortWatch
		default:
			return retryBackoff
		}
	}

	var decodeErr *DecodeError
	if errors.As(err, &decodeErr) {
		return abortWatch
	}

	return retryBackoff
}
