package argus

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrWatcherClosed is returned by FileWatcher.Next and RepoWatcher.Next
// once the watcher has been closed, either explicitly through Close or
// implicitly after a terminal error was surfaced.
var ErrWatcherClosed = errors.New("watcher is closed")

// APIError is returned when the server answers a request with a non-2xx
// status. Exception and Message carry the server's error body when it
// sends one.
type APIError struct {
	StatusCode int    // HTTP status code
	Exception  string // server-side exception type, if provided
	Message    string // human-readable message, if provided
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("API error (status %d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("API error (status %d)", e.StatusCode)
}

// newAPIError builds an APIError from a non-2xx response, picking up the
// server's structured error body when it sends one.
func newAPIError(resp *response) *APIError {
	apiErr := &APIError{StatusCode: resp.StatusCode}
	if len(resp.Body) == 0 {
		return apiErr
	}

	var body struct {
		Exception string `json:"exception"`
		Message   string `json:"message"`
	}
	if err := json.Unmarshal(resp.Body, &body); err == nil && (body.Exception != "" || body.Message != "") {
		apiErr.Exception = body.Exception
		apiErr.Message = body.Message
		return apiErr
	}

	apiErr.Message = strings.TrimSpace(string(resp.Body))
	return apiErr
}

// DecodeError is returned when a response body cannot be decoded into the
// expected shape. For a watcher this is terminal: the two sides disagree
// about the protocol, and repeating the same request cannot heal that.
type DecodeError struct {
	Err error // underlying decode failure
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode response: %v", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
