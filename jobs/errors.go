package jobs

import (
	"encoding/json"
	"fmt"
	"strings"
)

// MalformedDocumentError indicates a status document missing its required job
// reference.
type MalformedDocumentError struct {
	Message string
}

func (e *MalformedDocumentError) Error() string { return e.Message }

// NoTransportError indicates a network operation invoked on a snapshot with no
// bound transport.
type NoTransportError struct {
	Message string
}

func (e *NoTransportError) Error() string { return e.Message }

// APIError wraps a non-success response reported by the transport. The status
// code and message are carried verbatim; the library never retries or
// reinterprets them.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error (HTTP %d): %s", e.StatusCode, e.Message)
}

// ErrMalformedDocument creates a MalformedDocumentError with a formatted message.
func ErrMalformedDocument(format string, args ...interface{}) *MalformedDocumentError {
	return &MalformedDocumentError{Message: fmt.Sprintf(format, args...)}
}

// ErrNoTransport creates a NoTransportError with a formatted message.
func ErrNoTransport(format string, args ...interface{}) *NoTransportError {
	return &NoTransportError{Message: fmt.Sprintf(format, args...)}
}

// apiErrorFromResponse builds an APIError from a failure response. Failure
// bodies normally carry a {code, message} envelope; anything else is used raw.
func apiErrorFromResponse(resp *Response) *APIError {
	var envelope struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(resp.Body, &envelope); err == nil && envelope.Message != "" {
		return &APIError{StatusCode: resp.StatusCode, Message: envelope.Message}
	}
	return &APIError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(resp.Body))}
}
