package bankingapi

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	ErrCodeRejected       = "REJECTED"
	ErrCodeNotFound       = "NOT_FOUND"
	ErrCodeServerError    = "SERVER_ERROR"
	ErrCodeUnexpected     = "UNEXPECTED_STATUS"
	ErrCodeTimeout        = "TIMEOUT"
	ErrCodeNetwork        = "NETWORK_ERROR"
	ErrCodeInvalidPayload = "INVALID_PAYLOAD"
)

var (
	ErrRejected       = errors.New(ErrCodeRejected)
	ErrNotFound       = errors.New(ErrCodeNotFound)
	ErrServerError    = errors.New(ErrCodeServerError)
	ErrUnexpected     = errors.New(ErrCodeUnexpected)
	ErrTimeout        = errors.New(ErrCodeTimeout)
	ErrNetwork        = errors.New(ErrCodeNetwork)
	ErrInvalidPayload = errors.New(ErrCodeInvalidPayload)
)

// RequestError is returned for every failed call to the banking service.
// StatusCode is zero when no response was received.
type RequestError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *RequestError) Error() string {
	switch {
	case e.StatusCode != 0 && e.Message != "":
		return fmt.Sprintf("banking api: status %d: %s", e.StatusCode, e.Message)
	case e.StatusCode != 0:
		return fmt.Sprintf("banking api: status %d: %v", e.StatusCode, e.Err)
	default:
		return fmt.Sprintf("banking api: %v", e.Err)
	}
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// ServerMessage extracts the message the banking service sent in its error body.
func ServerMessage(err error) (string, bool) {
	var reqErr *RequestError
	if !errors.As(err, &reqErr) || reqErr.Message == "" {
		return "", false
	}
	return reqErr.Message, true
}

func MapStatusToError(statusCode int) error {
	switch {
	case statusCode == http.StatusNotFound:
		return ErrNotFound
	case statusCode >= 400 && statusCode < 500:
		return ErrRejected
	case statusCode >= 500:
		return ErrServerError
	default:
		return ErrUnexpected
	}
}
