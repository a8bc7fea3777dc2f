package classifier

import (
	"errors"
	"fmt"
)

// ErrEmptyEndpoint is returned by New when no endpoint is configured.
var ErrEmptyEndpoint = errors.New("classifier endpoint is empty")

// NetworkError means the service could not be reached: connection refused,
// DNS failure, timeout or a cancelled context.
type NetworkError struct {
	Endpoint string
	Err      error
}

// Error implements error.
func (e *NetworkError) Error() string {
	return fmt.Sprintf("cannot reach classification service at %s: %v", e.Endpoint, e.Err)
}

// Unwrap returns the transport error.
func (e *NetworkError) Unwrap() error {
	return e.Err
}

// ServerError means the service answered, but not with a usable verdict.
type ServerError struct {
	// StatusCode and Status are the HTTP status of the response.
	StatusCode int
	Status     string

	// Detail is the decoded JSON error body of a non-2xx response.
	Detail any

	// DetailNotJSON is set when a non-2xx body could not be decoded.
	DetailNotJSON bool

	// Malformed is set when a 2xx body was not a valid verdict.
	Malformed bool

	// Err is the decode error, if any.
	Err error
}

// Error implements error.
func (e *ServerError) Error() string {
	switch {
	case e.Malformed:
		return fmt.Sprintf("classification service returned a malformed verdict (%d): %v", e.StatusCode, e.Err)
	case e.DetailNotJSON:
		return fmt.Sprintf("classification service error %s: response was not JSON", e.Status)
	case e.Message() != "":
		return fmt.Sprintf("classification service error %s: %s", e.Status, e.Message())
	default:
		return fmt.Sprintf("classification service error %s", e.Status)
	}
}

// Unwrap returns the decode error, if any.
func (e *ServerError) Unwrap() error {
	return e.Err
}

// Message returns the "error" field of a JSON object detail, the shape the
// service uses for its error responses.
func (e *ServerError) Message() string {
	obj, ok := e.Detail.(map[string]any)
	if !ok {
		return ""
	}
	msg, _ := obj["error"].(string)
	return msg
}
