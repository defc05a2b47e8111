// internal/client/errors.go
package client

import (
	"errors"
	"net/http"
)

// ErrUnknownBonusProgram is returned for a bonus program the backend does not offer
var ErrUnknownBonusProgram = errors.New("unknown bonus program")

// APIError is any failed backend call. Message is what the user should see:
// the server's message when it sent one, otherwise a description of the
// operation that failed. StatusCode is zero when no response arrived.
type APIError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *APIError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// IsUnauthorized reports whether err is a backend 401
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized
}

// IsNotFound reports whether err is a backend 404
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}
