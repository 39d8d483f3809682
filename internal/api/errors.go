package api

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is an application-level failure reported by the API envelope
// (success:false). Transport failures are never an *Error.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api error (status %d)", e.StatusCode)
	}
	return fmt.Sprintf("api error (status %d): %s", e.StatusCode, e.Message)
}

// Unauthorized reports whether the failure is an authorization rejection,
// which callers treat as a dead session rather than a generic error.
func (e *Error) Unauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

// IsUnauthorized reports whether err is an authorization failure from the
// API.
func IsUnauthorized(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Unauthorized()
}

// IsApplicationError reports whether err carries an API envelope failure as
// opposed to a transport failure.
func IsApplicationError(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr)
}
