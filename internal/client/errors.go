package client

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNoSession is returned when a protected call is made without a token
var ErrNoSession = errors.New("not logged in")

// APIError is a non-2xx answer from the API
type APIError struct {
	Status  int                 `json:"-"`
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api error: %d %s", e.Status, http.StatusText(e.Status))
	}
	return fmt.Sprintf("api error: %d %s", e.Status, e.Message)
}

// IsUnauthorized reports whether err is a 401 answer
func IsUnauthorized(err error) bool {
	return hasStatus(err, http.StatusUnauthorized)
}

// IsNotFound reports whether err is a 404 answer
func IsNotFound(err error) bool {
	return hasStatus(err, http.StatusNotFound)
}

// IsValidation reports whether err is a 422 answer
func IsValidation(err error) bool {
	return hasStatus(err, http.StatusUnprocessableEntity)
}

// IsRateLimited reports whether err is a 429 answer
func IsRateLimited(err error) bool {
	return hasStatus(err, http.StatusTooManyRequests)
}

func hasStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == status
}
