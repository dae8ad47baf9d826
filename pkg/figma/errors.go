package figma

import (
	"errors"
	"net/http"
)

// ErrTokenMissing is returned when no access token is available; no network
// call is attempted in that case.
var ErrTokenMissing = errors.New("figma access token not configured")

// APIError is a non-2xx response from the remote service.
type APIError struct {
	StatusCode int
	Status     string
}

func (e *APIError) Error() string {
	return "figma api error: " + e.Status
}

// IsNotFound reports whether err is a remote 404.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// IsForbidden reports whether err is a remote 401 or 403.
func IsForbidden(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.StatusCode == http.StatusUnauthorized || apiErr.StatusCode == http.StatusForbidden
}
