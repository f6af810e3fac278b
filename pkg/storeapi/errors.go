package storeapi

import "fmt"

// APIError is the error returned for any failed request against the remote
// store. A transport-level failure (no response obtained) carries Status 0
// and StatusText "Network Error"; otherwise Status holds the HTTP status
// code of the response.
type APIError struct {
	Status     int
	StatusText string
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s (status %d %s)", e.Message, e.Status, e.StatusText)
}

// NewNetworkError wraps a transport failure in an APIError with status 0.
func NewNetworkError(err error) *APIError {
	return &APIError{
		Status:     0,
		StatusText: "Network Error",
		Message:    fmt.Sprintf("network error: %v", err),
	}
}

// IsNotFound reports whether err is an APIError with HTTP status 404.
func IsNotFound(err error) bool {
	apiErr, ok := err.(*APIError)
	return ok && apiErr.Status == 404
}

// IsRetryable reports whether err is worth retrying. Client errors
// (400-499) are considered permanent; transport failures (status 0),
// server errors and any other non-2xx status are transient.
func IsRetryable(err error) bool {
	apiErr, ok := err.(*APIError)
	if !ok {
		return true
	}
	return apiErr.Status < 400 || apiErr.Status >= 500
}
