package scriptblox

import (
	"errors"
	"fmt"
)

// ErrMalformedResponse is returned when the body is not the expected
// {result:{scripts,totalPages}} envelope.
var ErrMalformedResponse = errors.New("malformed listing response")

// APIError is a non-2xx response from the listing service.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("api request failed: status %d, body: %s", e.StatusCode, e.Body)
	}
	return fmt.Sprintf("api request failed: status %d", e.StatusCode)
}
