package remote

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound matches 404 answers from the collection.
var ErrNotFound = errors.New("not found")

// APIError surfaces non-2xx responses from the collection.
type APIError struct {
	StatusCode int
	Body       string
	RequestID  string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error: status=%d request_id=%s body=%s", e.StatusCode, e.RequestID, e.Body)
}

//nolint:errorlint
func (e *APIError) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == http.StatusNotFound
}

func newAPIError(status int, body []byte, requestID string) error {
	return &APIError{
		StatusCode: status,
		Body:       string(body),
		RequestID:  requestID,
	}
}
