package pubsub

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrInvalidName is returned when a resource name is malformed, before any
	// remote call is made.
	ErrInvalidName = errors.New("invalid resource name")

	// ErrNotFound is returned when an operation targets a topic or
	// subscription that does not exist or has been deleted.
	ErrNotFound = errors.New("resource not found")

	// ErrDecode is returned when a push payload is malformed or a message body
	// cannot be read as UTF-8 text.
	ErrDecode = errors.New("malformed payload")

	errProjectIDNotProvided = errors.New("project id not provided")
	errTransportNotProvided = errors.New("transport not provided")
)

// APIError is the error envelope the service returns for a failed call. Any
// remote failure that is not a 404 surfaces to the caller unchanged; retry
// policy is a caller concern.
type APIError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("pubsub: %s (code %d, status %s)", e.Message, e.Code, e.Status)
}

// notFoundErr maps service 404s onto ErrNotFound so callers can branch on it
// with errors.Is.
func notFoundErr(err error, kind resourceKind, name string) error {
	if isNotFound(err) {
		return fmt.Errorf("%w: %s %q", ErrNotFound, kind.singular(), name)
	}

	return err
}

func isNotFound(err error) bool {
	var apiErr *APIError

	return errors.As(err, &apiErr) && apiErr.Code == http.StatusNotFound
}
