package submission

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrMalformedResponse is returned when a 2xx response carries no idea number.
var ErrMalformedResponse = errors.New("submission: response is missing ideaNumber")

// ServerError reports a non-2xx answer from the backend. Fields carries
// per-field rejections keyed by JSON pointer when the backend sends them.
type ServerError struct {
	Status  int
	Message string
	Fields  map[string][]string
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("submission: server returned %d: %s", e.Status, e.Message)
}

// NetworkError wraps transport failures (DNS, refused connections, timeouts,
// cancelled contexts).
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("submission: request failed: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// Detail extracts the message worth showing to a user from a submission
// error.
func Detail(err error) string {
	var serverErr *ServerError
	if errors.As(err, &serverErr) {
		return serverErr.Message
	}
	var netErr *NetworkError
	if errors.As(err, &netErr) {
		return "We could not reach the server. Please check your connection and try again."
	}
	if errors.Is(err, ErrMalformedResponse) {
		return "The server sent an unexpected response."
	}
	return ""
}

func statusMessage(status int) string {
	if text := http.StatusText(status); text != "" {
		return text
	}
	return fmt.Sprintf("status %d", status)
}
