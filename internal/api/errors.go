package api

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-resty/resty/v2"
)

// ErrUnauthorized is returned when the backend answers 401 on an
// authenticated call. The token is no longer valid; the caller is expected
// to drop the session and return to login.
var ErrUnauthorized = errors.New("session expired or invalid")

// Error is a non-2xx response from the backend. Message carries the
// server-supplied text verbatim so the views can show it unchanged.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("server error (%d): %s", e.Status, e.Message)
}

// newError decodes the backend's {"error": "..."} body. An empty or
// undecodable body falls back to a generic message.
func newError(resp *resty.Response) *Error {
	var body struct {
		Error string `json:"error"`
	}
	_ = json.Unmarshal(resp.Body(), &body)
	if body.Error == "" {
		body.Error = fmt.Sprintf("request failed with status %d", resp.StatusCode())
	}
	return &Error{Status: resp.StatusCode(), Message: body.Error}
}
