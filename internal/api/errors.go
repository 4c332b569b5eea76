package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrUnauthorized marks a 401 from the backend. The stored credential has
// already been cleared when it is returned.
var ErrUnauthorized = errors.New("unauthorized")

// Error is the single error shape every API call returns.
type Error struct {
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Message returns a human-readable message for err, or fallback when err
// carries none.
func Message(err error, fallback string) string {
	if err == nil {
		return ""
	}
	var apiErr *Error
	if errors.As(err, &apiErr) && strings.TrimSpace(apiErr.Message) != "" {
		return apiErr.Message
	}
	if msg := strings.TrimSpace(err.Error()); msg != "" {
		return msg
	}
	return fallback
}

type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

func statusError(status int, body io.Reader) *Error {
	raw, _ := io.ReadAll(io.LimitReader(body, 64<<10))

	msg := ""
	var decoded errorBody
	if err := json.Unmarshal(raw, &decoded); err == nil {
		msg = firstNonEmpty(decoded.Message, decoded.Error)
	}
	if msg == "" {
		msg = fmt.Sprintf("Request failed with status code %d", status)
	}
	return &Error{Status: status, Message: msg}
}

func transportError(err error) *Error {
	return &Error{Message: fmt.Sprintf("Network Error: %v", err), Err: err}
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return strings.TrimSpace(value)
		}
	}
	return ""
}
