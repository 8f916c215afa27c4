package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrUnavailable wraps transport failures: no response was received.
	ErrUnavailable = errors.New("server unavailable")
	// ErrSessionExpired is returned when an authenticated request failed with
	// 401 and the session could not be refreshed. The stored credentials have
	// been cleared by the time the caller sees it.
	ErrSessionExpired = errors.New("session expired")
)

// APIError is a non-2xx response of the API.
type APIError struct {
	StatusCode int
	// Message is the server-provided, user-displayable explanation, if any.
	Message string
	Body    []byte
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api error: status %d", e.StatusCode)
	}
	return fmt.Sprintf("api error: status %d: %s", e.StatusCode, e.Message)
}

// StatusCode returns the HTTP status carried by err, or 0 when err is not
// (and does not wrap) an *APIError.
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

// Message returns the server message carried by err, or "".
func Message(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return ""
}

// ServerMessage returns the "message" or, failing that, the "detail" field
// of the error body of err. Field validation errors are not considered.
func ServerMessage(err error) string {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return ""
	}
	return topLevelMessage(apiErr.Body)
}

func newAPIError(status int, body []byte) *APIError {
	return &APIError{StatusCode: status, Message: extractMessage(body), Body: body}
}

// extractMessage picks "message", then "detail", then formats field
// validation errors as "field: msg1, msg2; other: msg".
func extractMessage(body []byte) string {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return ""
	}
	if msg := pickMessage(fields); msg != "" {
		return msg
	}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		var list []string
		var one string
		switch {
		case json.Unmarshal(fields[k], &list) == nil && len(list) > 0:
			parts = append(parts, k+": "+strings.Join(list, ", "))
		case json.Unmarshal(fields[k], &one) == nil && one != "":
			parts = append(parts, k+": "+one)
		}
	}
	return strings.Join(parts, "; ")
}

func topLevelMessage(body []byte) string {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return ""
	}
	return pickMessage(fields)
}

func pickMessage(fields map[string]json.RawMessage) string {
	for _, key := range []string{"message", "detail"} {
		var s string
		if raw, ok := fields[key]; ok && json.Unmarshal(raw, &s) == nil && s != "" {
			return s
		}
	}
	return ""
}
