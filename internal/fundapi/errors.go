package fundapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// APIError is returned for every failed call: transport failures carry
// Status 0, rejected requests carry the HTTP status. Message is safe to
// show to the user.
type APIError struct {
	Status  int
	Message string
	Err     error
}

func (e *APIError) Error() string {
	if e.Status == 0 {
		if e.Err != nil {
			return fmt.Sprintf("%s: %v", e.Message, e.Err)
		}
		return e.Message
	}
	return fmt.Sprintf("API returned status %d: %s", e.Status, e.Message)
}

func (e *APIError) Unwrap() error { return e.Err }

// IsUnauthorized reports whether err is an upstream 401/403
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.Status == http.StatusUnauthorized || apiErr.Status == http.StatusForbidden
}

// StatusCode returns the upstream HTTP status carried by err, 0 when the
// request never got an answer or err is not an *APIError.
func StatusCode(err error) int {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return 0
	}
	return apiErr.Status
}

// UserMessage extracts the human-readable part of err
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return err.Error()
}

// messageFromBody pulls a readable message out of a DRF error payload:
// {"detail": "..."}, {"non_field_errors": ["..."]} or {"field": ["..."]}.
func messageFromBody(status int, body []byte) string {
	var payload map[string]json.RawMessage
	if err := json.Unmarshal(body, &payload); err == nil && len(payload) > 0 {
		for _, key := range []string{"detail", "non_field_errors", "error", "message"} {
			if msg := firstString(payload[key]); msg != "" {
				return msg
			}
		}
		keys := make([]string, 0, len(payload))
		for k := range payload {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if msg := firstString(payload[k]); msg != "" {
				return k + ": " + msg
			}
		}
	}

	if text := strings.TrimSpace(string(body)); text != "" && len(text) <= 200 && !strings.HasPrefix(text, "<") {
		return text
	}
	if text := http.StatusText(status); text != "" {
		return text
	}
	return "Server Error"
}

func firstString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil && len(list) > 0 {
		return list[0]
	}
	return ""
}
