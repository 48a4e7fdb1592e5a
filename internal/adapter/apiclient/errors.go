package apiclient

import (
	"encoding/json"
	"fmt"
	"strings"
)

// APIError is a non-2xx response from the backend. Message carries the
// server's explanation when the body had one.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed with status code %d", e.StatusCode)
}

// newAPIError reads {"message": "..."} or {"message": ["...", "..."]}, the two
// shapes the backend uses, falling back to {"error": "..."}.
func newAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: status}

	var payload struct {
		Message json.RawMessage `json:"message"`
		Error   string          `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return apiErr
	}

	var single string
	var list []string
	switch {
	case json.Unmarshal(payload.Message, &single) == nil && single != "":
		apiErr.Message = single
	case json.Unmarshal(payload.Message, &list) == nil && len(list) > 0:
		apiErr.Message = strings.Join(list, "; ")
	default:
		apiErr.Message = payload.Error
	}
	return apiErr
}
