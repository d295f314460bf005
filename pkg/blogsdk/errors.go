package blogsdk

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// ============================================================================
// APIError - non-2xx responses
// ============================================================================

// APIError is returned for every response outside the 2xx range.
//
// The API is not consistent about error bodies. Depending on the endpoint a
// failure arrives as plain text, as {"message": ...}, as {"error": ...}, as
// a field map under "errors", or from the authentication filter as
// {"error": ..., "banned": true}. All of them are folded into this type.
type APIError struct {
	// StatusCode is the HTTP status of the response.
	StatusCode int

	// Message is the best human readable description found in the body.
	Message string

	// Errors holds per-field messages from a server-side validation failure.
	Errors map[string]string

	// Banned is set when the account has been banned. By the time the
	// caller sees it the local session has already been cleared.
	Banned bool
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	if len(e.Errors) > 0 {
		msg += " (" + joinFields(e.Errors) + ")"
	}
	return fmt.Sprintf("blogsdk: HTTP %d: %s", e.StatusCode, msg)
}

// IsBanned reports whether err carries the ban signal.
func IsBanned(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Banned
}

// IsStatus reports whether err is an APIError with the given status code.
func IsStatus(err error, code int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == code
}

// errorBody is the union of every JSON error shape the API produces.
type errorBody struct {
	Message string            `json:"message"`
	Error   string            `json:"error"`
	Errors  map[string]string `json:"errors"`
	Banned  bool              `json:"banned"`
}

// parseErrorResponse converts a failed response into an *APIError.
// Returns nil for 2xx.
func parseErrorResponse(resp *http.Response, body []byte) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	apiErr := &APIError{StatusCode: resp.StatusCode}

	trimmed := bytes.TrimSpace(body)
	if eb, ok := decodeErrorBody(trimmed); ok {
		apiErr.Banned = eb.Banned
		apiErr.Errors = eb.Errors
		switch {
		case eb.Message != "":
			apiErr.Message = eb.Message
		case eb.Error != "":
			apiErr.Message = eb.Error
		}
		return apiErr
	}

	// Plain text bodies are used verbatim, HTML error pages are not.
	if len(trimmed) > 0 && trimmed[0] != '<' {
		apiErr.Message = string(trimmed)
	}
	return apiErr
}

// decodeErrorBody reads a JSON object body field by field, so a field of
// an unexpected type leaves only that field empty.
func decodeErrorBody(body []byte) (errorBody, bool) {
	var eb errorBody
	if len(body) == 0 || body[0] != '{' {
		return eb, false
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return eb, false
	}

	decodeField(fields, "message", &eb.Message)
	decodeField(fields, "error", &eb.Error)
	decodeField(fields, "errors", &eb.Errors)
	decodeField(fields, "banned", &eb.Banned)
	return eb, true
}

func decodeField(fields map[string]json.RawMessage, key string, dst any) {
	if raw, ok := fields[key]; ok {
		_ = json.Unmarshal(raw, dst)
	}
}

// isBannedBody reports whether a raw response body carries banned: true.
func isBannedBody(body []byte) bool {
	eb, _ := decodeErrorBody(bytes.TrimSpace(body))
	return eb.Banned
}

// ============================================================================
// ValidationError - rejected before sending
// ============================================================================

// ValidationError is returned when a request fails local validation. No
// request is sent in that case.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return "blogsdk: invalid request: " + joinFields(e.Fields)
}

func joinFields(fields map[string]string) string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+fields[k])
	}
	return strings.Join(parts, "; ")
}
