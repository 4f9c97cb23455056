package api

import (
	"fmt"
	"net/http"
	"sort"
)

// Error is an application failure: the backend answered with a non-2xx status.
// Body keeps the parsed response for callers that need field-level detail;
// Fields is populated when the backend returned an object of validation
// errors under "error".
type Error struct {
	Status  int
	Message string
	Body    any
	Fields  map[string]string
}

func (e *Error) Error() string {
	return e.Message
}

// NetworkError is a transport failure: no HTTP response was obtained at all
// (DNS, refused connection, timeout). Kept distinct from Error so callers can
// tell "the backend said no" from "the backend never answered".
type NetworkError struct {
	URL string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: request to %s failed: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// newError builds an Error from a parsed failure body. Message precedence:
//
//  1. body.message
//  2. body.error — when it is an object of field errors, the first value
//     (by sorted field name) becomes the message and the full set is kept
//     in Fields; when it is a string it is used directly
//  3. "HTTP <status>: <status text>"
func newError(status int, body any) *Error {
	apiErr := &Error{Status: status, Body: body}

	if m, ok := body.(map[string]any); ok {
		if msg, ok := m["message"].(string); ok && msg != "" {
			apiErr.Message = msg
			return apiErr
		}
		switch errVal := m["error"].(type) {
		case string:
			if errVal != "" {
				apiErr.Message = errVal
				return apiErr
			}
		case map[string]any:
			fields := make(map[string]string, len(errVal))
			keys := make([]string, 0, len(errVal))
			for k, v := range errVal {
				keys = append(keys, k)
				fields[k] = fmt.Sprintf("%v", v)
			}
			if len(keys) > 0 {
				sort.Strings(keys)
				apiErr.Fields = fields
				apiErr.Message = fields[keys[0]]
				return apiErr
			}
		}
	}

	apiErr.Message = fmt.Sprintf("HTTP %d: %s", status, http.StatusText(status))
	return apiErr
}
