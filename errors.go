package openai

import (
	"encoding/json"
	"errors"
	"fmt"
)

// APIError is an error reported by the API itself (as opposed to a
// transport failure), decoded from its JSON error envelope.
type APIError struct {
	// StatusCode is the HTTP status the error arrived with.
	StatusCode int    `json:"-"`
	Message    string `json:"message"`
	Type       string `json:"type"`
	Param      string `json:"param,omitempty"`
	Code       string `json:"code,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error (%d): %s", e.StatusCode, e.Message)
}

// AsAPIError unwraps err into an *APIError, or returns nil if the error
// did not originate from an API error response.
func AsAPIError(err error) *APIError {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return nil
}

type apiErrorEnvelope struct {
	Error *APIError `json:"error"`
}

// decodeAPIError maps a non-success response body to an *APIError. Bodies
// that are not the documented error envelope are preserved verbatim.
func decodeAPIError(statusCode int, body []byte) error {
	var envelope apiErrorEnvelope
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error != nil && envelope.Error.Message != "" {
		envelope.Error.StatusCode = statusCode
		return envelope.Error
	}
	return &APIError{
		StatusCode: statusCode,
		Message:    string(body),
		Type:       "unknown",
	}
}
