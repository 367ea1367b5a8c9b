package transport

import (
	"fmt"
	"net/http"

	"github.com/tidwall/gjson"
)

// InternalErrorMessage is used when a failed response carries no message of its own.
const InternalErrorMessage = "API call failed in an unexpected way. Try again."

// APIError is returned for every non-2xx response and for 2xx responses whose
// body could not be read.
type APIError struct {
	StatusCode int    // HTTP status code, e.g. 404
	Status     string // HTTP status text, e.g. "404 Not Found"
	Message    string // Message from the error envelope, or a generic one
	Method     string
	Path       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s %s: %s: %s", e.Method, e.Path, e.Status, e.Message)
}

// newAPIError builds the error for a failed response from its body. A JSON
// envelope with a string "message" field supplies the message.
func newAPIError(resp *http.Response, method, path string, body []byte) *APIError {
	message := InternalErrorMessage
	if gjson.ValidBytes(body) {
		if m := gjson.GetBytes(body, "message"); m.Type == gjson.String {
			message = m.String()
		}
	}
	return &APIError{
		StatusCode: resp.StatusCode,
		Status:     statusText(resp),
		Message:    message,
		Method:     method,
		Path:       path,
	}
}

// ResponseError builds the error for a 2xx response the SDK could not use.
func ResponseError(resp *http.Response, method, path, message string) *APIError {
	return &APIError{
		StatusCode: resp.StatusCode,
		Status:     statusText(resp),
		Message:    message,
		Method:     method,
		Path:       path,
	}
}

func statusText(resp *http.Response) string {
	if resp.Status != "" {
		return resp.Status
	}
	return fmt.Sprintf("%d %s", resp.StatusCode, http.StatusText(resp.StatusCode))
}
