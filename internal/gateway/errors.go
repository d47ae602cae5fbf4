package gateway

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/altiplano/backoffice/internal/platform/httpx"
)

// APIError is an application-level failure reported by the backend: a non-2xx
// status whose body carries {"error": "..."}.
type APIError struct {
	Operation string
	Status    int
	Message   string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: backend returned %d: %s", e.Operation, e.Status, e.Message)
	}
	return fmt.Sprintf("%s: backend returned %d", e.Operation, e.Status)
}

// Unwrap maps the backend status onto the response sentinels so fragment
// handlers can translate failures without inspecting status codes.
func (e *APIError) Unwrap() error {
	switch {
	case e.Status == http.StatusNotFound:
		return httpx.ErrNotFound
	case e.Status >= http.StatusInternalServerError:
		return httpx.ErrUnavailable
	case e.Status >= http.StatusBadRequest:
		return httpx.ErrValidation
	}
	return nil
}

// AsAPIError unwraps err into an *APIError when possible.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

func decodeAPIError(operation string, resp *http.Response) error {
	apiErr := &APIError{Operation: operation, Status: resp.StatusCode}
	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err != nil {
		return apiErr
	}
	var payload struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(body, &payload) == nil {
		apiErr.Message = payload.Error
	}
	return apiErr
}
