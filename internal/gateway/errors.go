package gateway

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	fhttp "github.com/bogdanfinn/fhttp"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrMissingID = errors.New("id is required")

	ErrEmptyResponse = errors.New("empty response body")
)

// APIError is a non-2xx answer from the backend.
type APIError struct {
	Method  string
	Path    string
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s %s: http %d", e.Method, e.Path, e.Status)
	}
	return fmt.Sprintf("%s %s: http %d: %s", e.Method, e.Path, e.Status, e.Message)
}

func (e *APIError) Is(target error) bool {
	return target == ErrNotFound && e.Status == fhttp.StatusNotFound
}

func parseError(method, path string, resp *fhttp.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	apiErr := &APIError{Method: method, Path: path, Status: resp.StatusCode}

	var decoded struct {
		Message string          `json:"message"`
		Error   json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal(body, &decoded); err == nil {
		switch {
		case decoded.Message != "":
			apiErr.Message = decoded.Message
		case len(decoded.Error) > 0:
			var text string
			if json.Unmarshal(decoded.Error, &text) == nil {
				apiErr.Message = text
				break
			}
			var nested struct {
				Message string `json:"message"`
			}
			if json.Unmarshal(decoded.Error, &nested) == nil {
				apiErr.Message = nested.Message
			}
		}
		return apiErr
	}

	text := strings.TrimSpace(string(body))
	if len(text) > 200 {
		text = text[:197] + "..."
	}
	apiErr.Message = text
	return apiErr
}
