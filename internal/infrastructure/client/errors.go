package client

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/Rushi-chippa/SalesERPFullProject/internal/domain/shared"
)

// errorBody is the backend's error envelope. detail is either a message or
// a list of field errors.
type errorBody struct {
	Detail json.RawMessage `json:"detail"`
}

type fieldError struct {
	Loc []any  `json:"loc"`
	Msg string `json:"msg"`
}

// statusError maps a non-2xx response onto a domain error.
func statusError(status int, body []byte) error {
	switch {
	case status == http.StatusUnauthorized:
		return shared.NewUnauthorizedError("")
	case status == http.StatusNotFound:
		return shared.NewNotFoundError(detail(body))
	case status == http.StatusBadRequest, status == http.StatusConflict, status == http.StatusUnprocessableEntity:
		return shared.NewValidationError(detail(body))
	case status >= 500:
		return shared.NewTransportError(fmt.Sprintf("The sales backend failed (%d)", status))
	case status >= 400:
		return shared.NewValidationError("")
	}
	return shared.NewTransportError(fmt.Sprintf("Unexpected response status %d", status))
}

// detail extracts a human message from the error body, or "" when none.
func detail(body []byte) string {
	var eb errorBody
	if len(body) == 0 || json.Unmarshal(body, &eb) != nil || len(eb.Detail) == 0 {
		return ""
	}
	var msg string
	if json.Unmarshal(eb.Detail, &msg) == nil {
		return msg
	}
	var fields []fieldError
	if json.Unmarshal(eb.Detail, &fields) == nil && len(fields) > 0 {
		parts := make([]string, 0, len(fields))
		for _, f := range fields {
			if name := fieldName(f.Loc); name != "" {
				parts = append(parts, name+": "+f.Msg)
			} else {
				parts = append(parts, f.Msg)
			}
		}
		return strings.Join(parts, "; ")
	}
	return ""
}

// fieldName drops the leading "body"/"query" segment of a loc path.
func fieldName(loc []any) string {
	if len(loc) > 1 {
		loc = loc[1:]
	}
	parts := make([]string, 0, len(loc))
	for _, p := range loc {
		parts = append(parts, fmt.Sprint(p))
	}
	return strings.Join(parts, ".")
}

func statusLabel(code int) string {
	return fmt.Sprintf("%dxx", code/100)
}
