package api

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/dmitrijs2005/devfolio/internal/common"
)

// User-facing messages of the special-cased statuses.
const (
	MessageSessionExpired = "Session expired. Please log in again."
	MessageForbidden      = "You do not have permission to perform this action."
	MessageNetwork        = "Network error"
	MessageRequestFailed  = "Request failed"
)

// Error is a failed backend call. StatusCode is 0 when no response arrived.
type Error struct {
	StatusCode int
	Message    string
	Errors     map[string][]string
	Err        error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// FieldErrors flattens the field error map into "field: message" lines,
// sorted by field.
func (e *Error) FieldErrors() []string {
	if len(e.Errors) == 0 {
		return nil
	}
	keys := make([]string, 0, len(e.Errors))
	for k := range e.Errors {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var out []string
	for _, k := range keys {
		for _, msg := range e.Errors[k] {
			out = append(out, fmt.Sprintf("%s: %s", k, msg))
		}
	}
	return out
}

// Detail is Message followed by the field errors, one per line.
func (e *Error) Detail() string {
	lines := append([]string{e.Message}, e.FieldErrors()...)
	return strings.Join(lines, "\n")
}

// NewValidationError builds the error returned by local form checks.
func NewValidationError(fields map[string][]string) *Error {
	return &Error{
		StatusCode: http.StatusBadRequest,
		Message:    "Please correct the highlighted fields.",
		Errors:     fields,
		Err:        common.ErrValidation,
	}
}

// StatusCode extracts the HTTP status of err, or 0.
func StatusCode(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.StatusCode
	}
	return 0
}

func synthesizedMessage(code int) string {
	return fmt.Sprintf("HTTP %d: %s", code, http.StatusText(code))
}
