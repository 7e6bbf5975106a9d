package api

import (
	"encoding/json"

	"github.com/dmitrijs2005/devfolio/internal/timex"
)

// Envelope is the uniform wrapper around every backend response.
type Envelope[T any] struct {
	Success    bool                `json:"success"`
	Message    string              `json:"message"`
	Data       T                   `json:"data,omitempty"`
	Errors     map[string][]string `json:"errors,omitempty"`
	StatusCode int                 `json:"statusCode"`
	Timestamp  timex.Time          `json:"timestamp"`
}

// rawEnvelope defers decoding of data until the caller's type is known.
type rawEnvelope = Envelope[json.RawMessage]

// OK builds a success envelope. Used by test backends.
func OK[T any](code int, message string, data T) Envelope[T] {
	return Envelope[T]{Success: true, Message: message, Data: data, StatusCode: code, Timestamp: timex.Now()}
}

// Fail builds a failure envelope. Used by test backends.
func Fail(code int, message string, fields map[string][]string) Envelope[any] {
	return Envelope[any]{Message: message, Errors: fields, StatusCode: code, Timestamp: timex.Now()}
}
