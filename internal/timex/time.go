package timex

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// layouts accepted by Time.UnmarshalJSON, tried in order. Zoneless values
// are read as UTC.
var layouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	time.DateOnly,
}

// Time wraps time.Time with a JSON decoder that also accepts timestamps
// without a zone and bare dates. It encodes as RFC 3339.
type Time struct {
	time.Time
}

// Of wraps t.
func Of(t time.Time) Time {
	return Time{Time: t}
}

// Ptr wraps t and returns a pointer, for optional fields.
func Ptr(t time.Time) *Time {
	v := Of(t)
	return &v
}

// Std unwraps an optional value; a nil receiver gives nil.
func (t *Time) Std() *time.Time {
	if t == nil {
		return nil
	}
	v := t.Time
	return &v
}

// Now is the current UTC time.
func Now() Time {
	return Of(time.Now().UTC())
}

func (t Time) MarshalJSON() ([]byte, error) {
	return t.Time.MarshalJSON()
}

func (t *Time) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("time: %w", err)
	}
	if s == "" {
		t.Time = time.Time{}
		return nil
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	t.Time = parsed
	return nil
}

// Parse reads s in any of the accepted layouts.
func Parse(s string) (time.Time, error) {
	for _, layout := range layouts {
		if v, err := time.Parse(layout, s); err == nil {
			return v, nil
		}
	}
	return time.Time{}, fmt.Errorf("time: unrecognized format %q", s)
}
