// Package metadata persists the client's session documents in the local
// metadata table. Every key holds one JSON value; reads and writes work on
// several keys at once so a session is loaded or replaced as a unit.
package metadata

import (
	"context"
	"encoding/json"
	"fmt"
)

// Repository reads and writes rows of the metadata table.
type Repository interface {
	// Lookup returns the rows for keys. Keys without a row are absent from
	// the result.
	Lookup(ctx context.Context, keys ...string) (map[string][]byte, error)
	// Put upserts every entry in a single statement.
	Put(ctx context.Context, entries map[string][]byte) error
	// Delete removes keys. Missing keys are ignored.
	Delete(ctx context.Context, keys ...string) error
	// Snapshot returns the whole table.
	Snapshot(ctx context.Context) (map[string][]byte, error)
}

// DecodeError reports a row whose value is not valid JSON for the target
// type.
type DecodeError struct {
	Key string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("metadata: decode %s: %v", e.Key, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Decode unmarshals rows[key] into a T. ok is false when the key has no row.
func Decode[T any](rows map[string][]byte, key string) (v T, ok bool, err error) {
	raw, found := rows[key]
	if !found || raw == nil {
		return v, false, nil
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		return v, false, &DecodeError{Key: key, Err: err}
	}
	return v, true, nil
}

// Encode marshals v and stores it in rows under key.
func Encode(rows map[string][]byte, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("metadata: encode %s: %w", key, err)
	}
	rows[key] = raw
	return nil
}
