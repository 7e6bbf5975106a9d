// Package filex locates the client's local database file.
package filex

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DataDir returns dirName under the user's home directory, or under the
// working directory when no home is known, creating it with owner-only
// access.
func DataDir(dirName string) (string, error) {
	base, err := os.UserHomeDir()
	if err != nil || base == "" {
		if base, err = os.Getwd(); err != nil {
			return "", fmt.Errorf("locate data dir: %w", err)
		}
	}

	dir := filepath.Join(base, dirName)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("create data dir %s: %w", dir, err)
	}
	return dir, nil
}

// ResolveDataFile maps a configured database location to a SQLite DSN. A
// bare file name lands in the data directory. Absolute paths, paths with a
// directory part, ":memory:" and "file:" URIs are returned unchanged.
func ResolveDataFile(dirName, name string) (string, error) {
	switch {
	case name == ":memory:", strings.HasPrefix(name, "file:"):
		return name, nil
	case filepath.IsAbs(name), filepath.Dir(name) != ".":
		return name, nil
	}

	dir, err := DataDir(dirName)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, name), nil
}
