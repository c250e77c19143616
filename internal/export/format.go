// Package export writes generated datasets out as CSV, JSON, YAML, SQLite or
// a passphrase-sealed envelope.
package export

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Format names an output encoding.
type Format string

const (
	CSV    Format = "csv"
	JSON   Format = "json"
	YAML   Format = "yaml"
	SQLite Format = "sqlite"
	Sealed Format = "sealed"
)

// Formats lists every supported format.
var Formats = []Format{CSV, JSON, YAML, SQLite, Sealed}

// ErrUnknownFormat is returned for a format name or extension that is not
// supported.
var ErrUnknownFormat = errors.New("unknown export format")

// ParseFormat resolves a format name. Common aliases such as "yml" and "db"
// are accepted.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "csv":
		return CSV, nil
	case "json":
		return JSON, nil
	case "yaml", "yml":
		return YAML, nil
	case "sqlite", "sqlite3", "db":
		return SQLite, nil
	case "sealed", "enc":
		return Sealed, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// FormatFromPath guesses the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "", fmt.Errorf("%w: %s has no extension", ErrUnknownFormat, path)
	}
	return ParseFormat(ext)
}

// Stream reports whether the format can be written to an io.Writer.
func (f Format) Stream() bool {
	switch f {
	case CSV, JSON, YAML:
		return true
	}
	return false
}
