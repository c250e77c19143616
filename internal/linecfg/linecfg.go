// Package linecfg reads the line-oriented configuration format shared by the
// vocabulary, name and schema files.
//
// Each non-blank line that does not start with '#' holds one entry:
//
//	key=value
//	key=[first,second,third]
//
// The first '=' splits key from value. Bracketed values are lists; list items
// are trimmed of surrounding whitespace.
package linecfg

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrMalformedLine is wrapped by a LoadError when a line has no '=' or an
// empty key.
var ErrMalformedLine = errors.New("malformed line")

// LoadError reports a config source that could not be read in full.
type LoadError struct {
	Path string
	Line int // 1-based, zero when the failure is not tied to a line
	Err  error
}

func (e *LoadError) Error() string {
	path := e.Path
	if path == "" {
		path = "config"
	}
	if e.Line > 0 {
		return fmt.Sprintf("load %s:%d: %v", path, e.Line, e.Err)
	}
	return fmt.Sprintf("load %s: %v", path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// FileReader is the read side of a filesystem. The zfilesystem
// implementations, embed.FS and fstest.MapFS all satisfy it.
type FileReader interface {
	ReadFile(name string) ([]byte, error)
}

// Entry is one parsed key/value line.
type Entry struct {
	Key   string
	Value string   // trimmed raw value, brackets included
	List  bool     // value was written as [a,b,c]
	Items []string // list items when List is set
	Line  int
}

// Values returns the entry as a list. Scalar values are split on commas the
// same way bracketed ones are, so "a,b" and "[a,b]" read alike.
func (e Entry) Values() []string {
	if e.List {
		return e.Items
	}
	return splitItems(e.Value)
}

// Read loads and parses path from fsys. Entries parsed before a malformed
// line are returned together with the error.
func Read(fsys FileReader, path string) ([]Entry, error) {
	data, err := fsys.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}

	entries, err := Parse(bytes.NewReader(data))
	if err != nil {
		var le *LoadError
		if errors.As(err, &le) {
			le.Path = path
			return entries, le
		}
		return entries, &LoadError{Path: path, Err: err}
	}
	return entries, nil
}

// Parse reads entries from r in declaration order.
func Parse(r io.Reader) ([]Entry, error) {
	var entries []Entry

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	n := 0
	for sc.Scan() {
		n++
		line := strings.TrimRight(sc.Text(), "\r")
		if strings.HasPrefix(line, "#") || strings.TrimSpace(line) == "" {
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return entries, &LoadError{Line: n, Err: ErrMalformedLine}
		}

		entries = append(entries, parseValue(key, strings.TrimSpace(value), n))
	}
	if err := sc.Err(); err != nil {
		return entries, &LoadError{Line: n, Err: err}
	}

	return entries, nil
}

func parseValue(key, value string, line int) Entry {
	e := Entry{Key: key, Value: value, Line: line}
	if !strings.HasPrefix(value, "[") {
		return e
	}

	inner := strings.TrimPrefix(value, "[")
	inner = strings.TrimSuffix(inner, "]")
	e.List = true
	e.Items = splitItems(inner)
	return e
}

func splitItems(s string) []string {
	if strings.TrimSpace(s) == "" {
		return []string{}
	}
	parts := strings.Split(s, ",")
	items := make([]string, 0, len(parts))
	for _, p := range parts {
		items = append(items, strings.TrimSpace(p))
	}
	return items
}
