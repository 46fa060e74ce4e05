package loader

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// TOMLLoader decodes TOML files into typed configuration structs.
// Keys that do not map to a struct field are rejected.
type TOMLLoader struct {
	fs FileSystem
}

// NewTOMLLoader creates a TOML loader backed by the OS file system.
func NewTOMLLoader() *TOMLLoader {
	return &TOMLLoader{fs: DefaultFS()}
}

// NewTOMLLoaderWithFS creates a TOML loader with a custom file system.
func NewTOMLLoaderWithFS(fsys FileSystem) *TOMLLoader {
	return &TOMLLoader{fs: fsys}
}

// LoadFile decodes the file at path into v. It returns found == false and no
// error if the file does not exist.
func (l *TOMLLoader) LoadFile(path string, v any) (found bool, err error) {
	data, err := l.fs.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("reading config file %s: %w", path, err)
	}
	return true, decode(path, bytes.NewReader(data), v)
}

// LoadReader decodes TOML from r into v.
func (l *TOMLLoader) LoadReader(r io.Reader, v any) error {
	return decode("<reader>", r, v)
}

func decode(source string, r io.Reader, v any) error {
	dec := toml.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return newParseError(source, err)
	}
	return nil
}

// ParseError represents an error while parsing a configuration file.
type ParseError struct {
	Path    string
	Line    int
	Column  int
	Message string
	Err     error
}

func newParseError(path string, err error) *ParseError {
	pe := &ParseError{Path: path, Message: err.Error(), Err: err}

	var decErr *toml.DecodeError
	var strictErr *toml.StrictMissingError
	switch {
	case errors.As(err, &decErr):
		pe.Line, pe.Column = decErr.Position()
	case errors.As(err, &strictErr):
		keys := make([]string, 0, len(strictErr.Errors))
		for i, e := range strictErr.Errors {
			if i == 0 {
				pe.Line, pe.Column = e.Position()
			}
			keys = append(keys, strings.Join(e.Key(), "."))
		}
		pe.Message = "unknown keys: " + strings.Join(keys, ", ")
	}
	return pe
}

func (e *ParseError) Error() string {
	if e.Line > 0 && e.Column > 0 {
		return fmt.Sprintf("parse error in %s at line %d, column %d: %s", e.Path, e.Line, e.Column, e.Message)
	}
	if e.Line > 0 {
		return fmt.Sprintf("parse error in %s at line %d: %s", e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("parse error in %s: %s", e.Path, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
