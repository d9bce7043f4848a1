// Package errors defines the error taxonomy of the artifact loading layer.
//
// Loader failures are data-integrity problems, never transient: each error
// type is fatal to the calling stage and is surfaced verbatim to the
// caller. Formatting and report-content failures deliberately do not
// appear here; those degrade in place and never propagate.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// NotFoundError reports that a referenced input file does not exist.
type NotFoundError struct {
	Path string
	Kind string // human label for the artifact, e.g. "forecast file"
}

func (e *NotFoundError) Error() string {
	if e.Kind == "" {
		return fmt.Sprintf("file not found: %s", e.Path)
	}
	return fmt.Sprintf("%s not found: %s", e.Kind, e.Path)
}

// NewNotFound creates a NotFoundError for the given artifact kind and path.
func NewNotFound(kind, path string) *NotFoundError {
	return &NotFoundError{Kind: kind, Path: path}
}

// SchemaError reports that required structure is absent: missing columns in
// a tabular file, missing keys in a structured document, or a table with no
// data rows. Missing lists the absent fields when applicable.
type SchemaError struct {
	Path    string
	Missing []string
	Reason  string // used when the failure is not a field-presence problem
}

func (e *SchemaError) Error() string {
	if len(e.Missing) > 0 {
		return fmt.Sprintf("%s: missing required fields: %s", e.Path, strings.Join(e.Missing, ", "))
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Reason)
}

// NewSchemaMissing creates a SchemaError listing absent required fields.
func NewSchemaMissing(path string, missing []string) *SchemaError {
	return &SchemaError{Path: path, Missing: missing}
}

// NewSchemaInvalid creates a SchemaError for a structural problem that is
// not a simple field absence, such as a header-only table.
func NewSchemaInvalid(path, reason string) *SchemaError {
	return &SchemaError{Path: path, Reason: reason}
}

// ParseError reports that the underlying CSV/JSON syntax could not be
// decoded. It wraps the decoder's error with file context.
type ParseError struct {
	Path   string
	Format string // "csv" or "json"
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid %s in %s: %v", e.Format, e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// NewParse creates a ParseError wrapping the decode failure.
func NewParse(path, format string, err error) *ParseError {
	return &ParseError{Path: path, Format: format, Err: err}
}

// IsNotFound reports whether err is (or wraps) a NotFoundError.
func IsNotFound(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

// IsSchema reports whether err is (or wraps) a SchemaError.
func IsSchema(err error) bool {
	var target *SchemaError
	return errors.As(err, &target)
}

// IsParse reports whether err is (or wraps) a ParseError.
func IsParse(err error) bool {
	var target *ParseError
	return errors.As(err, &target)
}
