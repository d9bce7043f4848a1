// Package artifacts loads and validates the files the ag engine produces.
//
// Each loader takes a file path and returns a typed entity from
// pkg/contracts/domain, or one of the errors defined in internal/errors:
// NotFoundError when the path does not exist, SchemaError when required
// columns or keys are absent, ParseError when the CSV/JSON syntax cannot
// be decoded. Validation is strict at this boundary; everything downstream
// (formatting, reports) is best-effort.
package artifacts
