// Package report assembles the Markdown documents that accompany each
// pipeline stage.
//
// Reports are built section by section so that optional content (model
// parameters, diagnostic test results) can be rendered conditionally.
// The package is best-effort by contract: once the mandatory entities
// loaded, a report is always produced, with reduced sections where
// optional inputs are absent.
package report
