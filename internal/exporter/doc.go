// Package exporter writes forecast and simulation tables to CSV and Excel
// files for downstream analysis outside the reporting pipeline.
package exporter
