// Package cli defines the agviz command tree. Each subcommand drives the
// same pipeline: invoke the engine, load the artifacts it wrote, render
// charts, and optionally assemble a Markdown report and table exports.
package cli
