// Package config loads and validates the application configuration.
//
// Configuration is layered: built-in defaults, then an optional YAML file,
// then AGVIZ_-prefixed environment variables, which take precedence. The
// merged result is validated before use.
package config
