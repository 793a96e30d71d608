// Package export renders a composed configuration for people and tools:
// the whole descriptor as JSON or YAML, and the per-class rule pipelines
// as a table.
package export
