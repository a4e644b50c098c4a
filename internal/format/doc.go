// Package format implements the formatting pipeline that drives external
// style tools over discovered source files.
//
// It exposes a Service that checks each file with a style checker, repairs the
// reported lines with auto-formatters, normalizes import order, and stages the
// results with git, along with the cobra command wiring for the CLI.
package format
