// Package formatter renders decoded GTFS-RT feeds as JSON and writes them
// to their sinks.
//
// This package is organized into:
// - json.go: schema-aware JSON serialization with canonical whitespace
// - emitter.go: console and file sinks
// - file.go: atomic file replacement
package formatter
