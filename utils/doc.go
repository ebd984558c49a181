// Package utils provides internal utility functions for the gtfsrt-to-json tool.
// This package is not intended to be imported by external code.
package utils
