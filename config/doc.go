// Package config handles application configuration loading and validation.
//
// Configuration comes from three layers: built-in defaults, an optional
// config.yml validated using struct tags, and GTFSRT_JSON_* environment
// variables. The config file may carry a catalog of named feeds; one of them
// can be selected by name at startup.
package config
