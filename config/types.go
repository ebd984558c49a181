package config

import "time"

// JSONConfig controls how the decoded feed is rendered as JSON
type JSONConfig struct {
	Indent          string `yaml:"indent"`
	UseProtoNames   bool   `yaml:"useProtoNames"`
	EmitUnpopulated bool   `yaml:"emitUnpopulated"`
}

// LogConfig contains logging configuration
type LogConfig struct {
	Level string `yaml:"level" validate:"omitempty,oneof=debug info warn error"`
}

// Feed represents a single named GTFS-RT endpoint
type Feed struct {
	Name    string            `yaml:"name" validate:"required"`
	URL     string            `yaml:"url" validate:"required,http_url"`
	Headers map[string]string `yaml:"headers"`
}

// AppConfig is the root configuration structure
type AppConfig struct {
	URL       string            `yaml:"url" validate:"required,http_url"`
	Output    string            `yaml:"output" validate:"required"`
	TimeoutMS int               `yaml:"timeoutMS" validate:"gte=0"`
	UserAgent string            `yaml:"userAgent"`
	Headers   map[string]string `yaml:"headers"`
	JSON      JSONConfig        `yaml:"json"`
	Log       LogConfig         `yaml:"log"`
	Feeds     []Feed            `yaml:"feeds" validate:"dive"`

	// Source is the config file that was read, empty when running on defaults.
	Source string `yaml:"-"`
	// FeedName is the catalog entry selected at startup, if any.
	FeedName string `yaml:"-"`
}

// Timeout returns the whole-request timeout. Zero means no client timeout.
func (c AppConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutMS) * time.Millisecond
}
