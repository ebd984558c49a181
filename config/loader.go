package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultURL is the MTA NYCT J/Z subway feed.
	DefaultURL        = "https://api-endpoint.mta.info/Dataservice/mtagtfsfeeds/nyct%2Fgtfs-jz"
	DefaultOutputPath = "gtfs_output.json"
	DefaultUserAgent  = "gtfsrt-to-json"
	DefaultIndent     = "  "
	DefaultLogLevel   = "info"

	// EnvPrefix namespaces environment overrides, e.g. GTFSRT_JSON_URL.
	EnvPrefix = "GTFSRT_JSON"
)

// SearchPaths are tried in order when no explicit config path is given.
var SearchPaths = []string{"config.yml", "./configs/config.yml"}

// Default returns the configuration used when no file and no environment
// overrides are present.
func Default() AppConfig {
	return AppConfig{
		URL:       DefaultURL,
		Output:    DefaultOutputPath,
		UserAgent: DefaultUserAgent,
		Headers:   map[string]string{},
		JSON: JSONConfig{
			Indent: DefaultIndent,
		},
		Log: LogConfig{
			Level: DefaultLogLevel,
		},
	}
}

// Load builds the application configuration. An explicit path must exist;
// without one the SearchPaths are tried and defaults are used when none is
// found. The named feed, if any, is applied before environment overrides,
// and the result is validated.
func Load(path, feedName string) (AppConfig, error) {
	cfg := Default()

	data, source, err := readConfigFile(path)
	if err != nil {
		return cfg, err
	}
	if data != nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", source, err)
		}
		cfg.Source = source
	}

	if err := SelectFeed(&cfg, feedName); err != nil {
		return cfg, err
	}
	if err := applyEnv(&cfg); err != nil {
		return cfg, err
	}
	if err := Validate(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks the struct tags of cfg and its feed catalog.
func Validate(cfg AppConfig) error {
	v := validator.New()
	if err := v.Struct(cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// SelectFeed replaces the endpoint with the named catalog entry and merges
// its headers over the top-level ones. An empty name keeps the top-level URL.
func SelectFeed(cfg *AppConfig, name string) error {
	if name == "" {
		return nil
	}
	for _, f := range cfg.Feeds {
		if f.Name != name {
			continue
		}
		cfg.URL = f.URL
		if cfg.Headers == nil {
			cfg.Headers = map[string]string{}
		}
		for k, v := range f.Headers {
			cfg.Headers[k] = v
		}
		cfg.FeedName = f.Name
		return nil
	}
	return fmt.Errorf("feed %q not found in config", name)
}

func readConfigFile(path string) ([]byte, string, error) {
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, "", fmt.Errorf("read config: %w", err)
		}
		return data, path, nil
	}
	for _, p := range SearchPaths {
		data, err := os.ReadFile(p)
		if err == nil {
			return data, p, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, "", fmt.Errorf("read config: %w", err)
		}
	}
	return nil, "", nil
}

// applyEnv overlays GTFSRT_JSON_* variables on cfg.
func applyEnv(cfg *AppConfig) error {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if v.IsSet("url") {
		cfg.URL = v.GetString("url")
	}
	if v.IsSet("output") {
		cfg.Output = v.GetString("output")
	}
	if v.IsSet("timeout-ms") {
		raw := strings.TrimSpace(v.GetString("timeout-ms"))
		ms, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("invalid %s_TIMEOUT_MS %q: %w", EnvPrefix, raw, err)
		}
		cfg.TimeoutMS = ms
	}
	if v.IsSet("log-level") {
		cfg.Log.Level = strings.ToLower(v.GetString("log-level"))
	}
	return nil
}
