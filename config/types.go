package config

import (
	"fmt"
	"time"

	"github.com/grovetools/catalogd/pkg/models"
	"github.com/mitchellh/mapstructure"
)

//go:generate sh -c "cd .. && go run ./tools/schema-generator/"

// Defaults applied by SetDefaults.
const (
	DefaultAddr              = "127.0.0.1:8088"
	DefaultMaxBodyBytes      = 1 << 20
	DefaultReadHeaderTimeout = "5s"
	DefaultShutdownTimeout   = "5s"
	DefaultConfigDebounceMs  = 100
)

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Addr              string `yaml:"addr,omitempty" toml:"addr,omitempty" jsonschema:"description=Listen address (default: 127.0.0.1:8088)"`
	MaxBodyBytes      int64  `yaml:"max_body_bytes,omitempty" toml:"max_body_bytes,omitempty" jsonschema:"description=Largest accepted request body in bytes (default: 1048576)"`
	ReadHeaderTimeout string `yaml:"read_header_timeout,omitempty" toml:"read_header_timeout,omitempty" jsonschema:"description=How long to wait for request headers (default: 5s)"`
	ShutdownTimeout   string `yaml:"shutdown_timeout,omitempty" toml:"shutdown_timeout,omitempty" jsonschema:"description=Grace period for in-flight requests on stop (default: 5s)"`
	WatchConfig       *bool  `yaml:"watch_config,omitempty" toml:"watch_config,omitempty" jsonschema:"description=Reload logging settings when the config file changes (default: false)"`
	ConfigDebounceMs  int    `yaml:"config_debounce_ms,omitempty" toml:"config_debounce_ms,omitempty" jsonschema:"description=Debounce window for rapid config changes in milliseconds (default: 100)"`
}

// CatalogConfig configures the initial catalog contents.
type CatalogConfig struct {
	SeedSamples *bool        `yaml:"seed_samples,omitempty" toml:"seed_samples,omitempty" jsonschema:"description=Seed the built-in sample entries at start (default: true)"`
	Cats        []models.Cat `yaml:"cats,omitempty" toml:"cats,omitempty" jsonschema:"description=Additional entries appended after the samples at start"`
}

// Config is the catalogd.yml document.
type Config struct {
	Version string        `yaml:"version" toml:"version" jsonschema:"description=Configuration version (e.g. 1.0)"`
	Server  ServerConfig  `yaml:"server,omitempty" toml:"server,omitempty" jsonschema:"description=HTTP server settings"`
	Catalog CatalogConfig `yaml:"catalog,omitempty" toml:"catalog,omitempty" jsonschema:"description=Catalog seeding"`

	// Extensions holds every other top-level section (e.g. logging) for
	// consumers to decode with UnmarshalExtension.
	Extensions map[string]interface{} `yaml:",inline" toml:"-" jsonschema:"-"`

	// Path is the file the configuration was loaded from, if any.
	Path string `yaml:"-" toml:"-" jsonschema:"-"`
}

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	cfg.SetDefaults()
	return cfg
}

// SetDefaults fills in unset values.
func (c *Config) SetDefaults() {
	if c.Version == "" {
		c.Version = "1.0"
	}
	if c.Server.Addr == "" {
		c.Server.Addr = DefaultAddr
	}
	if c.Server.MaxBodyBytes == 0 {
		c.Server.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if c.Server.ReadHeaderTimeout == "" {
		c.Server.ReadHeaderTimeout = DefaultReadHeaderTimeout
	}
	if c.Server.ShutdownTimeout == "" {
		c.Server.ShutdownTimeout = DefaultShutdownTimeout
	}
	if c.Server.ConfigDebounceMs == 0 {
		c.Server.ConfigDebounceMs = DefaultConfigDebounceMs
	}
	if c.Catalog.SeedSamples == nil {
		trueVal := true
		c.Catalog.SeedSamples = &trueVal
	}
	for i := range c.Catalog.Cats {
		if c.Catalog.Cats[i].Nicknames == nil {
			c.Catalog.Cats[i].Nicknames = []string{}
		}
	}
}

// ReadHeaderTimeoutDuration returns the parsed header timeout.
func (s ServerConfig) ReadHeaderTimeoutDuration() time.Duration {
	return parseDuration(s.ReadHeaderTimeout, DefaultReadHeaderTimeout)
}

// ShutdownTimeoutDuration returns the parsed shutdown grace period.
func (s ServerConfig) ShutdownTimeoutDuration() time.Duration {
	return parseDuration(s.ShutdownTimeout, DefaultShutdownTimeout)
}

// WatchEnabled reports whether config watching was requested.
func (s ServerConfig) WatchEnabled() bool {
	return s.WatchConfig != nil && *s.WatchConfig
}

// SeedEnabled reports whether the sample entries should be seeded.
func (c CatalogConfig) SeedEnabled() bool {
	return c.SeedSamples == nil || *c.SeedSamples
}

func parseDuration(value, fallback string) time.Duration {
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	d, _ := time.ParseDuration(fallback)
	return d
}

// UnmarshalExtension decodes a specific extension's configuration from the
// loaded file into the provided target struct. The target must be a pointer.
//
// Example:
//
//	var logCfg logging.Config
//	err := cfg.UnmarshalExtension("logging", &logCfg)
func (c *Config) UnmarshalExtension(key string, target interface{}) error {
	extensionConfig, ok := c.Extensions[key]
	if !ok {
		// A missing key leaves the target zero-valued.
		return nil
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		TagName:          "yaml",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return fmt.Errorf("failed to create mapstructure decoder: %w", err)
	}

	if err := decoder.Decode(extensionConfig); err != nil {
		return fmt.Errorf("failed to decode extension config for '%s': %w", key, err)
	}

	return nil
}
