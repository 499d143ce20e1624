package config

import (
	"fmt"
	"net"
	"time"

	"github.com/grovetools/catalogd/errors"
)

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if err := validateServer(&c.Server); err != nil {
		return errors.Wrap(err, errors.ErrCodeConfigValidation, "invalid server configuration")
	}

	for i, cat := range c.Catalog.Cats {
		if cat.Name == "" {
			return errors.New(errors.ErrCodeConfigValidation, fmt.Sprintf("catalog.cats[%d]: name cannot be empty", i)).
				WithDetail("index", i)
		}
		if !cat.Colour.Valid() {
			return errors.New(errors.ErrCodeConfigValidation, fmt.Sprintf("catalog.cats[%d]: unknown colour %q", i, cat.Colour)).
				WithDetail("index", i).
				WithDetail("colour", string(cat.Colour))
		}
	}

	return nil
}

func validateServer(s *ServerConfig) error {
	if _, _, err := net.SplitHostPort(s.Addr); err != nil {
		return errors.New(errors.ErrCodeInvalidInput, fmt.Sprintf("addr %q must be host:port", s.Addr)).
			WithDetail("addr", s.Addr)
	}

	if s.MaxBodyBytes <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "max_body_bytes must be positive").
			WithDetail("max_body_bytes", s.MaxBodyBytes)
	}

	if s.ConfigDebounceMs < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "config_debounce_ms cannot be negative")
	}

	for name, value := range map[string]string{
		"read_header_timeout": s.ReadHeaderTimeout,
		"shutdown_timeout":    s.ShutdownTimeout,
	} {
		if err := validateDuration(name, value); err != nil {
			return err
		}
	}

	return nil
}

func validateDuration(name, value string) error {
	d, err := time.ParseDuration(value)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeInvalidInput, fmt.Sprintf("%s %q is not a duration", name, value)).
			WithDetail(name, value)
	}
	if d <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, fmt.Sprintf("%s must be positive", name)).
			WithDetail(name, value)
	}
	return nil
}
