package cliconfig

import (
	"fmt"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/bft-labs/transmit/pkg/datagram"
	"github.com/bft-labs/transmit/pkg/log"
	"github.com/bft-labs/transmit/pkg/message"
)

// Config holds CLI configuration for transmit.
type Config struct {
	Network        string
	MaxMessageSize int

	LogLevel  string
	LogFormat string

	DryRun bool
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		Network:        datagram.DefaultNetwork,
		MaxMessageSize: message.MaxSize,
		LogLevel:       zerolog.LevelInfoValue,
		LogFormat:      log.FormatConsole,
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if !datagram.ValidNetwork(c.Network) {
		return fmt.Errorf("network must be udp, udp4 or udp6, got %q", c.Network)
	}
	if c.MaxMessageSize <= 0 || c.MaxMessageSize > message.MaxSize {
		return fmt.Errorf("max message size must be in [1, %d], got %d", message.MaxSize, c.MaxMessageSize)
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	if _, err := log.ParseFormat(c.LogFormat); err != nil {
		return err
	}
	return nil
}

// Level returns the parsed log level, falling back to info.
func (c *Config) Level() zerolog.Level {
	lvl, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}

// configSetter helps apply configuration values while respecting flag precedence.
// It only applies values if the corresponding flag hasn't been explicitly set.
type configSetter struct {
	changed map[string]bool
}

func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setInt sets an int value if positive and flag not changed.
func (s *configSetter) setInt(flag string, value int, dst *int) {
	if value <= 0 || s.changed[flag] {
		return
	}
	*dst = value
}

// setBool sets a bool value from a pointer if not nil and flag not changed.
func (s *configSetter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setIntFromString parses a positive int and sets the destination.
// Unlike TOML, an environment variable has no zero value meaning "unset",
// so zero and negative values are errors.
func (s *configSetter) setIntFromString(flag, value string, dst *int) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	if i <= 0 {
		return fmt.Errorf("%s must be positive, got %d", flag, i)
	}
	*dst = i
	return nil
}

// setBoolFromString accepts "true" and "1" as true, anything else as false.
func (s *configSetter) setBoolFromString(flag, value string, dst *bool) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value == "true" || value == "1"
}
