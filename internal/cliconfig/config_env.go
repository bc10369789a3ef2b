package cliconfig

import "os"

// Environment variables read by ApplyEnvConfig.
const (
	EnvNetwork        = "TRANSMIT_NETWORK"
	EnvMaxMessageSize = "TRANSMIT_MAX_MESSAGE_SIZE"
	EnvLogLevel       = "TRANSMIT_LOG_LEVEL"
	EnvLogFormat      = "TRANSMIT_LOG_FORMAT"
	EnvDryRun         = "TRANSMIT_DRY_RUN"
)

// ApplyEnvConfig applies configuration from environment variables (TRANSMIT_*).
// It respects flags that have been explicitly set (changed map).
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("network", os.Getenv(EnvNetwork), &cfg.Network)
	s.setString("log-level", os.Getenv(EnvLogLevel), &cfg.LogLevel)
	s.setString("log-format", os.Getenv(EnvLogFormat), &cfg.LogFormat)

	if err := s.setIntFromString("max-message-size", os.Getenv(EnvMaxMessageSize), &cfg.MaxMessageSize); err != nil {
		return err
	}

	s.setBoolFromString("dry-run", os.Getenv(EnvDryRun), &cfg.DryRun)

	return nil
}
