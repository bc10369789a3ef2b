package cliconfig

import (
	"io"

	"github.com/rs/zerolog"

	"github.com/bft-labs/transmit/pkg/log"
)

// Logger builds the CLI logger from cfg. Call after Validate.
func Logger(w io.Writer, cfg Config) zerolog.Logger {
	return log.NewZerolog(w, cfg.Level(), cfg.LogFormat)
}
