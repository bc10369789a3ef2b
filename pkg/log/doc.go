// Package log provides the logging abstraction used by transmit components.
//
// Components depend only on the Logger interface. A zerolog-backed
// implementation is used by the command line tool and a no-op logger is the
// default for library callers and tests:
//
//	logger := log.NewZerologAdapter(os.Stderr, zerolog.InfoLevel, log.FormatConsole)
//	logger.Info("datagram sent", log.String("to", "127.0.0.1:4001"), log.Int("bytes", 31))
package log
