package log

import (
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"
)

// Output formats understood by NewZerolog.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// NewZerolog builds a zerolog.Logger writing to w. The console format is a
// human readable writer with RFC3339 timestamps; json writes one object per
// line.
func NewZerolog(w io.Writer, level zerolog.Level, format string) zerolog.Logger {
	if format != FormatJSON {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

// ParseFormat validates a log format name.
func ParseFormat(s string) (string, error) {
	switch s {
	case FormatConsole, FormatJSON:
		return s, nil
	}
	return "", fmt.Errorf("unknown log format %q (want %q or %q)", s, FormatConsole, FormatJSON)
}

// ZerologAdapter implements Logger using zerolog.
type ZerologAdapter struct {
	logger zerolog.Logger
}

// NewZerologAdapter creates an adapter writing to w.
func NewZerologAdapter(w io.Writer, level zerolog.Level, format string) *ZerologAdapter {
	return &ZerologAdapter{logger: NewZerolog(w, level, format)}
}

// NewZerologAdapterWithLogger creates an adapter wrapping an existing zerolog.Logger.
func NewZerologAdapterWithLogger(logger zerolog.Logger) *ZerologAdapter {
	return &ZerologAdapter{logger: logger}
}

// Debug logs a debug-level message.
func (z *ZerologAdapter) Debug(msg string, fields ...Field) {
	emit(z.logger.Debug(), msg, fields)
}

// Info logs an info-level message.
func (z *ZerologAdapter) Info(msg string, fields ...Field) {
	emit(z.logger.Info(), msg, fields)
}

// Warn logs a warning-level message.
func (z *ZerologAdapter) Warn(msg string, fields ...Field) {
	emit(z.logger.Warn(), msg, fields)
}

// Error logs an error-level message.
func (z *ZerologAdapter) Error(msg string, fields ...Field) {
	emit(z.logger.Error(), msg, fields)
}

func emit(event *zerolog.Event, msg string, fields []Field) {
	for _, f := range fields {
		event = addField(event, f)
	}
	event.Msg(msg)
}

// addField adds a Field to a zerolog.Event.
func addField(event *zerolog.Event, f Field) *zerolog.Event {
	switch v := f.Value.(type) {
	case string:
		return event.Str(f.Key, v)
	case int:
		return event.Int(f.Key, v)
	case []byte:
		return event.Hex(f.Key, v)
	case time.Duration:
		return event.Dur(f.Key, v)
	case error:
		return event.Err(v)
	case fmt.Stringer:
		return event.Stringer(f.Key, v)
	default:
		return event.Interface(f.Key, v)
	}
}
