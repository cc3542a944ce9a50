package csvx

import (
	"context"
	"github.com/viant/csvx/config"
	"io"
	"log/slog"
	"strings"
)

// Logger wraps slog.Logger with codec specific fields
type Logger struct {
	*slog.Logger
}

// NewLogger creates a text Logger writing to w at the level named by logging
func NewLogger(w io.Writer, logging config.Logging) *Logger {
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level(logging.Level)})
	return &Logger{Logger: slog.New(handler)}
}

func level(name string) slog.Level {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

// discard drops every record, used when no logger option is given
type discard struct{}

func (discard) Enabled(context.Context, slog.Level) bool  { return false }
func (discard) Handle(context.Context, slog.Record) error { return nil }
func (d discard) WithAttrs([]slog.Attr) slog.Handler      { return d }
func (d discard) WithGroup(string) slog.Handler           { return d }

// LogEncode logs an encode operation
func (l *Logger) LogEncode(mode string, records, columns int, err error) {
	if err != nil {
		l.Error("encode failed",
			"mode", mode,
			"records", records,
			"error", err,
		)
		return
	}
	l.Debug("encode completed",
		"mode", mode,
		"records", records,
		"columns", columns,
	)
}

// LogDecode logs a decode operation, record is the 1-based number of the last record read
func (l *Logger) LogDecode(record int, err error) {
	if err != nil {
		l.Error("decode failed",
			"record", record,
			"error", err,
		)
		return
	}
	l.Debug("decode completed",
		"records", record,
	)
}
