package logger

import (
	"log/slog"
	"os"
)

// LoggerAdapter implements ports.LoggerPort on top of slog. Production
// gets JSON output, everything else a human readable text handler.
type LoggerAdapter struct {
	log *slog.Logger
}

func NewLoggerAdapter(env string) *LoggerAdapter {
	var handler slog.Handler
	if env == "production" {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	} else {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	}
	return &LoggerAdapter{log: slog.New(handler)}
}

func (l *LoggerAdapter) Info(msg string, fields map[string]interface{}) {
	l.log.Info(msg, attrs(fields)...)
}

func (l *LoggerAdapter) Warn(msg string, fields map[string]interface{}) {
	l.log.Warn(msg, attrs(fields)...)
}

func (l *LoggerAdapter) Error(msg string, fields map[string]interface{}) {
	l.log.Error(msg, attrs(fields)...)
}

func attrs(fields map[string]interface{}) []any {
	out := make([]any, 0, len(fields)*2)
	for k, v := range fields {
		out = append(out, k, v)
	}
	return out
}
