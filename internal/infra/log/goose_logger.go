package logs

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
)

// GooseLogger routes goose migration output into slog.
type GooseLogger struct {
	logger *slog.Logger
}

// NewGooseLogger wraps logger for goose.SetLogger.
func NewGooseLogger(logger *slog.Logger) *GooseLogger {
	return &GooseLogger{logger: logger.With(slog.String("component", "migrations"))}
}

func (l *GooseLogger) Printf(format string, v ...any) {
	l.logger.LogAttrs(context.Background(), slog.LevelInfo, "Goose migration",
		slog.String("message", strings.TrimSpace(fmt.Sprintf(format, v...))),
	)
}

// Fatalf keeps goose's contract: the process exits after the message is written.
func (l *GooseLogger) Fatalf(format string, v ...any) {
	l.logger.LogAttrs(context.Background(), slog.LevelError, "Goose migration failed",
		slog.String("message", strings.TrimSpace(fmt.Sprintf(format, v...))),
	)
	os.Exit(1)
}
