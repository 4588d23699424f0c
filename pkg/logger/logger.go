package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

var defaultLogger *slog.Logger

// Options controls the handler built by Setup.
type Options struct {
	Env    string
	Level  string
	Format string
	Output io.Writer
}

// Init keeps the env-only entry point: JSON at info in production, text at debug otherwise.
func Init(env string) {
	if env == "production" {
		Setup(Options{Env: env, Level: "info", Format: "json"})
		return
	}
	Setup(Options{Env: env, Level: "debug", Format: "text"})
}

func Setup(opts Options) *slog.Logger {
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}

	handlerOpts := &slog.HandlerOptions{Level: ParseLevel(opts.Level)}

	var handler slog.Handler
	if strings.EqualFold(opts.Format, "json") {
		handler = slog.NewJSONHandler(out, handlerOpts)
	} else {
		handler = slog.NewTextHandler(out, handlerOpts)
	}

	defaultLogger = slog.New(handler)
	if opts.Env != "" {
		defaultLogger = defaultLogger.With("env", opts.Env)
	}
	slog.SetDefault(defaultLogger)
	return defaultLogger
}

// ParseLevel falls back to info for unknown names.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func LoggerWrapper() *slog.Logger {
	if defaultLogger == nil {
		// lazy initialize a development logger to avoid nil pointer panics
		Init("development")
	}
	return defaultLogger
}
