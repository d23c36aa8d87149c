package logger

import (
	"io"
	"log/slog"
	"os"

	"github.com/alkime/studio/internal/config"
)

// SetupLogger configures structured logging based on environment.
func SetupLogger(cfg *config.Config) *slog.Logger {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, options(cfg)))

	// Set as default logger
	slog.SetDefault(logger)

	return logger
}

// SetupCLILogger logs text to w so log lines stay out of command output.
func SetupCLILogger(cfg *config.Config, w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, options(cfg)))
}

func options(cfg *config.Config) *slog.HandlerOptions {
	logLevel := slog.LevelInfo
	if cfg.Env == config.EnvDevelopment {
		logLevel = slog.LevelDebug
	}
	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	}

	//nolint:exhaustruct // Using default values for other HandlerOptions fields
	return &slog.HandlerOptions{
		Level: logLevel,
	}
}
