// Package logging provides structured logging for the scraper using zerolog.
// Terminals get human-readable console output, everything else gets JSON;
// LOG_LEVEL and LOG_FORMAT override the defaults.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var defaultLogger zerolog.Logger

func init() {
	defaultLogger = newLogger(levelFromEnv(), formatFromEnv())
}

func newLogger(level zerolog.Level, format string) zerolog.Logger {
	var writer io.Writer = os.Stderr
	if format == "console" {
		writer = zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.Kitchen,
			NoColor:    os.Getenv("NO_COLOR") != "",
		}
	}

	zerolog.SetGlobalLevel(level)

	logger := zerolog.New(writer).
		Level(level).
		With().
		Timestamp().
		Logger()

	if level <= zerolog.DebugLevel {
		logger = logger.With().Caller().Logger()
	}

	return logger
}

func levelFromEnv() zerolog.Level {
	levelStr := os.Getenv("LOG_LEVEL")
	if levelStr == "" {
		if os.Getenv("DEBUG") != "" {
			return zerolog.DebugLevel
		}
		return zerolog.InfoLevel
	}

	level, err := zerolog.ParseLevel(levelStr)
	if err != nil {
		return zerolog.InfoLevel
	}
	return level
}

func formatFromEnv() string {
	format := os.Getenv("LOG_FORMAT")
	if format == "console" || format == "json" {
		return format
	}
	// Pretty output when stderr is a terminal, JSON otherwise (Lambda logs)
	if fileInfo, _ := os.Stderr.Stat(); fileInfo != nil && (fileInfo.Mode()&os.ModeCharDevice) != 0 {
		return "console"
	}
	return "json"
}

// Configure rebuilds the global logger with an explicit level and format,
// overriding whatever the environment selected. Format is "console" or "json".
func Configure(levelStr, format string) {
	level, err := zerolog.ParseLevel(levelStr)
	if err != nil || levelStr == "" {
		level = levelFromEnv()
	}
	if format != "console" && format != "json" {
		format = formatFromEnv()
	}
	SetDefault(newLogger(level, format))
}

// Default returns the global logger.
func Default() *zerolog.Logger {
	return &defaultLogger
}

// SetDefault replaces the global logger.
func SetDefault(logger zerolog.Logger) {
	defaultLogger = logger
	log.Logger = logger
}

// With creates a child logger context with additional fields.
func With() zerolog.Context {
	return defaultLogger.With()
}

// Debug starts a debug level event on the global logger.
func Debug() *zerolog.Event {
	return defaultLogger.Debug()
}

// Info starts an info level event on the global logger.
func Info() *zerolog.Event {
	return defaultLogger.Info()
}

// Warn starts a warning level event on the global logger.
func Warn() *zerolog.Event {
	return defaultLogger.Warn()
}

// Error starts an error level event on the global logger.
func Error() *zerolog.Event {
	return defaultLogger.Error()
}
