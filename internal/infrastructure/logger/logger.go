// Package logger provides structured logging using zerolog.
// It supports JSON and console output formats with configurable log levels.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Config holds the logger configuration options.
type Config struct {
	// Level is the minimum log level (debug, info, warn, error).
	Level string `env:"LOG_LEVEL" envDefault:"info"`

	// Format is the output format (json, console).
	Format string `env:"LOG_FORMAT" envDefault:"json"`

	// ServiceName is attached to every entry for log context.
	ServiceName string `env:"SERVICE_NAME" envDefault:"flight-result-pipeline"`
}

// DefaultConfig returns a sensible default configuration.
func DefaultConfig() Config {
	return Config{
		Level:       "info",
		Format:      "json",
		ServiceName: "flight-result-pipeline",
	}
}

// Logger wraps zerolog.Logger with pipeline-specific context helpers.
type Logger struct {
	zerolog.Logger
}

// New creates a Logger writing to stdout.
func New(cfg Config) *Logger {
	return NewWithOutput(cfg, os.Stdout)
}

// NewWithOutput creates a Logger with a custom output writer.
// Useful for capturing log output in tests.
func NewWithOutput(cfg Config, output io.Writer) *Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}

	var writer io.Writer = output
	if cfg.Format == "console" {
		writer = zerolog.ConsoleWriter{
			Out:        output,
			TimeFormat: time.RFC3339,
		}
	}

	l := zerolog.New(writer).
		Level(level).
		With().
		Timestamp().
		Str("service", cfg.ServiceName).
		Logger()

	return &Logger{Logger: l}
}

// WithContext returns a new logger with an additional context field.
func (l *Logger) WithContext(key, value string) *Logger {
	return &Logger{Logger: l.With().Str(key, value).Logger()}
}

// WithFlow returns a logger tagged with the async flow name
// (e.g., "auth", "search").
func (l *Logger) WithFlow(flow string) *Logger {
	return l.WithContext("flow", flow)
}

// Nop returns a disabled logger that produces no output.
// Useful for tests where logs are not asserted on.
func Nop() *Logger {
	return &Logger{Logger: zerolog.Nop()}
}
