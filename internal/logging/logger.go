package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Config holds logging configuration
type Config struct {
	Level      zerolog.Level
	Format     string // "json" or "console"
	TimeFormat string
}

// FileConfig controls the optional log file sink.
type FileConfig struct {
	Enabled       bool
	LogDir        string
	MaxSizeMB     int
	MaxBackups    int
	WriteToStderr bool
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Level:      zerolog.InfoLevel,
		Format:     "console",
		TimeFormat: time.RFC3339,
	}
}

// New creates a new zerolog logger writing to stderr.
func New(cfg Config) zerolog.Logger {
	return newLogger(cfg, os.Stderr)
}

func newLogger(cfg Config, out io.Writer) zerolog.Logger {
	output := out
	if cfg.Format == "console" {
		output = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: cfg.TimeFormat,
			NoColor:    out != os.Stderr,
		}
	}

	return zerolog.New(output).
		Level(cfg.Level).
		With().
		Timestamp().
		Logger()
}

// NewWithFile creates a logger that writes to a rotating file under fileCfg.LogDir,
// optionally mirrored to stderr. When neither sink is enabled the logger is disabled,
// which is what the full-screen demo wants: stderr belongs to the terminal UI.
// The returned cleanup closes the file sink.
func NewWithFile(cfg Config, fileCfg FileConfig) (zerolog.Logger, func(), error) {
	var writers []io.Writer
	cleanup := func() {}

	if fileCfg.Enabled && fileCfg.LogDir != "" {
		rotator, err := NewLogRotator(fileCfg.LogDir, fileCfg.MaxSizeMB, fileCfg.MaxBackups)
		if err != nil {
			return New(cfg), cleanup, err
		}
		writers = append(writers, rotator)
		cleanup = func() { _ = rotator.Close() }
	}
	if fileCfg.WriteToStderr {
		writers = append(writers, os.Stderr)
	}

	switch len(writers) {
	case 0:
		return zerolog.Nop(), cleanup, nil
	case 1:
		return newLogger(cfg, writers[0]), cleanup, nil
	default:
		return newLogger(cfg, zerolog.MultiLevelWriter(writers...)), cleanup, nil
	}
}

// ParseLevel maps a textual level to a zerolog level, defaulting to info.
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "disabled", "off":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}

// NewFromConfigValues creates a stderr logger from raw config strings.
func NewFromConfigValues(level, format string) zerolog.Logger {
	cfg := DefaultConfig()
	cfg.Level = ParseLevel(level)
	switch format {
	case "json", "console":
		cfg.Format = format
	}
	return New(cfg)
}

// NewFromEnv creates a logger based on environment variables
// DRAGFRAME_LOG_LEVEL: trace, debug, info, warn, error (default: info)
// DRAGFRAME_LOG_FORMAT: json, console (default: console)
func NewFromEnv() zerolog.Logger {
	return NewFromConfigValues(os.Getenv("DRAGFRAME_LOG_LEVEL"), os.Getenv("DRAGFRAME_LOG_FORMAT"))
}
