// Package logging provides the zap logger shared by fcast commands.
package logging

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the global logger instance. It discards everything until
// Initialize runs.
var Logger = zap.NewNop()

// sink is the log file opened by the last Initialize, if any.
var sink *os.File

// Config contains logging configuration.
type Config struct {
	// Level is the minimum log level (debug, info, warn, error).
	Level string `toml:"level"`

	// Format is the output format (console, json).
	Format string `toml:"format"`

	// Output is stderr, stdout, discard, or a file path.
	Output string `toml:"output"`

	Development bool `toml:"development"`
}

// DefaultConfig only surfaces warnings so CLI tables stay readable.
func DefaultConfig() Config {
	return Config{
		Level:  "warn",
		Format: "console",
		Output: "stderr",
	}
}

// Initialize replaces the global logger. A log file opened by an earlier
// call is closed once the new logger is in place.
func Initialize(cfg Config) error {
	level := zapcore.WarnLevel
	if cfg.Level != "" {
		var err error
		if level, err = zapcore.ParseLevel(cfg.Level); err != nil {
			return fmt.Errorf("parsing log level: %w", err)
		}
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	var encoder zapcore.Encoder
	if cfg.Format == "json" {
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	} else {
		encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	}

	var ws zapcore.WriteSyncer
	var file *os.File
	switch cfg.Output {
	case "", "stderr":
		ws = zapcore.AddSync(os.Stderr)
	case "stdout":
		ws = zapcore.AddSync(os.Stdout)
	case "discard":
		ws = zapcore.AddSync(io.Discard)
	default:
		f, err := os.OpenFile(cfg.Output, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		file = f
		ws = zapcore.AddSync(f)
	}

	core := zapcore.NewCore(encoder, ws, level)
	if cfg.Development {
		Logger = zap.New(core, zap.Development(), zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
	} else {
		Logger = zap.New(core, zap.AddCaller())
	}

	closeSink()
	sink = file
	return nil
}

// Sync flushes buffered entries.
func Sync() {
	_ = Logger.Sync()
}

// Close flushes the logger and closes its log file. Logging after Close
// is discarded.
func Close() {
	Sync()
	Logger = zap.NewNop()
	closeSink()
}

func closeSink() {
	if sink != nil {
		_ = sink.Close()
		sink = nil
	}
}

// With returns a child logger carrying fields.
func With(fields ...zap.Field) *zap.Logger {
	return Logger.With(fields...)
}
