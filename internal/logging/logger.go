package logging

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger wraps zap.Logger with convenience methods.
type Logger struct {
	*zap.Logger
}

// Config defines logger configuration.
type Config struct {
	ConsoleLevel string // "debug", "info", "warn", "error"
	FileLevel    string
	File         string // log file path; empty disables the file sink
	MaxSizeMB    int    // rotate after this many megabytes
	MaxBackups   int    // rotated files to keep
	MaxAgeDays   int    // days to keep rotated files
}

// DefaultConfig returns the standard dual-sink configuration: terse console
// output on stderr plus a rotating debug-level file.
func DefaultConfig() Config {
	return Config{
		ConsoleLevel: "info",
		FileLevel:    "debug",
		File:         "fsman.log",
		MaxSizeMB:    10,
		MaxBackups:   3,
		MaxAgeDays:   28,
	}
}

// New creates a new logger with the provided configuration.
func New(cfg Config) (*Logger, error) {
	consoleLevel, err := parseLevel(cfg.ConsoleLevel)
	if err != nil {
		return nil, err
	}

	cores := []zapcore.Core{
		zapcore.NewCore(encoder(), zapcore.Lock(os.Stderr), consoleLevel),
	}

	if cfg.File != "" {
		fileLevel, err := parseLevel(cfg.FileLevel)
		if err != nil {
			return nil, err
		}
		sink := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
		}
		cores = append(cores, zapcore.NewCore(encoder(), zapcore.AddSync(sink), fileLevel))
	}

	return &Logger{Logger: zap.New(zapcore.NewTee(cores...))}, nil
}

// NewDefault creates a logger with default configuration.
func NewDefault() *Logger {
	logger, err := New(DefaultConfig())
	if err != nil {
		// Fallback to no-op logger
		return &Logger{Logger: zap.NewNop()}
	}
	return logger
}

// NewNop returns a logger that discards all output.
func NewNop() *Logger {
	return &Logger{Logger: zap.NewNop()}
}

// Named returns a child logger annotated with a component name.
func (l *Logger) Named(name string) *Logger {
	return &Logger{Logger: l.Logger.Named(name)}
}

// With returns a child logger carrying the given fields on every event.
func (l *Logger) With(fields ...zap.Field) *Logger {
	return &Logger{Logger: l.Logger.With(fields...)}
}

// parseLevel converts string level to zapcore.Level.
func parseLevel(level string) (zapcore.Level, error) {
	var l zapcore.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return zapcore.InfoLevel, err
	}
	return l, nil
}

// encoder returns the line encoder shared by both sinks:
// "timestamp - LEVEL - component - message".
func encoder() zapcore.Encoder {
	return zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
		TimeKey:          "timestamp",
		LevelKey:         "level",
		NameKey:          "logger",
		CallerKey:        zapcore.OmitKey,
		FunctionKey:      zapcore.OmitKey,
		MessageKey:       "message",
		StacktraceKey:    zapcore.OmitKey,
		LineEnding:       zapcore.DefaultLineEnding,
		EncodeLevel:      zapcore.CapitalLevelEncoder,
		EncodeTime:       zapcore.ISO8601TimeEncoder,
		EncodeDuration:   zapcore.StringDurationEncoder,
		ConsoleSeparator: " - ",
	})
}
