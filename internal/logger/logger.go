package logger

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"syscall"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"
)

// Config drives how the zap logger is built.
type Config struct {
	Development bool
	Level       string
	Encoding    string
}

// New returns a zap.Logger configured according to cfg.
func New(cfg Config) (*zap.Logger, error) {
	var zapCfg zap.Config
	if cfg.Development {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	if cfg.Encoding != "" {
		if cfg.Encoding != "json" && cfg.Encoding != "console" {
			return nil, fmt.Errorf("logger: invalid encoding %q", cfg.Encoding)
		}
		zapCfg.Encoding = cfg.Encoding
	}

	zapCfg.EncoderConfig = buildEncoderConfig(zapCfg.Encoding, shouldColorize())

	if cfg.Level != "" {
		level, err := ParseLevel(cfg.Level)
		if err != nil {
			return nil, err
		}
		zapCfg.Level = zap.NewAtomicLevelAt(level)
	}

	return zapCfg.Build(zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
}

// ParseLevel converts a case-insensitive level name into a zapcore.Level
func ParseLevel(name string) (zapcore.Level, error) {
	level := zapcore.InfoLevel
	if err := level.UnmarshalText([]byte(strings.ToLower(name))); err != nil {
		return level, fmt.Errorf("logger: invalid level %q: %w", name, err)
	}
	return level, nil
}

// Sync flushes buffered entries, ignoring the errors stdout/stderr return
// when they are not syncable (terminals, pipes).
func Sync(l *zap.Logger) error {
	if l == nil {
		return nil
	}

	if err := l.Sync(); err != nil {
		if errors.Is(err, syscall.ENOTTY) || errors.Is(err, syscall.EINVAL) || errors.Is(err, os.ErrInvalid) {
			return nil
		}
		return err
	}
	return nil
}

// consoleTimeLayout is the human-readable timestamp of console output
const consoleTimeLayout = "2006-01-02 15:04:05.000"

func buildEncoderConfig(encoding string, colors bool) zapcore.EncoderConfig {
	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = "time"
	cfg.StacktraceKey = "stack"
	cfg.EncodeDuration = zapcore.StringDurationEncoder

	if encoding != "console" {
		cfg.EncodeTime = zapcore.ISO8601TimeEncoder
		return cfg
	}

	cfg.ConsoleSeparator = " | "
	cfg.EncodeTime = zapcore.TimeEncoderOfLayout(consoleTimeLayout)
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder
	if colors {
		cfg.EncodeLevel = colorLevelEncoder
	}
	return cfg
}

const colorReset = "\x1b[0m"

// levelColors covers the levels the service logs at; anything more severe
// than error shares error's colour.
var levelColors = map[zapcore.Level]string{
	zapcore.DebugLevel: "\x1b[36m",
	zapcore.InfoLevel:  "\x1b[32m",
	zapcore.WarnLevel:  "\x1b[33m",
	zapcore.ErrorLevel: "\x1b[31m",
}

func levelColor(level zapcore.Level) string {
	if level > zapcore.ErrorLevel {
		level = zapcore.ErrorLevel
	}
	if c, ok := levelColors[level]; ok {
		return c
	}
	return levelColors[zapcore.InfoLevel]
}

func colorLevelEncoder(level zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(levelColor(level) + level.CapitalString() + colorReset)
}

func shouldColorize() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return term.IsTerminal(int(os.Stdout.Fd()))
}
