package logging

import (
	"fmt"
	"strings"

	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LevelOff disables logging entirely.
const LevelOff = "off"

// ParseLevel maps a configured level name to a zap level. ok is false for
// "off" and for names zap does not know.
func ParseLevel(name string) (level zapcore.Level, ok bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" || name == LevelOff {
		return zapcore.InfoLevel, false
	}

	// zap has no trace level
	if name == "trace" {
		name = "debug"
	}

	if err := level.UnmarshalText([]byte(name)); err != nil {
		return zapcore.InfoLevel, false
	}

	return level, true
}

// NewLogger builds the process logger. Entries logged through Ctx carry the
// active trace and span ids.
func NewLogger(level, format string) (*otelzap.Logger, error) {
	lvl, ok := ParseLevel(level)
	if !ok {
		return otelzap.New(zap.NewNop()), nil
	}

	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(lvl)
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.EncoderConfig.TimeKey = "timestamp"

	switch format {
	case "", "json":
	case "console":
		config.Encoding = "console"
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}

	zapLogger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to create zap logger: %w", err)
	}

	return otelzap.New(zapLogger, otelzap.WithMinLevel(lvl)), nil
}
