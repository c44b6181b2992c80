// Package logger carries a zap logger through context.Context and offers
// field helpers for the account domain that keep secrets out of log output.
//
// The default logger is configured once by Setup. Request and job scoped
// loggers are attached with WithLogger or WithFields and retrieved with Get.
package logger

import (
	"context"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	// DevelopmentEnvironment selects a human-readable console logger at debug level.
	DevelopmentEnvironment = "development"

	// ProductionEnvironment selects a JSON logger at info level.
	ProductionEnvironment = "production"
)

// ServiceName is attached to every entry of the default logger.
const ServiceName = "accounts"

var defaultLogger = zap.NewNop() //nolint: gochecknoglobals

// Setup replaces the default logger with one suited to environment. Unknown
// environments are treated as development.
func Setup(environment string) {
	cfg := zap.NewDevelopmentConfig()
	if environment == ProductionEnvironment {
		cfg = zap.NewProductionConfig()
	}

	l, err := cfg.Build(zap.Fields(zap.String("service", ServiceName)))
	if err != nil {
		return
	}

	defaultLogger = l
}

type key struct{}

// Get returns the logger stored in ctx, or the default logger.
func Get(ctx context.Context) *zap.Logger {
	if l, _ := ctx.Value(key{}).(*zap.Logger); l != nil {
		return l
	}

	return defaultLogger
}

// WithLogger returns a copy of ctx carrying l.
func WithLogger(ctx context.Context, l *zap.Logger) context.Context {
	return context.WithValue(ctx, key{}, l)
}

// WithFields returns a copy of ctx whose logger always includes fields.
func WithFields(ctx context.Context, fields ...zapcore.Field) context.Context {
	return WithLogger(ctx, Get(ctx).With(fields...))
}

// IsDebug reports whether the logger in ctx writes debug entries.
func IsDebug(ctx context.Context) bool {
	return Get(ctx).Core().Enabled(zap.DebugLevel)
}

// Debug logs msg at debug level.
func Debug(ctx context.Context, msg string, fields ...zapcore.Field) {
	Get(ctx).Debug(msg, fields...)
}

// Info logs msg at info level.
func Info(ctx context.Context, msg string, fields ...zapcore.Field) {
	Get(ctx).Info(msg, fields...)
}

// Warn logs msg at warn level.
func Warn(ctx context.Context, msg string, fields ...zapcore.Field) {
	Get(ctx).Warn(msg, fields...)
}

// Error logs msg at error level.
func Error(ctx context.Context, msg string, fields ...zapcore.Field) {
	Get(ctx).Error(msg, fields...)
}

// Fatal logs msg at fatal level and exits.
func Fatal(ctx context.Context, msg string, fields ...zapcore.Field) {
	Get(ctx).Fatal(msg, fields...)
}
