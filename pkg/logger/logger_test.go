package logger_test

import (
	"accounts/pkg/logger"
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func observed(level zapcore.Level) (*zap.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(level)

	return zap.New(core), logs
}

func TestSetup(t *testing.T) {
	for _, env := range []string{logger.DevelopmentEnvironment, logger.ProductionEnvironment, "staging"} {
		t.Run(env, func(t *testing.T) {
			require.NotPanics(t, func() {
				logger.Setup(env)
			})
			require.NotNil(t, logger.Get(context.Background()))
		})
	}
}

func TestGet(t *testing.T) {
	logger.Setup(logger.DevelopmentEnvironment)
	ctx := context.Background()
	require.NotNil(t, logger.Get(ctx), "default logger is returned for a bare context")

	l, _ := observed(zapcore.DebugLevel)
	require.Same(t, l, logger.Get(logger.WithLogger(ctx, l)))
}

func TestWithFields(t *testing.T) {
	l, logs := observed(zapcore.DebugLevel)
	ctx := logger.WithLogger(context.Background(), l)
	ctx = logger.WithFields(ctx, zap.String("request_id", "r-1"), zap.Int("attempt", 2))

	logger.Info(ctx, "hello")

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	require.Equal(t, "r-1", fields["request_id"])
	require.EqualValues(t, 2, fields["attempt"])
}

func TestIsDebug(t *testing.T) {
	logger.Setup(logger.DevelopmentEnvironment)
	require.True(t, logger.IsDebug(context.Background()))

	l, _ := observed(zapcore.InfoLevel)
	require.False(t, logger.IsDebug(logger.WithLogger(context.Background(), l)))
}

func TestLevels(t *testing.T) {
	l, logs := observed(zapcore.DebugLevel)
	ctx := logger.WithLogger(context.Background(), l)

	logger.Debug(ctx, "d")
	logger.Info(ctx, "i")
	logger.Warn(ctx, "w")
	logger.Error(ctx, "e")

	entries := logs.All()
	require.Len(t, entries, 4)
	require.Equal(t, zapcore.DebugLevel, entries[0].Level)
	require.Equal(t, zapcore.InfoLevel, entries[1].Level)
	require.Equal(t, zapcore.WarnLevel, entries[2].Level)
	require.Equal(t, zapcore.ErrorLevel, entries[3].Level)
}
