package logger_test

import (
	"accounts/pkg/domain"
	"accounts/pkg/logger"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestUserID(t *testing.T) {
	id := domain.UserID(uuid.New())
	l, logs := observed(zapcore.InfoLevel)

	logger.Info(logger.WithLogger(context.Background(), l), "x", logger.UserID(id))

	require.Equal(t, id.String(), logs.All()[0].ContextMap()["user_id"])
}

func TestEmail(t *testing.T) {
	e, err := domain.NewEmail(strings.Repeat("a", 30) + "@example.com")
	require.NoError(t, err)
	l, logs := observed(zapcore.InfoLevel)

	logger.Info(logger.WithLogger(context.Background(), l), "x", logger.Email(e), logger.Email(nil))

	fields := logs.All()[0].ContextMap()
	require.Equal(t, strings.Repeat("a", 20)+"...", fields["email"])
	require.Len(t, fields, 1)
}

func TestValidationError(t *testing.T) {
	l, logs := observed(zapcore.InfoLevel)
	ctx := logger.WithLogger(context.Background(), l)

	_, err := domain.NewPlainPassword("hunter2")
	require.Error(t, err)
	logger.Info(ctx, "rejected", logger.ValidationError(err))

	validation, ok := logs.All()[0].ContextMap()["validation"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, "INVALID_PASSWORD", validation["family"])
	require.Equal(t, "TOO_SHORT", validation["kind"])
	require.NotContains(t, validation["message"], "hunter2")

	logger.Info(ctx, "other", logger.ValidationError(errors.New("boom")))
	require.Equal(t, "boom", logs.All()[1].ContextMap()["error"])
}
