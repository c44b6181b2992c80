package serrors_test

import (
	"accounts/pkg/serrors"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

type customError struct{ msg string }

func (e customError) Error() string { return e.msg }

func TestDefaultKindsDistinct(t *testing.T) {
	kinds := []serrors.Kind{
		serrors.ErrNotFound,
		serrors.ErrUnauthorized,
		serrors.ErrBadRequest,
		serrors.ErrConflict,
		serrors.ErrInternal,
	}
	seen := map[serrors.Kind]bool{}
	for i, k := range kinds {
		require.NotNil(t, k, "kind at index %d is nil", i)
		require.False(t, seen[k], "kind at index %d is duplicate: %v", i, k)
		require.Nil(t, k.Parent(), "default kinds are roots")
		seen[k] = true
	}
}

func TestSubKindMatchesAncestors(t *testing.T) {
	invalid := serrors.NewSubKind(serrors.ErrBadRequest, "INVALID")
	tooLong := serrors.NewSubKind(invalid, "TOO_LONG")

	require.ErrorIs(t, tooLong, invalid)
	require.ErrorIs(t, tooLong, serrors.ErrBadRequest)
	require.NotErrorIs(t, tooLong, serrors.ErrConflict)
	require.NotErrorIs(t, invalid, tooLong, "parents must not match their children")

	e := serrors.With(tooLong, "value is too long")
	require.ErrorIs(t, e, serrors.ErrBadRequest)
	require.ErrorIs(t, e, invalid)

	require.True(t, serrors.HasAncestor(tooLong, serrors.ErrBadRequest))
	require.True(t, serrors.HasAncestor(tooLong, tooLong))
	require.False(t, serrors.HasAncestor(invalid, tooLong))
}

func TestErrorFormatting(t *testing.T) {
	base := errors.New("db down")

	e1 := serrors.With(serrors.ErrNotFound, "user %d not found", 42)
	require.Equal(t, "user 42 not found", e1.Error())

	e2 := serrors.Wrap(serrors.ErrNotFound, base, "getting user")
	require.Equal(t, "getting user: db down", e2.Error())

	e3 := serrors.KindOnly(serrors.ErrNotFound)
	require.Equal(t, "NOT_FOUND", e3.Error())
}

func TestIsMatchesKindAndWrapped(t *testing.T) {
	base := customError{"root cause"}
	e := serrors.Wrap(serrors.ErrNotFound, base, "reading")

	require.ErrorIs(t, e, serrors.ErrNotFound)
	require.ErrorIs(t, e, base)
	require.NotErrorIs(t, e, serrors.ErrUnauthorized)
}

func TestAsMatchesKindAndWrapped(t *testing.T) {
	base := &customError{"root cause"}
	e := serrors.Wrap(serrors.ErrNotFound, base, "reading")

	var k serrors.Kind
	require.ErrorAs(t, e, &k)
	require.Equal(t, serrors.ErrNotFound, k)

	var ce *customError
	require.ErrorAs(t, e, &ce)
	require.Equal(t, base, ce)
}

func TestKindOf(t *testing.T) {
	sub := serrors.NewSubKind(serrors.ErrConflict, "EMAIL_TAKEN")

	require.Equal(t, sub, serrors.KindOf(fmt.Errorf("storing: %w", serrors.With(sub, "taken"))))
	require.Equal(t, serrors.ErrNotFound, serrors.KindOf(fmt.Errorf("wrapped: %w", serrors.ErrNotFound)))
	require.Nil(t, serrors.KindOf(errors.New("plain")))
}

func TestAccessors(t *testing.T) {
	base := errors.New("boom")
	e := serrors.Wrap(serrors.ErrUnauthorized, base, "no token")
	require.Equal(t, serrors.ErrUnauthorized, e.Kind())
	require.Equal(t, "no token", e.Message())
	require.Equal(t, base, e.Cause())
}
