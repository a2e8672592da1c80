package serrors_test

import (
	"context"
	"errors"
	"fmt"
	"mailprov/pkg/serrors"
	"testing"

	"github.com/stretchr/testify/require"
)

type customError struct{ msg string }

func (e customError) Error() string { return e.msg }

func TestDefaultKindsDistinct(t *testing.T) {
	kinds := []serrors.Kind{
		serrors.ErrNotFound,
		serrors.ErrUnauthorized,
		serrors.ErrInvalidConfig,
		serrors.ErrConflict,
		serrors.ErrTimeout,
		serrors.ErrUnavailable,
		serrors.ErrInternal,
	}
	seen := map[serrors.Kind]bool{}
	for i, k := range kinds {
		require.NotNil(t, k, "kind at index %d is nil", i)
		require.False(t, seen[k], "kind at index %d is duplicate: %v", i, k)
		seen[k] = true
	}
}

func TestErrorFormatting(t *testing.T) {
	base := errors.New("context deadline exceeded")

	e1 := serrors.With(serrors.ErrNotFound, "element %s not found", "#txtUserName")
	require.Equal(t, "element #txtUserName not found", e1.Error())

	e2 := serrors.Wrap(serrors.ErrTimeout, base, "waiting for login")
	require.Equal(t, "waiting for login: context deadline exceeded", e2.Error())

	e3 := serrors.KindOnly(serrors.ErrUnauthorized)
	require.Equal(t, "UNAUTHORIZED", e3.Error())
}

func TestIsMatchesKindAndWrapped(t *testing.T) {
	e := serrors.Wrap(serrors.ErrTimeout, context.DeadlineExceeded, "waiting")

	require.ErrorIs(t, e, serrors.ErrTimeout)
	require.ErrorIs(t, e, context.DeadlineExceeded)
	require.NotErrorIs(t, e, serrors.ErrNotFound)

	wrapped := fmt.Errorf("could not log in: %w", e)
	require.ErrorIs(t, wrapped, serrors.ErrTimeout)
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

func TestAccessors(t *testing.T) {
	base := errors.New("boom")
	e := serrors.Wrap(serrors.ErrUnauthorized, base, "no token")
	require.Equal(t, serrors.ErrUnauthorized, e.Kind())
	require.Equal(t, "no token", e.Message())
	require.Equal(t, base, e.Cause())
}

func TestKindOf(t *testing.T) {
	err := fmt.Errorf("outer: %w", serrors.With(serrors.ErrInvalidConfig, "CPANEL_USER is empty"))
	require.Equal(t, serrors.ErrInvalidConfig, serrors.KindOf(err))
	require.Nil(t, serrors.KindOf(errors.New("plain")))
}
