package serrors_test

import (
	"errors"
	"fmt"
	"testing"

	"lunchradar/pkg/serrors"

	"github.com/stretchr/testify/require"
)

func TestWith_MatchesKind(t *testing.T) {
	err := serrors.With(serrors.ErrNetwork, "search failed after %d attempts", 3)

	require.True(t, errors.Is(err, serrors.ErrNetwork))
	require.False(t, errors.Is(err, serrors.ErrCache))
	require.Equal(t, "search failed after 3 attempts", err.Error())
}

func TestWrap_MatchesKindAndCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := serrors.Wrap(serrors.ErrNetwork, cause, "could not reach provider")

	require.True(t, errors.Is(err, serrors.ErrNetwork))
	require.True(t, errors.Is(err, cause))
	require.Equal(t, "could not reach provider: connection refused", err.Error())
	require.Equal(t, cause, err.Cause())
}

func TestWrap_SurvivesFurtherWrapping(t *testing.T) {
	cause := errors.New("disk gone")
	err := fmt.Errorf("cache read: %w", serrors.Wrap(serrors.ErrCache, cause, "read failed"))

	require.True(t, errors.Is(err, serrors.ErrCache))
	require.True(t, errors.Is(err, cause))
}

func TestKindOnly(t *testing.T) {
	err := serrors.KindOnly(serrors.ErrUnavailable)

	require.True(t, errors.Is(err, serrors.ErrUnavailable))
	require.Equal(t, "SERVICE_UNAVAILABLE", err.Error())
}

func TestAs_ExtractsError(t *testing.T) {
	err := fmt.Errorf("outer: %w", serrors.With(serrors.ErrLocation, "no fix"))

	var sErr *serrors.Error
	require.True(t, errors.As(err, &sErr))
	require.Equal(t, serrors.ErrLocation, sErr.Kind())
	require.Equal(t, "no fix", sErr.Message())
}

func TestNilError(t *testing.T) {
	var err *serrors.Error
	require.Equal(t, "<nil>", err.Error())
}
