package retry

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/xerrors"
)

func TestRetryUntilSuccess(t *testing.T) {
	calls := 0
	v, err := Retry(context.Background(), 5, time.Millisecond, On(ErrNotYet), func(context.Context) (int, error) {
		calls++
		if calls < 3 {
			return 0, ErrNotYet
		}
		return 42, nil
	})
	require.NoError(t, err)
	require.Equal(t, 42, v)
	require.Equal(t, 3, calls)
}

func TestRetryExhausted(t *testing.T) {
	calls := 0
	_, err := Retry(context.Background(), 3, time.Millisecond, On(ErrNotYet), func(context.Context) (int, error) {
		calls++
		return 0, xerrors.Errorf("product count 4: %w", ErrNotYet)
	})
	require.ErrorIs(t, err, ErrNotYet)
	require.Equal(t, 3, calls)
}

func TestRetryStopsOnOtherErrors(t *testing.T) {
	boom := xerrors.New("boom")
	calls := 0
	_, err := Retry(context.Background(), 5, time.Millisecond, On(ErrNotYet), func(context.Context) (int, error) {
		calls++
		return 0, boom
	})
	require.ErrorIs(t, err, boom)
	require.Equal(t, 1, calls)
}

func TestRetryCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	_, err := Retry(ctx, 5, time.Hour, On(ErrNotYet), func(context.Context) (int, error) {
		calls++
		cancel()
		return 0, ErrNotYet
	})
	require.ErrorIs(t, err, context.Canceled)
	require.Equal(t, 1, calls)
}
