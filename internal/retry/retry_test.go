// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	errTransient = errors.New("transient")
	errFatal     = errors.New("fatal")
)

func onlyTransient(err error) bool { return errors.Is(err, errTransient) }

func TestDo_ImmediateSuccess(t *testing.T) {
	calls := 0
	v, err := Do(context.Background(), Policy{MaxRetries: 3, BaseDelay: time.Millisecond}, func(context.Context) (string, error) {
		calls++
		return "ok", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "ok", v)
	assert.Equal(t, 1, calls)
}

func TestDo_RetriesThenSucceeds(t *testing.T) {
	calls := 0
	var retries []int
	p := Policy{
		MaxRetries: 3,
		BaseDelay:  time.Millisecond,
		Retryable:  onlyTransient,
		OnRetry:    func(retry int, _ time.Duration, _ error) { retries = append(retries, retry) },
	}
	v, err := Do(context.Background(), p, func(context.Context) (int, error) {
		calls++
		if calls <= 2 {
			return 0, errTransient
		}
		return 42, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 42, v)
	assert.Equal(t, 3, calls)
	assert.Equal(t, []int{1, 2}, retries)
}

func TestDo_ExhaustsRetries(t *testing.T) {
	calls := 0
	p := Policy{MaxRetries: 3, BaseDelay: time.Millisecond, Retryable: onlyTransient}
	_, err := Do(context.Background(), p, func(context.Context) (int, error) {
		calls++
		return 0, errTransient
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrExhausted)
	assert.ErrorIs(t, err, errTransient)
	// 1 initial + 3 retries = 4 total calls.
	assert.Equal(t, 4, calls)
}

func TestDo_NonRetryablePassesThrough(t *testing.T) {
	calls := 0
	p := Policy{MaxRetries: 3, BaseDelay: time.Millisecond, Retryable: onlyTransient}
	_, err := Do(context.Background(), p, func(context.Context) (int, error) {
		calls++
		return 0, errFatal
	})
	assert.ErrorIs(t, err, errFatal)
	assert.NotErrorIs(t, err, ErrExhausted)
	assert.Equal(t, 1, calls)
}

func TestDo_ZeroRetriesRunsOnce(t *testing.T) {
	calls := 0
	_, err := Do(context.Background(), Policy{}, func(context.Context) (int, error) {
		calls++
		return 0, errTransient
	})
	assert.ErrorIs(t, err, ErrExhausted)
	assert.Equal(t, 1, calls)
}

func TestDo_ContextCancelled(t *testing.T) {
	// Use a long base delay so the context cancels during the wait.
	p := Policy{MaxRetries: 5, BaseDelay: 500 * time.Millisecond}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := Do(ctx, p, func(context.Context) (int, error) {
		return 0, errTransient
	})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestPolicy_Backoff(t *testing.T) {
	p := Policy{BaseDelay: time.Second}
	assert.Equal(t, time.Second, p.Backoff(0))
	assert.Equal(t, 2*time.Second, p.Backoff(1))
	assert.Equal(t, 4*time.Second, p.Backoff(2))
}

func TestSleep(t *testing.T) {
	require.NoError(t, Sleep(context.Background(), time.Millisecond))
	require.NoError(t, Sleep(context.Background(), 0))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, Sleep(ctx, time.Hour), context.Canceled)
}
