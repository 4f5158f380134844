package adapter

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hackmd-tools/hackmd-cli/internal/config"
	"github.com/hackmd-tools/hackmd-cli/internal/logger"
)

func newTestPolicy(maxAttempts int) retryPolicy {
	p := newRetryPolicy(config.ClientRetry{
		MaxAttempts: maxAttempts,
		BaseWait:    100 * time.Millisecond,
		MaxWait:     10 * time.Second,
	}, logger.Nop())
	p.sleep = func(ctx context.Context, d time.Duration) error { return nil }
	return p
}

// ── run ──────────────────────────────────────────────────────────────────────

func TestRun_StopsOnTransportErrorAfterBudget(t *testing.T) {
	p := newTestPolicy(3)

	var tries int
	boom := errors.New("connection reset")
	_, err := p.run(context.Background(), func() (*resty.Response, error) {
		tries++
		return nil, boom
	})

	require.ErrorIs(t, err, boom)
	assert.Equal(t, 3, tries)
}

func TestRun_NoRetryOnCanceled(t *testing.T) {
	p := newTestPolicy(5)

	var tries int
	_, err := p.run(context.Background(), func() (*resty.Response, error) {
		tries++
		return nil, context.Canceled
	})

	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, tries, "cancellation must abort without further attempts")
}

func TestRun_StopsWhenContextExpiresDuringWait(t *testing.T) {
	p := newTestPolicy(5)
	p.sleep = waitWithContext

	ctx, cancel := context.WithCancel(context.Background())

	var tries int
	go func() {
		// cancel while the policy is waiting out the first backoff
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	_, err := p.run(ctx, func() (*resty.Response, error) {
		tries++
		return nil, errors.New("transient")
	})

	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, tries)
}

func TestRun_SingleAttemptBudget(t *testing.T) {
	p := newTestPolicy(1)

	var tries int
	_, err := p.run(context.Background(), func() (*resty.Response, error) {
		tries++
		return nil, errors.New("transient")
	})

	require.Error(t, err)
	assert.Equal(t, 1, tries)
}

// ── nextDelay ────────────────────────────────────────────────────────────────

func TestNextDelay_ExponentialGrowthWithinBounds(t *testing.T) {
	p := newTestPolicy(5)

	for attempts := 1; attempts <= 4; attempts++ {
		backoff := p.baseWait << (attempts - 1)
		d := p.nextDelay(attempts, nil)
		assert.GreaterOrEqual(t, d, backoff/2, "attempt %d", attempts)
		assert.LessOrEqual(t, d, backoff, "attempt %d", attempts)
	}
}

func TestNextDelay_CappedAtMaxWait(t *testing.T) {
	p := newTestPolicy(5)
	p.maxWait = 200 * time.Millisecond

	d := p.nextDelay(10, nil)
	assert.LessOrEqual(t, d, p.maxWait)
}

// ── parseRetryAfter ──────────────────────────────────────────────────────────

func TestParseRetryAfter_Seconds(t *testing.T) {
	d, ok := parseRetryAfter("3", time.Now())
	require.True(t, ok)
	assert.Equal(t, 3*time.Second, d)
}

func TestParseRetryAfter_HTTPDate(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	at := now.Add(90 * time.Second)

	d, ok := parseRetryAfter(at.Format(http.TimeFormat), now)
	require.True(t, ok)
	assert.Equal(t, 90*time.Second, d)
}

func TestParseRetryAfter_PastDateClampsToZero(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	at := now.Add(-time.Minute)

	d, ok := parseRetryAfter(at.Format(http.TimeFormat), now)
	require.True(t, ok)
	assert.Zero(t, d)
}

func TestParseRetryAfter_Garbage(t *testing.T) {
	_, ok := parseRetryAfter("soon", time.Now())
	assert.False(t, ok)

	_, ok = parseRetryAfter("", time.Now())
	assert.False(t, ok)

	_, ok = parseRetryAfter("-5", time.Now())
	assert.False(t, ok)
}

// ── waitWithContext ──────────────────────────────────────────────────────────

func TestWaitWithContext_ReturnsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := waitWithContext(ctx, time.Minute)
	require.ErrorIs(t, err, context.Canceled)
}

func TestWaitWithContext_CompletesShortWait(t *testing.T) {
	err := waitWithContext(context.Background(), time.Millisecond)
	require.NoError(t, err)
}
