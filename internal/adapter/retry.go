package adapter

import (
	"context"
	"errors"
	"math/rand/v2"
	"net/http"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/hackmd-tools/hackmd-cli/internal/config"
	"github.com/hackmd-tools/hackmd-cli/internal/logger"
)

// SleepFunc blocks for d or until ctx is cancelled. Tests inject a no-op
// implementation so the retry schedule can be exercised without wall-clock
// delays.
type SleepFunc func(ctx context.Context, d time.Duration) error

func waitWithContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// retryPolicy drives retries of a single logical request as an explicit
// state machine (attempt -> wait -> attempt -> ... -> done) so that the
// timeout budget and cancellation points stay observable in tests.
type retryPolicy struct {
	maxAttempts int
	baseWait    time.Duration
	maxWait     time.Duration

	sleep SleepFunc
	now   func() time.Time

	logger *logger.Logger
}

func newRetryPolicy(cfg config.ClientRetry, log *logger.Logger) retryPolicy {
	return retryPolicy{
		maxAttempts: cfg.MaxAttempts,
		baseWait:    cfg.BaseWait,
		maxWait:     cfg.MaxWait,
		sleep:       waitWithContext,
		now:         time.Now,
		logger:      log,
	}
}

type retryState int

const (
	stateAttempt retryState = iota
	stateWait
	stateDone
)

// run executes attempt until it yields a non-retryable outcome or the
// attempt budget is spent. The last response and error are returned as-is;
// classification into sentinel errors happens in the caller.
func (p retryPolicy) run(ctx context.Context, attempt func() (*resty.Response, error)) (*resty.Response, error) {
	var (
		resp  *resty.Response
		err   error
		tries int
		delay time.Duration
	)

	state := stateAttempt
	for {
		switch state {
		case stateAttempt:
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}

			resp, err = attempt()
			tries++

			if !p.shouldRetry(resp, err) || tries >= p.maxAttempts {
				state = stateDone
				break
			}

			delay = p.nextDelay(tries, resp)
			p.logger.Warn().
				Err(err).
				Int("attempt", tries).
				Int("max_attempts", p.maxAttempts).
				Dur("wait", delay).
				Msg("transient request failure, retrying")
			state = stateWait

		case stateWait:
			if werr := p.sleep(ctx, delay); werr != nil {
				return nil, werr
			}
			state = stateAttempt

		case stateDone:
			if err != nil {
				return nil, err
			}
			return resp, nil
		}
	}
}

// shouldRetry reports whether the attempt outcome is transient. Transport
// errors are retryable unless caused by cancellation; 429 and 5xx responses
// are retryable; every other status is terminal.
//
// A per-attempt timeout surfaces as context.DeadlineExceeded and stays
// retryable; an expired parent context is caught by the attempt loop's
// ctx.Err() check before the next try runs.
func (p retryPolicy) shouldRetry(resp *resty.Response, err error) bool {
	if err != nil {
		return !errors.Is(err, context.Canceled)
	}

	return resp.StatusCode() == http.StatusTooManyRequests ||
		resp.StatusCode() >= http.StatusInternalServerError
}

// nextDelay computes the wait before the retry following attempt number
// `attempts`. A server-provided Retry-After on a 429 response replaces the
// backoff schedule; everything is capped at maxWait.
func (p retryPolicy) nextDelay(attempts int, resp *resty.Response) time.Duration {
	if resp != nil && resp.StatusCode() == http.StatusTooManyRequests {
		if d, ok := parseRetryAfter(resp.Header().Get("Retry-After"), p.now()); ok {
			return min(d, p.maxWait)
		}
	}

	backoff := p.baseWait << (attempts - 1)
	if backoff <= 0 || backoff > p.maxWait {
		backoff = p.maxWait
	}

	// half fixed, half jitter, so concurrent clients do not retry in
	// lockstep
	half := backoff / 2
	return half + rand.N(half+1)
}

// parseRetryAfter understands both forms of the Retry-After header:
// delay-seconds and an HTTP date.
func parseRetryAfter(value string, now time.Time) (time.Duration, bool) {
	if value == "" {
		return 0, false
	}

	if secs, err := strconv.Atoi(value); err == nil {
		if secs < 0 {
			return 0, false
		}
		return time.Duration(secs) * time.Second, true
	}

	if at, err := http.ParseTime(value); err == nil {
		d := at.Sub(now)
		if d < 0 {
			d = 0
		}
		return d, true
	}

	return 0, false
}
