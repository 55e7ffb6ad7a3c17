package webclient

import (
	"context"
	"time"
)

type AttemptFunc func() (status int, body []byte, err error)

// RetryPolicy runs an attempt up to Attempts times, sleeping Backoff<<i
// between attempt i and i+1 (exponential, no jitter). The attempt decides
// what counts as a failure by returning a non-nil error; the policy itself
// does not inspect status codes.
type RetryPolicy struct {
	Attempts int
	Backoff  time.Duration
}

// Do returns the outcome of the last attempt. A cancelled context cuts the
// backoff sleep short and returns ctx.Err().
func (p RetryPolicy) Do(ctx context.Context, fn AttemptFunc) (int, []byte, error) {
	attempts := p.Attempts
	if attempts <= 0 {
		attempts = 1
	}
	backoff := p.Backoff
	if backoff <= 0 {
		backoff = time.Second
	}

	var (
		status int
		body   []byte
		err    error
	)
	for i := 0; i < attempts; i++ {
		status, body, err = fn()
		if err == nil {
			return status, body, nil
		}
		if i == attempts-1 {
			break
		}
		t := time.NewTimer(backoff << i)
		select {
		case <-ctx.Done():
			t.Stop()
			return status, body, ctx.Err()
		case <-t.C:
		}
	}
	return status, body, err
}
