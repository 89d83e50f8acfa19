package verification

import (
	"context"
	"time"

	"github.com/perfectbrow/consent-api/internal/system/stores/interfaces"
	"github.com/perfectbrow/consent-api/internal/system/utils"
)

// RateLimiter bounds submission creation per origin address over a trailing
// window. It counts persisted submissions rather than keeping in-memory
// state, so the limit holds across restarts and replicas.
type RateLimiter struct {
	store          interfaces.SubmissionStore
	window         time.Duration
	maxSubmissions int
	now            func() time.Time
}

// NewRateLimiter creates a rate limiter over the submission store.
func NewRateLimiter(store interfaces.SubmissionStore, window time.Duration, maxSubmissions int) *RateLimiter {
	return &RateLimiter{
		store:          store,
		window:         window,
		maxSubmissions: maxSubmissions,
		now:            time.Now,
	}
}

// Allow reports whether the origin address may create another submission.
// Submissions created exactly at the window boundary still count.
func (r *RateLimiter) Allow(ctx context.Context, originAddress string) (bool, error) {
	since := utils.TimeToMillis(r.now().Add(-r.window))
	count, err := r.store.CountByOriginSince(ctx, originAddress, since)
	if err != nil {
		return false, err
	}
	return count < r.maxSubmissions, nil
}
