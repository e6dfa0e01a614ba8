package order

import (
	"errors"
	"time"

	retrierconfig "lionhearts/pkg/retrier"
	"lionhearts/pkg/retrier/backoff_adapter"
)

const (
	DefaultMaxAttempts = 5

	initialInterval = 10 * time.Millisecond
	maxInterval     = 200 * time.Millisecond
	maxElapsedTime  = 5 * time.Second
	randomization   = 0.5
	multiplier      = 2.0
)

// NewIdentifierRetrier retries order creation on order number collisions only,
// for at most maxAttempts attempts in total.
func NewIdentifierRetrier(maxAttempts int) *backoff_adapter.Retrier {
	if maxAttempts < 1 {
		maxAttempts = DefaultMaxAttempts
	}

	shouldRetry := isCollision
	if maxAttempts == 1 {
		shouldRetry = func(error) bool { return false }
	}

	return backoff_adapter.New(retrierconfig.Config{
		InitialInterval: initialInterval,
		MaxInterval:     maxInterval,
		MaxElapsedTime:  maxElapsedTime,
		Randomization:   randomization,
		Multiplier:      multiplier,
		MaxRetries:      uint64(maxAttempts - 1),
		ShouldRetry:     shouldRetry,
	})
}

func isCollision(err error) bool {
	return errors.Is(err, ErrConflict)
}
