package searchers

import (
	"time"
)

// TimeLeftFn returns the time remaining for the current turn. Once it returns a value <= 0 the
// turn is forfeited, so searches stop while there is still some margin left.
//
// It may be called concurrently if a searcher runs in parallel.
type TimeLeftFn func() time.Duration

// TimeLeftUntil returns a TimeLeftFn for a fixed point in time.
func TimeLeftUntil(deadline time.Time) TimeLeftFn {
	return func() time.Duration {
		return time.Until(deadline)
	}
}

// Deadline is checked at the start of every step of a search. It is created once per
// top-level search and passed along the recursion.
//
// A nil *Deadline never expires.
type Deadline struct {
	timeLeft  TimeLeftFn
	threshold time.Duration
}

// NewDeadline returns a Deadline that expires once timeLeft returns less than threshold.
// If timeLeft is nil it returns nil, a Deadline that never expires.
func NewDeadline(timeLeft TimeLeftFn, threshold time.Duration) *Deadline {
	if timeLeft == nil {
		return nil
	}
	return &Deadline{timeLeft: timeLeft, threshold: threshold}
}

// Expired returns whether there is less time left than the threshold.
func (d *Deadline) Expired() bool {
	if d == nil {
		return false
	}
	return d.timeLeft() < d.threshold
}

// Check returns ErrTimeout if the deadline expired, nil otherwise.
func (d *Deadline) Check() error {
	if d.Expired() {
		return ErrTimeout
	}
	return nil
}

// DeadlineAt returns a Deadline that expires threshold before the given time.
func DeadlineAt(t time.Time, threshold time.Duration) *Deadline {
	return NewDeadline(TimeLeftUntil(t), threshold)
}
