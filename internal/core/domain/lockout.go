package domain

import "time"

const (
	DefaultLockoutThreshold = 5
	DefaultLockoutDuration  = 15 * time.Minute
)

// LockoutPolicy is the state machine over a user's failure counters. The
// counter and the lockout timestamp are only ever mutated together, through
// RecordFailure and RecordSuccess.
type LockoutPolicy struct {
	Threshold int
	Duration  time.Duration
}

// NewLockoutPolicy returns a policy, substituting defaults for non-positive
// values.
func NewLockoutPolicy(threshold int, duration time.Duration) LockoutPolicy {
	if threshold <= 0 {
		threshold = DefaultLockoutThreshold
	}
	if duration <= 0 {
		duration = DefaultLockoutDuration
	}
	return LockoutPolicy{Threshold: threshold, Duration: duration}
}

// IsLocked reports whether the user is locked out at the given instant.
func (p LockoutPolicy) IsLocked(u *User, now time.Time) bool {
	return u.LockoutUntil != nil && u.LockoutUntil.After(now)
}

// RecordFailure advances the failure counter and, when the threshold is
// reached, sets the lockout expiry. Mutates u in place; the caller persists.
func (p LockoutPolicy) RecordFailure(u *User, now time.Time) {
	u.FailedLoginAttempts++
	if u.FailedLoginAttempts >= p.Threshold {
		until := now.Add(p.Duration)
		u.LockoutUntil = &until
	}
}

// RecordSuccess clears the counter pair unconditionally.
func (p LockoutPolicy) RecordSuccess(u *User) {
	u.FailedLoginAttempts = 0
	u.LockoutUntil = nil
}
