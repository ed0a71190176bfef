package domain

import (
	"testing"
	"time"
)

func TestLockoutPolicy_LocksAtThreshold(t *testing.T) {
	policy := NewLockoutPolicy(5, 15*time.Minute)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	user := &User{}

	for i := 0; i < 4; i++ {
		policy.RecordFailure(user, now)
		if user.LockoutUntil != nil {
			t.Fatalf("locked after %d failures", i+1)
		}
	}
	if user.FailedLoginAttempts != 4 {
		t.Fatalf("expected 4 attempts, got %d", user.FailedLoginAttempts)
	}

	policy.RecordFailure(user, now)
	if user.LockoutUntil == nil {
		t.Fatalf("expected lock after 5th failure")
	}
	if want := now.Add(15 * time.Minute); !user.LockoutUntil.Equal(want) {
		t.Fatalf("expected lockout until %v, got %v", want, user.LockoutUntil)
	}
	if !policy.IsLocked(user, now) {
		t.Fatalf("expected locked state")
	}
}

func TestLockoutPolicy_ExpiresWithTime(t *testing.T) {
	policy := NewLockoutPolicy(5, 15*time.Minute)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	until := now.Add(15 * time.Minute)
	user := &User{FailedLoginAttempts: 5, LockoutUntil: &until}

	if !policy.IsLocked(user, now.Add(14*time.Minute)) {
		t.Fatalf("expected still locked before expiry")
	}
	if policy.IsLocked(user, now.Add(16*time.Minute)) {
		t.Fatalf("expected unlocked after expiry")
	}
}

func TestLockoutPolicy_SuccessResetsPair(t *testing.T) {
	policy := NewLockoutPolicy(5, 15*time.Minute)
	now := time.Now().UTC()
	until := now.Add(time.Minute)
	user := &User{FailedLoginAttempts: 5, LockoutUntil: &until}

	policy.RecordSuccess(user)
	if user.FailedLoginAttempts != 0 || user.LockoutUntil != nil {
		t.Fatalf("expected counters cleared, got attempts=%d until=%v", user.FailedLoginAttempts, user.LockoutUntil)
	}
}

func TestLockoutPolicy_RelocksAfterExpiry(t *testing.T) {
	policy := NewLockoutPolicy(5, 15*time.Minute)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	until := now.Add(-time.Minute) // expired lock, counters not reset
	user := &User{FailedLoginAttempts: 5, LockoutUntil: &until}

	policy.RecordFailure(user, now)
	if user.FailedLoginAttempts != 6 {
		t.Fatalf("expected 6 attempts, got %d", user.FailedLoginAttempts)
	}
	if !policy.IsLocked(user, now) {
		t.Fatalf("expected re-lock above threshold")
	}
}

func TestNewLockoutPolicy_Defaults(t *testing.T) {
	policy := NewLockoutPolicy(0, 0)
	if policy.Threshold != DefaultLockoutThreshold {
		t.Fatalf("expected default threshold, got %d", policy.Threshold)
	}
	if policy.Duration != DefaultLockoutDuration {
		t.Fatalf("expected default duration, got %v", policy.Duration)
	}
}
