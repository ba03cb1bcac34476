package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFailedLogin_LocksOnFifthAttempt(t *testing.T) {
	now := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	u := &User{LoginAttempts: 3}

	attempts, lock := u.FailedLogin(now)
	assert.Equal(t, 4, attempts)
	assert.Nil(t, lock)

	u.LoginAttempts = attempts
	attempts, lock = u.FailedLogin(now)
	assert.Equal(t, 5, attempts)
	require.NotNil(t, lock)
	assert.Equal(t, now.Add(2*time.Hour), *lock)

	u.LockUntil = lock
	assert.True(t, u.IsLocked(now.Add(time.Hour)))
	assert.False(t, u.IsLocked(now.Add(3*time.Hour)))
}

func TestFailedLogin_ExpiredLockRestartsCount(t *testing.T) {
	now := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Minute)
	u := &User{LoginAttempts: 7, LockUntil: &past}

	attempts, lock := u.FailedLogin(now)
	assert.Equal(t, 1, attempts)
	assert.Nil(t, lock)
}

func TestPrayerDayCompleted(t *testing.T) {
	d := PrayerDay{Fajr: true, Asr: true, Isha: true}
	assert.Equal(t, 3, d.Completed())
}
