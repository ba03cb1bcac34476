package model

import "time"

const (
	MaxLoginAttempts = 5
	LockoutDuration  = 2 * time.Hour
)

var Madhabs = []string{"hanafi", "shafi", "maliki", "hanbali"}

type User struct {
	ID                int        `db:"id"`
	Username          string     `db:"username"`
	Email             string     `db:"email"`
	HashedPassword    string     `db:"hashed_password"`
	FirstName         string     `db:"first_name"`
	LastName          string     `db:"last_name"`
	Language          string     `db:"language"`
	CalculationMethod string     `db:"calculation_method"`
	Madhab            string     `db:"madhab"`
	City              *string    `db:"city"`
	Country           *string    `db:"country"`
	Latitude          *float64   `db:"latitude"`
	Longitude         *float64   `db:"longitude"`
	AvatarURL         *string    `db:"avatar_url"`
	IsAdmin           bool       `db:"is_admin"`
	LoginAttempts     int        `db:"login_attempts"`
	LockUntil         *time.Time `db:"lock_until"`
	LastLogin         *time.Time `db:"last_login"`
	CreatedAt         time.Time  `db:"created_at"`
	UpdatedAt         time.Time  `db:"updated_at"`
}

// NewUser carries the columns set at signup; the rest take table defaults.
type NewUser struct {
	Username       string
	Email          string
	HashedPassword string
	FirstName      string
	LastName       string
}

type ProfileUpdate struct {
	FirstName         string
	LastName          string
	Language          string
	CalculationMethod string
	Madhab            string
	City              *string
	Country           *string
	Latitude          *float64
	Longitude         *float64
}

func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// IsLocked reports whether sign-in is refused at now.
func (u *User) IsLocked(now time.Time) bool {
	return u.LockUntil != nil && u.LockUntil.After(now)
}

// FailedLogin returns the attempt counter and lock deadline to store after
// a wrong password. An expired lock restarts the count at one.
func (u *User) FailedLogin(now time.Time) (int, *time.Time) {
	if u.LockUntil != nil && !u.LockUntil.After(now) {
		return 1, nil
	}

	attempts := u.LoginAttempts + 1
	lock := u.LockUntil
	if attempts >= MaxLoginAttempts && lock == nil {
		until := now.Add(LockoutDuration)
		lock = &until
	}
	return attempts, lock
}
