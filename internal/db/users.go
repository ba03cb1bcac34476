package db

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/ummah/internal/model"
)

const userColumns = `
	id, username, email, hashed_password, first_name, last_name,
	language, calculation_method, madhab, city, country, latitude, longitude,
	avatar_url, is_admin, login_attempts, lock_until, last_login, created_at, updated_at`

// inserts new user into table, returns new user ID.
func (s *pgStore) CreateUser(u model.NewUser) (int, error) {
	query := `
	INSERT INTO users (username, email, hashed_password, first_name, last_name, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, now(), now())
	RETURNING id;
	`
	var newID int
	err := s.db.QueryRow(query, u.Username, u.Email, u.HashedPassword, u.FirstName, u.LastName).Scan(&newID)
	if err != nil {
		log.Error().Err(err).Str("email", u.Email).Msg("failed to create user")
		return 0, fmt.Errorf("create user: %w", err)
	}
	return newID, nil
}

func (s *pgStore) getUser(where string, arg any) (*model.User, error) {
	var u model.User
	query := `SELECT ` + userColumns + ` FROM users WHERE ` + where + ` = $1;`
	err := s.db.Get(&u, query, arg)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		log.Error().Err(err).Str("by", where).Msg("failed to get user")
		return nil, fmt.Errorf("get user by %s: %w", where, err)
	}
	return &u, nil
}

// fetches user by email, ignoring case. returns nil, ErrNotFound if not found.
func (s *pgStore) GetUserByEmail(email string) (*model.User, error) {
	return s.getUser("lower(email)", strings.ToLower(email))
}

func (s *pgStore) GetUserByUsername(username string) (*model.User, error) {
	return s.getUser("username", username)
}

// fetches a user by ID. Returns nil, ErrNotFound if not found.
func (s *pgStore) GetUserByID(id int) (*model.User, error) {
	return s.getUser("id", id)
}

// updates profile and preference columns, and bumps updated_at.
func (s *pgStore) UpdateUserProfile(id int, p model.ProfileUpdate) error {
	query := `
	UPDATE users
	SET first_name = $2,
	    last_name = $3,
	    language = $4,
	    calculation_method = $5,
	    madhab = $6,
	    city = $7,
	    country = $8,
	    latitude = $9,
	    longitude = $10,
	    updated_at = now()
	WHERE id = $1;
	`
	res, err := s.db.Exec(query, id, p.FirstName, p.LastName, p.Language,
		p.CalculationMethod, p.Madhab, p.City, p.Country, p.Latitude, p.Longitude)
	return expectOneRow(res, err, "update user profile")
}

func (s *pgStore) UpdateUserAvatar(id int, url string) error {
	res, err := s.db.Exec(`UPDATE users SET avatar_url = $2, updated_at = now() WHERE id = $1;`, id, url)
	return expectOneRow(res, err, "update user avatar")
}

// counts a wrong password. An expired lock restarts the count at one; the
// MaxLoginAttempts-th failure sets lock_until.
func (s *pgStore) RecordFailedLogin(id int, at time.Time) (int, *time.Time, error) {
	query := `
	UPDATE users
	SET login_attempts = CASE
	        WHEN lock_until IS NOT NULL AND lock_until <= $2 THEN 1
	        ELSE login_attempts + 1
	    END,
	    lock_until = CASE
	        WHEN lock_until IS NOT NULL AND lock_until <= $2 THEN NULL
	        WHEN lock_until IS NULL AND login_attempts + 1 >= $3 THEN $4
	        ELSE lock_until
	    END
	WHERE id = $1
	RETURNING login_attempts, lock_until;
	`
	var attempts int
	var lockUntil *time.Time
	err := s.db.QueryRow(query, id, at, model.MaxLoginAttempts, at.Add(model.LockoutDuration)).Scan(&attempts, &lockUntil)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil, ErrNotFound
		}
		log.Error().Err(err).Int("user_id", id).Msg("failed to record failed login")
		return 0, nil, fmt.Errorf("record failed login: %w", err)
	}
	return attempts, lockUntil, nil
}

// clears failed attempts and stamps last_login.
func (s *pgStore) RecordLogin(id int, at time.Time) error {
	res, err := s.db.Exec(`
	UPDATE users
	SET login_attempts = 0,
	    lock_until = NULL,
	    last_login = $2
	WHERE id = $1;`, id, at)
	return expectOneRow(res, err, "record login")
}

func expectOneRow(res sql.Result, err error, op string) error {
	if err != nil {
		log.Error().Err(err).Msgf("failed to %s - exec", op)
		return fmt.Errorf("%s: %w", op, err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		log.Error().Err(err).Msgf("failed to %s - rows affected", op)
		return fmt.Errorf("%s: %w", op, err)
	}
	if rows == 0 {
		log.Error().Msgf("failed to %s - no such row", op)
		return ErrNotFound
	}
	return nil
}
