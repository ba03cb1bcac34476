// exposes a Store interface that is passed to API calls w/ param requirements
package db

import (
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/Nixie-Tech-LLC/ummah/internal/model"
)

type Store interface {
	// user functions
	CreateUser(u model.NewUser) (int, error)
	GetUserByEmail(email string) (*model.User, error)
	GetUserByUsername(username string) (*model.User, error)
	GetUserByID(id int) (*model.User, error)
	UpdateUserProfile(id int, p model.ProfileUpdate) error
	UpdateUserAvatar(id int, url string) error
	// RecordFailedLogin bumps the attempt counter in one step and returns the
	// stored counter and lock deadline.
	RecordFailedLogin(id int, at time.Time) (int, *time.Time, error)
	RecordLogin(id int, at time.Time) error

	// prayer log functions
	TrackPrayer(userID int, day time.Time, prayer string, completed bool) (model.PrayerDay, error)
	ListPrayerDays(userID int, since time.Time) ([]model.PrayerDay, error)

	// zakat functions
	SaveZakatRecord(rec model.ZakatRecord) (model.ZakatRecord, error)
	ListZakatRecords(userID int, limit int) ([]model.ZakatRecord, error)
}

type pgStore struct {
	db *sqlx.DB
}

// compile-time check that pgStore implements Store
var _ Store = (*pgStore)(nil)

func NewStore(conn *sqlx.DB) Store {
	return &pgStore{db: conn}
}
