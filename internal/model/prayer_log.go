package model

import "time"

// PrayerDay is one row of a user's prayer log.
type PrayerDay struct {
	UserID    int       `db:"user_id"`
	Day       time.Time `db:"day"`
	Fajr      bool      `db:"fajr"`
	Dhuhr     bool      `db:"dhuhr"`
	Asr       bool      `db:"asr"`
	Maghrib   bool      `db:"maghrib"`
	Isha      bool      `db:"isha"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (d PrayerDay) Completed() int {
	n := 0
	for _, ok := range []bool{d.Fajr, d.Dhuhr, d.Asr, d.Maghrib, d.Isha} {
		if ok {
			n++
		}
	}
	return n
}
