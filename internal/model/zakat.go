package model

import "time"

type ZakatRecord struct {
	ID          int       `db:"id"`
	UserID      int       `db:"user_id"`
	Year        int       `db:"year"`
	TotalWealth float64   `db:"total_wealth"`
	ZakatDue    float64   `db:"zakat_due"`
	IsEligible  bool      `db:"is_eligible"`
	Notes       string    `db:"notes"`
	CreatedAt   time.Time `db:"created_at"`
}
