package db

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/ummah/internal/model"
)

// prayer names double as column names, so only these are ever interpolated
var prayerColumns = map[string]bool{
	"fajr":    true,
	"dhuhr":   true,
	"asr":     true,
	"maghrib": true,
	"isha":    true,
}

// sets one prayer of a day and returns the whole day.
func (s *pgStore) TrackPrayer(userID int, day time.Time, prayer string, completed bool) (model.PrayerDay, error) {
	var out model.PrayerDay
	if !prayerColumns[prayer] {
		return out, fmt.Errorf("track prayer: unknown prayer %q", prayer)
	}

	q := fmt.Sprintf(`
	INSERT INTO prayer_log (user_id, day, %[1]s, updated_at)
	VALUES ($1, $2, $3, now())
	ON CONFLICT (user_id, day)
	DO UPDATE SET %[1]s = EXCLUDED.%[1]s, updated_at = now()
	RETURNING user_id, day, fajr, dhuhr, asr, maghrib, isha, updated_at;`, prayer)

	if err := s.db.Get(&out, q, userID, day.Format("2006-01-02"), completed); err != nil {
		log.Error().Err(err).Int("user_id", userID).Str("prayer", prayer).Msg("TrackPrayer failed")
		return out, fmt.Errorf("track prayer: %w", err)
	}
	return out, nil
}

// lists logged days on or after since, newest first.
func (s *pgStore) ListPrayerDays(userID int, since time.Time) ([]model.PrayerDay, error) {
	out := []model.PrayerDay{}
	const q = `
	SELECT user_id, day, fajr, dhuhr, asr, maghrib, isha, updated_at
	  FROM prayer_log
	 WHERE user_id = $1 AND day >= $2
	 ORDER BY day DESC;`
	if err := s.db.Select(&out, q, userID, since.Format("2006-01-02")); err != nil {
		log.Error().Err(err).Int("user_id", userID).Msg("ListPrayerDays failed")
		return nil, fmt.Errorf("list prayer days: %w", err)
	}
	return out, nil
}
