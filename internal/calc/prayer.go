package calc

import (
	"math"
	"time"
)

// Prayer names a point of the daily prayer timetable.
type Prayer string

const (
	Fajr    Prayer = "fajr"
	Sunrise Prayer = "sunrise"
	Dhuhr   Prayer = "dhuhr"
	Asr     Prayer = "asr"
	Maghrib Prayer = "maghrib"
	Isha    Prayer = "isha"
)

// DailyPrayers are the five obligatory prayers in the order they fall.
var DailyPrayers = []Prayer{Fajr, Dhuhr, Asr, Maghrib, Isha}

// base local hour of day for each entry of the timetable, before adjustment
var baseHours = map[Prayer]float64{
	Fajr:    5.5,
	Sunrise: 6.5,
	Dhuhr:   12.0,
	Asr:     15.5,
	Maghrib: 18.5,
	Isha:    20.0,
}

// GeoCoordinate is a point on the globe in decimal degrees.
// Callers are expected to have range-checked it.
type GeoCoordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// PrayerTimeSet is the timetable for one date at one location.
type PrayerTimeSet struct {
	Fajr    time.Time `json:"fajr"`
	Sunrise time.Time `json:"sunrise"`
	Dhuhr   time.Time `json:"dhuhr"`
	Asr     time.Time `json:"asr"`
	Maghrib time.Time `json:"maghrib"`
	Isha    time.Time `json:"isha"`
}

// At returns the time of p in the set.
func (s PrayerTimeSet) At(p Prayer) (time.Time, bool) {
	switch p {
	case Fajr:
		return s.Fajr, true
	case Sunrise:
		return s.Sunrise, true
	case Dhuhr:
		return s.Dhuhr, true
	case Asr:
		return s.Asr, true
	case Maghrib:
		return s.Maghrib, true
	case Isha:
		return s.Isha, true
	}
	return time.Time{}, false
}

// UpcomingPrayer is the first daily prayer after some instant.
type UpcomingPrayer struct {
	Name Prayer    `json:"name"`
	Time time.Time `json:"time"`
}

// LatitudeAdjustment is the offset, in hours, applied to every base hour.
func LatitudeAdjustment(latitude float64) float64 {
	return math.Sin(latitude*math.Pi/180) * 0.5
}

// PrayerTimes computes the timetable for the calendar date of date, in
// date's location.
//
// The method is accepted for forward compatibility but every method
// currently yields the same timetable. There is no special handling of
// polar latitudes.
func PrayerTimes(coord GeoCoordinate, date time.Time, method Method) PrayerTimeSet {
	adj := LatitudeAdjustment(coord.Latitude)
	y, m, d := date.Date()
	loc := date.Location()

	at := func(p Prayer) time.Time {
		h := baseHours[p] + adj
		hour := math.Floor(h)
		minute := math.Trunc((h - hour) * 60)
		return time.Date(y, m, d, int(hour), int(minute), 0, 0, loc)
	}

	return PrayerTimeSet{
		Fajr:    at(Fajr),
		Sunrise: at(Sunrise),
		Dhuhr:   at(Dhuhr),
		Asr:     at(Asr),
		Maghrib: at(Maghrib),
		Isha:    at(Isha),
	}
}

// NextPrayer finds the first daily prayer of date strictly after now.
// Once isha has passed it returns fajr of the following day.
func NextPrayer(coord GeoCoordinate, date time.Time, method Method, now time.Time) UpcomingPrayer {
	today := PrayerTimes(coord, date, method)
	for _, p := range DailyPrayers {
		t, _ := today.At(p)
		if t.After(now) {
			return UpcomingPrayer{Name: p, Time: t}
		}
	}

	tomorrow := PrayerTimes(coord, date.AddDate(0, 0, 1), method)
	return UpcomingPrayer{Name: Fajr, Time: tomorrow.Fajr}
}
