package packets

import (
	"time"

	"github.com/Nixie-Tech-LLC/ummah/internal/calc"
)

type MethodResponse struct {
	ID   calc.Method `json:"id"`
	Name string      `json:"name"`
}

type PrayerTimesResponse struct {
	Date        string              `json:"date"`
	Location    calc.GeoCoordinate  `json:"location"`
	Method      MethodResponse      `json:"method"`
	PrayerTimes calc.PrayerTimeSet  `json:"prayerTimes"`
	NextPrayer  calc.UpcomingPrayer `json:"nextPrayer"`
	Timezone    string              `json:"timezone"`
}

type QiblaDirection struct {
	Direction float64 `json:"direction"`
	Bearing   int     `json:"bearing"`
	Compass   string  `json:"compass"`
}

type QiblaResponse struct {
	Location calc.GeoCoordinate `json:"location"`
	Qibla    QiblaDirection     `json:"qibla"`
	Kaaba    calc.GeoCoordinate `json:"kaaba"`
}

type TrackPrayerResponse struct {
	Message   string    `json:"message"`
	Prayer    string    `json:"prayer"`
	Completed bool      `json:"completed"`
	Date      string    `json:"date"`
	Timestamp time.Time `json:"timestamp"`
}

type HistoryDay struct {
	Date    string          `json:"date"`
	Prayers map[string]bool `json:"prayers"`
}

type HistoryStats struct {
	TotalPrayers     int `json:"totalPrayers"`
	CompletedPrayers int `json:"completedPrayers"`
}

type HistoryResponse struct {
	History []HistoryDay `json:"history"`
	Stats   HistoryStats `json:"stats"`
}
