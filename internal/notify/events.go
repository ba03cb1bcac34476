package notify

import (
	"fmt"
	"time"
)

const PricesTopic = "ummah/prices/metals"

func PrayerTopic(userID int) string {
	return fmt.Sprintf("ummah/users/%d/prayers", userID)
}

type PrayerTracked struct {
	Type      string    `json:"type"`
	UserID    int       `json:"user_id"`
	Prayer    string    `json:"prayer"`
	Completed bool      `json:"completed"`
	Date      string    `json:"date"`
	Timestamp time.Time `json:"timestamp"`
}

type PricesUpdated struct {
	Type      string    `json:"type"`
	Gold      float64   `json:"gold"`
	Silver    float64   `json:"silver"`
	UpdatedBy int       `json:"updated_by"`
	Timestamp time.Time `json:"timestamp"`
}

func NewPrayerTracked(userID int, prayer string, completed bool, date string, at time.Time) PrayerTracked {
	return PrayerTracked{
		Type:      "prayer.tracked",
		UserID:    userID,
		Prayer:    prayer,
		Completed: completed,
		Date:      date,
		Timestamp: at,
	}
}

func NewPricesUpdated(gold, silver float64, userID int, at time.Time) PricesUpdated {
	return PricesUpdated{
		Type:      "prices.updated",
		Gold:      gold,
		Silver:    silver,
		UpdatedBy: userID,
		Timestamp: at,
	}
}
