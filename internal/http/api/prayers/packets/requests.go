package packets

// query for /prayers/times; coordinates fall back to the signed-in user's location
type PrayerTimesQuery struct {
	Latitude  *float64 `form:"latitude"  binding:"omitempty,min=-90,max=90"`
	Longitude *float64 `form:"longitude" binding:"omitempty,min=-180,max=180"`
	Date      string   `form:"date"`
	Method    string   `form:"method"    binding:"omitempty,calcmethod"`
	Timezone  string   `form:"tz"        binding:"omitempty,timezone"`
}

type QiblaQuery struct {
	Latitude  *float64 `form:"latitude"  binding:"required,min=-90,max=90"`
	Longitude *float64 `form:"longitude" binding:"required,min=-180,max=180"`
}

type TrackPrayerRequest struct {
	Prayer    string `json:"prayer"    binding:"required,dailyprayer"`
	Completed *bool  `json:"completed" binding:"required"`
	Date      string `json:"date"`
}

type HistoryQuery struct {
	Days int `form:"days,default=30" binding:"min=1,max=365"`
}
