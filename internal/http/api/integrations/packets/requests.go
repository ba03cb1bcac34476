package packets

// query for the athan board; mirrors what a signage screen is configured with
type AthanQuery struct {
	Latitude  *float64 `form:"lat"    binding:"required,min=-90,max=90"`
	Longitude *float64 `form:"lon"    binding:"required,min=-180,max=180"`
	City      string   `form:"city"   binding:"max=60"`
	Method    string   `form:"method" binding:"omitempty,calcmethod"`
	Date      string   `form:"date"   binding:"omitempty,datetime=2006-01-02"`
	Timezone  string   `form:"tz"     binding:"omitempty,timezone"`
}
