package endpoints

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/ummah/internal/calc"
	"github.com/Nixie-Tech-LLC/ummah/internal/db"
	"github.com/Nixie-Tech-LLC/ummah/internal/http/api"
	"github.com/Nixie-Tech-LLC/ummah/internal/http/api/prayers/packets"
	"github.com/Nixie-Tech-LLC/ummah/internal/model"
	"github.com/Nixie-Tech-LLC/ummah/internal/notify"
)

const dateLayout = "2006-01-02"

// overridden in tests
var now = time.Now

type PrayerController struct {
	store  db.Store
	events notify.Publisher
	tz     *time.Location
}

func NewPrayerController(store db.Store, events notify.Publisher, tz *time.Location) *PrayerController {
	return &PrayerController{store: store, events: events, tz: tz}
}

// PrayerPublicModule mounts /prayers/times, /prayers/methods and /prayers/qibla.
// Mount it on an OptionalAuth group so signed-in callers get their preferences.
func PrayerPublicModule(tz *time.Location) api.Module {
	ctl := NewPrayerController(nil, notify.Nop{}, tz)
	return api.ModuleFunc(func(c *api.Controller) {
		c.OPTIONAL_GET("/prayers/times", ctl.getPrayerTimes)
		c.PUBLIC_GET("/prayers/methods", ctl.listMethods)
		c.PUBLIC_GET("/prayers/qibla", ctl.getQibla)
	})
}

// PrayerSessionModule mounts the prayer log endpoints (JWT required)
func PrayerSessionModule(store db.Store, events notify.Publisher, tz *time.Location) api.Module {
	ctl := NewPrayerController(store, events, tz)
	return api.ModuleFunc(func(c *api.Controller) {
		c.POST("/prayers/track", ctl.trackPrayer)
		c.GET("/prayers/history", ctl.getHistory)
	})
}

// parseDate accepts a plain date or a full RFC 3339 timestamp and keeps only
// the calendar date, interpreted in loc.
func parseDate(raw string, loc *time.Location) (time.Time, error) {
	if raw == "" {
		n := now().In(loc)
		return time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, loc), nil
	}
	if d, err := time.ParseInLocation(dateLayout, raw, loc); err == nil {
		return d, nil
	}
	ts, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, errors.New("date must be in ISO format")
	}
	ts = ts.In(loc)
	return time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, loc), nil
}

func (p *PrayerController) location(name string) (*time.Location, error) {
	if name == "" {
		return p.tz, nil
	}
	return time.LoadLocation(name)
}

// GET /api/prayers/times
func (p *PrayerController) getPrayerTimes(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	var query packets.PrayerTimesQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		return nil, api.BadRequest(err.Error())
	}

	coord, ok := coordinateFor(query, user)
	if !ok {
		return nil, api.BadRequest("valid latitude (-90 to 90) and longitude (-180 to 180) required")
	}

	method := calc.DefaultMethod
	switch {
	case query.Method != "":
		method = calc.Method(query.Method)
	case user != nil && calc.Method(user.CalculationMethod).Valid():
		method = calc.Method(user.CalculationMethod)
	}

	loc, err := p.location(query.Timezone)
	if err != nil {
		return nil, api.BadRequest("invalid timezone")
	}
	date, err := parseDate(query.Date, loc)
	if err != nil {
		return nil, api.BadRequest(err.Error())
	}

	times := calc.PrayerTimes(coord, date, method)
	next := calc.NextPrayer(coord, date, method, now())

	return packets.PrayerTimesResponse{
		Date:        date.Format(dateLayout),
		Location:    coord,
		Method:      packets.MethodResponse{ID: method, Name: method.Name()},
		PrayerTimes: times,
		NextPrayer:  next,
		Timezone:    loc.String(),
	}, nil
}

func coordinateFor(query packets.PrayerTimesQuery, user *model.User) (calc.GeoCoordinate, bool) {
	if query.Latitude != nil && query.Longitude != nil {
		return calc.GeoCoordinate{Latitude: *query.Latitude, Longitude: *query.Longitude}, true
	}
	if query.Latitude == nil && query.Longitude == nil && user != nil &&
		user.Latitude != nil && user.Longitude != nil {
		return calc.GeoCoordinate{Latitude: *user.Latitude, Longitude: *user.Longitude}, true
	}
	return calc.GeoCoordinate{}, false
}

// GET /api/prayers/methods
func (p *PrayerController) listMethods(ctx *gin.Context) (any, *api.APIError) {
	methods := calc.Methods()
	response := make([]packets.MethodResponse, 0, len(methods))
	for _, m := range methods {
		response = append(response, packets.MethodResponse{ID: m, Name: m.Name()})
	}
	return response, nil
}

// GET /api/prayers/qibla
func (p *PrayerController) getQibla(ctx *gin.Context) (any, *api.APIError) {
	var query packets.QiblaQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		return nil, api.BadRequest(err.Error())
	}

	coord := calc.GeoCoordinate{Latitude: *query.Latitude, Longitude: *query.Longitude}
	qibla := calc.Qibla(coord)

	return packets.QiblaResponse{
		Location: coord,
		Qibla: packets.QiblaDirection{
			Direction: qibla.BearingDegrees,
			Bearing:   int(math.Round(qibla.BearingDegrees)) % 360,
			Compass:   qibla.Compass,
		},
		Kaaba: calc.Kaaba,
	}, nil
}

// POST /api/prayers/track
func (p *PrayerController) trackPrayer(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	var request packets.TrackPrayerRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, api.BadRequest(err.Error())
	}

	day, err := parseDate(request.Date, p.tz)
	if err != nil {
		return nil, api.BadRequest(err.Error())
	}

	completed := *request.Completed
	if _, err := p.store.TrackPrayer(user.ID, day, request.Prayer, completed); err != nil {
		return nil, api.Internal("failed to track prayer")
	}

	stamp := now()
	dayStr := day.Format(dateLayout)
	event := notify.NewPrayerTracked(user.ID, request.Prayer, completed, dayStr, stamp)
	if err := p.events.Publish(notify.PrayerTopic(user.ID), event); err != nil {
		log.Warn().Err(err).Int("user_id", user.ID).Msg("failed to publish prayer event")
	}

	status := "missed"
	if completed {
		status = "completed"
	}
	return packets.TrackPrayerResponse{
		Message:   fmt.Sprintf("Prayer %s marked as %s", request.Prayer, status),
		Prayer:    request.Prayer,
		Completed: completed,
		Date:      dayStr,
		Timestamp: stamp,
	}, nil
}

// GET /api/prayers/history
func (p *PrayerController) getHistory(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	var query packets.HistoryQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		return nil, api.BadRequest(err.Error())
	}

	today, _ := parseDate("", p.tz)
	since := today.AddDate(0, 0, -(query.Days - 1))

	logged, err := p.store.ListPrayerDays(user.ID, since)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "failed to get prayer history"}
	}
	byDay := make(map[string]model.PrayerDay, len(logged))
	for _, d := range logged {
		byDay[d.Day.Format(dateLayout)] = d
	}

	response := packets.HistoryResponse{History: make([]packets.HistoryDay, 0, query.Days)}
	for i := 0; i < query.Days; i++ {
		key := today.AddDate(0, 0, -i).Format(dateLayout)
		d := byDay[key]
		response.History = append(response.History, packets.HistoryDay{
			Date: key,
			Prayers: map[string]bool{
				string(calc.Fajr):    d.Fajr,
				string(calc.Dhuhr):   d.Dhuhr,
				string(calc.Asr):     d.Asr,
				string(calc.Maghrib): d.Maghrib,
				string(calc.Isha):    d.Isha,
			},
		})
		response.Stats.CompletedPrayers += d.Completed()
	}
	response.Stats.TotalPrayers = query.Days * len(calc.DailyPrayers)
	return response, nil
}
