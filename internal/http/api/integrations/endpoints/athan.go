package endpoints

import (
	"fmt"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/ummah/internal/calc"
	"github.com/Nixie-Tech-LLC/ummah/internal/http/api"
	"github.com/Nixie-Tech-LLC/ummah/internal/http/api/integrations/packets"
	"github.com/Nixie-Tech-LLC/ummah/internal/model"
)

// overridden in tests
var now = time.Now

const defaultCity = "Local Masjid"

type IntegrationController struct {
	tz *time.Location
}

// IntegrationsModule mounts the HTML boards meant for wall displays.
// The engine must have integrations.Templates() set as its HTML renderer.
func IntegrationsModule(tz *time.Location) api.Module {
	ctl := &IntegrationController{tz: tz}
	return api.ModuleFunc(func(c *api.Controller) {
		c.RAW_GET("/integrations/athan", ctl.serveAthan)
	})
}

// GET /integrations/athan
func (i *IntegrationController) serveAthan(ctx *gin.Context) {
	var query packets.AthanQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		ctx.String(http.StatusBadRequest, "lat and lon are required: %v", err)
		return
	}

	loc := i.tz
	if query.Timezone != "" {
		l, err := time.LoadLocation(query.Timezone)
		if err != nil {
			ctx.String(http.StatusBadRequest, "invalid timezone")
			return
		}
		loc = l
	}

	n := now().In(loc)
	date := time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, loc)
	if query.Date != "" {
		d, err := time.ParseInLocation("2006-01-02", query.Date, loc)
		if err != nil {
			ctx.String(http.StatusBadRequest, "date must be YYYY-MM-DD")
			return
		}
		date = d
	}

	method := calc.DefaultMethod
	if query.Method != "" {
		method = calc.Method(query.Method)
	}
	city := query.City
	if city == "" {
		city = defaultCity
	}

	coord := calc.GeoCoordinate{Latitude: *query.Latitude, Longitude: *query.Longitude}
	ctx.HTML(http.StatusOK, "athan.html", athanPage(coord, date, method, city))
	log.Debug().Float64("lat", coord.Latitude).Float64("lon", coord.Longitude).Msg("athan board served")
}

func athanPage(coord calc.GeoCoordinate, date time.Time, method calc.Method, city string) model.AthanPageData {
	times := calc.PrayerTimes(coord, date, method)
	prayers := make([]model.Prayer, 0, len(calc.DailyPrayers))
	for _, p := range calc.DailyPrayers {
		at, _ := times.At(p)
		prayers = append(prayers, model.Prayer{
			Name:   strings.ToUpper(string(p)),
			Time:   at.Format("03:04"),
			Period: at.Format("PM"),
		})
	}

	qibla := calc.Qibla(coord)
	return model.AthanPageData{
		City:    strings.ToUpper(city),
		Date:    strings.ToUpper(date.Format("January 2, 2006")),
		Method:  method.Name(),
		Qibla:   fmt.Sprintf("%d° %s", int(math.Round(qibla.BearingDegrees))%360, qibla.Compass),
		Prayers: prayers,
	}
}
