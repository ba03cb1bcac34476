package calc

import "math"

// Kaaba is the reference point of every qibla bearing.
var Kaaba = GeoCoordinate{Latitude: 21.4225, Longitude: 39.8262}

var compassPoints = [16]string{
	"N", "NNE", "NE", "ENE",
	"E", "ESE", "SE", "SSE",
	"S", "SSW", "SW", "WSW",
	"W", "WNW", "NW", "NNW",
}

// below this both atan2 operands are treated as zero
const bearingEpsilon = 1e-12

// QiblaResult is the direction to face from a location.
type QiblaResult struct {
	BearingDegrees float64 `json:"bearingDegrees"`
	Compass        string  `json:"compass"`
}

// InitialBearing returns the great-circle initial bearing from origin to
// target in degrees, normalised into [0, 360). Coincident points have no
// defined bearing and yield 0.
func InitialBearing(origin, target GeoCoordinate) float64 {
	dLng := (target.Longitude - origin.Longitude) * math.Pi / 180
	lat1 := origin.Latitude * math.Pi / 180
	lat2 := target.Latitude * math.Pi / 180

	y := math.Sin(dLng) * math.Cos(lat2)
	x := math.Cos(lat1)*math.Sin(lat2) - math.Sin(lat1)*math.Cos(lat2)*math.Cos(dLng)
	if math.Abs(x) < bearingEpsilon && math.Abs(y) < bearingEpsilon {
		return 0
	}

	bearing := math.Atan2(y, x) * 180 / math.Pi
	bearing = math.Mod(bearing+360, 360)
	if bearing >= 360 {
		// bearing+360 can round up to exactly 360 for tiny negative bearings
		bearing = 0
	}
	return bearing
}

// Qibla returns the bearing toward the Kaaba from coord.
func Qibla(coord GeoCoordinate) QiblaResult {
	bearing := InitialBearing(coord, Kaaba)
	return QiblaResult{
		BearingDegrees: bearing,
		Compass:        CompassLabel(bearing),
	}
}

// CompassLabel maps a bearing to its 16-point compass label.
func CompassLabel(bearing float64) string {
	idx := int(math.Round(bearing/22.5)) % 16
	if idx < 0 {
		idx += 16
	}
	return compassPoints[idx]
}
