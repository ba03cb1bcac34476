package calc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQibla_BearingAlwaysInRange(t *testing.T) {
	for lat := -90.0; lat <= 90; lat += 7.5 {
		for lng := -180.0; lng <= 180; lng += 11.25 {
			b := Qibla(GeoCoordinate{Latitude: lat, Longitude: lng}).BearingDegrees
			assert.GreaterOrEqual(t, b, 0.0, "lat=%v lng=%v", lat, lng)
			assert.Less(t, b, 360.0, "lat=%v lng=%v", lat, lng)
		}
	}
}

func TestQibla_KnownCities(t *testing.T) {
	nyc := Qibla(GeoCoordinate{Latitude: 40.7128, Longitude: -74.0060})
	assert.InDelta(t, 58.48, nyc.BearingDegrees, 0.1)
	assert.Equal(t, "ENE", nyc.Compass)

	london := Qibla(GeoCoordinate{Latitude: 51.5074, Longitude: -0.1278})
	assert.InDelta(t, 118.99, london.BearingDegrees, 0.1)
	assert.Equal(t, "ESE", london.Compass)
}

func TestQibla_SameMeridian(t *testing.T) {
	south := Qibla(GeoCoordinate{Latitude: 0, Longitude: Kaaba.Longitude})
	assert.InDelta(t, 0, south.BearingDegrees, 1e-9)
	assert.Equal(t, "N", south.Compass)

	north := Qibla(GeoCoordinate{Latitude: 50, Longitude: Kaaba.Longitude})
	assert.InDelta(t, 180, north.BearingDegrees, 1e-9)
	assert.Equal(t, "S", north.Compass)
}

func TestQibla_AtKaabaFallsBackToNorth(t *testing.T) {
	res := Qibla(Kaaba)
	assert.Equal(t, 0.0, res.BearingDegrees)
	assert.Equal(t, "N", res.Compass)
}

func TestCompassLabel(t *testing.T) {
	tests := map[float64]string{
		0:     "N",
		11.24: "N",
		11.25: "NNE",
		45:    "NE",
		90:    "E",
		180:   "S",
		270:   "W",
		337.5: "NNW",
		349:   "N",
		359:   "N",
	}
	for bearing, want := range tests {
		assert.Equal(t, want, CompassLabel(bearing), "bearing %v", bearing)
	}
}
