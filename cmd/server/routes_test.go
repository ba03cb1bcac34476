package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nixie-Tech-LLC/ummah/internal/calc"
	"github.com/Nixie-Tech-LLC/ummah/internal/config"
	"github.com/Nixie-Tech-LLC/ummah/internal/db"
	"github.com/Nixie-Tech-LLC/ummah/internal/http/api"
	"github.com/Nixie-Tech-LLC/ummah/internal/http/middleware"
	"github.com/Nixie-Tech-LLC/ummah/internal/notify"
	"github.com/Nixie-Tech-LLC/ummah/internal/prices"
	"github.com/Nixie-Tech-LLC/ummah/internal/storage"
)

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	api.RegisterValidators()

	cfg := &config.Config{JWTSecret: "supersecret", DefaultTimezone: time.UTC}
	book := prices.NewStaticBook(calc.MetalPrices{GoldPerGram: 65.50, SilverPerGram: 0.85})

	r := gin.New()
	r.Use(middleware.RequestLogger())
	RegisterRoutes(r, cfg, db.NewMemoryStore(), book, notify.Nop{}, storage.NewLocalStorage(t.TempDir(), "/uploads"))
	return r
}

func send(r *gin.Engine, method, path string, body any, token string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSignupThenPersonalisedPrayerTimes(t *testing.T) {
	r := setupRouter(t)

	w := send(r, http.MethodPost, "/api/auth/signup", gin.H{
		"username":  "umar_k",
		"email":     "umar@example.com",
		"password":  "Secr3t!pass",
		"firstName": "Umar",
		"lastName":  "Khattab",
	}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var signup struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &signup))

	w = send(r, http.MethodPut, "/api/auth/me", gin.H{
		"preferences": gin.H{"calculationMethod": "Karachi"},
		"location":    gin.H{"latitude": 24.8607, "longitude": 67.0011},
	}, signup.Token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// no coordinates or method: both come from the profile
	w = send(r, http.MethodGet, "/api/prayers/times?date=2025-03-10", nil, signup.Token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var times struct {
		Method struct {
			ID string `json:"id"`
		} `json:"method"`
		Location calc.GeoCoordinate `json:"location"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &times))
	assert.Equal(t, "Karachi", times.Method.ID)
	assert.InDelta(t, 24.8607, times.Location.Latitude, 1e-9)

	// anonymous callers must send coordinates
	w = send(r, http.MethodGet, "/api/prayers/times", nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = send(r, http.MethodPost, "/api/prayers/track", gin.H{"prayer": "fajr", "completed": true}, signup.Token)
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestPublicAndPrivateRoutes(t *testing.T) {
	r := setupRouter(t)

	cases := []struct {
		method string
		path   string
		body   any
		want   int
	}{
		{http.MethodGet, "/api/prayers/methods", nil, http.StatusOK},
		{http.MethodGet, "/api/prayers/qibla?latitude=51.5074&longitude=-0.1278", nil, http.StatusOK},
		{http.MethodPost, "/api/zakat/calculate", gin.H{"cash": 10000}, http.StatusOK},
		{http.MethodGet, "/api/zakat/nisab", nil, http.StatusOK},
		{http.MethodGet, "/api/zakat/prices", nil, http.StatusOK},
		{http.MethodGet, "/integrations/athan?lat=21.4225&lon=39.8262&city=Makkah", nil, http.StatusOK},
		{http.MethodGet, "/api/auth/me", nil, http.StatusUnauthorized},
		{http.MethodGet, "/api/prayers/history", nil, http.StatusUnauthorized},
		{http.MethodGet, "/api/zakat/history", nil, http.StatusUnauthorized},
		{http.MethodPut, "/api/zakat/prices", gin.H{"gold": 70, "silver": 1}, http.StatusUnauthorized},
	}
	for _, tc := range cases {
		w := send(r, tc.method, tc.path, tc.body, "")
		assert.Equal(t, tc.want, w.Code, "%s %s: %s", tc.method, tc.path, w.Body.String())
	}
}

func TestRequestIDAndCORSHeaders(t *testing.T) {
	r := setupRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/prayers/methods", nil)
	req.Header.Set("Origin", "https://ummah.example")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
	assert.Equal(t, "https://ummah.example", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/api/prayers/methods", nil)
	req.Header.Set(middleware.RequestIDHeader, "abc-123")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get(middleware.RequestIDHeader))
}
