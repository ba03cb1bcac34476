package endpoints

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nixie-Tech-LLC/ummah/internal/db"
	"github.com/Nixie-Tech-LLC/ummah/internal/http/api"
	"github.com/Nixie-Tech-LLC/ummah/internal/http/api/auth/packets"
	"github.com/Nixie-Tech-LLC/ummah/internal/model"
	"github.com/Nixie-Tech-LLC/ummah/internal/storage"
)

const (
	jwtSecret = "supersecret"
	password  = "Secr3t!pass"
)

type fixture struct {
	router    *gin.Engine
	store     *db.MemoryStore
	uploadDir string
	clock     time.Time
}

func setup(t *testing.T) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)
	api.RegisterValidators()

	f := &fixture{
		store:     db.NewMemoryStore(),
		uploadDir: t.TempDir(),
		clock:     time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC),
	}
	now = func() time.Time { return f.clock }
	t.Cleanup(func() { now = time.Now })

	r := gin.New()
	api.MountGroup(r, api.GroupConfig{Prefix: "/api"}, AuthPublicModule(jwtSecret, f.store))
	api.MountGroup(r, api.GroupConfig{
		Prefix: "/api", Auth: true, SecretKey: jwtSecret, Users: f.store,
	}, AuthSessionModule(jwtSecret, f.store, storage.NewLocalStorage(f.uploadDir, "/uploads")))
	f.router = r
	return f
}

func (f *fixture) do(t *testing.T, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func signupBody() gin.H {
	return gin.H{
		"username":  "bilal_r",
		"email":     "bilal@example.com",
		"password":  password,
		"firstName": "Bilal",
		"lastName":  "Rabah",
	}
}

func (f *fixture) signup(t *testing.T) packets.TokenResponse {
	t.Helper()
	w := f.do(t, http.MethodPost, "/api/auth/signup", signupBody(), "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp packets.TokenResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func (f *fixture) login(t *testing.T, pass string) *httptest.ResponseRecorder {
	return f.do(t, http.MethodPost, "/api/auth/login", gin.H{"email": "bilal@example.com", "password": pass}, "")
}

func TestSignup(t *testing.T) {
	f := setup(t)
	resp := f.signup(t)

	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "bilal_r", resp.User.Username)
	assert.Equal(t, "Bilal Rabah", resp.User.FullName)
	assert.Equal(t, "MWL", resp.User.Preferences.CalculationMethod)

	stored, err := f.store.GetUserByEmail("bilal@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, password, stored.HashedPassword)
}

func TestSignup_Conflict(t *testing.T) {
	f := setup(t)
	f.signup(t)

	body := signupBody()
	body["email"] = "other@example.com"
	w := f.do(t, http.MethodPost, "/api/auth/signup", body, "")
	assert.Equal(t, http.StatusConflict, w.Code)

	body = signupBody()
	body["username"] = "someone_else"
	w = f.do(t, http.MethodPost, "/api/auth/signup", body, "")
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestEmailIsCaseInsensitive(t *testing.T) {
	f := setup(t)
	f.signup(t)

	body := signupBody()
	body["username"] = "bilal_two"
	body["email"] = "BILAL@example.com"
	w := f.do(t, http.MethodPost, "/api/auth/signup", body, "")
	assert.Equal(t, http.StatusConflict, w.Code)

	w = f.do(t, http.MethodPost, "/api/auth/login", gin.H{"email": "Bilal@Example.com", "password": password}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp packets.TokenResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "bilal@example.com", resp.User.Email)
}

func TestSignup_StoresLowercasedEmail(t *testing.T) {
	f := setup(t)
	body := signupBody()
	body["email"] = "Bilal@Example.COM"
	w := f.do(t, http.MethodPost, "/api/auth/signup", body, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp packets.TokenResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "bilal@example.com", resp.User.Email)
}

func TestSignup_Validation(t *testing.T) {
	f := setup(t)
	cases := map[string]func(gin.H){
		"weak password":    func(b gin.H) { b["password"] = "password1" },
		"short password":   func(b gin.H) { b["password"] = "Aa1!" },
		"bad username":     func(b gin.H) { b["username"] = "no spaces" },
		"short username":   func(b gin.H) { b["username"] = "ab" },
		"bad email":        func(b gin.H) { b["email"] = "nope" },
		"short first name": func(b gin.H) { b["firstName"] = "B" },
		"missing lastName": func(b gin.H) { delete(b, "lastName") },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			body := signupBody()
			mutate(body)
			w := f.do(t, http.MethodPost, "/api/auth/signup", body, "")
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestLogin(t *testing.T) {
	f := setup(t)
	f.signup(t)

	w := f.login(t, password)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp packets.TokenResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Token)
	require.NotNil(t, resp.User.LastLogin)
	assert.True(t, resp.User.LastLogin.Equal(f.clock))

	w = f.do(t, http.MethodPost, "/api/auth/login", gin.H{"email": "ghost@example.com", "password": password}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogin_LockoutAfterRepeatedFailures(t *testing.T) {
	f := setup(t)
	f.signup(t)

	for i := 0; i < model.MaxLoginAttempts; i++ {
		w := f.login(t, "Wr0ng!pass")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	}

	user, err := f.store.GetUserByEmail("bilal@example.com")
	require.NoError(t, err)
	require.NotNil(t, user.LockUntil)
	assert.Equal(t, f.clock.Add(model.LockoutDuration), *user.LockUntil)

	// correct password is refused while locked
	w := f.login(t, password)
	assert.Equal(t, http.StatusLocked, w.Code)

	f.clock = f.clock.Add(model.LockoutDuration + time.Minute)
	w = f.login(t, password)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	user, err = f.store.GetUserByEmail("bilal@example.com")
	require.NoError(t, err)
	assert.Zero(t, user.LoginAttempts)
	assert.Nil(t, user.LockUntil)
}

func TestLogin_ConcurrentFailuresStillLock(t *testing.T) {
	f := setup(t)
	f.signup(t)

	const parallel = 20
	body := `{"email": "bilal@example.com", "password": "Wr0ng!pass"}`
	codes := make([]int, parallel)
	var wg sync.WaitGroup
	for i := 0; i < parallel; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			f.router.ServeHTTP(w, req)
			codes[i] = w.Code
		}(i)
	}
	wg.Wait()

	for _, code := range codes {
		assert.Contains(t, []int{http.StatusUnauthorized, http.StatusLocked}, code)
	}

	user, err := f.store.GetUserByEmail("bilal@example.com")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, user.LoginAttempts, model.MaxLoginAttempts)
	require.NotNil(t, user.LockUntil)
	assert.Equal(t, f.clock.Add(model.LockoutDuration), *user.LockUntil)

	w := f.login(t, password)
	assert.Equal(t, http.StatusLocked, w.Code)
}

func TestProfile(t *testing.T) {
	f := setup(t)
	token := f.signup(t).Token

	w := f.do(t, http.MethodGet, "/api/auth/me", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = f.do(t, http.MethodPut, "/api/auth/me", gin.H{
		"lastName":    "ibn Rabah",
		"preferences": gin.H{"calculationMethod": "ISNA", "madhab": "maliki"},
		"location":    gin.H{"city": "Chicago", "latitude": 41.8781, "longitude": -87.6298},
	}, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = f.do(t, http.MethodGet, "/api/auth/me", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	var profile packets.ProfileResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &profile))
	assert.Equal(t, "Bilal", profile.FirstName)
	assert.Equal(t, "ibn Rabah", profile.LastName)
	assert.Equal(t, "ISNA", profile.Preferences.CalculationMethod)
	assert.Equal(t, "maliki", profile.Preferences.Madhab)
	assert.Equal(t, "en", profile.Preferences.Language)
	require.NotNil(t, profile.Location.City)
	assert.Equal(t, "Chicago", *profile.Location.City)
	require.NotNil(t, profile.Location.Latitude)
	assert.InDelta(t, 41.8781, *profile.Location.Latitude, 1e-9)

	for _, bad := range []gin.H{
		{"preferences": gin.H{"calculationMethod": "XYZ"}},
		{"preferences": gin.H{"madhab": "zahiri"}},
		{"location": gin.H{"latitude": 91}},
	} {
		w = f.do(t, http.MethodPut, "/api/auth/me", bad, token)
		assert.Equal(t, http.StatusBadRequest, w.Code, bad)
	}
}

func avatarRequest(t *testing.T, filename string, size int, token string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("avatar", filename)
	require.NoError(t, err)
	_, err = part.Write(bytes.Repeat([]byte{0xff}, size))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPut, "/api/auth/me/avatar", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func TestUploadAvatar(t *testing.T) {
	f := setup(t)
	resp := f.signup(t)

	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, avatarRequest(t, "me.png", 128, resp.Token))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var body struct {
		AvatarURL string `json:"avatarUrl"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Regexp(t, `^/uploads/avatars/user_\d+_\d{8}_\d{6}\.png$`, body.AvatarURL)

	_, err := os.Stat(filepath.Join(f.uploadDir, "avatars", filepath.Base(body.AvatarURL)))
	assert.NoError(t, err)

	user, err := f.store.GetUserByID(resp.User.ID)
	require.NoError(t, err)
	require.NotNil(t, user.AvatarURL)
	assert.Equal(t, body.AvatarURL, *user.AvatarURL)
}

func TestUploadAvatar_Rejected(t *testing.T) {
	f := setup(t)
	token := f.signup(t).Token

	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, avatarRequest(t, "notes.txt", 16, token))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = httptest.NewRecorder()
	f.router.ServeHTTP(w, avatarRequest(t, "huge.jpg", storage.MaxAvatarBytes+1, token))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = f.do(t, http.MethodPut, "/api/auth/me/avatar", nil, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
