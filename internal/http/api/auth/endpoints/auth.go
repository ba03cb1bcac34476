package endpoints

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/ummah/internal/db"
	"github.com/Nixie-Tech-LLC/ummah/internal/http/api"
	"github.com/Nixie-Tech-LLC/ummah/internal/http/api/auth/packets"
	"github.com/Nixie-Tech-LLC/ummah/internal/http/middleware"
	"github.com/Nixie-Tech-LLC/ummah/internal/model"
	"github.com/Nixie-Tech-LLC/ummah/internal/storage"
)

// overridden in tests
var now = time.Now

// AuthPublicModule mounts public auth endpoints (/auth/signup, /auth/login)
func AuthPublicModule(jwtSecret string, store db.Store) api.Module {
	ctl := newAccountManager(jwtSecret, store, nil)
	return api.ModuleFunc(func(c *api.Controller) {
		c.PUBLIC_POST("/auth/signup", ctl.userSignup)
		c.PUBLIC_POST("/auth/login", ctl.userLogin)
	})
}

// AuthSessionModule mounts private session/profile endpoints (JWT required)
func AuthSessionModule(jwtSecret string, store db.Store, files storage.Storage) api.Module {
	ctl := newAccountManager(jwtSecret, store, files)
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/auth/me", ctl.getCurrentProfile)
		c.PUT("/auth/me", ctl.updateCurrentProfile)
		c.PUT("/auth/me/avatar", ctl.uploadAvatar)
	})
}

type AccountManager struct {
	jwtSecret string
	store     db.Store
	files     storage.Storage
}

func newAccountManager(secret string, store db.Store, files storage.Storage) *AccountManager {
	return &AccountManager{jwtSecret: secret, store: store, files: files}
}

func profileResponse(u *model.User) packets.ProfileResponse {
	return packets.ProfileResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		FullName:  u.FullName(),
		AvatarURL: u.AvatarURL,
		Preferences: packets.Preferences{
			CalculationMethod: u.CalculationMethod,
			Madhab:            u.Madhab,
			Language:          u.Language,
		},
		Location: packets.Location{
			City:      u.City,
			Country:   u.Country,
			Latitude:  u.Latitude,
			Longitude: u.Longitude,
		},
		LastLogin: u.LastLogin,
		CreatedAt: u.CreatedAt.Format(time.RFC3339),
		UpdatedAt: u.UpdatedAt.Format(time.RFC3339),
	}
}

// emails are stored and looked up lowercased
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (a *AccountManager) issueToken(user *model.User, message string) (any, *api.APIError) {
	token, err := middleware.GenerateJWT(user.ID, a.jwtSecret)
	if err != nil {
		log.Error().Err(err).Int("user_id", user.ID).Msg("could not generate token")
		return nil, api.Internal("could not generate token")
	}
	return packets.TokenResponse{Message: message, Token: token, User: profileResponse(user)}, nil
}

// POST /api/auth/signup
func (a *AccountManager) userSignup(ctx *gin.Context) (any, *api.APIError) {
	var request packets.SignupRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, api.BadRequest(err.Error())
	}
	request.Email = normalizeEmail(request.Email)

	existing, _ := a.store.GetUserByEmail(request.Email)
	if existing == nil {
		existing, _ = a.store.GetUserByUsername(request.Username)
	}
	if existing != nil {
		log.Warn().Str("email", request.Email).Str("username", request.Username).Msg("signup conflicts with existing user")
		return nil, &api.APIError{Code: http.StatusConflict, Message: "user with this email or username already exists"}
	}

	hashed, err := middleware.HashPassword(request.Password)
	if err != nil {
		return nil, api.Internal("could not hash password")
	}

	userID, err := a.store.CreateUser(model.NewUser{
		Username:       request.Username,
		Email:          request.Email,
		HashedPassword: hashed,
		FirstName:      request.FirstName,
		LastName:       request.LastName,
	})
	if err != nil {
		log.Error().Err(err).Str("email", request.Email).Msg("could not create user")
		return nil, api.Internal("could not create user")
	}

	user, err := a.store.GetUserByID(userID)
	if err != nil {
		return nil, api.Internal("could not load new user")
	}

	log.Info().Int("user_id", userID).Msg("user registered")
	return a.issueToken(user, "User registered successfully")
}

// POST /api/auth/login
func (a *AccountManager) userLogin(ctx *gin.Context) (any, *api.APIError) {
	var request packets.LoginRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, api.BadRequest(err.Error())
	}
	request.Email = normalizeEmail(request.Email)

	user, err := a.store.GetUserByEmail(request.Email)
	if err != nil || user == nil {
		return nil, api.Unauthorized(middleware.ErrInvalidCredentials.Error())
	}

	at := now()
	if user.IsLocked(at) {
		return nil, &api.APIError{
			Code:    http.StatusLocked,
			Message: "account temporarily locked due to too many failed login attempts",
		}
	}

	if !middleware.CheckPassword(user.HashedPassword, request.Password) {
		attempts, lockUntil, err := a.store.RecordFailedLogin(user.ID, at)
		if err != nil {
			log.Error().Err(err).Int("user_id", user.ID).Msg("could not record failed login")
		}
		if lockUntil != nil && attempts == model.MaxLoginAttempts {
			log.Warn().Int("user_id", user.ID).Time("lock_until", *lockUntil).Msg("account locked")
		}
		return nil, api.Unauthorized(middleware.ErrInvalidCredentials.Error())
	}

	if err := a.store.RecordLogin(user.ID, at); err != nil {
		log.Error().Err(err).Int("user_id", user.ID).Msg("could not record login")
		return nil, api.Internal("could not complete login")
	}
	user.LoginAttempts, user.LockUntil, user.LastLogin = 0, nil, &at

	return a.issueToken(user, "Login successful")
}

// GET /api/auth/me
func (a *AccountManager) getCurrentProfile(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	return profileResponse(user), nil
}

// PUT /api/auth/me
func (a *AccountManager) updateCurrentProfile(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	var request packets.UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, api.BadRequest(err.Error())
	}

	update := model.ProfileUpdate{
		FirstName:         user.FirstName,
		LastName:          user.LastName,
		Language:          user.Language,
		CalculationMethod: user.CalculationMethod,
		Madhab:            user.Madhab,
		City:              user.City,
		Country:           user.Country,
		Latitude:          user.Latitude,
		Longitude:         user.Longitude,
	}
	if request.FirstName != "" {
		update.FirstName = request.FirstName
	}
	if request.LastName != "" {
		update.LastName = request.LastName
	}
	if p := request.Preferences; p != nil {
		if p.CalculationMethod != "" {
			update.CalculationMethod = p.CalculationMethod
		}
		if p.Madhab != "" {
			update.Madhab = p.Madhab
		}
		if p.Language != "" {
			update.Language = p.Language
		}
	}
	if l := request.Location; l != nil {
		if l.City != nil {
			update.City = l.City
		}
		if l.Country != nil {
			update.Country = l.Country
		}
		if l.Latitude != nil {
			update.Latitude = l.Latitude
		}
		if l.Longitude != nil {
			update.Longitude = l.Longitude
		}
	}

	if err := a.store.UpdateUserProfile(user.ID, update); err != nil {
		log.Error().Err(err).Int("user_id", user.ID).Msg("could not update profile")
		return nil, api.Internal("could not update profile")
	}

	updated, err := a.store.GetUserByID(user.ID)
	if err != nil {
		return nil, api.Internal("could not fetch updated profile")
	}

	return gin.H{"message": "Profile updated successfully", "user": profileResponse(updated)}, nil
}

// PUT /api/auth/me/avatar (multipart field "avatar")
func (a *AccountManager) uploadAvatar(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	fileHeader, err := ctx.FormFile("avatar")
	if err != nil {
		return nil, api.BadRequest("avatar file is required")
	}
	if fileHeader.Size > storage.MaxAvatarBytes {
		return nil, api.BadRequest("avatar must be 2MB or smaller")
	}

	url, err := a.files.SaveAvatar(fileHeader, user.ID)
	if errors.Is(err, storage.ErrUnsupportedType) {
		return nil, api.BadRequest(err.Error())
	}
	if err != nil {
		log.Error().Err(err).Int("user_id", user.ID).Msg("could not store avatar")
		return nil, api.Internal("could not store avatar")
	}

	if err := a.store.UpdateUserAvatar(user.ID, url); err != nil {
		return nil, api.Internal("could not update avatar")
	}

	return gin.H{"message": "Avatar updated successfully", "avatarUrl": url}, nil
}
