package main

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/Nixie-Tech-LLC/ummah/internal/config"
	"github.com/Nixie-Tech-LLC/ummah/internal/db"
	"github.com/Nixie-Tech-LLC/ummah/internal/http/api"
	authapi "github.com/Nixie-Tech-LLC/ummah/internal/http/api/auth/endpoints"
	"github.com/Nixie-Tech-LLC/ummah/internal/http/api/integrations"
	integrationsapi "github.com/Nixie-Tech-LLC/ummah/internal/http/api/integrations/endpoints"
	prayerapi "github.com/Nixie-Tech-LLC/ummah/internal/http/api/prayers/endpoints"
	zakatapi "github.com/Nixie-Tech-LLC/ummah/internal/http/api/zakat/endpoints"
	"github.com/Nixie-Tech-LLC/ummah/internal/http/middleware"
	"github.com/Nixie-Tech-LLC/ummah/internal/notify"
	"github.com/Nixie-Tech-LLC/ummah/internal/prices"
	"github.com/Nixie-Tech-LLC/ummah/internal/storage"
)

// RegisterRoutes sets up all application routes
func RegisterRoutes(r *gin.Engine, cfg *config.Config, store db.Store, book prices.Book, events notify.Publisher, files storage.Storage) {
	r.SetHTMLTemplate(integrations.Templates())
	// CORS
	r.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool { return true },
		AllowMethods: []string{
			"GET",
			"POST",
			"PUT",
			"OPTIONS",
			"HEAD",
		},
		AllowHeaders: []string{
			"Origin",
			"Content-Type",
			"Authorization",
			"Accept",
			middleware.RequestIDHeader,
		},
		ExposeHeaders: []string{
			"Content-Length",
			middleware.RequestIDHeader,
		},
		AllowCredentials: false,
	}))

	// public endpoints; a valid token, when sent, personalises the response
	api.MountGroup(r, api.GroupConfig{
		Prefix:       "/api",
		OptionalAuth: true,
		SecretKey:    cfg.JWTSecret,
		Users:        store,
	},
		authapi.AuthPublicModule(cfg.JWTSecret, store),
		prayerapi.PrayerPublicModule(cfg.DefaultTimezone),
		zakatapi.ZakatPublicModule(book),
	)

	api.MountGroup(r, api.GroupConfig{
		Prefix:    "/api",
		Auth:      true,
		SecretKey: cfg.JWTSecret,
		Users:     store,
	},
		authapi.AuthSessionModule(cfg.JWTSecret, store, files),
		prayerapi.PrayerSessionModule(store, events, cfg.DefaultTimezone),
		zakatapi.ZakatSessionModule(store, book, events),
	)

	api.MountGroup(r, api.GroupConfig{},
		integrationsapi.IntegrationsModule(cfg.DefaultTimezone),
	)

	// Static content
	if !cfg.UseSpaces {
		r.Static("/uploads", uploadDir)
	}
}
