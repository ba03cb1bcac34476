package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/ummah/internal/calc"
	"github.com/Nixie-Tech-LLC/ummah/internal/config"
	"github.com/Nixie-Tech-LLC/ummah/internal/db"
	"github.com/Nixie-Tech-LLC/ummah/internal/http/api"
	"github.com/Nixie-Tech-LLC/ummah/internal/http/middleware"
	"github.com/Nixie-Tech-LLC/ummah/internal/notify"
	"github.com/Nixie-Tech-LLC/ummah/internal/prices"
)

func setupLogger(cfg *config.Config) {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339

	if cfg.IsDevelopment() {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
}

// InitPrices uses Redis when configured so price updates survive restarts
// and are shared between instances.
func InitPrices(cfg *config.Config) prices.Book {
	fallback := calc.MetalPrices{
		GoldPerGram:   cfg.GoldPricePerGram,
		SilverPerGram: cfg.SilverPricePerGram,
		UpdatedAt:     time.Now().UTC(),
	}
	if cfg.RedisAddress == "" {
		log.Info().Msg("REDIS_ADDRESS not set, metal prices kept in memory")
		return prices.NewStaticBook(fallback)
	}

	rdb := prices.NewRedisClient(cfg.RedisAddress, cfg.RedisUsername, cfg.RedisPassword)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Warn().Err(err).Str("address", cfg.RedisAddress).Msg("redis unreachable, serving fallback prices until it recovers")
	}
	return prices.NewRedisBook(rdb, fallback)
}

// InitEvents connects to the MQTT broker when one is configured.
func InitEvents(cfg *config.Config) (notify.Publisher, func()) {
	if cfg.MQTTBrokerURL == "" {
		return notify.Nop{}, func() {}
	}
	pub, err := notify.NewMQTTPublisher(cfg.MQTTBrokerURL, cfg.MQTTClientID)
	if err != nil {
		log.Warn().Err(err).Str("broker", cfg.MQTTBrokerURL).Msg("mqtt unavailable, events disabled")
		return notify.Nop{}, func() {}
	}
	log.Info().Str("broker", cfg.MQTTBrokerURL).Msg("publishing events over mqtt")
	return pub, pub.Close
}

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Warn().Err(err).Msg("could not read .env")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	setupLogger(cfg)

	if err := db.Init(cfg.DatabaseURL); err != nil {
		log.Fatal().Err(err).Msg("db init")
	}
	if err := db.RunMigrations(db.DB, cfg.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("db migrate")
	}

	store := db.NewStore(db.DB)
	book := InitPrices(cfg)
	events, closeEvents := InitEvents(cfg)
	defer closeEvents()
	files := InitStorage(cfg)

	api.RegisterValidators()

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger())
	RegisterRoutes(r, cfg, store, book, events, files)

	srv := &http.Server{
		Addr:              cfg.ServerAddress,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info().Str("address", cfg.ServerAddress).Str("env", cfg.Environment).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	if err := db.DB.Close(); err != nil {
		log.Error().Err(err).Msg("closing database")
	}
}
