package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
	_ "time/tzdata"

	"github.com/Nixie-Tech-LLC/ummah/internal/calc"
)

// Config holds environment-based settings
type Config struct {
	Environment    string
	LogLevel       string
	DatabaseURL    string
	MigrationsPath string
	JWTSecret      string
	ServerAddress  string

	RedisAddress  string
	RedisUsername string
	RedisPassword string

	MQTTBrokerURL string
	MQTTClientID  string

	GoldPricePerGram   float64
	SilverPricePerGram float64
	DefaultTimezone    *time.Location

	UseSpaces       bool
	SpacesEndpoint  string
	SpacesRegion    string
	SpacesBucket    string
	SpacesCDNURL    string
	SpacesAccessKey string
	SpacesSecretKey string
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getFloat(key string, fallback float64) (float64, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || !calc.ValidPrice(v) {
		return 0, fmt.Errorf("%s must be a number between 0 and %g, got %q", key, calc.MaxPricePerGram, raw)
	}
	return v, nil
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	jwt := os.Getenv("JWT_SECRET")
	if jwt == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	gold, err := getFloat("GOLD_PRICE_PER_GRAM", 65.50)
	if err != nil {
		return nil, err
	}
	silver, err := getFloat("SILVER_PRICE_PER_GRAM", 0.85)
	if err != nil {
		return nil, err
	}

	tzName := getenv("DEFAULT_TIMEZONE", "UTC")
	tz, err := time.LoadLocation(tzName)
	if err != nil {
		return nil, fmt.Errorf("DEFAULT_TIMEZONE %q: %w", tzName, err)
	}

	cfg := &Config{
		Environment:    getenv("APP_ENV", "production"),
		LogLevel:       getenv("LOG_LEVEL", "info"),
		DatabaseURL:    dbURL,
		MigrationsPath: getenv("MIGRATIONS_PATH", "./migrations"),
		JWTSecret:      jwt,
		ServerAddress:  getenv("SERVER_ADDRESS", ":8080"),

		RedisAddress:  os.Getenv("REDIS_ADDRESS"),
		RedisUsername: os.Getenv("REDIS_USERNAME"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		MQTTBrokerURL: os.Getenv("MQTT_BROKER_URL"),
		MQTTClientID:  getenv("MQTT_CLIENT_ID", "ummah-api"),

		GoldPricePerGram:   gold,
		SilverPricePerGram: silver,
		DefaultTimezone:    tz,

		UseSpaces:       os.Getenv("USE_SPACES") == "true",
		SpacesEndpoint:  os.Getenv("SPACES_ENDPOINT"),
		SpacesRegion:    os.Getenv("SPACES_REGION"),
		SpacesBucket:    os.Getenv("SPACES_BUCKET"),
		SpacesCDNURL:    os.Getenv("SPACES_CDN_URL"),
		SpacesAccessKey: os.Getenv("SPACES_ACCESS_KEY"),
		SpacesSecretKey: os.Getenv("SPACES_SECRET_KEY"),
	}

	if cfg.UseSpaces && (cfg.SpacesBucket == "" || cfg.SpacesEndpoint == "") {
		return nil, fmt.Errorf("SPACES_BUCKET and SPACES_ENDPOINT are required when USE_SPACES=true")
	}
	return cfg, nil
}
