package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// Config is the whole runtime configuration, loaded once at startup and
// read-only afterwards.
type Config struct {
	HTTPPort        string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration

	// Remote catalog document and its four tab names.
	SheetID           string
	SiteContentTab    string
	ArtistsTab        string
	ArtworksTab       string
	ArtworkDetailsTab string

	Currency       string
	CurrencySymbol string

	ShippingFlatRate      decimal.Decimal
	FreeShippingThreshold decimal.Decimal

	RedisAddr string

	// Publishable key of the payment provider. Leaving it empty keeps the
	// checkout endpoint in "not configured" mode.
	StripePublishableKey string
}

// Load reads configuration from the environment, with an optional .env file
// for local development. Every value has a working default.
func Load() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Warn().Err(err).Msg("could not read .env file")
	}

	return &Config{
		HTTPPort:        getEnv("HTTP_PORT", "8080"),
		RequestTimeout:  getEnvDuration("REQUEST_TIMEOUT", 30*time.Second),
		ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second),

		SheetID:           getEnv("GALLERY_SHEET_ID", "1WupqF-K8EOAEoFEKR38B0AvrmOLZpLZwwxtDVGs3d8I"),
		SiteContentTab:    getEnv("SHEET_SITE_CONTENT", "Site_Content"),
		ArtistsTab:        getEnv("SHEET_ARTISTS", "Artists"),
		ArtworksTab:       getEnv("SHEET_ARTWORKS", "Artworks"),
		ArtworkDetailsTab: getEnv("SHEET_ARTWORK_DETAILS", "Artwork_Details"),

		Currency:       getEnv("CURRENCY", "AUD"),
		CurrencySymbol: getEnv("CURRENCY_SYMBOL", "$"),

		ShippingFlatRate:      getEnvDecimal("SHIPPING_FLAT_RATE", decimal.NewFromFloat(15.0)),
		FreeShippingThreshold: getEnvDecimal("FREE_SHIPPING_THRESHOLD", decimal.NewFromFloat(200.0)),

		RedisAddr: getEnv("REDIS_ADDR", "localhost:6379"),

		StripePublishableKey: os.Getenv("STRIPE_PUBLISHABLE_KEY"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		log.Fatal().Str("key", key).Str("value", value).Msg("invalid duration in environment")
	}
	return d
}

func getEnvDecimal(key string, defaultValue decimal.Decimal) decimal.Decimal {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		log.Fatal().Str("key", key).Str("value", value).Msg("invalid decimal in environment")
	}
	return d
}
