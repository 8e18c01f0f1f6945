package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL       string
	Port              string
	IsProduction      bool
	JWTSecret         string
	JWTExpiryDuration time.Duration

	// Receipt storage (Google Drive)
	DriveCredentialsFile string
	DriveFolderID        string

	// Receipt field extraction (Gemini)
	GeminiAPIKey  string
	GeminiModel   string
	GeminiTimeout time.Duration

	// Receipt intake pipeline
	ReceiptMaxBytes      int64
	ReceiptBranchTimeout time.Duration

	// Currency conversion
	ExchangeRateTimeout time.Duration

	// HTTP surface
	CORSAllowedOrigins []string
	RateLimitFormatted string // ulule/limiter format, e.g. "100-M"

	// Product analytics; empty disables event capture entirely
	PosthogAPIKey string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "24h")
	viper.SetDefault("DRIVE_CREDENTIALS_FILE", "credentials.json")
	viper.SetDefault("DRIVE_FOLDER_ID", "")
	viper.SetDefault("GEMINI_API_KEY", "")
	viper.SetDefault("GEMINI_MODEL", "gemini-2.0-flash")
	viper.SetDefault("GEMINI_TIMEOUT", "30s")
	viper.SetDefault("RECEIPT_MAX_BYTES", 10<<20)
	viper.SetDefault("RECEIPT_BRANCH_TIMEOUT", "45s")
	viper.SetDefault("EXCHANGE_RATE_TIMEOUT", "10s")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("RATE_LIMIT", "100-M")
	viper.SetDefault("POSTHOG_API_KEY", "")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}
	cfg.JWTExpiryDuration = parseDurationOr("JWT_EXPIRY_DURATION", 24*time.Hour)

	cfg.DriveCredentialsFile = viper.GetString("DRIVE_CREDENTIALS_FILE")
	cfg.DriveFolderID = viper.GetString("DRIVE_FOLDER_ID")
	if cfg.DriveFolderID == "" {
		log.Println("Warning: DRIVE_FOLDER_ID not set. Receipt uploads will land in the service account root.")
	}

	cfg.GeminiAPIKey = viper.GetString("GEMINI_API_KEY")
	if cfg.GeminiAPIKey == "" {
		log.Println("Warning: GEMINI_API_KEY not set. Receipt field extraction will not function.")
	}
	cfg.GeminiModel = viper.GetString("GEMINI_MODEL")
	cfg.GeminiTimeout = parseDurationOr("GEMINI_TIMEOUT", 30*time.Second)

	cfg.ReceiptMaxBytes = viper.GetInt64("RECEIPT_MAX_BYTES")
	cfg.ReceiptBranchTimeout = parseDurationOr("RECEIPT_BRANCH_TIMEOUT", 45*time.Second)

	cfg.ExchangeRateTimeout = parseDurationOr("EXCHANGE_RATE_TIMEOUT", 10*time.Second)

	cfg.CORSAllowedOrigins = viper.GetStringSlice("CORS_ALLOWED_ORIGINS")
	cfg.RateLimitFormatted = viper.GetString("RATE_LIMIT")
	cfg.PosthogAPIKey = viper.GetString("POSTHOG_API_KEY")

	return cfg, nil
}

func parseDurationOr(key string, fallback time.Duration) time.Duration {
	raw := viper.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, fallback)
		}
		return fallback
	}
	return d
}
