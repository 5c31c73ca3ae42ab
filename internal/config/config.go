package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// ProductionScoringAPIURL is the fallback when SCORING_API_URL is unset.
const ProductionScoringAPIURL = "https://api.propscore.io"

type Config struct {
	App     AppConfig
	Scoring ScoringConfig
	SMTP    SMTPConfig
	Archive ArchiveConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	ClientURL          string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
	JWTSecret          string
}

type ScoringConfig struct {
	BaseURL      string
	DebugLogging bool
}

type SMTPConfig struct {
	Host         string
	Port         int
	Email        string
	Password     string
	SenderName   string
	ContactInbox string
}

type ArchiveConfig struct {
	Connection string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			ClientURL:          getEnv("CLIENT_URL", "http://localhost:5173"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", ""),
			JWTSecret:          getEnv("JWT_SECRET", ""),
		},
		Scoring: ScoringConfig{
			BaseURL:      ResolveScoringAPIURL(),
			DebugLogging: getEnvAsBool("SCORING_API_DEBUG", false),
		},
		SMTP: SMTPConfig{
			Host:         getEnv("SMTP_HOST", ""),
			Port:         getEnvAsInt("SMTP_PORT", 587),
			Email:        getEnv("SMTP_EMAIL", ""),
			Password:     getEnv("SMTP_PASSWORD", ""),
			SenderName:   getEnv("SMTP_SENDER_NAME", "PropScore"),
			ContactInbox: getEnv("CONTACT_INBOX", "hello@propscore.io"),
		},
		Archive: ArchiveConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
	}
}

// ResolveScoringAPIURL returns the configured scoring-API base URL, falling
// back to the hardcoded production endpoint.
func ResolveScoringAPIURL() string {
	return getEnv("SCORING_API_URL", ProductionScoringAPIURL)
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return fallback
}
