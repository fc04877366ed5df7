package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port           string
	DBUrl          string
	JWTSecret      string
	ScoreOracleURL string
	OracleTimeout  time.Duration
	StoreTimeout   time.Duration
	AppEnv         string
	LogLevel       string
}

// LoadConfig reads the environment into a Config. Required values are
// checked by each binary, not here; the migrate command needs DB_URL but
// has no use for a JWT secret.
func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	return &Config{
		Port:           getEnv("PORT", "8080"),
		DBUrl:          getEnv("DB_URL", ""),
		JWTSecret:      getEnv("JWT_SECRET", ""),
		ScoreOracleURL: getEnv("SCORE_ORACLE_URL", ""),
		OracleTimeout:  getEnvSeconds("SCORE_ORACLE_TIMEOUT_SECONDS", 30),
		StoreTimeout:   getEnvSeconds("DB_TIMEOUT_SECONDS", 10),
		AppEnv:         normalizeEnv(getEnv("APP_ENV", "production")),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvSeconds(key string, fallback int) time.Duration {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return time.Duration(fallback) * time.Second
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || n <= 0 {
		return time.Duration(fallback) * time.Second
	}
	return time.Duration(n) * time.Second
}

func normalizeEnv(value string) string {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "dev", "develop", "development", "local":
		return "development"
	case "prod", "production":
		return "production"
	case "stage", "staging":
		return "staging"
	case "test", "testing":
		return "test"
	default:
		return strings.ToLower(strings.TrimSpace(value))
	}
}
