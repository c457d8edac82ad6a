package config

import (
	"errors"
	"os"
	"strconv"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort             string
	MySQLDSN               string
	RedisAddr              string
	RedisDB                int
	RedisPass              string
	JWTSecret              string
	JWTIssuer              string
	JWTAudience            string
	AllowPasswordMigration bool
	CORSOrigins            string
	SwaggerHost            string
}

// ErrMissingJWTSecret makes a missing signing key a startup failure instead of
// a per-request one.
var ErrMissingJWTSecret = errors.New("JWT_SECRET_KEY is not configured")

// Load builds Config from environment with sensible defaults. The JWT signing
// secret has no default; its absence is fatal.
func Load() (*Config, error) {
	cfg := &Config{
		ServerPort:             getEnv("SERVER_PORT", "8080"),
		MySQLDSN:               getEnv("MYSQL_DSN", "user:password@tcp(localhost:3306)/forestinv?charset=utf8mb4&parseTime=True&loc=Local"),
		RedisAddr:              getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:                getEnvInt("REDIS_DB", 0),
		RedisPass:              os.Getenv("REDIS_PASSWORD"),
		JWTSecret:              os.Getenv("JWT_SECRET_KEY"),
		JWTIssuer:              getEnv("JWT_ISSUER", "ForestInventoryAPI"),
		JWTAudience:            getEnv("JWT_AUDIENCE", "ForestInventoryApp"),
		AllowPasswordMigration: getEnvBool("ALLOW_PASSWORD_MIGRATION", false),
		CORSOrigins:            getEnv("CORS_ORIGINS", "http://localhost:5173,http://localhost:3000"),
		SwaggerHost:            os.Getenv("SWAGGER_HOST"),
	}
	if cfg.JWTSecret == "" {
		return nil, ErrMissingJWTSecret
	}
	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			return parsed
		}
	}
	return def
}
