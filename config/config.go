package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	ServerHost string
	ServerPort string

	// Database configuration
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Redis configuration
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisURL      string

	// JWT configuration
	JWTSecret string

	// Object storage
	S3Bucket  string
	AWSRegion string

	// Frontend origin, used for CORS and email links
	FrontendURL string
}

// String returns the config with secrets masked.
func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{Server: %s:%s, DB: %s@%s:%s/%s, Redis: %s:%s, S3Bucket: %s, JWTSecret: [REDACTED], DBPassword: [REDACTED]}",
		c.ServerHost, c.ServerPort, c.DBUser, c.DBHost, c.DBPort, c.DBName, c.RedisHost, c.RedisPort, c.S3Bucket,
	)
}

// LoadConfig builds a Config from a .env file (when present), the
// process environment and the docker secrets directory, then validates
// it against the requirements of the current environment.
func LoadConfig() (*Config, error) {
	// A missing .env is fine; production injects real env vars.
	if err := godotenv.Load(); err == nil {
		logrus.Debug("loaded configuration from .env")
	}

	cfg := &Config{
		ServerHost:    getEnv("SERVER_HOST", "0.0.0.0"),
		ServerPort:    getEnv("SERVER_PORT", "8080"),
		DBHost:        getEnv("DB_HOST", "localhost"),
		DBPort:        getEnv("DB_PORT", "5432"),
		DBUser:        getEnvOrSecret("DB_USER", "db_user", "postgres"),
		DBPassword:    getEnvOrSecret("DB_PASSWORD", "db_password", ""),
		DBName:        getEnv("DB_NAME", "flavourly"),
		DBSSLMode:     getEnv("DB_SSL_MODE", "disable"),
		RedisHost:     getEnv("REDIS_HOST", ""),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: getEnvOrSecret("REDIS_PASSWORD", "redis_password", ""),
		RedisURL:      getEnv("REDIS_URL", ""),
		JWTSecret:     getEnvOrSecret("JWT_SECRET", "jwt_secret", ""),
		S3Bucket:      getEnv("S3_BUCKET_NAME", ""),
		AWSRegion:     getEnv("AWS_REGION", "us-east-1"),
		FrontendURL:   getEnv("FRONTEND_URL", "http://localhost:5173"),
	}

	if db := getEnv("REDIS_DB", "0"); db != "" {
		n, err := strconv.Atoi(db)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
		}
		cfg.RedisDB = n
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// getEnvOrSecret prefers the environment variable, then a docker secret
// file, then the fallback.
func getEnvOrSecret(key, secret, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	if v := readSecretFile(secret); v != "" {
		return v
	}
	return fallback
}

func readSecretFile(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	if data, err := os.ReadFile(filepath.Join(secretsDir, name)); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}
