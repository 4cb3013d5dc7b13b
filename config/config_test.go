package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetEnvironment(t *testing.T) {
	t.Setenv("CI", "")

	t.Setenv("ENV", "production")
	assert.Equal(t, Production, GetEnvironment())

	t.Setenv("ENV", "test")
	assert.Equal(t, Test, GetEnvironment())

	t.Setenv("ENV", "")
	assert.Equal(t, Development, GetEnvironment())

	// CI detection wins over ENV.
	t.Setenv("CI", "true")
	t.Setenv("ENV", "production")
	assert.Equal(t, CI, GetEnvironment())
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("CI", "")
	t.Setenv("ENV", "development")
	t.Setenv("SERVER_PORT", "")
	t.Setenv("DB_HOST", "")
	t.Setenv("DB_NAME", "")
	t.Setenv("SECRETS_DIR", t.TempDir())

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "localhost", cfg.DBHost)
	assert.Equal(t, "flavourly", cfg.DBName)
	assert.Equal(t, "http://localhost:5173", cfg.FrontendURL)
}

func TestConfigStringMasksSecrets(t *testing.T) {
	cfg := &Config{
		ServerPort: "8080",
		JWTSecret:  "super-secret-value",
		DBPassword: "hunter2",
	}
	s := cfg.String()
	assert.NotContains(t, s, "super-secret-value")
	assert.NotContains(t, s, "hunter2")
	assert.Contains(t, s, "[REDACTED]")
}

func TestValidateConfigProduction(t *testing.T) {
	t.Setenv("CI", "")
	t.Setenv("ENV", "production")

	cfg := &Config{
		ServerPort: "8080",
		DBHost:     "db",
		DBPort:     "5432",
		DBName:     "flavourly",
		DBUser:     "app",
		DBPassword: "pw",
		JWTSecret:  "short",
	}

	err := ValidateConfig(cfg)
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "JWT_SECRET"))

	cfg.JWTSecret = strings.Repeat("x", 32)
	assert.NoError(t, ValidateConfig(cfg))

	cfg.DBPassword = ""
	err = ValidateConfig(cfg)
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "DB_PASSWORD"))
}

func TestValidateConfigDevelopmentIsPermissive(t *testing.T) {
	t.Setenv("CI", "")
	t.Setenv("ENV", "development")

	cfg := &Config{
		ServerPort: "8080",
		DBHost:     "localhost",
		DBPort:     "5432",
		DBName:     "flavourly",
	}
	assert.NoError(t, ValidateConfig(cfg))
}
