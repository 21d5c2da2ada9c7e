package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envOf(values map[string]string) func(string) string {
	return func(key string) string {
		return values[key]
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	cfg, err := FromEnv(envOf(map[string]string{
		"TELEGRAM_TOKEN": "token",
		"DB_DSN":         "postgres://localhost/horario",
	}))
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, defaultGeneratorURL, cfg.GeneratorURL)
	assert.Equal(t, "migrations", cfg.MigrationsPath)
	assert.Equal(t, 24*time.Hour, cfg.GeneratedTTL)
	assert.Equal(t, "/profesor/", cfg.TeacherProfileURL)
	assert.False(t, cfg.IsProduction())
}

func TestFromEnv_Overrides(t *testing.T) {
	cfg, err := FromEnv(envOf(map[string]string{
		"TELEGRAM_TOKEN":    "token",
		"DB_DSN":            "dsn",
		"ENV":               "production",
		"GENERATOR_API_URL": "https://api.example",
		"GENERATED_TTL":     "6h",
		"GENERATOR_TIMEOUT": "15s",
		"LOG_FILE":          "/var/log/horario.log",
	}))
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "https://api.example", cfg.GeneratorURL)
	assert.Equal(t, 6*time.Hour, cfg.GeneratedTTL)
	assert.Equal(t, 15*time.Second, cfg.GeneratorTimeout)
	assert.Equal(t, "/var/log/horario.log", cfg.LogFile)
}

func TestFromEnv_Required(t *testing.T) {
	_, err := FromEnv(envOf(map[string]string{"DB_DSN": "dsn"}))
	assert.ErrorContains(t, err, "TELEGRAM_TOKEN")

	_, err = FromEnv(envOf(map[string]string{"TELEGRAM_TOKEN": "token"}))
	assert.ErrorContains(t, err, "DB_DSN")
}

func TestFromEnv_InvalidDuration(t *testing.T) {
	_, err := FromEnv(envOf(map[string]string{
		"TELEGRAM_TOKEN": "token",
		"DB_DSN":         "dsn",
		"GENERATED_TTL":  "-1h",
	}))
	assert.ErrorContains(t, err, "GENERATED_TTL")
}
