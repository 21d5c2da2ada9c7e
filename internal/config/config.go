package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultGeneratorURL     = "http://127.0.0.1:8000"
	defaultMigrationsPath   = "migrations"
	defaultGeneratedTTL     = 24 * time.Hour
	defaultGeneratorTimeout = 60 * time.Second
	defaultTeacherURL       = "/profesor/"
)

type Config struct {
	TelegramToken     string
	DBDSN             string
	Environment       string
	GeneratorURL      string
	GeneratorTimeout  time.Duration
	MigrationsPath    string
	GeneratedTTL      time.Duration
	LogFile           string
	TeacherProfileURL string
}

func Load() (*Config, error) {
	// Пытаемся загрузить .env файл (игнорируем ошибку, если файла нет)
	if err := godotenv.Load(".env"); err != nil {
		log.Println("⚠️  No .env file found, using environment variables")
	} else {
		log.Println("✅ Loaded configuration from .env file")
	}

	return FromEnv(os.Getenv)
}

// FromEnv собирает конфиг из произвольного источника переменных
func FromEnv(getenv func(string) string) (*Config, error) {
	cfg := &Config{
		TelegramToken:     strings.TrimSpace(getenv("TELEGRAM_TOKEN")),
		DBDSN:             strings.TrimSpace(getenv("DB_DSN")),
		Environment:       strings.TrimSpace(getenv("ENV")),
		GeneratorURL:      strings.TrimSpace(getenv("GENERATOR_API_URL")),
		MigrationsPath:    strings.TrimSpace(getenv("MIGRATIONS_PATH")),
		LogFile:           strings.TrimSpace(getenv("LOG_FILE")),
		TeacherProfileURL: strings.TrimSpace(getenv("TEACHER_PROFILE_URL")),
		GeneratedTTL:      defaultGeneratedTTL,
		GeneratorTimeout:  defaultGeneratorTimeout,
	}

	// Устанавливаем дефолтные значения
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}
	if cfg.GeneratorURL == "" {
		cfg.GeneratorURL = defaultGeneratorURL
	}
	if cfg.MigrationsPath == "" {
		cfg.MigrationsPath = defaultMigrationsPath
	}
	if cfg.TeacherProfileURL == "" {
		cfg.TeacherProfileURL = defaultTeacherURL
	}

	var err error
	if cfg.GeneratedTTL, err = parseDuration(getenv("GENERATED_TTL"), defaultGeneratedTTL); err != nil {
		return nil, fmt.Errorf("GENERATED_TTL: %w", err)
	}
	if cfg.GeneratorTimeout, err = parseDuration(getenv("GENERATOR_TIMEOUT"), defaultGeneratorTimeout); err != nil {
		return nil, fmt.Errorf("GENERATOR_TIMEOUT: %w", err)
	}

	// Проверяем обязательные поля
	if cfg.TelegramToken == "" {
		return nil, fmt.Errorf("TELEGRAM_TOKEN is required but not set")
	}
	if cfg.DBDSN == "" {
		return nil, fmt.Errorf("DB_DSN is required but not set")
	}

	return cfg, nil
}

func parseDuration(value string, fallback time.Duration) (time.Duration, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return 0, fmt.Errorf("must be positive, got %s", value)
	}
	return d, nil
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
