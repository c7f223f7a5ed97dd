package config

import (
	"fmt"
	"os"
	"strconv"
)

// Validation and pagination limits for the grievance API.
const (
	MaxTitleLength    = 200
	MinPasswordLength = 8

	DefaultPageSize = 20
	MaxPageSize     = 100

	// EventsChannel is the Redis Pub/Sub channel for grievance lifecycle events.
	EventsChannel = "grievances:events"
)

// Config holds everything read from the environment at startup.
type Config struct {
	HTTPAddr      string
	DatabaseDSN   string
	RedisAddr     string
	RedisPassword string
	JWTSecret     string

	// Optional: коли порожні, telegram-нотифікації вимкнені.
	TelegramBotToken  string
	TelegramOpsChatID int64
}

// Load збирає конфігурацію зі змінних оточення. Обов'язковим є лише
// JWT_SECRET; для решти передбачені локальні значення за замовчуванням.
func Load() (*Config, error) {
	cfg := &Config{
		HTTPAddr:      getenv("HTTP_ADDR", ":8080"),
		RedisAddr:     getenv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		JWTSecret:     os.Getenv("JWT_SECRET"),

		TelegramBotToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
	}

	cfg.DatabaseDSN = fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		getenv("DB_HOST", "localhost"),
		getenv("DB_USER", "user"),
		getenv("DB_PASSWORD", "password"),
		getenv("DB_NAME", "samadhandb"),
		getenv("DB_PORT", "5432"),
	)

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is not set")
	}

	if raw := os.Getenv("TELEGRAM_OPS_CHAT_ID"); raw != "" {
		chatID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid TELEGRAM_OPS_CHAT_ID: %w", err)
		}
		cfg.TelegramOpsChatID = chatID
	}

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
