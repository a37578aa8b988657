package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultAPIBaseURL      = "http://localhost:9090/api/product"
	DefaultHTTPAddr        = ":8080"
	DefaultItemsPerPage    = 10
	DefaultNotificationTTL = 3 * time.Second
)

// Config ilovaning konfiguratsiyasi
type Config struct {
	APIBaseURL      string
	APITimeout      time.Duration // 0 = timeout yo'q
	HTTPAddr        string
	TelegramToken   string
	ItemsPerPage    int
	NotificationTTL time.Duration
	LogLevel        string
	Demo            bool
}

// Load konfiguratsiyani yuklash
func Load() (*Config, error) {
	// .env faylini yuklash (mavjud bo'lsa)
	_ = godotenv.Load()

	config := &Config{
		APIBaseURL:      DefaultAPIBaseURL,
		HTTPAddr:        DefaultHTTPAddr,
		TelegramToken:   os.Getenv("TELEGRAM_BOT_TOKEN"),
		ItemsPerPage:    DefaultItemsPerPage,
		NotificationTTL: DefaultNotificationTTL,
		LogLevel:        "info",
	}

	if raw := os.Getenv("CATALOG_API_URL"); raw != "" {
		config.APIBaseURL = strings.TrimRight(raw, "/")
	}

	if raw := os.Getenv("HTTP_ADDR"); raw != "" {
		config.HTTPAddr = raw
	}

	if raw := os.Getenv("CATALOG_API_TIMEOUT"); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil || parsed < 0 {
			return nil, fmt.Errorf("CATALOG_API_TIMEOUT noto'g'ri formatda: %q", raw)
		}
		config.APITimeout = parsed
	}

	if raw := os.Getenv("ITEMS_PER_PAGE"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			return nil, fmt.Errorf("ITEMS_PER_PAGE musbat son bo'lishi kerak: %q", raw)
		}
		config.ItemsPerPage = parsed
	}

	if raw := os.Getenv("NOTIFICATION_TTL"); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil || parsed <= 0 {
			return nil, fmt.Errorf("NOTIFICATION_TTL noto'g'ri formatda: %q", raw)
		}
		config.NotificationTTL = parsed
	}

	if raw := os.Getenv("LOG_LEVEL"); raw != "" {
		level := strings.ToLower(raw)
		switch level {
		case "debug", "info", "warn", "error":
			config.LogLevel = level
		default:
			return nil, fmt.Errorf("LOG_LEVEL noma'lum: %q", raw)
		}
	}

	if raw := os.Getenv("CATALOG_DEMO"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("CATALOG_DEMO noto'g'ri formatda: %v", err)
		}
		config.Demo = parsed
	}

	// Validatsiya
	if !strings.HasPrefix(config.APIBaseURL, "http://") && !strings.HasPrefix(config.APIBaseURL, "https://") {
		return nil, fmt.Errorf("CATALOG_API_URL http(s) manzil bo'lishi kerak: %q", config.APIBaseURL)
	}

	return config, nil
}

// RequireTelegram bot uchun token borligini tekshirish
func (c *Config) RequireTelegram() error {
	if c.TelegramToken == "" {
		return fmt.Errorf("TELEGRAM_BOT_TOKEN environment variable bo'sh")
	}
	return nil
}
