package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config — конфигурация приложения из переменных окружения
type Config struct {
	TelegramToken     string
	SpreadsheetID     string
	GoogleCredentials string
	StorageURL        string
	StorageKey        string
	StorageBucket     string
	LogLevel          string
}

// LoadConfig читает .env (если есть) и переменные окружения
func LoadConfig() (*Config, error) {
	// .env нужен только для локального запуска
	_ = godotenv.Load()

	cfg := &Config{
		TelegramToken:     os.Getenv("TELEGRAM_TOKEN"),
		SpreadsheetID:     os.Getenv("SPREADSHEET_ID"),
		GoogleCredentials: os.Getenv("GOOGLE_CREDENTIALS"),
		StorageURL:        os.Getenv("STORAGE_URL"),
		StorageKey:        os.Getenv("STORAGE_KEY"),
		StorageBucket:     getEnv("STORAGE_BUCKET", "receipts"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
	}

	required := []struct {
		name  string
		value string
	}{
		{"TELEGRAM_TOKEN", cfg.TelegramToken},
		{"SPREADSHEET_ID", cfg.SpreadsheetID},
		{"GOOGLE_CREDENTIALS", cfg.GoogleCredentials},
		{"STORAGE_URL", cfg.StorageURL},
		{"STORAGE_KEY", cfg.StorageKey},
	}
	var missing []string
	for _, v := range required {
		if v.value == "" {
			missing = append(missing, v.name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	return cfg, nil
}

func getEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
