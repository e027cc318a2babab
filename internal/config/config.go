// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Storage  StorageConfig  `yaml:"storage"`
	Reminder ReminderConfig `yaml:"reminder"`
	Logging  LoggingConfig  `yaml:"logging"`
}

type StorageConfig struct {
	Path string `yaml:"path"` // путь к файлу SQLite
}

type ReminderConfig struct {
	Enabled  bool          `yaml:"enabled"`
	Interval time.Duration `yaml:"interval"`
}

type LoggingConfig struct {
	Development bool `yaml:"development"`
}

// Load читает config.yml, если файл есть; иначе возвращает значения по умолчанию.
// Переменные окружения (в том числе из .env) имеют приоритет над файлом.
func Load() (*Config, error) {
	// .env необязателен
	godotenv.Load()

	cfg := defaults()

	file, err := os.Open("config.yml")
	if err == nil {
		defer file.Close()

		decoder := yaml.NewDecoder(file)
		if err := decoder.Decode(cfg); err != nil {
			return nil, fmt.Errorf("ошибка парсинга config.yml: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("не могу открыть config.yml: %w", err)
	}

	if path := os.Getenv("TASKVAULT_DB_PATH"); path != "" {
		cfg.Storage.Path = path
	}
	if os.Getenv("TASKVAULT_DEV") != "" {
		cfg.Logging.Development = true
	}

	if cfg.Reminder.Interval <= 0 {
		cfg.Reminder.Interval = time.Minute
	}

	return cfg, nil
}

func defaults() *Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}

	return &Config{
		Storage: StorageConfig{
			Path: filepath.Join(home, ".taskvault", "taskvault.db"),
		},
		Reminder: ReminderConfig{
			Enabled:  true,
			Interval: time.Minute,
		},
		Logging: LoggingConfig{
			Development: false,
		},
	}
}
