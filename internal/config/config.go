package config

import (
	"os"
	"strconv"

	"todo_webapp/internal/logger"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

type Config struct {
	AppPort     string `toml:"app_port"`
	DatabaseURL string `toml:"database_url"`

	// Redis backs the rate limiter when set; otherwise limits are kept in process.
	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`

	// 0 disables rate limiting on the task routes
	APIRateLimit         int `toml:"api_rate_limit"`
	APIRateWindowSeconds int `toml:"api_rate_window_seconds"`

	AllowedOrigin string `toml:"allowed_origin"`
	WebDir        string `toml:"web_dir"`

	LogLevel string `toml:"log_level"`
	LogJSON  bool   `toml:"log_json"`
}

func defaults() *Config {
	return &Config{
		AppPort:              "3001",
		DatabaseURL:          "sqlite://./database.db",
		APIRateWindowSeconds: 60,
		LogLevel:             "info",
	}
}

// Load reads .env (if any), then the TOML file named by CONFIG_FILE (if any),
// then lets environment variables override both.
func Load() *Config {
	cfg, err := LoadFrom(os.Getenv("CONFIG_FILE"))
	if err != nil {
		logger.Fatal("failed to load config", "error", err)
	}
	return cfg
}

// LoadFrom is Load with an explicit config file path; empty means none.
func LoadFrom(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := defaults()
	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, err
		}
	}

	if v := os.Getenv("APP_PORT"); v != "" {
		cfg.AppPort = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.DatabaseURL = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.RedisAddr = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		cfg.RedisPassword = v
	}
	if v := os.Getenv("REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.RedisDB = n
		}
	}
	if v := os.Getenv("API_RATE_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.APIRateLimit = n
		}
	}
	if v := os.Getenv("API_RATE_WINDOW_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.APIRateWindowSeconds = n
		}
	}
	if v := os.Getenv("ALLOWED_ORIGIN"); v != "" {
		cfg.AllowedOrigin = v
	}
	if v := os.Getenv("WEB_DIR"); v != "" {
		cfg.WebDir = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("LOG_JSON"); v != "" {
		cfg.LogJSON = v == "true" || v == "1"
	}

	return cfg, nil
}
