package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type AppConfig struct {
	Port    int    `yaml:"port"`
	GinMode string `yaml:"gin_mode"`
}

type BackendConfig struct {
	BaseURL string `yaml:"base_url"`
	Timeout string `yaml:"timeout"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type SessionConfig struct {
	TokenKey string `yaml:"token_key"`
}

type CurrencyConfig struct {
	Symbol string `yaml:"symbol"`
	Locale string `yaml:"locale"`
}

type ConfigFile struct {
	App      AppConfig      `yaml:"app"`
	Backend  BackendConfig  `yaml:"backend"`
	Redis    RedisConfig    `yaml:"redis"`
	Session  SessionConfig  `yaml:"session"`
	Currency CurrencyConfig `yaml:"currency"`
}

type Config struct {
	Port           string
	GinMode        string
	BackendBaseURL string
	BackendTimeout time.Duration
	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	TokenKey       string
	CurrencySymbol string
	CurrencyLocale string
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// Load reads config/config.yml (overridable via SHOPFRONT_CONFIG) and applies
// environment variable overrides on top.
func Load() (*Config, error) {
	return LoadFile(env("SHOPFRONT_CONFIG", "config/config.yml"))
}

func LoadFile(path string) (*Config, error) {
	configFile, err := loadConfigFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	timeoutStr := env("BACKEND_TIMEOUT", configFile.Backend.Timeout)
	if timeoutStr == "" {
		timeoutStr = "15s"
	}
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid backend timeout: %w", err)
	}

	redisDB := configFile.Redis.DB
	if v := os.Getenv("REDIS_DB"); v != "" {
		redisDB, err = strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
		}
	}

	port := configFile.App.Port
	if port == 0 {
		port = 8080
	}

	cfg := &Config{
		Port:           env("PORT", strconv.Itoa(port)),
		GinMode:        env("GIN_MODE", configFile.App.GinMode),
		BackendBaseURL: env("BACKEND_BASE_URL", configFile.Backend.BaseURL),
		BackendTimeout: timeout,
		RedisAddr:      env("REDIS_ADDR", configFile.Redis.Addr),
		RedisPassword:  env("REDIS_PASSWORD", configFile.Redis.Password),
		RedisDB:        redisDB,
		TokenKey:       env("SESSION_TOKEN_KEY", configFile.Session.TokenKey),
		CurrencySymbol: env("CURRENCY_SYMBOL", configFile.Currency.Symbol),
		CurrencyLocale: env("CURRENCY_LOCALE", configFile.Currency.Locale),
	}

	if cfg.BackendBaseURL == "" {
		return nil, fmt.Errorf("backend base URL is required")
	}
	if cfg.RedisAddr == "" {
		cfg.RedisAddr = "localhost:6379"
	}
	if cfg.TokenKey == "" {
		cfg.TokenKey = "shopfront:session:token"
	}
	if cfg.CurrencySymbol == "" {
		cfg.CurrencySymbol = "₹"
	}
	if cfg.CurrencyLocale == "" {
		cfg.CurrencyLocale = "en"
	}

	return cfg, nil
}

func loadConfigFile(path string) (*ConfigFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg ConfigFile
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &cfg, nil
}
