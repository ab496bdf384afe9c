package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Token store backends.
const (
	StoreFile   = "file"
	StoreRedis  = "redis"
	StoreMemory = "memory"
)

// Runtime environments selecting the log format.
const (
	EnvDev  = "dev"
	EnvProd = "prod"
)

// Config holds runtime configuration sourced from env vars.
type Config struct {
	APIURL      string
	HTTPTimeout time.Duration

	TokenStore    string
	TokenFile     string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisPrefix   string
	TokenTTL      time.Duration

	Env      string
	LogLevel slog.Level
}

// Load reads configuration from the environment and performs minimal validation.
func Load() (Config, error) {
	cfg := Config{
		APIURL:        strings.TrimRight(fallback(os.Getenv("API_URL"), "http://localhost:5000/api"), "/"),
		TokenStore:    strings.ToLower(fallback(os.Getenv("TOKEN_STORE"), StoreFile)),
		TokenFile:     fallback(os.Getenv("TOKEN_FILE"), defaultTokenFile()),
		RedisAddr:     fallback(os.Getenv("REDIS_ADDR"), "localhost:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisPrefix:   fallback(os.Getenv("REDIS_PREFIX"), "hoteladmin"),
		Env:           strings.ToLower(fallback(os.Getenv("APP_ENV"), EnvProd)),
	}

	seconds, err := strconv.Atoi(fallback(os.Getenv("HTTP_TIMEOUT_SECONDS"), "30"))
	if err != nil || seconds <= 0 {
		return Config{}, fmt.Errorf("HTTP_TIMEOUT_SECONDS must be a positive integer, got %q", os.Getenv("HTTP_TIMEOUT_SECONDS"))
	}
	cfg.HTTPTimeout = time.Duration(seconds) * time.Second

	minutes, err := strconv.Atoi(fallback(os.Getenv("TOKEN_TTL_MINUTES"), "0"))
	if err != nil || minutes < 0 {
		return Config{}, fmt.Errorf("TOKEN_TTL_MINUTES must be a non-negative integer, got %q", os.Getenv("TOKEN_TTL_MINUTES"))
	}
	cfg.TokenTTL = time.Duration(minutes) * time.Minute

	db, err := strconv.Atoi(fallback(os.Getenv("REDIS_DB"), "0"))
	if err != nil || db < 0 {
		return Config{}, fmt.Errorf("REDIS_DB must be a non-negative integer, got %q", os.Getenv("REDIS_DB"))
	}
	cfg.RedisDB = db

	cfg.LogLevel = slog.LevelWarn
	if cfg.Env == EnvDev {
		cfg.LogLevel = slog.LevelDebug
	}
	if lvl := strings.TrimSpace(os.Getenv("LOG_LEVEL")); lvl != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(lvl)); err != nil {
			return Config{}, fmt.Errorf("LOG_LEVEL: %w", err)
		}
	}

	switch cfg.TokenStore {
	case StoreFile:
		if cfg.TokenFile == "" {
			return Config{}, fmt.Errorf("TOKEN_FILE is required when TOKEN_STORE=%s", StoreFile)
		}
	case StoreRedis, StoreMemory:
	default:
		return Config{}, fmt.Errorf("TOKEN_STORE must be one of file, redis, memory; got %q", cfg.TokenStore)
	}
	switch cfg.Env {
	case EnvDev, EnvProd:
	default:
		return Config{}, fmt.Errorf("APP_ENV must be dev or prod; got %q", cfg.Env)
	}

	return cfg, nil
}

func defaultTokenFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "hoteladmin", "session.json")
}

func fallback(value, def string) string {
	if strings.TrimSpace(value) == "" {
		return def
	}
	return strings.TrimSpace(value)
}
