package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Store backends selectable via configuration.
const (
	StoreBackendMemory = "memory"
	StoreBackendFile   = "file"
	StoreBackendRedis  = "redis"
	StoreBackendGorm   = "gorm"
)

// Config holds runtime configuration values for the API service.
type Config struct {
	AppName      string
	AppEnv       string
	AppPort      string
	StoreBackend string
	StoreDir     string
	RedisURL     string
	DatabaseURL  string
	JWTSecret    string
	TokenTTL     time.Duration
	SeedOnStart  bool
	AIProvider   string
	OpenAIAPIKey string
	OpenAIModel  string
}

// HTTPAddress returns the address the HTTP server should listen on.
func (c Config) HTTPAddress() string {
	if strings.HasPrefix(c.AppPort, ":") {
		return c.AppPort
	}

	return fmt.Sprintf(":%s", c.AppPort)
}

// Load reads configuration values from environment variables and optional .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("EDUCODE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "EduCode API")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8000")
	v.SetDefault("store.backend", StoreBackendFile)
	v.SetDefault("store.dir", "data")
	v.SetDefault("token.ttl", "24h")
	v.SetDefault("seed.on_start", true)
	v.SetDefault("ai.provider", "openai")
	v.SetDefault("openai.model", "gpt-4o-mini")

	ttlString := v.GetString("token.ttl")
	if ttlString == "" {
		ttlString = "24h"
	}

	ttl, err := time.ParseDuration(ttlString)
	if err != nil {
		return Config{}, fmt.Errorf("invalid token ttl: %w", err)
	}

	cfg := Config{
		AppName:      v.GetString("app.name"),
		AppEnv:       v.GetString("app.env"),
		AppPort:      v.GetString("app.port"),
		StoreBackend: strings.ToLower(v.GetString("store.backend")),
		StoreDir:     v.GetString("store.dir"),
		RedisURL:     v.GetString("redis.url"),
		DatabaseURL:  v.GetString("database.url"),
		JWTSecret:    v.GetString("jwt.secret"),
		TokenTTL:     ttl,
		SeedOnStart:  v.GetBool("seed.on_start"),
		AIProvider:   strings.ToLower(v.GetString("ai.provider")),
		OpenAIAPIKey: v.GetString("openai_api_key"),
		OpenAIModel:  v.GetString("openai.model"),
	}

	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("jwt secret must be provided")
	}

	switch cfg.StoreBackend {
	case StoreBackendMemory, StoreBackendFile, StoreBackendRedis, StoreBackendGorm:
	default:
		return Config{}, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}

	if cfg.StoreBackend == StoreBackendRedis && cfg.RedisURL == "" {
		return Config{}, fmt.Errorf("redis url must be provided for the redis store backend")
	}

	if cfg.StoreBackend == StoreBackendGorm && cfg.DatabaseURL == "" {
		return Config{}, fmt.Errorf("database url must be provided for the gorm store backend")
	}

	return cfg, nil
}
