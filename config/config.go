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
	defaultPort            = 8080
	defaultSeedPath        = "data/dublinbike.json"
	defaultRefreshInterval = 15 * time.Second
	defaultCacheTTL        = 5 * time.Minute
	defaultPageSize        = 10
)

// Config holds environment-driven settings for the stations API.
type Config struct {
	Port            int
	SeedPath        string
	DatabaseURL     string // optional; enables the /api/v2 document-store routes
	RefreshInterval time.Duration
	CacheTTL        time.Duration
	DefaultPageSize int
	BearerToken     string
}

// Load reads configuration from environment variables (optionally .env).
func Load() (Config, error) {
	_ = godotenv.Load() // ignore missing file

	cfg := Config{
		Port:            defaultPort,
		SeedPath:        defaultSeedPath,
		RefreshInterval: defaultRefreshInterval,
		CacheTTL:        defaultCacheTTL,
		DefaultPageSize: defaultPageSize,
	}

	if portStr := os.Getenv("PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil || port <= 0 {
			return cfg, fmt.Errorf("invalid PORT: %s", portStr)
		}
		cfg.Port = port
	}

	if path := os.Getenv("SEED_PATH"); path != "" {
		cfg.SeedPath = path
	}

	cfg.DatabaseURL = strings.TrimSpace(os.Getenv("DATABASE_URL"))

	if v := os.Getenv("REFRESH_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return cfg, fmt.Errorf("invalid REFRESH_INTERVAL: %s", v)
		}
		cfg.RefreshInterval = d
	}

	if v := os.Getenv("CACHE_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return cfg, fmt.Errorf("invalid CACHE_TTL: %s", v)
		}
		cfg.CacheTTL = d
	}

	if v := os.Getenv("API_DEFAULT_PAGE_SIZE"); v != "" {
		size, err := strconv.Atoi(v)
		if err != nil || size <= 0 {
			return cfg, fmt.Errorf("invalid API_DEFAULT_PAGE_SIZE: %s", v)
		}
		cfg.DefaultPageSize = size
	}

	cfg.BearerToken = os.Getenv("API_BEARER_TOKEN")

	return cfg, nil
}

// ListenAddr returns the host:port string for the HTTP server.
func (c Config) ListenAddr() string {
	return fmt.Sprintf(":%d", c.Port)
}
