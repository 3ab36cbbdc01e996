package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort       string
	JWTSecret        string
	JWTExpiry        time.Duration
	SimulatedLatency time.Duration
	LoginLatency     time.Duration
	SearchDebounce   time.Duration
	SeedDemoData     bool
	LogLevel         string
	GinMode          string

	// EnvFileLoaded reports whether a .env file was found and applied.
	EnvFileLoaded bool
}

// Load reads .env (if present) and the process environment. Values already set
// in the environment win over .env entries.
func Load(envFiles ...string) (*Config, error) {
	loaded := godotenv.Load(envFiles...) == nil

	cfg := &Config{
		ServerPort:    getEnv("SERVER_PORT", "8080"),
		JWTSecret:     getEnv("JWT_SECRET", "supersecretkey"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		GinMode:       getEnv("GIN_MODE", "release"),
		EnvFileLoaded: loaded,
	}

	hours, err := getInt("JWT_EXPIRY_HOURS", 24)
	if err != nil {
		return nil, err
	}
	cfg.JWTExpiry = time.Duration(hours) * time.Hour

	if cfg.SimulatedLatency, err = getDuration("SIMULATED_LATENCY", 300*time.Millisecond); err != nil {
		return nil, err
	}
	if cfg.LoginLatency, err = getDuration("LOGIN_LATENCY", 500*time.Millisecond); err != nil {
		return nil, err
	}
	if cfg.SearchDebounce, err = getDuration("SEARCH_DEBOUNCE", 300*time.Millisecond); err != nil {
		return nil, err
	}
	if cfg.SeedDemoData, err = getBool("SEED_DEMO_DATA", true); err != nil {
		return nil, err
	}

	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

func getInt(key string, defaultVal int) (int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return defaultVal, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return 0, fmt.Errorf("%s: want a positive integer, got %q", key, raw)
	}
	return v, nil
}

func getDuration(key string, defaultVal time.Duration) (time.Duration, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return defaultVal, nil
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	if v < 0 {
		return 0, fmt.Errorf("%s: must not be negative, got %s", key, raw)
	}
	return v, nil
}

func getBool(key string, defaultVal bool) (bool, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return defaultVal, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%s: %w", key, err)
	}
	return v, nil
}
