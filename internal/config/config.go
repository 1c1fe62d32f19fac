package config

import (
	"log"
	"os"
	"strconv"
	"time"
)

type Config struct {
	HTTPPort        string
	JWTSecret       string
	CORSOrigins     string
	LockWaitTimeout time.Duration // max wait for a per-model append slot
}

func Load() *Config {
	cfg := &Config{
		HTTPPort:        getEnv("PORT", "3000"),
		JWTSecret:       getEnv("JWT_SECRET", ""),
		CORSOrigins:     getEnv("CORS_ALLOWED_ORIGINS", ""),
		LockWaitTimeout: getEnvDuration("LOCK_WAIT_TIMEOUT_MS", 5000),
	}

	if cfg.JWTSecret == "" {
		log.Println("[WARN] JWT_SECRET not set, falling back to the built-in development secret")
	}

	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvDuration(key string, defMillis int) time.Duration {
	if v := os.Getenv(key); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms > 0 {
			return time.Duration(ms) * time.Millisecond
		}
		log.Printf("[WARN] %s is not a positive integer, using default", key)
	}
	return time.Duration(defMillis) * time.Millisecond
}
