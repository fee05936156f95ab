package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	AppEnv   string
	LogLevel string

	APIBaseURL string
	APITimeout time.Duration

	DataDir        string
	StorageBackend string
	SyncPolicy     string
}

func Load() Config {
	return Config{
		AppEnv:         getEnv("APP_ENV", "dev"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		APIBaseURL:     getEnv("API_BASE_URL", "http://localhost:8080/api"),
		APITimeout:     time.Duration(getEnvInt("API_TIMEOUT_MS", 30000)) * time.Millisecond,
		DataDir:        getEnv("DATA_DIR", ""),
		StorageBackend: getEnv("SESSION_STORAGE", "sqlite"),
		SyncPolicy:     getEnv("CART_SYNC_POLICY", "strict"),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)

	if v == "" {
		return def
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}

	return n
}
