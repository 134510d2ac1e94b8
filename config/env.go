package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// LoadEnv reads .env into the process environment. A missing file is fine,
// variables may come from the container instead.
func LoadEnv(files ...string) {
	err := godotenv.Load(files...)
	applyLogLevel()
	if err != nil {
		GetLogrusInstance().Debugf("no .env file loaded: %v", err)
	}
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		GetLogrusInstance().Warnf("invalid %s=%q, using %d", key, v, fallback)
		return fallback
	}
	return n
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		GetLogrusInstance().Warnf("invalid %s=%q, using %s", key, v, fallback)
		return fallback
	}
	return d
}

func GetUseCaseTimeout() time.Duration {
	return getEnvDuration("USECASE_TIMEOUT", 10*time.Second)
}

func GetJWTKey() []byte {
	return []byte(getEnv("BYTE_KEY", "dev-secret-change-me"))
}

func GetJWTTTL() time.Duration {
	return getEnvDuration("JWT_TTL", 24*time.Hour)
}

func GetCorsOrigins() string {
	return getEnv("CORS_ORIGINS", "*")
}

func GetRedisAddr() string {
	return getEnv("REDIS_ADDR", "")
}

func GetLookupCacheTTL() time.Duration {
	return getEnvDuration("LOOKUP_CACHE_TTL", 10*time.Minute)
}
