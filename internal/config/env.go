package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Env returns the trimmed value of key, or def when unset or blank.
func Env(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func EnvInt(key string, def int64) int64 {
	parsed, err := strconv.ParseInt(Env(key, ""), 10, 64)
	if err != nil {
		return def
	}
	return parsed
}

func EnvFloat(key string, def float64) float64 {
	parsed, err := strconv.ParseFloat(Env(key, ""), 64)
	if err != nil {
		return def
	}
	return parsed
}

func EnvBool(key string, def bool) bool {
	switch strings.ToLower(Env(key, "")) {
	case "1", "true", "yes", "y", "on":
		return true
	case "0", "false", "no", "n", "off":
		return false
	default:
		return def
	}
}

// EnvDuration accepts Go duration strings ("5s") or a bare number of seconds.
func EnvDuration(key string, def time.Duration) time.Duration {
	value := Env(key, "")
	if value == "" {
		return def
	}
	if parsed, err := time.ParseDuration(value); err == nil {
		return parsed
	}
	if secs, err := strconv.ParseFloat(value, 64); err == nil && secs >= 0 {
		return time.Duration(secs * float64(time.Second))
	}
	return def
}

// IsDevelopment reports whether env names a non-production deployment.
func IsDevelopment(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "development", "local", "test":
		return true
	default:
		return false
	}
}
