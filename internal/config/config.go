// Package config loads application configuration from environment variables.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all runtime configuration values for the dashboard server.
type Config struct {
	Env          string        // application environment (e.g. "dev", "prod")
	Port         string        // HTTP port to listen on
	AWSRegion    string        // region for Secrets Manager and DynamoDB
	AuthDBSecret string        // secret name holding the shared auth-DB credentials
	TenantTable  string        // DynamoDB table holding registered app ids
	SessionTTL   time.Duration // absolute session lifetime
	BcryptCost   int           // bcrypt cost for password hashing
}

// Load reads configuration values from environment variables, applying
// defaults where a variable is unset.
func Load() Config {
	return Config{
		Env:          getenv("APP_ENV", "dev"),
		Port:         getenv("APP_PORT", "8000"),
		AWSRegion:    getenv("AWS_REGION", "ap-south-1"),
		AuthDBSecret: getenv("AUTH_DB_SECRET", "prod/login/database/auth"),
		TenantTable:  getenv("TENANT_TABLE", "ClientDatabaseConfig"),
		SessionTTL:   envDur("SESSION_TTL", 5*time.Minute),
		BcryptCost:   envInt("BCRYPT_COST", 10),
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if n, err := strconv.Atoi(v); err == nil {
		return n
	}
	return def
}

func envBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	switch v {
	case "1", "true", "TRUE", "True", "yes", "YES", "on", "ON":
		return true
	case "0", "false", "FALSE", "False", "no", "NO", "off", "OFF":
		return false
	}
	return def
}

func envDur(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	return def
}
