// Package config handles application configuration loading and management.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
type Config struct {
	Server ServerConfig
	DocDB  DocDBConfig
	Log    LogConfig
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Host             string
	Port             int
	GinMode          string
	CORSAllowOrigins []string
}

// Address returns the server address in host:port format.
func (c ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// DocDBConfig holds document database configuration.
type DocDBConfig struct {
	Type    string
	MongoDB MongoDBConfig
	CouchDB CouchDBConfig
	Redis   RedisConfig
	Memory  MemoryConfig
}

// MongoDBConfig holds MongoDB (and Cosmos DB) configuration.
type MongoDBConfig struct {
	URI        string
	Database   string
	Collection string
}

// CouchDBConfig holds CouchDB configuration.
type CouchDBConfig struct {
	URL      string
	Database string
	Username string
	Password string
	AllView  string
	Timeout  time.Duration
}

// RedisConfig holds Redis configuration.
type RedisConfig struct {
	Host      string
	Port      string
	Password  string
	DB        int
	KeyPrefix string
}

// MemoryConfig holds in-memory database configuration.
type MemoryConfig struct {
	SeedFile string
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string
	Format string
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Host:             getEnv("SERVER_HOST", "0.0.0.0"),
			Port:             getEnvAsInt("SERVER_PORT", 8080),
			GinMode:          getEnv("GIN_MODE", "debug"),
			CORSAllowOrigins: getEnvAsList("CORS_ALLOW_ORIGINS", []string{"http://localhost:3000"}),
		},
		DocDB: DocDBConfig{
			Type: getEnv("DOCDB_TYPE", "mongodb"),
			MongoDB: MongoDBConfig{
				URI:        getEnv("MONGODB_URI", "mongodb://localhost:27017"),
				Database:   getEnv("MONGODB_DATABASE", "unifiedui"),
				Collection: getEnv("MONGODB_COLLECTION", "documents"),
			},
			CouchDB: CouchDBConfig{
				URL:      getEnv("COUCHDB_URL", "http://localhost:5984"),
				Database: getEnv("COUCHDB_DATABASE", "documents"),
				Username: getEnv("COUCHDB_USERNAME", ""),
				Password: getEnv("COUCHDB_PASSWORD", ""),
				AllView:  getEnv("COUCHDB_ALL_VIEW", ""),
				Timeout:  time.Duration(getEnvAsInt("COUCHDB_TIMEOUT_SECONDS", 30)) * time.Second,
			},
			Redis: RedisConfig{
				Host:      getEnv("REDIS_HOST", "localhost"),
				Port:      getEnv("REDIS_PORT", "6379"),
				Password:  getEnv("REDIS_PASSWORD", ""),
				DB:        getEnvAsInt("REDIS_DB", 0),
				KeyPrefix: getEnv("REDIS_KEY_PREFIX", "documents"),
			},
			Memory: MemoryConfig{
				SeedFile: getEnv("MEMORY_SEED_FILE", ""),
			},
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}

	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return nil, fmt.Errorf("invalid SERVER_PORT: %d", cfg.Server.Port)
	}

	return cfg, nil
}

// getEnv gets an environment variable with a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt gets an environment variable as an integer with a default value.
func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsList gets a comma separated environment variable with a default value.
func getEnvAsList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	if len(items) == 0 {
		return defaultValue
	}
	return items
}
