package common

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	Server  ServerConfig
	Upload  UploadConfig
	Session SessionConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Addr            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// UploadConfig bounds what the upload form accepts
type UploadConfig struct {
	MaxUploadBytes int64
	ParseTimeout   time.Duration
}

// SessionConfig controls the in-memory plan store
type SessionConfig struct {
	TTL             time.Duration
	JanitorInterval time.Duration
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:            getEnv("HTTP_ADDR", ":8080"),
			ReadTimeout:     getEnvAsDuration("HTTP_READ_TIMEOUT", 30*time.Second),
			WriteTimeout:    getEnvAsDuration("HTTP_WRITE_TIMEOUT", 60*time.Second),
			ShutdownTimeout: getEnvAsDuration("HTTP_SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Upload: UploadConfig{
			MaxUploadBytes: int64(getEnvAsInt("MAX_UPLOAD_MB", 32)) << 20,
			ParseTimeout:   getEnvAsDuration("PARSE_TIMEOUT", 30*time.Second),
		},
		Session: SessionConfig{
			TTL:             getEnvAsDuration("SESSION_TTL", 30*time.Minute),
			JanitorInterval: getEnvAsDuration("SESSION_JANITOR_INTERVAL", time.Minute),
		},
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// Validate validates the loaded configuration
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return NewAppError("CONFIG_ERROR", "HTTP_ADDR is required", ErrInvalidInput)
	}
	if c.Upload.MaxUploadBytes <= 0 {
		return NewAppError("CONFIG_ERROR", "MAX_UPLOAD_MB must be positive", ErrInvalidInput)
	}
	if c.Session.TTL <= 0 {
		return NewAppError("CONFIG_ERROR", "SESSION_TTL must be positive", ErrInvalidInput)
	}
	return nil
}
