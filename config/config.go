package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	JWT        JWTConfig
	Pin        PinConfig
	Assignment AssignmentConfig
	Mailjet    MailjetConfig
	Cloudinary CloudinaryConfig
}

type ServerConfig struct {
	Port    string
	GinMode string
}

type DatabaseConfig struct {
	URL         string
	AutoMigrate bool
}

type JWTConfig struct {
	Secret      string
	ExpiryHours int
}

// PinConfig holds the server-side secret mixed into completion PINs.
type PinConfig struct {
	Secret string
}

// AssignmentConfig controls the auto-assignment scan.
type AssignmentConfig struct {
	ScanInterval time.Duration
	StaleAfter   time.Duration
}

type MailjetConfig struct {
	BaseURL     string
	APIKey      string
	APISecret   string
	SenderEmail string
	SenderName  string
}

type CloudinaryConfig struct {
	CloudName string
	APIKey    string
	APISecret string
}

var AppConfig *Config

func Load() {
	AppConfig = &Config{
		Server: ServerConfig{
			Port:    getEnv("PORT", "8080"),
			GinMode: getEnv("GIN_MODE", "debug"),
		},
		Database: DatabaseConfig{
			URL:         getEnv("DB_URL", ""),
			AutoMigrate: getEnvAsBool("AUTO_MIGRATE", true),
		},
		JWT: JWTConfig{
			Secret:      getEnv("JWT_SECRET", "your-super-secret-jwt-key-change-this-in-production"),
			ExpiryHours: getEnvAsInt("JWT_EXPIRY_HOURS", 24),
		},
		Pin: PinConfig{
			Secret: getEnv("PIN_SECRET", "localbookr-pin-secret"),
		},
		Assignment: AssignmentConfig{
			ScanInterval: getEnvAsDuration("ASSIGN_SCAN_INTERVAL", 30*time.Second),
			StaleAfter:   getEnvAsDuration("ASSIGN_STALE_AFTER", 2*time.Minute),
		},
		Mailjet: MailjetConfig{
			BaseURL:     getEnv("MAILJET_BASE_URL", "https://api.mailjet.com"),
			APIKey:      getEnv("MAILJET_API_KEY", ""),
			APISecret:   getEnv("MAILJET_API_SECRET", ""),
			SenderEmail: getEnv("MAILJET_SENDER_EMAIL", "noreply@localbookr.in"),
			SenderName:  getEnv("MAILJET_SENDER_NAME", "LocalBookr"),
		},
		Cloudinary: CloudinaryConfig{
			CloudName: getEnv("CLOUDINARY_CLOUD_NAME", ""),
			APIKey:    getEnv("CLOUDINARY_API_KEY", ""),
			APISecret: getEnv("CLOUDINARY_API_SECRET", ""),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
