package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/sirupsen/logrus"
)

// Create a new instance of the logger
// Configure it to log at the desired level
// and format it as JSON for structured logging
var log = logrus.New()

func init() {
	log.SetFormatter(&logrus.JSONFormatter{})
	environment := GetEnvWithDefault("APP_ENV", "development")
	switch environment {
	case "development":
		log.SetLevel(logrus.DebugLevel)
	case "production":
		log.SetLevel(logrus.ErrorLevel)
	default:
		// Default to info level for other environments
		log.SetLevel(logrus.InfoLevel)
	}
}

// Config used for the application configuration, loading the input from environment variables
type Config struct {
	// Server Configuration
	Port int    `json:"port"`
	Host string `json:"host"`

	// Database configuration
	DBDriver   string `json:"db_driver"`
	DBHost     string `json:"db_host"`
	DBPort     string `json:"db_port"`
	DBUser     string `json:"db_user"`
	DBPassword string `json:"db_password"`
	DBName     string `json:"db_name"`
	DBSSLMode  string `json:"db_ssl_mode"`
	SQLitePath string `json:"sqlite_path"`

	// Connection pool configuration
	DBMaxOpenConns    int `json:"db_max_open_conns"`
	DBMaxIdleConns    int `json:"db_max_idle_conns"`
	DBConnMaxLifetime int `json:"db_conn_max_lifetime_minutes"`

	// Logging configuration
	LogLevel string `json:"log_level"`

	// Security Configuration (reserved; dish routes are public by default)
	AuthEnabled bool   `json:"auth_enabled"`
	JWTSecret   string `json:"jwt_secret"`
}

// String returns a string representation of Config with sensitive data masked
func (c *Config) String() string {
	return fmt.Sprintf("Config{Port: %d, Host: %s, DBDriver: %s, DBHost: %s, DBPort: %s, DBUser: %s, DBPassword: [REDACTED], DBName: %s, SQLitePath: %s, LogLevel: %s, AuthEnabled: %t, JWTSecret: [REDACTED]}",
		c.Port, c.Host, c.DBDriver, c.DBHost, c.DBPort, c.DBUser, c.DBName, c.SQLitePath, c.LogLevel, c.AuthEnabled)
}

// LoadConfig reads the application configuration from environment variables
// and returns a Config struct. The database driver defaults to sqlite so a
// dev instance runs with no external services.
func LoadConfig() (*Config, error) {
	log.Info("Loading configuration from environment variables")
	port, err := strconv.Atoi(GetEnvWithDefault("APP_PORT", "8080"))
	if err != nil {
		return nil, err
	}

	config := &Config{
		Port: port,
		Host: GetEnvWithDefault("APP_HOST", "localhost"),

		DBDriver:   GetEnvWithDefault("DB_DRIVER", "sqlite"),
		DBHost:     GetEnvWithDefault("DB_HOST", "localhost"),
		DBPort:     GetEnvWithDefault("DB_PORT", "5432"),
		DBUser:     GetEnvWithDefault("DB_USER", "postgres"),
		DBPassword: GetEnvWithDefault("DB_PASSWORD", "postgres"),
		DBName:     GetEnvWithDefault("DB_NAME", "what2eat"),
		DBSSLMode:  GetEnvWithDefault("DB_SSL_MODE", "disable"),
		SQLitePath: GetEnvWithDefault("SQLITE_PATH", "./data/what2eat.sqlite3"),

		DBMaxOpenConns:    GetEnvAsType("DB_MAX_OPEN_CONNS", 25),
		DBMaxIdleConns:    GetEnvAsType("DB_MAX_IDLE_CONNS", 5),
		DBConnMaxLifetime: GetEnvAsType("DB_CONN_MAX_LIFETIME_MINUTES", 5),

		LogLevel: GetEnvWithDefault("LOG_LEVEL", "info"),

		AuthEnabled: GetEnvAsType("AUTH_ENABLED", false),
		JWTSecret:   GetEnvWithDefault("JWT_SECRET", "secret"),
	}
	log.Infof("Configuration loaded: %s", config.String())
	return config, nil
}

// Helper to get environment with default values
func GetEnvWithDefault(key, defaultValue string) string {
	log.Tracef("Getting environment variable: %s", key)
	value := os.Getenv(key)
	if value == "" {
		log.Warnf("Environment variable %s not set, using default value: %s", key, defaultValue)
		return defaultValue
	}
	return value
}

// GetEnvAsType retrieves an environment variable and converts it to the specified type
// using generic type handling.
func GetEnvAsType[T any](key string, defaultValue T) T {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	var result T
	switch any(result).(type) {
	case int:
		intValue, err := strconv.Atoi(value)
		if err != nil {
			return defaultValue
		}
		return any(intValue).(T)
	case string:
		return any(value).(T)
	case bool:
		boolValue, err := strconv.ParseBool(value)
		if err != nil {
			return defaultValue
		}
		return any(boolValue).(T)
	default:
		return defaultValue // Fallback for unsupported types
	}
}
