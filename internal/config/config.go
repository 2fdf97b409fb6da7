package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	DB struct {
		Host     string
		Port     string
		User     string
		Password string
		Name     string
		SSLMode  string
		// Driver selects the database/sql driver behind GORM: "pgx" or "postgres" (lib/pq)
		Driver string
	}

	Server struct {
		Port    string
		GinMode string
	}

	Log struct {
		Level string
	}

	CORS struct {
		AllowOrigins string
		AllowMethods string
		AllowHeaders string
	}

	ObjectStore struct {
		Endpoint  string
		AccessKey string
		SecretKey string
		Bucket    string
		UseSSL    bool
		PublicURL string
		MaxSize   int64
	}
}

// Load loads configuration from environment variables
func Load() *Config {
	_ = godotenv.Load()

	config := &Config{}

	config.DB.Host = getEnv("DB_HOST", "localhost")
	config.DB.Port = getEnv("DB_PORT", "5432")
	config.DB.User = getEnv("DB_USER", "proagil")
	config.DB.Password = getEnv("DB_PASSWORD", "proagil_password")
	config.DB.Name = getEnv("DB_NAME", "proagil_db")
	config.DB.SSLMode = getEnv("DB_SSLMODE", "disable")
	config.DB.Driver = getEnv("DB_DRIVER", "pgx")

	config.Server.Port = getEnv("PORT", "8080")
	config.Server.GinMode = getEnv("GIN_MODE", "debug")

	config.Log.Level = getEnv("LOG_LEVEL", "info")

	config.CORS.AllowOrigins = getEnv("CORS_ALLOW_ORIGINS", "*")
	config.CORS.AllowMethods = getEnv("CORS_ALLOW_METHODS", "GET,POST,PUT,PATCH,DELETE,HEAD,OPTIONS")
	config.CORS.AllowHeaders = getEnv("CORS_ALLOW_HEADERS", "Origin,Content-Length,Content-Type,Authorization")

	config.ObjectStore.Endpoint = getEnv("MINIO_ENDPOINT", "")
	config.ObjectStore.AccessKey = getEnv("MINIO_ACCESS_KEY", "")
	config.ObjectStore.SecretKey = getEnv("MINIO_SECRET_KEY", "")
	config.ObjectStore.Bucket = getEnv("MINIO_BUCKET", "proagil-imagens")
	config.ObjectStore.UseSSL = getEnvAsBool("MINIO_USE_SSL", false)
	config.ObjectStore.PublicURL = getEnv("MINIO_PUBLIC_URL", "")
	config.ObjectStore.MaxSize = getEnvAsInt64("MAX_IMAGE_SIZE", 5242880)

	return config
}

// GetDatabaseURL returns the database connection URL
func (c *Config) GetDatabaseURL() string {
	return "postgres://" + c.DB.User + ":" + c.DB.Password + "@" + c.DB.Host + ":" + c.DB.Port + "/" + c.DB.Name + "?sslmode=" + c.DB.SSLMode
}

// ObjectStoreEnabled reports whether image uploads have somewhere to go
func (c *Config) ObjectStoreEnabled() bool {
	return c.ObjectStore.Endpoint != ""
}

// AllowOrigins splits the comma separated CORS origin list
func (c *Config) AllowOrigins() []string {
	return splitList(c.CORS.AllowOrigins)
}

// AllowMethods splits the comma separated CORS method list
func (c *Config) AllowMethods() []string {
	return splitList(c.CORS.AllowMethods)
}

// AllowHeaders splits the comma separated CORS header list
func (c *Config) AllowHeaders() []string {
	return splitList(c.CORS.AllowHeaders)
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt64 gets an environment variable as int64 or returns a default value
func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
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
