package config

import (
	"os"
	"strconv"
	"time"
)

type DatabaseConfig struct {
	Driver             string // mysql or postgres
	Host               string
	Port               string
	User               string
	Password           string
	Name               string
	SSLMode            string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeSec int
	AutoMigrate        bool
}

// MinIOConfig is optional. An empty Endpoint disables image presigning.
type MinIOConfig struct {
	Endpoint       string
	AccessKey      string
	SecretKey      string
	Bucket         string
	UseSSL         bool
	ImageURLExpiry time.Duration
}

type Config struct {
	Env      string
	Port     string
	Database DatabaseConfig
	MinIO    MinIOConfig
}

// Load reads configuration from the environment. A .env file is picked up by
// the godotenv autoload import in cmd/api; real env vars win.
func Load() Config {
	driver := getEnv("DB_DRIVER", "mysql")
	defaultPort := "3306"
	if driver == "postgres" {
		defaultPort = "5432"
	}

	return Config{
		Env:  getEnv("APP_ENV", "production"),
		Port: getEnv("PORT", "8080"),
		Database: DatabaseConfig{
			Driver:             driver,
			Host:               getEnv("DB_HOST", ""),
			Port:               getEnv("DB_PORT", defaultPort),
			User:               getEnv("DB_USER", ""),
			Password:           getEnv("DB_PASSWORD", ""),
			Name:               getEnv("DB_NAME", ""),
			SSLMode:            getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:       getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:       getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetimeSec: getEnvInt("DB_CONN_MAX_LIFETIME_SEC", 120),
			AutoMigrate:        getEnvBool("DB_AUTO_MIGRATE", false),
		},
		MinIO: MinIOConfig{
			Endpoint:       getEnv("MINIO_ENDPOINT", ""),
			AccessKey:      getEnv("MINIO_ACCESS_KEY", ""),
			SecretKey:      getEnv("MINIO_SECRET_KEY", ""),
			Bucket:         getEnv("MINIO_BUCKET", ""),
			UseSSL:         getEnvBool("MINIO_USE_SSL", false),
			ImageURLExpiry: time.Duration(getEnvInt("IMAGE_URL_EXPIRY_SEC", 3600)) * time.Second,
		},
	}
}

func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}
