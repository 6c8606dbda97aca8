package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"anoa.com/kolabboard/pkg/database"
	"anoa.com/kolabboard/pkg/logger"
	"anoa.com/kolabboard/pkg/storage"
	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv         string
	Port           string
	AllowedOrigins []string

	Database database.Config
	Log      logger.Conf
	Storage  storage.Config

	JWTSecret string
	JWTTTL    time.Duration

	RedisURL string

	MeiliSearchHost string
	MeiliMasterKey  string

	MetricsEnabled bool
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

func Load() (*Config, error) {
	// Don't fail if .env doesn't exist (might be prod env vars)
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:         getEnv("APP_ENV", "development"),
		Port:           getEnv("PORT", "8080"),
		AllowedOrigins: splitList(getEnv("ALLOWED_ORIGINS", "http://localhost:3000")),

		Database: database.Config{
			URL:      os.Getenv("DATABASE_URL"),
			Host:     os.Getenv("DB_HOST"),
			User:     os.Getenv("DB_USER"),
			Password: os.Getenv("DB_PASS"),
			Name:     os.Getenv("DB_NAME"),
			Port:     os.Getenv("DB_PORT"),
		},
		Log: logger.Conf{
			Level:  getEnv("LOG_LEVEL", "INFO"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		Storage: storage.Config{
			Provider:         getEnv("STORAGE_PROVIDER", "none"),
			CloudinaryURL:    os.Getenv("CLOUDINARY_URL"),
			CloudinaryFolder: getEnv("CLOUDINARY_UPLOAD_FOLDER", "kolabboard"),
			MinioEndpoint:    getEnv("MINIO_ENDPOINT", "localhost:9000"),
			MinioAccessKey:   os.Getenv("MINIO_ACCESS_KEY"),
			MinioSecretKey:   os.Getenv("MINIO_SECRET_KEY"),
			MinioBucket:      getEnv("MINIO_BUCKET", "kolabboard"),
			MinioPublicURL:   os.Getenv("MINIO_PUBLIC_URL"),
		},

		JWTSecret: os.Getenv("JWT_SECRET"),

		RedisURL: os.Getenv("REDIS_URL"),

		MeiliSearchHost: os.Getenv("MEILISEARCH_HOST"),
		MeiliMasterKey:  os.Getenv("MEILI_MASTER_KEY"),
	}

	var err error
	cfg.JWTTTL, err = time.ParseDuration(getEnv("JWT_TTL", "168h"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_TTL: %w", err)
	}
	cfg.Database.MaxOpenConns, err = strconv.Atoi(getEnv("DB_MAX_OPEN_CONNS", "20"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MAX_OPEN_CONNS: %w", err)
	}
	cfg.Database.MaxIdleConns, err = strconv.Atoi(getEnv("DB_MAX_IDLE_CONNS", "5"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MAX_IDLE_CONNS: %w", err)
	}
	cfg.Storage.MinioUseTLS, err = strconv.ParseBool(getEnv("MINIO_USE_TLS", "false"))
	if err != nil {
		return nil, fmt.Errorf("invalid MINIO_USE_TLS: %w", err)
	}
	cfg.MetricsEnabled, err = strconv.ParseBool(getEnv("METRICS_ENABLED", "true"))
	if err != nil {
		return nil, fmt.Errorf("invalid METRICS_ENABLED: %w", err)
	}

	if cfg.JWTSecret == "" {
		if !cfg.IsDevelopment() {
			return nil, fmt.Errorf("JWT_SECRET is required outside development")
		}
		cfg.JWTSecret = "change-me"
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
