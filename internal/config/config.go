package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds environment-based settings
type Config struct {
	ServerAddress  string
	DatabaseURL    string
	MigrationsPath string
	SecretKey      string

	AdminUsername string
	AdminPassword string

	UploadDir         string
	UploadPublicURL   string
	MaxUploadSize     int64
	AllowedExtensions map[string]bool

	WeatherCacheTTL time.Duration

	RedisAddress  string
	RedisUsername string
	RedisPassword string

	UseSpaces       bool
	SpacesEndpoint  string
	SpacesRegion    string
	SpacesBucket    string
	SpacesCDNURL    string
	SpacesAccessKey string
	SpacesSecretKey string
}

const defaultMaxUploadSize = 16 << 20 // 16 MiB

// Load reads configuration from environment variables
func Load() (*Config, error) {
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	secret := os.Getenv("SECRET_KEY")
	if secret == "" {
		return nil, fmt.Errorf("SECRET_KEY is required")
	}

	cfg := &Config{
		ServerAddress:  getEnv("SERVER_ADDRESS", ":8080"),
		DatabaseURL:    dbURL,
		MigrationsPath: getEnv("MIGRATIONS_PATH", "./migrations"),
		SecretKey:      secret,

		AdminUsername: getEnv("ADMIN_USERNAME", "admin"),
		AdminPassword: getEnv("ADMIN_PASSWORD", "admin123"),

		UploadDir:       getEnv("UPLOAD_DIR", "./uploads"),
		UploadPublicURL: getEnv("UPLOAD_PUBLIC_URL", "/uploads"),
		MaxUploadSize:   defaultMaxUploadSize,

		AllowedExtensions: parseExtensions(getEnv("ALLOWED_EXTENSIONS", "png,jpg,jpeg,gif,webp")),

		WeatherCacheTTL: 600 * time.Second,

		RedisAddress:  os.Getenv("REDIS_ADDRESS"),
		RedisUsername: os.Getenv("REDIS_USERNAME"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		UseSpaces:       os.Getenv("USE_SPACES") == "true",
		SpacesEndpoint:  os.Getenv("SPACES_ENDPOINT"),
		SpacesRegion:    os.Getenv("SPACES_REGION"),
		SpacesBucket:    os.Getenv("SPACES_BUCKET"),
		SpacesCDNURL:    os.Getenv("SPACES_CDN_URL"),
		SpacesAccessKey: os.Getenv("SPACES_ACCESS_KEY"),
		SpacesSecretKey: os.Getenv("SPACES_SECRET_KEY"),
	}

	if raw := os.Getenv("MAX_UPLOAD_SIZE"); raw != "" {
		size, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || size <= 0 {
			return nil, fmt.Errorf("MAX_UPLOAD_SIZE must be a positive integer")
		}
		cfg.MaxUploadSize = size
	}

	if raw := os.Getenv("WEATHER_CACHE_TTL"); raw != "" {
		seconds, err := strconv.Atoi(raw)
		if err != nil || seconds <= 0 {
			return nil, fmt.Errorf("WEATHER_CACHE_TTL must be a positive number of seconds")
		}
		cfg.WeatherCacheTTL = time.Duration(seconds) * time.Second
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseExtensions(raw string) map[string]bool {
	exts := make(map[string]bool)
	for _, ext := range strings.Split(raw, ",") {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext != "" {
			exts[ext] = true
		}
	}
	return exts
}
