package main

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/beacon-signage/beacon/internal/config"
	"github.com/beacon-signage/beacon/internal/db"
	"github.com/beacon-signage/beacon/internal/http/middleware"
	"github.com/beacon-signage/beacon/internal/redis"
	"github.com/beacon-signage/beacon/internal/rss"
	"github.com/beacon-signage/beacon/internal/weather"
)

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	// initialize PostgreSQL
	if err := db.Init(cfg.DatabaseURL); err != nil {
		log.Fatal().Err(err).Msg("db init failed")
	}

	// run pending migrations
	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("db migrate failed")
	}

	store := db.NewStore(db.DB)

	// first-boot seeding; both are no-ops once a row exists
	hashedAdminPassword, err := middleware.HashPassword(cfg.AdminPassword)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to hash admin password")
	}
	if err := db.SeedAdminIfEmpty(store, cfg.AdminUsername, hashedAdminPassword); err != nil {
		log.Fatal().Err(err).Msg("failed to seed admin user")
	}
	if err := db.SeedDefaultDisplayIfEmpty(store); err != nil {
		log.Fatal().Err(err).Msg("failed to seed default display")
	}

	// weather cache: in-process by default, shared redis tier when configured
	var weatherCache weather.Cache
	if cfg.RedisAddress != "" {
		client := redis.New(cfg.RedisAddress, cfg.RedisUsername, cfg.RedisPassword)
		weatherCache = weather.NewRedisCache(client, cfg.WeatherCacheTTL)
		log.Info().Str("address", cfg.RedisAddress).Msg("using redis weather cache")
	} else {
		weatherCache = weather.NewMemoryCache(cfg.WeatherCacheTTL)
	}
	weatherClient := weather.NewClient(weatherCache)
	rssFetcher := rss.NewFetcher()

	storageSystem := InitStorage(cfg)

	r := gin.Default()
	r.MaxMultipartMemory = cfg.MaxUploadSize
	RegisterRoutes(r, cfg, store, storageSystem, weatherClient, rssFetcher)

	log.Info().Str("address", cfg.ServerAddress).Msg("listening")
	if err := r.Run(cfg.ServerAddress); err != nil {
		log.Fatal().Err(err).Msg("server error")
	}
}
