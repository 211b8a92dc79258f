package main

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/beacon-signage/beacon/internal/config"
	"github.com/beacon-signage/beacon/internal/db"
	"github.com/beacon-signage/beacon/internal/http/api"
	authapi "github.com/beacon-signage/beacon/internal/http/api/admin/auth/endpoints"
	adminapi "github.com/beacon-signage/beacon/internal/http/api/admin/control/endpoints"
	publicapi "github.com/beacon-signage/beacon/internal/http/api/public/endpoints"
	"github.com/beacon-signage/beacon/internal/rss"
	"github.com/beacon-signage/beacon/internal/storage"
	"github.com/beacon-signage/beacon/internal/weather"
)

// RegisterRoutes sets up all application routes
func RegisterRoutes(r *gin.Engine, cfg *config.Config, store db.Store, storageSystem storage.Storage, weatherClient *weather.Client, rssFetcher *rss.Fetcher) {
	// CORS
	r.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool { return true },
		AllowMethods: []string{
			"GET",
			"POST",
			"PUT",
			"PATCH",
			"DELETE",
			"OPTIONS",
			"HEAD",
		},
		AllowHeaders: []string{
			"Origin",
			"Content-Type",
			"Authorization",
			"Accept",
		},
		ExposeHeaders: []string{
			"Content-Length",
		},
		AllowCredentials: true,
	}))

	// public surface: login/logout, player read path, proxy integrations
	api.MountGroup(r, api.GroupConfig{
		Prefix: "/api",
	},
		authapi.AuthPublicModule(cfg.SecretKey, store),
		publicapi.PlayerModule(store),
		publicapi.IntegrationsModule(weatherClient, rssFetcher),
	)

	// management surface: requires an active session
	api.MountGroup(r, api.GroupConfig{
		Prefix:    "/api",
		Auth:      true,
		SecretKey: cfg.SecretKey,
		Store:     store,
	},
		adminapi.DisplayModule(store),
		adminapi.UploadModule(storageSystem, cfg.AllowedExtensions, cfg.MaxUploadSize),
		authapi.AuthSessionModule(store),
	)

	// locally stored uploads are served straight from disk
	if !cfg.UseSpaces {
		r.Static("/uploads", cfg.UploadDir)
	}
}
