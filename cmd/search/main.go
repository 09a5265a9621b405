package main

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/Onlynfk/podground-backend-sub001/internal/cache"
	"github.com/Onlynfk/podground-backend-sub001/internal/client"
	"github.com/Onlynfk/podground-backend-sub001/internal/config"
	"github.com/Onlynfk/podground-backend-sub001/internal/consumer"
	"github.com/Onlynfk/podground-backend-sub001/internal/domain"
	"github.com/Onlynfk/podground-backend-sub001/internal/handler"
	"github.com/Onlynfk/podground-backend-sub001/internal/profile"
	"github.com/Onlynfk/podground-backend-sub001/internal/repository"
	"github.com/Onlynfk/podground-backend-sub001/internal/service"
	"github.com/Onlynfk/podground-backend-sub001/pkg/database"
	"github.com/Onlynfk/podground-backend-sub001/pkg/jwt"
	pkglog "github.com/Onlynfk/podground-backend-sub001/pkg/log"
	"github.com/Onlynfk/podground-backend-sub001/pkg/middleware"
	"github.com/Onlynfk/podground-backend-sub001/pkg/storage"
)

// profileInvalidator drops cached profiles when the platform announces a
// profile change, so search reflects it ahead of the cache TTL.
type profileInvalidator struct {
	profiles *profile.Service
}

func (p *profileInvalidator) HandleProfileUpdated(_ context.Context, event *consumer.ProfileUpdatedEvent) error {
	p.profiles.InvalidateUser(event.UserID)
	return nil
}

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		l := pkglog.L()
		l.Fatal().Err(err).Msg("failed to load config")
	}

	// Initialize structured logger
	pkglog.Init(pkglog.Config{
		Level:       cfg.Log.Level,
		Pretty:      cfg.Log.Level == "debug",
		ServiceName: "search-service",
	})
	logger := pkglog.L()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Connect to the platform store
	db, err := database.New(&database.Config{
		Driver:          cfg.Database.Driver,
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		DBName:          cfg.Database.DBName,
		SSLMode:         cfg.Database.SSLMode,
		FilePath:        cfg.Database.FilePath,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	if err := database.AutoMigrate(db,
		&domain.PodcastModel{},
		&domain.EpisodeModel{},
		&domain.PostModel{},
		&domain.PostMediaModel{},
		&domain.PostCommentModel{},
		&domain.ConversationParticipantModel{},
		&domain.MessageModel{},
		&domain.EventModel{},
		&domain.ResourceModel{},
		&domain.UserProfileModel{},
		&domain.UserSignupModel{},
		&domain.PodcastClaimModel{},
		&domain.UserOnboardingModel{},
		&domain.UserPrivacySettingsModel{},
		&domain.PartnerDealModel{},
		&domain.ExpertModel{},
	); err != nil {
		logger.Fatal().Err(err).Msg("failed to migrate read models")
	}
	logger.Info().Str("driver", cfg.Database.Driver).Msg("database connected")

	// Repositories
	searchRepo := repository.NewGormSearchRepository(db)
	directoryRepo := repository.NewGormDirectoryRepository(db)

	// Object storage with a presign memo cache in front
	s3Store, err := storage.NewS3Storage(ctx, storage.S3Config{
		Endpoint:        cfg.Storage.Endpoint,
		Region:          cfg.Storage.Region,
		Bucket:          cfg.Storage.Bucket,
		AccessKeyID:     cfg.Storage.AccessKeyID,
		SecretAccessKey: cfg.Storage.SecretAccessKey,
		UsePathStyle:    cfg.Storage.UsePathStyle,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize object storage")
	}
	urlCache := storage.NewSignedURLCache(s3Store, cfg.Storage.URLCacheTTL, cfg.Storage.URLCacheMaxSize)

	// Profile directory
	profileCache := profile.NewCache(cfg.Profile.CacheTTL, cfg.Profile.CacheMaxSize)
	profileService := profile.NewService(directoryRepo, urlCache, profileCache, cfg.Storage.PublicURL, cfg.Storage.SignTTL)

	// Result cache
	var searchCache cache.SearchCache
	switch cfg.Cache.Backend {
	case "redis":
		searchCache, err = cache.NewRedisSearchCache(cfg.Redis, cfg.Cache.Prefix)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect to redis")
		}
		logger.Info().Str("addr", cfg.Redis.Address).Msg("redis result cache connected")
	default:
		searchCache = cache.NewMemorySearchCache()
	}
	defer searchCache.Close()

	// Podcast directory client
	directoryClient := client.NewListenNotesClient(cfg.ListenNotes)
	if !directoryClient.Enabled() {
		logger.Warn().Msg("listennotes api key not set, directory supplement disabled")
	}

	// Search orchestrator
	refresher := service.NewURLRefresher(urlCache, profileService, cfg.Storage.PublicURL, cfg.Storage.SignTTL)
	searchService := service.NewSearchService(
		searchRepo,
		directoryClient,
		profileService,
		searchCache,
		refresher,
		cfg.Search,
		cfg.Cache.TTL,
	)

	// Periodic cache maintenance
	sweeper := service.NewCacheSweeper(searchCache, profileCache, urlCache, cfg.Cache.SweepInterval)
	sweeper.Start(ctx)

	// Profile-updated events
	if cfg.Kafka.Enabled {
		profileConsumer, err := consumer.NewConfluentConsumer(
			cfg.Kafka.Brokers,
			cfg.Kafka.ProfileTopic,
			cfg.Kafka.GroupID,
			&profileInvalidator{profiles: profileService},
		)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to create profile-updated consumer")
		}
		if err := profileConsumer.Start(ctx); err != nil {
			logger.Fatal().Err(err).Msg("failed to start profile-updated consumer")
		}
		defer profileConsumer.Close()
	}

	// Auth
	verifier := jwt.NewVerifier(cfg.Auth.JWTSecret)
	authMiddleware := middleware.NewAuthMiddleware(verifier)

	// HTTP handler
	httpHandler := handler.NewHandler(searchService)

	// Setup Gin router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(pkglog.GinMiddleware(logger))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Register routes
	httpHandler.RegisterRoutes(r, authMiddleware)

	// Start server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info().Str("addr", addr).Msg("search-service starting")
	if err := r.Run(addr); err != nil {
		logger.Fatal().Err(err).Msg("failed to start server")
	}
}
