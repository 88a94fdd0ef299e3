package container

import (
	"context"
	"fmt"
	"time"

	"borntoday-backend/internal/config"
	infraCache "borntoday-backend/internal/infrastructure/cache"
	"borntoday-backend/internal/infrastructure/database"
	"borntoday-backend/internal/infrastructure/storage"
	"borntoday-backend/pkg/cache"
	"borntoday-backend/pkg/jwt"
	"borntoday-backend/pkg/logger"

	"borntoday-backend/internal/domains/admin"
	adminHandler "borntoday-backend/internal/domains/admin/handler"
	adminService "borntoday-backend/internal/domains/admin/service"
	"borntoday-backend/internal/domains/category"
	categoryHandler "borntoday-backend/internal/domains/category/handler"
	categoryRepo "borntoday-backend/internal/domains/category/repository"
	categoryService "borntoday-backend/internal/domains/category/service"
	"borntoday-backend/internal/domains/country"
	countryHandler "borntoday-backend/internal/domains/country/handler"
	countryRepo "borntoday-backend/internal/domains/country/repository"
	countryService "borntoday-backend/internal/domains/country/service"
	"borntoday-backend/internal/domains/feedback"
	feedbackHandler "borntoday-backend/internal/domains/feedback/handler"
	feedbackRepo "borntoday-backend/internal/domains/feedback/repository"
	feedbackService "borntoday-backend/internal/domains/feedback/service"
	"borntoday-backend/internal/domains/page/cachekey"
	pageHandler "borntoday-backend/internal/domains/page/handler"
	pageService "borntoday-backend/internal/domains/page/service"
	"borntoday-backend/internal/domains/sitemap"
	sitemapHandler "borntoday-backend/internal/domains/sitemap/handler"
	starHandler "borntoday-backend/internal/domains/star/handler"
	starJob "borntoday-backend/internal/domains/star/job"
	starRepo "borntoday-backend/internal/domains/star/repository"
	starService "borntoday-backend/internal/domains/star/service"

	"github.com/hibiken/asynq"
)

// Container is the root of the dependency graph shared by the API, the
// worker and the import CLI.
type Container struct {
	// ========================================
	// INFRASTRUCTURE
	// ========================================
	Config      *config.Config
	DB          *database.PostgresDB
	Redis       *infraCache.RedisClient // nil with the memory cache driver
	Cache       cache.Cache
	Invalidator *cachekey.Invalidator
	Storage     storage.ObjectStorage
	Images      *storage.ImageProcessor
	AsynqClient *asynq.Client
	JWTManager  *jwt.Manager

	// ========================================
	// REPOSITORIES
	// ========================================
	StarRepo     starRepo.Repository
	CountryRepo  country.Repository
	CategoryRepo category.Repository
	FeedbackRepo feedback.Repository

	// ========================================
	// SERVICES
	// ========================================
	StarService     starService.StarService
	ImportService   starService.ImportService
	CountryService  country.Service
	CategoryService category.Service
	FeedbackService feedback.Service
	PageService     pageService.PageService
	SitemapService  *sitemap.Service
	AuthService     admin.AuthService

	// ========================================
	// HANDLERS
	// ========================================
	StarHandler     *starHandler.StarHandler
	CountryHandler  *countryHandler.CountryHandler
	CategoryHandler *categoryHandler.CategoryHandler
	FeedbackHandler *feedbackHandler.FeedbackHandler
	PageHandler     *pageHandler.PageHandler
	SitemapHandler  *sitemapHandler.SitemapHandler
	AdminHandler    *adminHandler.AdminHandler

	// Worker task handlers
	ProcessPhotoJob *starJob.ProcessPhotoHandler
}

// NewContainer builds config, then infrastructure, repositories, services and
// handlers in that order.
func NewContainer() (*Container, error) {
	c := &Container{}

	// ========================================
	// STEP 1: CONFIGURATION
	// ========================================
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	logger.Init(cfg.App.Environment)
	logger.Info("config loaded", map[string]interface{}{"environment": cfg.App.Environment})

	// ========================================
	// STEP 2: INFRASTRUCTURE
	// ========================================
	if err := c.initDatabase(); err != nil {
		c.Cleanup()
		return nil, err
	}
	if err := c.initCache(); err != nil {
		c.Cleanup()
		return nil, err
	}
	if err := c.initStorage(); err != nil {
		c.Cleanup()
		return nil, err
	}

	c.AsynqClient = asynq.NewClient(c.RedisOpt())
	c.JWTManager = jwt.NewManager(cfg.JWT.Secret, cfg.JWT.TokenExpiry)

	// ========================================
	// STEP 3..5: REPOSITORIES, SERVICES, HANDLERS
	// ========================================
	c.initRepositories()
	c.initServices()
	c.initHandlers()

	logger.Info("container initialized", nil)
	return c, nil
}

// RedisOpt is shared by the asynq client, server and scheduler.
func (c *Container) RedisOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     c.Config.Redis.Host,
		Password: c.Config.Redis.Password,
		DB:       c.Config.Redis.DB,
	}
}

func (c *Container) initDatabase() error {
	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return fmt.Errorf("failed to load database config: %w", err)
	}

	db := database.NewPostgresDB(dbConfig)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	c.DB = db

	if err := db.HealthCheck(ctx); err != nil {
		return fmt.Errorf("database health check failed: %w", err)
	}

	if c.Config.App.AutoMigrate {
		if err := db.Migrate(ctx); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}
		logger.Info("database migrations applied", nil)
	}
	return nil
}

// initCache picks the backend. A redis outage at startup is not fatal: cache
// errors are treated as misses, so pages are still served from postgres.
func (c *Container) initCache() error {
	var backend cache.Cache

	switch c.Config.Cache.Driver {
	case "memory":
		backend = infraCache.NewMemoryCache()
	case "redis":
		c.Redis = infraCache.NewRedisClient(c.Config.Redis.Host, c.Config.Redis.Password, c.Config.Redis.DB)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := c.Redis.Connect(ctx); err != nil {
			logger.Warn("redis unavailable, page cache will miss", map[string]interface{}{"error": err.Error()})
		}
		backend = infraCache.NewRedisCache(c.Redis.Client, c.Config.Cache.Prefix)
	default:
		return fmt.Errorf("unknown cache driver %q", c.Config.Cache.Driver)
	}

	c.Cache = infraCache.NewInstrumented(backend)
	c.Invalidator = cachekey.NewInvalidator(c.Cache)
	return nil
}

func (c *Container) initStorage() error {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	minioStorage, err := storage.NewMinIOStorage(ctx, c.Config.MinIO)
	if err != nil {
		return fmt.Errorf("failed to init object storage: %w", err)
	}
	c.Storage = minioStorage
	c.Images = storage.NewImageProcessor()
	return nil
}

func (c *Container) initRepositories() {
	pool := c.DB.Pool

	c.StarRepo = starRepo.NewPostgresRepository(pool)
	c.CountryRepo = countryRepo.NewPostgresRepository(pool)
	c.CategoryRepo = categoryRepo.NewPostgresRepository(pool)
	c.FeedbackRepo = feedbackRepo.NewPostgresRepository(pool)
}

func (c *Container) initServices() {
	c.CountryService = countryService.NewCountryService(c.CountryRepo, c.Invalidator)
	c.CategoryService = categoryService.NewCategoryService(c.CategoryRepo, c.Invalidator)
	c.FeedbackService = feedbackService.NewFeedbackService(c.FeedbackRepo)

	c.StarService = starService.NewStarService(
		c.StarRepo,
		c.CountryRepo,
		c.CategoryRepo,
		c.Invalidator,
		c.Storage,
		c.Images,
		c.AsynqClient,
	)
	c.ImportService = starService.NewImportService(c.StarRepo, c.CountryService, c.CategoryService, c.Invalidator)

	c.PageService = pageService.NewPageService(
		c.StarRepo,
		c.CountryRepo,
		c.CategoryRepo,
		c.Cache,
		pageService.WithPhotoURL(c.Storage.URL),
	)
	c.SitemapService = sitemap.NewService(
		c.StarRepo,
		c.CountryRepo,
		c.CategoryRepo,
		c.Cache,
		c.Config.Site.BaseURL,
		c.Config.Site.RobotsFile,
	)
	c.AuthService = adminService.NewAuthService(c.Config.Admin, c.JWTManager)
}

func (c *Container) initHandlers() {
	c.StarHandler = starHandler.NewStarHandler(c.StarService)
	c.CountryHandler = countryHandler.NewCountryHandler(c.CountryService)
	c.CategoryHandler = categoryHandler.NewCategoryHandler(c.CategoryService)
	c.FeedbackHandler = feedbackHandler.NewFeedbackHandler(c.FeedbackService)
	c.PageHandler = pageHandler.NewPageHandler(c.PageService)
	c.SitemapHandler = sitemapHandler.NewSitemapHandler(c.SitemapService)
	c.AdminHandler = adminHandler.NewAdminHandler(c.AuthService, c.Invalidator)

	c.ProcessPhotoJob = starJob.NewProcessPhotoHandler(c.StarService)
}

// HealthCheck pings postgres and the cache. Only the database is fatal.
func (c *Container) HealthCheck(ctx context.Context) (dbErr, cacheErr error) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if c.DB == nil {
		dbErr = fmt.Errorf("database not initialized")
	} else {
		dbErr = c.DB.HealthCheck(ctx)
	}
	if c.Cache == nil {
		cacheErr = fmt.Errorf("cache not initialized")
	} else {
		cacheErr = c.Cache.Ping(ctx)
	}
	return dbErr, cacheErr
}

// Cleanup releases connections. Safe on a partially built container.
func (c *Container) Cleanup() {
	if c.AsynqClient != nil {
		if err := c.AsynqClient.Close(); err != nil {
			logger.Error("failed to close asynq client", err)
		}
	}
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			logger.Error("failed to close redis", err)
		}
	}
	if c.DB != nil {
		_ = c.DB.Close()
	}
	logger.Info("container cleanup completed", nil)
}
