package container

import (
	"context"
	"fmt"
	"log"
	"time"

	"library-backend/internal/config"
	infraCache "library-backend/internal/infrastructure/cache"
	"library-backend/internal/infrastructure/database"
	"library-backend/pkg/cache"
	"library-backend/pkg/jwt"

	catalogHandler "library-backend/internal/domains/catalog/handler"
	catalogRepo "library-backend/internal/domains/catalog/repository"
	catalogService "library-backend/internal/domains/catalog/service"

	membershipHandler "library-backend/internal/domains/membership/handler"
	membershipRepo "library-backend/internal/domains/membership/repository"
	membershipService "library-backend/internal/domains/membership/service"

	loanHandler "library-backend/internal/domains/loan/handler"
	loanRepo "library-backend/internal/domains/loan/repository"
	loanService "library-backend/internal/domains/loan/service"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container is the root of the dependency graph. Everything in it is a
// singleton living for the process lifetime.
type Container struct {
	// Infrastructure
	Config     *config.Config
	DB         *database.PostgresDB
	Cache      cache.Cache
	JWTManager *jwt.Manager

	// Repositories
	CatalogRepo    catalogRepo.RepositoryInterface
	MembershipRepo membershipRepo.RepositoryInterface
	LoanRepo       loanRepo.RepositoryInterface

	// Services
	CatalogService    catalogService.ServiceInterface
	MembershipService membershipService.ServiceInterface
	LoanService       loanService.ServiceInterface

	// HTTP handlers
	CatalogHandler    *catalogHandler.Handler
	MembershipHandler *membershipHandler.Handler
	LoanHandler       *loanHandler.Handler
}

// NewContainer builds the whole dependency graph.
//
// Initialization order matters: config, then infrastructure, then
// repositories, then services, then handlers.
func NewContainer() (*Container, error) {
	c := &Container{}

	// ========================================
	// STEP 1: LOAD CONFIGURATION
	// ========================================
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	log.Printf("[Container] Config loaded (environment: %s)", cfg.App.Environment)

	// ========================================
	// STEP 2: INITIALIZE DATABASE
	// ========================================
	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load database config: %w", err)
	}

	db := database.NewPostgresDB(dbConfig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.HealthCheck(context.Background()); err != nil {
		return nil, fmt.Errorf("database health check failed: %w", err)
	}

	c.DB = db
	log.Println("[Container] Database connected")

	// ========================================
	// STEP 3: INITIALIZE CACHE
	// ========================================
	redisCache := infraCache.NewRedisCache(
		cfg.Redis.Host,
		cfg.Redis.Password,
		cfg.Redis.DB,
	)

	// Redis is non-critical: services treat a nil-ish cache as a miss on
	// every read, so a failed connection only costs the caching.
	if rc, ok := redisCache.(*infraCache.RedisCache); ok {
		if err := rc.Connect(context.Background()); err != nil {
			log.Printf("[Container] Redis connection failed (non-critical): %v", err)
		} else {
			log.Println("[Container] Redis connected")
		}
	}
	c.Cache = redisCache

	c.JWTManager = jwt.NewManager(cfg.JWT.Secret)

	// ========================================
	// STEP 4: REPOSITORIES
	// ========================================
	c.initRepositories()

	// ========================================
	// STEP 5: SERVICES
	// ========================================
	c.initServices()

	// ========================================
	// STEP 6: HANDLERS
	// ========================================
	c.initHandlers()

	log.Println("[Container] Initialized")
	return c, nil
}

func (c *Container) initRepositories() {
	pool := c.DB.Pool

	c.CatalogRepo = catalogRepo.NewRepository(pool)
	c.MembershipRepo = membershipRepo.NewRepository(pool)
	c.LoanRepo = loanRepo.NewRepository(pool)
}

func (c *Container) initServices() {
	c.CatalogService = catalogService.NewService(c.CatalogRepo, c.Cache)
	c.MembershipService = membershipService.NewService(c.MembershipRepo)
	c.LoanService = loanService.NewService(
		c.LoanRepo,
		c.CatalogService,
		c.MembershipService,
		c.Cache,
		c.Config.Loan,
	)
}

func (c *Container) initHandlers() {
	c.CatalogHandler = catalogHandler.NewHandler(c.CatalogService)
	c.MembershipHandler = membershipHandler.NewHandler(c.MembershipService)
	c.LoanHandler = loanHandler.NewHandler(c.LoanService)
}

// Cleanup releases infrastructure resources. Call on shutdown.
func (c *Container) Cleanup() {
	if c.DB != nil {
		c.DB.Close()
		log.Println("[Container] Database connection closed")
	}

	if rc, ok := c.Cache.(*infraCache.RedisCache); ok {
		if err := rc.Close(); err != nil {
			log.Printf("[Container] Redis close failed: %v", err)
		} else {
			log.Println("[Container] Redis connection closed")
		}
	}
}
