package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/readshelf/core/internal/config"
	"github.com/readshelf/core/internal/database"
	"github.com/readshelf/core/internal/middleware"
	"github.com/readshelf/core/internal/pkg/cache"
	pkgcron "github.com/readshelf/core/internal/pkg/cron"
	"github.com/readshelf/core/internal/pkg/jwt"
	pkgredis "github.com/readshelf/core/internal/pkg/redis"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// App holds all application dependencies.
type App struct {
	cfg    *config.AppConfig
	router *gin.Engine
	db     *gorm.DB
	redis  *pkgredis.Client // nil with the memory cache backend
	logger *zap.Logger
	cancel context.CancelFunc
	sched  *pkgcron.Scheduler
}

// New initializes the application: config → DB → cache store → services → routes → cron.
func New(logger *zap.Logger, cfg *config.AppConfig) (*App, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	secret, err := applyRuntimeSettings(cfg, logger)
	if err != nil {
		return nil, err
	}

	db, err := database.Connect(cfg, true)
	if err != nil {
		return nil, fmt.Errorf("database: %w", err)
	}

	var rc *pkgredis.Client
	var store cache.Store
	switch cfg.Cache.Backend {
	case config.CacheBackendRedis:
		if rc, err = pkgredis.Connect(cfg.RedisURL); err != nil {
			return nil, fmt.Errorf("redis: %w", err)
		}
		store = cache.NewRedisStore(rc, cfg.Cache.KeyPrefix)
	default:
		store = cache.NewMemoryStore()
	}

	if cfg.IsDev() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(logger))
	router.Use(cors.New(corsConfig(cfg)))

	ctx, cancel := context.WithCancel(context.Background())
	sched := pkgcron.New(logger)

	app := &App{cfg: cfg, router: router, db: db, redis: rc, logger: logger, cancel: cancel, sched: sched}
	svc := app.buildServices(store, jwt.NewSigner(secret))
	app.registerRoutes(svc)
	registerCronJobs(sched, svc, cfg, logger)
	go sched.Start(ctx)

	return app, nil
}

func corsConfig(cfg *config.AppConfig) cors.Config {
	c := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}
	if len(cfg.AllowedOrigins) > 0 && !cfg.IsDev() {
		patterns := cfg.AllowedOrigins
		c.AllowOriginFunc = func(origin string) bool {
			host := extractOriginHost(origin)
			for _, pattern := range patterns {
				if matchOriginPattern(pattern, host) {
					return true
				}
			}
			return false
		}
	} else {
		c.AllowOriginFunc = func(origin string) bool { return true }
	}
	return c
}

// Addr returns the listen address.
func (a *App) Addr() string { return fmt.Sprintf(":%d", a.cfg.Port) }

// Router returns the HTTP handler.
func (a *App) Router() http.Handler { return a.router }

// Shutdown stops the scheduler and releases connections.
func (a *App) Shutdown() {
	a.cancel()
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Warn("redis close failed", zap.Error(err))
		}
	}
	if sqlDB, err := a.db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

var processStart = time.Now()
