package app

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/readshelf/core/internal/config"
	"github.com/readshelf/core/internal/middleware"
	"github.com/readshelf/core/internal/modules/account/preferences"
	"github.com/readshelf/core/internal/modules/device/registry"
	"github.com/readshelf/core/internal/modules/device/tracking"
	"github.com/readshelf/core/internal/modules/library/catalog"
	"github.com/readshelf/core/internal/modules/reader/history"
	"github.com/readshelf/core/internal/modules/reader/progress"
	"github.com/readshelf/core/internal/modules/reader/reread"
	"github.com/readshelf/core/internal/modules/tasks/crontask"
	"github.com/readshelf/core/internal/pkg/response"
)

const progressWritesPerSecond = 10

func (a *App) registerRoutes(svc *services) {
	r := a.router
	authMW := middleware.Auth(svc.signer)

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c)
	})

	api := r.Group("/api")
	api.GET("/health", func(c *gin.Context) {
		response.OK(c, gin.H{
			"status": "ok",
			"cache":  a.cfg.Cache.Backend,
			"uptime": humanizeDuration(time.Since(processStart)),
		})
	})

	var limit gin.HandlerFunc
	if a.redis != nil && a.cfg.Cache.Backend == config.CacheBackendRedis {
		limit = middleware.RateLimit(a.redis.Raw(), middleware.RateLimitOptions{
			Prefix: a.cfg.Cache.KeyPrefix + "ratelimit:progress",
			Max:    progressWritesPerSecond,
			Window: time.Second,
		})
	}

	catalog.NewHandler(svc.catalog).RegisterRoutes(api, authMW)
	progress.NewHandler(svc.progress, svc.tracking, svc.sessions, a.logger).RegisterRoutes(api, authMW, limit)
	reread.NewHandler(svc.reread).RegisterRoutes(api, authMW)
	history.NewHandler(svc.history).RegisterRoutes(api, authMW)
	preferences.NewHandler(svc.preferences).RegisterRoutes(api, authMW)
	registry.NewHandler(svc.registry, svc.tracking).RegisterRoutes(api, authMW)
	tracking.NewHandler(svc.tracking).RegisterRoutes(api, authMW)
	crontask.NewHandler(a.sched).RegisterRoutes(api, authMW)
}
