package app

import (
	"github.com/readshelf/core/internal/modules/account/preferences"
	"github.com/readshelf/core/internal/modules/device/registry"
	"github.com/readshelf/core/internal/modules/device/tracking"
	"github.com/readshelf/core/internal/modules/library/catalog"
	"github.com/readshelf/core/internal/modules/reader/history"
	"github.com/readshelf/core/internal/modules/reader/progress"
	"github.com/readshelf/core/internal/modules/reader/reread"
	"github.com/readshelf/core/internal/modules/reader/session"
	"github.com/readshelf/core/internal/pkg/cache"
	"github.com/readshelf/core/internal/pkg/jwt"
)

type services struct {
	signer      *jwt.Signer
	catalog     *catalog.Service
	progress    *progress.Service
	preferences *preferences.Service
	reread      *reread.Service
	sessions    *session.Service
	history     *history.Service
	registry    *registry.Service
	tracking    *tracking.Service
}

func (a *App) buildServices(store cache.Store, signer *jwt.Signer) *services {
	catalogSvc := catalog.NewService(a.db)
	progressSvc := progress.NewService(a.db, catalogSvc)
	prefsSvc := preferences.NewService(a.db)
	sessionSvc := session.NewService(a.db, a.cfg.Reader.SessionIdle)
	registrySvc := registry.NewService(a.db)

	return &services{
		signer:      signer,
		catalog:     catalogSvc,
		progress:    progressSvc,
		preferences: prefsSvc,
		reread:      reread.NewService(catalogSvc, progressSvc, prefsSvc),
		sessions:    sessionSvc,
		history:     history.NewService(a.db, sessionSvc, a.logger),
		registry:    registrySvc,
		tracking:    tracking.NewService(cache.New(store, a.cfg.Cache.DeviceTTL), registrySvc, sessionSvc, a.logger),
	}
}
