// Package dbtest opens throwaway migrated databases for repository tests.
package dbtest

import (
	"testing"

	"github.com/readshelf/core/internal/config"
	"github.com/readshelf/core/internal/database"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// New returns a migrated in-memory sqlite database closed at test cleanup.
func New(t testing.TB) *gorm.DB {
	t.Helper()
	db, err := database.Open(config.DriverSQLite, ":memory:", logger.Silent)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}
