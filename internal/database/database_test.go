package database

import (
	"testing"

	"github.com/readshelf/core/internal/config"
	"github.com/readshelf/core/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"
)

func TestOpenSQLiteAndMigrate(t *testing.T) {
	db, err := Open(config.DriverSQLite, ":memory:", logger.Silent)
	require.NoError(t, err)
	require.NoError(t, Migrate(db))

	for _, m := range models.All() {
		assert.True(t, db.Migrator().HasTable(m), "%T", m)
	}

	dev := models.DeviceModel{UserID: 1, Browser: "Chrome"}
	require.NoError(t, db.Create(&dev).Error)
	assert.NotZero(t, dev.ID)
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, err := Open("postgres", "", logger.Silent)
	assert.ErrorContains(t, err, "unsupported database driver")
}

func TestConnectSQLite(t *testing.T) {
	cfg, err := config.Parse([]byte("database:\n  driver: sqlite\n  dsn: \":memory:\"\n"))
	require.NoError(t, err)

	db, err := Connect(cfg, true)
	require.NoError(t, err)
	assert.True(t, db.Migrator().HasTable(&models.ProgressModel{}))
}
