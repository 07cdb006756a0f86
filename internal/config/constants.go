package config

import "time"

const (
	// DefaultConfigPath is used when --config is not provided.
	DefaultConfigPath = "config.yml"
	defaultPort       = 5000
	defaultEnv        = "development"

	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"

	defaultDBDriver   = DriverMySQL
	defaultDBHost     = "127.0.0.1"
	defaultDBPort     = 3306
	defaultDBUser     = "root"
	defaultDBPassword = "password"
	defaultDBName     = "readshelf"
	defaultDBCharset  = "utf8mb4"
	defaultDBLoc      = "UTC"
	defaultSQLiteFile = "readshelf.db"
	defaultRedisHost  = "localhost"
	defaultRedisPort  = 6379
	defaultRedisDB    = 0

	CacheBackendMemory = "memory"
	CacheBackendRedis  = "redis"

	defaultCacheBackend    = CacheBackendMemory
	defaultCacheKeyPrefix  = "readshelf:"
	defaultDeviceCacheTTL  = 12 * time.Hour
	defaultHistoryInterval = 24 * time.Hour
	defaultSessionIdle     = 30 * time.Minute
)
