package config

import "time"

// AppConfig holds runtime startup configuration loaded from YAML.
type AppConfig struct {
	Port           int                   `yaml:"port"`
	DSN            string                `yaml:"dsn"`
	RedisURL       string                `yaml:"redis_url"`
	Database       DatabaseRuntimeConfig `yaml:"database"`
	Redis          RedisRuntimeConfig    `yaml:"redis"`
	Cache          CacheRuntimeConfig    `yaml:"cache"`
	Reader         ReaderRuntimeConfig   `yaml:"reader"`
	Env            string                `yaml:"env"` // "development" | "production"
	Paths          RuntimePathsConfig    `yaml:"paths"`
	AllowedOrigins []string              `yaml:"allowed_origins"`
	JWTSecret      string                `yaml:"jwt_secret"`
	Timezone       string                `yaml:"timezone"`
}

type DatabaseRuntimeConfig struct {
	Driver    string            `yaml:"driver"` // "mysql" | "sqlite"
	DSN       string            `yaml:"dsn"`
	URL       string            `yaml:"url"`
	Host      string            `yaml:"host"`
	Port      int               `yaml:"port"`
	User      string            `yaml:"user"`
	Username  string            `yaml:"username"`
	Password  string            `yaml:"password"`
	Name      string            `yaml:"name"`
	DBName    string            `yaml:"db_name"`
	Charset   string            `yaml:"charset"`
	ParseTime bool              `yaml:"parse_time"`
	Loc       string            `yaml:"loc"`
	Params    map[string]string `yaml:"params"`
}

type RedisRuntimeConfig struct {
	URL      string            `yaml:"url"`
	Host     string            `yaml:"host"`
	Port     int               `yaml:"port"`
	Username string            `yaml:"username"`
	Password string            `yaml:"password"`
	DB       int               `yaml:"db"`
	TLS      bool              `yaml:"tls"`
	Scheme   string            `yaml:"scheme"`
	Params   map[string]string `yaml:"params"`
}

// CacheRuntimeConfig selects the backing store for the device tracking cache.
type CacheRuntimeConfig struct {
	Backend   string        `yaml:"backend"` // "memory" | "redis"
	KeyPrefix string        `yaml:"key_prefix"`
	DeviceTTL time.Duration `yaml:"device_ttl"`
}

type ReaderRuntimeConfig struct {
	// HistoryInterval is how often reading sessions are folded into daily history.
	HistoryInterval time.Duration `yaml:"history_interval"`
	// SessionIdle closes a reading session after this much inactivity.
	SessionIdle time.Duration `yaml:"session_idle"`
}

type RuntimePathsConfig struct {
	Logs string `yaml:"logs"`
	Data string `yaml:"data"`
}

type rawAppConfig struct {
	Port               int               `yaml:"port"`
	DSN                string            `yaml:"dsn"`
	DatabaseURL        string            `yaml:"database_url"`
	RedisURL           string            `yaml:"redis_url"`
	Database           rawDatabaseConfig `yaml:"database"`
	Redis              rawRedisConfig    `yaml:"redis"`
	Cache              rawCacheConfig    `yaml:"cache"`
	Reader             rawReaderConfig   `yaml:"reader"`
	DBDriver           string            `yaml:"db_driver"`
	DBHost             string            `yaml:"db_host"`
	DBPort             int               `yaml:"db_port"`
	DBUser             string            `yaml:"db_user"`
	DBPassword         string            `yaml:"db_password"`
	DBName             string            `yaml:"db_name"`
	RedisHost          string            `yaml:"redis_host"`
	RedisPort          int               `yaml:"redis_port"`
	RedisPassword      string            `yaml:"redis_password"`
	RedisDB            *int              `yaml:"redis_db"`
	Env                string            `yaml:"env"`
	Paths              rawPathsConfig    `yaml:"paths"`
	LogDir             string            `yaml:"log_dir"`
	DataDir            string            `yaml:"data_dir"`
	AllowedOrigins     []string          `yaml:"allowed_origins"`
	CORSAllowedOrigins []string          `yaml:"cors_allowed_origins"`
	JWTSecret          string            `yaml:"jwt_secret"`
	Timezone           string            `yaml:"timezone"`
	TZ                 string            `yaml:"tz"`
}

type rawDatabaseConfig struct {
	Driver    string            `yaml:"driver"`
	DSN       string            `yaml:"dsn"`
	URL       string            `yaml:"url"`
	Host      string            `yaml:"host"`
	Port      int               `yaml:"port"`
	User      string            `yaml:"user"`
	Username  string            `yaml:"username"`
	Password  string            `yaml:"password"`
	Name      string            `yaml:"name"`
	DBName    string            `yaml:"db_name"`
	Charset   string            `yaml:"charset"`
	ParseTime *bool             `yaml:"parse_time"`
	Loc       string            `yaml:"loc"`
	Params    map[string]string `yaml:"params"`
}

type rawRedisConfig struct {
	URL      string            `yaml:"url"`
	Host     string            `yaml:"host"`
	Port     int               `yaml:"port"`
	Username string            `yaml:"username"`
	Password string            `yaml:"password"`
	DB       *int              `yaml:"db"`
	TLS      *bool             `yaml:"tls"`
	Scheme   string            `yaml:"scheme"`
	Params   map[string]string `yaml:"params"`
}

type rawCacheConfig struct {
	Backend   string `yaml:"backend"`
	KeyPrefix string `yaml:"key_prefix"`
	DeviceTTL string `yaml:"device_ttl"`
}

type rawReaderConfig struct {
	HistoryInterval string `yaml:"history_interval"`
	SessionIdle     string `yaml:"session_idle"`
}

type rawPathsConfig struct {
	Logs string `yaml:"logs"`
	Data string `yaml:"data"`
}
