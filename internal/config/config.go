package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

func init() {
	// Load .env file if it exists (silent fail if not)
	_ = godotenv.Load()
}

// Config holds all application configuration loaded from environment variables.
type Config struct {
	Server  ServerConfig
	App     AppConfig
	Bot     BotConfig
	Storage StorageConfig
	Cache   CacheConfig
	Backup  BackupConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `envconfig:"SERVER_HOST" default:"0.0.0.0"`
	Port            int           `envconfig:"SERVER_PORT" default:"5000"`
	ReadTimeout     time.Duration `envconfig:"SERVER_READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `envconfig:"SERVER_WRITE_TIMEOUT" default:"30s"`
	ShutdownTimeout time.Duration `envconfig:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`
}

// AppConfig holds application-level settings.
type AppConfig struct {
	Name        string `envconfig:"APP_NAME" default:"metagift-api"`
	Environment string `envconfig:"APP_ENV" default:"development"`
	WebAppURL   string `envconfig:"WEBAPP_URL" default:"https://metagiftnew1.onrender.com/"`
}

// BotConfig holds Telegram bot settings.
type BotConfig struct {
	Token string `envconfig:"BOT_TOKEN" default:""`
}

// StorageConfig holds document storage settings.
type StorageConfig struct {
	Type    string `envconfig:"STORAGE_TYPE" default:"file"` // file, sqlite, or mysql
	DataDir string `envconfig:"STORAGE_DATA_DIR" default:"./data"`
	// SQLite settings
	SQLitePath string `envconfig:"STORAGE_SQLITE_PATH" default:"./data/documents.db"`
	// MySQL settings
	MySQLHost     string `envconfig:"STORAGE_MYSQL_HOST" default:"localhost"`
	MySQLPort     int    `envconfig:"STORAGE_MYSQL_PORT" default:"3306"`
	MySQLName     string `envconfig:"STORAGE_MYSQL_NAME" default:"metagift"`
	MySQLUser     string `envconfig:"STORAGE_MYSQL_USER" default:"root"`
	MySQLPassword string `envconfig:"STORAGE_MYSQL_PASS" default:""`
}

// CacheConfig holds Redis cache settings.
type CacheConfig struct {
	Enabled       bool          `envconfig:"CACHE_ENABLED" default:"false"`
	TTL           time.Duration `envconfig:"CACHE_TTL" default:"30s"`
	RedisHost     string        `envconfig:"REDIS_HOST" default:"localhost"`
	RedisPort     int           `envconfig:"REDIS_PORT" default:"6379"`
	RedisPassword string        `envconfig:"REDIS_PASSWORD" default:""`
	RedisDB       int           `envconfig:"REDIS_DB" default:"0"`
}

// BackupConfig holds scheduled-backup settings.
type BackupConfig struct {
	Enabled   bool          `envconfig:"BACKUP_ENABLED" default:"true"`
	Schedule  string        `envconfig:"BACKUP_SCHEDULE" default:"0 3 * * *"`
	Dir       string        `envconfig:"BACKUP_DIR" default:"./backups"`
	Retention time.Duration `envconfig:"BACKUP_RETENTION" default:"720h"`
}

// MySQLDSN returns the MySQL data source name.
func (s *StorageConfig) MySQLDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true",
		s.MySQLUser, s.MySQLPassword, s.MySQLHost, s.MySQLPort, s.MySQLName)
}

// Address returns the server address in host:port format.
func (s *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// RedisAddress returns the Redis address in host:port format.
func (c *CacheConfig) RedisAddress() string {
	return fmt.Sprintf("%s:%d", c.RedisHost, c.RedisPort)
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	return &cfg, nil
}

// MustLoad loads configuration or panics on error.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}
