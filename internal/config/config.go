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
	Server    ServerConfig
	App       AppConfig
	Cache     CacheConfig
	Store     StoreConfig
	AccountDB AccountDBConfig
	Seed      SeedConfig
	Reconcile ReconcileConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `envconfig:"SERVER_HOST" default:"0.0.0.0"`
	Port            int           `envconfig:"SERVER_PORT" default:"8080"`
	ReadTimeout     time.Duration `envconfig:"SERVER_READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `envconfig:"SERVER_WRITE_TIMEOUT" default:"30s"`
	ShutdownTimeout time.Duration `envconfig:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`
}

// AppConfig holds application-level settings.
type AppConfig struct {
	Name        string        `envconfig:"APP_NAME" default:"recycletrack-api"`
	Environment string        `envconfig:"APP_ENV" default:"development"`
	Debug       bool          `envconfig:"APP_DEBUG" default:"false"`
	Version     string        `envconfig:"APP_VERSION" default:"1.0.0"`
	SessionTTL  time.Duration `envconfig:"SESSION_TTL" default:"24h"`
}

// CacheConfig holds cache settings.
type CacheConfig struct {
	Type string        `envconfig:"CACHE_TYPE" default:"memory"` // memory or redis
	TTL  time.Duration `envconfig:"CACHE_TTL" default:"30s"`

	RedisHost     string `envconfig:"REDIS_HOST" default:"localhost"`
	RedisPort     int    `envconfig:"REDIS_PORT" default:"6379"`
	RedisPassword string `envconfig:"REDIS_PASSWORD" default:""`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`
}

// StoreConfig holds settings for the catalog/ledger/leaderboard stores.
type StoreConfig struct {
	Type       string `envconfig:"STORE_TYPE" default:"memory"` // memory or sqlite
	SQLitePath string `envconfig:"STORE_SQLITE_PATH" default:"./data/recycletrack.db"`

	// LedgerType overrides the ledger backend only; "postgres" routes
	// ledger writes to PostgreSQL while the other stores keep STORE_TYPE.
	LedgerType string `envconfig:"LEDGER_DB_TYPE" default:""`
	// PostgreSQL settings for the ledger override.
	PGHost     string `envconfig:"LEDGER_DB_HOST" default:"localhost"`
	PGPort     int    `envconfig:"LEDGER_DB_PORT" default:"5432"`
	PGName     string `envconfig:"LEDGER_DB_NAME" default:"recycletrack"`
	PGUser     string `envconfig:"LEDGER_DB_USER" default:"postgres"`
	PGPassword string `envconfig:"LEDGER_DB_PASS" default:""`
	PGSSLMode  string `envconfig:"LEDGER_DB_SSLMODE" default:"disable"`
}

// AccountDBConfig holds optional MySQL settings for the account directory.
// When Type is "mysql" the account store moves to MySQL; otherwise accounts
// follow STORE_TYPE.
type AccountDBConfig struct {
	Type     string `envconfig:"ACCOUNT_DB_TYPE" default:""`
	Host     string `envconfig:"ACCOUNT_DB_HOST" default:"localhost"`
	Port     int    `envconfig:"ACCOUNT_DB_PORT" default:"3306"`
	Name     string `envconfig:"ACCOUNT_DB_NAME" default:"recycletrack"`
	User     string `envconfig:"ACCOUNT_DB_USER" default:"root"`
	Password string `envconfig:"ACCOUNT_DB_PASS" default:""`
}

// SeedConfig controls the fixed bootstrap seed.
type SeedConfig struct {
	Enabled bool `envconfig:"SEED_ENABLED" default:"true"`
}

// ReconcileConfig controls the leaderboard reconciliation scheduler.
type ReconcileConfig struct {
	Enabled  bool          `envconfig:"RECONCILE_ENABLED" default:"true"`
	Interval time.Duration `envconfig:"RECONCILE_INTERVAL" default:"10m"`
}

// PostgresDSN returns the PostgreSQL connection string for the ledger.
func (s *StoreConfig) PostgresDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		s.PGUser, s.PGPassword, s.PGHost, s.PGPort, s.PGName, s.PGSSLMode)
}

// DSN returns the MySQL data source name for the account directory.
func (a *AccountDBConfig) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true",
		a.User, a.Password, a.Host, a.Port, a.Name)
}

// Address returns the server address in host:port format.
func (s *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// RedisAddress returns the Redis address in host:port format.
func (c *CacheConfig) RedisAddress() string {
	return fmt.Sprintf("%s:%d", c.RedisHost, c.RedisPort)
}

// IsDevelopment returns true if running in development mode.
func (a *AppConfig) IsDevelopment() bool {
	return a.Environment == "development"
}

// IsProduction returns true if running in production mode.
func (a *AppConfig) IsProduction() bool {
	return a.Environment == "production"
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
