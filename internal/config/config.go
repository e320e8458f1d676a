package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// BaseConfig holds base configuration
type BaseConfig struct {
	Debug     bool   `mapstructure:"debug"`
	SentryDSN string `mapstructure:"sentry_dsn"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	ReadTimeout  int    `mapstructure:"read_timeout"`  // in seconds
	WriteTimeout int    `mapstructure:"write_timeout"` // in seconds
	IdleTimeout  int    `mapstructure:"idle_timeout"`  // in seconds
}

// AuthConfig holds authentication configuration
type AuthConfig struct {
	JWTPublicKey string   `mapstructure:"jwt_public_key"`
	APIKeys      []string `mapstructure:"api_keys"`
}

// StorageConfig holds managed storage root configuration
type StorageConfig struct {
	// Root is the managed storage root; deliverables, covers and tmp
	// directories live under it
	Root string `mapstructure:"root"`
	// MaxBytes bounds the total bytes on disk under Root
	MaxBytes int64 `mapstructure:"max_bytes"`
	// CleanupMaxAge is the age past which artifacts are evicted
	CleanupMaxAge time.Duration `mapstructure:"cleanup_max_age"`
}

// MirrorsConfig holds mirror endpoint configuration for the downloader
type MirrorsConfig struct {
	// Endpoints is the ranked list of interchangeable mirror base URLs;
	// index 0 is the primary
	Endpoints []string `mapstructure:"endpoints"`
	// AttemptTimeout bounds a single download attempt against one mirror
	AttemptTimeout time.Duration `mapstructure:"attempt_timeout"`
	// RetriesPerMirror is how many times a mirror is retried (with
	// backoff) on network failures before failing over
	RetriesPerMirror int `mapstructure:"retries_per_mirror"`
}

// WorkerConfig holds worker pool configuration
type WorkerConfig struct {
	PoolSize  int `mapstructure:"pool_size"`
	QueueSize int `mapstructure:"queue_size"`
}

// NATSConfig holds NATS JetStream configuration for fetch events.
// An empty URL disables event publishing.
type NATSConfig struct {
	URL            string        `mapstructure:"url"`
	MaxReconnects  int           `mapstructure:"max_reconnects"`
	ReconnectWait  time.Duration `mapstructure:"reconnect_wait"`
	ConnectionName string        `mapstructure:"connection_name"`
}

// FetchdConfig holds configuration for the fetchd service
type FetchdConfig struct {
	BaseConfig `mapstructure:",squash"`
	Database   DatabaseConfig `mapstructure:"database"`
	Server     ServerConfig   `mapstructure:"server"`
	Auth       AuthConfig     `mapstructure:"auth"`
	Storage    StorageConfig  `mapstructure:"storage"`
	Mirrors    MirrorsConfig  `mapstructure:"mirrors"`
	Worker     WorkerConfig   `mapstructure:"worker"`
	NATS       NATSConfig     `mapstructure:"nats"`
}

// SweeperConfig holds configuration for the storage sweeper daemon
type SweeperConfig struct {
	BaseConfig    `mapstructure:",squash"`
	Storage       StorageConfig `mapstructure:"storage"`
	SweepInterval time.Duration `mapstructure:"sweep_interval"`
}

// LoadFetchdConfig loads configuration for the fetchd service
func LoadFetchdConfig(configFile string, envPath string) (*FetchdConfig, error) {
	v := configureViper("fetchd", configFile, envPath)

	// Set defaults
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 10)
	v.SetDefault("server.write_timeout", 10)
	v.SetDefault("server.idle_timeout", 120)
	v.SetDefault("storage.max_bytes", int64(8)*1024*1024*1024) // 8GB
	v.SetDefault("storage.cleanup_max_age", "168h")            // 7 days
	v.SetDefault("mirrors.attempt_timeout", "2m")
	v.SetDefault("mirrors.retries_per_mirror", 3)
	v.SetDefault("worker.pool_size", 10)
	v.SetDefault("worker.queue_size", 64)
	v.SetDefault("nats.max_reconnects", 10)
	v.SetDefault("nats.reconnect_wait", "2s")
	v.SetDefault("nats.connection_name", "fetchd")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			// Config file not found, use environment variables
		} else {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg FetchdConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Validate required fields
	if cfg.Storage.Root == "" {
		return nil, errors.New("storage.root is required")
	}
	if len(cfg.Mirrors.Endpoints) == 0 {
		return nil, errors.New("mirrors.endpoints is required")
	}

	return &cfg, nil
}

// LoadSweeperConfig loads configuration for the storage sweeper daemon
func LoadSweeperConfig(configFile string, envPath string) (*SweeperConfig, error) {
	v := configureViper("sweeper", configFile, envPath)

	// Set defaults
	v.SetDefault("storage.max_bytes", int64(8)*1024*1024*1024)
	v.SetDefault("storage.cleanup_max_age", "168h")
	v.SetDefault("sweep_interval", "1h")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			// Config file not found, use environment variables
		} else {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg SweeperConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.Storage.Root == "" {
		return nil, errors.New("storage.root is required")
	}

	return &cfg, nil
}

// configureViper returns a viper instance with the config file and environment variables set
func configureViper(service string, configFile string, envPath string) *viper.Viper {
	v := viper.New()

	// Load environment variables
	loadEnv(envPath, service)

	// Set config file
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath(fmt.Sprintf("cmd/%s/", service))
		v.AddConfigPath("config/")
	}

	v.SetEnvPrefix("FETCHD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	bindAllEnvVars(v)
	return v
}

// bindAllEnvVars explicitly binds all possible environment variables.
// Required for viper to map env vars to config struct fields when no
// config file exists.
func bindAllEnvVars(v *viper.Viper) {
	keys := []string{
		"debug",
		"sentry_dsn",
		// Database
		"database.host",
		"database.port",
		"database.user",
		"database.password",
		"database.dbname",
		"database.sslmode",
		"database.max_open_conns",
		"database.max_idle_conns",
		"database.conn_max_lifetime",
		"database.conn_max_idle_time",
		// Server
		"server.host",
		"server.port",
		"server.read_timeout",
		"server.write_timeout",
		"server.idle_timeout",
		// Auth
		"auth.jwt_public_key",
		"auth.api_keys",
		// Storage
		"storage.root",
		"storage.max_bytes",
		"storage.cleanup_max_age",
		// Mirrors
		"mirrors.endpoints",
		"mirrors.attempt_timeout",
		"mirrors.retries_per_mirror",
		// Worker
		"worker.pool_size",
		"worker.queue_size",
		// NATS
		"nats.url",
		"nats.max_reconnects",
		"nats.reconnect_wait",
		"nats.connection_name",
		// Sweeper
		"sweep_interval",
	}

	for _, key := range keys {
		_ = v.BindEnv(key)
	}
}

// loadEnv loads environment variables from the config directory
func loadEnv(envPath string, service string) {
	// Shared base first, then local, then optional per-service local.
	envFiles := []string{".env", ".env.local"}
	if service != "" {
		envFiles = append(envFiles, ".env."+service+".local")
	}

	if envPath == "" {
		envPath = "config/"
	}

	for _, envFile := range envFiles {
		candidate := filepath.Join(envPath, envFile)
		_ = godotenv.Overload(candidate) // later files override earlier ones
	}
}

// ChdirRepoRoot changes the current working directory to the repository root
func ChdirRepoRoot() {
	cwd, _ := os.Getwd()
	for range 5 {
		if _, err := os.Stat(filepath.Join(cwd, "config")); err == nil {
			_ = os.Chdir(cwd)
			return
		}
		cwd = filepath.Dir(cwd)
	}
}

// DSN returns the database connection string
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}
