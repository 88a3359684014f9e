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
	MaxOpenConns    int           `mapstructure:"max_open_conns"`     // Maximum number of open connections to the database
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`     // Maximum number of idle connections in the pool
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`  // Maximum amount of time a connection may be reused (e.g., "5m", "1h")
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"` // Maximum amount of time a connection may be idle (e.g., "10m", "30m")
}

// NATSConfig holds NATS JetStream configuration
type NATSConfig struct {
	URL            string        `mapstructure:"url"`
	StreamName     string        `mapstructure:"stream_name"`
	MaxReconnects  int           `mapstructure:"max_reconnects"`
	ReconnectWait  time.Duration `mapstructure:"reconnect_wait"`
	ConnectionName string        `mapstructure:"connection_name"`
}

// LedgerConfig holds event ledger (chain RPC) configuration
type LedgerConfig struct {
	RPCURL          string `mapstructure:"rpc_url"`
	ContractAddress string `mapstructure:"contract_address"`
	StartBlock      uint64 `mapstructure:"start_block"`
	SecondsPerBlock uint64 `mapstructure:"seconds_per_block"`
	ChunkSize       uint64 `mapstructure:"chunk_size"`
}

// SyncConfig holds sync coordinator configuration
type SyncConfig struct {
	BatchSize         int   `mapstructure:"batch_size"`
	WorkerPoolSize    int   `mapstructure:"worker_pool_size"`
	SeasonTwoStartDay int64 `mapstructure:"season_two_start_day"`
}

// RankingConfig holds ranking aggregator configuration
type RankingConfig struct {
	QuietPeriod time.Duration `mapstructure:"quiet_period"`
}

// RepairConfig holds repair service configuration
type RepairConfig struct {
	RequestDelay time.Duration `mapstructure:"request_delay"`
}

// ScheduleConfig holds maintenance runner configuration
type ScheduleConfig struct {
	TickInterval      time.Duration `mapstructure:"tick_interval"`
	RecentInterval    time.Duration `mapstructure:"recent_interval"`
	DeepInterval      time.Duration `mapstructure:"deep_interval"`
	StreakInterval    time.Duration `mapstructure:"streak_interval"`
	RecentWindowHours int           `mapstructure:"recent_window_hours"`
	DeepWindowHours   int           `mapstructure:"deep_window_hours"`
}

// ServerConfig holds the ops HTTP server configuration
type ServerConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	ReadTimeout  int    `mapstructure:"read_timeout"`  // in seconds
	WriteTimeout int    `mapstructure:"write_timeout"` // in seconds
	IdleTimeout  int    `mapstructure:"idle_timeout"`  // in seconds
}

// SyncdConfig holds configuration for the sync daemon
type SyncdConfig struct {
	BaseConfig `mapstructure:",squash"`
	Database   DatabaseConfig `mapstructure:"database"`
	NATS       NATSConfig     `mapstructure:"nats"`
	Ledger     LedgerConfig   `mapstructure:"ledger"`
	Sync       SyncConfig     `mapstructure:"sync"`
	Ranking    RankingConfig  `mapstructure:"ranking"`
	Schedule   ScheduleConfig `mapstructure:"schedule"`
	Server     ServerConfig   `mapstructure:"server"`
}

// SyncctlConfig holds configuration for the operator CLI
type SyncctlConfig struct {
	BaseConfig `mapstructure:",squash"`
	Database   DatabaseConfig `mapstructure:"database"`
	Ledger     LedgerConfig   `mapstructure:"ledger"`
	Sync       SyncConfig     `mapstructure:"sync"`
	Repair     RepairConfig   `mapstructure:"repair"`
}

// LoadSyncdConfig loads configuration for the sync daemon
func LoadSyncdConfig(configFile string, envPath string) (*SyncdConfig, error) {
	v := configureViper("syncd", configFile, envPath)

	// Set defaults
	setSharedDefaults(v)
	v.SetDefault("nats.max_reconnects", 10)
	v.SetDefault("nats.reconnect_wait", "2s")
	v.SetDefault("nats.stream_name", "PROJECTION_EVENTS")
	v.SetDefault("nats.connection_name", "syncd")
	v.SetDefault("ranking.quiet_period", "5s")
	v.SetDefault("schedule.tick_interval", "1m")
	v.SetDefault("schedule.recent_interval", "6h")
	v.SetDefault("schedule.deep_interval", "168h")
	v.SetDefault("schedule.streak_interval", "1h")
	v.SetDefault("schedule.recent_window_hours", 48)
	v.SetDefault("schedule.deep_window_hours", 168)
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 10)
	v.SetDefault("server.write_timeout", 10)
	v.SetDefault("server.idle_timeout", 120)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			// Config file not found, use environment variables
		} else {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config SyncdConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateShared(config.Database, config.Ledger); err != nil {
		return nil, err
	}

	return &config, nil
}

// LoadSyncctlConfig loads configuration for the operator CLI
func LoadSyncctlConfig(configFile string, envPath string) (*SyncctlConfig, error) {
	v := configureViper("syncctl", configFile, envPath)

	// Set defaults
	setSharedDefaults(v)
	v.SetDefault("repair.request_delay", "200ms")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			// Config file not found, use environment variables
		} else {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config SyncctlConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateShared(config.Database, config.Ledger); err != nil {
		return nil, err
	}

	return &config, nil
}

// setSharedDefaults sets the defaults common to both binaries
func setSharedDefaults(v *viper.Viper) {
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", "1h")
	v.SetDefault("database.conn_max_idle_time", "10m")
	v.SetDefault("ledger.seconds_per_block", 2)
	v.SetDefault("ledger.chunk_size", 100000)
	v.SetDefault("sync.batch_size", 50)
	v.SetDefault("sync.worker_pool_size", 10)
}

// validateShared checks the required fields of the shared sections
func validateShared(db DatabaseConfig, ledger LedgerConfig) error {
	if db.Host == "" {
		return errors.New("database.host is required")
	}
	if db.DBName == "" {
		return errors.New("database.dbname is required")
	}
	if ledger.RPCURL == "" {
		return errors.New("ledger.rpc_url is required")
	}
	if ledger.ContractAddress == "" {
		return errors.New("ledger.contract_address is required")
	}
	return nil
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
		// Search for config.yaml in multiple locations:
		// 1. Current directory
		v.AddConfigPath(".")
		// 2. Service-specific directory (e.g., cmd/syncd/, cmd/syncctl/)
		v.AddConfigPath(fmt.Sprintf("cmd/%s/", service))
		// 3. Config directory
		v.AddConfigPath("config/")
	}

	// Set environment variables
	v.SetEnvPrefix("BRND")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Explicitly bind all environment variables
	bindAllEnvVars(v)
	return v
}

// bindAllEnvVars explicitly binds all possible environment variables
// This is required for viper to map env vars to config struct fields when no config file exists
func bindAllEnvVars(v *viper.Viper) {
	commonKeys := []string{
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
		// NATS
		"nats.url",
		"nats.stream_name",
		"nats.max_reconnects",
		"nats.reconnect_wait",
		"nats.connection_name",
		// Ledger
		"ledger.rpc_url",
		"ledger.contract_address",
		"ledger.start_block",
		"ledger.seconds_per_block",
		"ledger.chunk_size",
		// Sync
		"sync.batch_size",
		"sync.worker_pool_size",
		"sync.season_two_start_day",
		// Ranking
		"ranking.quiet_period",
		// Repair
		"repair.request_delay",
		// Schedule
		"schedule.tick_interval",
		"schedule.recent_interval",
		"schedule.deep_interval",
		"schedule.streak_interval",
		"schedule.recent_window_hours",
		"schedule.deep_window_hours",
		// Server
		"server.host",
		"server.port",
		"server.read_timeout",
		"server.write_timeout",
		"server.idle_timeout",
	}

	for _, key := range commonKeys {
		_ = v.BindEnv(key)
	}
}

// loadEnv loads environment variables from the config directory
func loadEnv(envPath string, service string) {
	// Always try shared base first, then local, then optional per-service local.
	envFiles := []string{".env", ".env.local"}
	if service != "" {
		envFiles = append(envFiles, ".env."+service+".local")
	}

	// Default to config directory
	if envPath == "" {
		envPath = "config/"
	}

	for _, envFile := range envFiles {
		candidate := filepath.Join(envPath, envFile)
		_ = godotenv.Overload(candidate) // Overload lets later files override earlier ones
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
