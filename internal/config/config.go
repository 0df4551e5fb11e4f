package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
)

// Config holds all application configuration
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Logging   LoggingConfig
	Security  SecurityConfig
	Providers ProvidersConfig
	Sync      SyncConfig
	Policy    PolicyConfig
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	FrontendURL     string
	Environment     string
	RateLimit       float64 // requests per second per client
	RateBurst       int
}

// DatabaseConfig contains database configuration
type DatabaseConfig struct {
	Driver          string
	Host            string
	Port            int
	Name            string
	User            string
	Password        string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	// For SQLite
	Path string
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level      string
	Format     string // json or console
	OutputPath string
}

// SecurityConfig contains the material used to seal stored credentials
type SecurityConfig struct {
	CredentialsKey  string
	CredentialsSalt string
}

// ProvidersConfig controls which provider backends are wired
type ProvidersConfig struct {
	LocalDataDir string
	LiveEnabled  bool
	CallTimeout  time.Duration
}

// SyncConfig controls scheduled synchronization
type SyncConfig struct {
	Enabled      bool
	Schedule     string // cron expression
	LookbackDays int
}

// PolicyConfig holds the tunable constants of correlation and recommendations
type PolicyConfig struct {
	FallbackShare        float64
	FallbackMinResources int
	UnderutilizedBelow   float64
	UnderutilizedShare   float64
	StorageShare         float64
	ReservedMinCost      float64
	ReservedShare        float64
	NetworkShare         float64
	NetworkMinSavings    float64
	DevTestShare         float64
	DevTestMinSavings    float64
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists (ignore errors as it's optional)
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Host:            getEnv("SERVER_HOST", "0.0.0.0"),
			Port:            getEnvAsInt("SERVER_PORT", 8080),
			ReadTimeout:     getEnvAsDuration("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout:    getEnvAsDuration("SERVER_WRITE_TIMEOUT", 60*time.Second),
			ShutdownTimeout: getEnvAsDuration("SERVER_SHUTDOWN_TIMEOUT", 30*time.Second),
			FrontendURL:     getEnv("FRONTEND_URL", "http://localhost:5173"),
			Environment:     getEnv("ENVIRONMENT", "development"),
			RateLimit:       getEnvAsFloat("RATE_LIMIT_RPS", 10),
			RateBurst:       getEnvAsInt("RATE_LIMIT_BURST", 20),
		},
		Database: DatabaseConfig{
			Driver:          getEnv("DB_DRIVER", "sqlite"),
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnvAsInt("DB_PORT", 5432),
			Name:            getEnv("DB_NAME", "spendlens"),
			User:            getEnv("DB_USER", ""),
			Password:        getEnv("DB_PASSWORD", ""),
			SSLMode:         getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:    getEnvAsInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getEnvAsInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvAsDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute),
			Path:            getEnv("DB_PATH", "./spendlens.db"),
		},
		Logging: LoggingConfig{
			Level:      getEnv("LOG_LEVEL", "info"),
			Format:     getEnv("LOG_FORMAT", "json"),
			OutputPath: getEnv("LOG_OUTPUT", "stdout"),
		},
		Security: SecurityConfig{
			CredentialsKey:  getEnv("CREDENTIALS_KEY", ""),
			CredentialsSalt: getEnv("CREDENTIALS_SALT", "spendlens-credentials"),
		},
		Providers: ProvidersConfig{
			LocalDataDir: getEnv("PROVIDER_LOCAL_DATA_DIR", "./data/local"),
			LiveEnabled:  getEnvAsBool("PROVIDER_LIVE_ENABLED", false),
			CallTimeout:  getEnvAsDuration("PROVIDER_CALL_TIMEOUT", 45*time.Second),
		},
		Sync: SyncConfig{
			Enabled:      getEnvAsBool("SYNC_ENABLED", true),
			Schedule:     getEnv("SYNC_SCHEDULE", "0 */6 * * *"),
			LookbackDays: getEnvAsInt("SYNC_LOOKBACK_DAYS", 30),
		},
		Policy: PolicyConfig{
			FallbackShare:        getEnvAsFloat("POLICY_FALLBACK_SHARE", 0.1),
			FallbackMinResources: getEnvAsInt("POLICY_FALLBACK_MIN_RESOURCES", 10),
			UnderutilizedBelow:   getEnvAsFloat("POLICY_UNDERUTILIZED_BELOW", 30),
			UnderutilizedShare:   getEnvAsFloat("POLICY_UNDERUTILIZED_SHARE", 0.4),
			StorageShare:         getEnvAsFloat("POLICY_STORAGE_SHARE", 0.2),
			ReservedMinCost:      getEnvAsFloat("POLICY_RESERVED_MIN_COST", 1000),
			ReservedShare:        getEnvAsFloat("POLICY_RESERVED_SHARE", 0.15),
			NetworkShare:         getEnvAsFloat("POLICY_NETWORK_SHARE", 0.1),
			NetworkMinSavings:    getEnvAsFloat("POLICY_NETWORK_MIN_SAVINGS", 100),
			DevTestShare:         getEnvAsFloat("POLICY_DEV_TEST_SHARE", 0.3),
			DevTestMinSavings:    getEnvAsFloat("POLICY_DEV_TEST_MIN_SAVINGS", 200),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Database.Driver != "sqlite" && c.Database.Driver != "postgres" {
		return fmt.Errorf("unsupported database driver: %s", c.Database.Driver)
	}

	if c.Security.CredentialsKey == "" && c.Server.Environment == "production" {
		return fmt.Errorf("CREDENTIALS_KEY must be set in production")
	}

	if c.Sync.LookbackDays < 1 {
		return fmt.Errorf("SYNC_LOOKBACK_DAYS must be at least 1, got %d", c.Sync.LookbackDays)
	}

	if c.Sync.Enabled {
		if _, err := cron.ParseStandard(c.Sync.Schedule); err != nil {
			return fmt.Errorf("invalid SYNC_SCHEDULE %q: %w", c.Sync.Schedule, err)
		}
	}

	shares := map[string]float64{
		"POLICY_FALLBACK_SHARE":      c.Policy.FallbackShare,
		"POLICY_UNDERUTILIZED_SHARE": c.Policy.UnderutilizedShare,
		"POLICY_STORAGE_SHARE":       c.Policy.StorageShare,
		"POLICY_RESERVED_SHARE":      c.Policy.ReservedShare,
		"POLICY_NETWORK_SHARE":       c.Policy.NetworkShare,
		"POLICY_DEV_TEST_SHARE":      c.Policy.DevTestShare,
	}
	for name, v := range shares {
		if v < 0 || v > 1 {
			return fmt.Errorf("%s must be between 0 and 1, got %v", name, v)
		}
	}

	if c.Policy.FallbackMinResources < 1 {
		return fmt.Errorf("POLICY_FALLBACK_MIN_RESOURCES must be at least 1")
	}

	return nil
}

// CredentialsKey returns the sealing passphrase, falling back to a fixed
// development key outside production.
func (c *Config) CredentialsKey() string {
	if c.Security.CredentialsKey != "" {
		return c.Security.CredentialsKey
	}
	return "spendlens-development-key"
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
