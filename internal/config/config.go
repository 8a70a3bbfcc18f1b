package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Redis    RedisConfig    `mapstructure:"redis"    validate:"required"`
	Suno     SunoConfig     `mapstructure:"suno"     validate:"required"`
	Storage  StorageConfig  `mapstructure:"storage"  validate:"required"`
	Cleanup  CleanupConfig  `mapstructure:"cleanup"  validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`

	// PublicBaseURL is the externally reachable address of this deployment.
	// The relay derives the provider callback URL from it, so it must be
	// routable from the provider's network, not localhost.
	PublicBaseURL string `mapstructure:"public_base_url" validate:"required,url"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required"`
}

// RedisConfig contains connection settings for the status cache.
type RedisConfig struct {
	Addr     string `mapstructure:"addr" validate:"required"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db" validate:"gte=0"`
}

// SunoConfig contains settings for the upstream generation provider.
type SunoConfig struct {
	APIKey  string `mapstructure:"api_key"  validate:"required"`
	BaseURL string `mapstructure:"base_url" validate:"required,url"`

	// RequestTimeoutSeconds bounds each round trip to the provider.
	// Submission and status pulls are independent calls with no retries,
	// so this is the worst-case latency a caller can observe per request.
	RequestTimeoutSeconds int `mapstructure:"request_timeout_seconds" validate:"required,gt=0"`
}

// StorageConfig identifies the blob buckets the cleanup sweep cascades into.
type StorageConfig struct {
	UploadsBucket   string `mapstructure:"uploads_bucket"   validate:"required"`
	StemsBucket     string `mapstructure:"stems_bucket"     validate:"required"`
	GeneratedBucket string `mapstructure:"generated_bucket" validate:"required"`
}

// CleanupConfig contains the retention sweep tuning knobs.
type CleanupConfig struct {
	PageSize      int `mapstructure:"page_size"        validate:"required,gt=0"`
	MaxDocsPerRun int `mapstructure:"max_docs_per_run" validate:"required,gt=0"`
	RetentionDays int `mapstructure:"retention_days"   validate:"required,gt=0"`
}
