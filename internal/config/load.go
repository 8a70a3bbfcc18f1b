package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Load reads configuration from environment variables and an optional
// config.yaml in the working directory. Environment variables take
// precedence over values from the config file and use the MIXFORGE_ prefix
// with underscores for nesting (e.g. MIXFORGE_SERVER_PORT, MIXFORGE_SUNO_API_KEY).
//
// A missing required value is a fatal configuration error surfaced before
// any component is constructed; it is never retried.
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix("MIXFORGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// The config file is optional; env-only deployments are the norm.
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Viper only binds env vars it has seen a key for, so register every
	// key we unmarshal into. Defaults above cover most; the rest are
	// explicitly bound here.
	for _, key := range []string{
		"server.port",
		"server.log_level",
		"server.public_base_url",
		"database.url",
		"redis.addr",
		"redis.password",
		"redis.db",
		"suno.api_key",
		"suno.base_url",
		"suno.request_timeout_seconds",
		"storage.uploads_bucket",
		"storage.stems_bucket",
		"storage.generated_bucket",
		"cleanup.page_size",
		"cleanup.max_docs_per_run",
		"cleanup.retention_days",
	} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind environment variable for %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// setDefaults registers defaults for settings that have a sensible value
// out of the box. Credentials, addresses, and bucket identifiers have no
// defaults on purpose: their absence must fail startup.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")

	v.SetDefault("redis.db", 0)

	v.SetDefault("suno.base_url", "https://api.kie.ai")
	v.SetDefault("suno.request_timeout_seconds", 30)

	v.SetDefault("cleanup.page_size", 100)
	v.SetDefault("cleanup.max_docs_per_run", 500)
	v.SetDefault("cleanup.retention_days", 30)
}
