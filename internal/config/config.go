package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/rx3lixir/bodykit/internal/opensearch/client"
	"github.com/rx3lixir/bodykit/pkg/logger"
)

// Config is the full runtime configuration, loaded from a YAML file
// with BODYKIT_* environment overrides.
type Config struct {
	Environment string        `mapstructure:"environment" validate:"required,oneof=dev staging prod"`
	Logger      logger.Config `mapstructure:"logger"`
	OpenSearch  client.Config `mapstructure:"opensearch"`
	Metrics     Metrics       `mapstructure:"metrics"`
	Health      Health        `mapstructure:"health"`
}

type Metrics struct {
	Enabled bool   `mapstructure:"enabled"`
	Addr    string `mapstructure:"addr"`
}

type Health struct {
	Enabled bool   `mapstructure:"enabled"`
	Addr    string `mapstructure:"addr"`
}

// Load reads configuration from the given file path. An empty path
// falls back to defaults plus environment variables.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("BODYKIT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("environment", "dev")

	v.SetDefault("logger.level", "debug")
	v.SetDefault("logger.encoding", "console")

	defaults := client.DefaultConfig()
	v.SetDefault("opensearch.url", defaults.URL)
	v.SetDefault("opensearch.index_name", defaults.IndexName)
	v.SetDefault("opensearch.timeout", defaults.Timeout)
	v.SetDefault("opensearch.max_retries", defaults.MaxRetries)
	v.SetDefault("opensearch.max_idle_conns", defaults.MaxIdleConns)
	v.SetDefault("opensearch.retry_on_status", defaults.RetryOnStatus)

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.addr", ":8091")

	v.SetDefault("health.enabled", true)
	v.SetDefault("health.addr", ":8092")
}
