package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Google GoogleConfig `yaml:"google" mapstructure:"google"`
	Run    RunConfig    `yaml:"run" mapstructure:"run"`
	Cache  CacheConfig  `yaml:"cache" mapstructure:"cache"`
	Server ServerConfig `yaml:"server" mapstructure:"server"`
	Log    LogConfig    `yaml:"log" mapstructure:"log"`
}

// GoogleConfig holds Places API credentials and transport tuning.
type GoogleConfig struct {
	APIKey            string  `yaml:"api_key" mapstructure:"api_key"`
	BaseURL           string  `yaml:"base_url" mapstructure:"base_url"`
	Language          string  `yaml:"language" mapstructure:"language"`
	Region            string  `yaml:"region" mapstructure:"region"`
	TimeoutSecs       int     `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	RateLimitRPS      float64 `yaml:"rate_limit_rps" mapstructure:"rate_limit_rps"`
	MaxAttempts       int     `yaml:"max_attempts" mapstructure:"max_attempts"`
	RetryBaseDelayMs  int     `yaml:"retry_base_delay_ms" mapstructure:"retry_base_delay_ms"`
	RetryStepMs       int     `yaml:"retry_step_ms" mapstructure:"retry_step_ms"`
	PageTokenDelaySec int     `yaml:"page_token_delay_secs" mapstructure:"page_token_delay_secs"`
}

// RunConfig configures pipeline defaults.
type RunConfig struct {
	Country string `yaml:"country" mapstructure:"country"`
	Limit   int    `yaml:"limit" mapstructure:"limit"`
	Workers int    `yaml:"workers" mapstructure:"workers"`
}

// CacheConfig configures the in-run response memo cache.
type CacheConfig struct {
	TTLMinutes int `yaml:"ttl_minutes" mapstructure:"ttl_minutes"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("LEADGEN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// The key historically lives in GOOGLE_MAPS_API_KEY; accept both.
	_ = v.BindEnv("google.api_key", "LEADGEN_GOOGLE_API_KEY", "GOOGLE_MAPS_API_KEY")

	// Defaults
	v.SetDefault("google.base_url", "https://maps.googleapis.com/maps/api/place")
	v.SetDefault("google.language", "tr")
	v.SetDefault("google.region", "TR")
	v.SetDefault("google.timeout_secs", 30)
	v.SetDefault("google.rate_limit_rps", 10.0)
	v.SetDefault("google.max_attempts", 5)
	v.SetDefault("google.retry_base_delay_ms", 2000)
	v.SetDefault("google.retry_step_ms", 1000)
	v.SetDefault("google.page_token_delay_secs", 2)
	v.SetDefault("run.country", "Türkiye")
	v.SetDefault("run.limit", 60)
	v.SetDefault("run.workers", 1)
	v.SetDefault("cache.ttl_minutes", 60)
	v.SetDefault("server.port", 8080)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
