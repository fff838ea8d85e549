package config

import (
	"log"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Log       LogConfig       `mapstructure:"log"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Database  DatabaseConfig  `mapstructure:"database"`
	RateLimit RateLimitConfig `mapstructure:"ratelimit"`
	Throttle  ThrottleConfig  `mapstructure:"throttle"`
	Cache     CacheConfig     `mapstructure:"cache"`
	Pricing   PricingConfig   `mapstructure:"pricing"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
	Audit     AuditConfig     `mapstructure:"audit"`
}

type ServerConfig struct {
	Port string `mapstructure:"port"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type DatabaseConfig struct {
	DSN string `mapstructure:"dsn"`
}

type RateLimitConfig struct {
	CatalogPerHour int `mapstructure:"catalog_per_hour"`
	PricingPerHour int `mapstructure:"pricing_per_hour"`
}

// ThrottleConfig bounds total request throughput in front of the
// per-client hourly windows.
type ThrottleConfig struct {
	RPS   float64 `mapstructure:"rps"`
	Burst int     `mapstructure:"burst"`
}

type CacheConfig struct {
	TTLMinutes int `mapstructure:"ttl_minutes"`
}

type PricingConfig struct {
	VATRate            float64 `mapstructure:"vat_rate"`
	QuoteValidityHours int     `mapstructure:"quote_validity_hours"`
	DefaultPostcode    string  `mapstructure:"default_postcode"`
	StockSeed          int64   `mapstructure:"stock_seed"` // 0 = non-deterministic
}

type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

type AuditConfig struct {
	Dir string `mapstructure:"dir"`
}

func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./configs")

	// Environment variables support
	// e.g. MATGATE_RATELIMIT_PRICING_PER_HOUR
	viper.SetEnvPrefix("matgate")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Defaults
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("log.level", "info")
	viper.SetDefault("ratelimit.catalog_per_hour", 1000)
	viper.SetDefault("ratelimit.pricing_per_hour", 500)
	viper.SetDefault("throttle.rps", 200.0)
	viper.SetDefault("throttle.burst", 400)
	viper.SetDefault("cache.ttl_minutes", 10)
	viper.SetDefault("pricing.vat_rate", 0.20)
	viper.SetDefault("pricing.quote_validity_hours", 2)
	viper.SetDefault("pricing.default_postcode", "SW1A 1AA")
	viper.SetDefault("pricing.stock_seed", 0)
	viper.SetDefault("metrics.enabled", true)
	viper.SetDefault("metrics.path", "/metrics")
	viper.SetDefault("audit.dir", "./logs")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Println("No config file found, using defaults and env vars")
		} else {
			return nil, err
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
