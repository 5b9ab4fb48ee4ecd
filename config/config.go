// Package config provides configuration management for the freight rate service.
//
// Every setting has a default, can be overridden by an environment variable of
// the same name (PORT, MONGODB_URI, ...) and, with LoadFile, by a YAML or JSON
// file using the lower-case key names. Environment wins over the file.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

// Config holds the complete application configuration.
type Config struct {
	Server   ServerConfig
	Cache    CacheConfig
	Database DatabaseConfig
	Redis    RedisConfig
	History  HistoryConfig
	Catalog  CatalogConfig
	Rating   RatingConfig
	Log      LogConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port           string
	RateLimit      int
	RateWindow     time.Duration
	RequestTimeout time.Duration
	CORSOrigins    []string
	SwaggerUser    string
	SwaggerPass    string
}

// CacheConfig holds the in-process cache configuration.
type CacheConfig struct {
	// Size and TTL bound the provider data cache.
	Size int
	TTL  time.Duration
	// QuoteTTL is how long a computed quote response is reused.
	QuoteTTL time.Duration
}

// DatabaseConfig holds MongoDB configuration.
type DatabaseConfig struct {
	URI          string
	DatabaseName string
	QuotesTTL    time.Duration
	Enabled      bool
	// CircuitBreaker configuration
	CircuitBreakerFailureThreshold int
	CircuitBreakerSuccessThreshold int
	CircuitBreakerTimeout          time.Duration
}

// RedisConfig holds the shared quote cache configuration.
type RedisConfig struct {
	Enabled   bool
	Addr      string
	Password  string
	DB        int
	KeyPrefix string
}

// HistoryConfig holds the asynchronous quote history configuration.
type HistoryConfig struct {
	Enabled    bool
	Workers    int
	BufferSize int
}

// CatalogConfig points at a JSON provider file used when MongoDB is disabled.
type CatalogConfig struct {
	File string
}

// RatingConfig holds rating defaults.
type RatingConfig struct {
	DefaultResidential bool
	DefaultDimDivisor  int
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string
	Pretty bool
}

var defaults = map[string]interface{}{
	"port":            "8080",
	"rate_limit":      100,
	"rate_window":     time.Minute,
	"request_timeout": 30 * time.Second,
	"cors_origins":    "",
	"swagger_user":    "",
	"swagger_pass":    "",

	"cache_size":      1000,
	"cache_ttl":       5 * time.Minute,
	"quote_cache_ttl": time.Minute,

	"mongodb_uri":                       "mongodb://localhost:27017",
	"mongodb_database":                  "freight_rates",
	"mongodb_quotes_ttl":                30 * 24 * time.Hour,
	"mongodb_enabled":                   false,
	"circuit_breaker_failure_threshold": 5,
	"circuit_breaker_success_threshold": 2,
	"circuit_breaker_timeout":           30 * time.Second,

	"redis_enabled":    false,
	"redis_addr":       "localhost:6379",
	"redis_password":   "",
	"redis_db":         0,
	"redis_key_prefix": "freight:quote:",

	"history_enabled":     true,
	"history_workers":     2,
	"history_buffer_size": 1000,

	"catalog_file": "",

	"default_residential":  true,
	"default_dim_divisor": 250,

	"log_level":  "info",
	"log_pretty": false,
}

// Load creates a Config from defaults and environment variables.
func Load() Config {
	return build(newViper())
}

// LoadFile creates a Config from defaults, the file at path and environment variables.
func LoadFile(path string) (Config, error) {
	v := newViper()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	return build(v), nil
}

func newViper() *viper.Viper {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()
	return v
}

func build(v *viper.Viper) Config {
	r := reader{v: v}
	return Config{
		Server: ServerConfig{
			Port:           r.string("port"),
			RateLimit:      r.int("rate_limit"),
			RateWindow:     r.duration("rate_window"),
			RequestTimeout: r.duration("request_timeout"),
			CORSOrigins:    parseCORSOrigins(r.string("cors_origins")),
			SwaggerUser:    r.string("swagger_user"),
			SwaggerPass:    r.string("swagger_pass"),
		},
		Cache: CacheConfig{
			Size:     r.int("cache_size"),
			TTL:      r.duration("cache_ttl"),
			QuoteTTL: r.duration("quote_cache_ttl"),
		},
		Database: DatabaseConfig{
			URI:                            r.string("mongodb_uri"),
			DatabaseName:                   r.string("mongodb_database"),
			QuotesTTL:                      r.duration("mongodb_quotes_ttl"),
			Enabled:                        r.bool("mongodb_enabled"),
			CircuitBreakerFailureThreshold: r.int("circuit_breaker_failure_threshold"),
			CircuitBreakerSuccessThreshold: r.int("circuit_breaker_success_threshold"),
			CircuitBreakerTimeout:          r.duration("circuit_breaker_timeout"),
		},
		Redis: RedisConfig{
			Enabled:   r.bool("redis_enabled"),
			Addr:      r.string("redis_addr"),
			Password:  r.string("redis_password"),
			DB:        r.int("redis_db"),
			KeyPrefix: r.string("redis_key_prefix"),
		},
		History: HistoryConfig{
			Enabled:    r.bool("history_enabled"),
			Workers:    r.int("history_workers"),
			BufferSize: r.int("history_buffer_size"),
		},
		Catalog: CatalogConfig{
			File: r.string("catalog_file"),
		},
		Rating: RatingConfig{
			DefaultResidential: r.bool("default_residential"),
			DefaultDimDivisor:  r.int("default_dim_divisor"),
		},
		Log: LogConfig{
			Level:  r.string("log_level"),
			Pretty: r.bool("log_pretty"),
		},
	}
}

// reader falls back to the default when a value does not parse.
type reader struct {
	v *viper.Viper
}

func (r reader) string(key string) string {
	if s := strings.TrimSpace(r.v.GetString(key)); s != "" {
		return s
	}
	return cast.ToString(defaults[key])
}

func (r reader) int(key string) int {
	if i, err := cast.ToIntE(r.v.Get(key)); err == nil {
		return i
	}
	return cast.ToInt(defaults[key])
}

func (r reader) bool(key string) bool {
	if b, err := cast.ToBoolE(r.v.Get(key)); err == nil {
		return b
	}
	return cast.ToBool(defaults[key])
}

func (r reader) duration(key string) time.Duration {
	if d, err := cast.ToDurationE(r.v.Get(key)); err == nil {
		return d
	}
	return cast.ToDuration(defaults[key])
}

func parseCORSOrigins(s string) []string {
	// Default origins for local development
	defaults := []string{
		"http://localhost:3000",
		"http://127.0.0.1:3000",
	}
	if s == "" {
		return defaults
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts)+len(defaults))
	result = append(result, defaults...)
	for _, p := range parts {
		if origin := strings.TrimSpace(p); origin != "" {
			result = append(result, origin)
		}
	}
	return result
}
