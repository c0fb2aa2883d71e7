package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/spf13/viper"
)

// DefaultConfigFile is read when present; defaults and env vars apply otherwise.
const DefaultConfigFile = "./config/settings.yaml"

// Rate limit policy names
const (
	PolicyGlobal   = "global"
	PolicyGraphQL  = "graphql"
	PolicyPodcasts = "podcasts"
)

const defaultUpstreamURL = "http://localhost:3001"

var (
	once       sync.Once
	initErr    error
	configFile = DefaultConfigFile
)

// SetConfigFile overrides the config file location. It must be called before Init.
func SetConfigFile(path string) {
	configFile = path
}

// Init initializes the configuration system
// This should be called once at application startup
func Init() error {
	once.Do(func() {
		setDefaults()

		viper.SetEnvPrefix("GATEWAY")
		viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		viper.AutomaticEnv()
		bindLegacyEnv()

		path := filepath.Clean(configFile)
		viper.SetConfigFile(path)

		if err := viper.ReadInConfig(); err != nil {
			if !os.IsNotExist(err) {
				initErr = fmt.Errorf("error reading config file %s: %w", path, err)
				return
			}
		}

		cfg, err := GetConfig()
		if err != nil {
			initErr = err
			return
		}
		if err := cfg.Validate(); err != nil {
			initErr = fmt.Errorf("invalid configuration: %w", err)
		}
	})

	return initErr
}

// Reset clears viper state so Init can run again. Used by tests.
func Reset() {
	viper.Reset()
	once = sync.Once{}
	initErr = nil
	configFile = DefaultConfigFile
}

// GetConfig returns the current configuration as a struct
// Init() must be called before using this
func GetConfig() (*Config, error) {
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	return &config, nil
}

// GetString returns a string config value
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt returns an int config value
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetBool returns a bool config value
func GetBool(key string) bool {
	return viper.GetBool(key)
}

// GetDuration returns a time.Duration config value
func GetDuration(key string) time.Duration {
	return viper.GetDuration(key)
}

// Set overrides a config value, e.g. from a command line flag.
func Set(key string, value any) {
	viper.Set(key, value)
}

// bindLegacyEnv keeps the variable names of earlier deployments working.
func bindLegacyEnv() {
	_ = viper.BindEnv("upstream.base_url", "GATEWAY_UPSTREAM_BASE_URL", "PODCAST_API_URL")
	_ = viper.BindEnv("environment", "GATEWAY_ENVIRONMENT", "NODE_ENV")
	_ = viper.BindEnv("server.port", "GATEWAY_SERVER_PORT", "PORT")
}

// Validate validates a Config struct
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if err := validateUpstream(c); err != nil {
		return err
	}

	if c.RateLimiting.Enabled {
		switch c.RateLimiting.Store {
		case "memory", "redis", "sql":
		default:
			return fmt.Errorf("unknown rate limit store %q", c.RateLimiting.Store)
		}
		for name, p := range c.RateLimiting.Policies {
			if p.Window <= 0 || p.Max <= 0 {
				return fmt.Errorf("rate limit policy %q needs a positive window and max", name)
			}
		}
		if c.RateLimiting.Store == "sql" && c.Database.Path == "" {
			return fmt.Errorf("rate limit store sql requires database.path")
		}
	}

	if c.Tracing.Enabled {
		switch c.Tracing.Exporter {
		case "stdout", "otlp":
		default:
			return fmt.Errorf("unsupported trace exporter: %s", c.Tracing.Exporter)
		}
	}

	if c.Upstream.CountProbeLimit <= 0 {
		c.Upstream.CountProbeLimit = 10000
	}

	return nil
}

func validateUpstream(c *Config) error {
	raw := strings.TrimSpace(c.Upstream.BaseURL)
	if raw == "" {
		return fmt.Errorf("upstream.base_url is required")
	}

	u, err := url.Parse(raw)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("upstream.base_url must be an absolute http(s) URL, got %q", raw)
	}

	isProduction := c.Environment == "production" || c.Environment == "prod"
	if isProduction && raw == defaultUpstreamURL {
		return fmt.Errorf("upstream.base_url must be configured in production")
	}

	return nil
}

// setDefaults sets default configuration values
func setDefaults() {
	viper.SetDefault("environment", "development")

	// Server defaults
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 3000)
	viper.SetDefault("server.read_timeout", 30*time.Second)
	viper.SetDefault("server.write_timeout", 30*time.Second)
	viper.SetDefault("server.idle_timeout", 90*time.Second)
	viper.SetDefault("server.shutdown_timeout", 10*time.Second)
	viper.SetDefault("server.max_header_bytes", 1048576)
	viper.SetDefault("server.trusted_proxies", []string{})

	// Upstream catalog defaults
	viper.SetDefault("upstream.base_url", defaultUpstreamURL)
	viper.SetDefault("upstream.timeout", 10*time.Second)
	viper.SetDefault("upstream.count_probe_limit", 10000)
	viper.SetDefault("upstream.rate_limit", 0)
	viper.SetDefault("upstream.rate_burst", 10)
	viper.SetDefault("upstream.user_agent", "PodcastGateway/1.0")

	// Rate limiting defaults
	viper.SetDefault("rate_limiting.enabled", true)
	viper.SetDefault("rate_limiting.store", "memory")
	viper.SetDefault("rate_limiting.exempt_paths", []string{"/metrics"})
	viper.SetDefault("rate_limiting.policies."+PolicyGlobal+".window", 15*time.Minute)
	viper.SetDefault("rate_limiting.policies."+PolicyGlobal+".max", 100)
	viper.SetDefault("rate_limiting.policies."+PolicyGraphQL+".window", 10*time.Minute)
	viper.SetDefault("rate_limiting.policies."+PolicyGraphQL+".max", 50)
	viper.SetDefault("rate_limiting.policies."+PolicyPodcasts+".window", 5*time.Minute)
	viper.SetDefault("rate_limiting.policies."+PolicyPodcasts+".max", 30)
	viper.SetDefault("rate_limiting.redis.addr", "localhost:6379")
	viper.SetDefault("rate_limiting.redis.db", 0)
	viper.SetDefault("rate_limiting.redis.prefix", "gateway:ratelimit")

	// Security defaults
	viper.SetDefault("security.cors_origins", []string{
		"http://localhost:3000",
		"http://localhost:5173",
		"http://localhost:8080",
		"http://127.0.0.1:3000",
		"http://127.0.0.1:5173",
		"http://127.0.0.1:8080",
		"null", // pages opened from file://
	})
	viper.SetDefault("security.cors_methods", []string{"GET", "POST", "OPTIONS"})
	viper.SetDefault("security.cors_headers", []string{"Origin", "X-Requested-With", "Content-Type", "Accept", "Authorization"})
	viper.SetDefault("security.enable_request_id", true)
	viper.SetDefault("security.max_body_bytes", 1048576)

	// Logging defaults
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "json")
	viper.SetDefault("logging.output", "stdout")
	viper.SetDefault("logging.file_path", "./logs/gateway.log")
	viper.SetDefault("logging.max_size", 100)
	viper.SetDefault("logging.max_backups", 10)
	viper.SetDefault("logging.max_age", 30)
	viper.SetDefault("logging.compress", true)

	// Monitoring defaults
	viper.SetDefault("monitoring.enabled", true)
	viper.SetDefault("monitoring.metrics_path", "/metrics")

	// Tracing defaults
	viper.SetDefault("tracing.enabled", false)
	viper.SetDefault("tracing.exporter", "stdout")
	viper.SetDefault("tracing.otlp_endpoint", "localhost:4317")
	viper.SetDefault("tracing.sample_rate", 1.0)
	viper.SetDefault("tracing.service_name", "podcast-gateway")

	// Database defaults (SQL limiter store only)
	viper.SetDefault("database.path", "./data/ratelimit.db")
	viper.SetDefault("database.verbose", false)
}
