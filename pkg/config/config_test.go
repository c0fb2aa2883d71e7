package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(t *testing.T)
		wantErr bool
		check   func(t *testing.T)
	}{
		{
			name: "load from settings file",
			setup: func(t *testing.T) {
				content := `
server:
  host: "127.0.0.1"
  port: 8080
upstream:
  base_url: "https://catalog.example.com/api"
`
				path := filepath.Join(t.TempDir(), "settings.yaml")
				require.NoError(t, os.WriteFile(path, []byte(content), 0644))
				SetConfigFile(path)
			},
			check: func(t *testing.T) {
				assert.Equal(t, 8080, GetInt("server.port"))
				assert.Equal(t, "https://catalog.example.com/api", GetString("upstream.base_url"))
			},
		},
		{
			name: "environment variable override",
			setup: func(t *testing.T) {
				content := `
server:
  port: 8080
`
				path := filepath.Join(t.TempDir(), "settings.yaml")
				require.NoError(t, os.WriteFile(path, []byte(content), 0644))
				SetConfigFile(path)
				t.Setenv("GATEWAY_SERVER_PORT", "9090")
			},
			check: func(t *testing.T) {
				assert.Equal(t, 9090, GetInt("server.port"))
			},
		},
		{
			name: "legacy upstream variable",
			setup: func(t *testing.T) {
				SetConfigFile(filepath.Join(t.TempDir(), "missing.yaml"))
				t.Setenv("PODCAST_API_URL", "http://legacy.example.com")
			},
			check: func(t *testing.T) {
				assert.Equal(t, "http://legacy.example.com", GetString("upstream.base_url"))
			},
		},
		{
			name: "missing config file with defaults",
			setup: func(t *testing.T) {
				SetConfigFile(filepath.Join(t.TempDir(), "missing.yaml"))
			},
			check: func(t *testing.T) {
				assert.Equal(t, 3000, GetInt("server.port"))
				assert.Equal(t, 15*time.Minute, GetDuration("rate_limiting.policies.global.window"))
				assert.Equal(t, 50, GetInt("rate_limiting.policies.graphql.max"))
				assert.Equal(t, 30, GetInt("rate_limiting.policies.podcasts.max"))

				cfg, err := GetConfig()
				require.NoError(t, err)
				assert.Equal(t, 10000, cfg.Upstream.CountProbeLimit)
				assert.Contains(t, cfg.Security.CORSOrigins, "http://localhost:3000")
				assert.Contains(t, cfg.Security.CORSOrigins, "null")
				assert.Equal(t, 5*time.Minute, cfg.RateLimiting.Policies[PolicyPodcasts].Window)
				assert.True(t, cfg.IsDevelopment())
			},
		},
		{
			name: "invalid store rejected",
			setup: func(t *testing.T) {
				SetConfigFile(filepath.Join(t.TempDir(), "missing.yaml"))
				t.Setenv("GATEWAY_RATE_LIMITING_STORE", "etcd")
			},
			wantErr: true,
		},
		{
			name: "production requires upstream url",
			setup: func(t *testing.T) {
				SetConfigFile(filepath.Join(t.TempDir(), "missing.yaml"))
				t.Setenv("GATEWAY_ENVIRONMENT", "production")
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			Reset()
			t.Cleanup(Reset)
			for _, key := range []string{"PORT", "NODE_ENV", "PODCAST_API_URL"} {
				t.Setenv(key, "")
			}
			tt.setup(t)

			err := Init()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)

			if tt.check != nil {
				tt.check(t)
			}
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Environment: "development",
			Server:      ServerConfig{Host: "localhost", Port: 3000},
			Upstream:    UpstreamConfig{BaseURL: "http://catalog.local"},
			RateLimiting: RateLimitConfig{
				Enabled: true,
				Store:   "memory",
				Policies: map[string]PolicyConfig{
					PolicyGlobal: {Window: time.Minute, Max: 10},
				},
			},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "valid config", mutate: func(c *Config) {}},
		{name: "invalid port", mutate: func(c *Config) { c.Server.Port = 0 }, wantErr: true},
		{name: "empty upstream", mutate: func(c *Config) { c.Upstream.BaseURL = "" }, wantErr: true},
		{name: "relative upstream", mutate: func(c *Config) { c.Upstream.BaseURL = "/podcasts" }, wantErr: true},
		{name: "ftp upstream", mutate: func(c *Config) { c.Upstream.BaseURL = "ftp://catalog.local" }, wantErr: true},
		{
			name:    "zero policy window",
			mutate:  func(c *Config) { c.RateLimiting.Policies[PolicyGlobal] = PolicyConfig{Max: 10} },
			wantErr: true,
		},
		{
			name:    "sql store without database path",
			mutate:  func(c *Config) { c.RateLimiting.Store = "sql" },
			wantErr: true,
		},
		{
			name:   "disabled limiter ignores store",
			mutate: func(c *Config) { c.RateLimiting.Enabled = false; c.RateLimiting.Store = "bogus" },
		},
		{
			name:    "unknown trace exporter",
			mutate:  func(c *Config) { c.Tracing = TracingConfig{Enabled: true, Exporter: "zipkin"} },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Config.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_ValidateDefaultsProbeLimit(t *testing.T) {
	cfg := &Config{
		Server:   ServerConfig{Port: 3000},
		Upstream: UpstreamConfig{BaseURL: "http://catalog.local"},
	}
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 10000, cfg.Upstream.CountProbeLimit)
}
