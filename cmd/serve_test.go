package cmd

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/killallgit/podcast-gateway/pkg/config"
)

func TestServeCommand_Help(t *testing.T) {
	resetConfig(t)

	output, err := execute(t, "serve", "--help")

	require.NoError(t, err)
	assert.Contains(t, output, "Start the Podcast API Gateway")
}

func TestServeCommand_InvalidPort(t *testing.T) {
	resetConfig(t)

	_, err := execute(t, "serve", "--port", "invalid")

	assert.Error(t, err)
}

func TestServeCommand_GracefulShutdown(t *testing.T) {
	resetConfig(t)
	t.Setenv("GATEWAY_LOGGING_LEVEL", "error")

	// An already cancelled context stops the server right after it starts
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cmd := NewRootCmd()
	cmd.SetArgs([]string{"serve", "--host", "127.0.0.1", "--port", "0"})
	err := cmd.ExecuteContext(ctx)
	cmd.SetContext(context.Background())

	assert.NoError(t, err)
}

func TestBuildDependencies(t *testing.T) {
	tests := []struct {
		name        string
		enabled     bool
		store       string
		wantErr     bool
		wantLimiter bool
	}{
		{"memory store", true, "memory", false, true},
		{"rate limiting disabled", false, "memory", false, false},
		{"unknown store", true, "etcd", true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{
				Upstream:     config.UpstreamConfig{BaseURL: "http://127.0.0.1:1"},
				RateLimiting: config.RateLimitConfig{Enabled: tt.enabled, Store: tt.store},
			}

			deps, cleanup, err := buildDependencies(context.Background(), cfg, nil)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			defer cleanup()

			assert.NotNil(t, deps.Aggregator)
			assert.Same(t, cfg, deps.Config)
			assert.Equal(t, tt.wantLimiter, deps.Limiter != nil)
			if tt.wantLimiter {
				assert.Len(t, deps.Policies, 3)
			}
		})
	}
}
