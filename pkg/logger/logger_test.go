package logger

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/killallgit/podcast-gateway/pkg/config"
)

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	prev := log.Logger
	prevLevel := zerolog.GlobalLevel()
	t.Cleanup(func() {
		log.Logger = prev
		zerolog.SetGlobalLevel(prevLevel)
	})

	var buf bytes.Buffer
	log.Logger = zerolog.New(&buf)
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	return &buf
}

func TestSetup(t *testing.T) {
	prev := log.Logger
	t.Cleanup(func() { log.Logger = prev })

	tests := []struct {
		name   string
		cfg    config.LoggingConfig
		level  zerolog.Level
		isFile bool
	}{
		{
			name:  "stdout json",
			cfg:   config.LoggingConfig{Level: "debug", Format: "json", Output: "stdout"},
			level: zerolog.DebugLevel,
		},
		{
			name:  "invalid level falls back to info",
			cfg:   config.LoggingConfig{Level: "loud", Format: "console", Output: "stdout"},
			level: zerolog.InfoLevel,
		},
		{
			name:   "file output",
			cfg:    config.LoggingConfig{Level: "warn", Format: "json", Output: "file", MaxSize: 1},
			level:  zerolog.WarnLevel,
			isFile: true,
		},
		{
			name:   "both outputs",
			cfg:    config.LoggingConfig{Level: "error", Format: "json", Output: "both", MaxSize: 1},
			level:  zerolog.ErrorLevel,
			isFile: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.cfg
			if tt.isFile {
				cfg.FilePath = filepath.Join(t.TempDir(), "logs", "gateway.log")
			}

			closer, err := Setup(cfg)
			require.NoError(t, err)
			defer closer.Close()

			assert.Equal(t, tt.level, zerolog.GlobalLevel())

			if tt.isFile {
				log.Error().Msg("written to file")
				_, err := os.Stat(cfg.FilePath)
				assert.NoError(t, err)
			}
		})
	}
}

func TestRequestLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name      string
		status    int
		wantLevel string
	}{
		{"success logs info", http.StatusOK, "info"},
		{"client error logs warn", http.StatusBadRequest, "warn"},
		{"server error logs error", http.StatusInternalServerError, "error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := captureLogs(t)

			router := gin.New()
			router.Use(func(c *gin.Context) {
				c.Set(RequestIDKey, "req-123")
				c.Next()
			})
			router.Use(RequestLogger())
			router.GET("/api/podcasts", func(c *gin.Context) {
				c.Status(tt.status)
			})

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/api/podcasts?page=2", nil)
			router.ServeHTTP(w, req)

			var entry map[string]interface{}
			require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
			assert.Equal(t, tt.wantLevel, entry["level"])
			assert.Equal(t, "/api/podcasts?page=2", entry["path"])
			assert.Equal(t, "req-123", entry["request_id"])
			assert.Equal(t, float64(tt.status), entry["status"])
		})
	}
}

func TestComponent(t *testing.T) {
	buf := captureLogs(t)

	l := Component("aggregator")
	l.Info().Msg("hello")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "aggregator", entry["component"])
}
