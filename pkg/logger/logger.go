// Package logger configures the global zerolog logger and provides the gin
// request logging middleware.
package logger

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/killallgit/podcast-gateway/pkg/config"
)

// RequestIDKey is the gin context key holding the request id.
const RequestIDKey = "request_id"

// Setup configures the global zerolog logger from the logging config.
// The returned closer flushes the rotating file writer, if one was opened.
func Setup(cfg config.LoggingConfig) (io.Closer, error) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339

	var (
		writers []io.Writer
		closer  io.Closer = nopCloser{}
	)

	switch cfg.Output {
	case "file", "both":
		fileWriter, err := buildFileWriter(cfg)
		if err != nil {
			return nil, err
		}
		closer = fileWriter
		writers = append(writers, fileWriter)
		if cfg.Output == "both" {
			writers = append(writers, buildStdoutWriter(cfg.Format))
		}
	default:
		writers = append(writers, buildStdoutWriter(cfg.Format))
	}

	log.Logger = zerolog.New(io.MultiWriter(writers...)).With().Timestamp().Logger()

	log.Debug().
		Str("level", level.String()).
		Str("format", cfg.Format).
		Str("output", cfg.Output).
		Msg("Logger initialized")

	return closer, nil
}

func buildStdoutWriter(format string) io.Writer {
	if format == "console" {
		return zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: "2006-01-02 15:04:05",
		}
	}
	return os.Stdout
}

func buildFileWriter(cfg config.LoggingConfig) (*lumberjack.Logger, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.FilePath), 0755); err != nil {
		return nil, err
	}

	return &lumberjack.Logger{
		Filename:   cfg.FilePath,
		MaxSize:    cfg.MaxSize,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAge,
		Compress:   cfg.Compress,
	}, nil
}

// Component returns a logger tagged with the given component name.
func Component(name string) zerolog.Logger {
	return log.With().Str("component", name).Logger()
}

// FromContext returns a logger carrying the request id of the gin context.
func FromContext(c *gin.Context) zerolog.Logger {
	return log.With().Str("request_id", c.GetString(RequestIDKey)).Logger()
}

// RequestLogger returns a gin middleware for request logging
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		if raw := c.Request.URL.RawQuery; raw != "" {
			path = path + "?" + raw
		}

		c.Next()

		status := c.Writer.Status()
		event := log.Info()
		if status >= 500 {
			event = log.Error()
		} else if status >= 400 {
			event = log.Warn()
		}

		event.
			Str("request_id", c.GetString(RequestIDKey)).
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("client_ip", c.ClientIP()).
			Int("response_size", c.Writer.Size()).
			Str("user_agent", c.Request.UserAgent()).
			Msg("HTTP request")

		for _, e := range c.Errors {
			log.Error().
				Str("request_id", c.GetString(RequestIDKey)).
				Err(e.Err).
				Msg("Request error")
		}
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
