package cmd

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/killallgit/podcast-gateway/pkg/config"
)

// resetConfig gives each command run a fresh config load
func resetConfig(t *testing.T) {
	t.Helper()
	config.Reset()
	t.Cleanup(config.Reset)
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestRootCommand(t *testing.T) {
	tests := []struct {
		name           string
		args           []string
		wantErr        bool
		expectedOutput string
	}{
		{
			name:           "root command without args shows help",
			args:           []string{},
			expectedOutput: "Podcast API Gateway",
		},
		{
			name:           "root command with --help",
			args:           []string{"--help"},
			expectedOutput: "Available Commands:",
		},
		{
			name:    "root command with invalid flag",
			args:    []string{"--invalid-flag"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetConfig(t)

			output, err := execute(t, tt.args...)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Contains(t, output, tt.expectedOutput)
		})
	}
}

func TestLogFlags(t *testing.T) {
	cmd := NewRootCmd()

	logFlag := cmd.PersistentFlags().Lookup("log-level")
	require.NotNil(t, logFlag)
	assert.Equal(t, "info", logFlag.DefValue)

	assert.NotNil(t, cmd.PersistentFlags().Lookup("json-logs"))
	assert.NotNil(t, cmd.PersistentFlags().Lookup("config"))
}

func TestApplyLogFlags(t *testing.T) {
	tests := []struct {
		name       string
		args       []string
		wantLevel  string
		wantFormat string
	}{
		{"no flags keep config", nil, "warn", "console"},
		{"log level", []string{"--log-level", "debug"}, "debug", "console"},
		{"json logs", []string{"--json-logs"}, "warn", "json"},
		{"json logs off", []string{"--json-logs=false"}, "warn", "console"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := &cobra.Command{Use: "test"}
			cmd.Flags().String("log-level", "info", "")
			cmd.Flags().Bool("json-logs", false, "")
			require.NoError(t, cmd.ParseFlags(tt.args))

			cfg := &config.Config{Logging: config.LoggingConfig{Level: "warn", Format: "console"}}
			applyLogFlags(cmd, cfg)

			assert.Equal(t, tt.wantLevel, cfg.Logging.Level)
			assert.Equal(t, tt.wantFormat, cfg.Logging.Format)
		})
	}
}

func TestLoadConfig_InvalidConfig(t *testing.T) {
	resetConfig(t)
	t.Setenv("GATEWAY_ENVIRONMENT", "production")

	_, err := execute(t, "migrate", "status")

	assert.Error(t, err)
}
