package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrateCommand(t *testing.T) {
	tests := []struct {
		name           string
		args           []string
		expectedOutput string
	}{
		{
			name:           "migrate command with help",
			args:           []string{"migrate", "--help"},
			expectedOutput: "Manage the SQLite schema",
		},
		{
			name:           "migrate up subcommand",
			args:           []string{"migrate", "up", "--help"},
			expectedOutput: "Apply the rate limit schema",
		},
		{
			name:           "migrate status subcommand",
			args:           []string{"migrate", "status", "--help"},
			expectedOutput: "Display the current status",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetConfig(t)

			output, err := execute(t, tt.args...)

			require.NoError(t, err)
			assert.Contains(t, output, tt.expectedOutput)
		})
	}
}

func TestMigrate_UpAndStatus(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "ratelimit.db")
	t.Setenv("GATEWAY_DATABASE_PATH", dbPath)

	resetConfig(t)
	output, err := execute(t, "migrate", "up", "--dry-run")
	require.NoError(t, err)
	assert.Contains(t, output, "Dry run mode")
	_, statErr := os.Stat(dbPath)
	assert.True(t, os.IsNotExist(statErr))

	resetConfig(t)
	output, err = execute(t, "migrate", "status", "--dry-run=false")
	require.NoError(t, err)
	assert.Contains(t, output, "rate_limit_windows: pending")

	resetConfig(t)
	output, err = execute(t, "migrate", "up", "--dry-run=false")
	require.NoError(t, err)
	assert.Contains(t, output, "Migrated rate_limit_windows in "+dbPath)

	resetConfig(t)
	output, err = execute(t, "migrate", "status")
	require.NoError(t, err)
	assert.Contains(t, output, "rate_limit_windows: applied (0 windows)")
}
