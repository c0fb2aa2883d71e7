package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/killallgit/podcast-gateway/pkg/config"
	"github.com/killallgit/podcast-gateway/pkg/logger"
)

var (
	configFile string

	appConfig *config.Config
	logCloser io.Closer
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "podcast-gateway",
	Short: "Podcast API gateway",
	Long: `Podcast API Gateway - REST and GraphQL access to an upstream podcast catalog

The gateway pages and searches the upstream catalog, adds total counts,
and protects it with per-client rate limits.

Features:
  • GET /api/podcasts with page, limit and search
  • GraphQL podcasts query on /graphql
  • Fixed-window rate limits backed by memory, Redis or SQLite
  • Prometheus metrics and OpenTelemetry tracing`,
	SilenceUsage:       true,
	PersistentPreRunE:  loadConfig,
	PersistentPostRunE: closeLogger,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// NewRootCmd creates a new root command (exported for testing)
func NewRootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default ./config/settings.yaml)")

	// Add persistent flags for logging configuration
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().Bool("json-logs", false, "enable JSON formatted logs")
}

// loadConfig loads the configuration and configures logging for commands
// that need it
func loadConfig(cmd *cobra.Command, args []string) error {
	if configFile != "" {
		config.SetConfigFile(configFile)
	}

	if err := config.Init(); err != nil {
		return fmt.Errorf("error initializing config: %w", err)
	}

	cfg, err := config.GetConfig()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	applyLogFlags(cmd, cfg)

	closer, err := logger.Setup(cfg.Logging)
	if err != nil {
		return fmt.Errorf("error configuring logging: %w", err)
	}

	appConfig = cfg
	logCloser = closer
	return nil
}

// applyLogFlags lets --log-level and --json-logs override the config file
func applyLogFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.Logging.Level, _ = flags.GetString("log-level")
	}
	if flags.Changed("json-logs") {
		if jsonLogs, _ := flags.GetBool("json-logs"); jsonLogs {
			cfg.Logging.Format = "json"
		} else {
			cfg.Logging.Format = "console"
		}
	}
}

func closeLogger(cmd *cobra.Command, args []string) error {
	if logCloser == nil {
		return nil
	}
	err := logCloser.Close()
	logCloser = nil
	return err
}
