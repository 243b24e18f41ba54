package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"mtdstore-client/config"
	"mtdstore-client/internal/api"
)

var rootCmd = &cobra.Command{
	Use:   "mtdstore",
	Short: "Terminal client for the MTD Store produce marketplace",
	Long: `mtdstore talks to an MTD Store marketplace server. Run it without
arguments for the interactive shell, or use a subcommand for one-shot
queries.`,
	RunE: runShell,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var apiURL string

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "marketplace server URL (overrides MTD_API_URL)")
}

// loadConfig builds the effective configuration from the environment
// plus any command-line overrides.
func loadConfig() (*config.Config, error) {
	cfg := config.Load()
	if apiURL != "" {
		cfg.APIBaseURL = apiURL
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func newClient() (*config.Config, *api.Client, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	client, err := api.NewClient(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create API client: %w", err)
	}
	return cfg, client, nil
}
