package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/m365tools/graph-assistant/internal"
	"github.com/spf13/cobra"
)

var (
	verbose    bool
	configPath string
	version    string = "dev"
	commit     string = "unknown"
	date       string = "unknown"
)

// Shared state constructed once in PersistentPreRunE and passed into the
// components each subcommand builds
var (
	appConfig *internal.Config
	appLogger *internal.Logger
	appUsage  *internal.UsageTracker
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "graph-assistant",
	Short: "Conversational assistant for Microsoft 365 data",
	Long: `A command-line assistant that wraps Microsoft Graph-style APIs.

Chat about your meetings, emails and documents, pull insight summaries over
a time window, manage saved conversations, and export them to multiple
formats (JSON, CSV, HTML, Markdown, plain text).

Quick Start:
  graph-assistant chat                   # Start an interactive conversation
  graph-assistant insights meetings      # Summarize today's meetings
  graph-assistant history list           # List saved conversations
  graph-assistant export <session-id>    # Export a saved conversation

Authentication is delegated to an external provider: put a bearer token in
$GRAPH_ACCESS_TOKEN (configurable). Without a token the assistant still
works, falling back to simulated data for insights.`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := internal.LoadConfig(configPath)
		if err != nil {
			return err
		}
		appConfig = cfg

		appLogger = internal.NewLogger()
		appLogger.SetVerbose(verbose)
		if cfg.LogFile != "" {
			if err := appLogger.LogToFile(cfg.LogFile); err != nil {
				appLogger.Warnf("config", "log file unavailable: %v", err)
			}
		}

		appUsage = internal.NewUsageTracker(appLogger, cfg.Telemetry.Endpoint, cfg.Telemetry.Enabled)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if appUsage != nil {
			appUsage.Flush(2 * time.Second)
		}
		if appLogger != nil {
			_ = appLogger.Close()
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ~/.graph-assistant/config.yaml)")

	// Set version template to ensure --version flag works
	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)
}

// newAPIClient builds the authenticated API client from the loaded config
func newAPIClient() *internal.Client {
	provider := &internal.EnvTokenProvider{Var: appConfig.TokenEnvVar}
	return internal.NewClient(appConfig.APIBaseURL, provider, appLogger)
}

// recordUsage tracks one feature invocation
func recordUsage(feature string, started time.Time, err error) {
	if appUsage != nil {
		appUsage.Record(feature, time.Since(started), err != nil)
	}
}
