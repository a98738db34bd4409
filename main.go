// package main is the entry point for vibehub
package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/friuns/vibehub/cmd/accounts"
	"github.com/friuns/vibehub/cmd/issues"
	"github.com/friuns/vibehub/cmd/pr"
	prefetchcmd "github.com/friuns/vibehub/cmd/prefetch"
	"github.com/friuns/vibehub/cmd/repos"
	"github.com/friuns/vibehub/cmd/runs"
	"github.com/friuns/vibehub/cmd/secrets"
	"github.com/friuns/vibehub/cmd/workflows"
	"github.com/friuns/vibehub/internal/config"
)

func main() {
	var configFile string
	var logLevel string
	var logFormat string

	rootCmd := &cobra.Command{
		Use:   "vibehub",
		Short: "A cached GitHub dashboard for your repositories",
		Long: `vibehub is a GitHub client that keeps a local cache of everything it
fetches, serves cached data while refreshing in the background, and can
prefetch your most active repositories so views open instantly.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			setupLogger(logLevel, logFormat)
		},
	}

	// Add global flags
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", config.DefaultPath(), "Configuration file path")
	rootCmd.PersistentFlags().StringVarP(&logLevel, "log-level", "l", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVarP(&logFormat, "log-format", "f", "text", "Log format (text, json)")

	// Create commands with access to the global config file
	rootCmd.AddCommand(accounts.NewAccountsCmd(&configFile, config.LoadConfig))
	rootCmd.AddCommand(repos.NewReposCmd(&configFile, config.LoadConfig))
	rootCmd.AddCommand(issues.NewIssuesCmd(&configFile, config.LoadConfig))
	rootCmd.AddCommand(pr.NewPRCmd(&configFile, config.LoadConfig))
	rootCmd.AddCommand(runs.NewRunsCmd(&configFile, config.LoadConfig))
	rootCmd.AddCommand(secrets.NewSecretsCmd(&configFile, config.LoadConfig))
	rootCmd.AddCommand(workflows.NewWorkflowsCmd(&configFile, config.LoadConfig))
	rootCmd.AddCommand(prefetchcmd.NewPrefetchCmd(&configFile, config.LoadConfig))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func setupLogger(level, format string) {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	var handler slog.Handler
	if format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})
	} else {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})
	}

	slog.SetDefault(slog.New(handler))
}
