// Package cmd holds the maintenance commands of ruictl.
package cmd

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/xlovstudio/rui/rui"
	"github.com/xlovstudio/rui/rui/logger"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:           "ruictl",
	Short:         "Maintenance tools for the Rui bot",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		slog.SetDefault(slog.New(logger.NewHandler(os.Stderr, logger.Options{})))
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config.toml", "path to config")
}

// Execute runs the command line and returns the process exit code.
func Execute(ctx context.Context) int {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		logger.LogError("Command failed", err)
		return 1
	}
	return 0
}

func loadConfig() (*rui.Config, error) {
	return rui.LoadConfig(configPath)
}
