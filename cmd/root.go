package cmd

import (
	"fmt"
	"os"

	"store-ops/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// configPath is the directory searched for config.yaml and .env.
var configPath string

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "store-ops",
	Short: "Store operations import service",
	Long: `store-ops reconciles spreadsheet feeds (employee rosters, store hierarchies,
hurdles, rates and sales budgets) into the operations database.
It serves the imports over HTTP and from the command line.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	RootCmd.PersistentFlags().StringVar(&configPath, "config", ".", "Directory holding config.yaml and .env")
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	err := RootCmd.Execute()
	if err == nil {
		return
	}

	l, logErr := logger.New(&logger.Config{Level: "debug", Format: "console"})
	if logErr != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	l.Error("Command failed", zap.String("command", commandName()), zap.Error(err))
	_ = l.Sync()
	os.Exit(1)
}

func commandName() string {
	if len(os.Args) > 1 {
		return os.Args[1]
	}
	return RootCmd.Use
}
