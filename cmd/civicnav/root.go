package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/nagarniyantran/civicnav/internal/cli"
	"github.com/nagarniyantran/civicnav/internal/config"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "civicnav",
	Short: "CivicNav drives the screen navigation of the civic issue reporting app",
	Long: `CivicNav hosts the navigation state machine of the civic issue reporting client.
Sessions can be played interactively, served over HTTP or exposed to agents over MCP.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "", "Path to a YAML or JSON config file")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error")
	rootCmd.PersistentFlags().String("store", "", "Session store driver: memory, file or redis")
	rootCmd.PersistentFlags().String("store-path", "", "Directory of the file store")
}

// runtimeDeps is what every command needs: the layered config, a logger and the persistence stack.
type runtimeDeps struct {
	cfg    *config.Config
	logger *slog.Logger
	stack  *cli.Stack
}

// loadRuntime reads the config, applies the persistent flags on top and opens the stack.
// Callers must Close the stack.
func loadRuntime(cmd *cobra.Command) (*runtimeDeps, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel, _ = cmd.Flags().GetString("log-level")
	}
	if cmd.Flags().Changed("store") {
		cfg.Store.Driver, _ = cmd.Flags().GetString("store")
	}
	if cmd.Flags().Changed("store-path") {
		cfg.Store.Path, _ = cmd.Flags().GetString("store-path")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger, err := cli.NewLogger(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	stack, err := cli.OpenStack(cfg, logger)
	if err != nil {
		return nil, err
	}
	return &runtimeDeps{cfg: cfg, logger: logger, stack: stack}, nil
}
