package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/colorchanger/internal/cli"
	"github.com/aretw0/colorchanger/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "colorchanger",
	Short: "Color Changer is a two-button voice game engine",
	Long: `Color Changer runs the roll call, play and exit flow of an Echo Buttons game.
Hosts drive it over HTTP or MCP, or you can play it in the console.`,
	SilenceUsage:  true,
	SilenceErrors: true,
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
	rootCmd.PersistentFlags().String("config", "", "Path to a YAML configuration file")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging and audit hooks")
}

// loadConfig reads --config and the COLORCHANGER_* environment.
func loadConfig(cmd *cobra.Command) (config.Config, bool, error) {
	path, _ := cmd.Flags().GetString("config")
	debug, _ := cmd.Flags().GetBool("debug")
	cfg, err := config.Load(path)
	return cfg, debug, err
}

// newRuntime wires the engine the configuration describes.
func newRuntime(cfg config.Config, debug bool) (*cli.Runtime, error) {
	logger, err := cli.NewLogger(cfg.Log, debug)
	if err != nil {
		return nil, err
	}
	return cli.NewRuntime(cfg, logger, debug)
}
