package main

import (
	"context"
	"errors"
	"os"

	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/aretw0/colorchanger"
	"github.com/aretw0/colorchanger/internal/cli"
	"github.com/aretw0/colorchanger/internal/presentation/tui"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a session in the console",
	Long: `Plays the host side of a session in the terminal: type commands to launch,
press buttons, let input handlers time out and speak intents. Lights are painted
with the terminal's colors.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		sessionID, _ := cmd.Flags().GetString("session")

		cfg, debug, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		rt, err := newRuntime(cfg, debug)
		if err != nil {
			return err
		}
		defer rt.Close()

		styled := term.IsTerminal(int(os.Stdout.Fd()))
		profile := termenv.Ascii
		if styled {
			profile = termenv.ColorProfile()
		}

		sim := cli.NewSimulator(rt.Engine, sessionID, cmd.OutOrStdout(),
			cli.WithProfile(profile),
			cli.WithMarkdown(tui.NewRenderer(styled)),
		)
		sim.Banner(colorchanger.Version)

		sigCtx := cli.NewSignalContext(cmd.Context())
		defer sigCtx.Cancel()

		if err := sim.Run(sigCtx, cmd.InOrStdin()); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(playCmd)
	playCmd.Flags().StringP("session", "s", "console", "Session id to play")
}
