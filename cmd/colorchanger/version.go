package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/colorchanger"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of colorchanger",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "colorchanger version %s\n", colorchanger.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
