// Package cmd contains the CLI entry points.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "backoffice",
	Short: "Tattoo studio back office",
	Long:  "Back-office server for a tattoo studio: quotes, bookings, inventory and e-mail notifications.",
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
