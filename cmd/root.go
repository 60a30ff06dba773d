// Package cmd holds the reporthub-api command line.
package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "reporthub-api",
	Short: "Backend for reporting and tracking municipal issues",
	RunE:  runServe,
}

// Execute adds all child commands to the root command. It is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
