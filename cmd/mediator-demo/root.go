package main

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	configPath string
	verbose    bool
)

// NewRootCommand creates the root command for the demo CLI
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "mediator-demo",
		Short: "mediator-demo - Exercise the in-process request dispatcher",
		Long: `mediator-demo wires up a mediator with the built-in middleware set and
dispatches sample requests through it.

Examples:
  mediator-demo run --count 5
  mediator-demo run --fail-every 3
  mediator-demo audit --limit 20`,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to config file (default: search ./config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable verbose output")

	rootCmd.AddCommand(NewRunCommand())
	rootCmd.AddCommand(NewAuditCommand())

	return rootCmd
}
