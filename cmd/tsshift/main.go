package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"tsshift/internal/version"
)

var (
	// Version information (set via ldflags during build)
	Version = version.Version
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "tsshift",
		Short: "tsshift - TypeScript code restructuring engine",
		Long: `tsshift restructures TypeScript codebases safely.
It builds the project's import graph, plans risk-tiered migrations for
duplicate symbols, and applies them with import rewriting.`,
		Version: Version,
	}

	// Add subcommands
	rootCmd.AddCommand(graphCmd())
	rootCmd.AddCommand(planCmd())
	rootCmd.AddCommand(applyCmd())
	rootCmd.AddCommand(initCmd())
	rootCmd.AddCommand(versionCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			verbose, _ := cmd.Flags().GetBool("verbose")
			if verbose {
				fmt.Println(version.GetFullVersion())
			} else {
				fmt.Printf("tsshift version %s\n", version.GetVersion())
			}
		},
	}

	cmd.Flags().BoolP("verbose", "v", false, "Show detailed version information")
	return cmd
}
