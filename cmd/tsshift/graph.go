package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"tsshift/app"
	"tsshift/domain"
	"tsshift/service"
)

var (
	graphOutputFormat string
	graphOutputPath   string
	graphNamePatterns []string
	graphConfigPath   string
	graphNoProgress   bool
)

func graphCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "graph [dir]",
		Short: "Build the project's import graph",
		Long: `Scan a TypeScript project and build its bidirectional import graph.

Relative and tsconfig-alias imports are resolved to files on disk; circular
import chains are reported.

Examples:
  # Scan the current directory
  tsshift graph .

  # JSON for programmatic use
  tsshift graph --format json src/

  # Only scan matching files
  tsshift graph --name "*.service.ts" src/

  # Save to file
  tsshift graph -o graph.json --format json .

  # Render with Graphviz
  tsshift graph --format dot . | dot -Tsvg -o imports.svg`,
		Args: cobra.MaximumNArgs(1),
		RunE: runGraph,
	}

	cmd.Flags().StringVarP(&graphOutputFormat, "format", "f", "text",
		"Output format: text, json, yaml, dot")
	cmd.Flags().StringVarP(&graphOutputPath, "output", "o", "",
		"Output file path (default: stdout)")
	cmd.Flags().StringArrayVar(&graphNamePatterns, "name", nil,
		"Filename glob patterns to include (repeatable)")
	cmd.Flags().StringVarP(&graphConfigPath, "config", "c", "",
		"Config file path (default: discovered)")
	cmd.Flags().BoolVar(&graphNoProgress, "no-progress", false,
		"Disable progress display")

	return cmd
}

func runGraph(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}

	cfg, err := service.NewConfigurationLoader().LoadConfig(graphConfigPath)
	if err != nil {
		return err
	}

	session, err := service.NewRefactorSession(dir, cfg)
	if err != nil {
		return err
	}

	format := domain.OutputFormat(graphOutputFormat)
	showProgress := cfg.Output.ShowProgress && !graphNoProgress && format == domain.OutputFormatText
	progress := service.NewProgressManager(showProgress)
	defer progress.Close()

	useCase := app.NewGraphUseCase(service.NewImportGraphService(session, progress))

	startTime := time.Now()
	response, err := useCase.Execute(context.Background(), domain.ImportGraphRequest{
		Dir:          dir,
		NamePatterns: graphNamePatterns,
		OutputFormat: format,
		OutputPath:   graphOutputPath,
	})
	if err != nil {
		return fmt.Errorf("graph build failed: %w", err)
	}
	duration := time.Since(startTime)

	if format == domain.OutputFormatText {
		for _, w := range response.Warnings {
			fmt.Fprintf(os.Stderr, "Warning: %s\n", w)
		}
	}

	formatter := service.NewOutputFormatter()
	err = service.WriteToPath(graphOutputPath, os.Stdout, func(w io.Writer) error {
		return formatter.WriteGraph(response, format, w)
	})
	if err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if format == domain.OutputFormatText && graphOutputPath == "" {
		fmt.Printf("\nScan completed in %dms\n", duration.Milliseconds())
	}
	return nil
}
