package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"tsshift/app"
	"tsshift/domain"
	"tsshift/service"
)

var (
	planReportPath    string
	planOutputFormat  string
	planOutputPath    string
	planConfigPath    string
	planSafeOnly      bool
	planOnlyIdentical bool
	planMinSimilarity float64
	planNoProgress    bool
)

func planCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan [dir]",
		Short: "Plan migrations from a duplicate report",
		Long: `Turn a duplicate-symbol report into an ordered, risk-tiered migration plan.

The report is JSON produced by an upstream duplicate detector: a list of
duplicate groups (with locations and a similarity score) plus optional move
and merge intents. Planning never touches the filesystem.

Examples:
  # Plan from a report against the current directory
  tsshift plan --report duplicates.json .

  # Keep only safe actions and their import updates
  tsshift plan --report duplicates.json --safe-only .

  # Save the plan for a later apply
  tsshift plan --report duplicates.json --format json -o plan.json .`,
		Args: cobra.MaximumNArgs(1),
		RunE: runPlan,
	}

	cmd.Flags().StringVarP(&planReportPath, "report", "r", "",
		"Duplicate report file (required)")
	cmd.Flags().StringVarP(&planOutputFormat, "format", "f", "text",
		"Output format: text, json, yaml")
	cmd.Flags().StringVarP(&planOutputPath, "output", "o", "",
		"Output file path (default: stdout)")
	cmd.Flags().StringVarP(&planConfigPath, "config", "c", "",
		"Config file path (default: discovered)")
	cmd.Flags().BoolVar(&planSafeOnly, "safe-only", false,
		"Reduce the plan to safe actions and their import updates")
	cmd.Flags().BoolVar(&planOnlyIdentical, "only-identical", false,
		"Plan only groups with similarity 1.0")
	cmd.Flags().Float64Var(&planMinSimilarity, "min-similarity", 0,
		"Similarity floor for planning (default: from config)")
	cmd.Flags().BoolVar(&planNoProgress, "no-progress", false,
		"Disable progress display")
	_ = cmd.MarkFlagRequired("report")

	return cmd
}

func runPlan(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}

	cfg, err := service.NewConfigurationLoader().LoadConfig(planConfigPath)
	if err != nil {
		return err
	}

	report, err := service.NewReportLoader().Load(planReportPath)
	if err != nil {
		return err
	}

	session, err := service.NewRefactorSession(dir, cfg)
	if err != nil {
		return err
	}

	format := domain.OutputFormat(planOutputFormat)
	showProgress := cfg.Output.ShowProgress && !planNoProgress && format == domain.OutputFormatText
	progress := service.NewProgressManager(showProgress)
	defer progress.Close()

	options := domain.PlanOptions{
		OnlyIdentical: planOnlyIdentical || cfg.Plan.OnlyIdentical,
		MinSimilarity: cfg.Plan.MinSimilarity,
	}
	if planMinSimilarity > 0 {
		options.MinSimilarity = planMinSimilarity
	}

	graphSvc := service.NewImportGraphService(session, progress)
	useCase := app.NewPlanUseCase(service.NewPlanService(session, graphSvc))

	response, err := useCase.Execute(context.Background(), domain.PlanRequest{
		Groups:       report.Groups,
		Intents:      report.Intents,
		ProjectRoot:  dir,
		Options:      options,
		SafeOnly:     planSafeOnly,
		OutputFormat: format,
		OutputPath:   planOutputPath,
	})
	if err != nil {
		return fmt.Errorf("planning failed: %w", err)
	}

	formatter := service.NewOutputFormatter()
	err = service.WriteToPath(planOutputPath, os.Stdout, func(w io.Writer) error {
		return formatter.WritePlan(response, format, w)
	})
	if err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if planOutputPath != "" && format == domain.OutputFormatText {
		fmt.Printf("Plan saved to: %s\n", planOutputPath)
	}
	return nil
}
