package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"tsshift/app"
	"tsshift/domain"
	"tsshift/internal/migration"
	"tsshift/service"
)

var (
	applyPlanPath     string
	applyOutputFormat string
	applyOutputPath   string
	applyConfigPath   string
	applyDryRun       bool
	applyNoBackup     bool
	applySafeOnly     bool
	applyLibraryRoot  string
	applyYes          bool
	applyNoProgress   bool
)

func applyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "apply [dir]",
		Short: "Apply a saved migration plan",
		Long: `Apply the actions of a previously generated migration plan.

Actions run strictly in the plan's execution order. Medium and risky actions
require confirmation unless --yes is given. --dry-run previews every action
without touching the filesystem.

Examples:
  # Preview what would happen
  tsshift apply --plan plan.json --dry-run .

  # Apply only the safe actions
  tsshift apply --plan plan.json --safe-only .

  # Apply everything without prompting
  tsshift apply --plan plan.json --yes .`,
		Args: cobra.MaximumNArgs(1),
		RunE: runApply,
	}

	cmd.Flags().StringVarP(&applyPlanPath, "plan", "p", "",
		"Migration plan file (required)")
	cmd.Flags().StringVarP(&applyOutputFormat, "format", "f", "text",
		"Output format: text, json, yaml")
	cmd.Flags().StringVarP(&applyOutputPath, "output", "o", "",
		"Output file path (default: stdout)")
	cmd.Flags().StringVarP(&applyConfigPath, "config", "c", "",
		"Config file path (default: discovered)")
	cmd.Flags().BoolVar(&applyDryRun, "dry-run", false,
		"Preview actions without modifying any file")
	cmd.Flags().BoolVar(&applyNoBackup, "no-backup", false,
		"Skip .bak backups before modifying files")
	cmd.Flags().BoolVar(&applySafeOnly, "safe-only", false,
		"Apply only safe actions and their import updates")
	cmd.Flags().StringVar(&applyLibraryRoot, "library-root", "",
		"Confine mutations to this subtree (default: from config)")
	cmd.Flags().BoolVarP(&applyYes, "yes", "y", false,
		"Skip the confirmation prompt for medium and risky actions")
	cmd.Flags().BoolVar(&applyNoProgress, "no-progress", false,
		"Disable progress display")
	_ = cmd.MarkFlagRequired("plan")

	return cmd
}

func runApply(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}

	cfg, err := service.NewConfigurationLoader().LoadConfig(applyConfigPath)
	if err != nil {
		return err
	}

	plan, err := loadPlan(applyPlanPath)
	if err != nil {
		return err
	}
	if applySafeOnly {
		plan = migration.FilterSafeTypeMigrations(plan)
	}

	if !applyDryRun && !applyYes {
		if err := confirmRiskyActions(plan); err != nil {
			return err
		}
	}

	session, err := service.NewRefactorSession(dir, cfg)
	if err != nil {
		return err
	}

	format := domain.OutputFormat(applyOutputFormat)
	showProgress := cfg.Output.ShowProgress && !applyNoProgress && format == domain.OutputFormatText
	progress := service.NewProgressManager(showProgress)
	defer progress.Close()

	libraryRoot := applyLibraryRoot
	if libraryRoot == "" {
		libraryRoot = cfg.Execute.LibraryRoot
	}

	useCase := app.NewApplyUseCase(service.NewMigrationService(session, progress))
	response, err := useCase.Execute(context.Background(), plan, domain.ExecuteOptions{
		DryRun:      applyDryRun,
		Backup:      cfg.Execute.Backup && !applyNoBackup,
		LibraryRoot: libraryRoot,
	})
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	formatter := service.NewOutputFormatter()
	err = service.WriteToPath(applyOutputPath, os.Stdout, func(w io.Writer) error {
		return formatter.WriteExecution(response, format, w)
	})
	if err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if response.Failed > 0 {
		return fmt.Errorf("%d of %d actions failed", response.Failed, len(response.Results))
	}
	return nil
}

// loadPlan reads a plan file written by the plan command. Both the plan
// response envelope and a bare plan are accepted.
func loadPlan(path string) (*domain.MigrationPlan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, domain.NewFileNotFoundError(path, err)
	}

	var envelope domain.PlanResponse
	if err := json.Unmarshal(data, &envelope); err == nil && envelope.Plan != nil {
		return envelope.Plan, nil
	}

	var plan domain.MigrationPlan
	if err := json.Unmarshal(data, &plan); err != nil {
		return nil, domain.NewInvalidInputError("failed to parse plan file: "+path, err)
	}
	return &plan, nil
}

// confirmRiskyActions prompts before applying medium or risky actions
func confirmRiskyActions(plan *domain.MigrationPlan) error {
	risky := plan.RiskSummary.Medium + plan.RiskSummary.Risky
	if risky == 0 {
		return nil
	}

	prompt := promptui.Prompt{
		Label:     fmt.Sprintf("Plan contains %d medium/risky actions. Apply anyway?", risky),
		IsConfirm: true,
	}
	if _, err := prompt.Run(); err != nil {
		return fmt.Errorf("aborted: %w", err)
	}
	return nil
}
