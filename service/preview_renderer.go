package service

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"tsshift/domain"
	"tsshift/internal/config"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("81"))

	safeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	mediumStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	riskyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	pathStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))
)

// PreviewRenderer renders a migration plan as a styled terminal preview
type PreviewRenderer struct{}

// NewPreviewRenderer creates a preview renderer
func NewPreviewRenderer() *PreviewRenderer {
	return &PreviewRenderer{}
}

// RenderPlan writes a human-readable preview of the plan
func (r *PreviewRenderer) RenderPlan(response *domain.PlanResponse, writer io.Writer) error {
	plan := response.Plan
	if plan == nil || len(plan.Actions) == 0 {
		fmt.Fprintln(writer, "Nothing to migrate.")
		r.renderWarnings(response.Warnings, writer)
		return nil
	}

	fmt.Fprintln(writer, headerStyle.Render("Migration Plan"))
	fmt.Fprintf(writer, "%s\n\n", dimStyle.Render(
		fmt.Sprintf("generated %s, tsshift %s", plan.GeneratedAt, plan.Version)))

	for _, step := range plan.ExecutionOrder {
		action := plan.ActionByID(step.ActionID)
		if action == nil {
			continue
		}
		fmt.Fprintf(writer, "  %s %s\n", r.riskBadge(action.Risk), r.describeAction(action))
	}

	fmt.Fprintf(writer, "\n%s\n", headerStyle.Render("Import updates"))
	r.renderImportUpdates(plan.ImportUpdates, writer)

	fmt.Fprintf(writer, "\n%s\n", headerStyle.Render("Summary"))
	fmt.Fprintf(writer, "  Types to remove:   %d\n", plan.Stats.TypesToRemove)
	fmt.Fprintf(writer, "  Imports to update: %d\n", plan.Stats.ImportsToUpdate)
	fmt.Fprintf(writer, "  Files affected:    %d\n", plan.Stats.FilesAffected)
	fmt.Fprintf(writer, "  Risk: %s / %s / %s\n",
		safeStyle.Render(fmt.Sprintf("%d safe", plan.RiskSummary.Safe)),
		mediumStyle.Render(fmt.Sprintf("%d medium", plan.RiskSummary.Medium)),
		riskyStyle.Render(fmt.Sprintf("%d risky", plan.RiskSummary.Risky)))

	r.renderWarnings(response.Warnings, writer)
	return nil
}

// renderImportUpdates lists the first few rewrites and elides the rest
func (r *PreviewRenderer) renderImportUpdates(updates []domain.ImportUpdate, writer io.Writer) {
	if len(updates) == 0 {
		fmt.Fprintln(writer, dimStyle.Render("  none"))
		return
	}
	shown := updates
	if len(shown) > config.DefaultMaxPreviewUpdates {
		shown = shown[:config.DefaultMaxPreviewUpdates]
	}
	for _, u := range shown {
		line := fmt.Sprintf("  %s: %s %s %s",
			pathStyle.Render(u.File), u.OldSource, dimStyle.Render("=>"), u.NewSource)
		if u.NewName != "" {
			line += dimStyle.Render(fmt.Sprintf(" (%s renamed to %s)", u.Symbol, u.NewName))
		}
		fmt.Fprintln(writer, line)
	}
	if remaining := len(updates) - len(shown); remaining > 0 {
		fmt.Fprintln(writer, dimStyle.Render(fmt.Sprintf("  ... and %d more", remaining)))
	}
}

func (r *PreviewRenderer) renderWarnings(warnings []string, writer io.Writer) {
	if len(warnings) == 0 {
		return
	}
	fmt.Fprintf(writer, "\n%s\n", mediumStyle.Render("Warnings"))
	for _, w := range warnings {
		fmt.Fprintf(writer, "  - %s\n", w)
	}
}

func (r *PreviewRenderer) riskBadge(risk domain.RiskTier) string {
	switch risk {
	case domain.RiskSafe:
		return safeStyle.Render("[safe]  ")
	case domain.RiskMedium:
		return mediumStyle.Render("[medium]")
	default:
		return riskyStyle.Render("[risky] ")
	}
}

func (r *PreviewRenderer) describeAction(action *domain.MigrationAction) string {
	switch action.Type {
	case domain.ActionMove:
		return fmt.Sprintf("move %s to %s (%d importers)",
			pathStyle.Render(action.Source), pathStyle.Render(action.Target), len(action.AffectedImports))
	case domain.ActionMerge:
		return fmt.Sprintf("merge %s into %s (%d importers)",
			pathStyle.Render(action.Source), pathStyle.Render(action.Target), len(action.AffectedImports))
	case domain.ActionRemoveType:
		var b strings.Builder
		removed := action.Symbol
		if action.OriginalName != "" {
			removed = action.OriginalName
		}
		fmt.Fprintf(&b, "remove %s from %s", removed, pathStyle.Render(action.Source))
		if action.OriginalName != "" {
			fmt.Fprintf(&b, " (canonical name %s)", action.Symbol)
		}
		fmt.Fprintf(&b, ", %d importers redirected", len(action.AffectedImports))
		return b.String()
	default:
		return fmt.Sprintf("%s %s", action.Type, action.Source)
	}
}
