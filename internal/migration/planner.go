// Package migration plans and executes structural refactors: moving
// modules, merging duplicates, and deleting duplicate declarations while
// keeping every import statement in the project consistent.
package migration

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"

	"tsshift/domain"
	"tsshift/internal/analyzer"
	"tsshift/internal/version"
)

// Planner turns duplicate groups and externally supplied intents into an
// ordered, risk-tiered migration plan. Pure over the scan results: the
// planner reads files to confirm importers but never mutates anything.
type Planner struct {
	projectRoot string
	graph       *domain.ImportGraph
}

// NewPlanner creates a planner over a project and its import graph
func NewPlanner(projectRoot string, graph *domain.ImportGraph) *Planner {
	return &Planner{projectRoot: projectRoot, graph: graph}
}

// CreatePlan builds a MigrationPlan from the detector's duplicate groups
// plus any move/merge intents. Groups below the similarity floor are
// skipped; the default floor of 1.0 auto-plans only identical duplicates.
func (p *Planner) CreatePlan(groups []domain.DuplicateGroup, intents []domain.MigrationIntent, opts domain.PlanOptions) (*domain.MigrationPlan, []string) {
	if opts.MinSimilarity <= 0 {
		opts.MinSimilarity = 1.0
	}

	plan := &domain.MigrationPlan{
		GeneratedAt: time.Now().Format(time.RFC3339),
		Version:     version.GetVersion(),
	}
	var warnings []string

	for _, group := range groups {
		if !group.RecommendMerge {
			continue
		}
		if group.Similarity < opts.MinSimilarity {
			continue
		}
		if opts.OnlyIdentical && group.Similarity != 1.0 {
			continue
		}
		warnings = append(warnings, p.planGroup(plan, group)...)
	}

	for _, intent := range intents {
		warnings = append(warnings, p.planIntent(plan, intent)...)
	}

	finalizePlan(plan)
	return plan, warnings
}

// planGroup selects the canonical location for one group and emits a
// remove-type action per non-canonical member
func (p *Planner) planGroup(plan *domain.MigrationPlan, group domain.DuplicateGroup) []string {
	var warnings []string

	candidates := make([]domain.CanonicalCandidate, 0, len(group.Locations))
	for _, loc := range group.Locations {
		// Hostile paths from the detector are dropped before anything
		// touches the filesystem
		if EscapesProject(loc.File) {
			warnings = append(warnings, fmt.Sprintf("rejected location outside project: %s", loc.File))
			continue
		}
		candidates = append(candidates, analyzer.NewCandidate(loc, p.importerCount(loc.File)))
	}

	canonical := analyzer.SelectCanonical(candidates)
	if canonical == nil {
		return warnings
	}

	risk := domain.RiskMedium
	if group.Similarity == 1.0 {
		risk = domain.RiskSafe
	}

	for _, candidate := range candidates {
		if candidate.File == canonical.File && candidate.Name == canonical.Name {
			continue
		}

		action := domain.MigrationAction{
			ID:            uuid.NewString(),
			Type:          domain.ActionRemoveType,
			Source:        candidate.File,
			Target:        canonical.File,
			Symbol:        canonical.Name,
			Risk:          risk,
			PreserveJSDoc: candidate.HasJSDoc && !canonical.HasJSDoc,
		}
		if candidate.Name != canonical.Name {
			action.OriginalName = candidate.Name
		}

		importers := p.findSymbolImporters(candidate.File, candidate.Name)
		action.AffectedImports = importers
		plan.Actions = append(plan.Actions, action)

		for _, importer := range importers {
			update := domain.ImportUpdate{
				File:      importer,
				Symbol:    candidate.Name,
				OldSource: candidate.File,
				NewSource: canonical.File,
			}
			if candidate.Name != canonical.Name {
				update.NewName = canonical.Name
			}
			plan.ImportUpdates = append(plan.ImportUpdates, update)
		}
	}

	return warnings
}

// planIntent folds an external move/merge request into the plan
func (p *Planner) planIntent(plan *domain.MigrationPlan, intent domain.MigrationIntent) []string {
	if intent.Type != domain.ActionMove && intent.Type != domain.ActionMerge {
		return []string{fmt.Sprintf("ignored intent with unsupported type: %s", intent.Type)}
	}
	if EscapesProject(intent.Source) || EscapesProject(intent.Target) {
		return []string{fmt.Sprintf("rejected intent outside project: %s -> %s", intent.Source, intent.Target)}
	}

	risk := intent.Risk
	if risk == "" {
		if intent.Type == domain.ActionMove {
			risk = domain.RiskRisky
		} else {
			risk = domain.RiskMedium
		}
	}

	plan.Actions = append(plan.Actions, domain.MigrationAction{
		ID:              uuid.NewString(),
		Type:            intent.Type,
		Source:          intent.Source,
		Target:          intent.Target,
		Risk:            risk,
		AffectedImports: p.importersOf(intent.Source),
	})
	return nil
}

// importerCount reports distinct importers of a project-relative file
func (p *Planner) importerCount(file string) int {
	if p.graph == nil {
		return 0
	}
	return p.graph.ImporterCount(filepath.ToSlash(file))
}

// importersOf returns the graph's importers of a file, sorted for
// deterministic plans
func (p *Planner) importersOf(file string) []string {
	if p.graph == nil {
		return nil
	}
	node, ok := p.graph.Nodes[filepath.ToSlash(file)]
	if !ok {
		return nil
	}
	importers := make([]string, len(node.ImportedBy))
	copy(importers, node.ImportedBy)
	sort.Strings(importers)
	return importers
}

// findSymbolImporters returns the files that import the given symbol from
// that specific source file. The content check avoids false positives from
// unrelated same-named symbols exported elsewhere.
func (p *Planner) findSymbolImporters(file, symbol string) []string {
	var importers []string
	base := moduleBasename(file)

	for _, candidate := range p.importersOf(file) {
		data, err := os.ReadFile(filepath.Join(p.projectRoot, candidate))
		if err != nil {
			continue
		}
		if analyzer.ImportsSymbolFrom(string(data), symbol, base) {
			importers = append(importers, candidate)
		}
	}
	return importers
}

// finalizePlan derives stats, risk summary, execution order, and rollback
// points from the accumulated actions
func finalizePlan(plan *domain.MigrationPlan) {
	affected := make(map[string]bool)
	for _, action := range plan.Actions {
		affected[action.Source] = true
		switch action.Type {
		case domain.ActionRemoveType:
			plan.Stats.TypesToRemove++
		}
		switch action.Risk {
		case domain.RiskSafe:
			plan.RiskSummary.Safe++
		case domain.RiskMedium:
			plan.RiskSummary.Medium++
		case domain.RiskRisky:
			plan.RiskSummary.Risky++
		}
	}
	for _, update := range plan.ImportUpdates {
		affected[update.File] = true
	}
	plan.Stats.ImportsToUpdate = len(plan.ImportUpdates)
	plan.Stats.FilesAffected = len(affected)

	plan.ExecutionOrder = buildExecutionOrder(plan.Actions)
	plan.RollbackPoints = buildRollbackPoints(plan.Actions, plan.ExecutionOrder)
}

// riskRank orders tiers safest-first for execution
func riskRank(r domain.RiskTier) int {
	switch r {
	case domain.RiskSafe:
		return 0
	case domain.RiskMedium:
		return 1
	default:
		return 2
	}
}

// buildExecutionOrder sequences actions safest-first and marks steps whose
// file footprint is disjoint from every earlier step. Execution is still
// strictly sequential; the flag is advisory.
func buildExecutionOrder(actions []domain.MigrationAction) []domain.ExecutionStep {
	indices := make([]int, len(actions))
	for i := range indices {
		indices[i] = i
	}
	sort.SliceStable(indices, func(a, b int) bool {
		return riskRank(actions[indices[a]].Risk) < riskRank(actions[indices[b]].Risk)
	})

	steps := make([]domain.ExecutionStep, 0, len(actions))
	seen := make(map[string]bool)

	for stepIdx, idx := range indices {
		action := actions[idx]
		footprint := actionFootprint(action)

		disjoint := true
		for _, f := range footprint {
			if seen[f] {
				disjoint = false
				break
			}
		}
		for _, f := range footprint {
			seen[f] = true
		}

		steps = append(steps, domain.ExecutionStep{
			Step:           stepIdx,
			ActionID:       action.ID,
			Parallelizable: disjoint,
		})
	}
	return steps
}

// actionFootprint lists every file an action may touch
func actionFootprint(action domain.MigrationAction) []string {
	footprint := make([]string, 0, len(action.AffectedImports)+2)
	footprint = append(footprint, action.Source)
	if action.Target != "" {
		footprint = append(footprint, action.Target)
	}
	footprint = append(footprint, action.AffectedImports...)
	return footprint
}

// buildRollbackPoints marks the last action of each risk tier batch: state
// is safe to commit once a whole tier has been applied
func buildRollbackPoints(actions []domain.MigrationAction, order []domain.ExecutionStep) []string {
	var points []string
	byID := make(map[string]domain.MigrationAction, len(actions))
	for _, a := range actions {
		byID[a.ID] = a
	}

	for i, step := range order {
		current := byID[step.ActionID]
		if i == len(order)-1 {
			points = append(points, current.ID)
			continue
		}
		next := byID[order[i+1].ActionID]
		if riskRank(current.Risk) != riskRank(next.Risk) {
			points = append(points, current.ID)
		}
	}
	return points
}

// FilterSafeTypeMigrations derives a strict subset of a plan containing
// only safe actions and only the import updates whose old source belongs
// to a retained action. A safe-only caller never receives a partially
// consistent plan: no update without its removal, no removal without its
// updates.
func FilterSafeTypeMigrations(plan *domain.MigrationPlan) *domain.MigrationPlan {
	filtered := &domain.MigrationPlan{
		GeneratedAt: plan.GeneratedAt,
		Version:     plan.Version,
	}

	retained := make(map[string]bool)
	for _, action := range plan.Actions {
		if action.Risk != domain.RiskSafe {
			continue
		}
		filtered.Actions = append(filtered.Actions, action)
		retained[action.Source] = true
	}
	for _, update := range plan.ImportUpdates {
		if retained[update.OldSource] {
			filtered.ImportUpdates = append(filtered.ImportUpdates, update)
		}
	}

	finalizePlan(filtered)
	return filtered
}
