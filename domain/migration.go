package domain

import "context"

// ActionType represents the kind of migration action
type ActionType string

const (
	// ActionMove relocates a file or directory to a new path
	ActionMove ActionType = "move"

	// ActionMerge redirects imports to an existing destination without moving files
	ActionMerge ActionType = "merge"

	// ActionRemoveType deletes a duplicate declaration in favor of a canonical one
	ActionRemoveType ActionType = "remove-type"
)

// RiskTier classifies how confident the planner is that an action is
// behavior-preserving
type RiskTier string

const (
	RiskSafe   RiskTier = "safe"
	RiskMedium RiskTier = "medium"
	RiskRisky  RiskTier = "risky"
)

// MigrationAction is a single planned mutation. Created by the planner,
// consumed exactly once by the executor, immutable in between.
type MigrationAction struct {
	// ID uniquely identifies the action within its plan
	ID string `json:"id"`

	// Type is the action kind (move, merge, remove-type)
	Type ActionType `json:"type"`

	// Source is the file or directory the action operates on
	Source string `json:"source"`

	// Target is the destination path (moves and merges)
	Target string `json:"target,omitempty"`

	// Symbol is the declaration name involved (remove-type actions)
	Symbol string `json:"symbol,omitempty"`

	// OriginalName is set when a rename accompanies canonicalization:
	// the removed declaration's name differed from the canonical name
	OriginalName string `json:"original_name,omitempty"`

	// Risk is the planner's confidence tier
	Risk RiskTier `json:"risk"`

	// AffectedImports are the files whose import statements need rewriting
	AffectedImports []string `json:"affected_imports,omitempty"`

	// PreserveJSDoc requests keeping the removed declaration's doc comment
	PreserveJSDoc bool `json:"preserve_jsdoc,omitempty"`
}

// MigrationIntent is an externally supplied move or merge request that the
// planner folds into a plan alongside canonicalization actions
type MigrationIntent struct {
	// Type must be move or merge
	Type ActionType `json:"type"`

	// Source is the file or directory to move, or the duplicate to merge away
	Source string `json:"source"`

	// Target is the destination
	Target string `json:"target"`

	// Risk overrides the planner's default tier for the intent.
	// Empty defaults to risky for moves and medium for merges.
	Risk RiskTier `json:"risk,omitempty"`
}

// ImportUpdate describes one import-statement rewrite in one file
type ImportUpdate struct {
	// File is the importer to rewrite
	File string `json:"file"`

	// Symbol is the imported name affected
	Symbol string `json:"symbol"`

	// OldSource is the module file the import currently points at
	OldSource string `json:"old_source"`

	// NewSource is the module file the import should point at
	NewSource string `json:"new_source"`

	// NewName is set when the symbol is renamed at the new source
	NewName string `json:"new_name,omitempty"`
}

// PlanStats summarizes a migration plan
type PlanStats struct {
	TypesToRemove   int `json:"types_to_remove"`
	ImportsToUpdate int `json:"imports_to_update"`
	FilesAffected   int `json:"files_affected"`
}

// RiskSummary counts actions per risk tier
type RiskSummary struct {
	Safe   int `json:"safe"`
	Medium int `json:"medium"`
	Risky  int `json:"risky"`
}

// ExecutionStep is one entry in a plan's execution order
type ExecutionStep struct {
	// Step is the 0-based position in the order
	Step int `json:"step"`

	// ActionID references an action in the plan
	ActionID string `json:"action_id"`

	// Parallelizable indicates the step touches files disjoint from every
	// earlier step. The executor still runs steps sequentially; the flag is
	// advisory for callers.
	Parallelizable bool `json:"parallelizable"`
}

// MigrationPlan is the write-once output of the planner
type MigrationPlan struct {
	// Actions are the planned mutations
	Actions []MigrationAction `json:"actions"`

	// ImportUpdates are the import rewrites implied by the actions
	ImportUpdates []ImportUpdate `json:"import_updates"`

	// Stats summarizes the plan
	Stats PlanStats `json:"stats"`

	// RiskSummary counts actions per tier
	RiskSummary RiskSummary `json:"risk_summary"`

	// ExecutionOrder is the sequence actions must be applied in
	ExecutionOrder []ExecutionStep `json:"execution_order"`

	// RollbackPoints are action IDs after which state is safe to commit
	RollbackPoints []string `json:"rollback_points"`

	// GeneratedAt is when the plan was created
	GeneratedAt string `json:"generated_at"`

	// Version is the tool version
	Version string `json:"version"`
}

// ActionByID returns the action with the given id, or nil
func (p *MigrationPlan) ActionByID(id string) *MigrationAction {
	for i := range p.Actions {
		if p.Actions[i].ID == id {
			return &p.Actions[i]
		}
	}
	return nil
}

// ExecutionResult is the outcome of applying one action
type ExecutionResult struct {
	// ActionID references the executed action
	ActionID string `json:"action_id"`

	// Success is true when the primary mutation succeeded
	Success bool `json:"success"`

	// Message is a human-readable description of what happened
	Message string `json:"message"`

	// Warnings are non-fatal problems (failed backup, failed import rewrite)
	Warnings []string `json:"warnings,omitempty"`
}

// PlanOptions controls migration planning
type PlanOptions struct {
	// OnlyIdentical restricts planning to groups with similarity == 1.0
	OnlyIdentical bool `json:"only_identical"`

	// MinSimilarity filters out groups below this score. Defaults to 1.0:
	// only identical duplicates are auto-planned unless the caller opts
	// into near-duplicates.
	MinSimilarity float64 `json:"min_similarity"`
}

// DefaultPlanOptions returns planner defaults
func DefaultPlanOptions() PlanOptions {
	return PlanOptions{
		OnlyIdentical: false,
		MinSimilarity: 1.0,
	}
}

// ExecuteOptions controls plan execution
type ExecuteOptions struct {
	// DryRun previews every action without mutating the filesystem
	DryRun bool `json:"dry_run"`

	// Backup writes a best-effort backup of each file before modifying it
	Backup bool `json:"backup"`

	// LibraryRoot confines every mutation; paths resolving outside it are
	// rejected before any filesystem call
	LibraryRoot string `json:"library_root"`
}

// PlanRequest represents a request to plan migrations from duplicate groups
type PlanRequest struct {
	// Groups are the upstream detector's duplicate groups
	Groups []DuplicateGroup `json:"groups"`

	// Intents are externally supplied move/merge requests
	Intents []MigrationIntent `json:"intents,omitempty"`

	// ProjectRoot is the project being refactored
	ProjectRoot string `json:"project_root"`

	// Options controls planning behavior
	Options PlanOptions `json:"options"`

	// SafeOnly reduces the plan to safe actions and their import updates
	SafeOnly bool `json:"safe_only"`

	// OutputFormat specifies the rendering format
	OutputFormat OutputFormat `json:"output_format,omitempty"`

	// OutputPath is the path to save output (empty = stdout)
	OutputPath string `json:"output_path,omitempty"`
}

// PlanResponse represents the result of planning
type PlanResponse struct {
	// Plan is the migration plan
	Plan *MigrationPlan `json:"plan"`

	// Warnings contains non-fatal problems from planning
	Warnings []string `json:"warnings,omitempty"`
}

// ExecuteResponse aggregates per-action results for a run
type ExecuteResponse struct {
	// Results holds one entry per executed action, in execution order
	Results []ExecutionResult `json:"results"`

	// Succeeded counts successful actions
	Succeeded int `json:"succeeded"`

	// Failed counts failed actions
	Failed int `json:"failed"`

	// Warnings counts warnings across all actions
	Warnings int `json:"warnings"`
}

// PlanService defines the core business logic for migration planning
type PlanService interface {
	// Plan turns duplicate groups into an ordered, risk-tiered migration plan
	Plan(ctx context.Context, req PlanRequest) (*PlanResponse, error)
}

// MigrationService defines the core business logic for plan execution
type MigrationService interface {
	// Execute applies a plan's actions strictly in execution order
	Execute(ctx context.Context, plan *MigrationPlan, opts ExecuteOptions) (*ExecuteResponse, error)
}
