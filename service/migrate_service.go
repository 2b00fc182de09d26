package service

import (
	"context"
	"os"
	"path/filepath"

	"tsshift/domain"
	"tsshift/internal/migration"
)

// MigrationServiceImpl implements domain.MigrationService
type MigrationServiceImpl struct {
	session  *RefactorSession
	progress domain.ProgressManager
}

// NewMigrationService creates the execution service
func NewMigrationService(session *RefactorSession, progress domain.ProgressManager) *MigrationServiceImpl {
	if progress == nil {
		progress = &NoOpProgressManager{}
	}
	return &MigrationServiceImpl{session: session, progress: progress}
}

// Execute applies a plan's actions strictly in execution order. Each action
// can invalidate the import graph later actions were planned against, so
// actions are never applied concurrently. There is no partial-action
// rollback; the plan's rollback points are commit checkpoints the caller
// manages externally.
func (s *MigrationServiceImpl) Execute(ctx context.Context, plan *domain.MigrationPlan, opts domain.ExecuteOptions) (*domain.ExecuteResponse, error) {
	if plan == nil {
		return nil, domain.NewInvalidInputError("nil plan", nil)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	projectRoot := s.session.ProjectRoot()
	libraryRoot := opts.LibraryRoot
	if libraryRoot == "" {
		libraryRoot = projectRoot
	} else if !filepath.IsAbs(libraryRoot) {
		libraryRoot = filepath.Join(projectRoot, libraryRoot)
	}
	if info, err := os.Stat(libraryRoot); err != nil || !info.IsDir() {
		return nil, domain.NewFileNotFoundError(libraryRoot, err)
	}

	executor := migration.NewExecutor(projectRoot, libraryRoot, s.session.Resolver())

	task := s.progress.StartTask("Applying migrations", len(plan.ExecutionOrder))
	defer task.Complete()

	resp := &domain.ExecuteResponse{}
	for _, step := range plan.ExecutionOrder {
		action := plan.ActionByID(step.ActionID)
		if action == nil {
			resp.Results = append(resp.Results, domain.ExecutionResult{
				ActionID: step.ActionID,
				Message:  "plan corrupt: execution order references unknown action",
			})
			resp.Failed++
			task.Increment(1)
			continue
		}

		result := executor.ExecuteAction(*action, plan.ImportUpdates, opts.DryRun, opts.Backup)
		resp.Results = append(resp.Results, result)
		if result.Success {
			resp.Succeeded++
		} else {
			resp.Failed++
		}
		resp.Warnings += len(result.Warnings)
		task.Increment(1)
	}

	return resp, nil
}
