package service

import (
	"context"
	"os"
	"path/filepath"
	"time"

	gitignore "github.com/sabhiram/go-gitignore"

	"tsshift/domain"
	"tsshift/internal/analyzer"
	"tsshift/internal/version"
)

// ImportGraphServiceImpl implements domain.ImportGraphService
type ImportGraphServiceImpl struct {
	session  *RefactorSession
	progress domain.ProgressManager
}

// NewImportGraphService creates the import graph service
func NewImportGraphService(session *RefactorSession, progress domain.ProgressManager) *ImportGraphServiceImpl {
	if progress == nil {
		progress = &NoOpProgressManager{}
	}
	return &ImportGraphServiceImpl{session: session, progress: progress}
}

// Build scans the requested directory and constructs the import graph
func (s *ImportGraphServiceImpl) Build(ctx context.Context, req domain.ImportGraphRequest) (*domain.ImportGraphResponse, error) {
	dir := req.Dir
	if dir == "" {
		dir = s.session.ProjectRoot()
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return nil, domain.NewFileNotFoundError(dir, err)
	}

	cfg := s.session.Config()
	builderCfg := analyzer.ImportGraphBuilderConfig{
		ProjectRoot:    s.session.ProjectRoot(),
		NamePatterns:   req.NamePatterns,
		MaxConcurrency: cfg.Scan.MaxConcurrency,
	}
	if len(builderCfg.NamePatterns) == 0 {
		builderCfg.NamePatterns = cfg.Scan.NamePatterns
	}
	if cfg.Scan.RespectGitignore {
		if ignorer, igErr := gitignore.CompileIgnoreFile(filepath.Join(s.session.ProjectRoot(), ".gitignore")); igErr == nil {
			builderCfg.Ignorer = ignorer
		}
	}

	builder := analyzer.NewImportGraphBuilder(builderCfg, s.session.Resolver())

	files, err := builder.CollectSourceFiles(dir)
	if err != nil {
		return nil, err
	}

	task := s.progress.StartTask("Scanning imports", len(files))
	graph, err := builder.BuildFromFiles(ctx, dir, files, task)
	task.Complete()
	if err != nil {
		return nil, err
	}

	resp := &domain.ImportGraphResponse{
		Graph:        graph,
		FilesScanned: len(files),
		GeneratedAt:  time.Now().Format(time.RFC3339),
		Version:      version.GetVersion(),
	}
	for _, unresolved := range graph.Unresolved {
		resp.Warnings = append(resp.Warnings, "unresolved import: "+unresolved)
	}
	return resp, nil
}
