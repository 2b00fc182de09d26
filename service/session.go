package service

import (
	"os"

	"tsshift/domain"
	"tsshift/internal/config"
	"tsshift/internal/resolver"
)

// RefactorSession owns the per-run state shared between services: the tool
// configuration and a path-resolver cache keyed by project root. The cache
// lives exactly as long as the run, so repeated resolution is cheap without
// any process-global state.
type RefactorSession struct {
	projectRoot string
	cfg         *config.Config
	resolvers   *resolver.Cache
}

// NewRefactorSession creates a session for a project root. The root must
// exist on disk.
func NewRefactorSession(projectRoot string, cfg *config.Config) (*RefactorSession, error) {
	info, err := os.Stat(projectRoot)
	if err != nil || !info.IsDir() {
		return nil, domain.NewFileNotFoundError(projectRoot, err)
	}
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &RefactorSession{
		projectRoot: projectRoot,
		cfg:         cfg,
		resolvers:   resolver.NewCache(),
	}, nil
}

// ProjectRoot returns the project root the session was created for
func (s *RefactorSession) ProjectRoot() string {
	return s.projectRoot
}

// Config returns the tool configuration
func (s *RefactorSession) Config() *config.Config {
	return s.cfg
}

// Resolver returns the cached path resolver for the session's project root
func (s *RefactorSession) Resolver() *resolver.PathResolver {
	return s.resolvers.Get(s.projectRoot)
}

// ResolverFor returns the cached path resolver for an arbitrary root
func (s *RefactorSession) ResolverFor(root string) *resolver.PathResolver {
	return s.resolvers.Get(root)
}
