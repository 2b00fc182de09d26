package service

import (
	"context"

	"tsshift/domain"
	"tsshift/internal/migration"
)

// PlanServiceImpl implements domain.PlanService
type PlanServiceImpl struct {
	session  *RefactorSession
	graphSvc domain.ImportGraphService
}

// NewPlanService creates the planning service
func NewPlanService(session *RefactorSession, graphSvc domain.ImportGraphService) *PlanServiceImpl {
	return &PlanServiceImpl{session: session, graphSvc: graphSvc}
}

// Plan builds the import graph for the project and turns duplicate groups
// and intents into a migration plan. Planning is read-only.
func (s *PlanServiceImpl) Plan(ctx context.Context, req domain.PlanRequest) (*domain.PlanResponse, error) {
	root := req.ProjectRoot
	if root == "" {
		root = s.session.ProjectRoot()
	}

	graphResp, err := s.graphSvc.Build(ctx, domain.ImportGraphRequest{Dir: root})
	if err != nil {
		return nil, err
	}

	planner := migration.NewPlanner(root, graphResp.Graph)
	plan, warnings := planner.CreatePlan(req.Groups, req.Intents, req.Options)

	if req.SafeOnly {
		plan = migration.FilterSafeTypeMigrations(plan)
	}

	return &domain.PlanResponse{
		Plan:     plan,
		Warnings: append(graphResp.Warnings, warnings...),
	}, nil
}
