package app

import (
	"context"
	"fmt"

	"tsshift/domain"
)

// PlanUseCase orchestrates the migration planning workflow
type PlanUseCase struct {
	service domain.PlanService
}

// NewPlanUseCase creates a new plan use case
func NewPlanUseCase(service domain.PlanService) *PlanUseCase {
	return &PlanUseCase{service: service}
}

// Execute validates the request and produces a migration plan
func (uc *PlanUseCase) Execute(ctx context.Context, req domain.PlanRequest) (*domain.PlanResponse, error) {
	if err := uc.validateRequest(req); err != nil {
		return nil, domain.NewInvalidInputError("invalid request", err)
	}
	return uc.service.Plan(ctx, req)
}

// validateRequest validates the plan request
func (uc *PlanUseCase) validateRequest(req domain.PlanRequest) error {
	if len(req.Groups) == 0 && len(req.Intents) == 0 {
		return fmt.Errorf("nothing to plan: no duplicate groups or intents supplied")
	}
	if req.Options.MinSimilarity < 0 || req.Options.MinSimilarity > 1 {
		return fmt.Errorf("min similarity must be within [0,1], got %v", req.Options.MinSimilarity)
	}
	switch req.OutputFormat {
	case "", domain.OutputFormatText, domain.OutputFormatJSON, domain.OutputFormatYAML:
	default:
		return fmt.Errorf("invalid output format: %s (must be one of: text, json, yaml)", req.OutputFormat)
	}
	return nil
}
