package app

import (
	"context"
	"fmt"

	"tsshift/domain"
)

// ApplyUseCase orchestrates migration plan execution
type ApplyUseCase struct {
	service domain.MigrationService
}

// NewApplyUseCase creates a new apply use case
func NewApplyUseCase(service domain.MigrationService) *ApplyUseCase {
	return &ApplyUseCase{service: service}
}

// Execute validates the plan and applies its actions in order
func (uc *ApplyUseCase) Execute(ctx context.Context, plan *domain.MigrationPlan, opts domain.ExecuteOptions) (*domain.ExecuteResponse, error) {
	if err := uc.validatePlan(plan); err != nil {
		return nil, domain.NewInvalidInputError("invalid plan", err)
	}
	return uc.service.Execute(ctx, plan, opts)
}

// validatePlan rejects plans the executor cannot apply
func (uc *ApplyUseCase) validatePlan(plan *domain.MigrationPlan) error {
	if plan == nil {
		return fmt.Errorf("no plan supplied")
	}
	if len(plan.Actions) == 0 {
		return fmt.Errorf("plan contains no actions")
	}
	if len(plan.ExecutionOrder) != len(plan.Actions) {
		return fmt.Errorf("execution order covers %d of %d actions",
			len(plan.ExecutionOrder), len(plan.Actions))
	}
	for _, step := range plan.ExecutionOrder {
		if plan.ActionByID(step.ActionID) == nil {
			return fmt.Errorf("execution order references unknown action %s", step.ActionID)
		}
	}
	return nil
}
