package app

import (
	"context"
	"fmt"

	"tsshift/domain"
)

// GraphUseCase orchestrates the import graph scan workflow
type GraphUseCase struct {
	service domain.ImportGraphService
}

// NewGraphUseCase creates a new graph use case
func NewGraphUseCase(service domain.ImportGraphService) *GraphUseCase {
	return &GraphUseCase{service: service}
}

// Execute validates the request and builds the import graph
func (uc *GraphUseCase) Execute(ctx context.Context, req domain.ImportGraphRequest) (*domain.ImportGraphResponse, error) {
	if err := uc.validateRequest(req); err != nil {
		return nil, domain.NewInvalidInputError("invalid request", err)
	}
	return uc.service.Build(ctx, req)
}

// validateRequest validates the import graph request
func (uc *GraphUseCase) validateRequest(req domain.ImportGraphRequest) error {
	switch req.OutputFormat {
	case "", domain.OutputFormatText, domain.OutputFormatJSON, domain.OutputFormatYAML, domain.OutputFormatDOT:
	default:
		return fmt.Errorf("invalid output format: %s (must be one of: text, json, yaml, dot)", req.OutputFormat)
	}
	return nil
}
