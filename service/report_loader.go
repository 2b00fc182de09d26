package service

import (
	"encoding/json"
	"os"

	"tsshift/domain"
)

// DuplicateReport is the on-disk input to planning: the duplicate groups an
// upstream detector emitted, plus optional caller-supplied move and merge
// intents
type DuplicateReport struct {
	Groups  []domain.DuplicateGroup  `json:"groups"`
	Intents []domain.MigrationIntent `json:"intents,omitempty"`
}

// ReportLoaderImpl loads duplicate reports from disk
type ReportLoaderImpl struct{}

// NewReportLoader creates a new report loader
func NewReportLoader() *ReportLoaderImpl {
	return &ReportLoaderImpl{}
}

// Load reads and validates a duplicate report file
func (l *ReportLoaderImpl) Load(path string) (*DuplicateReport, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, domain.NewFileNotFoundError(path, err)
	}

	var report DuplicateReport
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, domain.NewInvalidInputError("failed to parse duplicate report: "+path, err)
	}

	if err := l.validate(&report); err != nil {
		return nil, err
	}
	return &report, nil
}

// validate rejects reports the planner cannot act on
func (l *ReportLoaderImpl) validate(report *DuplicateReport) error {
	for _, group := range report.Groups {
		if group.Name == "" {
			return domain.NewInvalidInputError("duplicate group is missing a name", nil)
		}
		if group.Similarity < 0 || group.Similarity > 1 {
			return domain.NewInvalidInputError(
				"duplicate group "+group.Name+" has similarity outside [0,1]", nil)
		}
		for _, loc := range group.Locations {
			if loc.File == "" || loc.Name == "" {
				return domain.NewInvalidInputError(
					"duplicate group "+group.Name+" has a location missing file or name", nil)
			}
		}
	}
	for _, intent := range report.Intents {
		if intent.Type != domain.ActionMove && intent.Type != domain.ActionMerge {
			return domain.NewInvalidInputError(
				"intent type must be move or merge, got "+string(intent.Type), nil)
		}
		if intent.Source == "" || intent.Target == "" {
			return domain.NewInvalidInputError("intent is missing source or target", nil)
		}
	}
	return nil
}
