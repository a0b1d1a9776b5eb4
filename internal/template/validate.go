package template

import (
	"fmt"

	"github.com/porbotenet-wq/facadeflow/internal/domain"
)

// ValidateGPR checks a work schedule catalog for structural errors.
// Returns a slice of errors (empty if valid).
func ValidateGPR(catalog []WorkBreakdownItem) []error {
	var errs []error
	if len(catalog) == 0 {
		errs = append(errs, fmt.Errorf("at least one work item is required"))
	}
	seen := map[int]bool{}
	prev := 0
	for i, it := range catalog {
		if it.WorkName == "" {
			errs = append(errs, fmt.Errorf("gpr[%d]: work name is required", i))
		}
		if it.Unit == "" {
			errs = append(errs, fmt.Errorf("gpr[%d]: unit is required", i))
		}
		if it.WorkType != domain.WorkTypeBoth && !it.WorkType.Selectable() {
			errs = append(errs, fmt.Errorf("gpr[%d]: unknown work type %q", i, it.WorkType))
		}
		if seen[it.SortOrder] {
			errs = append(errs, fmt.Errorf("gpr[%d]: duplicate sort order %d", i, it.SortOrder))
		}
		if it.SortOrder < prev {
			errs = append(errs, fmt.Errorf("gpr[%d]: sort order %d out of sequence", i, it.SortOrder))
		}
		seen[it.SortOrder] = true
		prev = it.SortOrder
	}
	return errs
}

// ValidateWorkflow checks workflow stages for structural errors.
func ValidateWorkflow(stages []WorkflowStage) []error {
	var errs []error
	if len(stages) == 0 {
		errs = append(errs, fmt.Errorf("at least one stage is required"))
	}
	stageIDs := map[string]bool{}
	stepIDs := map[string]bool{}
	for i, s := range stages {
		if s.ID == "" {
			errs = append(errs, fmt.Errorf("stage[%d]: id is required", i))
		}
		if s.Name == "" {
			errs = append(errs, fmt.Errorf("stage[%d]: name is required", i))
		}
		if stageIDs[s.ID] {
			errs = append(errs, fmt.Errorf("stage[%d]: duplicate id %q", i, s.ID))
		}
		stageIDs[s.ID] = true
		if len(s.Steps) == 0 {
			errs = append(errs, fmt.Errorf("stage %q: at least one step is required", s.ID))
		}
		for j, st := range s.Steps {
			if st.ID == "" {
				errs = append(errs, fmt.Errorf("stage %q step[%d]: id is required", s.ID, j))
			}
			if st.Action == "" {
				errs = append(errs, fmt.Errorf("stage %q step[%d]: action is required", s.ID, j))
			}
			if st.Initiator == "" {
				errs = append(errs, fmt.Errorf("stage %q step[%d]: initiator is required", s.ID, j))
			}
			if stepIDs[st.ID] {
				errs = append(errs, fmt.Errorf("stage %q step[%d]: duplicate id %q", s.ID, j, st.ID))
			}
			stepIDs[st.ID] = true
		}
	}
	return errs
}
