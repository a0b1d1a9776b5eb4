package template

import (
	"testing"

	"github.com/porbotenet-wq/facadeflow/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestBuiltInTemplatesAreValid(t *testing.T) {
	assert.Empty(t, ValidateGPR(GPRTemplate))
	assert.Empty(t, ValidateWorkflow(WorkflowStages))
	assert.Len(t, GPRTemplate, 60)
	assert.Len(t, WorkflowStages, 8)
}

func TestValidateGPR_Errors(t *testing.T) {
	errs := ValidateGPR([]WorkBreakdownItem{
		{SortOrder: 2, WorkName: "A", Unit: "м2", WorkType: domain.WorkTypeNVF},
		{SortOrder: 1, WorkName: "", Unit: "", WorkType: "XYZ"},
		{SortOrder: 1, WorkName: "C", Unit: "шт.", WorkType: domain.WorkTypeBoth},
	})
	msgs := make([]string, len(errs))
	for i, e := range errs {
		msgs[i] = e.Error()
	}
	assert.Contains(t, msgs, "gpr[1]: work name is required")
	assert.Contains(t, msgs, "gpr[1]: unit is required")
	assert.Contains(t, msgs, `gpr[1]: unknown work type "XYZ"`)
	assert.Contains(t, msgs, "gpr[1]: sort order 1 out of sequence")
	assert.Contains(t, msgs, "gpr[2]: duplicate sort order 1")
	assert.NotEmpty(t, ValidateGPR(nil))
}

func TestValidateWorkflow_Errors(t *testing.T) {
	errs := ValidateWorkflow([]WorkflowStage{
		{ID: "a", Name: "A", Steps: []WorkflowStep{{ID: "1", Action: "x", Initiator: "ПТО"}}},
		{ID: "a", Name: "", Steps: []WorkflowStep{{ID: "1", Action: "", Initiator: ""}}},
		{ID: "c", Name: "C"},
	})
	msgs := make([]string, len(errs))
	for i, e := range errs {
		msgs[i] = e.Error()
	}
	assert.Contains(t, msgs, `stage[1]: duplicate id "a"`)
	assert.Contains(t, msgs, "stage[1]: name is required")
	assert.Contains(t, msgs, `stage "a" step[0]: duplicate id "1"`)
	assert.Contains(t, msgs, `stage "a" step[0]: action is required`)
	assert.Contains(t, msgs, `stage "c": at least one step is required`)
}

func TestCanExecuteStep(t *testing.T) {
	step := WorkflowStep{Initiator: "ПТО"}
	assert.True(t, CanExecuteStep("ПТО", step))
	assert.True(t, CanExecuteStep("ADMIN", step))
	assert.False(t, CanExecuteStep("Отдел снабжения", step))
	assert.False(t, CanExecuteStep("", WorkflowStep{}))
}

func TestFilterStagesForRole(t *testing.T) {
	stages := FilterStagesForRole(WorkflowStages, "Отдел снабжения")
	assert.NotEmpty(t, stages)
	for _, s := range stages {
		assert.NotEmpty(t, s.Steps)
		for _, st := range s.Steps {
			assert.Equal(t, "Отдел снабжения", st.Initiator)
		}
	}
	assert.Equal(t, StepCount(WorkflowStages), StepCount(FilterStagesForRole(WorkflowStages, "ADMIN")))
	assert.Empty(t, FilterStagesForRole(WorkflowStages, "Бухгалтерия"))

	color, ok := StageColor("Монтаж")
	assert.True(t, ok)
	assert.Equal(t, "#ef4444", color)
}
