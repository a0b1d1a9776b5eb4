package service

import (
	"github.com/porbotenet-wq/facadeflow/internal/domain"
	"github.com/porbotenet-wq/facadeflow/internal/template"
)

type workflowService struct {
	stages  []template.WorkflowStage
	catalog []template.WorkBreakdownItem
}

func NewWorkflowService() WorkflowService {
	return &workflowService{stages: template.WorkflowStages, catalog: template.GPRTemplate}
}

func (s *workflowService) Stages(roleName string, mine bool) WorkflowView {
	stages := s.stages
	if mine {
		stages = template.FilterStagesForRole(stages, roleName)
	}
	return WorkflowView{
		Stages:     stages,
		StageCount: len(stages),
		StepCount:  template.StepCount(stages),
	}
}

func (s *workflowService) GPR(workType domain.WorkType) []template.WorkBreakdownItem {
	if workType == "" {
		return s.catalog
	}
	var out []template.WorkBreakdownItem
	for _, it := range s.catalog {
		if it.WorkType == workType || it.WorkType == domain.WorkTypeBoth {
			out = append(out, it)
		}
	}
	return out
}
