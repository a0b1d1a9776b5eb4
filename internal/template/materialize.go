package template

import (
	"time"

	"github.com/google/uuid"
	"github.com/porbotenet-wq/facadeflow/internal/domain"
)

// MaterializeSchedule expands GPRTemplate into schedule rows for an object.
// An item is kept when its work type was selected or is BOTH; template order
// is preserved. An empty selection yields no rows.
func MaterializeSchedule(objectID string, workTypes []domain.WorkType) []*domain.WorkScheduleItem {
	return materializeSchedule(GPRTemplate, objectID, workTypes)
}

func materializeSchedule(catalog []WorkBreakdownItem, objectID string, workTypes []domain.WorkType) []*domain.WorkScheduleItem {
	if len(workTypes) == 0 {
		return nil
	}
	selected := make(map[domain.WorkType]bool, len(workTypes))
	for _, w := range workTypes {
		selected[w] = true
	}

	now := time.Now().UTC()
	var items []*domain.WorkScheduleItem
	for _, it := range catalog {
		if it.WorkType != domain.WorkTypeBoth && !selected[it.WorkType] {
			continue
		}
		items = append(items, &domain.WorkScheduleItem{
			ID:         uuid.New().String(),
			ObjectID:   objectID,
			Section:    it.Section,
			Subsection: it.Subsection,
			SortOrder:  it.SortOrder,
			WorkName:   it.WorkName,
			Unit:       it.Unit,
			Status:     domain.SchedulePlanned,
			CreatedAt:  now,
			UpdatedAt:  now,
		})
	}
	return items
}

// MaterializeTasks expands WorkflowStages into one task per step, numbered
// 1..N across all stages with no per-stage restart. Steps whose deadline
// resolves get refDate+offset as planned date; the others get none.
func MaterializeTasks(objectID string, refDate time.Time) []*domain.EcosystemTask {
	return materializeTasks(WorkflowStages, objectID, refDate)
}

func materializeTasks(stages []WorkflowStage, objectID string, refDate time.Time) []*domain.EcosystemTask {
	ref := domain.Today(refDate)
	now := time.Now().UTC()

	tasks := make([]*domain.EcosystemTask, 0, StepCount(stages))
	seq := 0
	for _, stage := range stages {
		for _, step := range stage.Steps {
			seq++
			task := &domain.EcosystemTask{
				ID:          uuid.New().String(),
				ObjectID:    objectID,
				TaskNumber:  seq,
				TaskName:    step.Action,
				Block:       stage.Name,
				Department:  step.Initiator,
				Code:        step.ID,
				Responsible: step.Initiator,
				Recipient:   step.Receiver,
				IncomingDoc: step.Document,
				OutgoingDoc: step.Document,
				BotTrigger:  step.Trigger,
				Priority:    domain.PriorityMedium,
				Status:      domain.TaskWaiting,
				CreatedAt:   now,
				UpdatedAt:   now,
			}
			if days, ok := ResolveDeadline(step.Deadline); ok {
				planned := ref.AddDate(0, 0, days)
				task.PlannedDate = &planned
				task.DurationDays = days
			}
			tasks = append(tasks, task)
		}
	}
	return tasks
}
