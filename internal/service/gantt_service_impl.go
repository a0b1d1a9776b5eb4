package service

import (
	"context"
	"time"

	"github.com/porbotenet-wq/facadeflow/internal/domain"
	"github.com/porbotenet-wq/facadeflow/internal/repository"
	"github.com/porbotenet-wq/facadeflow/internal/template"
)

const (
	ganttTailDays     = 30
	defaultBlockColor = "#4a6080"
)

var statusColors = map[domain.TaskStatus]string{
	domain.TaskWaiting:    "#4a6080",
	domain.TaskInProgress: "#38bdf8",
	domain.TaskDone:       "#10b981",
	domain.TaskCancelled:  "#ef4444",
}

// StatusColor returns the chart color of a task status.
func StatusColor(s domain.TaskStatus) string {
	if c, ok := statusColors[s]; ok {
		return c
	}
	return defaultBlockColor
}

// BlockColor returns the palette color of a workflow block.
func BlockColor(block string) string {
	if c, ok := template.StageColor(block); ok {
		return c
	}
	return defaultBlockColor
}

type ganttService struct {
	tasks repository.TaskRepo
}

func NewGanttService(tasks repository.TaskRepo) GanttService {
	return &ganttService{tasks: tasks}
}

func (s *ganttService) Build(ctx context.Context, objectID, block string) (*GanttChart, error) {
	tasks, err := s.tasks.List(ctx, repository.TaskFilter{ObjectID: objectID, Block: block, Limit: taskListLimit})
	if err != nil {
		return nil, err
	}
	return buildGantt(tasks), nil
}

// buildGantt lays out tasks with planned dates on a day grid. Tasks without a
// planned date are left off the chart.
func buildGantt(tasks []*domain.EcosystemTask) *GanttChart {
	var dated []*domain.EcosystemTask
	for _, t := range tasks {
		if t.PlannedDate != nil {
			dated = append(dated, t)
		}
	}
	if len(dated) == 0 {
		return nil
	}

	start, end := *dated[0].PlannedDate, *dated[0].PlannedDate
	for _, t := range dated[1:] {
		if t.PlannedDate.Before(start) {
			start = *t.PlannedDate
		}
		if t.PlannedDate.After(end) {
			end = *t.PlannedDate
		}
	}

	chart := &GanttChart{
		Start:     start,
		End:       end,
		TotalDays: template.DaysBetween(start, end) + ganttTailDays,
		Weeks:     mondays(start, end.AddDate(0, 0, ganttTailDays)),
	}
	seenBlock := map[string]bool{}
	for _, t := range dated {
		chart.Bars = append(chart.Bars, GanttBar{
			Task:        t,
			Offset:      template.DaysBetween(start, *t.PlannedDate),
			Width:       max(t.DurationDays, 1),
			BlockColor:  BlockColor(t.Block),
			StatusColor: StatusColor(t.Status),
		})
		if t.Block != "" && !seenBlock[t.Block] {
			seenBlock[t.Block] = true
			chart.Blocks = append(chart.Blocks, t.Block)
		}
	}
	return chart
}

// mondays returns the Monday-started weeks that cover [from, to].
func mondays(from, to time.Time) []time.Time {
	wd := (int(from.Weekday()) + 6) % 7 // Monday = 0
	week := domain.Today(from).AddDate(0, 0, -wd)
	var out []time.Time
	for !week.After(to) {
		out = append(out, week)
		week = week.AddDate(0, 0, 7)
	}
	return out
}
