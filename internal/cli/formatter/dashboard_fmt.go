package formatter

import (
	"fmt"
	"strings"

	"github.com/porbotenet-wq/facadeflow/internal/domain"
	"github.com/porbotenet-wq/facadeflow/internal/service"
)

var boardOrder = []domain.TaskStatus{domain.TaskWaiting, domain.TaskInProgress, domain.TaskDone, domain.TaskCancelled}

// FormatDashboard renders the greeting and the project aggregates.
func FormatDashboard(u *domain.User, p *domain.Project, s *service.DashboardStats) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", Bold(u.FullName), Dim("· "+u.RoleLabel()))
	fmt.Fprintf(&b, "%s\n\n", Dim(p.Name))

	rows := [][]string{
		{"Objects", fmt.Sprintf("%d", s.TotalObjects)},
		{"Tasks", fmt.Sprintf("%d", s.TotalTasks)},
		{"My tasks", StyleBlue.Render(fmt.Sprintf("%d", s.MyTasks))},
		{"Overdue", StyleRed.Render(fmt.Sprintf("%d", s.OverdueTasks))},
		{"Done", StyleGreen.Render(fmt.Sprintf("%d", s.DoneTasks))},
		{"Active users", fmt.Sprintf("%d", s.ActiveUsers)},
	}
	b.WriteString(RenderTable([]string{"METRIC", "VALUE"}, rows))
	b.WriteString("\n")
	fmt.Fprintf(&b, "Completion %s\n", RenderProgress(s.CompletionPct, 20))

	if s.TotalTasks > 0 {
		b.WriteString("\n")
		for _, st := range boardOrder {
			fmt.Fprintf(&b, "%s %d\n", TaskStatusPill(st), s.TasksByStatus[st])
		}
	}
	return b.String()
}

// FormatProjectInfo renders the project header with its counters.
func FormatProjectInfo(info *service.ProjectInfo) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", Bold(info.Project.Name), Dim(info.Project.DisplayID()))
	if info.Project.Description != "" {
		fmt.Fprintf(&b, "%s\n", info.Project.Description)
	}
	fmt.Fprintf(&b, "objects: %d · active users: %d\n", info.ObjectCount, info.ActiveUsers)
	return b.String()
}
