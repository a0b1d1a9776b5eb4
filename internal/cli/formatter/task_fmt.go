package formatter

import (
	"strconv"
	"time"

	"github.com/porbotenet-wq/facadeflow/internal/domain"
	"github.com/porbotenet-wq/facadeflow/internal/service"
)

const taskNameWidth = 48

// FormatTaskList renders tasks as a table, flagging overdue planned dates.
func FormatTaskList(tasks []*domain.EcosystemTask, now time.Time) string {
	headers := []string{"#", "TASK", "BLOCK", "DEPARTMENT", "PLANNED", "STATUS", "ID"}
	rows := make([][]string, 0, len(tasks))
	for _, t := range tasks {
		rows = append(rows, []string{
			StyleDim.Render(strconv.Itoa(t.TaskNumber)),
			Truncate(t.TaskName, taskNameWidth),
			Hex(service.BlockColor(t.Block), t.Block),
			t.Department,
			PlannedDate(t, now),
			TaskStatusPill(t.Status),
			TruncID(t.ID),
		})
	}
	return RenderTable(headers, rows)
}
