package formatter

import (
	"fmt"
	"strings"

	"github.com/porbotenet-wq/facadeflow/internal/template"
)

// FormatWorkflow renders stages as a tree of steps. Steps roleName may
// execute are marked.
func FormatWorkflow(stages []template.WorkflowStage, roleName string) string {
	var items []TreeItem
	for _, st := range stages {
		items = append(items, TreeItem{
			Title:  Hex(st.Color, st.Icon+" "+st.Name),
			Detail: fmt.Sprintf("%d steps", len(st.Steps)),
		})
		for i, step := range st.Steps {
			items = append(items, TreeItem{
				Title:  fmt.Sprintf("%s %s %s", Dim(step.ID), step.Action, Dim("→ "+step.Receiver)),
				Level:  1,
				IsLast: i == len(st.Steps)-1,
				Marked: template.CanExecuteStep(roleName, step),
				Detail: step.Deadline,
			})
		}
	}
	return RenderTree(items)
}

// FormatGPR renders the schedule catalog grouped by section and subsection.
func FormatGPR(items []template.WorkBreakdownItem) string {
	headers := []string{"#", "SECTION", "SUBSECTION", "WORK", "UNIT"}
	rows := make([][]string, 0, len(items))
	for _, it := range items {
		rows = append(rows, []string{
			Dim(fmt.Sprintf("%d", it.SortOrder)),
			it.Section,
			it.Subsection,
			it.WorkName,
			it.Unit,
		})
	}
	return strings.TrimRight(RenderTable(headers, rows), "\n") + "\n"
}
