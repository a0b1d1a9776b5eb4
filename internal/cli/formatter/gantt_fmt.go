package formatter

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/porbotenet-wq/facadeflow/internal/service"
)

const (
	ganttLabelWidth = 32
	ganttBar        = "█"
	ganttEmpty      = "·"
)

// GanttScale returns how many days one column represents so that totalDays
// fits in cols columns.
func GanttScale(totalDays, cols int) int {
	if cols <= 0 || totalDays <= cols {
		return 1
	}
	return int(math.Ceil(float64(totalDays) / float64(cols)))
}

// RenderGantt draws the chart with at most cols grid columns. Bars take the
// status color; the label takes the block color.
func RenderGantt(c *service.GanttChart, cols int) string {
	if c == nil {
		return Dim("No tasks with planned dates.") + "\n"
	}
	scale := GanttScale(c.TotalDays, cols)
	gridCols := int(math.Ceil(float64(c.TotalDays) / float64(scale)))

	var b strings.Builder
	b.WriteString(strings.Repeat(" ", ganttLabelWidth+1))
	b.WriteString(weekRuler(c, scale, gridCols))
	b.WriteString("\n")

	for _, bar := range c.Bars {
		label := Truncate(fmt.Sprintf("#%d %s", bar.Task.TaskNumber, bar.Task.TaskName), ganttLabelWidth)
		label = Hex(bar.BlockColor, label)
		b.WriteString(label)
		b.WriteString(strings.Repeat(" ", max(ganttLabelWidth-lipgloss.Width(label), 0)+1))

		start := bar.Offset / scale
		width := max(int(math.Ceil(float64(bar.Width)/float64(scale))), 1)
		end := min(start+width, gridCols)
		b.WriteString(Dim(strings.Repeat(ganttEmpty, start)))
		b.WriteString(Hex(bar.StatusColor, strings.Repeat(ganttBar, max(end-start, 0))))
		b.WriteString(Dim(strings.Repeat(ganttEmpty, max(gridCols-end, 0))))
		b.WriteString("\n")
	}
	return b.String()
}

// weekRuler marks Mondays with their date. Marks never overlap: one that
// would run into the previous label is skipped, and the Monday before the
// chart start is drawn at column 0 only when the next Monday leaves room.
func weekRuler(c *service.GanttChart, scale, gridCols int) string {
	ruler := []rune(strings.Repeat(" ", gridCols))
	column := func(i int) int {
		return int(math.Floor(c.Weeks[i].Sub(c.Start).Hours() / 24 / float64(scale)))
	}

	free := 0
	for i, w := range c.Weeks {
		mark := []rune(w.Format("02.01"))
		offset := column(i)
		if offset < 0 {
			if i+1 < len(c.Weeks) && column(i+1) <= len(mark) {
				continue
			}
			offset = 0
		}
		if offset < free || offset+len(mark) > len(ruler) {
			continue
		}
		copy(ruler[offset:], mark)
		free = offset + len(mark) + 1
	}
	return Dim(string(ruler))
}
