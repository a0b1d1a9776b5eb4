package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/porbotenet-wq/facadeflow/internal/domain"
)

// RenderBox wraps content in a rounded border with an optional title.
func RenderBox(title string, content string) string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		Padding(1, 2)
	if title == "" {
		return box.Render(content)
	}
	return box.Render(StyleHeader.Render(strings.ToUpper(title)) + "\n\n" + content)
}

// TruncID returns the first 8 characters of an id, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}

// OptionalDate renders a civil date or a dim placeholder.
func OptionalDate(t *time.Time) string {
	if t == nil {
		return Dim("--")
	}
	return domain.FormatDate(*t)
}

// PlannedDate renders a task's planned date, red when overdue at now.
func PlannedDate(t *domain.EcosystemTask, now time.Time) string {
	if t.PlannedDate == nil {
		return Dim("--")
	}
	s := domain.FormatDate(*t.PlannedDate)
	if t.IsOverdue(now) {
		return StyleRed.Render(s + " !")
	}
	return s
}

// Quantity renders an optional plan-fact quantity.
func Quantity(v *float64) string {
	if v == nil {
		return Dim("--")
	}
	return trimFloat(*v)
}

func trimFloat(v float64) string {
	return strings.TrimSuffix(strings.TrimRight(fmt.Sprintf("%.2f", v), "0"), ".")
}

// Truncate shortens s to n visible runes with an ellipsis.
func Truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n || n < 2 {
		return s
	}
	return string(r[:n-1]) + "…"
}

func formatTelegramID(id int64) string {
	return fmt.Sprintf("%d", id)
}
