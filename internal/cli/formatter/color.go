package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/porbotenet-wq/facadeflow/internal/domain"
)

// Palette of the Mini App's dark theme.
var (
	ColorGreen  = lipgloss.Color("#10b981")
	ColorYellow = lipgloss.Color("#f59e0b")
	ColorRed    = lipgloss.Color("#ef4444")
	ColorBlue   = lipgloss.Color("#38bdf8")
	ColorPurple = lipgloss.Color("#a78bfa")
	ColorDim    = lipgloss.Color("#4a6080")
	ColorFg     = lipgloss.Color("#e2e8f0")
	ColorHeader = lipgloss.Color("#4f8ef7")
)

var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// Hex renders text in an arbitrary "#rrggbb" color, as stored on workflow
// stages.
func Hex(color, text string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(text)
}

// Header renders an upper-cased section title with an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Title renders an upper-cased title followed by subject on one line, with
// the underline spanning both.
func Title(title, subject string) string {
	line := StyleHeader.Render(strings.ToUpper(title))
	if subject != "" {
		line += " " + subject
	}
	return line + "\n" + StyleDim.Render(strings.Repeat("─", lipgloss.Width(line)))
}

func Dim(text string) string {
	return StyleDim.Render(text)
}

func Bold(text string) string {
	return StyleBold.Render(text)
}

// TaskStatusPill renders a task status with its board symbol.
func TaskStatusPill(s domain.TaskStatus) string {
	switch s {
	case domain.TaskWaiting:
		return StyleDim.Render("○ " + string(s))
	case domain.TaskInProgress:
		return StyleBlue.Render("▶ " + string(s))
	case domain.TaskDone:
		return StyleGreen.Render("✔ " + string(s))
	case domain.TaskCancelled:
		return StyleRed.Render("✖ " + string(s))
	default:
		return StyleDim.Render(string(s))
	}
}

func ObjectStatusPill(s domain.ObjectStatus) string {
	label := s.Label()
	switch s {
	case domain.ObjectNew:
		return StyleBlue.Render("● " + label)
	case domain.ObjectInProgress:
		return StyleGreen.Render("● " + label)
	case domain.ObjectPaused:
		return StyleYellow.Render("○ " + label)
	case domain.ObjectCompleted:
		return StyleDim.Render("✔ " + label)
	default:
		return StyleDim.Render("✖ " + label)
	}
}

func UserStatusPill(s domain.UserStatus) string {
	switch s {
	case domain.UserActive:
		return StyleGreen.Render("● " + string(s))
	case domain.UserPending:
		return StyleYellow.Render("○ " + string(s))
	default:
		return StyleRed.Render("✖ " + string(s))
	}
}
