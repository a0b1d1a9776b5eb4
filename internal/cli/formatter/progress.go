package formatter

import (
	"fmt"
	"strings"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderProgress renders a bar like [████░░░░]  45% for pct in 0..100. The
// bar is green above 66%, yellow from 33% and red below.
func RenderProgress(pct float64, width int) string {
	return fmt.Sprintf("[%s] %3.0f%%", RenderCompactBar(pct, width), clampPct(pct))
}

// RenderCompactBar renders only the blocks of a progress bar.
func RenderCompactBar(pct float64, width int) string {
	pct = clampPct(pct)
	width = max(width, 2)

	filled := min(int(pct/100*float64(width)), width)
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)

	style := StyleGreen
	switch {
	case pct < 33:
		style = StyleRed
	case pct < 66:
		style = StyleYellow
	}
	return style.Render(bar)
}

func clampPct(pct float64) float64 {
	return min(max(pct, 0), 100)
}
