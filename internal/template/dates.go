package template

import (
	"fmt"
	"time"

	"github.com/porbotenet-wq/facadeflow/internal/domain"
)

// AddDays adds days calendar days to an ISO YYYY-MM-DD date. Dates are civil
// UTC dates, so the result never drifts across DST transitions.
func AddDays(iso string, days int) (string, error) {
	d, err := domain.ParseDate(iso)
	if err != nil {
		return "", fmt.Errorf("add %d days: %w", days, err)
	}
	return domain.FormatDate(d.AddDate(0, 0, days)), nil
}

// DaysBetween returns the number of whole calendar days from a to b.
func DaysBetween(a, b time.Time) int {
	return int(domain.Today(b).Sub(domain.Today(a)).Hours() / 24)
}
