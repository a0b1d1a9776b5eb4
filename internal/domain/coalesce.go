package domain

import "time"

// CoalesceStr returns the first non-empty string from vals.
func CoalesceStr(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

// CoalesceDate picks the first date that is set. Reference dates use it to
// prefer the contract date over the start date.
func CoalesceDate(dates ...*time.Time) *time.Time {
	for _, d := range dates {
		if d != nil {
			return d
		}
	}
	return nil
}

// Quantity reads an optional plan/fact amount, treating an empty one as 0.
func Quantity(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
