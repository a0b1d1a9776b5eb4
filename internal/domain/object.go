package domain

import (
	"fmt"
	"strings"
	"time"
)

// ConstructionObject is a building or facade under management.
type ConstructionObject struct {
	ID               string
	ProjectID        string
	Name             string
	CustomerName     string
	CustomerAddress  string
	CustomerContacts string
	ContractorName   string
	WorkTypes        []WorkType
	TotalVolumeM2    float64
	StartDate        *time.Time
	EndDate          *time.Time
	ContractDate     *time.Time
	DurationDays     *int
	ContractLink     string
	EstimateLink     string
	ProjectManager   string
	Status           ObjectStatus
	CreatedBy        string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// HasWorkType reports whether w was selected for the object.
func (o *ConstructionObject) HasWorkType(w WorkType) bool {
	for _, t := range o.WorkTypes {
		if t == w {
			return true
		}
	}
	return false
}

// Validate checks the object before it is persisted.
func (o *ConstructionObject) Validate() error {
	if strings.TrimSpace(o.Name) == "" {
		return fmt.Errorf("%w: object name is required", ErrValidation)
	}
	if o.ProjectID == "" {
		return fmt.Errorf("%w: project is required", ErrValidation)
	}
	seen := make(map[WorkType]bool, len(o.WorkTypes))
	for _, w := range o.WorkTypes {
		if !w.Selectable() {
			return fmt.Errorf("%w: unknown work type %q", ErrValidation, w)
		}
		if seen[w] {
			return fmt.Errorf("%w: work type %q selected twice", ErrValidation, w)
		}
		seen[w] = true
	}
	if o.TotalVolumeM2 < 0 {
		return fmt.Errorf("%w: total volume cannot be negative", ErrValidation)
	}
	if o.StartDate != nil && o.EndDate != nil && o.EndDate.Before(*o.StartDate) {
		return fmt.Errorf("%w: end date %s is before start date %s",
			ErrValidation, FormatDate(*o.EndDate), FormatDate(*o.StartDate))
	}
	if o.Status != "" && !o.Status.Valid() {
		return fmt.Errorf("%w: unknown status %q", ErrValidation, o.Status)
	}
	return nil
}

// DisplayID returns the first 8 characters of the object ID.
func (o *ConstructionObject) DisplayID() string {
	return shortID(o.ID)
}

// WorkScheduleItem is one row of an object's work schedule (ГПР).
type WorkScheduleItem struct {
	ID           string
	ObjectID     string
	Section      string
	Subsection   string
	SortOrder    int
	WorkName     string
	Unit         string
	Status       ScheduleStatus
	VolumePlan   *float64
	VolumeFact   *float64
	WorkersCount *int
	StartDate    *time.Time
	EndDate      *time.Time
	DurationDays *int
	Notes        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
