package domain

import "time"

type Facade struct {
	ID           string
	ObjectID     string
	Name         string
	SortOrder    int
	Status       FacadeStatus
	ModulesPlan  int
	ModulesFact  int
	BracketsPlan int
	BracketsFact int
	CreatedAt    time.Time
}

// ModulesPct is the share of planned modules already mounted, 0..100.
func (f *Facade) ModulesPct() float64 {
	return percent(float64(f.ModulesFact), float64(f.ModulesPlan))
}

// BracketsPct is the share of planned brackets already mounted, 0..100.
func (f *Facade) BracketsPct() float64 {
	return percent(float64(f.BracketsFact), float64(f.BracketsPlan))
}

func percent(fact, plan float64) float64 {
	if plan <= 0 {
		return 0
	}
	return fact / plan * 100
}

// PlanFactDaily is one day of planned versus actual production for an object.
type PlanFactDaily struct {
	ID           string
	ObjectID     string
	ReportDate   time.Time
	Week         string
	DayNumber    *int
	ModulesPlan  *float64
	ModulesFact  *float64
	BracketsPlan *float64
	BracketsFact *float64
	SealantPlan  *float64
	SealantFact  *float64
	HermeticPlan *float64
	HermeticFact *float64
	Notes        string
	CreatedAt    time.Time
}

// AuditLog records a state change made through the service layer.
type AuditLog struct {
	ID         string
	Action     string
	EntityType string
	EntityID   string
	UserID     *string
	OldValue   map[string]any
	NewValue   map[string]any
	CreatedAt  time.Time
}
