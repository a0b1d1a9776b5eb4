package domain

import "time"

// EcosystemTask is one materialized workflow step for an object.
type EcosystemTask struct {
	ID             string
	ObjectID       string
	TaskNumber     int
	TaskName       string
	Block          string
	Department     string
	Code           string
	Responsible    string
	Recipient      string
	IncomingDoc    string
	OutgoingDoc    string
	BotTrigger     string
	Priority       TaskPriority
	Status         TaskStatus
	PlannedDate    *time.Time
	DurationDays   int
	AssignedUserID *string
	CompletedAt    *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// IsOverdue reports whether the planned date is before today and the task is still open.
func (t *EcosystemTask) IsOverdue(now time.Time) bool {
	if t.PlannedDate == nil || t.Status.Closed() {
		return false
	}
	return t.PlannedDate.Before(Today(now))
}

// IsAssignedTo reports whether the task is assigned to userID.
func (t *EcosystemTask) IsAssignedTo(userID string) bool {
	return t.AssignedUserID != nil && *t.AssignedUserID == userID
}
