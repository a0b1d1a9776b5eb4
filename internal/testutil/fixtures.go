package testutil

import (
	"context"
	"database/sql"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/porbotenet-wq/facadeflow/internal/domain"
	"github.com/porbotenet-wq/facadeflow/internal/repository"
)

var telegramIDCounter atomic.Int64

// Project options
type ProjectOption func(*domain.Project)

func WithDescription(d string) ProjectOption {
	return func(p *domain.Project) {
		p.Description = d
	}
}

func NewTestProject(name string, opts ...ProjectOption) *domain.Project {
	now := time.Now().UTC()
	p := &domain.Project{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// User options
type UserOption func(*domain.User)

func WithRole(r domain.Role) UserOption {
	return func(u *domain.User) {
		u.Role = r
	}
}

func WithDepartment(d string) UserOption {
	return func(u *domain.User) {
		u.Department = d
	}
}

func WithUserStatus(s domain.UserStatus) UserOption {
	return func(u *domain.User) {
		u.Status = s
	}
}

func WithTelegramID(id int64) UserOption {
	return func(u *domain.User) {
		u.TelegramID = id
	}
}

func WithUserCreatedAt(t time.Time) UserOption {
	return func(u *domain.User) {
		u.CreatedAt = t
		u.UpdatedAt = t
	}
}

// NewTestUser returns an ACTIVE user with a unique telegram id.
func NewTestUser(fullName string, opts ...UserOption) *domain.User {
	now := time.Now().UTC()
	u := &domain.User{
		ID:         uuid.New().String(),
		TelegramID: 1_000_000 + telegramIDCounter.Add(1),
		FullName:   fullName,
		Role:       domain.RoleEngineer,
		Status:     domain.UserActive,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// Object options
type ObjectOption func(*domain.ConstructionObject)

func WithWorkTypes(wt ...domain.WorkType) ObjectOption {
	return func(o *domain.ConstructionObject) {
		o.WorkTypes = wt
	}
}

func WithContractDate(d time.Time) ObjectOption {
	return func(o *domain.ConstructionObject) {
		o.ContractDate = &d
	}
}

func WithStartDate(d time.Time) ObjectOption {
	return func(o *domain.ConstructionObject) {
		o.StartDate = &d
	}
}

func WithObjectStatus(s domain.ObjectStatus) ObjectOption {
	return func(o *domain.ConstructionObject) {
		o.Status = s
	}
}

func WithObjectCreatedAt(t time.Time) ObjectOption {
	return func(o *domain.ConstructionObject) {
		o.CreatedAt = t
		o.UpdatedAt = t
	}
}

func NewTestObject(projectID, name string, opts ...ObjectOption) *domain.ConstructionObject {
	now := time.Now().UTC()
	o := &domain.ConstructionObject{
		ID:        uuid.New().String(),
		ProjectID: projectID,
		Name:      name,
		WorkTypes: []domain.WorkType{domain.WorkTypeNVF},
		Status:    domain.ObjectNew,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Task options
type TaskOption func(*domain.EcosystemTask)

func WithTaskStatus(s domain.TaskStatus) TaskOption {
	return func(t *domain.EcosystemTask) {
		t.Status = s
	}
}

func WithPlannedDate(d time.Time) TaskOption {
	return func(t *domain.EcosystemTask) {
		t.PlannedDate = &d
	}
}

func WithBlock(b string) TaskOption {
	return func(t *domain.EcosystemTask) {
		t.Block = b
	}
}

func WithTaskDepartment(d string) TaskOption {
	return func(t *domain.EcosystemTask) {
		t.Department = d
		t.Responsible = d
	}
}

func WithAssignee(userID string) TaskOption {
	return func(t *domain.EcosystemTask) {
		t.AssignedUserID = &userID
	}
}

func WithDuration(days int) TaskOption {
	return func(t *domain.EcosystemTask) {
		t.DurationDays = days
	}
}

func NewTestTask(objectID string, number int, opts ...TaskOption) *domain.EcosystemTask {
	now := time.Now().UTC()
	t := &domain.EcosystemTask{
		ID:         uuid.New().String(),
		ObjectID:   objectID,
		TaskNumber: number,
		TaskName:   "Задача",
		Block:      "Договорной отдел",
		Department: "Договорной отдел",
		Priority:   domain.PriorityMedium,
		Status:     domain.TaskWaiting,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Seed inserts a project and an object into database and returns them.
func Seed(t *testing.T, database *sql.DB, opts ...ObjectOption) (*domain.Project, *domain.ConstructionObject) {
	t.Helper()
	ctx := context.Background()
	p := NewTestProject("Фасады 2024")
	if err := repository.NewSQLiteProjectRepo(database).Create(ctx, p); err != nil {
		t.Fatalf("seeding project: %v", err)
	}
	o := NewTestObject(p.ID, "ЖК Северный", opts...)
	if err := repository.NewSQLiteObjectRepo(database).Create(ctx, o); err != nil {
		t.Fatalf("seeding object: %v", err)
	}
	return p, o
}

// Date parses a YYYY-MM-DD literal or fails the test.
func Date(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := domain.ParseDate(s)
	if err != nil {
		t.Fatalf("parsing %q: %v", s, err)
	}
	return d
}
