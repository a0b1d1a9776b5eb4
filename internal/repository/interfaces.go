package repository

import (
	"context"
	"time"

	"github.com/porbotenet-wq/facadeflow/internal/domain"
)

type ProjectRepo interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	// First returns the oldest project, the deployment's current one.
	First(ctx context.Context) (*domain.Project, error)
	List(ctx context.Context) ([]*domain.Project, error)
	Update(ctx context.Context, p *domain.Project) error
}

type UserRepo interface {
	Create(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByTelegramID(ctx context.Context, telegramID int64) (*domain.User, error)
	// List returns users newest first; an empty status matches all.
	List(ctx context.Context, status domain.UserStatus) ([]*domain.User, error)
	Update(ctx context.Context, u *domain.User) error
	CountByStatus(ctx context.Context, status domain.UserStatus) (int, error)
}

type ObjectRepo interface {
	Create(ctx context.Context, o *domain.ConstructionObject) error
	GetByID(ctx context.Context, id string) (*domain.ConstructionObject, error)
	ListByProject(ctx context.Context, projectID string) ([]*domain.ConstructionObject, error)
	UpdateStatus(ctx context.Context, id string, status domain.ObjectStatus) error
	CountByProject(ctx context.Context, projectID string) (int, error)
}

type ScheduleRepo interface {
	CreateBatch(ctx context.Context, items []*domain.WorkScheduleItem) error
	ListByObject(ctx context.Context, objectID string) ([]*domain.WorkScheduleItem, error)
}

// TaskFilter narrows task listings. Zero fields match everything.
type TaskFilter struct {
	ObjectID       string
	ProjectID      string
	Status         domain.TaskStatus
	Statuses       []domain.TaskStatus
	Department     string
	Block          string
	AssignedUserID string
	Limit          int
}

type TaskRepo interface {
	CreateBatch(ctx context.Context, tasks []*domain.EcosystemTask) error
	GetByID(ctx context.Context, id string) (*domain.EcosystemTask, error)
	// List orders by task_number, then creation time.
	List(ctx context.Context, f TaskFilter) ([]*domain.EcosystemTask, error)
	CountByObject(ctx context.Context, objectID string) (int, error)
	UpdateStatus(ctx context.Context, id string, status domain.TaskStatus, completedAt *time.Time) error
	Assign(ctx context.Context, id string, userID *string) error
}

type FacadeRepo interface {
	Create(ctx context.Context, f *domain.Facade) error
	ListByObject(ctx context.Context, objectID string) ([]*domain.Facade, error)
}

type PlanFactRepo interface {
	Create(ctx context.Context, p *domain.PlanFactDaily) error
	// ListByObject returns the latest reports first, at most limit rows.
	ListByObject(ctx context.Context, objectID string, limit int) ([]*domain.PlanFactDaily, error)
}

type AuditRepo interface {
	Create(ctx context.Context, a *domain.AuditLog) error
	ListByEntity(ctx context.Context, entityType, entityID string) ([]*domain.AuditLog, error)
}
