package service

import (
	"context"
	"fmt"
	"time"

	"github.com/porbotenet-wq/facadeflow/internal/db"
	"github.com/porbotenet-wq/facadeflow/internal/domain"
	"github.com/porbotenet-wq/facadeflow/internal/repository"
)

const (
	taskListLimit = 200
	myTasksLimit  = 5
)

type taskService struct {
	tasks    repository.TaskRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewTaskService(tasks repository.TaskRepo, uow db.UnitOfWork, observers ...UseCaseObserver) TaskService {
	return &taskService{tasks: tasks, uow: uow, observer: useCaseObserverOrNoop(observers)}
}

func (s *taskService) List(ctx context.Context, objectID string, f TaskListFilter) ([]*domain.EcosystemTask, error) {
	if f.Status != "" && !f.Status.Valid() {
		return nil, fmt.Errorf("%w: unknown task status %q", ErrValidation, f.Status)
	}
	return s.tasks.List(ctx, repository.TaskFilter{
		ObjectID:       objectID,
		Status:         f.Status,
		Department:     f.Department,
		Block:          f.Block,
		AssignedUserID: f.AssignedUserID,
		Limit:          taskListLimit,
	})
}

func (s *taskService) Get(ctx context.Context, id string) (*domain.EcosystemTask, error) {
	return s.tasks.GetByID(ctx, id)
}

// ChangeStatus moves a task to status. Completing a task stamps completed_at;
// any other status clears it. The update and its audit entry commit together.
func (s *taskService) ChangeStatus(ctx context.Context, taskID string, status domain.TaskStatus, actorID string) (task *domain.EcosystemTask, err error) {
	defer observe(ctx, s.observer, "change-task-status", time.Now().UTC(), map[string]any{"task_id": taskID, "status": status}, &err)

	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown task status %q", ErrValidation, status)
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txTasks := repository.NewSQLiteTaskRepo(tx)
		current, err := txTasks.GetByID(ctx, taskID)
		if err != nil {
			return err
		}
		oldStatus := current.Status

		var completedAt *time.Time
		if status == domain.TaskDone {
			now := time.Now().UTC()
			completedAt = &now
		}
		if err := txTasks.UpdateStatus(ctx, taskID, status, completedAt); err != nil {
			return err
		}
		if err := writeAudit(ctx, repository.NewSQLiteAuditRepo(tx), domain.AuditTaskStatusChanged, "task", taskID, actorID,
			map[string]any{"status": string(oldStatus)}, map[string]any{"status": string(status)}); err != nil {
			return err
		}
		task, err = txTasks.GetByID(ctx, taskID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return task, nil
}

func (s *taskService) Assign(ctx context.Context, taskID string, userID *string, actorID string) (err error) {
	defer observe(ctx, s.observer, "assign-task", time.Now().UTC(), map[string]any{"task_id": taskID}, &err)

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txTasks := repository.NewSQLiteTaskRepo(tx)
		current, err := txTasks.GetByID(ctx, taskID)
		if err != nil {
			return err
		}
		if userID != nil {
			if _, err := repository.NewSQLiteUserRepo(tx).GetByID(ctx, *userID); err != nil {
				return fmt.Errorf("assignee: %w", err)
			}
		}
		if err := txTasks.Assign(ctx, taskID, userID); err != nil {
			return err
		}
		return writeAudit(ctx, repository.NewSQLiteAuditRepo(tx), domain.AuditTaskAssigned, "task", taskID, actorID,
			map[string]any{"assigned_user_id": derefOrNil(current.AssignedUserID)},
			map[string]any{"assigned_user_id": derefOrNil(userID)})
	})
}

// MyActive returns the first few waiting or in-progress tasks assigned to userID.
func (s *taskService) MyActive(ctx context.Context, userID string) ([]*domain.EcosystemTask, error) {
	return s.tasks.List(ctx, repository.TaskFilter{
		AssignedUserID: userID,
		Statuses:       []domain.TaskStatus{domain.TaskInProgress, domain.TaskWaiting},
		Limit:          myTasksLimit,
	})
}

func derefOrNil(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}
