package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/porbotenet-wq/facadeflow/internal/db"
	"github.com/porbotenet-wq/facadeflow/internal/domain"
	"github.com/porbotenet-wq/facadeflow/internal/repository"
)

// NewSQLiteRepos builds every repository over the same handle.
func NewSQLiteRepos(d db.DBTX) Repos {
	return Repos{
		Projects: repository.NewSQLiteProjectRepo(d),
		Users:    repository.NewSQLiteUserRepo(d),
		Objects:  repository.NewSQLiteObjectRepo(d),
		Schedule: repository.NewSQLiteScheduleRepo(d),
		Tasks:    repository.NewSQLiteTaskRepo(d),
		Facades:  repository.NewSQLiteFacadeRepo(d),
		PlanFact: repository.NewSQLitePlanFactRepo(d),
		Audit:    repository.NewSQLiteAuditRepo(d),
	}
}

func writeAudit(ctx context.Context, audit repository.AuditRepo, action, entityType, entityID, actorID string, oldValue, newValue map[string]any) error {
	entry := &domain.AuditLog{
		ID:         uuid.New().String(),
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		OldValue:   oldValue,
		NewValue:   newValue,
		CreatedAt:  time.Now().UTC(),
	}
	if actorID != "" {
		entry.UserID = &actorID
	}
	if err := audit.Create(ctx, entry); err != nil {
		return fmt.Errorf("writing audit %s: %w", action, err)
	}
	return nil
}

// computeTaskStats counts tasks the way the object card and dashboard show them.
func computeTaskStats(tasks []*domain.EcosystemTask, now time.Time) TaskStats {
	var s TaskStats
	for _, t := range tasks {
		s.Total++
		if t.Status.Active() {
			s.Active++
		}
		if t.Status == domain.TaskDone {
			s.Done++
		}
		if t.IsOverdue(now) {
			s.Overdue++
		}
	}
	return s
}

