package service

import (
	"context"
	"time"

	"github.com/porbotenet-wq/facadeflow/internal/domain"
	"github.com/porbotenet-wq/facadeflow/internal/repository"
)

type dashboardService struct {
	objects repository.ObjectRepo
	tasks   repository.TaskRepo
	users   repository.UserRepo
}

func NewDashboardService(objects repository.ObjectRepo, tasks repository.TaskRepo, users repository.UserRepo) DashboardService {
	return &dashboardService{objects: objects, tasks: tasks, users: users}
}

func (s *dashboardService) Stats(ctx context.Context, projectID, userID string) (*DashboardStats, error) {
	stats := &DashboardStats{TasksByStatus: map[domain.TaskStatus]int{}}

	objects, err := s.objects.CountByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	stats.TotalObjects = objects
	if objects == 0 {
		return stats, nil
	}

	tasks, err := s.tasks.List(ctx, repository.TaskFilter{ProjectID: projectID})
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	for _, t := range tasks {
		stats.TasksByStatus[t.Status]++
		if t.IsOverdue(now) {
			stats.OverdueTasks++
		}
		if userID != "" && t.IsAssignedTo(userID) && t.Status.Active() {
			stats.MyTasks++
		}
	}
	stats.TotalTasks = len(tasks)
	stats.DoneTasks = stats.TasksByStatus[domain.TaskDone]
	if stats.TotalTasks > 0 {
		stats.CompletionPct = float64(stats.DoneTasks) / float64(stats.TotalTasks) * 100
	}

	if stats.ActiveUsers, err = s.users.CountByStatus(ctx, domain.UserActive); err != nil {
		return nil, err
	}
	return stats, nil
}
