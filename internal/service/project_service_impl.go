package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/porbotenet-wq/facadeflow/internal/domain"
	"github.com/porbotenet-wq/facadeflow/internal/repository"
)

type projectService struct {
	projects repository.ProjectRepo
	objects  repository.ObjectRepo
	users    repository.UserRepo
	observer UseCaseObserver
}

func NewProjectService(projects repository.ProjectRepo, objects repository.ObjectRepo, users repository.UserRepo, observers ...UseCaseObserver) ProjectService {
	return &projectService{
		projects: projects,
		objects:  objects,
		users:    users,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *projectService) Current(ctx context.Context) (*domain.Project, error) {
	return s.projects.First(ctx)
}

func (s *projectService) Create(ctx context.Context, name, description string) (p *domain.Project, err error) {
	defer observe(ctx, s.observer, "create-project", time.Now().UTC(), map[string]any{"name": name}, &err)

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: project name is required", ErrValidation)
	}
	now := time.Now().UTC()
	p = &domain.Project{
		ID:          uuid.New().String(),
		Name:        name,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err = s.projects.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *projectService) Info(ctx context.Context, projectID string) (*ProjectInfo, error) {
	p, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	objects, err := s.objects.CountByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	active, err := s.users.CountByStatus(ctx, domain.UserActive)
	if err != nil {
		return nil, err
	}
	return &ProjectInfo{Project: p, ObjectCount: objects, ActiveUsers: active}, nil
}
