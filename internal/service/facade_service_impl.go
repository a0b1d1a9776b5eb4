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

type facadeService struct {
	objects  repository.ObjectRepo
	facades  repository.FacadeRepo
	observer UseCaseObserver
}

func NewFacadeService(objects repository.ObjectRepo, facades repository.FacadeRepo, observers ...UseCaseObserver) FacadeService {
	return &facadeService{objects: objects, facades: facades, observer: useCaseObserverOrNoop(observers)}
}

func (s *facadeService) List(ctx context.Context, objectID string) (*FacadeOverview, error) {
	facades, err := s.facades.ListByObject(ctx, objectID)
	if err != nil {
		return nil, err
	}
	out := &FacadeOverview{Facades: facades}
	for _, f := range facades {
		out.Totals.ModulesPlan += f.ModulesPlan
		out.Totals.ModulesFact += f.ModulesFact
		out.Totals.BracketsPlan += f.BracketsPlan
		out.Totals.BracketsFact += f.BracketsFact
	}
	return out, nil
}

func (s *facadeService) Create(ctx context.Context, f *domain.Facade) (err error) {
	defer observe(ctx, s.observer, "create-facade", time.Now().UTC(), map[string]any{"object_id": f.ObjectID, "name": f.Name}, &err)

	f.Name = strings.TrimSpace(f.Name)
	if f.Name == "" {
		return fmt.Errorf("%w: facade name is required", ErrValidation)
	}
	if f.ModulesPlan < 0 || f.ModulesFact < 0 || f.BracketsPlan < 0 || f.BracketsFact < 0 {
		return fmt.Errorf("%w: quantities cannot be negative", ErrValidation)
	}
	if _, err = s.objects.GetByID(ctx, f.ObjectID); err != nil {
		return err
	}
	if f.ID == "" {
		f.ID = uuid.New().String()
	}
	if f.Status == "" {
		f.Status = domain.FacadePlanned
	}
	f.CreatedAt = time.Now().UTC()
	return s.facades.Create(ctx, f)
}
