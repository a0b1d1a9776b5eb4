package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/porbotenet-wq/facadeflow/internal/domain"
	"github.com/porbotenet-wq/facadeflow/internal/repository"
)

const planFactListLimit = 50

type planFactService struct {
	objects  repository.ObjectRepo
	planFact repository.PlanFactRepo
	observer UseCaseObserver
}

func NewPlanFactService(objects repository.ObjectRepo, planFact repository.PlanFactRepo, observers ...UseCaseObserver) PlanFactService {
	return &planFactService{objects: objects, planFact: planFact, observer: useCaseObserverOrNoop(observers)}
}

// List returns the latest reports with modules and brackets totals over them.
func (s *planFactService) List(ctx context.Context, objectID string) (*PlanFactReport, error) {
	rows, err := s.planFact.ListByObject(ctx, objectID, planFactListLimit)
	if err != nil {
		return nil, err
	}
	report := &PlanFactReport{Rows: rows}
	for _, r := range rows {
		report.Totals.ModulesPlan += domain.Quantity(r.ModulesPlan)
		report.Totals.ModulesFact += domain.Quantity(r.ModulesFact)
		report.Totals.BracketsPlan += domain.Quantity(r.BracketsPlan)
		report.Totals.BracketsFact += domain.Quantity(r.BracketsFact)
	}
	return report, nil
}

func (s *planFactService) Report(ctx context.Context, row *domain.PlanFactDaily, actorID string) (err error) {
	defer observe(ctx, s.observer, "report-plan-fact", time.Now().UTC(), map[string]any{"object_id": row.ObjectID, "actor": actorID}, &err)

	if row.ReportDate.IsZero() {
		return fmt.Errorf("%w: report date is required", ErrValidation)
	}
	for _, v := range []*float64{row.ModulesPlan, row.ModulesFact, row.BracketsPlan, row.BracketsFact,
		row.SealantPlan, row.SealantFact, row.HermeticPlan, row.HermeticFact} {
		if v != nil && *v < 0 {
			return fmt.Errorf("%w: quantities cannot be negative", ErrValidation)
		}
	}
	if _, err = s.objects.GetByID(ctx, row.ObjectID); err != nil {
		return err
	}
	if row.ID == "" {
		row.ID = uuid.New().String()
	}
	row.CreatedAt = time.Now().UTC()
	return s.planFact.Create(ctx, row)
}
