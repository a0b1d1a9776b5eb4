package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/porbotenet-wq/facadeflow/internal/db"
	"github.com/porbotenet-wq/facadeflow/internal/domain"
	"github.com/porbotenet-wq/facadeflow/internal/repository"
	"github.com/porbotenet-wq/facadeflow/internal/template"
)

type objectService struct {
	objects  repository.ObjectRepo
	schedule repository.ScheduleRepo
	tasks    repository.TaskRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewObjectService(objects repository.ObjectRepo, schedule repository.ScheduleRepo, tasks repository.TaskRepo, uow db.UnitOfWork, observers ...UseCaseObserver) ObjectService {
	return &objectService{
		objects:  objects,
		schedule: schedule,
		tasks:    tasks,
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
	}
}

func buildObject(in CreateObjectInput, now time.Time) (*domain.ConstructionObject, error) {
	o := &domain.ConstructionObject{
		ID:               uuid.New().String(),
		ProjectID:        in.ProjectID,
		Name:             strings.TrimSpace(in.Name),
		CustomerName:     in.CustomerName,
		CustomerAddress:  in.CustomerAddress,
		CustomerContacts: in.CustomerContacts,
		ContractorName:   in.ContractorName,
		WorkTypes:        in.WorkTypes,
		TotalVolumeM2:    in.TotalVolumeM2,
		DurationDays:     in.DurationDays,
		ContractLink:     in.ContractLink,
		EstimateLink:     in.EstimateLink,
		ProjectManager:   in.ProjectManager,
		Status:           domain.ObjectNew,
		CreatedBy:        in.CreatedBy,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	var err error
	if o.StartDate, err = domain.ParseOptionalDate(in.StartDate); err != nil {
		return nil, fmt.Errorf("start date: %w", err)
	}
	if o.EndDate, err = domain.ParseOptionalDate(in.EndDate); err != nil {
		return nil, fmt.Errorf("end date: %w", err)
	}
	if o.ContractDate, err = domain.ParseOptionalDate(in.ContractDate); err != nil {
		return nil, fmt.Errorf("contract date: %w", err)
	}
	if err := o.Validate(); err != nil {
		return nil, err
	}
	return o, nil
}

func (s *objectService) Create(ctx context.Context, in CreateObjectInput) (res *CreateObjectResult, err error) {
	fields := map[string]any{
		"project_id": in.ProjectID,
		"name":       in.Name,
	}
	defer observe(ctx, s.observer, "create-object", time.Now().UTC(), fields, &err)

	now := time.Now().UTC()
	obj, err := buildObject(in, now)
	if err != nil {
		return nil, err
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		// The object goes first: nothing else is computed or written if it fails.
		if err := repository.NewSQLiteObjectRepo(tx).Create(ctx, obj); err != nil {
			return fmt.Errorf("creating object: %w", err)
		}

		items := template.MaterializeSchedule(obj.ID, obj.WorkTypes)
		if len(items) > 0 {
			if err := repository.NewSQLiteScheduleRepo(tx).CreateBatch(ctx, items); err != nil {
				return fmt.Errorf("creating schedule: %w", err)
			}
		}

		ref := domain.ReferenceDate(obj.ContractDate, obj.StartDate, now)
		tasks := template.MaterializeTasks(obj.ID, ref)
		if len(tasks) > 0 {
			if err := repository.NewSQLiteTaskRepo(tx).CreateBatch(ctx, tasks); err != nil {
				return fmt.Errorf("creating tasks: %w", err)
			}
		}

		res = &CreateObjectResult{
			Object:        obj,
			ScheduleItems: len(items),
			Tasks:         len(tasks),
			ReferenceDate: ref,
		}
		return writeAudit(ctx, repository.NewSQLiteAuditRepo(tx), domain.AuditObjectCreated, "object", obj.ID, in.CreatedBy, nil, map[string]any{
			"name":           obj.Name,
			"work_types":     obj.WorkTypes,
			"schedule_items": len(items),
			"tasks":          len(tasks),
		})
	})
	if err != nil {
		return nil, err
	}
	fields["object_id"] = obj.ID
	fields["schedule_items"] = res.ScheduleItems
	fields["tasks"] = res.Tasks
	return res, nil
}

func (s *objectService) MaterializeTasks(ctx context.Context, objectID string, force bool, actorID string) (n int, err error) {
	fields := map[string]any{"object_id": objectID, "force": force}
	defer observe(ctx, s.observer, "materialize-tasks", time.Now().UTC(), fields, &err)

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		obj, err := repository.NewSQLiteObjectRepo(tx).GetByID(ctx, objectID)
		if err != nil {
			return err
		}
		txTasks := repository.NewSQLiteTaskRepo(tx)
		existing, err := txTasks.CountByObject(ctx, objectID)
		if err != nil {
			return err
		}
		if existing > 0 && !force {
			return fmt.Errorf("object %s has %d tasks: %w", obj.DisplayID(), existing, ErrAlreadyMaterialized)
		}

		ref := domain.ReferenceDate(obj.ContractDate, obj.StartDate, time.Now().UTC())
		tasks := template.MaterializeTasks(obj.ID, ref)
		if err := txTasks.CreateBatch(ctx, tasks); err != nil {
			return fmt.Errorf("creating tasks: %w", err)
		}
		n = len(tasks)
		return writeAudit(ctx, repository.NewSQLiteAuditRepo(tx), domain.AuditTasksMaterialized, "object", obj.ID, actorID,
			map[string]any{"tasks": existing}, map[string]any{"tasks": existing + n, "force": force})
	})
	if err != nil {
		return 0, err
	}
	fields["tasks"] = n
	return n, nil
}

func (s *objectService) List(ctx context.Context, projectID string) ([]*domain.ConstructionObject, error) {
	return s.objects.ListByProject(ctx, projectID)
}

func (s *objectService) Get(ctx context.Context, id string) (*domain.ConstructionObject, error) {
	return s.objects.GetByID(ctx, id)
}

func (s *objectService) Card(ctx context.Context, id string) (*ObjectCard, error) {
	obj, err := s.objects.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	items, err := s.schedule.ListByObject(ctx, id)
	if err != nil {
		return nil, err
	}
	tasks, err := s.tasks.List(ctx, repository.TaskFilter{ObjectID: id})
	if err != nil {
		return nil, err
	}

	card := &ObjectCard{
		Object:       obj,
		ScheduleSize: len(items),
		Tasks:        computeTaskStats(tasks, time.Now().UTC()),
	}

	sectionIdx := map[string]int{}
	for _, it := range items {
		i, ok := sectionIdx[it.Section]
		if !ok {
			i = len(card.Sections)
			sectionIdx[it.Section] = i
			card.Sections = append(card.Sections, ScheduleSection{Name: it.Section})
		}
		card.Sections[i].Items = append(card.Sections[i].Items, it)
		if it.Status == domain.ScheduleDone {
			card.Sections[i].Done++
			card.ScheduleDone++
		}
	}

	blockIdx := map[string]int{}
	for _, t := range tasks {
		i, ok := blockIdx[t.Block]
		if !ok {
			i = len(card.Blocks)
			blockIdx[t.Block] = i
			color := BlockColor(t.Block)
			card.Blocks = append(card.Blocks, BlockProgress{Block: t.Block, Color: color})
		}
		card.Blocks[i].Total++
		if t.Status == domain.TaskDone {
			card.Blocks[i].Done++
		}
	}
	return card, nil
}

func (s *objectService) UpdateStatus(ctx context.Context, id string, status domain.ObjectStatus, actorID string) (err error) {
	defer observe(ctx, s.observer, "update-object-status", time.Now().UTC(), map[string]any{"object_id": id, "status": status}, &err)

	if !status.Valid() {
		return fmt.Errorf("%w: unknown object status %q", ErrValidation, status)
	}
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txObjects := repository.NewSQLiteObjectRepo(tx)
		obj, err := txObjects.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := txObjects.UpdateStatus(ctx, id, status); err != nil {
			return err
		}
		return writeAudit(ctx, repository.NewSQLiteAuditRepo(tx), domain.AuditObjectStatus, "object", id, actorID,
			map[string]any{"status": string(obj.Status)}, map[string]any{"status": string(status)})
	})
}
