package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/porbotenet-wq/facadeflow/internal/domain"
	"github.com/porbotenet-wq/facadeflow/internal/repository"
	"github.com/porbotenet-wq/facadeflow/internal/template"
	"github.com/porbotenet-wq/facadeflow/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createProject(t *testing.T, env *testEnv) *domain.Project {
	t.Helper()
	p, err := env.projects.Create(context.Background(), "Фасады 2024", "")
	require.NoError(t, err)
	return p
}

func TestCreateObject_MaterializesScheduleAndTasks(t *testing.T) {
	env := setupServices(t)
	ctx := context.Background()
	p := createProject(t, env)

	res, err := env.objects.Create(ctx, CreateObjectInput{
		ProjectID:    p.ID,
		Name:         "  ЖК Северный  ",
		WorkTypes:    []domain.WorkType{domain.WorkTypeNVF},
		ContractDate: "2024-03-01",
		StartDate:    "2024-03-10",
	})
	require.NoError(t, err)

	assert.Equal(t, "ЖК Северный", res.Object.Name)
	assert.Equal(t, domain.ObjectNew, res.Object.Status)
	assert.Equal(t, 35, res.ScheduleItems)
	assert.Equal(t, template.StepCount(template.WorkflowStages), res.Tasks)
	assert.Equal(t, "2024-03-01", domain.FormatDate(res.ReferenceDate), "contract date wins over start date")

	items, err := env.repos.Schedule.ListByObject(ctx, res.Object.ID)
	require.NoError(t, err)
	require.Len(t, items, 35)
	for i, it := range items {
		assert.Equal(t, domain.SchedulePlanned, it.Status)
		if i > 0 {
			assert.Greater(t, it.SortOrder, items[i-1].SortOrder)
		}
	}

	tasks, err := env.repos.Tasks.List(ctx, repository.TaskFilter{ObjectID: res.Object.ID})
	require.NoError(t, err)
	require.Len(t, tasks, res.Tasks)
	for i, task := range tasks {
		assert.Equal(t, i+1, task.TaskNumber)
		assert.Equal(t, domain.TaskWaiting, task.Status)
		assert.Equal(t, domain.PriorityMedium, task.Priority)
	}
	// 1.1 "Дата подписания" and 1.3 "2 дня"
	require.NotNil(t, tasks[0].PlannedDate)
	assert.Equal(t, "2024-03-02", domain.FormatDate(*tasks[0].PlannedDate))
	require.NotNil(t, tasks[2].PlannedDate)
	assert.Equal(t, "2024-03-03", domain.FormatDate(*tasks[2].PlannedDate))
	assert.Equal(t, 2, tasks[2].DurationDays)

	audit, err := env.repos.Audit.ListByEntity(ctx, "object", res.Object.ID)
	require.NoError(t, err)
	require.Len(t, audit, 1)
	assert.Equal(t, domain.AuditObjectCreated, audit[0].Action)

	assert.Contains(t, env.logs.String(), "use_case=create-object")
}

func TestCreateObject_BothWorkTypesGetFullCatalog(t *testing.T) {
	env := setupServices(t)
	p := createProject(t, env)

	res, err := env.objects.Create(context.Background(), CreateObjectInput{
		ProjectID: p.ID,
		Name:      "БЦ Меридиан",
		WorkTypes: []domain.WorkType{domain.WorkTypeNVF, domain.WorkTypeSPK},
	})
	require.NoError(t, err)
	assert.Equal(t, len(template.GPRTemplate), res.ScheduleItems)
	assert.Equal(t, domain.Today(time.Now()), res.ReferenceDate, "no dates falls back to today")
}

func TestCreateObject_NoWorkTypesStillGetsTasks(t *testing.T) {
	env := setupServices(t)
	p := createProject(t, env)

	res, err := env.objects.Create(context.Background(), CreateObjectInput{ProjectID: p.ID, Name: "Склад"})
	require.NoError(t, err)
	assert.Zero(t, res.ScheduleItems)
	assert.Equal(t, template.StepCount(template.WorkflowStages), res.Tasks)
}

func TestCreateObject_Validation(t *testing.T) {
	env := setupServices(t)
	p := createProject(t, env)

	cases := map[string]CreateObjectInput{
		"blank name":       {ProjectID: p.ID, Name: "   "},
		"bad date":         {ProjectID: p.ID, Name: "A", ContractDate: "01.03.2024"},
		"end before start": {ProjectID: p.ID, Name: "A", StartDate: "2024-05-01", EndDate: "2024-04-01"},
		"both selected":    {ProjectID: p.ID, Name: "A", WorkTypes: []domain.WorkType{domain.WorkTypeBoth}},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := env.objects.Create(context.Background(), in)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}

	objects, err := env.objects.List(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Empty(t, objects)
}

func TestCreateObject_RollbackOnScheduleFailure(t *testing.T) {
	env := setupServices(t)
	ctx := context.Background()
	p := createProject(t, env)

	// ExecContext #1 = object insert, #2 = first schedule row.
	failUoW := &testutil.FailOnNthExecUoW{DB: env.db, FailOn: 2, Err: fmt.Errorf("injected schedule failure")}
	svc := NewObjectService(env.repos.Objects, env.repos.Schedule, env.repos.Tasks, failUoW)

	_, err := svc.Create(ctx, CreateObjectInput{ProjectID: p.ID, Name: "ЖК Южный", WorkTypes: []domain.WorkType{domain.WorkTypeNVF}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "injected schedule failure")

	objects, err := env.objects.List(ctx, p.ID)
	require.NoError(t, err)
	assert.Empty(t, objects, "object must not survive a failed schedule insert")
}

func TestCreateObject_RollbackOnTaskFailure(t *testing.T) {
	env := setupServices(t)
	ctx := context.Background()
	p := createProject(t, env)

	// 1 object + 35 schedule rows, then the first task.
	failUoW := &testutil.FailOnNthExecUoW{DB: env.db, FailOn: 37, Err: fmt.Errorf("injected task failure")}
	svc := NewObjectService(env.repos.Objects, env.repos.Schedule, env.repos.Tasks, failUoW)

	_, err := svc.Create(ctx, CreateObjectInput{ProjectID: p.ID, Name: "ЖК Южный", WorkTypes: []domain.WorkType{domain.WorkTypeNVF}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "injected task failure")
	assert.Equal(t, int32(37), failUoW.Execs())

	objects, err := env.objects.List(ctx, p.ID)
	require.NoError(t, err)
	assert.Empty(t, objects)
}

func TestCreateObject_UnknownProject(t *testing.T) {
	env := setupServices(t)
	_, err := env.objects.Create(context.Background(), CreateObjectInput{ProjectID: "missing", Name: "A"})
	require.Error(t, err)
}

func TestMaterializeTasks_GuardAndForce(t *testing.T) {
	env := setupServices(t)
	ctx := context.Background()
	p := createProject(t, env)

	res, err := env.objects.Create(ctx, CreateObjectInput{ProjectID: p.ID, Name: "ЖК Северный"})
	require.NoError(t, err)

	_, err = env.objects.MaterializeTasks(ctx, res.Object.ID, false, "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrAlreadyMaterialized))

	n, err := env.objects.MaterializeTasks(ctx, res.Object.ID, true, "")
	require.NoError(t, err)
	assert.Equal(t, res.Tasks, n)

	count, err := env.repos.Tasks.CountByObject(ctx, res.Object.ID)
	require.NoError(t, err)
	assert.Equal(t, 2*res.Tasks, count, "force appends a second full set")
}

func TestMaterializeTasks_EmptyObject(t *testing.T) {
	env := setupServices(t)
	ctx := context.Background()
	_, obj := testutil.Seed(t, env.db, testutil.WithContractDate(testutil.Date(t, "2024-03-01")))

	n, err := env.objects.MaterializeTasks(ctx, obj.ID, false, "")
	require.NoError(t, err)
	assert.Equal(t, template.StepCount(template.WorkflowStages), n)

	_, err = env.objects.MaterializeTasks(ctx, "missing", false, "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestObjectCard(t *testing.T) {
	env := setupServices(t)
	ctx := context.Background()
	_, obj := testutil.Seed(t, env.db)

	past := time.Now().UTC().AddDate(0, 0, -3)
	future := time.Now().UTC().AddDate(0, 0, 3)
	require.NoError(t, env.repos.Tasks.CreateBatch(ctx, []*domain.EcosystemTask{
		testutil.NewTestTask(obj.ID, 1, testutil.WithBlock("Договорной отдел"), testutil.WithPlannedDate(past)),
		testutil.NewTestTask(obj.ID, 2, testutil.WithBlock("Договорной отдел"), testutil.WithTaskStatus(domain.TaskDone), testutil.WithPlannedDate(past)),
		testutil.NewTestTask(obj.ID, 3, testutil.WithBlock("Монтаж"), testutil.WithTaskStatus(domain.TaskInProgress), testutil.WithPlannedDate(future)),
		testutil.NewTestTask(obj.ID, 4, testutil.WithBlock("Монтаж"), testutil.WithTaskStatus(domain.TaskCancelled)),
	}))
	require.NoError(t, env.repos.Schedule.CreateBatch(ctx, template.MaterializeSchedule(obj.ID, obj.WorkTypes)))

	card, err := env.objects.Card(ctx, obj.ID)
	require.NoError(t, err)

	assert.Equal(t, TaskStats{Total: 4, Active: 2, Overdue: 1, Done: 1}, card.Tasks)
	assert.InDelta(t, 25.0, card.Tasks.CompletionPct(), 0.001)
	assert.Equal(t, 35, card.ScheduleSize)
	assert.Zero(t, card.ScheduleDone)
	require.NotEmpty(t, card.Sections)
	assert.Equal(t, "НВФ", card.Sections[0].Name)

	require.Len(t, card.Blocks, 2)
	assert.Equal(t, "Договорной отдел", card.Blocks[0].Block)
	assert.Equal(t, 2, card.Blocks[0].Total)
	assert.InDelta(t, 50.0, card.Blocks[0].Pct(), 0.001)
	assert.Equal(t, "#ef4444", card.Blocks[1].Color)
}

func TestUpdateObjectStatus(t *testing.T) {
	env := setupServices(t)
	ctx := context.Background()
	_, obj := testutil.Seed(t, env.db)

	require.NoError(t, env.objects.UpdateStatus(ctx, obj.ID, domain.ObjectInProgress, ""))
	got, err := env.objects.Get(ctx, obj.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ObjectInProgress, got.Status)

	audit, err := env.repos.Audit.ListByEntity(ctx, "object", obj.ID)
	require.NoError(t, err)
	require.Len(t, audit, 1)
	assert.Equal(t, "NEW", audit[0].OldValue["status"])
	assert.Equal(t, "IN_PROGRESS", audit[0].NewValue["status"])

	assert.ErrorIs(t, env.objects.UpdateStatus(ctx, obj.ID, "DONE", ""), ErrValidation)
	assert.ErrorIs(t, env.objects.UpdateStatus(ctx, "missing", domain.ObjectPaused, ""), ErrNotFound)
}
