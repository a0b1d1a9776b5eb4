package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/porbotenet-wq/facadeflow/internal/domain"
	"github.com/porbotenet-wq/facadeflow/internal/repository"
	"github.com/porbotenet-wq/facadeflow/internal/template"
	"github.com/porbotenet-wq/facadeflow/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func taskNumbers(tasks []*domain.EcosystemTask) []int {
	out := make([]int, len(tasks))
	for i, t := range tasks {
		out[i] = t.TaskNumber
	}
	return out
}

func TestTaskRepo_MaterializedRoundTrip(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	_, o := testutil.Seed(t, db)
	repo := repository.NewSQLiteTaskRepo(db)

	tasks := template.MaterializeTasks(o.ID, testutil.Date(t, "2024-03-01"))
	require.NoError(t, repo.CreateBatch(ctx, tasks))

	got, err := repo.List(ctx, repository.TaskFilter{ObjectID: o.ID})
	require.NoError(t, err)
	require.Len(t, got, len(tasks))
	for i, task := range got {
		assert.Equal(t, i+1, task.TaskNumber)
		assert.Equal(t, tasks[i].Code, task.Code)
		assert.Equal(t, tasks[i].PlannedDate, task.PlannedDate)
		assert.Equal(t, tasks[i].DurationDays, task.DurationDays)
	}

	n, err := repo.CountByObject(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, len(tasks), n)
}

func TestTaskRepo_ListFilters(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	p, o := testutil.Seed(t, db)
	users := repository.NewSQLiteUserRepo(db)
	u := testutil.NewTestUser("Исполнитель")
	require.NoError(t, users.Create(ctx, u))

	repo := repository.NewSQLiteTaskRepo(db)
	require.NoError(t, repo.CreateBatch(ctx, []*domain.EcosystemTask{
		testutil.NewTestTask(o.ID, 3, testutil.WithBlock("Монтаж"), testutil.WithTaskDepartment("Монтажное подразделение")),
		testutil.NewTestTask(o.ID, 1, testutil.WithTaskStatus(domain.TaskDone)),
		testutil.NewTestTask(o.ID, 2, testutil.WithTaskStatus(domain.TaskInProgress), testutil.WithAssignee(u.ID)),
	}))

	all, err := repo.List(ctx, repository.TaskFilter{ObjectID: o.ID})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, taskNumbers(all))

	byStatus, err := repo.List(ctx, repository.TaskFilter{ObjectID: o.ID, Status: domain.TaskDone})
	require.NoError(t, err)
	assert.Equal(t, []int{1}, taskNumbers(byStatus))

	active, err := repo.List(ctx, repository.TaskFilter{Statuses: []domain.TaskStatus{domain.TaskWaiting, domain.TaskInProgress}})
	require.NoError(t, err)
	assert.Equal(t, []int{2, 3}, taskNumbers(active))

	byBlock, err := repo.List(ctx, repository.TaskFilter{Block: "Монтаж", Department: "Монтажное подразделение"})
	require.NoError(t, err)
	assert.Equal(t, []int{3}, taskNumbers(byBlock))

	mine, err := repo.List(ctx, repository.TaskFilter{AssignedUserID: u.ID})
	require.NoError(t, err)
	assert.Equal(t, []int{2}, taskNumbers(mine))

	byProject, err := repo.List(ctx, repository.TaskFilter{ProjectID: p.ID, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, taskNumbers(byProject))

	none, err := repo.List(ctx, repository.TaskFilter{ProjectID: "other"})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestTaskRepo_UpdateStatusAndAssign(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	_, o := testutil.Seed(t, db)
	users := repository.NewSQLiteUserRepo(db)
	u := testutil.NewTestUser("Исполнитель")
	require.NoError(t, users.Create(ctx, u))

	repo := repository.NewSQLiteTaskRepo(db)
	task := testutil.NewTestTask(o.ID, 1)
	require.NoError(t, repo.CreateBatch(ctx, []*domain.EcosystemTask{task}))

	done := time.Date(2024, 3, 5, 12, 0, 0, 0, time.UTC)
	require.NoError(t, repo.UpdateStatus(ctx, task.ID, domain.TaskDone, &done))
	require.NoError(t, repo.Assign(ctx, task.ID, &u.ID))

	got, err := repo.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TaskDone, got.Status)
	require.NotNil(t, got.CompletedAt)
	assert.True(t, done.Equal(*got.CompletedAt))
	require.NotNil(t, got.AssignedUserID)
	assert.Equal(t, u.ID, *got.AssignedUserID)

	require.NoError(t, repo.Assign(ctx, task.ID, nil))
	got, err = repo.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Nil(t, got.AssignedUserID)

	assert.ErrorIs(t, repo.UpdateStatus(ctx, "missing", domain.TaskDone, nil), repository.ErrNotFound)
	_, err = repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
