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

func TestObjectRepo_RoundTrip(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	p := testutil.NewTestProject("P")
	require.NoError(t, repository.NewSQLiteProjectRepo(db).Create(ctx, p))

	repo := repository.NewSQLiteObjectRepo(db)
	duration := 120
	o := testutil.NewTestObject(p.ID, "БЦ Восток",
		testutil.WithWorkTypes(domain.WorkTypeNVF, domain.WorkTypeSPK),
		testutil.WithContractDate(testutil.Date(t, "2024-03-01")))
	o.TotalVolumeM2 = 5400.5
	o.DurationDays = &duration
	o.CustomerName = "ООО Заказчик"
	require.NoError(t, repo.Create(ctx, o))

	got, err := repo.GetByID(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, []domain.WorkType{domain.WorkTypeNVF, domain.WorkTypeSPK}, got.WorkTypes)
	assert.Equal(t, 5400.5, got.TotalVolumeM2)
	require.NotNil(t, got.ContractDate)
	assert.Equal(t, "2024-03-01", domain.FormatDate(*got.ContractDate))
	assert.Nil(t, got.StartDate)
	require.NotNil(t, got.DurationDays)
	assert.Equal(t, 120, *got.DurationDays)
	assert.Equal(t, "ООО Заказчик", got.CustomerName)
	assert.Equal(t, domain.ObjectNew, got.Status)
}

func TestObjectRepo_ListNewestFirstAndStatus(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	p, first := testutil.Seed(t, db, testutil.WithObjectCreatedAt(time.Now().UTC().Add(-time.Hour)))
	repo := repository.NewSQLiteObjectRepo(db)

	second := testutil.NewTestObject(p.ID, "Второй")
	require.NoError(t, repo.Create(ctx, second))

	list, err := repo.ListByProject(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, first.ID, list[1].ID)

	require.NoError(t, repo.UpdateStatus(ctx, first.ID, domain.ObjectInProgress))
	got, err := repo.GetByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ObjectInProgress, got.Status)

	assert.ErrorIs(t, repo.UpdateStatus(ctx, "missing", domain.ObjectPaused), repository.ErrNotFound)

	n, err := repo.CountByProject(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestScheduleRepo_BatchPreservesOrder(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	_, o := testutil.Seed(t, db)
	repo := repository.NewSQLiteScheduleRepo(db)

	items := template.MaterializeSchedule(o.ID, []domain.WorkType{domain.WorkTypeSPK})
	require.NoError(t, repo.CreateBatch(ctx, items))

	got, err := repo.ListByObject(ctx, o.ID)
	require.NoError(t, err)
	require.Len(t, got, len(items))
	for i := range items {
		assert.Equal(t, items[i].SortOrder, got[i].SortOrder)
		assert.Equal(t, items[i].WorkName, got[i].WorkName)
		assert.Equal(t, domain.SchedulePlanned, got[i].Status)
		assert.Nil(t, got[i].VolumePlan)
	}
}

func TestScheduleRepo_RejectsUnknownObject(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewSQLiteScheduleRepo(db)
	items := template.MaterializeSchedule("no-such-object", []domain.WorkType{domain.WorkTypeNVF})
	assert.Error(t, repo.CreateBatch(context.Background(), items), "foreign key must be enforced")
}
