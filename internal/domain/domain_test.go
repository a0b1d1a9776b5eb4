package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(t *testing.T, s string) *time.Time {
	t.Helper()
	d, err := ParseDate(s)
	require.NoError(t, err)
	return &d
}

func TestReferenceDate_PrefersContractDate(t *testing.T) {
	now := time.Date(2024, 5, 1, 15, 0, 0, 0, time.UTC)
	got := ReferenceDate(date(t, "2024-03-01"), date(t, "2024-04-01"), now)
	assert.Equal(t, "2024-03-01", FormatDate(got))
}

func TestReferenceDate_FallsBackToStartDate(t *testing.T) {
	now := time.Date(2024, 5, 1, 15, 0, 0, 0, time.UTC)
	got := ReferenceDate(nil, date(t, "2024-04-01"), now)
	assert.Equal(t, "2024-04-01", FormatDate(got))
}

func TestReferenceDate_FallsBackToToday(t *testing.T) {
	now := time.Date(2024, 5, 1, 23, 59, 0, 0, time.UTC)
	got := ReferenceDate(nil, nil, now)
	assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), got)
}

func TestParseDate_RejectsImpossibleDate(t *testing.T) {
	_, err := ParseDate("2024-02-30")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrValidation))

	_, err = ParseDate("01.03.2024")
	require.Error(t, err)
}

func TestParseOptionalDate_Empty(t *testing.T) {
	d, err := ParseOptionalDate("")
	require.NoError(t, err)
	assert.Nil(t, d)
	assert.Equal(t, "", FormatOptionalDate(d))
}

func TestObjectValidate(t *testing.T) {
	valid := func() *ConstructionObject {
		return &ConstructionObject{
			Name:      "ЖК Северный",
			ProjectID: "p1",
			WorkTypes: []WorkType{WorkTypeNVF, WorkTypeSPK},
		}
	}
	require.NoError(t, valid().Validate())

	cases := map[string]func(o *ConstructionObject){
		"blank name":     func(o *ConstructionObject) { o.Name = "   " },
		"no project":     func(o *ConstructionObject) { o.ProjectID = "" },
		"both selected":  func(o *ConstructionObject) { o.WorkTypes = []WorkType{WorkTypeBoth} },
		"unknown type":   func(o *ConstructionObject) { o.WorkTypes = []WorkType{"XYZ"} },
		"duplicate type": func(o *ConstructionObject) { o.WorkTypes = []WorkType{WorkTypeNVF, WorkTypeNVF} },
		"negative area":  func(o *ConstructionObject) { o.TotalVolumeM2 = -1 },
		"bad status":     func(o *ConstructionObject) { o.Status = "DONE" },
		"end before start": func(o *ConstructionObject) {
			o.StartDate = date(t, "2024-05-01")
			o.EndDate = date(t, "2024-04-01")
		},
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			o := valid()
			mutate(o)
			err := o.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestObjectHasWorkType(t *testing.T) {
	o := &ConstructionObject{WorkTypes: []WorkType{WorkTypeSPK}}
	assert.True(t, o.HasWorkType(WorkTypeSPK))
	assert.False(t, o.HasWorkType(WorkTypeNVF))
}

func TestTaskIsOverdue(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	task := &EcosystemTask{Status: TaskWaiting, PlannedDate: date(t, "2024-03-09")}
	assert.True(t, task.IsOverdue(now))

	task.PlannedDate = date(t, "2024-03-10")
	assert.False(t, task.IsOverdue(now), "due today is not overdue")

	task.PlannedDate = date(t, "2024-03-01")
	task.Status = TaskDone
	assert.False(t, task.IsOverdue(now))
	task.Status = TaskCancelled
	assert.False(t, task.IsOverdue(now))

	task.Status = TaskInProgress
	task.PlannedDate = nil
	assert.False(t, task.IsOverdue(now))
}

func TestUserRoleName(t *testing.T) {
	assert.Equal(t, "ПТО", (&User{Role: RoleEngineer, Department: "ПТО"}).RoleName())
	assert.Equal(t, "ADMIN", (&User{Role: RoleAdmin}).RoleName())
	assert.Equal(t, "user", (&User{}).RoleName())
	var nilUser *User
	assert.Equal(t, "user", nilUser.RoleName())
	assert.False(t, nilUser.IsAdmin())
}

func TestUserValidate(t *testing.T) {
	u := &User{TelegramID: 42, FullName: "Иван", Status: UserPending}
	require.NoError(t, u.Validate())

	u.Department = "Бухгалтерия"
	assert.ErrorIs(t, u.Validate(), ErrValidation)

	u.Department = "ПТО"
	u.Role = "ROOT"
	assert.ErrorIs(t, u.Validate(), ErrValidation)
}

func TestFacadePercent(t *testing.T) {
	f := &Facade{ModulesPlan: 200, ModulesFact: 50, BracketsPlan: 0, BracketsFact: 10}
	assert.InDelta(t, 25.0, f.ModulesPct(), 0.001)
	assert.Equal(t, 0.0, f.BracketsPct())
}

func TestDisplayID(t *testing.T) {
	p := &Project{ID: "550e8400-e29b-41d4-a716-446655440000"}
	assert.Equal(t, "550e8400", p.DisplayID())
	assert.Equal(t, "abc", (&Project{ID: "abc"}).DisplayID())
}

func TestCoalesce(t *testing.T) {
	assert.Equal(t, "b", CoalesceStr("", "b", "c"))
	assert.Equal(t, "", CoalesceStr())
	f := 2.5
	assert.Equal(t, 2.5, Quantity(&f))
	assert.Zero(t, Quantity(nil))
}

func TestEnumsValid(t *testing.T) {
	assert.True(t, TaskDone.Valid())
	assert.False(t, TaskStatus("Готово").Valid())
	assert.True(t, TaskDone.Closed())
	assert.True(t, TaskWaiting.Active())
	assert.False(t, WorkTypeBoth.Selectable())
	assert.Equal(t, "Новый", ObjectNew.Label())
	assert.True(t, ValidDepartment("Отдел снабжения"))
}
