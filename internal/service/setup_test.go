package service

import (
	"bytes"
	"database/sql"
	"testing"

	"github.com/porbotenet-wq/facadeflow/internal/testutil"
)

type testEnv struct {
	db    *sql.DB
	repos Repos
	logs  *bytes.Buffer

	projects  ProjectService
	users     UserService
	objects   ObjectService
	tasks     TaskService
	dashboard DashboardService
	planFact  PlanFactService
	facades   FacadeService
	gantt     GanttService
}

func setupServices(t *testing.T) *testEnv {
	t.Helper()
	database := testutil.NewTestDB(t)
	uow := testutil.NewTestUoW(database)
	repos := NewSQLiteRepos(database)
	logs := &bytes.Buffer{}
	obs := NewLogUseCaseObserver(logs)

	return &testEnv{
		db:        database,
		repos:     repos,
		logs:      logs,
		projects:  NewProjectService(repos.Projects, repos.Objects, repos.Users, obs),
		users:     NewUserService(repos.Users, uow, obs),
		objects:   NewObjectService(repos.Objects, repos.Schedule, repos.Tasks, uow, obs),
		tasks:     NewTaskService(repos.Tasks, uow, obs),
		dashboard: NewDashboardService(repos.Objects, repos.Tasks, repos.Users),
		planFact:  NewPlanFactService(repos.Objects, repos.PlanFact, obs),
		facades:   NewFacadeService(repos.Objects, repos.Facades, obs),
		gantt:     NewGanttService(repos.Tasks),
	}
}
