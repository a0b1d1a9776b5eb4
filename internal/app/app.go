// Package app wires repositories and services into the set of use cases
// shared by the CLI and the HTTP API.
package app

import (
	"database/sql"

	"github.com/porbotenet-wq/facadeflow/internal/db"
	"github.com/porbotenet-wq/facadeflow/internal/service"
)

// App is the service container both front ends run against.
type App struct {
	Projects  service.ProjectService
	Users     service.UserService
	Objects   service.ObjectService
	Tasks     service.TaskService
	Dashboard service.DashboardService
	PlanFact  service.PlanFactService
	Facades   service.FacadeService
	Gantt     service.GanttService
	Workflow  service.WorkflowService

	// Repos exposes read repositories for diagnostics and tests.
	Repos service.Repos
}

// New builds every service over database. Observers receive every write use
// case; pass none for a silent container.
func New(database *sql.DB, observers ...service.UseCaseObserver) *App {
	return NewWithUoW(database, db.NewSQLiteUnitOfWork(database), observers...)
}

// NewWithUoW lets tests substitute the unit of work, e.g. one that fails on
// a chosen statement.
func NewWithUoW(database *sql.DB, uow db.UnitOfWork, observers ...service.UseCaseObserver) *App {
	repos := service.NewSQLiteRepos(database)
	return &App{
		Projects:  service.NewProjectService(repos.Projects, repos.Objects, repos.Users, observers...),
		Users:     service.NewUserService(repos.Users, uow, observers...),
		Objects:   service.NewObjectService(repos.Objects, repos.Schedule, repos.Tasks, uow, observers...),
		Tasks:     service.NewTaskService(repos.Tasks, uow, observers...),
		Dashboard: service.NewDashboardService(repos.Objects, repos.Tasks, repos.Users),
		PlanFact:  service.NewPlanFactService(repos.Objects, repos.PlanFact, observers...),
		Facades:   service.NewFacadeService(repos.Objects, repos.Facades, observers...),
		Gantt:     service.NewGanttService(repos.Tasks),
		Workflow:  service.NewWorkflowService(),
		Repos:     repos,
	}
}
