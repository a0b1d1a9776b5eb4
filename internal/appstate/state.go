// Package appstate holds the per-session view of the application: who is
// acting, which project is current and what was last fetched for display.
// State is a value. Every load returns a new State and leaves its input as is.
package appstate

import (
	"context"
	"fmt"
	"slices"

	"github.com/porbotenet-wq/facadeflow/internal/domain"
	"github.com/porbotenet-wq/facadeflow/internal/service"
)

type State struct {
	User    *domain.User
	Project *domain.Project

	// ObjectID is the object Tasks and Facades were loaded for.
	ObjectID string
	Objects  []*domain.ConstructionObject
	Tasks    []*domain.EcosystemTask
	Facades  []*domain.Facade
}

// Ready reports whether an active user and a project are loaded.
func (s State) Ready() bool {
	return s.User != nil && s.Project != nil
}

// Object returns the loaded object with id, or nil.
func (s State) Object(id string) *domain.ConstructionObject {
	for _, o := range s.Objects {
		if o.ID == id {
			return o
		}
	}
	return nil
}

// Loader fetches the pieces of State through the service layer.
type Loader struct {
	Users    service.UserService
	Projects service.ProjectService
	Objects  service.ObjectService
	Tasks    service.TaskService
	Facades  service.FacadeService
}

// LoadUser identifies the acting user. Pending and blocked users are still
// stored in the returned state together with the gating error, so callers
// can show the right screen.
func (l *Loader) LoadUser(ctx context.Context, s State, telegramID int64) (State, error) {
	u, err := l.Users.Authorize(ctx, telegramID)
	if u != nil {
		s.User = u
	}
	if err != nil {
		return s, fmt.Errorf("loading user %d: %w", telegramID, err)
	}
	return s, nil
}

// LoadProject selects the deployment's current project and drops data that
// belonged to a previously loaded one.
func (l *Loader) LoadProject(ctx context.Context, s State) (State, error) {
	p, err := l.Projects.Current(ctx)
	if err != nil {
		return s, fmt.Errorf("loading project: %w", err)
	}
	if s.Project == nil || s.Project.ID != p.ID {
		s.Objects, s.Tasks, s.Facades, s.ObjectID = nil, nil, nil, ""
	}
	s.Project = p
	return s, nil
}

func (l *Loader) LoadObjects(ctx context.Context, s State) (State, error) {
	if s.Project == nil {
		return s, fmt.Errorf("loading objects: no project loaded")
	}
	objects, err := l.Objects.List(ctx, s.Project.ID)
	if err != nil {
		return s, fmt.Errorf("loading objects: %w", err)
	}
	s.Objects = slices.Clip(objects)
	return s, nil
}

func (l *Loader) LoadTasks(ctx context.Context, s State, objectID string, f service.TaskListFilter) (State, error) {
	tasks, err := l.Tasks.List(ctx, objectID, f)
	if err != nil {
		return s, fmt.Errorf("loading tasks: %w", err)
	}
	if s.ObjectID != objectID {
		s.Facades = nil
	}
	s.ObjectID = objectID
	s.Tasks = slices.Clip(tasks)
	return s, nil
}

func (l *Loader) LoadFacades(ctx context.Context, s State, objectID string) (State, error) {
	overview, err := l.Facades.List(ctx, objectID)
	if err != nil {
		return s, fmt.Errorf("loading facades: %w", err)
	}
	if s.ObjectID != objectID {
		s.Tasks = nil
	}
	s.ObjectID = objectID
	s.Facades = slices.Clip(overview.Facades)
	return s, nil
}

// WithTask returns a copy of s where the task with the same id is replaced by t.
func (s State) WithTask(t *domain.EcosystemTask) State {
	tasks := slices.Clone(s.Tasks)
	for i, cur := range tasks {
		if cur.ID == t.ID {
			tasks[i] = t
		}
	}
	s.Tasks = tasks
	return s
}
