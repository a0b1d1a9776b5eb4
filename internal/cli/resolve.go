package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/porbotenet-wq/facadeflow/internal/appstate"
	"github.com/porbotenet-wq/facadeflow/internal/domain"
	"github.com/porbotenet-wq/facadeflow/internal/service"
)

func (a *App) loader() *appstate.Loader {
	return &appstate.Loader{
		Users:    a.Users,
		Projects: a.Projects,
		Objects:  a.Objects,
		Tasks:    a.Tasks,
		Facades:  a.Facades,
	}
}

// session loads the acting user and the current project. Commands other
// than registration and bootstrap run only for ACTIVE users.
func (a *App) session(ctx context.Context) (appstate.State, error) {
	l := a.loader()
	actor := a.actor()
	s, err := l.LoadUser(ctx, appstate.State{}, actor)
	switch {
	case errors.Is(err, service.ErrNotFound):
		return s, fmt.Errorf("telegram id %d is not registered (run `facadeflow user register`)", actor)
	case errors.Is(err, service.ErrUserPending):
		return s, fmt.Errorf("%s is waiting for administrator approval", s.User.FullName)
	case errors.Is(err, service.ErrUserBlocked):
		return s, fmt.Errorf("%s is blocked", s.User.FullName)
	case err != nil:
		return s, err
	}

	s, err = l.LoadProject(ctx, s)
	if errors.Is(err, service.ErrNotFound) {
		return s, fmt.Errorf("no project is configured (run `facadeflow project init NAME`)")
	}
	return s, err
}

func (a *App) adminSession(ctx context.Context) (appstate.State, error) {
	s, err := a.session(ctx)
	if err != nil {
		return s, err
	}
	if !s.User.IsAdmin() {
		return s, fmt.Errorf("%s is not an administrator", s.User.FullName)
	}
	return s, nil
}

// resolveObjectID resolves an object identifier which can be a display ID,
// a full UUID or a UUID prefix within the current project.
func resolveObjectID(ctx context.Context, a *App, s appstate.State, input string) (appstate.State, string, error) {
	if input == "" {
		return s, "", fmt.Errorf("object ID is required")
	}

	s, err := a.loader().LoadObjects(ctx, s)
	if err != nil {
		return s, "", err
	}

	for _, o := range s.Objects {
		if strings.EqualFold(o.DisplayID(), input) || o.ID == input {
			return s, o.ID, nil
		}
	}

	var matches []string
	for _, o := range s.Objects {
		if strings.HasPrefix(o.ID, strings.ToLower(input)) {
			matches = append(matches, o.ID)
		}
	}

	switch len(matches) {
	case 0:
		return s, "", fmt.Errorf("object not found: %q", input)
	case 1:
		return s, matches[0], nil
	default:
		return s, "", fmt.Errorf("object ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}

// resolveTaskID resolves a task identifier which can be:
//   - A task number (requires an object from --object)
//   - A UUID string (passed through directly)
func resolveTaskID(ctx context.Context, a *App, s appstate.State, input, objectInput string) (string, error) {
	n, err := strconv.Atoi(strings.TrimPrefix(input, "#"))
	if err != nil || n <= 0 {
		return input, nil
	}
	if objectInput == "" {
		return "", fmt.Errorf("task number #%d requires an object (use --object)", n)
	}
	s, objectID, err := resolveObjectID(ctx, a, s, objectInput)
	if err != nil {
		return "", err
	}
	s, err = a.loader().LoadTasks(ctx, s, objectID, service.TaskListFilter{})
	if err != nil {
		return "", err
	}
	for _, t := range s.Tasks {
		if t.TaskNumber == n {
			return t.ID, nil
		}
	}
	return "", fmt.Errorf("task #%d not found in object %s", n, s.Object(objectID).DisplayID())
}

// resolveUserID accepts a user UUID or a numeric telegram id.
func resolveUserID(ctx context.Context, a *App, input string) (*domain.User, error) {
	if id, err := strconv.ParseInt(input, 10, 64); err == nil {
		u, err := a.Users.Identify(ctx, id)
		if err != nil {
			return nil, err
		}
		if u == nil {
			return nil, fmt.Errorf("no user with telegram id %d", id)
		}
		return u, nil
	}
	users, err := a.Users.List(ctx, "")
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		if u.ID == input {
			return u, nil
		}
	}
	return nil, fmt.Errorf("user not found: %q", input)
}
