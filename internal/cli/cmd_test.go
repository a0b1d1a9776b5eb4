package cli

import (
	"bytes"
	"context"
	"log/slog"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/porbotenet-wq/facadeflow/internal/app"
	"github.com/porbotenet-wq/facadeflow/internal/config"
	"github.com/porbotenet-wq/facadeflow/internal/domain"
	"github.com/porbotenet-wq/facadeflow/internal/service"
	"github.com/porbotenet-wq/facadeflow/internal/testutil"
)

const adminTelegramID int64 = 1001

var fixedNow = time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC)

// testApp wires a full App backed by an in-memory DB for CLI integration
// tests. The configured CLI identity is the admin's telegram id.
func testApp(t *testing.T) *App {
	t.Helper()
	database := testutil.NewTestDB(t)

	cfg := config.Defaults()
	cfg.CLI.TelegramID = adminTelegramID

	return &App{
		App:           app.New(database),
		Config:        cfg,
		Logger:        slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)),
		Now:           func() time.Time { return fixedNow },
		IsInteractive: func() bool { return false },
	}
}

// seedAdminProject creates the project and bootstraps the admin.
func seedAdminProject(t *testing.T, a *App) (*domain.Project, *domain.User) {
	t.Helper()
	ctx := context.Background()
	p, err := a.Projects.Create(ctx, "Фасады 2024", "")
	require.NoError(t, err)
	admin, err := a.Users.Bootstrap(ctx, adminTelegramID, "Анна Админова")
	require.NoError(t, err)
	return p, admin
}

// seedObject creates an object with its schedule and tasks through the
// service, dated so that task 1 is planned on the contract date.
func seedObject(t *testing.T, a *App, projectID, createdBy, name string) *domain.ConstructionObject {
	t.Helper()
	res, err := a.Objects.Create(context.Background(), serviceInput(projectID, createdBy, name))
	require.NoError(t, err)
	return res.Object
}

func serviceInput(projectID, createdBy, name string) service.CreateObjectInput {
	w := objectWizard{
		Name:         name,
		WorkTypes:    []domain.WorkType{domain.WorkTypeNVF},
		ContractDate: "2024-03-01",
	}
	in, _ := w.input(projectID, createdBy)
	return in
}

// executeCmd runs a cobra command and captures stdout/stderr.
func executeCmd(t *testing.T, a *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(a)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return stripANSI(buf.String()), err
}

var ansiRe = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func stripANSI(s string) string {
	return ansiRe.ReplaceAllString(s, "")
}
