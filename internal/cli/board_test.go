package cli

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/porbotenet-wq/facadeflow/internal/appstate"
	"github.com/porbotenet-wq/facadeflow/internal/domain"
	"github.com/porbotenet-wq/facadeflow/internal/teatest"
	"github.com/porbotenet-wq/facadeflow/internal/template"
)

// newTestBoard seeds an object and opens the board on it as the admin.
func newTestBoard(t *testing.T, block string) (*teatest.Driver, *App, *domain.ConstructionObject) {
	t.Helper()
	a := testApp(t)
	p, admin := seedAdminProject(t, a)
	obj := seedObject(t, a, p.ID, admin.ID, "ЖК Северный")

	ctx := context.Background()
	s, err := a.session(ctx)
	require.NoError(t, err)
	s, err = a.loader().LoadObjects(ctx, s)
	require.NoError(t, err)

	d := teatest.New(t, newBoardModel(ctx, a, s, obj.ID, block), 120, 40)
	return d, a, obj
}

func board(d *teatest.Driver) *boardModel {
	return d.Model().(*boardModel)
}

func TestBoard_LoadsChartOnInit(t *testing.T) {
	d, _, _ := newTestBoard(t, "")

	m := board(d)
	require.NoError(t, m.err)
	require.NotNil(t, m.chart)
	assert.Len(t, m.state.Tasks, template.StepCount(template.WorkflowStages))

	view := stripANSI(d.View())
	assert.Contains(t, view, "GANTT ЖК Северный")
	assert.Contains(t, view, "chart")
	assert.Contains(t, view, "all blocks")
	assert.Contains(t, view, "#1 ")
	assert.Contains(t, view, "[TOP]")
}

func TestBoard_SwitchToColumns(t *testing.T) {
	d, _, _ := newTestBoard(t, "")
	steps := template.StepCount(template.WorkflowStages)

	d.Key("tab")
	view := stripANSI(d.View())
	assert.Contains(t, view, "board")
	assert.Contains(t, view, fmt.Sprintf("○ Ожидание (%d)", steps))
	assert.Contains(t, view, "✔ Выполнено (0)")

	d.Key("tab")
	assert.Equal(t, modeGantt, board(d).mode)
}

func TestBoard_CyclesBlocks(t *testing.T) {
	d, _, _ := newTestBoard(t, "")
	first := template.WorkflowStages[0]

	d.Key("]")
	m := board(d)
	assert.Equal(t, first.Name, m.blockFilter())
	assert.Len(t, m.state.Tasks, len(first.Steps))
	assert.Contains(t, stripANSI(d.View()), first.Name)

	d.Key("[")
	assert.Equal(t, "", board(d).blockFilter())
	assert.Len(t, board(d).state.Tasks, template.StepCount(template.WorkflowStages))

	d.Key("[")
	last := template.WorkflowStages[len(template.WorkflowStages)-1]
	assert.Equal(t, last.Name, board(d).blockFilter())
}

func TestBoard_StartsOnRequestedBlock(t *testing.T) {
	stage := template.WorkflowStages[1]
	d, _, _ := newTestBoard(t, stage.Name)

	assert.Equal(t, stage.Name, board(d).blockFilter())
	assert.Len(t, board(d).state.Tasks, len(stage.Steps))
}

func TestBoard_ReloadPicksUpChanges(t *testing.T) {
	d, a, obj := newTestBoard(t, "")
	ctx := context.Background()

	var firstID string
	for _, task := range board(d).state.Tasks {
		if task.TaskNumber == 1 {
			firstID = task.ID
		}
	}
	require.NotEmpty(t, firstID)
	admin, err := a.Users.Identify(ctx, adminTelegramID)
	require.NoError(t, err)
	_, err = a.Tasks.ChangeStatus(ctx, firstID, domain.TaskDone, admin.ID)
	require.NoError(t, err)

	d.Key("tab", "r")
	assert.Contains(t, stripANSI(d.View()), "✔ Выполнено (1)")
	assert.Equal(t, obj.ID, board(d).state.ObjectID)
}

func TestBoard_ShowsLoadError(t *testing.T) {
	a := testApp(t)
	seedAdminProject(t, a)
	s, err := a.session(context.Background())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	d := teatest.New(t, newBoardModel(ctx, a, appstate.State{User: s.User, Project: s.Project}, "missing", ""), 80, 20)

	assert.Error(t, board(d).err)
	assert.Contains(t, stripANSI(d.View()), "Error:")
}

func TestBoard_Quit(t *testing.T) {
	d, _, _ := newTestBoard(t, "")
	d.Key("q")
	assert.True(t, d.Quit())
}
