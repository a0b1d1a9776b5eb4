package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/porbotenet-wq/facadeflow/internal/appstate"
	"github.com/porbotenet-wq/facadeflow/internal/cli/formatter"
	"github.com/porbotenet-wq/facadeflow/internal/domain"
	"github.com/porbotenet-wq/facadeflow/internal/service"
	"github.com/porbotenet-wq/facadeflow/internal/template"
)

type boardMode int

const (
	modeGantt boardMode = iota
	modeColumns
)

// boardColumns are the task statuses shown side by side in columns mode.
var boardColumns = []domain.TaskStatus{
	domain.TaskWaiting,
	domain.TaskInProgress,
	domain.TaskDone,
	domain.TaskCancelled,
}

// title, underline, two blank lines and the footer around the viewport
const boardChrome = 5

type boardKeyMap struct {
	Quit      key.Binding
	Switch    key.Binding
	NextBlock key.Binding
	PrevBlock key.Binding
	Reload    key.Binding
}

func defaultBoardKeyMap() boardKeyMap {
	return boardKeyMap{
		Quit:      key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
		Switch:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "chart/board")),
		NextBlock: key.NewBinding(key.WithKeys("]", "right"), key.WithHelp("]", "next block")),
		PrevBlock: key.NewBinding(key.WithKeys("[", "left"), key.WithHelp("[", "prev block")),
		Reload:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
	}
}

func (k boardKeyMap) help() string {
	parts := make([]string, 0, 5)
	for _, b := range []key.Binding{k.Switch, k.PrevBlock, k.NextBlock, k.Reload, k.Quit} {
		h := b.Help()
		parts = append(parts, formatter.Bold(h.Key)+" "+formatter.Dim(h.Desc))
	}
	return strings.Join(parts, "  ")
}

func boardViewportKeyMap() viewport.KeyMap {
	return viewport.KeyMap{
		PageDown:     key.NewBinding(key.WithKeys("pgdown")),
		PageUp:       key.NewBinding(key.WithKeys("pgup")),
		HalfPageUp:   key.NewBinding(key.WithKeys("ctrl+u")),
		HalfPageDown: key.NewBinding(key.WithKeys("ctrl+d")),
		Up:           key.NewBinding(key.WithKeys("up", "k")),
		Down:         key.NewBinding(key.WithKeys("down", "j")),
	}
}

// boardLoadedMsg carries one load of the object's tasks and chart.
type boardLoadedMsg struct {
	state appstate.State
	chart *service.GanttChart
	err   error
}

// boardModel is the interactive Gantt viewer. It shows either the timeline
// or the tasks grouped by status, filtered to one workflow block or to all.
type boardModel struct {
	ctx    context.Context
	loader *appstate.Loader
	gantt  service.GanttService
	now    func() time.Time

	state    appstate.State
	objectID string
	blocks   []string
	block    int // index into blocks, -1 for all
	mode     boardMode
	chart    *service.GanttChart
	err      error

	vp     viewport.Model
	keys   boardKeyMap
	width  int
	height int
}

func newBoardModel(ctx context.Context, a *App, s appstate.State, objectID, block string) *boardModel {
	m := &boardModel{
		ctx:      ctx,
		loader:   a.loader(),
		gantt:    a.Gantt,
		now:      a.now,
		state:    s,
		objectID: objectID,
		block:    -1,
		keys:     defaultBoardKeyMap(),
		vp:       viewport.New(0, 0),
	}
	m.vp.KeyMap = boardViewportKeyMap()
	for _, st := range template.WorkflowStages {
		m.blocks = append(m.blocks, st.Name)
		if st.Name == block {
			m.block = len(m.blocks) - 1
		}
	}
	return m
}

func (m *boardModel) blockFilter() string {
	if m.block < 0 {
		return ""
	}
	return m.blocks[m.block]
}

func (m *boardModel) load() tea.Cmd {
	ctx, loader, gantt := m.ctx, m.loader, m.gantt
	base, objectID, block := m.state, m.objectID, m.blockFilter()
	return func() tea.Msg {
		s, err := loader.LoadTasks(ctx, base, objectID, service.TaskListFilter{Block: block})
		if err != nil {
			return boardLoadedMsg{state: s, err: err}
		}
		chart, err := gantt.Build(ctx, objectID, block)
		return boardLoadedMsg{state: s, chart: chart, err: err}
	}
}

func (m *boardModel) Init() tea.Cmd {
	return m.load()
}

func (m *boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.vp.Width = msg.Width
		m.vp.Height = max(msg.Height-boardChrome, 1)
		m.refresh()
		return m, nil

	case boardLoadedMsg:
		m.state, m.chart, m.err = msg.state, msg.chart, msg.err
		m.refresh()
		m.vp.GotoTop()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Switch):
			if m.mode == modeGantt {
				m.mode = modeColumns
			} else {
				m.mode = modeGantt
			}
			m.refresh()
			m.vp.GotoTop()
			return m, nil
		case key.Matches(msg, m.keys.NextBlock):
			m.block++
			if m.block >= len(m.blocks) {
				m.block = -1
			}
			return m, m.load()
		case key.Matches(msg, m.keys.PrevBlock):
			m.block--
			if m.block < -1 {
				m.block = len(m.blocks) - 1
			}
			return m, m.load()
		case key.Matches(msg, m.keys.Reload):
			return m, m.load()
		}
	}

	var cmd tea.Cmd
	m.vp, cmd = m.vp.Update(msg)
	return m, cmd
}

// refresh re-renders the viewport content for the current mode and size.
func (m *boardModel) refresh() {
	switch {
	case m.err != nil:
		m.vp.SetContent(formatter.StyleRed.Render("Error: " + m.err.Error()))
	case m.mode == modeColumns:
		m.vp.SetContent(m.renderColumns())
	default:
		cols := max(m.width-34, 10)
		m.vp.SetContent(formatter.RenderGantt(m.chart, cols))
	}
}

func (m *boardModel) renderColumns() string {
	colWidth := max((m.width-len(boardColumns)+1)/len(boardColumns), 16)
	now := m.now()

	cols := make([]string, 0, len(boardColumns))
	for _, status := range boardColumns {
		var b strings.Builder
		var n int
		for _, t := range m.state.Tasks {
			if t.Status != status {
				continue
			}
			n++
			line := formatter.Truncate(fmt.Sprintf("#%d %s", t.TaskNumber, t.TaskName), colWidth-1)
			if t.IsOverdue(now) {
				line = formatter.StyleRed.Render(line)
			}
			b.WriteString(line + "\n")
		}
		title := fmt.Sprintf("%s (%d)", formatter.TaskStatusPill(status), n)
		col := lipgloss.NewStyle().Width(colWidth).Render(title + "\n\n" + b.String())
		cols = append(cols, col)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cols...)
}

func (m *boardModel) View() string {
	name := m.objectID
	if o := m.state.Object(m.objectID); o != nil {
		name = o.Name
	}
	block := "all blocks"
	if f := m.blockFilter(); f != "" {
		block = formatter.Hex(service.BlockColor(f), f)
	}
	mode := "chart"
	if m.mode == modeColumns {
		mode = "board"
	}

	header := formatter.Title("Gantt", fmt.Sprintf("%s  %s  %s", formatter.Bold(name), formatter.Dim(mode), block))
	footer := m.keys.help() + "  " + scrollIndicator(m.vp)
	return header + "\n\n" + m.vp.View() + "\n\n" + footer
}

// scrollIndicator returns a dim scroll position string for the footer.
func scrollIndicator(vp viewport.Model) string {
	if vp.AtTop() {
		return formatter.Dim("[TOP]")
	}
	if vp.AtBottom() {
		return formatter.Dim("[END]")
	}
	return formatter.Dim(fmt.Sprintf("[%d%%]", int(vp.ScrollPercent()*100)))
}
