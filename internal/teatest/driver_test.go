package teatest

import (
	"fmt"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type loadedMsg struct{ n int }

type slowTickMsg struct{}

// counter loads a starting value on Init, counts "+" presses and quits on q.
type counter struct {
	n      int
	width  int
	loaded bool
}

func (c counter) Init() tea.Cmd {
	return tea.Batch(
		func() tea.Msg { return loadedMsg{n: 10} },
		func() tea.Msg { time.Sleep(time.Second); return slowTickMsg{} },
	)
}

func (c counter) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		c.width = msg.Width
	case loadedMsg:
		c.n, c.loaded = msg.n, true
	case slowTickMsg:
		c.n = -1
	case tea.KeyMsg:
		switch msg.String() {
		case "+":
			c.n++
		case "q":
			return c, tea.Quit
		}
	}
	return c, nil
}

func (c counter) View() string {
	return fmt.Sprintf("n=%d width=%d", c.n, c.width)
}

func TestDriver_RunsInitAndKeys(t *testing.T) {
	d := New(t, counter{}, 80, 24)
	assert.Equal(t, "n=10 width=80", d.View())
	require.Len(t, d.Seen(), 1)

	d.Key("+", "+")
	assert.Equal(t, "n=12 width=80", d.View())
	assert.True(t, d.Model().(counter).loaded)
}

func TestDriver_QuitStopsUpdates(t *testing.T) {
	d := New(t, counter{}, 80, 24)
	d.Key("q")
	assert.True(t, d.Quit())

	d.Key("+")
	assert.Equal(t, "n=10 width=80", d.View())
}

func TestDriver_NamedKeys(t *testing.T) {
	var got []string
	m := keyRecorder{record: func(k string) { got = append(got, k) }}
	d := New(t, m, 10, 10)
	d.Key("tab", "ctrl+c", "pgdown", "x")
	assert.Equal(t, []string{"tab", "ctrl+c", "pgdown", "x"}, got)
}

type keyRecorder struct{ record func(string) }

func (k keyRecorder) Init() tea.Cmd { return nil }

func (k keyRecorder) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		k.record(km.String())
	}
	return k, nil
}

func (k keyRecorder) View() string { return "" }
