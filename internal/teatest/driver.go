// Package teatest drives bubbletea models synchronously in tests.
//
// A Driver calls Update directly and runs every returned Cmd in place, so
// a test can press keys and assert on View without a tea.Program. Cmds that
// do not return within a short timeout (timers, blinking cursors) are
// dropped.
package teatest

import (
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// maxDepth bounds how long a chain of Cmd -> Msg -> Cmd is followed.
const maxDepth = 100

// cmdTimeout separates message factories and service calls from timers.
const cmdTimeout = 250 * time.Millisecond

// namedKeys maps the key names used by bubbles/key bindings to key types.
var namedKeys = map[string]tea.KeyType{
	"enter":     tea.KeyEnter,
	"esc":       tea.KeyEsc,
	"tab":       tea.KeyTab,
	"shift+tab": tea.KeyShiftTab,
	"up":        tea.KeyUp,
	"down":      tea.KeyDown,
	"left":      tea.KeyLeft,
	"right":     tea.KeyRight,
	"pgup":      tea.KeyPgUp,
	"pgdown":    tea.KeyPgDown,
	"home":      tea.KeyHome,
	"end":       tea.KeyEnd,
	"ctrl+c":    tea.KeyCtrlC,
	"ctrl+d":    tea.KeyCtrlD,
	"ctrl+u":    tea.KeyCtrlU,
}

type Driver struct {
	t     testing.TB
	model tea.Model
	quit  bool
	seen  []tea.Msg
}

// New sizes model to width x height and runs its Init command.
func New(t testing.TB, model tea.Model, width, height int) *Driver {
	t.Helper()
	d := &Driver{t: t, model: model}
	d.Send(tea.WindowSizeMsg{Width: width, Height: height})
	d.run(model.Init(), 0)
	return d
}

// Send feeds msg through Update and runs the resulting commands.
func (d *Driver) Send(msg tea.Msg) {
	d.t.Helper()
	if d.quit {
		return
	}
	var cmd tea.Cmd
	d.model, cmd = d.model.Update(msg)
	d.run(cmd, 0)
}

// Key sends each named key in order. Names follow bubbles/key ("tab",
// "ctrl+c", "pgdown"); anything else is typed as runes.
func (d *Driver) Key(names ...string) {
	d.t.Helper()
	for _, name := range names {
		if kt, ok := namedKeys[name]; ok {
			d.Send(tea.KeyMsg{Type: kt})
			continue
		}
		d.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(name)})
	}
}

func (d *Driver) Model() tea.Model { return d.model }

func (d *Driver) View() string { return d.model.View() }

// Quit reports whether the model returned tea.Quit.
func (d *Driver) Quit() bool { return d.quit }

// Seen returns the messages produced by commands so far, in order.
func (d *Driver) Seen() []tea.Msg { return d.seen }

func (d *Driver) run(cmd tea.Cmd, depth int) {
	d.t.Helper()
	if cmd == nil {
		return
	}
	if depth >= maxDepth {
		d.t.Logf("teatest: command chain deeper than %d, stopping", maxDepth)
		return
	}

	msg, ok := call(cmd)
	if !ok || msg == nil {
		return
	}
	switch msg := msg.(type) {
	case tea.BatchMsg:
		for _, c := range msg {
			d.run(c, depth+1)
		}
		return
	case tea.QuitMsg:
		d.quit = true
		return
	}
	if isTimer(msg) {
		return
	}

	d.seen = append(d.seen, msg)
	var next tea.Cmd
	d.model, next = d.model.Update(msg)
	d.run(next, depth+1)
}

func call(cmd tea.Cmd) (tea.Msg, bool) {
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()
	select {
	case msg := <-ch:
		return msg, true
	case <-time.After(cmdTimeout):
		return nil, false
	}
}

// isTimer matches blink and tick messages from bubbles, which re-arm
// themselves forever.
func isTimer(msg tea.Msg) bool {
	name := strings.ToLower(fmt.Sprintf("%T", msg))
	return strings.Contains(name, "blink") || strings.Contains(name, "tick")
}
