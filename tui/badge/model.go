package badge

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/grovetools/draft/pkg/daemon"
	"github.com/grovetools/draft/tui/theme"
)

// updateMsg wraps a daemon state update for the bubbletea loop.
type updateMsg daemon.StateUpdate

// streamClosedMsg is sent when the daemon stream ends.
type streamClosedMsg struct{}

// keyMap defines the key bindings for the watch view.
type keyMap struct {
	Quit key.Binding
}

var keys = keyMap{
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c", "esc"),
		key.WithHelp("q", "quit"),
	),
}

// Model is the bubbletea model for `draft status --watch`. It renders the
// live badge plus the dirty resource list, fed by the daemon's SSE stream.
type Model struct {
	renderer *Renderer
	updates  <-chan daemon.StateUpdate

	dirtyCount int
	resources  []string
	badgeLabel string
	closed     bool
}

// NewModel creates a watch model over a daemon update stream.
func NewModel(updates <-chan daemon.StateUpdate) Model {
	return Model{
		renderer: NewRenderer(),
		updates:  updates,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return m.waitForUpdate()
}

func (m Model) waitForUpdate() tea.Cmd {
	return func() tea.Msg {
		u, ok := <-m.updates
		if !ok {
			return streamClosedMsg{}
		}
		return updateMsg(u)
	}
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, keys.Quit) {
			return m, tea.Quit
		}

	case updateMsg:
		if msg.State != nil {
			m.dirtyCount = msg.State.DirtyCount
			m.resources = msg.State.DirtyResources
			if msg.State.BadgeLabel != "" {
				m.badgeLabel = msg.State.BadgeLabel
			}
		}
		if msg.UpdateType == "badge" {
			m.badgeLabel = msg.BadgeLabel
		}
		return m, m.waitForUpdate()

	case streamClosedMsg:
		m.closed = true
		return m, tea.Quit
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	th := theme.DefaultTheme
	var b strings.Builder

	b.WriteString(th.Title.Render("draft") + "\n\n")

	label := m.badgeLabel
	if label == "" {
		label = pluralLabel(m.dirtyCount)
	}
	if m.dirtyCount == 0 {
		b.WriteString(th.Success.Render("✓ all saved") + "\n")
	} else {
		b.WriteString(m.renderer.Render(m.dirtyCount, label) + "\n\n")
		for _, r := range m.resources {
			b.WriteString(fmt.Sprintf("  %s\n", th.Normal.Render(r)))
		}
	}

	b.WriteString("\n" + th.Muted.Render("q to quit"))
	if m.closed {
		b.WriteString("\n" + th.Error.Render("daemon stream closed"))
	}
	return b.String()
}

func pluralLabel(count int) string {
	if count == 1 {
		return "1 unsaved file"
	}
	return fmt.Sprintf("%d unsaved files", count)
}
