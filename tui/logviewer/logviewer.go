// Package logviewer is a TUI component for following draft's log files.
package logviewer

import (
	"io"
	stdlog "log"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/grovetools/draft/tui/theme"
	"github.com/hpcloud/tail"
)

// LineMsg is sent when a new log line arrives.
type LineMsg struct {
	Component string
	Line      string
}

type keyMap struct {
	Quit   key.Binding
	Follow key.Binding
}

var keys = keyMap{
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
	Follow: key.NewBinding(
		key.WithKeys("f"),
		key.WithHelp("f", "toggle follow"),
	),
}

// Model is the TUI component for viewing logs.
type Model struct {
	viewport viewport.Model
	tails    []*tail.Tail
	mu       sync.Mutex
	follow   bool
	width    int
	height   int
	lineCh   chan LineMsg
	lines    []string
}

// New creates a new log viewer model.
func New(width, height int) *Model {
	vp := viewport.New(width, height-1)
	return &Model{
		viewport: vp,
		follow:   true,
		width:    width,
		height:   height,
		lineCh:   make(chan LineMsg, 100),
		lines:    []string{},
	}
}

// Start begins tailing the given log files, keyed by component name.
func (m *Model) Start(files map[string]string) tea.Cmd {
	m.Stop()
	m.mu.Lock()
	defer m.mu.Unlock()

	for component, path := range files {
		t, err := tail.TailFile(path, tail.Config{
			Follow:   true,
			ReOpen:   true,
			Location: &tail.SeekInfo{Offset: 0, Whence: io.SeekStart},
			Logger:   stdlog.New(io.Discard, "", 0),
		})
		if err != nil {
			continue
		}
		m.tails = append(m.tails, t)

		go func(c string, t *tail.Tail) {
			for line := range t.Lines {
				m.lineCh <- LineMsg{Component: c, Line: line.Text}
			}
		}(component, t)
	}

	return m.waitForLine()
}

// Stop halts all tailing operations.
func (m *Model) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range m.tails {
		t.Stop()
	}
	m.tails = nil
}

func (m *Model) waitForLine() tea.Cmd {
	return func() tea.Msg {
		return <-m.lineCh
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return m.waitForLine()
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			m.Stop()
			return m, tea.Quit
		case key.Matches(msg, keys.Follow):
			m.follow = !m.follow
			if m.follow {
				m.viewport.GotoBottom()
			}
		}
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		cmds = append(cmds, cmd)

	case LineMsg:
		prefix := theme.DefaultTheme.Accent.Render("[" + msg.Component + "]")
		m.lines = append(m.lines, prefix+" "+msg.Line)
		m.viewport.SetContent(strings.Join(m.lines, "\n"))
		if m.follow {
			m.viewport.GotoBottom()
		}
		cmds = append(cmds, m.waitForLine())

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = msg.Width
		m.viewport.Height = msg.Height - 1
	}

	return m, tea.Batch(cmds...)
}

// View implements tea.Model.
func (m *Model) View() string {
	status := "follow on"
	if !m.follow {
		status = "follow off"
	}
	bar := theme.DefaultTheme.Muted.Render("q quit · f " + status)
	return m.viewport.View() + "\n" + bar
}
