// Package badge renders the unsaved-files badge for the terminal.
package badge

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/grovetools/draft/pkg/event"
	"github.com/grovetools/draft/tui/theme"
)

// Renderer draws the badge with the active theme.
type Renderer struct {
	theme theme.Theme
}

// NewRenderer creates a badge renderer.
func NewRenderer() *Renderer {
	return &Renderer{theme: theme.DefaultTheme}
}

// Render returns the styled badge text, or an empty string when there is
// nothing unsaved.
func (r *Renderer) Render(count int, label string) string {
	if count == 0 {
		return ""
	}

	dot := r.theme.Warning.Render("●")
	num := r.theme.Bold.Render(fmt.Sprintf("%d", count))
	return lipgloss.JoinHorizontal(lipgloss.Center,
		dot, " ", num, " ", r.theme.Muted.Render(label))
}

// Terminal is a badge host that writes the badge through a callback, used
// when the indicator runs attached to a terminal surface.
type Terminal struct {
	renderer *Renderer
	write    func(string)
}

// NewTerminal creates a badge host that calls write with each rendered
// badge. An empty string means the badge was cleared.
func NewTerminal(write func(string)) *Terminal {
	return &Terminal{
		renderer: NewRenderer(),
		write:    write,
	}
}

// Show renders the badge. Disposing the returned handle clears it.
func (t *Terminal) Show(count int, label string) *event.Disposable {
	t.write(t.renderer.Render(count, label))
	return event.NewDisposable(func() {
		t.write("")
	})
}
