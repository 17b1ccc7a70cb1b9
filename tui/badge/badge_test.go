package badge

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderer_EmptyAtZero(t *testing.T) {
	r := NewRenderer()
	assert.Equal(t, "", r.Render(0, ""))
}

func TestRenderer_ContainsCountAndLabel(t *testing.T) {
	r := NewRenderer()
	out := r.Render(3, "3 unsaved files")
	assert.Contains(t, out, "3")
	assert.Contains(t, out, "unsaved files")
}

func TestTerminal_ShowAndClear(t *testing.T) {
	var writes []string
	term := NewTerminal(func(s string) { writes = append(writes, s) })

	handle := term.Show(1, "1 unsaved file")
	assert.Len(t, writes, 1)
	assert.Contains(t, writes[0], "1 unsaved file")

	handle.Dispose()
	assert.Len(t, writes, 2)
	assert.Equal(t, "", writes[1])
}

func TestPluralLabel(t *testing.T) {
	assert.Equal(t, "1 unsaved file", pluralLabel(1))
	assert.Equal(t, "2 unsaved files", pluralLabel(2))
	assert.Equal(t, "0 unsaved files", pluralLabel(0))
}
