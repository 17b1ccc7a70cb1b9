package resource

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewKey(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Key
	}{
		{
			name:     "already canonical",
			input:    "/home/user/notes/todo.md",
			expected: "/home/user/notes/todo.md",
		},
		{
			name:     "relative path gains root",
			input:    "notes/todo.md",
			expected: "/notes/todo.md",
		},
		{
			name:     "trailing slash dropped",
			input:    "/home/user/notes/",
			expected: "/home/user/notes",
		},
		{
			name:     "dot segments collapsed",
			input:    "/home/user/../user/./notes",
			expected: "/home/user/notes",
		},
		{
			name:     "backslashes normalized",
			input:    `\home\user\todo.md`,
			expected: "/home/user/todo.md",
		},
		{
			name:     "empty input is root",
			input:    "",
			expected: "/",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NewKey(tt.input))
		})
	}
}

func TestKey_Segments(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c.md"}, Key("/a/b/c.md").Segments())
	assert.Nil(t, Key("/").Segments())
}

func TestKey_IsAncestorOf(t *testing.T) {
	folder := NewKey("/home/user/notes")

	assert.True(t, folder.IsAncestorOf(NewKey("/home/user/notes/todo.md")))
	assert.True(t, folder.IsAncestorOf(NewKey("/home/user/notes/deep/nested.md")))
	assert.False(t, folder.IsAncestorOf(folder))
	assert.False(t, folder.IsAncestorOf(NewKey("/home/user/notes-other/x.md")))
	assert.True(t, Key("/").IsAncestorOf(NewKey("/anything")))
}

func TestKey_Base(t *testing.T) {
	assert.Equal(t, "todo.md", NewKey("/home/user/todo.md").Base())
}
