package editor

import (
	"fmt"
	"path/filepath"
	"strings"

	draftrs "github.com/grovetools/draft/errors"
	"github.com/grovetools/draft/logging"
	"github.com/grovetools/draft/pkg/resource"
	"github.com/neovim/go-client/nvim"
	"github.com/sirupsen/logrus"
)

// NvimHost talks to a Neovim instance over msgpack-rpc. With a socket it
// attaches to a running editor; without one it starts an embedded headless
// child, which is mostly useful for tests.
type NvimHost struct {
	v      *nvim.Nvim
	logger *logrus.Entry
}

// NewNvimHost connects to the Neovim listening on socket, or starts an
// embedded child process when socket is empty.
func NewNvimHost(socket string) (*NvimHost, error) {
	var v *nvim.Nvim
	var err error

	if socket != "" {
		v, err = nvim.Dial(socket)
	} else {
		v, err = nvim.NewChildProcess(nvim.ChildProcessArgs("--embed", "--headless", "--clean"))
	}
	if err != nil {
		return nil, draftrs.EditorUnavailable(socket, err)
	}

	return &NvimHost{
		v:      v,
		logger: logging.NewLogger("editor"),
	}, nil
}

// IsOpen reports whether any buffer in the editor is backed by the resource.
func (h *NvimHost) IsOpen(key resource.Key) bool {
	bufs, err := h.v.Buffers()
	if err != nil {
		h.logger.WithError(err).Warn("Failed to list buffers")
		return false
	}

	want := key.String()
	for _, buf := range bufs {
		name, err := h.v.BufferName(buf)
		if err != nil || name == "" {
			continue
		}
		if canonicalBufferName(name) == want {
			return true
		}
	}
	return false
}

// OpenInBackground adds the resources to the buffer list via :badd, which
// creates buffers without displaying them.
func (h *NvimHost) OpenInBackground(keys []resource.Key) error {
	for _, key := range keys {
		cmd := fmt.Sprintf("badd %s", escapePath(key.String()))
		if err := h.v.Command(cmd); err != nil {
			return draftrs.EditorCommand(cmd, err)
		}
		h.logger.WithField("resource", key.String()).Debug("Opened buffer in background")
	}
	return nil
}

// ModifiedBuffers returns the resources whose buffers have unsaved changes,
// per the 'modified' buffer option.
func (h *NvimHost) ModifiedBuffers() ([]resource.Key, error) {
	bufs, err := h.v.Buffers()
	if err != nil {
		return nil, draftrs.EditorCommand("nvim_list_bufs", err)
	}

	var dirty []resource.Key
	for _, buf := range bufs {
		var modified bool
		if err := h.v.BufferOption(buf, "modified", &modified); err != nil || !modified {
			continue
		}
		name, err := h.v.BufferName(buf)
		if err != nil || name == "" {
			continue
		}
		dirty = append(dirty, resource.NewKey(canonicalBufferName(name)))
	}
	return dirty, nil
}

// Save writes the buffer backing the resource.
func (h *NvimHost) Save(key resource.Key) error {
	bufs, err := h.v.Buffers()
	if err != nil {
		return draftrs.EditorCommand("nvim_list_bufs", err)
	}

	want := key.String()
	for _, buf := range bufs {
		name, err := h.v.BufferName(buf)
		if err != nil || canonicalBufferName(name) != want {
			continue
		}
		cmd := fmt.Sprintf("buffer %d | write | buffer #", int(buf))
		if err := h.v.Command(cmd); err != nil {
			return draftrs.EditorCommand(cmd, err)
		}
		return nil
	}
	return draftrs.EditorCommand("write", fmt.Errorf("no buffer for %s", want))
}

// Close disconnects from the editor.
func (h *NvimHost) Close() error {
	if h.v == nil {
		return nil
	}
	return h.v.Close()
}

// canonicalBufferName normalizes buffer names onto resource key form so
// relative and absolute spellings of the same file compare equal.
func canonicalBufferName(name string) string {
	if !filepath.IsAbs(name) {
		if abs, err := filepath.Abs(name); err == nil {
			name = abs
		}
	}
	return resource.NewKey(name).String()
}

func escapePath(p string) string {
	return strings.ReplaceAll(p, " ", `\ `)
}
