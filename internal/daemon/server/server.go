// Package server provides the HTTP server for the draft daemon.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/grovetools/draft/internal/daemon/store"
	"github.com/grovetools/draft/pkg/event"
	"github.com/grovetools/draft/pkg/resource"
	"github.com/grovetools/draft/pkg/workingcopy"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
)

// RunningConfig holds the active configuration being used by the daemon.
// This is exposed via the /api/config endpoint so clients can verify what
// config is active.
type RunningConfig struct {
	AutoSaveMode  string        `json:"auto_save_mode"`
	AutoSaveDelay time.Duration `json:"auto_save_delay"`
	Debounce      time.Duration `json:"debounce"`
	Workspaces    []string      `json:"workspaces"`
	StartedAt     time.Time     `json:"started_at"`
}

// trackedCopy pairs an editor-reported working copy with its registration
// handle so a close report can unregister it.
type trackedCopy struct {
	copy   *workingcopy.Copy
	handle *event.Disposable
}

// Server manages the daemon's HTTP server over a Unix socket.
type Server struct {
	logger        *logrus.Entry
	server        *http.Server
	registry      *workingcopy.Registry
	store         *store.Store
	runningConfig *RunningConfig

	mu     sync.Mutex
	copies map[resource.Key]*trackedCopy
}

// New creates a new Server instance.
func New(logger *logrus.Entry, registry *workingcopy.Registry, st *store.Store) *Server {
	return &Server{
		logger:   logger,
		registry: registry,
		store:    st,
		copies:   make(map[resource.Key]*trackedCopy),
	}
}

// SetRunningConfig sets the running configuration for the server.
func (s *Server) SetRunningConfig(cfg *RunningConfig) {
	s.runningConfig = cfg
}

// ListenAndServe starts the daemon on the given unix socket path.
// It blocks until the server stops or fails.
func (s *Server) ListenAndServe(socketPath string) error {
	// Cleanup stale socket
	if _, err := os.Stat(socketPath); err == nil {
		if err := os.Remove(socketPath); err != nil {
			return fmt.Errorf("failed to remove stale socket: %w", err)
		}
	}

	if err := os.MkdirAll(filepath.Dir(socketPath), 0755); err != nil {
		return fmt.Errorf("failed to create socket directory: %w", err)
	}

	listener, err := net.Listen("unix", socketPath)
	if err != nil {
		return fmt.Errorf("failed to listen on socket: %w", err)
	}

	// Set restrictive permissions on socket
	if err := os.Chmod(socketPath, 0600); err != nil {
		_ = listener.Close()
		return fmt.Errorf("failed to set socket permissions: %w", err)
	}

	mux := http.NewServeMux()

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	mux.HandleFunc("/api/state", s.handleGetState)
	mux.HandleFunc("/api/dirty", s.handleGetDirty)
	mux.HandleFunc("/api/copies", s.handleCopies)
	mux.HandleFunc("/api/stream", s.handleStreamState)
	mux.HandleFunc("/api/config", s.handleGetConfig)

	s.server = &http.Server{
		Handler: h2c.NewHandler(mux, &http2.Server{}),
	}

	s.logger.WithField("socket", socketPath).Info("Daemon listening")
	return s.server.Serve(listener)
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down server...")
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}

// handleGetState returns the complete daemon state as JSON.
func (s *Server) handleGetState(w http.ResponseWriter, r *http.Request) {
	state := s.store.Get()
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(state)
}

// dirtyResponse is the payload for /api/dirty.
type dirtyResponse struct {
	DirtyCount int      `json:"dirty_count"`
	Resources  []string `json:"resources"`
}

// handleGetDirty returns the current dirty resources as JSON.
func (s *Server) handleGetDirty(w http.ResponseWriter, r *http.Request) {
	keys := s.registry.DirtyResources()
	resources := make([]string, len(keys))
	for i, k := range keys {
		resources[i] = k.String()
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(dirtyResponse{
		DirtyCount: s.registry.DirtyCount(),
		Resources:  resources,
	})
}

// copyReport is what an editor integration posts when a buffer's state
// changes.
type copyReport struct {
	Resource string `json:"resource"`
	Name     string `json:"name,omitempty"`
	Dirty    bool   `json:"dirty"`
	AutoSave bool   `json:"auto_save,omitempty"`
	Closed   bool   `json:"closed,omitempty"`
}

// handleCopies accepts editor reports about working copies. A report with
// closed=true unregisters the copy; otherwise the copy is registered on
// first sight and its dirty flag updated.
func (s *Server) handleCopies(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var report copyReport
	if err := json.NewDecoder(r.Body).Decode(&report); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if report.Resource == "" {
		http.Error(w, "resource is required", http.StatusBadRequest)
		return
	}

	key := resource.NewKey(report.Resource)

	if report.Closed {
		s.mu.Lock()
		tracked, ok := s.copies[key]
		delete(s.copies, key)
		s.mu.Unlock()
		if ok {
			tracked.handle.Dispose()
			s.logger.WithField("resource", key.String()).Debug("Working copy closed")
		}
		w.WriteHeader(http.StatusOK)
		return
	}

	s.mu.Lock()
	tracked, ok := s.copies[key]
	if !ok {
		caps := workingcopy.CapabilityNone
		if report.AutoSave {
			caps = workingcopy.CapabilityAutoSave
		}
		c := workingcopy.NewCopy(key, caps)
		tracked = &trackedCopy{
			copy:   c,
			handle: s.registry.Register(c),
		}
		s.copies[key] = tracked
	}
	s.mu.Unlock()

	tracked.copy.SetDirty(report.Dirty)
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]int{"dirty_count": s.registry.DirtyCount()})
}

// handleStreamState provides Server-Sent Events (SSE) for real-time state
// updates. Clients subscribe to receive updates whenever the dirty state
// changes.
func (s *Server) handleStreamState(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming not supported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch := s.store.Subscribe()
	defer s.store.Unsubscribe(ch)

	// Send initial ping to confirm connection
	fmt.Fprintf(w, ": connected\n\n")
	flusher.Flush()

	s.logger.Debug("SSE client connected")

	// Send current state immediately so the client has data right away.
	if data, err := json.Marshal(apiStateUpdate{
		UpdateType: "initial",
		State:      ptr(s.store.Get()),
	}); err == nil {
		fmt.Fprintf(w, "data: %s\n\n", data)
		flusher.Flush()
	}

	for {
		select {
		case <-r.Context().Done():
			s.logger.Debug("SSE client disconnected")
			return
		case update := <-ch:
			apiUpdate := convertToAPIUpdate(update)
			if apiUpdate == nil {
				continue
			}
			data, err := json.Marshal(apiUpdate)
			if err != nil {
				s.logger.WithError(err).Error("Failed to marshal update")
				continue
			}
			// SSE format: "data: {json}\n\n"
			fmt.Fprintf(w, "data: %s\n\n", data)
			flusher.Flush()
		}
	}
}

// apiStateUpdate is the public SSE payload format.
type apiStateUpdate struct {
	UpdateType string       `json:"update_type"`
	Source     string       `json:"source,omitempty"`
	State      *store.State `json:"state,omitempty"`
	BadgeLabel string       `json:"badge_label,omitempty"`
	ConfigFile string       `json:"config_file,omitempty"`
}

// convertToAPIUpdate converts an internal store.Update to the public API
// format.
func convertToAPIUpdate(u store.Update) *apiStateUpdate {
	switch u.Type {
	case store.UpdateDirty:
		if state, ok := u.Payload.(store.State); ok {
			return &apiStateUpdate{
				UpdateType: "dirty",
				Source:     u.Source,
				State:      &state,
			}
		}
	case store.UpdateBadge:
		label, _ := u.Payload.(string)
		return &apiStateUpdate{
			UpdateType: "badge",
			Source:     u.Source,
			BadgeLabel: label,
		}
	case store.UpdateConfigReload:
		file, _ := u.Payload.(string)
		return &apiStateUpdate{
			UpdateType: "config_reload",
			Source:     u.Source,
			ConfigFile: file,
		}
	}
	return nil
}

// handleGetConfig returns the running configuration as JSON.
func (s *Server) handleGetConfig(w http.ResponseWriter, r *http.Request) {
	if s.runningConfig == nil {
		http.Error(w, "config not initialized", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(s.runningConfig)
}

func ptr(s store.State) *store.State {
	return &s
}
