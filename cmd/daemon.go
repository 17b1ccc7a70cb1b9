package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/grovetools/draft/config"
	"github.com/grovetools/draft/errors"
	"github.com/grovetools/draft/internal/daemon/pidfile"
	"github.com/grovetools/draft/internal/daemon/server"
	"github.com/grovetools/draft/internal/daemon/store"
	"github.com/grovetools/draft/logging"
	"github.com/grovetools/draft/pkg/editor"
	"github.com/grovetools/draft/pkg/event"
	"github.com/grovetools/draft/pkg/indicator"
	"github.com/grovetools/draft/pkg/paths"
	"github.com/grovetools/draft/pkg/watcher"
	"github.com/grovetools/draft/pkg/workingcopy"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// NewDaemonCmd returns the draftd daemon command with subcommands.
func NewDaemonCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "daemon",
		Short: "Draft dirty-state daemon",
		Long:  "Tracks unsaved working copies across editors and exposes them over a local socket.",
	}

	cmd.AddCommand(newDaemonStartCmd())
	cmd.AddCommand(newDaemonStopCmd())
	cmd.AddCommand(newDaemonStatusCmd())

	return cmd
}

// configPolicy adapts the loaded config to the indicator's save policy.
type configPolicy struct {
	cfg *config.Config
}

func (p configPolicy) AutoSaveMode() config.AutoSaveMode {
	return p.cfg.AutoSave.EffectiveMode()
}

// newEditorHost picks the editor host for the daemon. Background opens only
// make sense in an editor the user can see, so without a configured socket
// the daemon runs with the noop host instead of spawning an embedded
// instance nobody is looking at.
func newEditorHost(cfg *config.Config, logger *logrus.Entry) editor.Host {
	if cfg.Editor == nil || cfg.Editor.NvimSocket == "" {
		logger.Debug("No editor socket configured, background opens disabled")
		return editor.NewNoopHost()
	}

	host, err := editor.NewNvimHost(cfg.Editor.NvimSocket)
	if err != nil {
		logger.WithError(err).Warn("Editor unreachable, background opens disabled")
		return editor.NewNoopHost()
	}
	return host
}

func newDaemonStartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the daemon",
		Long:  "Start the draft daemon in foreground mode.",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.NewLogger("draftd")
			pidPath := paths.PidFilePath()
			sockPath := paths.SocketPath()

			cfg, err := config.LoadDefault()
			if err != nil {
				if !errors.Is(err, errors.ErrCodeConfigNotFound) {
					return fmt.Errorf("failed to load config: %w", err)
				}
				// No draft.yml; run with defaults and no watched workspaces.
				cfg = &config.Config{}
				cfg.SetDefaults()
			}

			// 1. Acquire lock
			if err := pidfile.Acquire(pidPath); err != nil {
				return fmt.Errorf("failed to start: %w", err)
			}
			defer func() {
				if err := pidfile.Release(pidPath); err != nil {
					logger.Errorf("Failed to release pidfile: %v", err)
				}
			}()

			// 2. Registry, store, and store sync
			registry := workingcopy.NewRegistry()
			st := store.New()
			syncSub := registry.OnDidChangeDirty().Listen(func(workingcopy.WorkingCopy) {
				keys := registry.DirtyResources()
				resources := make([]string, len(keys))
				for i, k := range keys {
					resources[i] = k.String()
				}
				st.SetDirty(resources)
			})
			defer syncSub.Dispose()

			// 3. Editor host, best effort
			host := newEditorHost(cfg, logger)
			defer host.Close()

			// 4. File watcher over the configured workspaces
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			var w *watcher.Watcher
			if len(cfg.Workspaces) > 0 {
				w, err = watcher.New(cfg.Workspaces, cfg.Daemon.DebounceMs)
				if err != nil {
					return fmt.Errorf("failed to start watcher: %w", err)
				}
				go w.Start(ctx)
			}

			// 5. Indicator wiring
			shutdown := event.New[struct{}]()
			opts := indicator.Options{
				Registry: registry,
				Policy:   configPolicy{cfg: cfg},
				Editor:   host,
				Badge:    store.NewBadge(st),
				Shutdown: shutdown,
			}
			if w != nil {
				opts.FileDirty = w.OnDidMarkDirty()
			}
			ind := indicator.New(opts)
			defer ind.Dispose()

			// 6. Server
			srv := server.New(logger, registry, st)
			srv.SetRunningConfig(&server.RunningConfig{
				AutoSaveMode:  string(cfg.AutoSave.EffectiveMode()),
				AutoSaveDelay: time.Duration(cfg.AutoSave.DelayMs) * time.Millisecond,
				Debounce:      time.Duration(cfg.Daemon.DebounceMs) * time.Millisecond,
				Workspaces:    cfg.Workspaces,
				StartedAt:     time.Now(),
			})

			// 7. Signals
			stop := make(chan os.Signal, 1)
			signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

			go func() {
				<-stop
				logger.Info("Received stop signal")
				shutdown.Fire(struct{}{})
				cancel()

				shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer shutdownCancel()

				if err := srv.Shutdown(shutdownCtx); err != nil {
					logger.Errorf("Server shutdown error: %v", err)
				}

				_ = pidfile.Release(pidPath)
				os.Exit(0)
			}()

			// 8. Serve (blocking)
			logger.WithField("pid", os.Getpid()).Info("Starting daemon")
			if err := srv.ListenAndServe(sockPath); err != nil {
				return fmt.Errorf("server error: %w", err)
			}
			return nil
		},
	}
}

func newDaemonStopCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "Stop the running daemon",
		RunE: func(cmd *cobra.Command, args []string) error {
			pidPath := paths.PidFilePath()

			running, pid, err := pidfile.IsRunning(pidPath)
			if err != nil {
				return fmt.Errorf("error checking status: %w", err)
			}

			if !running {
				fmt.Println("Daemon is not running")
				return nil
			}

			process, err := os.FindProcess(pid)
			if err != nil {
				return fmt.Errorf("failed to find process %d: %w", pid, err)
			}

			if err := process.Signal(syscall.SIGTERM); err != nil {
				return fmt.Errorf("failed to send stop signal: %w", err)
			}

			fmt.Printf("Sent SIGTERM to process %d\n", pid)
			return nil
		},
	}
}

func newDaemonStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check daemon status",
		RunE: func(cmd *cobra.Command, args []string) error {
			pidPath := paths.PidFilePath()
			running, pid, err := pidfile.IsRunning(pidPath)

			if err != nil {
				return fmt.Errorf("error: %w", err)
			}

			if running {
				fmt.Printf("Running (PID: %d)\nSocket: %s\n", pid, paths.SocketPath())
			} else {
				fmt.Println("Stopped")
				os.Exit(1) // Return non-zero for stopped state (useful for scripts)
			}
			return nil
		},
	}
}
