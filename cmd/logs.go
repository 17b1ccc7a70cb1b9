package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/grovetools/draft/tui/logviewer"
	"github.com/spf13/cobra"
)

// NewLogsCmd returns the logs command, which tails draft's log files.
func NewLogsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logs [component...]",
		Short: "Follow draft log files",
		Long: `Tails the log files under .draft/logs for the given components
(draftd, registry, watcher, ...). With no arguments, all components are
followed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cwd, err := os.Getwd()
			if err != nil {
				return err
			}

			logDir := filepath.Join(cwd, ".draft", "logs")
			entries, err := os.ReadDir(logDir)
			if err != nil {
				return fmt.Errorf("no logs found under %s: %w", logDir, err)
			}

			wanted := make(map[string]bool, len(args))
			for _, a := range args {
				wanted[a] = true
			}

			files := make(map[string]string)
			for _, entry := range entries {
				if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".log") {
					continue
				}
				// Component is everything before the trailing -YYYY-MM-DD.
				base := strings.TrimSuffix(entry.Name(), ".log")
				component := base
				if idx := strings.LastIndex(base, "-"); idx > 10 {
					component = base[:len(base)-11]
				}
				if len(wanted) > 0 && !wanted[component] {
					continue
				}
				files[component] = filepath.Join(logDir, entry.Name())
			}
			if len(files) == 0 {
				return fmt.Errorf("no matching log files in %s", logDir)
			}

			model := logviewer.New(80, 24)
			_ = model.Start(files)
			defer model.Stop()

			p := tea.NewProgram(model, tea.WithAltScreen())
			_, err = p.Run()
			return err
		},
	}
}
