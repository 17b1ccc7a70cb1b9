package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/grovetools/draft/pkg/daemon"
	"github.com/grovetools/draft/tui/badge"
	"github.com/grovetools/draft/tui/theme"
	"github.com/spf13/cobra"
)

// NewStatusCmd returns the status command, which reports unsaved changes.
func NewStatusCmd() *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show unsaved working copies",
		Long:  "Shows the current dirty count and resources, from the daemon when it is running.",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := daemon.New()
			defer client.Close()

			if watch {
				return runWatch(cmd.Context(), client)
			}

			count, keys, err := client.GetDirty(context.Background())
			if err != nil {
				return fmt.Errorf("failed to get dirty state: %w", err)
			}

			jsonOutput, _ := cmd.Flags().GetBool("json")
			if jsonOutput {
				resources := make([]string, len(keys))
				for i, k := range keys {
					resources[i] = k.String()
				}
				return json.NewEncoder(os.Stdout).Encode(map[string]interface{}{
					"dirty_count": count,
					"resources":   resources,
				})
			}

			th := theme.DefaultTheme
			if count == 0 {
				fmt.Println(th.Success.Render("✓ all saved"))
				return nil
			}

			label := "unsaved files"
			if count == 1 {
				label = "unsaved file"
			}
			fmt.Println(badge.NewRenderer().Render(count, fmt.Sprintf("%d %s", count, label)))
			for _, k := range keys {
				fmt.Printf("  %s\n", k.String())
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Follow dirty-state changes live")
	return cmd
}

func runWatch(ctx context.Context, client daemon.Client) error {
	if !client.IsRunning() {
		return fmt.Errorf("watch requires the daemon; start it with 'draft daemon start'")
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	updates, err := client.StreamState(ctx)
	if err != nil {
		return fmt.Errorf("failed to subscribe to daemon: %w", err)
	}

	p := tea.NewProgram(badge.NewModel(updates), tea.WithAltScreen())
	_, err = p.Run()
	return err
}
