package cmd

import (
	"context"
	"fmt"

	"github.com/grovetools/draft/pkg/daemon"
	"github.com/spf13/cobra"
)

// NewReportCmd returns the report command, the entry point editor
// integrations use to tell the daemon about buffer state changes.
func NewReportCmd() *cobra.Command {
	var (
		dirty    bool
		clean    bool
		closed   bool
		autoSave bool
		name     string
	)

	cmd := &cobra.Command{
		Use:   "report <resource>",
		Short: "Report a working copy state change to the daemon",
		Long: `Reports that a file's in-editor working copy became dirty, clean, or was
closed. Editor plugins call this from buffer events (e.g. nvim's
TextChanged, BufWritePost, BufDelete autocommands).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if dirty && clean {
				return fmt.Errorf("--dirty and --clean are mutually exclusive")
			}
			if !dirty && !clean && !closed {
				return fmt.Errorf("one of --dirty, --clean, or --closed is required")
			}

			client := daemon.New()
			defer client.Close()

			if !client.IsRunning() {
				return fmt.Errorf("daemon is not running; start it with 'draft daemon start'")
			}

			return client.ReportCopy(context.Background(), daemon.CopyReport{
				Resource: args[0],
				Name:     name,
				Dirty:    dirty,
				AutoSave: autoSave,
				Closed:   closed,
			})
		},
	}

	cmd.Flags().BoolVar(&dirty, "dirty", false, "The working copy has unsaved changes")
	cmd.Flags().BoolVar(&clean, "clean", false, "The working copy was saved")
	cmd.Flags().BoolVar(&closed, "closed", false, "The working copy was closed")
	cmd.Flags().BoolVar(&autoSave, "auto-save", false, "The working copy participates in auto-save")
	cmd.Flags().StringVar(&name, "name", "", "Display name for the working copy")
	return cmd
}
