package cli

import (
	"fmt"
	"os"

	"github.com/grovetools/draft/errors"
)

// ErrorHandler provides user-friendly error messages
type ErrorHandler struct {
	Verbose bool
}

// NewErrorHandler creates a new error handler
func NewErrorHandler(verbose bool) *ErrorHandler {
	return &ErrorHandler{
		Verbose: verbose,
	}
}

// Handle provides user-friendly error messages based on error type
func (h *ErrorHandler) Handle(err error) error {
	switch errors.GetCode(err) {
	case errors.ErrCodeConfigNotFound:
		fmt.Fprintf(os.Stderr, "❌ Configuration not found. Create a draft.yml in your workspace root.\n")
		return err

	case errors.ErrCodeDaemonNotRunning:
		fmt.Fprintf(os.Stderr, "❌ The draft daemon is not running.\n")
		fmt.Fprintf(os.Stderr, "Start it with 'draft daemon start'.\n")
		return err

	case errors.ErrCodeDaemonRunning:
		if draftErr, ok := err.(*errors.DraftError); ok {
			fmt.Fprintf(os.Stderr, "❌ The draft daemon is already running (PID %v)\n", draftErr.Details["pid"])
			fmt.Fprintf(os.Stderr, "Stop it with 'draft daemon stop' first.\n")
		}
		return err

	case errors.ErrCodeEditorUnavailable:
		fmt.Fprintf(os.Stderr, "❌ Could not reach the editor.\n")
		fmt.Fprintf(os.Stderr, "Check that nvim is running and its socket path is set in draft.yml.\n")
		return err

	case errors.ErrCodeWatcherFailed:
		if draftErr, ok := err.(*errors.DraftError); ok {
			fmt.Fprintf(os.Stderr, "❌ Failed to watch '%v'\n", draftErr.Details["dir"])
			fmt.Fprintf(os.Stderr, "Check that the workspace directories in draft.yml exist.\n")
		}
		return err

	default:
		fmt.Fprintf(os.Stderr, "❌ Error: %v\n", err)

		if h.Verbose {
			if draftErr, ok := err.(*errors.DraftError); ok {
				fmt.Fprintf(os.Stderr, "\nError details:\n%s\n", draftErr.ToJSON())
			}
		}
		return err
	}
}
