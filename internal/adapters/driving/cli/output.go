package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/hioder/internal/core/domain"
)

const defaultWidth = 80

// outputWidth returns the terminal width when stdout is a terminal.
func outputWidth(cmd *cobra.Command) int {
	f, ok := cmd.OutOrStdout().(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return defaultWidth
	}
	w, _, err := term.GetSize(int(f.Fd()))
	if err != nil || w <= 0 {
		return defaultWidth
	}
	return w
}

// fit truncates s to width display cells.
func fit(s string, width int) string {
	if width <= 0 {
		return s
	}
	return runewidth.Truncate(s, width, "…")
}

// userError turns a service error into the message shown on the command line.
// Errors with a fixed display message keep the cause for errors.Is.
func userError(err error, ds domain.Dataset) error {
	if msg := domain.UserMessage(err, ds); msg != "" {
		return fmt.Errorf("%s: %w", msg, err)
	}
	return err
}

func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func requireBrowse() error {
	if browseService == nil {
		return errors.New("browse service not configured")
	}
	return nil
}
