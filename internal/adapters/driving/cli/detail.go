package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/hioder/internal/core/domain"
	"github.com/custodia-labs/hioder/internal/logger"
)

// keyCLISession holds the detail session shared by successive CLI runs.
const keyCLISession = "session.cli_id"

var detailJSON bool

var selectCmd = &cobra.Command{
	Use:   "select [index]",
	Short: "Select a record for the detail view",
	Long: `Stores the record at the given dataset index as the current detail.
Indexes are the bracketed numbers printed by search.

The selection persists between runs when the sqlite session store is
configured; run 'hioder detail' to show it again.`,
	Args: cobra.ExactArgs(1),
	RunE: runSelect,
}

var detailCmd = &cobra.Command{
	Use:   "detail",
	Short: "Show the selected record",
	Args:  cobra.NoArgs,
	RunE:  runDetail,
}

var selectDataset string

func init() {
	selectCmd.Flags().StringVarP(&selectDataset, "dataset", "d", domain.DatasetGuide, "dataset the index refers to")
	selectCmd.Flags().BoolVar(&detailJSON, "json", false, "output the detail as JSON")
	detailCmd.Flags().BoolVar(&detailJSON, "json", false, "output the detail as JSON")
	rootCmd.AddCommand(selectCmd)
	rootCmd.AddCommand(detailCmd)
}

// cliSessionID returns the detail session of the command line, creating
// and persisting one on first use.
func cliSessionID() string {
	if configStore == nil {
		return "cli"
	}
	if id := configStore.GetString(keyCLISession); id != "" {
		return id
	}
	id := uuid.NewString()
	if err := configStore.Set(keyCLISession, id); err != nil {
		logger.Warn("Could not save CLI session: %v", err)
	}
	return id
}

func runSelect(cmd *cobra.Command, args []string) error {
	if detailService == nil {
		return errors.New("detail service not configured")
	}

	index, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid index %q: %w", args[0], domain.ErrInvalidInput)
	}

	d, err := detailService.Select(cmd.Context(), cliSessionID(), selectDataset, index)
	if err != nil {
		return userError(err, domain.Dataset{})
	}
	return outputDetail(cmd, d)
}

func runDetail(cmd *cobra.Command, _ []string) error {
	if detailService == nil {
		return errors.New("detail service not configured")
	}

	d, err := detailService.Detail(cmd.Context(), cliSessionID())
	if err != nil {
		return userError(err, domain.Dataset{})
	}
	return outputDetail(cmd, d)
}

// detailFields are the labelled fields of a guide record, in display order.
var detailFields = []struct {
	Field string
	Label string
}{
	{"Sub Category", "Sub Category"},
	{"Item", "Item"},
	{"Sub item", "Sub item"},
	{"Field", "세부 내용"},
	{"Purpose", "사용 목적"},
}

func outputDetail(cmd *cobra.Command, d *domain.Detail) error {
	if detailJSON {
		return printJSON(cmd, d)
	}

	shown := make(map[string]bool, len(detailFields)+1)
	for _, f := range detailFields {
		shown[f.Field] = true
		v := d.Record.Text(f.Field)
		if v == "" {
			continue
		}
		cmd.Printf("%s: %s\n", f.Label, v)
	}
	shown["Path"] = true
	if d.Record.Has("Path") {
		cmd.Printf("Path: %s\n", d.Path())
	}

	for _, name := range d.Record.Fields() {
		if shown[name] || !d.Record.Has(name) {
			continue
		}
		cmd.Printf("%s: %s\n", name, d.Record.Text(name))
	}
	return nil
}
