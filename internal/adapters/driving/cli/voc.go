package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/hioder/internal/core/domain"
)

var (
	vocMonth string
	vocJSON  bool
)

var vocCmd = &cobra.Command{
	Use:   "voc",
	Short: "Show monthly VOC summaries",
	Long: `Shows the VOC entries of one month. Months are listed newest first and
the newest month is shown unless --month selects another, either by key
("2025-07") or by name ("07월").`,
	Args: cobra.NoArgs,
	RunE: runVOC,
}

func init() {
	vocCmd.Flags().StringVarP(&vocMonth, "month", "m", "", "month key or name (default: newest)")
	vocCmd.Flags().BoolVar(&vocJSON, "json", false, "output months as JSON")
	rootCmd.AddCommand(vocCmd)
}

func runVOC(cmd *cobra.Command, _ []string) error {
	if vocService == nil {
		return errors.New("voc service not configured")
	}

	months, err := vocService.Months(cmd.Context())
	if err != nil {
		return userError(err, domain.Dataset{})
	}
	if len(months) == 0 {
		cmd.Println(domain.MsgNoResults)
		return nil
	}

	month, err := pickMonth(months, vocMonth)
	if err != nil {
		return err
	}

	if vocJSON {
		return printJSON(cmd, month)
	}

	cmd.Print("Months:")
	for _, m := range months {
		if m.Key == month.Key {
			cmd.Printf(" [%s]", m.Name)
			continue
		}
		cmd.Printf(" %s", m.Name)
	}
	cmd.Println()
	cmd.Println()

	cmd.Println(month.VOCTitle)
	if month.PodcastSrc != "" {
		cmd.Printf("%s  %s\n", month.PodcastTitle, month.PodcastSrc)
	}
	cmd.Println()

	width := outputWidth(cmd) - 6
	for i, item := range month.Items {
		title := item.Text("title")
		if cat := item.Text("category"); cat != "" {
			title = "[" + cat + "] " + title
		}
		cmd.Printf("%d. %s\n", i+1, fit(title, width))
		if content := item.Text("content"); content != "" {
			cmd.Printf("   %s\n", content)
		}
		if solution := item.Text("solution"); solution != "" {
			cmd.Printf("   → %s\n", solution)
		}
	}
	return nil
}

func pickMonth(months []domain.VOCMonth, want string) (domain.VOCMonth, error) {
	if want == "" {
		return months[0], nil
	}
	for _, m := range months {
		if m.Key == want || m.Name == want || m.Label == want {
			return m, nil
		}
	}
	return domain.VOCMonth{}, fmt.Errorf("month %q: %w", want, domain.ErrNotFound)
}
