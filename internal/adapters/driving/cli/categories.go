package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/hioder/internal/core/domain"
)

var (
	categoriesDataset string
	categoriesJSON    bool
)

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List the category tabs of a dataset",
	Long: `Lists the categories of a dataset in first-seen order, starting with
the all-label. The colour assigned to each category is shown when the
dataset colours its category field.`,
	Args: cobra.NoArgs,
	RunE: runCategories,
}

func init() {
	categoriesCmd.Flags().StringVarP(&categoriesDataset, "dataset", "d", domain.DatasetGuide, "dataset to inspect")
	categoriesCmd.Flags().BoolVar(&categoriesJSON, "json", false, "output categories as JSON")
	rootCmd.AddCommand(categoriesCmd)
}

type categoryOutput struct {
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

func runCategories(cmd *cobra.Command, _ []string) error {
	if err := requireBrowse(); err != nil {
		return err
	}

	ds, err := browseService.Dataset(categoriesDataset)
	if err != nil {
		return err
	}

	cats, err := browseService.Categories(cmd.Context(), ds.Name)
	if err != nil {
		return userError(err, ds)
	}
	maps, err := browseService.ColorMaps(cmd.Context(), ds.Name)
	if err != nil {
		return userError(err, ds)
	}

	out := make([]categoryOutput, 0, len(cats))
	for i, name := range cats {
		c := categoryOutput{Name: name}
		if m, ok := maps[ds.Schema.CategoryField]; ok && i > 0 {
			c.Color = m.Color(name)
		}
		out = append(out, c)
	}

	if categoriesJSON {
		return printJSON(cmd, out)
	}

	for _, c := range out {
		if c.Color != "" {
			cmd.Printf("  %-24s %s\n", c.Name, c.Color)
			continue
		}
		cmd.Printf("  %s\n", c.Name)
	}
	return nil
}
