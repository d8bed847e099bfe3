package cli

import (
	"errors"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/hioder/internal/core/domain"
)

var issuesJSON bool

// now is replaced in tests to pin the current month.
var now = time.Now

var issuesCmd = &cobra.Command{
	Use:   "issues",
	Short: "Show the business issue feed",
	Long: `Shows every issue newest first. Issues dated in the current month are
listed first as featured issues.`,
	Args: cobra.NoArgs,
	RunE: runIssues,
}

func init() {
	issuesCmd.Flags().BoolVar(&issuesJSON, "json", false, "output the feed as JSON")
	rootCmd.AddCommand(issuesCmd)
}

func runIssues(cmd *cobra.Command, _ []string) error {
	if issueService == nil {
		return errors.New("issue service not configured")
	}

	feed, err := issueService.Feed(cmd.Context(), now())
	if err != nil {
		return userError(err, domain.Dataset{})
	}

	if issuesJSON {
		return printJSON(cmd, feed)
	}

	if feed.Empty() {
		cmd.Println(domain.MsgNoIssues)
		return nil
	}

	width := outputWidth(cmd) - 4
	if len(feed.Featured) > 0 {
		cmd.Println("This month:")
		for _, issue := range feed.Featured {
			cmd.Printf("  * %s\n", fit(issue.Title, width))
		}
		cmd.Println()
	}

	for _, issue := range feed.All {
		cmd.Printf("%s  %s\n", issue.Date, fit(issue.Title, width-len(issue.Date)-2))
		if issue.Content != "" {
			cmd.Printf("  %s\n", issue.Content)
		}
	}
	return nil
}
