// Package cli implements the hioder command line.
//
// Commands read their services from package-level variables that the
// entry point installs with SetServices before Execute runs.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/hioder/internal/core/ports/driven"
	"github.com/custodia-labs/hioder/internal/core/ports/driving"
	"github.com/custodia-labs/hioder/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

var verbose bool

var (
	settingsService driving.SettingsService
	browseService   driving.BrowseService
	detailService   driving.DetailService
	vocService      driving.VOCService
	issueService    driving.IssueService
	configStore     driven.ConfigStore
	sessionStore    driven.SessionStore

	// invalidator drops cached datasets by location for serve --watch.
	invalidator URLInvalidator
)

// URLInvalidator drops the cached copy of every dataset loaded from a location.
type URLInvalidator interface {
	InvalidateURL(url string)
}

// Services are the dependencies the commands run against.
type Services struct {
	Settings driving.SettingsService
	Browse   driving.BrowseService
	Detail   driving.DetailService
	VOC      driving.VOCService
	Issues   driving.IssueService
	Config   driven.ConfigStore
	Sessions driven.SessionStore
}

// SetServices installs the services used by every command.
func SetServices(s *Services) {
	settingsService = s.Settings
	browseService = s.Browse
	detailService = s.Detail
	vocService = s.VOC
	issueService = s.Issues
	configStore = s.Config
	sessionStore = s.Sessions
	invalidator, _ = s.Browse.(URLInvalidator)
}

var rootCmd = &cobra.Command{
	Use:   "hioder",
	Short: "Browse the guide, manual, VOC and issue datasets",
	Long: `hioder browses a small set of static JSON datasets: the user guide,
the manual, monthly VOC summaries and the business issue feed.

Search from the command line, open the interactive terminal UI, serve the
pages over HTTP, or expose the datasets to AI assistants over MCP.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

// Execute runs the root command.
func Execute() error {
	// cmd.Print* writes to stderr unless an output writer is set.
	rootCmd.SetOut(os.Stdout)
	return rootCmd.Execute()
}
