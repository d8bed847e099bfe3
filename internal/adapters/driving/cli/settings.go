package cli

import (
	"bufio"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/hioder/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure where datasets are read from, how pages are laid
out, the web server address and where detail selections are stored.

Use subcommands to show the settings or run the interactive wizard.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsWizardCmd = &cobra.Command{
	Use:   "wizard",
	Short: "Interactive setup wizard",
	Long:  `Run an interactive wizard to configure all settings step by step.`,
	RunE:  runSettingsWizard,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsWizardCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Data]")
	cmd.Printf("  Base URL: %s\n", settings.Data.BaseURL)
	for _, ds := range settings.Datasets() {
		marker := ""
		if _, ok := settings.Data.URLs[ds.Name]; ok {
			marker = " (override)"
		}
		cmd.Printf("  %s: %s%s\n", ds.Name, ds.Source.URL, marker)
	}
	cmd.Println()

	cmd.Println("[UI]")
	cmd.Printf("  Page size: %d\n", settings.UI.PageSize)
	cmd.Printf("  Page buttons: %d\n", settings.UI.MaxPageButtons)
	cmd.Printf("  Carousel interval: %s\n", settings.UI.CarouselInterval)
	cmd.Println()

	cmd.Println("[Server]")
	cmd.Printf("  Address: %s\n", settings.Server.Addr)
	cmd.Println()

	cmd.Println("[Session]")
	cmd.Printf("  Store: %s\n", settings.Session.Backend.Description())
	cmd.Printf("  TTL: %s\n", settings.Session.TTL)
	cmd.Println()

	cmd.Println("[Loader]")
	cmd.Printf("  Rate limit: %g/s\n", settings.Loader.RateLimit)
	cmd.Printf("  Timeout: %s\n", settings.Loader.Timeout)

	return nil
}

func runSettingsWizard(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("hioder Settings Wizard")
	cmd.Println("======================")
	cmd.Println()

	reader := bufio.NewReader(cmd.InOrStdin())

	// Step 1: Data location
	cmd.Println("Step 1: Data Location")
	cmd.Println("---------------------")
	cmd.Printf("Base URL or directory [%s]: ", settings.Data.BaseURL)
	if v := readLine(reader); v != "" {
		settings.Data.BaseURL = v
	}
	cmd.Println()

	// Step 2: Layout
	cmd.Println("Step 2: Layout")
	cmd.Println("--------------")
	cmd.Printf("Records per page [%d]: ", settings.UI.PageSize)
	settings.UI.PageSize = parsePositive(readLine(reader), settings.UI.PageSize)
	cmd.Printf("Issue carousel interval in seconds [%d]: ", int(settings.UI.CarouselInterval/time.Second))
	secs := parsePositive(readLine(reader), int(settings.UI.CarouselInterval/time.Second))
	settings.UI.CarouselInterval = time.Duration(secs) * time.Second
	cmd.Println()

	// Step 3: Web server
	cmd.Println("Step 3: Web Server")
	cmd.Println("------------------")
	cmd.Printf("Listen address [%s]: ", settings.Server.Addr)
	if v := readLine(reader); v != "" {
		settings.Server.Addr = v
	}
	cmd.Println()

	// Step 4: Session store
	cmd.Println("Step 4: Detail Selections")
	cmd.Println("-------------------------")
	backends := []domain.SessionBackend{domain.SessionBackendSQLite, domain.SessionBackendMemory}
	current := 1
	for i, b := range backends {
		if b == settings.Session.Backend {
			current = i + 1
		}
		cmd.Printf("  %d. %s\n", i+1, b.Description())
	}
	cmd.Printf("\nEnter choice [%d]: ", current)
	settings.Session.Backend = backends[parseChoice(readLine(reader), len(backends), current)-1]
	cmd.Printf("Keep selections for minutes [%d]: ", int(settings.Session.TTL/time.Minute))
	mins := parsePositive(readLine(reader), int(settings.Session.TTL/time.Minute))
	settings.Session.TTL = time.Duration(mins) * time.Minute
	cmd.Println()

	if err := settingsService.Save(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	cmd.Println("Configuration Complete!")
	cmd.Println("=======================")
	cmd.Println("Settings saved.")
	if len(settings.Data.URLs) > 0 {
		names := make([]string, 0, len(settings.Data.URLs))
		for name := range settings.Data.URLs {
			names = append(names, name)
		}
		sort.Strings(names)
		cmd.Printf("Dataset overrides still apply: %s\n", strings.Join(names, ", "))
	}

	return nil
}

// Helper functions.

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func parseChoice(input string, maxVal, defaultVal int) int {
	if input == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(input)
	if err != nil || val < 1 || val > maxVal {
		return defaultVal
	}
	return val
}

func parsePositive(input string, defaultVal int) int {
	val, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil || val < 1 {
		return defaultVal
	}
	return val
}
