package main

import (
	"fmt"
	"os"
	"time"

	"github.com/custodia-labs/hioder/internal/adapters/driven/config/file"
	"github.com/custodia-labs/hioder/internal/adapters/driven/expr"
	"github.com/custodia-labs/hioder/internal/adapters/driven/loader"
	"github.com/custodia-labs/hioder/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/hioder/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/hioder/internal/adapters/driving/cli"
	"github.com/custodia-labs/hioder/internal/core/domain"
	"github.com/custodia-labs/hioder/internal/core/ports/driven"
	"github.com/custodia-labs/hioder/internal/core/services"
	"github.com/custodia-labs/hioder/internal/logger"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Initialize config store
	configStore, err := file.NewConfigStore("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open config: %v\n", err)
		return 1
	}

	settingsService := services.NewSettingsService(configStore)
	settings, err := settingsService.Get()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to read settings: %v\n", err)
		return 1
	}

	// Initialize session store
	var sessions driven.SessionStore
	switch settings.Session.Backend {
	case domain.SessionBackendSQLite:
		store, err := sqlite.NewStore("")
		if err != nil {
			// Detail selections still work for the life of the process.
			logger.Warn("SQLite session store unavailable, using memory: %v", err)
			sessions = newMemorySessions(settings.Session.TTL)
			break
		}
		defer store.Close()
		store.SetSessionTTL(settings.Session.TTL)
		sessions = store.SessionStore()
	default:
		sessions = newMemorySessions(settings.Session.TTL)
	}

	// Initialize services
	browseService := services.NewBrowseService(
		loader.NewLoader(settings.Loader),
		settings.Datasets(),
		settings.UI.MaxPageButtons,
	)
	compiler, err := expr.NewCompiler()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create expression compiler: %v\n", err)
		return 1
	}
	browseService.SetPredicateCompiler(compiler)

	cli.SetServices(&cli.Services{
		Settings: settingsService,
		Browse:   browseService,
		Detail:   services.NewDetailService(browseService, sessions),
		VOC:      services.NewVOCService(browseService),
		Issues:   services.NewIssueService(browseService),
		Config:   configStore,
		Sessions: sessions,
	})

	if err := cli.Execute(); err != nil {
		return 1
	}
	return 0
}

func newMemorySessions(ttl time.Duration) *memory.SessionStore {
	store := memory.NewSessionStore()
	store.SetTTL(ttl)
	return store
}
