package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/hioder/internal/adapters/driven/watch"
	"github.com/custodia-labs/hioder/internal/adapters/driving/web"
	"github.com/custodia-labs/hioder/internal/core/domain"
	"github.com/custodia-labs/hioder/internal/core/ports/driven"
	"github.com/custodia-labs/hioder/internal/logger"
)

var (
	serveAddr  string
	serveWatch bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the dataset pages over HTTP",
	Long: `Starts the web server: the guide, manual, VOC and issue pages plus a
JSON API under /api.

With --watch, datasets read from local files are reloaded when the files
change. Expired detail selections are pruned in the background.

Examples:
  hioder serve
  hioder serve --addr :9000 --watch`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVarP(&serveAddr, "addr", "a", "", "listen address (default: server.addr setting)")
	serveCmd.Flags().BoolVar(&serveWatch, "watch", false, "reload local dataset files when they change")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	if err := requireBrowse(); err != nil {
		return err
	}
	if detailService == nil {
		return errors.New("detail service not configured")
	}

	settings := domain.DefaultAppSettings()
	if settingsService != nil {
		s, err := settingsService.Get()
		if err != nil {
			return fmt.Errorf("failed to get settings: %w", err)
		}
		settings = *s
	}
	addr := settings.Server.Addr
	if serveAddr != "" {
		addr = serveAddr
	}

	server, err := web.NewServer(&web.Ports{
		Browse: browseService,
		Detail: detailService,
		VOC:    vocService,
		Issues: issueService,
	}, web.Config{Addr: addr, CarouselInterval: settings.UI.CarouselInterval})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return server.Run(ctx)
	})
	if sessionStore != nil && settings.Session.TTL > 0 {
		g.Go(func() error {
			pruneSessions(ctx, sessionStore, settings.Session.TTL)
			return nil
		})
	}
	if serveWatch {
		g.Go(func() error {
			return watchDatasets(ctx, watch.NewWatcher(0))
		})
	}

	cmd.Printf("Serving on http://localhost%s\n", addr)
	return g.Wait()
}

// watchDatasets invalidates the cached copy of every dataset whose file changes.
func watchDatasets(ctx context.Context, w driven.DatasetWatcher) error {
	datasets := browseService.Datasets()
	paths := make([]string, 0, len(datasets))
	for _, ds := range datasets {
		paths = append(paths, ds.Source.URL)
	}

	return w.Watch(ctx, paths, func(path string) {
		logger.Info("Dataset file changed: %s", path)
		if invalidator != nil {
			invalidator.InvalidateURL(path)
			return
		}
		for _, ds := range datasets {
			if ds.Source.URL == path {
				browseService.Invalidate(ds.Name)
			}
		}
	})
}

// pruneSessions drops selections idle for longer than ttl until ctx is done.
func pruneSessions(ctx context.Context, store driven.SessionStore, ttl time.Duration) {
	interval := ttl / 4
	if interval < time.Minute {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case t := <-ticker.C:
			n, err := store.Prune(ctx, t.Add(-ttl))
			if err != nil {
				logger.Warn("Pruning sessions: %v", err)
				continue
			}
			if n > 0 {
				logger.Debug("Pruned %d expired sessions", n)
			}
		}
	}
}
