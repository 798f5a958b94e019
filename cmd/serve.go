package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/urfave/cli/v3"

	"github.com/ashutoshsundresh/folio/pkg/api"
	"github.com/ashutoshsundresh/folio/pkg/config"
	"github.com/ashutoshsundresh/folio/pkg/content"
	"github.com/ashutoshsundresh/folio/pkg/contrib"
	"github.com/ashutoshsundresh/folio/pkg/crawler"
	"github.com/ashutoshsundresh/folio/pkg/log"
	"github.com/ashutoshsundresh/folio/pkg/nowplaying"
	"github.com/ashutoshsundresh/folio/pkg/search"
)

// ServeCommand creates the serve command
func ServeCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Start the API server",
		Action: func(ctx context.Context, c *cli.Command) error {
			cfg, err := loadConfigAndDebug(c)
			if err != nil {
				return err
			}
			return serve(ctx, cfg)
		},
	}
}

func serve(ctx context.Context, cfg *config.Config) error {
	logger := log.ForService("serve")

	doc, err := content.Load(cfg.ContentFile)
	if err != nil {
		logger.Warnf("content document unavailable, serving empty sections: %v", err)
		doc = &content.Document{}
	}
	store := content.NewStore(doc)

	catalog, err := openCatalog(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := catalog.Close(); err != nil {
			logger.Warnf("failed to close catalog: %v", err)
		}
	}()

	if err := catalog.ImportFile(cfg.CoursesFile); err != nil {
		logger.Warnf("courses document unavailable, keeping previous catalog: %v", err)
	}

	sources := []search.Source{content.NewSource(store)}
	if cfg.Crawl.Enabled && cfg.SiteURL != "" {
		cr, err := crawler.New(cfg.SiteURL, cfg.Crawl.MaxPages, cfg.Crawl.ExcludePaths)
		if err != nil {
			return fmt.Errorf("configuring crawler: %w", err)
		}
		sources = append(sources, cr)
	}
	index := search.NewIndex(sources...)

	server := api.NewServer(index, catalog, store)

	if cfg.GitHub != nil && cfg.GitHub.User != "" {
		server.EnableGitHub(contrib.NewClient(cfg.GitHub.User, cfg.GitHub.Token))
		logger.Infof("GitHub routes enabled for %s", cfg.GitHub.User)
	}

	serveCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	if cfg.NowPlaying != nil && cfg.NowPlaying.URL != "" {
		svc := nowplaying.NewService(cfg.NowPlaying.URL, cfg.NowPlayingInterval(), nowplaying.NewHub(8))
		go svc.Run(serveCtx)
		server.EnableNowPlaying(svc)
		logger.Infof("now-playing feed enabled, polling every %v", cfg.NowPlayingInterval())
	}

	httpServer := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: server.Handler(),
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Infof("listening on %s", cfg.ListenAddr)
		errCh <- httpServer.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)

	reloadContent := func() {
		newDoc, err := content.Load(cfg.ContentFile)
		if err != nil {
			logger.Errorf("failed to reload content document: %v", err)
			return
		}
		store.Replace(newDoc)
		index.Invalidate()
		logger.Infof("content document reloaded, search index invalidated")
	}
	reloadCourses := func() {
		if err := catalog.ImportFile(cfg.CoursesFile); err != nil {
			logger.Errorf("failed to reload courses document: %v", err)
			return
		}
		logger.Infof("course catalog reloaded")
	}

	// Watch the data documents so edits go live without a restart. A nil
	// channel never fires in the select below, so a failed watcher just
	// disables live reload.
	var watchEvents chan fsnotify.Event
	var watchErrors chan error
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		logger.Warnf("failed to create file watcher: %v", err)
	} else {
		watchEvents = watcher.Events
		watchErrors = watcher.Errors
		defer func() {
			if err := watcher.Close(); err != nil {
				logger.Warnf("failed to close file watcher: %v", err)
			}
		}()
		for _, path := range []string{cfg.ContentFile, cfg.CoursesFile} {
			if err := watcher.Add(path); err != nil {
				logger.Warnf("failed to watch %s: %v", path, err)
			} else {
				logger.Infof("watching %s for changes", path)
			}
		}
	}

	shutdown := func() error {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutting down server: %w", err)
		}
		return nil
	}

	for {
		select {
		case <-ctx.Done():
			return shutdown()
		case err := <-errCh:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return fmt.Errorf("server error: %w", err)
		case sig := <-sigCh:
			switch sig {
			case syscall.SIGHUP:
				logger.Infof("received SIGHUP, reloading data documents")
				reloadContent()
				reloadCourses()
			case syscall.SIGINT, syscall.SIGTERM:
				logger.Infof("shutting down")
				return shutdown()
			}
		case event, ok := <-watchEvents:
			if !ok {
				continue
			}
			// Editors often replace files atomically, so react to
			// rename/remove as well and re-add the watch.
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) || event.Has(fsnotify.Remove) {
				time.Sleep(200 * time.Millisecond)
				if event.Has(fsnotify.Rename) || event.Has(fsnotify.Remove) {
					if _, err := os.Stat(event.Name); err == nil {
						if err := watcher.Add(event.Name); err != nil {
							logger.Warnf("failed to re-watch %s: %v", event.Name, err)
						}
					}
				}
				switch event.Name {
				case cfg.ContentFile:
					reloadContent()
				case cfg.CoursesFile:
					reloadCourses()
				}
			}
		case err, ok := <-watchErrors:
			if !ok {
				continue
			}
			logger.Warnf("file watcher error: %v", err)
		}
	}
}
