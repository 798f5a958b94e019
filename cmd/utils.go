package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/urfave/cli/v3"

	"github.com/ashutoshsundresh/folio/pkg/config"
	"github.com/ashutoshsundresh/folio/pkg/log"
	"github.com/ashutoshsundresh/folio/pkg/storage"
)

// loadConfigAndDebug loads the configuration and applies the global debug
// flag before any command runs its action.
func loadConfigAndDebug(c *cli.Command) (*config.Config, error) {
	if c.Bool("debug") {
		log.SetGlobalDebug(true)
	}

	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// openCatalog opens the course catalog database under the data directory.
func openCatalog(cfg *config.Config) (*storage.Catalog, error) {
	dbPath := filepath.Join(cfg.DataDir, "catalog.db")
	catalog, err := storage.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening catalog %s: %w", dbPath, err)
	}
	return catalog, nil
}
