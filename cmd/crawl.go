package cmd

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/ashutoshsundresh/folio/pkg/crawler"
)

// CrawlCommand creates the crawl command
func CrawlCommand() *cli.Command {
	return &cli.Command{
		Name:  "crawl",
		Usage: "Crawl the site and print the records that would be indexed",
		Action: func(ctx context.Context, c *cli.Command) error {
			cfg, err := loadConfigAndDebug(c)
			if err != nil {
				return err
			}
			if cfg.SiteURL == "" {
				return fmt.Errorf("site_url must be configured")
			}

			cr, err := crawler.New(cfg.SiteURL, cfg.Crawl.MaxPages, cfg.Crawl.ExcludePaths)
			if err != nil {
				return fmt.Errorf("configuring crawler: %w", err)
			}

			records, err := cr.Records(ctx)
			if err != nil {
				return fmt.Errorf("crawling %s: %w", cfg.SiteURL, err)
			}

			fmt.Printf("Extracted %d records from %s:\n\n", len(records), cfg.SiteURL)
			for i, r := range records {
				fmt.Printf("%d. %s\n", i+1, r.Title)
				if r.Text != "" {
					fmt.Printf("   %s\n", r.Text)
				}
				fmt.Printf("   %s\n", r.Path)
				if i < len(records)-1 {
					fmt.Println()
				}
			}
			return nil
		},
	}
}
