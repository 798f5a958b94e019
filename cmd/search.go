package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/urfave/cli/v3"

	"github.com/ashutoshsundresh/folio/pkg/content"
	"github.com/ashutoshsundresh/folio/pkg/crawler"
	"github.com/ashutoshsundresh/folio/pkg/search"
)

var (
	resultTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("86"))

	resultPathStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("33"))

	resultScoreStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("240")).
				Italic(true)

	noResultsStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true).
			Margin(1, 0)
)

// SearchCommand creates the search command
func SearchCommand() *cli.Command {
	return &cli.Command{
		Name:      "search",
		Usage:     "Search the content index from the terminal",
		ArgsUsage: "<query>",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "crawl",
				Usage: "Also index crawled site pages",
				Value: false,
			},
			&cli.IntFlag{
				Name:  "limit",
				Usage: "Maximum number of results",
				Value: 10,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			query := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
			if query == "" {
				return fmt.Errorf("a search query is required")
			}
			cfg, err := loadConfigAndDebug(c)
			if err != nil {
				return err
			}

			doc, err := content.Load(cfg.ContentFile)
			if err != nil {
				return fmt.Errorf("loading content document: %w", err)
			}
			store := content.NewStore(doc)

			sources := []search.Source{content.NewSource(store)}
			if c.Bool("crawl") {
				if cfg.SiteURL == "" {
					return fmt.Errorf("site_url must be configured for --crawl")
				}
				cr, err := crawler.New(cfg.SiteURL, cfg.Crawl.MaxPages, cfg.Crawl.ExcludePaths)
				if err != nil {
					return fmt.Errorf("configuring crawler: %w", err)
				}
				sources = append(sources, cr)
			}

			index := search.NewIndex(sources...)
			matches := search.Rank(index.Get(ctx), query)
			if limit := c.Int("limit"); limit > 0 && len(matches) > limit {
				matches = matches[:limit]
			}

			printMatches(query, matches)
			return nil
		},
	}
}

func printMatches(query string, matches []search.Match) {
	if len(matches) == 0 {
		fmt.Println(noResultsStyle.Render(fmt.Sprintf("No results for %q", query)))
		return
	}

	fmt.Printf("Found %d results for %q:\n\n", len(matches), query)
	for i, m := range matches {
		fmt.Printf("%d. %s %s\n", i+1,
			resultTitleStyle.Render(m.Record.Title),
			resultScoreStyle.Render(fmt.Sprintf("(score %d)", m.Score)))
		if m.Record.Text != "" {
			fmt.Printf("   %s\n", m.Record.Text)
		}
		fmt.Printf("   %s\n", resultPathStyle.Render(m.Record.Path))
		if i < len(matches)-1 {
			fmt.Println()
		}
	}
}
