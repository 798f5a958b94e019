// Package crawler feeds the search index from the rendered site: it fetches
// the home page plus a bounded set of same-origin pages discovered there, and
// extracts one record per marked section or text-bearing element.
package crawler

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/ashutoshsundresh/folio/pkg/log"
	"github.com/ashutoshsundresh/folio/pkg/search"
)

// DefaultMaxPages bounds how many linked pages are fetched beyond the home
// page.
const DefaultMaxPages = 6

// alwaysExcluded paths are never crawled: the desktop interface is indexed
// from the content document, and API routes carry no page content.
var alwaysExcluded = []string{"/experience", "/api"}

type Crawler struct {
	base     *url.URL
	client   *http.Client
	maxPages int
	exclude  []string
	logger   *log.Logger
}

func New(siteURL string, maxPages int, exclude []string) (*Crawler, error) {
	base, err := url.Parse(siteURL)
	if err != nil {
		return nil, fmt.Errorf("parsing site URL: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("site URL %q must be absolute", siteURL)
	}
	if maxPages <= 0 {
		maxPages = DefaultMaxPages
	}
	return &Crawler{
		base:     base,
		client:   &http.Client{Timeout: 15 * time.Second},
		maxPages: maxPages,
		exclude:  append(append([]string{}, alwaysExcluded...), exclude...),
		logger:   log.ForService("crawler"),
	}, nil
}

func (c *Crawler) Name() string {
	return "crawler"
}

// Records fetches the home page and the pages linked from it, extracting
// records from each. A page that cannot be fetched or parsed contributes
// zero records and is never retried; only a failing home page aborts the
// whole source, which the index in turn treats as zero records.
func (c *Crawler) Records(ctx context.Context) ([]search.Record, error) {
	home, err := c.fetch(ctx, "/")
	if err != nil {
		return nil, fmt.Errorf("fetching home page: %w", err)
	}

	records := Extract(home, "/")

	for _, path := range c.discoverLinks(home) {
		doc, err := c.fetch(ctx, path)
		if err != nil {
			c.logger.Debugf("skipping %s: %v", path, err)
			continue
		}
		records = append(records, Extract(doc, path)...)
	}

	c.logger.Infof("crawled site: %d records", len(records))
	return records, nil
}

func (c *Crawler) fetch(ctx context.Context, path string) (*goquery.Document, error) {
	target := c.base.ResolveReference(&url.URL{Path: path})
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("building request for %s: %w", path, err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", path, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching %s: status %d", path, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return doc, nil
}

// discoverLinks collects same-origin page paths from anchor hrefs on the home
// page, in document order, deduplicated and capped at maxPages.
func (c *Crawler) discoverLinks(home *goquery.Document) []string {
	seen := map[string]bool{"/": true}
	var paths []string

	home.Find("a[href]").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		href, _ := sel.Attr("href")
		ref, err := url.Parse(href)
		if err != nil {
			return true
		}
		resolved := c.base.ResolveReference(ref)
		if resolved.Host != c.base.Host {
			return true
		}
		path := resolved.Path
		if path == "" {
			path = "/"
		}
		if seen[path] || c.excluded(path) {
			return true
		}
		seen[path] = true
		paths = append(paths, path)
		return len(paths) < c.maxPages
	})

	return paths
}

func (c *Crawler) excluded(path string) bool {
	for _, prefix := range c.exclude {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}
