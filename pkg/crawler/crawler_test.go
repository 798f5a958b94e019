package crawler

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func testSite(t *testing.T, pages map[string]string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		page, ok := pages[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, page)
	}))
}

func TestNewRejectsRelativeURL(t *testing.T) {
	for _, bad := range []string{"", "example.com", "/just/a/path"} {
		if _, err := New(bad, 0, nil); err == nil {
			t.Errorf("New(%q) succeeded, want error", bad)
		}
	}
}

func TestRecordsCrawlsLinkedPages(t *testing.T) {
	srv := testSite(t, map[string]string{
		"/": `<html><body>
			<div data-section-title="Home">welcome to the home page</div>
			<main>
				<a href="/blog">blog</a>
				<a href="/projects">projects</a>
				<a href="/experience">experience</a>
				<a href="https://elsewhere.example/">external</a>
			</main>
		</body></html>`,
		"/blog": `<html><body>
			<div data-section-title="Blog">posts about software</div>
		</body></html>`,
		"/projects": `<html><body>
			<div data-section-title="Projects">things I built</div>
		</body></html>`,
		"/experience": `<html><body>
			<div data-section-title="Hidden">must never be indexed</div>
		</body></html>`,
	})
	defer srv.Close()

	c, err := New(srv.URL, 6, nil)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	records, err := c.Records(context.Background())
	if err != nil {
		t.Fatalf("Records failed: %v", err)
	}

	titles := make(map[string]bool)
	for _, r := range records {
		titles[r.Title] = true
	}
	for _, want := range []string{"Home", "Blog", "Projects"} {
		if !titles[want] {
			t.Errorf("missing records from %s section", want)
		}
	}
	if titles["Hidden"] {
		t.Error("excluded path was crawled")
	}
}

func TestRecordsPageFailureIsSkipped(t *testing.T) {
	srv := testSite(t, map[string]string{
		"/": `<html><body>
			<div data-section-title="Home">welcome text</div>
			<a href="/missing">missing</a>
			<a href="/blog">blog</a>
		</body></html>`,
		"/blog": `<html><body>
			<div data-section-title="Blog">post text</div>
		</body></html>`,
	})
	defer srv.Close()

	c, err := New(srv.URL, 6, nil)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	records, err := c.Records(context.Background())
	if err != nil {
		t.Fatalf("a failing linked page must not fail the crawl: %v", err)
	}

	var blog bool
	for _, r := range records {
		if r.Title == "Blog" {
			blog = true
		}
	}
	if !blog {
		t.Error("pages after the failing one were not crawled")
	}
}

func TestRecordsHomeFailure(t *testing.T) {
	srv := testSite(t, map[string]string{})
	defer srv.Close()

	c, err := New(srv.URL, 6, nil)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if _, err := c.Records(context.Background()); err == nil {
		t.Error("expected an error when the home page cannot be fetched")
	}
}

func TestDiscoverLinksCapAndDedupe(t *testing.T) {
	var links strings.Builder
	for i := 0; i < 10; i++ {
		fmt.Fprintf(&links, `<a href="/page%d">p</a><a href="/page%d">again</a>`, i, i)
	}
	srv := testSite(t, map[string]string{
		"/": "<html><body>" + links.String() + "</body></html>",
	})
	defer srv.Close()

	c, err := New(srv.URL, 3, nil)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	home, err := c.fetch(context.Background(), "/")
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}

	paths := c.discoverLinks(home)
	if len(paths) != 3 {
		t.Fatalf("got %d paths, want cap of 3", len(paths))
	}
	want := []string{"/page0", "/page1", "/page2"}
	for i, p := range want {
		if paths[i] != p {
			t.Errorf("path %d = %q, want %q", i, paths[i], p)
		}
	}
}

func TestExcludedPrefixes(t *testing.T) {
	c, err := New("https://example.com", 6, []string{"/drafts"})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	tests := []struct {
		path string
		want bool
	}{
		{"/experience", true},
		{"/experience/tab", true},
		{"/api/search", true},
		{"/drafts/wip", true},
		{"/blog", false},
		{"/", false},
	}
	for _, tt := range tests {
		if got := c.excluded(tt.path); got != tt.want {
			t.Errorf("excluded(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}
