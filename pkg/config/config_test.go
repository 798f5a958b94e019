package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", t.TempDir())

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.ListenAddr != ":8080" {
		t.Errorf("listen_addr = %q, want :8080", cfg.ListenAddr)
	}
	if cfg.Crawl.MaxPages != 6 {
		t.Errorf("max_pages = %d, want 6", cfg.Crawl.MaxPages)
	}
	if cfg.Crawl.Enabled {
		t.Error("crawl should default to disabled")
	}
	if cfg.ContentFile == "" || cfg.CoursesFile == "" {
		t.Error("data document paths not defaulted")
	}
}

func TestLoadConfigFile(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", t.TempDir())

	path := filepath.Join(t.TempDir(), "config.toml")
	data := `
listen_addr = ":9090"
site_url = "https://example.com"

[crawl]
enabled = true
max_pages = 3
exclude_paths = ["/drafts"]

[github]
user = "octocat"
token = "secret"

[nowplaying]
url = "https://music.example.com/now"
poll_interval = "45s"
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.ListenAddr != ":9090" {
		t.Errorf("listen_addr = %q", cfg.ListenAddr)
	}
	if cfg.SiteURL != "https://example.com" {
		t.Errorf("site_url = %q", cfg.SiteURL)
	}
	if !cfg.Crawl.Enabled || cfg.Crawl.MaxPages != 3 {
		t.Errorf("crawl = %+v", cfg.Crawl)
	}
	if len(cfg.Crawl.ExcludePaths) != 1 || cfg.Crawl.ExcludePaths[0] != "/drafts" {
		t.Errorf("exclude_paths = %v", cfg.Crawl.ExcludePaths)
	}
	if cfg.GitHub == nil || cfg.GitHub.User != "octocat" {
		t.Errorf("github = %+v", cfg.GitHub)
	}
	if cfg.NowPlayingInterval() != 45*time.Second {
		t.Errorf("poll interval = %v, want 45s", cfg.NowPlayingInterval())
	}
}

func TestNowPlayingIntervalDefault(t *testing.T) {
	cfg := &Config{}
	if got := cfg.NowPlayingInterval(); got != 30*time.Second {
		t.Errorf("interval = %v, want 30s default", got)
	}

	cfg.NowPlaying = &NowPlayingConfig{URL: "https://x"}
	if got := cfg.NowPlayingInterval(); got != 30*time.Second {
		t.Errorf("interval without poll_interval = %v, want 30s default", got)
	}
}

func TestSaveAndReloadConfig(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", t.TempDir())

	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	cfg := &Config{
		ListenAddr:  ":7070",
		SiteURL:     "https://example.com",
		ContentFile: filepath.Join(dir, "content.json"),
		CoursesFile: filepath.Join(dir, "courses.json"),
		DataDir:     dir,
		Crawl:       CrawlConfig{Enabled: true, MaxPages: 4},
	}
	if err := cfg.SaveConfig(path); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if loaded.ListenAddr != ":7070" || loaded.Crawl.MaxPages != 4 {
		t.Errorf("round trip mismatch: %+v", loaded)
	}
}

func TestSaveTemplateConfig(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", t.TempDir())

	path := filepath.Join(t.TempDir(), "config.toml")
	cfg, err := GetDefaultConfig()
	if err != nil {
		t.Fatalf("GetDefaultConfig failed: %v", err)
	}

	if err := cfg.SaveTemplateConfig(path); err != nil {
		t.Fatalf("SaveTemplateConfig failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading template: %v", err)
	}
	if len(data) == 0 {
		t.Error("template config is empty")
	}
	if string(data[:1]) == "\x00" {
		t.Error("template config looks binary")
	}
}

func TestDurationText(t *testing.T) {
	var d Duration
	if err := d.UnmarshalText([]byte("1m30s")); err != nil {
		t.Fatalf("UnmarshalText failed: %v", err)
	}
	if d.Duration != 90*time.Second {
		t.Errorf("duration = %v, want 1m30s", d.Duration)
	}

	out, err := d.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText failed: %v", err)
	}
	if string(out) != "1m30s" {
		t.Errorf("marshaled = %q", out)
	}

	if err := d.UnmarshalText([]byte("soon")); err == nil {
		t.Error("expected an error for a malformed duration")
	}
}
