package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

//go:embed config.toml.sample
var configTemplate string

// Config holds everything the folio daemon and CLI need: where the site
// content lives, where the course catalog lives, how to reach the public
// site for crawling, and the optional GitHub and now-playing integrations.
type Config struct {
	ListenAddr  string           `toml:"listen_addr"`
	SiteURL     string           `toml:"site_url"`
	ContentFile string           `toml:"content_file"`
	CoursesFile string           `toml:"courses_file"`
	DataDir     string           `toml:"data_dir"`
	Crawl       CrawlConfig      `toml:"crawl"`
	GitHub      *GitHubConfig    `toml:"github,omitempty"`
	NowPlaying  *NowPlayingConfig `toml:"nowplaying,omitempty"`
}

// CrawlConfig controls the HTML page source feeding the search index.
type CrawlConfig struct {
	Enabled bool `toml:"enabled"`
	// MaxPages bounds how many linked pages are fetched beyond the home page.
	MaxPages int `toml:"max_pages"`
	// ExcludePaths are same-origin path prefixes never crawled. The
	// experience route and /api are always excluded.
	ExcludePaths []string `toml:"exclude_paths"`
}

// GitHubConfig configures the contributions proxy and the repository rail.
type GitHubConfig struct {
	Token string `toml:"token"`
	User  string `toml:"user"`
}

// NowPlayingConfig configures the music widget feed.
type NowPlayingConfig struct {
	URL string `toml:"url"`
	// PollInterval specifies how often the now-playing endpoint is polled.
	// If not specified, defaults to 30 seconds.
	PollInterval *Duration `toml:"poll_interval,omitempty"`
}

type Duration struct {
	time.Duration
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

func GetDefaultConfig() (*Config, error) {
	dataDir, err := GetDefaultDataDir()
	if err != nil {
		return nil, fmt.Errorf("getting default data directory: %w", err)
	}
	return &Config{
		ListenAddr:  ":8080",
		ContentFile: filepath.Join(dataDir, "content.json"),
		CoursesFile: filepath.Join(dataDir, "courses.json"),
		DataDir:     dataDir,
		Crawl: CrawlConfig{
			Enabled:  false,
			MaxPages: 6,
		},
	}, nil
}

func LoadConfig(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return GetDefaultConfig()
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if config.DataDir == "" {
		dataDir, err := GetDefaultDataDir()
		if err != nil {
			return nil, fmt.Errorf("getting default data directory: %w", err)
		}
		config.DataDir = dataDir
	}

	if config.ListenAddr == "" {
		config.ListenAddr = ":8080"
	}

	if config.ContentFile == "" {
		config.ContentFile = filepath.Join(config.DataDir, "content.json")
	}

	if config.CoursesFile == "" {
		config.CoursesFile = filepath.Join(config.DataDir, "courses.json")
	}

	if config.Crawl.MaxPages == 0 {
		config.Crawl.MaxPages = 6
	}

	return &config, nil
}

func (c *Config) SaveConfig(configPath string) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	return os.WriteFile(configPath, data, 0644)
}

func (c *Config) SaveTemplateConfig(configPath string) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	template, err := c.generateConfigTemplate()
	if err != nil {
		return fmt.Errorf("generating config template: %w", err)
	}
	return os.WriteFile(configPath, []byte(template), 0644)
}

func (c *Config) generateConfigTemplate() (string, error) {
	dataDir := c.DataDir
	if dataDir == "" {
		var err error
		dataDir, err = GetDefaultDataDir()
		if err != nil {
			return "", fmt.Errorf("getting default data directory: %w", err)
		}
	}

	// Replace the placeholder data_dir with the actual path
	template := strings.Replace(configTemplate, "/home/user/.local/share/folio", dataDir, -1)
	return template, nil
}

// NowPlayingInterval returns the configured poll interval or the 30 second default.
func (c *Config) NowPlayingInterval() time.Duration {
	if c.NowPlaying == nil || c.NowPlaying.PollInterval == nil {
		return 30 * time.Second
	}
	return c.NowPlaying.PollInterval.Duration
}

// GetDefaultDataDir returns the default directory for the course catalog
// database and data documents.
func GetDefaultDataDir() (string, error) {
	// Use XDG_DATA_HOME if set, otherwise use ~/.local/share
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("getting user home directory: %w", err)
		}
		dataDir = filepath.Join(homeDir, ".local", "share")
	}

	folioDir := filepath.Join(dataDir, "folio")

	if err := os.MkdirAll(folioDir, 0755); err != nil {
		return "", fmt.Errorf("creating data directory %s: %w", folioDir, err)
	}

	return folioDir, nil
}

// GetDefaultDBPath returns the default course catalog database path.
func GetDefaultDBPath() (string, error) {
	dataDir, err := GetDefaultDataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dataDir, "catalog.db"), nil
}

// GetConfigDir returns the configuration directory for folio
func GetConfigDir() (string, error) {
	// Use XDG_CONFIG_HOME if set, otherwise use ~/.config
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("getting user home directory: %w", err)
		}
		configDir = filepath.Join(homeDir, ".config")
	}

	folioConfigDir := filepath.Join(configDir, "folio")

	if err := os.MkdirAll(folioConfigDir, 0755); err != nil {
		return "", fmt.Errorf("creating config directory %s: %w", folioConfigDir, err)
	}

	return folioConfigDir, nil
}

// GetDefaultConfigPath returns the default configuration file path
func GetDefaultConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.toml"), nil
}
