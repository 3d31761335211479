package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultSettingsFile is the default crawler-settings file name.
const DefaultSettingsFile = ".scopecrawl"

// ErrSettingsNotFound is returned when the settings file does not exist.
var ErrSettingsNotFound = errors.New("settings file not found")

// PlaceholderUserAgent is the user agent shipped in the template settings
// file. The preflight checker refuses to pass a crawl that still uses it.
const PlaceholderUserAgent = "DEFAULT AGENT"

// Duration wraps time.Duration with YAML support ("500ms", "1s", ...).
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// Settings mirrors the host crawler's runtime settings file. The scope layer
// never fetches, but the preflight checker validates these before a run is
// allowed to start.
type Settings struct {
	// UserAgent identifies the crawl in HTTP requests. Must carry the
	// course tag and the operators' student IDs.
	UserAgent string `yaml:"useragent"`

	// Host is the cache server the host crawler fetches through.
	Host string `yaml:"host"`

	// Port is the cache server port.
	Port int `yaml:"port"`

	// Seeds are the starting URLs of the crawl.
	Seeds []string `yaml:"seeds"`

	// Politeness is the per-host delay between requests.
	Politeness Duration `yaml:"politeness"`

	// Workers is the host crawler's fetch worker count. The analytics store
	// is single-owner, so anything above one needs external locking.
	Workers int `yaml:"workers"`
}

// LoadSettings loads the crawler settings from a YAML file.
// A missing file returns ErrSettingsNotFound so callers can distinguish
// "not configured" from a malformed file.
func LoadSettings(path string) (*Settings, error) {
	data, err := os.ReadFile(path) //nolint:gosec // user-provided settings path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrSettingsNotFound
		}
		return nil, err
	}

	var s Settings
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// FindSettingsFile searches for the settings file in the following order:
//  1. If path is specified, use it directly
//  2. Look for .scopecrawl in the current directory
//  3. Look for .scopecrawl in the XDG config directory
//  4. Look for .scopecrawl in the user's home directory
//
// Returns the path if found, or empty string if not found.
func FindSettingsFile(path string) string {
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			return path
		}
		return ""
	}

	for _, candidate := range settingsSearchPaths() {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	return ""
}

// settingsSearchPaths returns the default settings file locations in
// search order.
func settingsSearchPaths() []string {
	var paths []string
	if cwd, err := os.Getwd(); err == nil {
		paths = append(paths, filepath.Join(cwd, DefaultSettingsFile))
	}
	paths = append(paths, filepath.Join(XDGConfigDir(), DefaultSettingsFile))
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, DefaultSettingsFile))
	}
	return paths
}
