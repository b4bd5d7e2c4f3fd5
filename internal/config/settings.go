package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
	"golang.org/x/text/language"
)

const (
	defaultAPIURL              = "https://pub.highlight.run"
	defaultAppBaseURL          = "https://app.highlight.io"
	defaultAPITimeoutSeconds   = 10
	defaultPollIntervalSeconds = 10
	defaultCacheBackend        = CacheBackendBbolt
	defaultLocale              = "en-US"
)

const (
	CacheBackendBbolt  = "bbolt"
	CacheBackendMemory = "memory"
)

var defaultAdminEmailDomains = []string{"highlight.run", "highlight.io"}

type Config struct {
	API     APIConfig     `toml:"api"`
	App     AppConfig     `toml:"app"`
	Session SessionConfig `toml:"session"`
	Auth    AuthConfig    `toml:"auth"`
	Display DisplayConfig `toml:"display"`
	Star    StarConfig    `toml:"star"`
	Cache   CacheConfig   `toml:"cache"`
	Logging LoggingConfig `toml:"logging"`
}

type APIConfig struct {
	URL            string `toml:"url"`
	TokenPath      string `toml:"token_path"`
	TimeoutSeconds int    `toml:"timeout"`
}

type AppConfig struct {
	BaseURL   string `toml:"base_url"`
	ProjectID string `toml:"project_id"`
}

type SessionConfig struct {
	PollIntervalSeconds int `toml:"poll_interval"`
}

type AuthConfig struct {
	AdminEmailDomains []string `toml:"admin_email_domains"`
}

type DisplayConfig struct {
	TimeZone string `toml:"time_zone"`
	Locale   string `toml:"locale"`
}

type StarConfig struct {
	RollbackOnFailure bool `toml:"rollback_on_failure"`
}

type CacheConfig struct {
	Backend string `toml:"backend"`
	Path    string `toml:"path"`
}

type LoggingConfig struct {
	Level string `toml:"level"`
}

func DefaultConfig() Config {
	return Config{
		API: APIConfig{
			URL:            defaultAPIURL,
			TimeoutSeconds: defaultAPITimeoutSeconds,
		},
		App: AppConfig{
			BaseURL: defaultAppBaseURL,
		},
		Session: SessionConfig{
			PollIntervalSeconds: defaultPollIntervalSeconds,
		},
		Auth: AuthConfig{
			AdminEmailDomains: append([]string{}, defaultAdminEmailDomains...),
		},
		Display: DisplayConfig{
			Locale: defaultLocale,
		},
		Cache: CacheConfig{
			Backend: defaultCacheBackend,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

func Load() (Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return Config{}, err
	}
	return loadFromPath(path)
}

func (c Config) APIURL() string {
	url := strings.TrimRight(strings.TrimSpace(c.API.URL), "/")
	if url == "" {
		return defaultAPIURL
	}
	return url
}

func (c Config) ResolveTokenPath() (string, error) {
	path := strings.TrimSpace(c.API.TokenPath)
	if path == "" {
		return TokenPath()
	}
	return resolveConfigPath(path)
}

func (c Config) APITimeout() time.Duration {
	if c.API.TimeoutSeconds <= 0 {
		return defaultAPITimeoutSeconds * time.Second
	}
	return time.Duration(c.API.TimeoutSeconds) * time.Second
}

func (c Config) AppBaseURL() string {
	url := strings.TrimRight(strings.TrimSpace(c.App.BaseURL), "/")
	if url == "" {
		return defaultAppBaseURL
	}
	return url
}

func (c Config) ProjectID() string {
	return strings.TrimSpace(c.App.ProjectID)
}

func (c Config) PollInterval() time.Duration {
	if c.Session.PollIntervalSeconds <= 0 {
		return defaultPollIntervalSeconds * time.Second
	}
	return time.Duration(c.Session.PollIntervalSeconds) * time.Second
}

func (c Config) AdminEmailDomains() []string {
	values := make([]string, 0, len(c.Auth.AdminEmailDomains))
	for _, raw := range c.Auth.AdminEmailDomains {
		values = append(values, strings.ToLower(strings.TrimPrefix(strings.TrimSpace(raw), "@")))
	}
	domains := normalizedList(values)
	if len(domains) == 0 {
		domains = append([]string{}, defaultAdminEmailDomains...)
	}
	return domains
}

// TimeLocation resolves the configured IANA zone. Blank means the local zone.
func (c Config) TimeLocation() (*time.Location, error) {
	name := strings.TrimSpace(c.Display.TimeZone)
	if name == "" {
		return time.Local, nil
	}
	return time.LoadLocation(name)
}

// DisplayLocale parses the configured BCP 47 tag. The second return value is
// false when the configured tag was invalid and the default was used instead.
func (c Config) DisplayLocale() (language.Tag, bool) {
	raw := strings.TrimSpace(c.Display.Locale)
	if raw == "" {
		return language.AmericanEnglish, true
	}
	tag, err := language.Parse(raw)
	if err != nil {
		return language.AmericanEnglish, false
	}
	return tag, true
}

func (c Config) StarRollbackOnFailure() bool {
	return c.Star.RollbackOnFailure
}

func (c Config) CacheBackend() string {
	switch strings.ToLower(strings.TrimSpace(c.Cache.Backend)) {
	case CacheBackendMemory:
		return CacheBackendMemory
	default:
		return CacheBackendBbolt
	}
}

func (c Config) ResolveCachePath() (string, error) {
	path := strings.TrimSpace(c.Cache.Path)
	if path == "" {
		return CachePath()
	}
	return resolveConfigPath(path)
}

func (c Config) LogLevel() string {
	level := strings.TrimSpace(c.Logging.Level)
	if level == "" {
		return "info"
	}
	return level
}

func loadFromPath(path string) (Config, error) {
	cfg := DefaultConfig()
	if err := readTOML(path, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func readTOML(path string, out any) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return errors.New("path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil
	}
	return toml.Unmarshal(data, out)
}

func resolveConfigPath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", errors.New("path is required")
	}
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, path[2:]), nil
	}
	if filepath.IsAbs(path) {
		return path, nil
	}
	dataDir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dataDir, path), nil
}

func normalizedList(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	out := make([]string, 0, len(values))
	seen := map[string]struct{}{}
	for _, raw := range values {
		value := strings.TrimSpace(raw)
		if value == "" {
			continue
		}
		if _, ok := seen[value]; ok {
			continue
		}
		seen[value] = struct{}{}
		out = append(out, value)
	}
	return out
}
