package main

import (
	"encoding/json"
	"errors"
	"flag"
	"io"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"replayview/internal/config"
)

type ConfigCommand struct {
	stdout     io.Writer
	stderr     io.Writer
	loadConfig configLoader
}

const (
	configFormatJSON = "json"
	configFormatTOML = "toml"
)

type configOutput struct {
	ConfigPath string                 `json:"config_path,omitempty" toml:"config_path,omitempty"`
	API        effectiveAPIConfig     `json:"api" toml:"api"`
	App        effectiveAppConfig     `json:"app" toml:"app"`
	Session    effectiveSessionConfig `json:"session" toml:"session"`
	Auth       effectiveAuthConfig    `json:"auth" toml:"auth"`
	Display    effectiveDisplayConfig `json:"display" toml:"display"`
	Star       effectiveStarConfig    `json:"star" toml:"star"`
	Cache      effectiveCacheConfig   `json:"cache" toml:"cache"`
	Logging    effectiveLoggingConfig `json:"logging" toml:"logging"`
}

type effectiveAPIConfig struct {
	URL            string `json:"url" toml:"url"`
	TokenPath      string `json:"token_path" toml:"token_path"`
	TimeoutSeconds int    `json:"timeout" toml:"timeout"`
}

type effectiveAppConfig struct {
	BaseURL   string `json:"base_url" toml:"base_url"`
	ProjectID string `json:"project_id,omitempty" toml:"project_id,omitempty"`
}

type effectiveSessionConfig struct {
	PollIntervalSeconds int `json:"poll_interval" toml:"poll_interval"`
}

type effectiveAuthConfig struct {
	AdminEmailDomains []string `json:"admin_email_domains" toml:"admin_email_domains"`
}

type effectiveDisplayConfig struct {
	TimeZone string `json:"time_zone" toml:"time_zone"`
	Locale   string `json:"locale" toml:"locale"`
}

type effectiveStarConfig struct {
	RollbackOnFailure bool `json:"rollback_on_failure" toml:"rollback_on_failure"`
}

type effectiveCacheConfig struct {
	Backend string `json:"backend" toml:"backend"`
	Path    string `json:"path,omitempty" toml:"path,omitempty"`
}

type effectiveLoggingConfig struct {
	Level string `json:"level" toml:"level"`
}

func NewConfigCommand(stdout, stderr io.Writer, loadConfig configLoader) *ConfigCommand {
	return &ConfigCommand{
		stdout:     stdout,
		stderr:     stderr,
		loadConfig: loadConfig,
	}
}

func (c *ConfigCommand) Run(args []string) error {
	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	defaults := fs.Bool("default", false, "print default config values")
	format := fs.String("format", configFormatJSON, "output format: json|toml")
	if err := fs.Parse(args); err != nil {
		return err
	}

	resolvedFormat, err := resolveConfigFormat(*format)
	if err != nil {
		return err
	}
	cfg := config.DefaultConfig()
	if !*defaults {
		cfg, err = c.loadConfig()
		if err != nil {
			return err
		}
	}
	payload, err := buildConfigOutput(cfg)
	if err != nil {
		return err
	}
	return writeConfigOutput(c.stdout, resolvedFormat, payload)
}

func buildConfigOutput(cfg config.Config) (configOutput, error) {
	out := configOutput{}
	if path, err := config.ConfigPath(); err == nil {
		out.ConfigPath = path
	}
	tokenPath, err := cfg.ResolveTokenPath()
	if err != nil {
		return configOutput{}, err
	}
	locale, _ := cfg.DisplayLocale()
	timeZone := "Local"
	if loc, err := cfg.TimeLocation(); err == nil {
		timeZone = loc.String()
	}

	out.API = effectiveAPIConfig{
		URL:            cfg.APIURL(),
		TokenPath:      tokenPath,
		TimeoutSeconds: int(cfg.APITimeout().Seconds()),
	}
	out.App = effectiveAppConfig{
		BaseURL:   cfg.AppBaseURL(),
		ProjectID: cfg.ProjectID(),
	}
	out.Session = effectiveSessionConfig{
		PollIntervalSeconds: int(cfg.PollInterval().Seconds()),
	}
	out.Auth = effectiveAuthConfig{
		AdminEmailDomains: cfg.AdminEmailDomains(),
	}
	out.Display = effectiveDisplayConfig{
		TimeZone: timeZone,
		Locale:   locale.String(),
	}
	out.Star = effectiveStarConfig{
		RollbackOnFailure: cfg.StarRollbackOnFailure(),
	}
	out.Cache = effectiveCacheConfig{
		Backend: cfg.CacheBackend(),
	}
	if out.Cache.Backend != config.CacheBackendMemory {
		path, err := cfg.ResolveCachePath()
		if err != nil {
			return configOutput{}, err
		}
		out.Cache.Path = path
	}
	out.Logging = effectiveLoggingConfig{
		Level: cfg.LogLevel(),
	}
	return out, nil
}

func writeConfigOutput(out io.Writer, format string, payload any) error {
	switch format {
	case configFormatJSON:
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(payload)
	case configFormatTOML:
		data, err := toml.Marshal(payload)
		if err != nil {
			return err
		}
		if len(data) == 0 || data[len(data)-1] != '\n' {
			data = append(data, '\n')
		}
		_, err = out.Write(data)
		return err
	default:
		return errors.New("unsupported format")
	}
}

func resolveConfigFormat(raw string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", configFormatJSON:
		return configFormatJSON, nil
	case configFormatTOML:
		return configFormatTOML, nil
	default:
		return "", errors.New("invalid format: must be json or toml")
	}
}
