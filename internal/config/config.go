package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/Tiliavir/myhours-cli/internal/model"
)

// Config is the root configuration for myhours, stored next to the
// credential file as my-hours-cli.yaml. Every key can be overridden with an
// environment variable, e.g. MYHOURS_API_BASE_URL.
type Config struct {
	API         APIConfig         `mapstructure:"api"`
	Credentials CredentialsConfig `mapstructure:"credentials"`
	Tags        TagsConfig        `mapstructure:"tags"`
	Fudge       FudgeConfig       `mapstructure:"fudge"`
}

type APIConfig struct {
	// BaseURL is the root of the My Hours REST API.
	BaseURL string `mapstructure:"base_url"`
}

// CredentialsConfig selects where the cached session lives.
type CredentialsConfig struct {
	// Backend is "file" or "keyring".
	Backend string `mapstructure:"backend"`
	// Path is the session file used by the file backend.
	Path string `mapstructure:"path"`
}

type TagsConfig struct {
	// HexColor is the colour of tags created on demand.
	HexColor string `mapstructure:"hex_color"`
}

type FudgeConfig struct {
	// Marker is the note written on backfilled entries.
	Marker string `mapstructure:"marker"`
	// Tags are applied to backfilled entries when --tags is not given.
	Tags []string `mapstructure:"tags"`
}

const (
	BackendFile    = "file"
	BackendKeyring = "keyring"

	DefaultBaseURL  = "https://api2.myhours.com/api"
	DefaultHexColor = "#007bff"
	DefaultMarker   = "fudged by myhours"

	fileName        = "my-hours-cli.yaml"
	credentialsName = "my-hours-cli.json"
	envPrefix       = "MYHOURS"
)

// configTemplate is the annotated config written on first run.
const configTemplate = `# myhours configuration
#
# All settings are optional; the defaults below work for the hosted My Hours
# service. Any key can be overridden with an environment variable, for example
# MYHOURS_API_BASE_URL or MYHOURS_CREDENTIALS_BACKEND.

api:
  # Root of the My Hours REST API.
  base_url: "https://api2.myhours.com/api"

credentials:
  # Where the login session is cached:
  #   file    - JSON file at credentials.path (default)
  #   keyring - the operating system keyring
  backend: "file"
  # Leave empty to use my-hours-cli.json in $XDG_CONFIG_HOME or your home directory.
  path: ""

tags:
  # Colour of tags created on demand by "start --tags" and "fudge --tags".
  hex_color: "#007bff"

fudge:
  # Note written on backfilled entries. Entries with this exact note are
  # deleted and recreated on every run, so do not use it for real work.
  marker: "fudged by myhours"
  # Tags applied to backfilled entries when --tags is not given.
  tags: []
`

// Dir returns $XDG_CONFIG_HOME, or the home directory when it is unset.
func Dir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return xdg, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return home, nil
}

// Load reads the config from Dir.
func Load() (Config, error) {
	dir, err := Dir()
	if err != nil {
		return Config{}, err
	}
	return LoadFrom(dir)
}

// LoadFrom reads dir/my-hours-cli.yaml, creating it with annotated defaults
// on first run, and applies MYHOURS_* environment overrides.
func LoadFrom(dir string) (Config, error) {
	path := filepath.Join(dir, fileName)

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("api.base_url", DefaultBaseURL)
	v.SetDefault("credentials.backend", BackendFile)
	v.SetDefault("credentials.path", "")
	v.SetDefault("tags.hex_color", DefaultHexColor)
	v.SetDefault("fudge.marker", DefaultMarker)
	v.SetDefault("fudge.tags", []string{})

	readFile := true
	if _, err := os.Stat(path); os.IsNotExist(err) {
		// First run.
		if writeErr := writeDefault(path); writeErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not create config file %s: %v\n", path, writeErr)
			readFile = false
		}
	}
	if readFile {
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("parsing config file %s: %w\nTip: delete the file to regenerate defaults", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}

	if cfg.Credentials.Path == "" {
		cfg.Credentials.Path = filepath.Join(dir, credentialsName)
	}
	if cfg.API.BaseURL == "" {
		cfg.API.BaseURL = DefaultBaseURL
	}
	if cfg.Fudge.Marker == "" {
		cfg.Fudge.Marker = DefaultMarker
	}
	switch cfg.Credentials.Backend {
	case BackendFile, BackendKeyring:
	default:
		return Config{}, fmt.Errorf("%w: credentials.backend must be %q or %q, got %q",
			model.ErrValidation, BackendFile, BackendKeyring, cfg.Credentials.Backend)
	}
	return cfg, nil
}

// writeDefault creates the config directory and writes the annotated default
// config template.
func writeDefault(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(configTemplate), 0o600); err != nil {
		return fmt.Errorf("writing default config: %w", err)
	}
	return nil
}
