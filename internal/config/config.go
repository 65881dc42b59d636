// Package config loads, validates and persists pkindex settings.
//
// Settings resolve in layers: built-in defaults, the global file at
// $PKINDEX_HOME/config.yaml, the project overlay .pkindex/config.yaml, an
// explicit --config overlay, then PKINDEX_* environment variables (which a
// .env file may supply). Command-line flags are applied by the caller.
package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// Defaults.
const (
	DefaultSource      = "data/index_history.csv"
	DefaultHistoryRows = 10
	DefaultLocale      = "en"
	DefaultSeriesName  = "PK500-A (USD)"
	DefaultFormat      = "table"
	DefaultAddr        = ":8080"
	DefaultLogLevel    = "info"
	DefaultLogFormat   = "console"

	// MaxHistoryRows bounds display.history_rows.
	MaxHistoryRows = 1000

	// ConfigFileName is the file name of both the global config and project overlays.
	ConfigFileName = "config.yaml"
)

// Output formats accepted by output.default_format.
const (
	FormatTable  = "table"
	FormatJSON   = "json"
	FormatNDJSON = "ndjson"
)

// Environment variables that override file settings.
const (
	EnvHome        = "PKINDEX_HOME"
	EnvProjectDir  = "PKINDEX_PROJECT_DIR"
	EnvSource      = "PKINDEX_SOURCE"
	EnvAddr        = "PKINDEX_ADDR"
	EnvLogLevel    = "PKINDEX_LOG_LEVEL"
	EnvLogFormat   = "PKINDEX_LOG_FORMAT"
	EnvHistoryRows = "PKINDEX_HISTORY_ROWS"
)

// Config is the full pkindex configuration.
type Config struct {
	Source  SourceConfig  `yaml:"source"`
	Display DisplayConfig `yaml:"display"`
	Output  OutputConfig  `yaml:"output"`
	Server  ServerConfig  `yaml:"server"`
	Logging LoggingConfig `yaml:"logging"`

	configPath string
}

// SourceConfig locates the index history.
type SourceConfig struct {
	// URL is an http(s) URL, a file:// URL or a filesystem path.
	URL string `yaml:"url"`
	// Timeout bounds one fetch; zero means no timeout.
	Timeout time.Duration `yaml:"timeout"`
}

// DisplayConfig tunes the rendered views.
type DisplayConfig struct {
	HistoryRows int    `yaml:"history_rows"`
	Locale      string `yaml:"locale"`
	SeriesName  string `yaml:"series_name"`
}

// OutputConfig holds CLI output preferences.
type OutputConfig struct {
	DefaultFormat string `yaml:"default_format"`
}

// ServerConfig configures the serve command.
type ServerConfig struct {
	Addr        string `yaml:"addr"`
	Compression bool   `yaml:"compression"`
}

// LoggingConfig configures the logger.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
}

// Default returns a Config holding only built-in defaults.
func Default() *Config {
	cfg := &Config{
		Source: SourceConfig{URL: DefaultSource},
		Display: DisplayConfig{
			HistoryRows: DefaultHistoryRows,
			Locale:      DefaultLocale,
			SeriesName:  DefaultSeriesName,
		},
		Output: OutputConfig{DefaultFormat: DefaultFormat},
		Server: ServerConfig{Addr: DefaultAddr, Compression: true},
		Logging: LoggingConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
	if dir, err := GetConfigDir(); err == nil {
		cfg.configPath = filepath.Join(dir, ConfigFileName)
	}
	return cfg
}

// New returns the defaults overlaid with the global config file and the
// environment. A missing or unreadable global file leaves the defaults.
func New() *Config {
	cfg := Default()
	_ = cfg.Load()
	cfg.ApplyEnvOverrides()
	return cfg
}

// ConfigPath returns the file Load and Save use.
func (c *Config) ConfigPath() string {
	return c.configPath
}

// SetConfigPath changes the file Load and Save use.
func (c *Config) SetConfigPath(path string) {
	c.configPath = path
}

// Load reads the config file onto c. A missing file is not an error.
func (c *Config) Load() error {
	if c.configPath == "" {
		return nil
	}
	data, err := os.ReadFile(c.configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("reading config file %s: %w", c.configPath, err)
	}
	if err = yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config file %s: %w", c.configPath, err)
	}
	return nil
}

// Save writes c to its config file, creating the directory.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.New("config path is not set")
	}
	if err := os.MkdirAll(filepath.Dir(c.configPath), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err = os.WriteFile(c.configPath, data, 0o600); err != nil {
		return fmt.Errorf("writing config file %s: %w", c.configPath, err)
	}
	return nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Source.URL) == "" {
		return errors.New("source.url must not be empty")
	}
	if c.Source.Timeout < 0 {
		return fmt.Errorf("source.timeout must be >= 0, got %s", c.Source.Timeout)
	}
	if c.Display.HistoryRows < 1 || c.Display.HistoryRows > MaxHistoryRows {
		return fmt.Errorf("display.history_rows must be between 1 and %d, got %d",
			MaxHistoryRows, c.Display.HistoryRows)
	}
	switch c.Output.DefaultFormat {
	case FormatTable, FormatJSON, FormatNDJSON:
	default:
		return fmt.Errorf("output.default_format must be table, json or ndjson, got %q", c.Output.DefaultFormat)
	}
	if _, _, err := net.SplitHostPort(c.Server.Addr); err != nil {
		return fmt.Errorf("server.addr %q: %w", c.Server.Addr, err)
	}
	if _, err := zerolog.ParseLevel(strings.ToLower(c.Logging.Level)); err != nil || c.Logging.Level == "" {
		return fmt.Errorf("logging.level %q is not a valid level", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	return nil
}
