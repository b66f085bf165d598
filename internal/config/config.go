// Package config loads worktravel settings from defaults, a config file,
// the environment and command-line flags.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

const (
	AppName = "worktravel"

	DefaultBackend   = "file"
	DefaultTheme     = "classic"
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
	DefaultLogFile   = "worktravel.log"
)

var (
	validBackends   = []string{"file", "sqlite", "memory"}
	validThemes     = []string{"classic", "neon", "mono"}
	validLogLevels  = []string{"debug", "info", "warn", "error"}
	validLogFormats = []string{"text", "json", "logfmt"}
)

// Config holds all settings.
type Config struct {
	DataDir   string `toml:"data_dir" yaml:"data_dir"`
	Backend   string `toml:"backend" yaml:"backend"`
	Theme     string `toml:"theme" yaml:"theme"`
	LogLevel  string `toml:"log_level" yaml:"log_level"`
	LogFormat string `toml:"log_format" yaml:"log_format"`
	// LogFile is where logs go while the TUI owns the terminal.
	// Relative paths resolve against DataDir.
	LogFile string `toml:"log_file" yaml:"log_file"`

	// Path of the config file that was read, if any.
	Source string `toml:"-" yaml:"-"`
}

// Overrides are flag values; empty fields leave the loaded value alone.
type Overrides struct {
	ConfigPath string
	DataDir    string
	Backend    string
	Theme      string
	LogLevel   string
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		DataDir:   defaultDataDir(),
		Backend:   DefaultBackend,
		Theme:     DefaultTheme,
		LogLevel:  DefaultLogLevel,
		LogFormat: DefaultLogFormat,
		LogFile:   DefaultLogFile,
	}
}

// Load applies, in increasing priority: defaults, the config file,
// WORKTRAVEL_* environment variables, then flag overrides.
func Load(o Overrides) (*Config, error) {
	cfg := Default()

	path := o.ConfigPath
	explicit := path != ""
	if !explicit {
		path = findUserConfigFile()
	}
	if path != "" {
		if err := loadFile(cfg, path); err != nil {
			if explicit || !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("loading config file %s: %w", path, err)
			}
		} else {
			cfg.Source = path
		}
	}

	loadFromEnv(cfg)

	setIf(&cfg.DataDir, o.DataDir)
	setIf(&cfg.Backend, o.Backend)
	setIf(&cfg.Theme, o.Theme)
	setIf(&cfg.LogLevel, o.LogLevel)

	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects unknown enum values and an empty data dir.
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.DataDir) == "" {
		errs = append(errs, errors.New("data_dir is empty"))
	}
	check := func(field, v string, allowed []string) {
		if !slices.Contains(allowed, v) {
			errs = append(errs, fmt.Errorf("%s: %q is not one of %s", field, v, strings.Join(allowed, ", ")))
		}
	}
	check("backend", c.Backend, validBackends)
	check("theme", c.Theme, validThemes)
	check("log_level", c.LogLevel, validLogLevels)
	check("log_format", c.LogFormat, validLogFormats)
	return errors.Join(errs...)
}

// LogPath resolves LogFile against DataDir.
func (c *Config) LogPath() string {
	if c.LogFile == "" || filepath.IsAbs(c.LogFile) {
		return c.LogFile
	}
	return filepath.Join(c.DataDir, c.LogFile)
}

func (c *Config) normalize() {
	c.Backend = strings.ToLower(strings.TrimSpace(c.Backend))
	c.Theme = strings.ToLower(strings.TrimSpace(c.Theme))
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	if c.LogLevel == "warning" {
		c.LogLevel = "warn"
	}
	c.LogFormat = strings.ToLower(strings.TrimSpace(c.LogFormat))
	if strings.HasPrefix(c.DataDir, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			c.DataDir = filepath.Join(home, c.DataDir[2:])
		}
	}
}

// loadFile decodes TOML, or YAML when the extension says so.
func loadFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("yaml: %w", err)
		}
		return nil
	default:
		md, err := toml.Decode(string(data), cfg)
		if err != nil {
			return fmt.Errorf("toml: %w", err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return fmt.Errorf("toml: unknown keys %v", undecoded)
		}
		return nil
	}
}

func loadFromEnv(cfg *Config) {
	setIf(&cfg.DataDir, os.Getenv("WORKTRAVEL_DATA_DIR"))
	setIf(&cfg.Backend, os.Getenv("WORKTRAVEL_BACKEND"))
	setIf(&cfg.Theme, os.Getenv("WORKTRAVEL_THEME"))
	setIf(&cfg.LogLevel, os.Getenv("WORKTRAVEL_LOG_LEVEL"))
	setIf(&cfg.LogFormat, os.Getenv("WORKTRAVEL_LOG_FORMAT"))
}

func setIf(dst *string, v string) {
	if v = strings.TrimSpace(v); v != "" {
		*dst = v
	}
}

// findUserConfigFile returns the first existing config file in the user
// config dir, or the TOML path when none exists yet.
func findUserConfigFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	base := filepath.Join(dir, AppName)
	for _, name := range []string{"config.toml", "config.yaml", "config.yml"} {
		p := filepath.Join(base, name)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return filepath.Join(base, "config.toml")
}

func defaultDataDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, AppName)
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, "."+AppName)
	}
	return "." + AppName
}
