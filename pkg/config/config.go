package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/spf13/afero"
	"github.com/spf13/viper"

	"github.com/siyuan-infoblox/go-import-sort/pkg/engine"
	imperrors "github.com/siyuan-infoblox/go-import-sort/pkg/errors"
	"github.com/siyuan-infoblox/go-import-sort/pkg/source"
	"github.com/siyuan-infoblox/go-import-sort/pkg/style"
	"github.com/siyuan-infoblox/go-import-sort/pkg/utils"
)

const (
	// AppName is the application name used for XDG directory paths
	AppName = "importsort"
	// EnvPrefix prefixes environment overrides, e.g. IMPORTSORT_STYLE
	EnvPrefix = "IMPORTSORT"
)

// FileNames are the project configuration files searched for, nearest first
var FileNames = []string{".importsort.yaml", ".importsort.yml"}

type LogConfig struct {
	Level string `yaml:"level" mapstructure:"level"`
	File  string `yaml:"file,omitempty" mapstructure:"file"`
}

type Config struct {
	Style                string         `yaml:"style" mapstructure:"style"`
	Unmatched            string         `yaml:"unmatched" mapstructure:"unmatched"`
	Quote                string         `yaml:"quote,omitempty" mapstructure:"quote"`
	Workers              int            `yaml:"workers" mapstructure:"workers"`
	Extensions           []string       `yaml:"extensions" mapstructure:"extensions"`
	StylesheetExtensions []string       `yaml:"stylesheet_extensions" mapstructure:"stylesheet_extensions"`
	Log                  LogConfig      `yaml:"log" mapstructure:"log"`
	Styles               map[string]any `yaml:"styles,omitempty" mapstructure:"styles"`

	// Path is the file the configuration was read from, empty for defaults
	Path string `yaml:"-" mapstructure:"-"`
}

func newViper(fs afero.Fs) *viper.Viper {
	v := viper.New()
	if fs != nil {
		v.SetFs(fs)
	}
	v.SetDefault("style", style.StylesLast)
	v.SetDefault("unmatched", engine.UnmatchedFirst.String())
	v.SetDefault("quote", "")
	v.SetDefault("workers", 0)
	v.SetDefault("extensions", source.DefaultExtensions)
	v.SetDefault("stylesheet_extensions", source.DefaultStylesheetExtensions)
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.file", "")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Default returns the configuration used when no file is found
func Default() (*Config, error) {
	return decode(newViper(nil), "")
}

// Load reads a configuration file from fs
func Load(fs afero.Fs, path string) (*Config, error) {
	v := newViper(fs)
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("%s: %w", imperrors.ErrMsgFailedToReadConfig, err)
	}
	return decode(v, path)
}

// LoadFromYAML loads config from YAML bytes - helper for tests
func LoadFromYAML(data []byte) (*Config, error) {
	v := newViper(nil)
	v.SetConfigType("yaml")

	if err := v.ReadConfig(strings.NewReader(string(data))); err != nil {
		return nil, fmt.Errorf("%s: %w", imperrors.ErrMsgFailedToReadConfig, err)
	}
	return decode(v, "")
}

func decode(v *viper.Viper, path string) (*Config, error) {
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("%s: %w", imperrors.ErrMsgFailedToUnmarshalConfig, err)
	}
	config.Path = path

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", imperrors.ErrMsgInvalidConfig, err)
	}
	return &config, nil
}

// Discover returns the configuration file that applies to target: the nearest
// project file above it, else the user file under XDG_CONFIG_HOME, else ""
func Discover(fs afero.Fs, target string) string {
	if path := utils.FindConfigFile(fs, target, FileNames); path != "" {
		return path
	}
	userFile := UserConfigPath()
	if ok, _ := afero.Exists(fs, userFile); ok {
		return userFile
	}
	return ""
}

// UserConfigPath is the per-user configuration file location
func UserConfigPath() string {
	return filepath.Join(xdg.ConfigHome, AppName, "config.yaml")
}

// LoadFor discovers and loads the configuration for target, falling back to defaults
func LoadFor(fs afero.Fs, target string) (*Config, error) {
	path := Discover(fs, target)
	if path == "" {
		return Default()
	}
	return Load(fs, path)
}

// Validate performs comprehensive config validation
func (c *Config) Validate() error {
	if _, err := engine.ParseUnmatchedPolicy(c.Unmatched); err != nil {
		return err
	}
	if _, err := c.QuoteChar(); err != nil {
		return err
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", c.Workers)
	}
	if len(c.Extensions) == 0 {
		return errors.New("extensions must not be empty")
	}
	for _, ext := range append(append([]string{}, c.Extensions...), c.StylesheetExtensions...) {
		if !strings.HasPrefix(ext, ".") {
			return fmt.Errorf("extension %q must start with a dot", ext)
		}
	}

	registry, err := c.Registry()
	if err != nil {
		return err
	}
	if _, err := registry.Lookup(c.Style); err != nil {
		return err
	}
	return nil
}

// QuoteChar maps the quote setting to a character; 0 keeps the file's own quotes
func (c *Config) QuoteChar() (byte, error) {
	switch strings.ToLower(c.Quote) {
	case "":
		return 0, nil
	case "single":
		return '\'', nil
	case "double":
		return '"', nil
	}
	return 0, fmt.Errorf("invalid quote %q: must be single or double", c.Quote)
}

// UnmatchedPolicy returns the parsed unmatched policy
func (c *Config) UnmatchedPolicy() (engine.UnmatchedPolicy, error) {
	return engine.ParseUnmatchedPolicy(c.Unmatched)
}

// Registry returns the built-in styles plus the styles declared in the config.
// A declared style may replace a built-in of the same name.
func (c *Config) Registry() (style.Registry, error) {
	registry := style.Builtins()
	for name, raw := range c.Styles {
		def, err := style.Decode(raw)
		if err != nil {
			return nil, fmt.Errorf("%s %q: %w", imperrors.ErrMsgInvalidStyleDefinition, name, err)
		}
		if err := registry.Register(name, def); err != nil {
			return nil, err
		}
	}
	return registry, nil
}

// Definition resolves the selected style
func (c *Config) Definition() (style.Definition, error) {
	registry, err := c.Registry()
	if err != nil {
		return nil, err
	}
	return registry.Lookup(c.Style)
}
