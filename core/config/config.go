// Package config loads devmark settings from defaults, an optional YAML file
// and DEVMARK_* environment variables, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/gaurav-prasanna/devmark/core/markdown"
	"github.com/gaurav-prasanna/devmark/core/normalize"
)

// EnvPrefix prefixes every environment override, e.g. DEVMARK_HEADING_STYLE.
const EnvPrefix = "DEVMARK"

// Config is the full devmark configuration.
type Config struct {
	markdown.Options `mapstructure:",squash" yaml:",inline"`

	Engine         normalize.Engine `mapstructure:"engine" yaml:"engine"`
	OutputDir      string           `mapstructure:"output_dir" yaml:"output_dir,omitempty"`
	FrontMatter    bool             `mapstructure:"front_matter" yaml:"front_matter"`
	HTTPTimeoutSec int              `mapstructure:"http_timeout_sec" yaml:"http_timeout_sec"`
}

// Default returns the configuration used when nothing overrides it.
func Default() *Config {
	return &Config{
		Options:        markdown.DefaultOptions(),
		Engine:         normalize.EngineDevTo,
		HTTPTimeoutSec: 30,
	}
}

// HTTPTimeout returns the fetch timeout as a duration.
func (c *Config) HTTPTimeout() time.Duration {
	return time.Duration(c.HTTPTimeoutSec) * time.Second
}

// Validate checks option values and the strip/convert exclusivity.
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.HeadingStyle, validation.Required,
			validation.In(markdown.ATX, markdown.ATXClosed, markdown.Underlined)),
		validation.Field(&c.Bullets, validation.Required),
		validation.Field(&c.Engine, validation.Required, validation.In(engines()...)),
		validation.Field(&c.Convert, validation.When(len(c.Strip) > 0,
			validation.Empty.Error("cannot be combined with strip"))),
		validation.Field(&c.HTTPTimeoutSec, validation.Min(0)),
	)
}

func engines() []any {
	out := make([]any, len(normalize.Engines))
	for i, e := range normalize.Engines {
		out[i] = e
	}
	return out
}

// DefaultPath returns ~/.devmark/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".devmark", "config.yaml"), nil
}

// Load reads configuration. An explicit cfgFile must exist; without one the
// default location is tried and silently skipped when absent.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	d := Default()
	v.SetDefault("strip", []string{})
	v.SetDefault("convert", []string{})
	v.SetDefault("heading_style", string(d.HeadingStyle))
	v.SetDefault("bullets", d.Bullets)
	v.SetDefault("no_autolinks", d.NoAutolinks)
	v.SetDefault("engine", string(d.Engine))
	v.SetDefault("output_dir", "")
	v.SetDefault("front_matter", false)
	v.SetDefault("http_timeout_sec", d.HTTPTimeoutSec)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", cfgFile, err)
		}
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			v.AddConfigPath(filepath.Join(home, ".devmark"))
			v.SetConfigName("config")
			v.SetConfigType("yaml")
			if err := v.ReadInConfig(); err != nil {
				var notFound viper.ConfigFileNotFoundError
				if !errors.As(err, &notFound) {
					return nil, fmt.Errorf("read config: %w", err)
				}
			}
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &c, nil
}

// Save writes c as YAML to path, or to DefaultPath when path is empty.
func Save(c *Config, path string) error {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return err
		}
		path = p
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
