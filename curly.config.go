package curly

import (
	"bytes"
	"errors"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the file form of engine options:
//
//	delimiters:
//	  open: "<%"
//	  close: "%>"
//	builtins:
//	  text: true
//	  math: true
//	  os: false
//	variables:
//	  name: World
//	  retries: 3
//	store:
//	  driver: filesystem
//	  dsn: ./templates
type Config struct {
	Delimiters *DelimiterConfig `yaml:"delimiters,omitempty"`
	Builtins   *BuiltinsConfig  `yaml:"builtins,omitempty"`
	Variables  map[string]any   `yaml:"variables,omitempty"`
	Store      *StoreConfig     `yaml:"store,omitempty"`
}

// DelimiterConfig holds the expression tokens
type DelimiterConfig struct {
	Open  string `yaml:"open"`
	Close string `yaml:"close"`
}

// BuiltinsConfig toggles builtin modules; unset fields keep the default
type BuiltinsConfig struct {
	Text *bool `yaml:"text,omitempty"`
	Math *bool `yaml:"math,omitempty"`
	OS   *bool `yaml:"os,omitempty"`
}

// StoreConfig names a registered storage driver and its connection string
type StoreConfig struct {
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn"`
}

// LoadConfig reads and decodes a YAML config file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, NewConfigError(ErrMsgReadConfig, path, err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return nil, NewConfigError(ErrMsgParseConfig, path, err)
	}
	return cfg, nil
}

// ParseConfig decodes YAML config data. Unknown keys are rejected; empty
// input yields an empty config.
func ParseConfig(data []byte) (*Config, error) {
	cfg := &Config{}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return cfg, nil
}

// Options converts the config to engine options. The store section is not
// included; see OpenStore.
func (c *Config) Options() []Option {
	var opts []Option
	if c.Delimiters != nil {
		opts = append(opts, WithDelimiter(c.Delimiters.Open, c.Delimiters.Close))
	}
	if b := c.Builtins; b != nil {
		if b.Text != nil {
			opts = append(opts, WithTextBuiltins(*b.Text))
		}
		if b.Math != nil {
			opts = append(opts, WithMathBuiltins(*b.Math))
		}
		if b.OS != nil {
			opts = append(opts, WithOSBuiltins(*b.OS))
		}
	}
	if len(c.Variables) > 0 {
		opts = append(opts, WithVariables(c.Variables))
	}
	return opts
}

// OpenStore opens the configured store through the driver registry.
// It returns nil, nil when no store is configured.
func (c *Config) OpenStore() (Store, error) {
	if c.Store == nil || c.Store.Driver == "" {
		return nil, nil
	}
	return OpenStore(c.Store.Driver, c.Store.DSN)
}
