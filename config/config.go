package config

import (
	"context"
	"fmt"
	"github.com/pkg/errors"
	"github.com/viant/afs"
	"github.com/viant/csvx/row"
	"gopkg.in/yaml.v3"
	"strings"
	"unicode/utf8"
)

// Character is a single character setting, it is always written double quoted so that
// control characters such as the record separator survive a YAML round trip
type Character string

// MarshalYAML implements yaml.Marshaler
func (c Character) MarshalYAML() (interface{}, error) {
	return &yaml.Node{Kind: yaml.ScalarNode, Style: yaml.DoubleQuotedStyle, Value: string(c)}, nil
}

// Config represents codec configuration
type Config struct {
	FieldSeparator        Character `yaml:"fieldSeparator"`
	RecordSeparator       Character `yaml:"recordSeparator"`
	RecordSeparatorPrefix Character `yaml:"recordSeparatorPrefix"`
	Quote                 Character `yaml:"quote"`
	//DefaultValue stands for an absent cell, cells equal to it are read as absent
	DefaultValue   string `yaml:"defaultValue"`
	TrimWhitespace bool   `yaml:"trimWhitespace"`
	//NullMarker is the whole raw value of an explicit null
	NullMarker string `yaml:"nullMarker"`
	//DeferMarker prefixes a JSON rendered subtree
	DeferMarker       string  `yaml:"deferMarker"`
	IgnoreUnknownKeys bool    `yaml:"ignoreUnknownKeys"`
	Logging           Logging `yaml:"logging"`
}

// Logging contains logging configuration
type Logging struct {
	Level string `yaml:"level"`
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		FieldSeparator:        ",",
		RecordSeparator:       "\n",
		RecordSeparatorPrefix: "\r",
		Quote:                 `"`,
		TrimWhitespace:        true,
		NullMarker:            "null",
		DeferMarker:           "%",
		Logging: Logging{
			Level: "info",
		},
	}
}

// Validate checks configuration
func (c *Config) Validate() error {
	for _, item := range []struct {
		name     string
		value    Character
		optional bool
	}{
		{"fieldSeparator", c.FieldSeparator, false},
		{"recordSeparator", c.RecordSeparator, false},
		{"recordSeparatorPrefix", c.RecordSeparatorPrefix, true},
		{"quote", c.Quote, false},
	} {
		if item.optional && item.value == "" {
			continue
		}
		if utf8.RuneCountInString(string(item.value)) != 1 {
			return fmt.Errorf("invalid %v: expected single character, but had %q", item.name, item.value)
		}
	}
	if c.NullMarker == "" {
		return fmt.Errorf("nullMarker was empty")
	}
	if c.DeferMarker == "" {
		return fmt.Errorf("deferMarker was empty")
	}
	if c.NullMarker == c.DefaultValue {
		return fmt.Errorf("nullMarker and defaultValue share the same value %q", c.NullMarker)
	}
	if strings.HasPrefix(c.NullMarker, c.DeferMarker) {
		return fmt.Errorf("nullMarker %q can not start with deferMarker %q", c.NullMarker, c.DeferMarker)
	}
	switch strings.ToLower(c.Logging.Level) {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid logging level: %v", c.Logging.Level)
	}
	return c.Row().Validate()
}

// Row returns row codec configuration
func (c *Config) Row() *row.Config {
	return &row.Config{
		FieldSeparator:        firstRune(c.FieldSeparator),
		RecordSeparator:       firstRune(c.RecordSeparator),
		RecordSeparatorPrefix: firstRune(c.RecordSeparatorPrefix),
		Quote:                 firstRune(c.Quote),
		DefaultValue:          c.DefaultValue,
		TrimWhitespace:        c.TrimWhitespace,
	}
}

// Clone returns a copy
func (c *Config) Clone() *Config {
	result := *c
	return &result
}

// Load loads YAML configuration from URL overlaying defaults
func Load(ctx context.Context, URL string) (*Config, error) {
	fs := afs.New()
	data, err := fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load config: %v", URL)
	}
	return Parse(data)
}

// Parse parses YAML configuration overlaying defaults
func Parse(data []byte) (*Config, error) {
	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, errors.Wrap(err, "failed to parse config")
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Save writes YAML configuration to URL
func (c *Config) Save(ctx context.Context, URL string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return errors.Wrap(err, "failed to marshal config")
	}
	fs := afs.New()
	if err = fs.Upload(ctx, URL, 0644, strings.NewReader(string(data))); err != nil {
		return errors.Wrapf(err, "failed to save config: %v", URL)
	}
	return nil
}

func firstRune(value Character) rune {
	if value == "" {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(string(value))
	return r
}
