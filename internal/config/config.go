package config

import (
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/mcncl/textcodec/csvtext"
)

// Config represents the complete configuration for textcodec
type Config struct {
	JSON    JSONConfig    `yaml:"json"`
	CSV     CSVConfig     `yaml:"csv"`
	Convert ConvertConfig `yaml:"convert"`
	Dev     DevConfig     `yaml:"dev"`
}

// JSONConfig controls JSON output formatting
type JSONConfig struct {
	// Indent is the number of spaces per nesting level when pretty-printing.
	Indent int `yaml:"indent"`
	// Compact suppresses pretty-printing entirely.
	Compact bool `yaml:"compact"`
}

// CSVConfig holds the dialect characters. Each entry is a single character,
// with the escape spellings \t, \n, and \r accepted.
type CSVConfig struct {
	Quote    string `yaml:"quote"`
	FieldSep string `yaml:"field_sep"`
	RowSep   string `yaml:"row_sep"`
}

// ConvertConfig controls CSV<->JSON conversion
type ConvertConfig struct {
	// Headers treats CSV row 0 as column names, converting to JSON objects.
	Headers bool `yaml:"headers"`
	// KeyStyle restyles header-derived keys: snake, camel, pascal, or original.
	KeyStyle string `yaml:"key_style"`
}

// DevConfig contains development/debug options
type DevConfig struct {
	Debug bool `yaml:"debug"`
}

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	return &Config{
		JSON: JSONConfig{
			Indent:  2,
			Compact: false,
		},
		CSV: CSVConfig{
			Quote:    `"`,
			FieldSep: ",",
			RowSep:   `\n`,
		},
		Convert: ConvertConfig{
			Headers:  false,
			KeyStyle: "original",
		},
		Dev: DevConfig{
			Debug: false,
		},
	}
}

// LoadConfig loads configuration from a YAML file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Start with defaults
	cfg := NewConfig()

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// FindConfigFile searches for a config file in current directory and parents
func FindConfigFile() string {
	configNames := []string{".textcodec.yml", ".textcodec.yaml", "textcodec.yml", "textcodec.yaml"}

	currentDir, err := os.Getwd()
	if err != nil {
		return ""
	}

	// Search up the directory tree
	for {
		for _, name := range configNames {
			configPath := filepath.Join(currentDir, name)
			if _, err := os.Stat(configPath); err == nil {
				return configPath
			}
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root directory
			break
		}
		currentDir = parentDir
	}

	return ""
}

// Validate checks that the configured values are usable: a valid key style,
// a non-negative indent, and a CSV dialect of three distinct characters.
func (c *Config) Validate() error {
	switch c.Convert.KeyStyle {
	case "snake", "camel", "pascal", "original":
	default:
		return fmt.Errorf("invalid key_style '%s': expected snake, camel, pascal, or original", c.Convert.KeyStyle)
	}

	if c.JSON.Indent < 0 {
		return fmt.Errorf("invalid indent %d: must not be negative", c.JSON.Indent)
	}

	if _, err := c.Dialect(); err != nil {
		return err
	}
	return nil
}

// Dialect resolves the configured CSV characters into a csvtext.Dialect.
func (c *Config) Dialect() (csvtext.Dialect, error) {
	quote, err := ResolveChar(c.CSV.Quote)
	if err != nil {
		return csvtext.Dialect{}, fmt.Errorf("invalid quote: %w", err)
	}
	fieldSep, err := ResolveChar(c.CSV.FieldSep)
	if err != nil {
		return csvtext.Dialect{}, fmt.Errorf("invalid field_sep: %w", err)
	}
	rowSep, err := ResolveChar(c.CSV.RowSep)
	if err != nil {
		return csvtext.Dialect{}, fmt.Errorf("invalid row_sep: %w", err)
	}
	d := csvtext.Dialect{Quote: quote, FieldSep: fieldSep, RowSep: rowSep}
	if err := d.Validate(); err != nil {
		return csvtext.Dialect{}, err
	}
	return d, nil
}

// ResolveChar converts a one-character string into a rune, accepting the
// escape spellings \t, \n, and \r for characters that are awkward to put in
// YAML or on a command line.
func ResolveChar(s string) (rune, error) {
	switch s {
	case `\t`:
		return '\t', nil
	case `\n`:
		return '\n', nil
	case `\r`:
		return '\r', nil
	}
	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("expected a single character, got %q", s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r, nil
}
