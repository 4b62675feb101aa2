// Package config loads the YAML configuration shared by the CLI and by
// programs embedding the renderer.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/alnah/go-docpdf/internal/dateutil"
	"github.com/alnah/go-docpdf/internal/document"
	"github.com/alnah/go-docpdf/internal/fileutil"
	"github.com/alnah/go-docpdf/internal/fonts"
	"github.com/alnah/go-docpdf/internal/layout"
	"github.com/alnah/go-docpdf/internal/script"
	"github.com/alnah/go-docpdf/internal/theme"
	"github.com/alnah/go-docpdf/internal/yamlutil"
)

// AppDir is the directory under the user config directory searched for
// named configurations.
const AppDir = "go-docpdf"

var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Field length limits.
const (
	MaxLocaleLength        = 35   // BCP 47 with extensions
	MaxNameLength          = 50   // theme, template, document type
	MaxURLLength           = 2048 // browser limit
	MaxPathLength          = 4096
	MaxWatermarkTextLength = 50 // "DRAFT", "CONFIDENTIAL"
	MaxColorLength         = 7  // "#rrggbb"
	MaxWorkers             = 64
)

// Config holds the rendering defaults.
type Config struct {
	Locale        string          `yaml:"locale"`       // empty follows the document, then en-US
	DocumentType  string          `yaml:"documentType"` // empty reads documentType from the JSON
	Template      string          `yaml:"template"`
	Theme         string          `yaml:"theme"`
	PageSize      string          `yaml:"pageSize"`
	TextDirection string          `yaml:"textDirection"` // "ltr", "rtl" or empty for the locale's
	DateFormat    string          `yaml:"dateFormat"`    // tokens such as "DD/MM/YYYY"
	AccentColor   string          `yaml:"accentColor"`
	Logo          string          `yaml:"logo"` // path or http(s) URL
	WebsiteURL    string          `yaml:"websiteUrl"`
	Watermark     WatermarkConfig `yaml:"watermark"`
	Output        OutputConfig    `yaml:"output"`
	Fonts         FontsConfig     `yaml:"fonts"`
	Themes        []ThemeConfig   `yaml:"themes"`
	Logging       LoggingConfig   `yaml:"logging"`
	Workers       int             `yaml:"workers"` // 0 sizes the pool from GOMAXPROCS
}

// WatermarkConfig enables the diagonal watermark.
type WatermarkConfig struct {
	Enabled bool   `yaml:"enabled"`
	Text    string `yaml:"text"` // empty uses "DRAFT" or "CONFIDENTIAL"
}

// OutputConfig defines where rendered files go.
type OutputConfig struct {
	Dir string `yaml:"dir"` // empty writes next to the input
}

// FontsConfig tunes font provisioning.
type FontsConfig struct {
	Timeout string      `yaml:"timeout"` // Go duration, e.g. "30s"
	Sources fonts.Table `yaml:"sources"` // merged over the built-in table by key
}

// LoggingConfig configures the zap logger.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // "console" or "json"
}

// ThemeConfig declares a custom theme as overrides on a built-in one.
type ThemeConfig struct {
	Name       string            `yaml:"name"`
	Base       string            `yaml:"base"`
	Colors     map[string]string `yaml:"colors"` // primary, secondary, ... tableRowAlt
	Typography TypographyConfig  `yaml:"typography"`
	Spacing    SpacingConfig     `yaml:"spacing"`
	Effects    EffectsConfig     `yaml:"effects"`
}

// TypographyConfig overrides font sizes. Zero keeps the base value.
type TypographyConfig struct {
	TitleSize   float64 `yaml:"titleSize"`
	HeadingSize float64 `yaml:"headingSize"`
	BodySize    float64 `yaml:"bodySize"`
	SmallSize   float64 `yaml:"smallSize"`
	LineHeight  float64 `yaml:"lineHeight"`
}

// SpacingConfig overrides distances in millimeters. Zero keeps the base value.
type SpacingConfig struct {
	Margin       float64 `yaml:"margin"`
	SectionGap   float64 `yaml:"sectionGap"`
	ParagraphGap float64 `yaml:"paragraphGap"`
	CellPadding  float64 `yaml:"cellPadding"`
}

// EffectsConfig overrides decorations. Nil keeps the base value.
type EffectsConfig struct {
	GradientHeader *bool `yaml:"gradientHeader"`
	Shadows        *bool `yaml:"shadows"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Template: "modern",
		Theme:    theme.DefaultName,
		PageSize: layout.DefaultPageSize,
		Fonts:    FontsConfig{Timeout: fonts.DefaultTimeout.String()},
		Logging:  LoggingConfig{Level: "info", Format: "console"},
	}
}

// Validate checks field lengths and the values that have a closed set of
// choices. Theme and template names are not checked: unknown names fall
// back to the defaults at render time.
func (c *Config) Validate() error {
	lengths := []struct {
		field string
		value string
		max   int
	}{
		{"locale", c.Locale, MaxLocaleLength},
		{"documentType", c.DocumentType, MaxNameLength},
		{"template", c.Template, MaxNameLength},
		{"theme", c.Theme, MaxNameLength},
		{"dateFormat", c.DateFormat, dateutil.MaxDateFormatLength},
		{"accentColor", c.AccentColor, MaxColorLength},
		{"logo", c.Logo, MaxPathLength},
		{"websiteUrl", c.WebsiteURL, MaxURLLength},
		{"watermark.text", c.Watermark.Text, MaxWatermarkTextLength},
		{"output.dir", c.Output.Dir, MaxPathLength},
	}
	for _, l := range lengths {
		if err := validateFieldLength(l.field, l.value, l.max); err != nil {
			return err
		}
	}

	if c.DocumentType != "" {
		if _, err := document.ParseType(c.DocumentType); err != nil {
			return fmt.Errorf("%w: documentType: %v", ErrInvalidValue, err)
		}
	}
	if _, err := layout.ParsePageSize(c.PageSize); err != nil {
		return fmt.Errorf("%w: pageSize: %v", ErrInvalidValue, err)
	}
	if c.TextDirection != "" {
		if _, ok := script.ParseDirection(c.TextDirection); !ok {
			return fmt.Errorf("%w: textDirection %q (must be ltr or rtl)", ErrInvalidValue, c.TextDirection)
		}
	}
	if c.DateFormat != "" {
		if _, err := dateutil.Parse(c.DateFormat); err != nil {
			return fmt.Errorf("%w: dateFormat: %v", ErrInvalidValue, err)
		}
	}
	if c.AccentColor != "" {
		if _, err := theme.ParseHexColor(c.AccentColor); err != nil {
			return fmt.Errorf("%w: accentColor: %v", ErrInvalidValue, err)
		}
	}
	if c.WebsiteURL != "" && !fileutil.IsURL(c.WebsiteURL) {
		return fmt.Errorf("%w: websiteUrl %q (must start with http:// or https://)", ErrInvalidValue, c.WebsiteURL)
	}
	if c.Workers < 0 || c.Workers > MaxWorkers {
		return fmt.Errorf("%w: workers %d (must be 0..%d)", ErrInvalidValue, c.Workers, MaxWorkers)
	}
	if _, err := c.FontTimeout(); err != nil {
		return err
	}
	if err := validateSources(c.Fonts.Sources); err != nil {
		return err
	}
	if _, err := c.CustomThemes(); err != nil {
		return err
	}
	return nil
}

// FontTimeout parses fonts.timeout. Empty means fonts.DefaultTimeout.
func (c *Config) FontTimeout() (time.Duration, error) {
	if strings.TrimSpace(c.Fonts.Timeout) == "" {
		return fonts.DefaultTimeout, nil
	}
	d, err := time.ParseDuration(c.Fonts.Timeout)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("%w: fonts.timeout %q (use a positive duration such as 30s)", ErrInvalidValue, c.Fonts.Timeout)
	}
	return d, nil
}

// FontTable returns the built-in font table with configured bundles
// replacing entries of the same key.
func (c *Config) FontTable() fonts.Table {
	table := fonts.DefaultTable()
	for key, b := range c.Fonts.Sources {
		table[strings.ToLower(key)] = b
	}
	return table
}

func validateSources(t fonts.Table) error {
	keys := make([]string, 0, len(t))
	for k := range t {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		b := t[k]
		if b.Primary == "" || len(b.Variants) == 0 {
			return fmt.Errorf("%w: fonts.sources.%s needs a primary family and variants", ErrInvalidValue, k)
		}
		for i, v := range b.Variants {
			if v.Key == "" || v.Family == "" || v.Source == "" {
				return fmt.Errorf("%w: fonts.sources.%s.variants[%d] needs key, family and source", ErrInvalidValue, k, i)
			}
		}
	}
	return nil
}

func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// LoadConfig loads configuration from a file path or config name, over
// DefaultConfig. A name is searched with SearchPaths. A missing file is an
// error.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	path := nameOrPath
	if !isFilePath(nameOrPath) {
		var err error
		if path, err = resolveConfigPath(nameOrPath); err != nil {
			return nil, err
		}
	}

	cfg := DefaultConfig()
	if err := yamlutil.Load(path, cfg); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SearchPaths lists the files tried for a config name, in order: the
// current directory, then the user config directory, each with .yaml then
// .yml.
func SearchPaths(name string) []string {
	exts := []string{".yaml", ".yml"}
	paths := make([]string, 0, 2*len(exts))
	for _, ext := range exts {
		paths = append(paths, name+ext)
	}
	if dir, err := os.UserConfigDir(); err == nil {
		for _, ext := range exts {
			paths = append(paths, filepath.Join(dir, AppDir, name+ext))
		}
	}
	return paths
}

func isFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

func resolveConfigPath(name string) (string, error) {
	paths := SearchPaths(name)
	for _, p := range paths {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(paths, ", "))
}
