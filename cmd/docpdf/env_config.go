package main

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	docpdf "github.com/alnah/go-docpdf"
	"github.com/alnah/go-docpdf/internal/config"
	"github.com/alnah/go-docpdf/internal/hints"
	"github.com/alnah/go-docpdf/internal/observability"
)

// loadConfig returns the defaults when name is empty, otherwise the named
// or given file. A missing file carries the paths that were tried.
func loadConfig(name string) (*config.Config, error) {
	if name == "" {
		return config.DefaultConfig(), nil
	}
	cfg, err := config.LoadConfig(name)
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) && !strings.ContainsAny(name, `/\`) {
			return nil, fmt.Errorf("loading config: %w%s", err, hints.ForConfigNotFound(config.SearchPaths(name)))
		}
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// newLogger builds the logger from the config, with --verbose and --quiet
// taking precedence over logging.level.
func newLogger(f commonFlags, cfg *config.Config) (*zap.Logger, error) {
	level := cfg.Logging.Level
	format := cfg.Logging.Format
	if f.logLevel != "" {
		level = f.logLevel
	}
	if f.logFormat != "" {
		format = f.logFormat
	}
	switch {
	case f.verbose:
		level = "debug"
	case f.quiet:
		level = "error"
	}
	return observability.NewLogger(level, format)
}

// newRenderer builds a renderer from the config. The environment's options
// are applied last.
func newRenderer(cfg *config.Config, logger *zap.Logger, env *Environment) (*docpdf.Renderer, error) {
	timeout, err := cfg.FontTimeout()
	if err != nil {
		return nil, err
	}
	themes, err := cfg.CustomThemes()
	if err != nil {
		return nil, err
	}

	opts := []docpdf.Option{
		docpdf.WithLogger(logger),
		docpdf.WithFontTable(cfg.FontTable()),
		docpdf.WithFontTimeout(timeout),
		docpdf.WithThemes(themes...),
		docpdf.WithClock(env.Now),
	}
	return docpdf.NewRenderer(append(opts, env.Options...)...)
}

// renderOptions converts the merged config into per-render options.
func renderOptions(cfg *config.Config) docpdf.RenderOptions {
	return docpdf.RenderOptions{
		Locale:           cfg.Locale,
		DocumentType:     cfg.DocumentType,
		Template:         cfg.Template,
		Theme:            cfg.Theme,
		IncludeWatermark: cfg.Watermark.Enabled,
		WatermarkText:    cfg.Watermark.Text,
		AccentColor:      cfg.AccentColor,
		CompanyLogo:      cfg.Logo,
		WebsiteURL:       cfg.WebsiteURL,
		TextDirection:    cfg.TextDirection,
		DateFormat:       cfg.DateFormat,
		PageSize:         cfg.PageSize,
	}
}

// mergeFlags merges CLI flags into config. CLI values override config values.
func mergeFlags(f *renderFlags, cfg *config.Config) {
	d := f.document
	for _, m := range []struct {
		flag string
		dst  *string
	}{
		{d.locale, &cfg.Locale},
		{d.docType, &cfg.DocumentType},
		{d.template, &cfg.Template},
		{d.theme, &cfg.Theme},
		{d.pageSize, &cfg.PageSize},
		{d.direction, &cfg.TextDirection},
		{d.dateFormat, &cfg.DateFormat},
		{f.branding.accent, &cfg.AccentColor},
		{f.branding.logo, &cfg.Logo},
		{f.branding.website, &cfg.WebsiteURL},
		{f.output.dir, &cfg.Output.Dir},
		{f.fontTimeout, &cfg.Fonts.Timeout},
	} {
		if m.flag != "" {
			*m.dst = m.flag
		}
	}

	if f.watermark.text != "" {
		cfg.Watermark.Text = f.watermark.text
		cfg.Watermark.Enabled = true
	}
	if f.watermark.enabled {
		cfg.Watermark.Enabled = true
	}
	if f.watermark.disabled {
		cfg.Watermark.Enabled = false
	}
	if f.workers > 0 {
		cfg.Workers = f.workers
	}
}
