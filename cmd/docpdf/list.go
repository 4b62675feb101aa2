package main

import (
	"fmt"
	"text/tabwriter"

	"go.uber.org/zap"

	docpdf "github.com/alnah/go-docpdf"
	"github.com/alnah/go-docpdf/internal/config"
	"github.com/alnah/go-docpdf/internal/fonts"
	"github.com/alnah/go-docpdf/internal/theme"
)

// runThemes lists built-in and configured theme names.
func runThemes(args []string, env *Environment) error {
	f, _, err := parseListFlags("themes", args, env.Stderr)
	if err != nil {
		return usageError(err)
	}
	r, cfg, err := listRenderer(f, env)
	if err != nil {
		return err
	}

	for _, name := range r.Themes() {
		marker := ""
		if name == cfg.Theme {
			marker = " (default)"
		}
		fmt.Fprintf(env.Stdout, "%s%s\n", name, marker)
	}
	return nil
}

// runTemplates lists templates and document types.
func runTemplates(args []string, env *Environment) error {
	if _, _, err := parseListFlags("templates", args, env.Stderr); err != nil {
		return usageError(err)
	}

	fmt.Fprintln(env.Stdout, "Templates:")
	for _, t := range docpdf.Templates() {
		fmt.Fprintf(env.Stdout, "  %s\n", t)
	}
	fmt.Fprintln(env.Stdout, "Document types:")
	for _, t := range docpdf.DocumentTypes() {
		fmt.Fprintf(env.Stdout, "  %s\n", t)
	}
	return nil
}

// runFonts shows the bundle a locale resolves to, with the config's font
// source overrides applied. Nothing is downloaded.
func runFonts(args []string, env *Environment) error {
	f, rest, err := parseListFlags("fonts", args, env.Stderr)
	if err != nil {
		return usageError(err)
	}
	if len(rest) != 1 {
		printCommandUsage(env.Stderr, "fonts")
		return fmt.Errorf("%w: fonts takes exactly one locale", ErrUsage)
	}
	r, _, err := listRenderer(f, env)
	if err != nil {
		return err
	}

	key, b := r.FontBundle(rest[0])
	fmt.Fprintf(env.Stdout, "Locale:    %s\n", rest[0])
	fmt.Fprintf(env.Stdout, "Bundle:    %s\n", key)
	fmt.Fprintf(env.Stdout, "Primary:   %s\n", b.Primary)
	if b.Secondary != "" {
		fmt.Fprintf(env.Stdout, "Secondary: %s\n", b.Secondary)
	}
	fmt.Fprintln(env.Stdout)

	tw := tabwriter.NewWriter(env.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "KEY\tFAMILY\tSTYLE\tSOURCE")
	for _, v := range b.Variants {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", v.Key, v.Family, styleName(v.Style), v.Source)
	}
	return tw.Flush()
}

func styleName(style string) string {
	switch style {
	case fonts.StyleBold:
		return "bold"
	case fonts.StyleItalic:
		return "italic"
	case fonts.StyleBoldItalic:
		return "bold-italic"
	}
	return "regular"
}

// listRenderer builds a quiet renderer for the listing commands.
func listRenderer(f *commonFlags, env *Environment) (*docpdf.Renderer, *config.Config, error) {
	cfg, err := loadConfig(f.config)
	if err != nil {
		return nil, nil, err
	}
	if cfg.Theme == "" {
		cfg.Theme = theme.DefaultName
	}
	r, err := newRenderer(cfg, zap.NewNop(), env)
	if err != nil {
		return nil, nil, err
	}
	return r, cfg, nil
}
