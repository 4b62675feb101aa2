package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/alnah/go-docpdf/internal/theme"
)

// CustomThemes builds the configured themes. Each starts from its base
// theme (the default theme when Base is empty or unknown) with the
// configured values applied over it.
func (c *Config) CustomThemes() ([]theme.Theme, error) {
	if len(c.Themes) == 0 {
		return nil, nil
	}
	builtins, err := theme.NewRegistry()
	if err != nil {
		return nil, err
	}
	out := make([]theme.Theme, 0, len(c.Themes))
	for i, tc := range c.Themes {
		t, err := tc.Build(builtins.Resolve(tc.Base))
		if err != nil {
			return nil, fmt.Errorf("%w: themes[%d]: %v", ErrInvalidValue, i, err)
		}
		out = append(out, t)
	}
	return out, nil
}

// Build applies tc over base.
func (tc ThemeConfig) Build(base theme.Theme) (theme.Theme, error) {
	t := base
	t.Name = strings.TrimSpace(tc.Name)
	if t.Name == "" {
		return theme.Theme{}, theme.ErrEmptyThemeName
	}
	if err := validateFieldLength("name", t.Name, MaxNameLength); err != nil {
		return theme.Theme{}, err
	}

	fields := colorFields(&t.Colors)
	keys := make([]string, 0, len(tc.Colors))
	for k := range tc.Colors {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		dst, ok := fields[strings.ToLower(k)]
		if !ok {
			return theme.Theme{}, fmt.Errorf("unknown color %q", k)
		}
		rgb, err := theme.ParseHexColor(tc.Colors[k])
		if err != nil {
			return theme.Theme{}, fmt.Errorf("color %s: %w", k, err)
		}
		*dst = rgb
	}

	override(&t.Typography.TitleSize, tc.Typography.TitleSize)
	override(&t.Typography.HeadingSize, tc.Typography.HeadingSize)
	override(&t.Typography.BodySize, tc.Typography.BodySize)
	override(&t.Typography.SmallSize, tc.Typography.SmallSize)
	override(&t.Typography.LineHeight, tc.Typography.LineHeight)
	override(&t.Spacing.Margin, tc.Spacing.Margin)
	override(&t.Spacing.SectionGap, tc.Spacing.SectionGap)
	override(&t.Spacing.ParagraphGap, tc.Spacing.ParagraphGap)
	override(&t.Spacing.CellPadding, tc.Spacing.CellPadding)
	if tc.Effects.GradientHeader != nil {
		t.Effects.GradientHeader = *tc.Effects.GradientHeader
	}
	if tc.Effects.Shadows != nil {
		t.Effects.Shadows = *tc.Effects.Shadows
	}

	if t.Typography.BodySize < 4 || t.Typography.BodySize > 24 {
		return theme.Theme{}, fmt.Errorf("%w: bodySize %.1f (must be 4..24)", theme.ErrInvalidTypeScale, t.Typography.BodySize)
	}
	if t.Spacing.Margin < 5 || t.Spacing.Margin > 50 {
		return theme.Theme{}, fmt.Errorf("margin %.1f mm (must be 5..50)", t.Spacing.Margin)
	}
	return t, nil
}

func override(dst *float64, v float64) {
	if v > 0 {
		*dst = v
	}
}

func colorFields(c *theme.Colors) map[string]*theme.RGB {
	return map[string]*theme.RGB{
		"primary":         &c.Primary,
		"secondary":       &c.Secondary,
		"accent":          &c.Accent,
		"surface":         &c.Surface,
		"text":            &c.Text,
		"muted":           &c.Muted,
		"border":          &c.Border,
		"tableheader":     &c.TableHeader,
		"tableheadertext": &c.TableHeaderText,
		"tablerow":        &c.TableRow,
		"tablerowalt":     &c.TableRowAlt,
	}
}
