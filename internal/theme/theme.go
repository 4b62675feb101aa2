// Package theme defines the visual themes applied to rendered documents.
//
// Themes are plain values. A Registry is built once with the built-in themes
// plus any custom ones loaded from configuration and is read-only afterwards,
// so it can be shared between concurrent renders without locking.
package theme

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// DefaultName is the theme used when no theme or an unknown theme is requested.
const DefaultName = "default"

// Sentinel errors for theme operations.
var (
	ErrInvalidColor     = errors.New("invalid hex color")
	ErrEmptyThemeName   = errors.New("theme name cannot be empty")
	ErrDuplicateTheme   = errors.New("duplicate theme name")
	ErrInvalidTypeScale = errors.New("invalid typography size")
)

// RGB is a color with 8-bit channels.
type RGB struct {
	R, G, B int
}

// Hex returns the color as #rrggbb.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Colors is the theme palette.
type Colors struct {
	Primary         RGB
	Secondary       RGB
	Accent          RGB
	Surface         RGB
	Text            RGB
	Muted           RGB
	Border          RGB
	TableHeader     RGB
	TableHeaderText RGB
	TableRow        RGB
	TableRowAlt     RGB
}

// Typography holds font sizes in points and the line height factor.
type Typography struct {
	TitleSize   float64
	HeadingSize float64
	BodySize    float64
	SmallSize   float64
	LineHeight  float64
}

// Spacing holds distances in millimeters.
type Spacing struct {
	Margin       float64
	SectionGap   float64
	ParagraphGap float64
	CellPadding  float64
}

// Effects toggles decorative drawing.
type Effects struct {
	GradientHeader bool
	Shadows        bool
}

// Theme is an immutable visual configuration.
type Theme struct {
	Name       string
	Colors     Colors
	Typography Typography
	Spacing    Spacing
	Effects    Effects
}

// LineHeight returns the body line height in millimeters.
func (t Theme) LineHeight() float64 {
	return PointsToMM(t.Typography.BodySize) * t.Typography.LineHeight
}

// WithAccent returns a copy of t using accent as primary and accent color.
func (t Theme) WithAccent(accent RGB) Theme {
	t.Colors.Primary = accent
	t.Colors.Accent = accent
	t.Colors.TableHeader = accent
	return t
}

// PointsToMM converts a font size in points to millimeters.
func PointsToMM(pt float64) float64 {
	return pt * 25.4 / 72
}

// ParseHexColor parses #rgb or #rrggbb (the leading # is optional).
func ParseHexColor(s string) (RGB, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	switch len(h) {
	case 3:
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	case 6:
	default:
		return RGB{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return RGB{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	return RGB{R: int(v >> 16 & 0xff), G: int(v >> 8 & 0xff), B: int(v & 0xff)}, nil
}

// Registry resolves theme names. The zero value is not usable; use NewRegistry.
type Registry struct {
	themes map[string]Theme
	names  []string
}

// NewRegistry returns a registry with the built-in themes and the given
// custom themes. Custom themes may replace built-ins except the default.
func NewRegistry(custom ...Theme) (*Registry, error) {
	r := &Registry{themes: make(map[string]Theme, len(builtins)+len(custom))}
	for _, t := range builtins {
		r.themes[t.Name] = t
	}

	seen := make(map[string]bool, len(custom))
	for _, t := range custom {
		name := strings.ToLower(strings.TrimSpace(t.Name))
		if name == "" {
			return nil, ErrEmptyThemeName
		}
		if seen[name] || name == DefaultName {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateTheme, name)
		}
		if t.Typography.BodySize <= 0 || t.Typography.LineHeight <= 0 {
			return nil, fmt.Errorf("%w: theme %s", ErrInvalidTypeScale, name)
		}
		seen[name] = true
		t.Name = name
		r.themes[name] = t
	}

	r.names = make([]string, 0, len(r.themes))
	for name := range r.themes {
		r.names = append(r.names, name)
	}
	sort.Strings(r.names)
	return r, nil
}

// Resolve returns the named theme, or the default theme when the name is
// empty or unknown. It never fails.
func (r *Registry) Resolve(name string) Theme {
	if t, ok := r.themes[strings.ToLower(strings.TrimSpace(name))]; ok {
		return t
	}
	return r.themes[DefaultName]
}

// Has reports whether name is a registered theme.
func (r *Registry) Has(name string) bool {
	_, ok := r.themes[strings.ToLower(strings.TrimSpace(name))]
	return ok
}

// Names returns the registered theme names in sorted order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// Default returns the default theme.
func Default() Theme {
	return builtins[0]
}
