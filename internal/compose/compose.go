// Package compose lays out invoices and agreements page by page.
//
// A composer is selected from a closed table keyed by document type and
// template. The three templates of a document type share one drawing
// algorithm and differ only in their Style.
package compose

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/alnah/go-docpdf/internal/document"
	"github.com/alnah/go-docpdf/internal/layout"
	"github.com/alnah/go-docpdf/internal/locale"
)

// ErrDocumentMismatch is returned when a composer receives a document of
// another type.
var ErrDocumentMismatch = errors.New("document does not match composer")

// Template selects a visual layout.
type Template string

const (
	TemplateModern  Template = "modern"
	TemplateClassic Template = "classic"
	TemplateMinimal Template = "minimal"
)

// Templates lists the available templates, default first.
func Templates() []Template {
	return []Template{TemplateModern, TemplateClassic, TemplateMinimal}
}

// ParseTemplate returns the named template. Unknown names yield
// TemplateModern and false.
func ParseTemplate(s string) (Template, bool) {
	switch Template(strings.ToLower(strings.TrimSpace(s))) {
	case TemplateModern:
		return TemplateModern, true
	case TemplateClassic:
		return TemplateClassic, true
	case TemplateMinimal:
		return TemplateMinimal, true
	}
	return TemplateModern, false
}

// Style holds the parameters that distinguish templates.
type Style struct {
	Template   Template
	HeaderBand bool // filled band behind the title on the first page
	PageAccent bool // thin accent bar at the top of every page
	Centered   bool // centered title and footer
	Rules      bool // horizontal rules between blocks
	Striped    bool // alternating table row fills
	Borders    bool // table cell borders
	Muted      bool // draw headings in the text color rather than the theme's primary
}

var styles = map[Template]Style{
	TemplateModern: {
		Template:   TemplateModern,
		HeaderBand: true,
		PageAccent: true,
		Striped:    true,
	},
	TemplateClassic: {
		Template: TemplateClassic,
		Centered: true,
		Rules:    true,
		Borders:  true,
	},
	TemplateMinimal: {
		Template: TemplateMinimal,
		Muted:    true,
	},
}

// StyleOf returns the style parameters of a template.
func StyleOf(t Template) Style {
	if s, ok := styles[t]; ok {
		return s
	}
	return styles[TemplateModern]
}

// Logo is a decoded company logo ready to place on the page.
type Logo struct {
	Data   []byte
	Format string // "png", "jpeg" or "gif"
	Width  int    // pixels
	Height int
}

// Options are the per-render settings composers honor.
type Options struct {
	IncludeWatermark bool
	WatermarkText    string
	Logo             *Logo
	WebsiteURL       string
	DateFormat       string
}

// Context carries everything a composer needs for one render.
type Context struct {
	Engine    *layout.Engine
	Formatter *locale.Formatter
	Locale    string
	Labels    Labels
	Options   Options
	Logger    *zap.Logger
}

// NewContext builds a context with the labels for loc.
func NewContext(e *layout.Engine, f *locale.Formatter, loc string, opts Options, logger *zap.Logger) *Context {
	if logger == nil {
		logger = zap.NewNop()
	}
	if f == nil {
		f = locale.New(locale.WithLogger(logger))
	}
	return &Context{
		Engine:    e,
		Formatter: f,
		Locale:    loc,
		Labels:    LabelsFor(loc),
		Options:   opts,
		Logger:    logger,
	}
}

// Date formats t for the context locale, honoring a custom date format.
// The zero time renders as the localized "not specified" label.
func (c *Context) Date(t time.Time) string {
	if t.IsZero() {
		return c.Labels.NotSpecified
	}
	if c.Options.DateFormat != "" {
		return c.Formatter.FormatDatePattern(t, c.Options.DateFormat, c.Locale)
	}
	return c.Formatter.FormatDate(t, c.Locale)
}

// Composer draws one document type in one template.
type Composer interface {
	Compose(c *Context, doc document.Document) error
	Style() Style
}

type key struct {
	doc document.Type
	tpl Template
}

var composers = map[key]Composer{
	{document.TypeInvoice, TemplateModern}:  invoiceComposer{style: styles[TemplateModern]},
	{document.TypeInvoice, TemplateClassic}: invoiceComposer{style: styles[TemplateClassic]},
	{document.TypeInvoice, TemplateMinimal}: invoiceComposer{style: styles[TemplateMinimal]},
	{document.TypeNDA, TemplateModern}:      ndaComposer{style: styles[TemplateModern]},
	{document.TypeNDA, TemplateClassic}:     ndaComposer{style: styles[TemplateClassic]},
	{document.TypeNDA, TemplateMinimal}:     ndaComposer{style: styles[TemplateMinimal]},
}

// Select returns the composer for a document type and template. Unknown
// templates use the modern one; unknown types are an
// *document.UnsupportedTypeError.
func Select(docType document.Type, tpl Template) (Composer, error) {
	if c, ok := composers[key{docType, tpl}]; ok {
		return c, nil
	}
	if c, ok := composers[key{docType, TemplateModern}]; ok {
		return c, nil
	}
	return nil, &document.UnsupportedTypeError{Type: string(docType)}
}

func mismatch(want document.Type, got document.Document) error {
	if got == nil {
		return fmt.Errorf("%w: %s composer got nil document", ErrDocumentMismatch, want)
	}
	return fmt.Errorf("%w: %s composer got %s", ErrDocumentMismatch, want, got.Type())
}
