// Package layout tracks the drawing cursor across pages and draws wrapped,
// direction-aware text on an fpdf document.
//
// Composers position content in logical coordinates, as if every document
// were left-to-right, and pass x positions through Engine.X. For
// right-to-left documents X mirrors the position across the page, which
// mirrors every column, block and alignment without the composer knowing
// the direction.
package layout

import (
	"math"

	"github.com/go-pdf/fpdf"

	"github.com/alnah/go-docpdf/internal/fonts"
	"github.com/alnah/go-docpdf/internal/script"
	"github.com/alnah/go-docpdf/internal/theme"
)

// DefaultFooterHeight is reserved at the bottom of every page.
const DefaultFooterHeight = 12.0

// epsilon absorbs float rounding when comparing positions in millimeters.
const epsilon = 1e-6

// Cursor is a vertical position on a page.
type Cursor struct {
	Page int
	Y    float64
}

// Below reports whether c comes after other in reading order.
func (c Cursor) Below(other Cursor) bool {
	if c.Page != other.Page {
		return c.Page > other.Page
	}
	return c.Y > other.Y
}

// Config configures an Engine.
type Config struct {
	Theme        theme.Theme
	Fonts        *fonts.Set
	Direction    script.Direction
	FooterHeight float64
}

// Engine draws on one document. It is not safe for concurrent use.
type Engine struct {
	pdf    *fpdf.Fpdf
	fonts  *fonts.Set
	theme  theme.Theme
	dir    script.Direction
	footer float64

	pageW, pageH float64
	y            float64
	hooks        []func(page int)
}

// New wraps pdf. The page size is read from pdf, so it must be created
// before the engine. A zero Direction uses the font set's direction.
func New(pdf *fpdf.Fpdf, cfg Config) *Engine {
	w, h := pdf.GetPageSize()
	e := &Engine{
		pdf:    pdf,
		fonts:  cfg.Fonts,
		theme:  cfg.Theme,
		dir:    cfg.Direction,
		footer: cfg.FooterHeight,
		pageW:  w,
		pageH:  h,
	}
	if e.dir == "" {
		e.dir = script.LTR
		if cfg.Fonts != nil && cfg.Fonts.Direction != "" {
			e.dir = cfg.Fonts.Direction
		}
	}
	if e.footer <= 0 {
		e.footer = DefaultFooterHeight
	}
	m := e.theme.Spacing.Margin
	pdf.SetMargins(m, m, m)
	pdf.SetAutoPageBreak(false, 0)
	return e
}

// PDF returns the underlying document.
func (e *Engine) PDF() *fpdf.Fpdf { return e.pdf }

// Theme returns the active theme.
func (e *Engine) Theme() theme.Theme { return e.theme }

// Direction returns the base direction of the document.
func (e *Engine) Direction() script.Direction { return e.dir }

// RTL reports whether the document is right-to-left.
func (e *Engine) RTL() bool { return e.dir == script.RTL }

// OnNewPage registers fn to run after every page is added, before any
// content is drawn on it.
func (e *Engine) OnNewPage(fn func(page int)) {
	e.hooks = append(e.hooks, fn)
}

// AddPage starts a new page with the cursor at the top margin.
func (e *Engine) AddPage() {
	e.pdf.AddPage()
	e.y = e.Top()
	page := e.pdf.PageNo()
	for _, fn := range e.hooks {
		fn(page)
	}
}

// Cursor returns the current position.
func (e *Engine) Cursor() Cursor {
	return Cursor{Page: e.pdf.PageNo(), Y: e.y}
}

// Y returns the vertical position on the current page.
func (e *Engine) Y() float64 { return e.y }

// SetY moves the cursor on the current page.
func (e *Engine) SetY(y float64) { e.y = y }

// Advance moves the cursor down by dy.
func (e *Engine) Advance(dy float64) { e.y += dy }

// PageSize returns the page width and height in millimeters.
func (e *Engine) PageSize() (float64, float64) { return e.pageW, e.pageH }

// Left is the logical left edge of the content area.
func (e *Engine) Left() float64 { return e.theme.Spacing.Margin }

// Width is the width of the content area.
func (e *Engine) Width() float64 { return e.pageW - 2*e.theme.Spacing.Margin }

// Top is the first usable y on a page.
func (e *Engine) Top() float64 { return e.theme.Spacing.Margin }

// Bottom is the last usable y on a page; the footer lives below it.
func (e *Engine) Bottom() float64 { return e.pageH - e.theme.Spacing.Margin - e.footer }

// FooterY is the baseline area reserved for footers.
func (e *Engine) FooterY() float64 { return e.pageH - e.theme.Spacing.Margin - e.footer/2 }

// X converts a logical x of a box of width w into a page position.
func (e *Engine) X(x, w float64) float64 {
	if e.RTL() {
		return e.pageW - x - w
	}
	return x
}

// Remaining is the vertical space left on the current page.
func (e *Engine) Remaining() float64 { return e.Bottom() - e.y }

// AtTop reports whether nothing has been drawn below the top margin of the
// current page. Breaking the page there would only leave a blank page.
func (e *Engine) AtTop() bool {
	return e.pdf.PageNo() > 0 && e.y <= e.Top()+epsilon
}

// LinesIn returns how many lines of height lh fit in space.
func LinesIn(space, lh float64) int {
	if lh <= 0 || space <= 0 {
		return 0
	}
	return int(math.Floor(space/lh + epsilon))
}

// EnsureSpace starts a new page when fewer than h millimeters remain and
// reports whether it did. A document without pages gets its first one.
func (e *Engine) EnsureSpace(h float64) bool {
	if e.pdf.PageNo() == 0 {
		e.AddPage()
		return true
	}
	if e.y+h <= e.Bottom() {
		return false
	}
	e.AddPage()
	return true
}

// Finish runs fn once per page with the page number and page count. It is
// used for footers, which need the final page count.
func (e *Engine) Finish(fn func(page, total int)) {
	total := e.pdf.PageCount()
	current := e.pdf.PageNo()
	for p := 1; p <= total; p++ {
		e.pdf.SetPage(p)
		fn(p, total)
	}
	if current > 0 {
		e.pdf.SetPage(current)
	}
}

// Rule draws a horizontal line across the content area and advances past it.
func (e *Engine) Rule(color theme.RGB, width float64) {
	e.pdf.SetDrawColor(color.R, color.G, color.B)
	e.pdf.SetLineWidth(width)
	e.pdf.Line(e.Left(), e.y, e.Left()+e.Width(), e.y)
	e.y += width
}

// Fill draws a filled rectangle in logical coordinates.
func (e *Engine) Fill(x, y, w, h float64, color theme.RGB) {
	e.pdf.SetFillColor(color.R, color.G, color.B)
	e.pdf.Rect(e.X(x, w), y, w, h, "F")
}
