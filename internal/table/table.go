// Package table draws paginated tables through a layout.Engine.
package table

import (
	"errors"

	"github.com/alnah/go-docpdf/internal/fonts"
	"github.com/alnah/go-docpdf/internal/layout"
	"github.com/alnah/go-docpdf/internal/theme"
)

// ErrNoColumns is returned when rendering a table without columns.
var ErrNoColumns = errors.New("table has no columns")

// Column defines one table column.
type Column struct {
	Header  string
	Width   float64 // fixed width in mm; 0 shares the remaining width
	Numeric bool    // end-aligned, for amounts and quantities
}

// Style controls table colors and spacing.
type Style struct {
	Header     layout.TextStyle
	Body       layout.TextStyle
	HeaderFill theme.RGB
	RowFill    theme.RGB
	AltFill    theme.RGB
	Border     theme.RGB
	Striped    bool
	Borders    bool
	Padding    float64
}

// StyleFor derives a table style from a theme.
func StyleFor(th theme.Theme) Style {
	return Style{
		Header: layout.TextStyle{
			Size:  th.Typography.BodySize,
			Style: fonts.StyleBold,
			Color: th.Colors.TableHeaderText,
		},
		Body: layout.TextStyle{
			Size:  th.Typography.BodySize,
			Color: th.Colors.Text,
		},
		HeaderFill: th.Colors.TableHeader,
		RowFill:    th.Colors.TableRow,
		AltFill:    th.Colors.TableRowAlt,
		Border:     th.Colors.Border,
		Striped:    true,
		Padding:    th.Spacing.CellPadding,
	}
}

// Box is a column's physical position on the page.
type Box struct {
	X, W float64
}

// Table is a header row plus data rows.
type Table struct {
	columns []Column
	rows    [][]string
	style   Style
	hasHead bool
}

// New creates a table with the given columns and a style derived from th.
func New(th theme.Theme, cols ...Column) *Table {
	t := &Table{columns: cols, style: StyleFor(th)}
	for _, c := range cols {
		if c.Header != "" {
			t.hasHead = true
		}
	}
	return t
}

// SetStyle replaces the style.
func (t *Table) SetStyle(s Style) *Table {
	t.style = s
	return t
}

// AddRow appends a data row. Missing cells are empty, extra cells dropped.
func (t *Table) AddRow(cells ...string) *Table {
	row := make([]string, len(t.columns))
	copy(row, cells)
	t.rows = append(t.rows, row)
	return t
}

// Len returns the number of data rows.
func (t *Table) Len() int { return len(t.rows) }

// Widths distributes the total width: fixed columns keep their width and
// the rest share what remains equally.
func (t *Table) Widths(total float64) []float64 {
	widths := make([]float64, len(t.columns))
	fixed := 0.0
	auto := 0
	for i, c := range t.columns {
		if c.Width > 0 {
			widths[i] = c.Width
			fixed += c.Width
		} else {
			auto++
		}
	}
	if auto > 0 {
		share := (total - fixed) / float64(auto)
		if share < 0 {
			share = 0
		}
		for i, c := range t.columns {
			if c.Width <= 0 {
				widths[i] = share
			}
		}
	}
	return widths
}

// Boxes returns the physical column positions for e. In right-to-left
// documents the first column is rightmost.
func (t *Table) Boxes(e *layout.Engine) []Box {
	widths := t.Widths(e.Width())
	boxes := make([]Box, len(widths))
	x := e.Left()
	for i, w := range widths {
		boxes[i] = Box{X: e.X(x, w), W: w}
		x += w
	}
	return boxes
}

// Render draws the table from the cursor. When a row does not fit, the
// table continues on a new page under a repeated header. A row taller than
// a page is split between its lines. It returns the cursor below the last
// row.
func (t *Table) Render(e *layout.Engine) (layout.Cursor, error) {
	if len(t.columns) == 0 {
		return e.Cursor(), ErrNoColumns
	}
	widths := t.Widths(e.Width())
	p := pager{table: t, widths: widths}
	if t.hasHead {
		p.head = t.cellLines(e, t.headerCells(), widths, t.style.Header)
		p.headH = float64(lineCount(p.head))*e.LineHeight(t.style.Header) + 2*t.style.Padding
	}
	lh := e.LineHeight(t.style.Body)
	p.capacity = layout.LinesIn(e.Bottom()-e.Top()-p.headH-2*t.style.Padding, lh)

	body := make([][][]string, len(t.rows))
	for i, row := range t.rows {
		body[i] = t.cellLines(e, row, widths, t.style.Body)
	}

	// Keep the header with the first row, or with its first line when the
	// row is taller than a page.
	first := 1
	if len(body) > 0 {
		if n := lineCount(body[0]); n <= p.capacity {
			first = n
		}
	}
	if !e.AtTop() {
		e.EnsureSpace(p.headH + float64(first)*lh + 2*t.style.Padding)
	}
	p.drawHeader(e)

	for i, lines := range body {
		fill := t.style.RowFill
		if t.style.Striped && i%2 == 1 {
			fill = t.style.AltFill
		}
		p.row(e, lines, fill)
	}

	pdf := e.PDF()
	if pdf.Err() {
		return e.Cursor(), pdf.Error()
	}
	return e.Cursor(), nil
}

// pager carries the per-render state needed to continue a table on a new
// page.
type pager struct {
	table    *Table
	widths   []float64
	head     [][]string
	headH    float64
	capacity int // body lines that fit under the header on an empty page
}

func (p *pager) drawHeader(e *layout.Engine) {
	if !p.table.hasHead {
		return
	}
	p.table.drawRow(e, p.head, p.widths, p.headH, p.table.style.Header, p.table.style.HeaderFill)
}

func (p *pager) newPage(e *layout.Engine) {
	e.AddPage()
	p.drawHeader(e)
}

// row draws one data row. A row that fits on an empty page is never split;
// a taller one fills the page and continues on the next.
func (p *pager) row(e *layout.Engine, lines [][]string, fill theme.RGB) {
	t := p.table
	pad := t.style.Padding
	lh := e.LineHeight(t.style.Body)
	total := lineCount(lines)
	fresh := false

	for start := 0; start < total; {
		n := layout.LinesIn(e.Remaining()-2*pad, lh)
		left := total - start
		switch {
		case n >= left:
			n = left
		case !fresh && (n < 1 || (start == 0 && left <= p.capacity)):
			p.newPage(e)
			fresh = true
			continue
		case n < 1:
			n = 1
		}
		t.drawRow(e, sliceLines(lines, start, start+n), p.widths, float64(n)*lh+2*pad, t.style.Body, fill)
		start += n
		if start < total {
			p.newPage(e)
			fresh = true
		}
	}
}

func (t *Table) headerCells() []string {
	cells := make([]string, len(t.columns))
	for i, c := range t.columns {
		cells[i] = c.Header
	}
	return cells
}

func (t *Table) cellStyle(i int, st layout.TextStyle) layout.TextStyle {
	if t.columns[i].Numeric {
		st.Align = layout.AlignEnd
	}
	return st
}

func (t *Table) innerWidth(w float64) float64 {
	return max(w-2*t.style.Padding, 1)
}

// cellLines wraps every cell of a row to its column.
func (t *Table) cellLines(e *layout.Engine, cells []string, widths []float64, st layout.TextStyle) [][]string {
	lines := make([][]string, len(cells))
	for i, cell := range cells {
		lines[i] = e.Lines(cell, t.innerWidth(widths[i]), t.cellStyle(i, st))
	}
	return lines
}

// lineCount is the number of lines of the tallest cell, at least one.
func lineCount(cells [][]string) int {
	n := 1
	for _, c := range cells {
		n = max(n, len(c))
	}
	return n
}

// sliceLines keeps lines [from, to) of every cell.
func sliceLines(cells [][]string, from, to int) [][]string {
	out := make([][]string, len(cells))
	for i, c := range cells {
		out[i] = c[min(from, len(c)):min(to, len(c))]
	}
	return out
}

func (t *Table) drawRow(e *layout.Engine, lines [][]string, widths []float64, h float64, st layout.TextStyle, fill theme.RGB) {
	pdf := e.PDF()
	y := e.Y()
	x := e.Left()
	pad := t.style.Padding

	for i, cell := range lines {
		w := widths[i]
		e.Fill(x, y, w, h, fill)
		if t.style.Borders {
			pdf.SetDrawColor(t.style.Border.R, t.style.Border.G, t.style.Border.B)
			pdf.SetLineWidth(0.2)
			pdf.Rect(e.X(x, w), y, w, h, "D")
		}
		e.DrawLines(x+pad, t.innerWidth(w), y+pad, cell, t.cellStyle(i, st))
		x += w
	}

	if !t.style.Borders {
		pdf.SetDrawColor(t.style.Border.R, t.style.Border.G, t.style.Border.B)
		pdf.SetLineWidth(0.2)
		pdf.Line(e.Left(), y+h, e.Left()+e.Width(), y+h)
	}
	e.SetY(y + h)
}
