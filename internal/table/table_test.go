package table

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"testing"

	"github.com/go-pdf/fpdf"

	"github.com/alnah/go-docpdf/internal/fonts"
	"github.com/alnah/go-docpdf/internal/layout"
	"github.com/alnah/go-docpdf/internal/script"
	"github.com/alnah/go-docpdf/internal/theme"
)

func newEngine(t *testing.T, dir script.Direction) *layout.Engine {
	t.Helper()
	set, err := fonts.NewRegistry().Prepare(context.Background(), "en-US")
	if err != nil {
		t.Fatalf("Prepare: %v", err)
	}
	pdf := fpdf.New("P", "mm", "A4", "")
	set.Register(pdf)
	e := layout.New(pdf, layout.Config{Theme: theme.Default(), Fonts: set, Direction: dir})
	e.AddPage()
	return e
}

func itemColumns() []Column {
	return []Column{
		{Header: "Description"},
		{Header: "Qty", Width: 20, Numeric: true},
		{Header: "Rate", Width: 30, Numeric: true},
		{Header: "Amount", Width: 30, Numeric: true},
	}
}

func TestLongTableSpansPages(t *testing.T) {
	t.Parallel()

	e := newEngine(t, script.LTR)
	tbl := New(theme.Default(), itemColumns()...)
	for i := range 120 {
		tbl.AddRow("Consulting hours, item "+strconv.Itoa(i), "1", "100.00", "100.00")
	}

	start := e.Cursor()
	end, err := tbl.Render(e)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if end.Page <= start.Page {
		t.Fatalf("end page = %d, want > %d", end.Page, start.Page)
	}
	if end.Y > e.Bottom() {
		t.Errorf("end y %v is past the usable area %v", end.Y, e.Bottom())
	}

	e.Paragraph("Thank you for your business.", e.Body())
	after := e.Cursor()
	if !after.Below(end) {
		t.Errorf("next section at %+v, want below table end %+v", after, end)
	}
}

func TestRenderStartsNewPageWhenHeaderWouldBeOrphaned(t *testing.T) {
	t.Parallel()

	e := newEngine(t, script.LTR)
	e.SetY(e.Bottom() - 2)
	tbl := New(theme.Default(), itemColumns()...).AddRow("Design", "2", "25.00", "50.00")

	end, err := tbl.Render(e)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if end.Page != 2 {
		t.Errorf("end page = %d, want 2", end.Page)
	}
}

func TestWidths(t *testing.T) {
	t.Parallel()

	tbl := New(theme.Default(), itemColumns()...)
	got := tbl.Widths(180)
	want := []float64{100, 20, 30, 30}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Widths = %v, want %v", got, want)
			break
		}
	}

	crowded := New(theme.Default(), Column{Width: 200}, Column{})
	if w := crowded.Widths(100); w[1] != 0 {
		t.Errorf("auto width = %v, want 0 when fixed columns overflow", w[1])
	}
}

func TestBoxesMirrorInRTL(t *testing.T) {
	t.Parallel()

	cols := itemColumns()

	ltr := New(theme.Default(), cols...).Boxes(newEngine(t, script.LTR))
	if ltr[0].X >= ltr[len(ltr)-1].X {
		t.Errorf("LTR first column at %v should be left of last at %v", ltr[0].X, ltr[len(ltr)-1].X)
	}

	rtl := New(theme.Default(), cols...).Boxes(newEngine(t, script.RTL))
	if rtl[0].X <= rtl[len(rtl)-1].X {
		t.Errorf("RTL first column at %v should be right of last at %v", rtl[0].X, rtl[len(rtl)-1].X)
	}
	for i := range cols {
		if ltr[i].W != rtl[i].W {
			t.Errorf("column %d width differs: %v vs %v", i, ltr[i].W, rtl[i].W)
		}
	}
}

func TestAddRowPadsAndTruncates(t *testing.T) {
	t.Parallel()

	tbl := New(theme.Default(), Column{Header: "A"}, Column{Header: "B"})
	tbl.AddRow("only").AddRow("1", "2", "3")
	if tbl.Len() != 2 {
		t.Fatalf("Len = %d", tbl.Len())
	}
	if len(tbl.rows[0]) != 2 || tbl.rows[0][1] != "" || len(tbl.rows[1]) != 2 {
		t.Errorf("rows = %q", tbl.rows)
	}
}

func TestRenderWithoutColumns(t *testing.T) {
	t.Parallel()

	_, err := New(theme.Default()).Render(newEngine(t, script.LTR))
	if !errors.Is(err, ErrNoColumns) {
		t.Errorf("err = %v, want ErrNoColumns", err)
	}
}

func TestRenderWrapsTallRows(t *testing.T) {
	t.Parallel()

	e := newEngine(t, script.LTR)
	tbl := New(theme.Default(), itemColumns()...)
	long := "A very long description that cannot possibly fit on a single line of the description column and must wrap"
	tbl.AddRow(long, "1", "1.00", "1.00")

	before := e.Y()
	if _, err := tbl.Render(e); err != nil {
		t.Fatalf("Render: %v", err)
	}
	single := e.LineHeight(StyleFor(theme.Default()).Body) + 2*theme.Default().Spacing.CellPadding
	header := single
	if got := e.Y() - before; got <= header+single {
		t.Errorf("table height %v, want more than one header and one single-line row (%v)", got, header+single)
	}
}

func TestRenderSplitsRowTallerThanPage(t *testing.T) {
	t.Parallel()

	e := newEngine(t, script.LTR)
	var desc strings.Builder
	for i := range 400 {
		fmt.Fprintf(&desc, "Sentence %d of a generated line item description. ", i+1)
	}
	tbl := New(theme.Default(), itemColumns()...).AddRow(desc.String(), "1", "10.00", "10.00")

	end, err := tbl.Render(e)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if end.Y > e.Bottom()+1e-6 {
		t.Errorf("end y %.1f is past the bottom %.1f", end.Y, e.Bottom())
	}

	widths := tbl.Widths(e.Width())
	pad := tbl.style.Padding
	lines := lineCount(tbl.cellLines(e, tbl.rows[0], widths, tbl.style.Body))
	headH := float64(lineCount(tbl.cellLines(e, tbl.headerCells(), widths, tbl.style.Header)))*e.LineHeight(tbl.style.Header) + 2*pad
	capacity := layout.LinesIn(e.Bottom()-e.Top()-headH-2*pad, e.LineHeight(tbl.style.Body))
	if capacity < 1 || lines <= capacity {
		t.Fatalf("row of %d lines does not exceed a page of %d lines", lines, capacity)
	}

	want := (lines + capacity - 1) / capacity
	if end.Page != want {
		t.Errorf("end page = %d, want %d for %d lines at %d per page", end.Page, want, lines, capacity)
	}
	if got := e.PDF().PageCount(); got != end.Page {
		t.Errorf("page count = %d, want %d with no trailing blank page", got, end.Page)
	}
}

func TestRenderSplitsTallRowFromMidPage(t *testing.T) {
	t.Parallel()

	e := newEngine(t, script.LTR)
	e.SetY(e.Top() + 60)
	tbl := New(theme.Default(), itemColumns()...).
		AddRow("Setup", "1", "5.00", "5.00").
		AddRow(strings.Repeat("Long running engagement notes. ", 600), "1", "10.00", "10.00")

	end, err := tbl.Render(e)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if end.Y > e.Bottom()+1e-6 {
		t.Errorf("end y %.1f is past the bottom %.1f", end.Y, e.Bottom())
	}
	if end.Page < 2 {
		t.Errorf("end page = %d, want the row to continue on later pages", end.Page)
	}
}
