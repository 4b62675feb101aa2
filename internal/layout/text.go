package layout

import (
	"strings"
	"unicode/utf8"

	"github.com/alnah/go-docpdf/internal/fonts"
	"github.com/alnah/go-docpdf/internal/script"
	"github.com/alnah/go-docpdf/internal/theme"
)

// Align is a horizontal alignment relative to the reading direction:
// AlignStart is left in left-to-right documents and right otherwise.
type Align int

const (
	AlignStart Align = iota
	AlignEnd
	AlignCenter
)

// TextStyle describes how a run of text is drawn.
type TextStyle struct {
	Size       float64 // points
	Style      string  // fonts.Style*
	Color      theme.RGB
	Align      Align
	LineHeight float64 // factor of the font size; zero uses the theme's
}

// Body returns the theme's body style.
func (e *Engine) Body() TextStyle {
	return TextStyle{Size: e.theme.Typography.BodySize, Color: e.theme.Colors.Text}
}

// Small returns the theme's small muted style.
func (e *Engine) Small() TextStyle {
	return TextStyle{Size: e.theme.Typography.SmallSize, Color: e.theme.Colors.Muted}
}

// Heading returns the theme's section heading style.
func (e *Engine) Heading() TextStyle {
	return TextStyle{Size: e.theme.Typography.HeadingSize, Style: fonts.StyleBold, Color: e.theme.Colors.Primary}
}

// LineHeight returns the height of one line of st in millimeters.
func (e *Engine) LineHeight(st TextStyle) float64 {
	factor := st.LineHeight
	if factor <= 0 {
		factor = e.theme.Typography.LineHeight
	}
	if factor <= 0 {
		factor = 1.4
	}
	return theme.PointsToMM(st.Size) * factor
}

// UseFont selects the family that can draw sample, in the closest
// available style, and the style's color.
func (e *Engine) UseFont(sample string, st TextStyle) {
	family := fonts.LatinFamily
	style := st.Style
	if e.fonts != nil {
		family = e.fonts.FamilyFor(sample)
		style = e.fonts.Style(family, st.Style)
	}
	e.pdf.SetFont(family, style, st.Size)
	e.pdf.SetTextColor(st.Color.R, st.Color.G, st.Color.B)
}

// Prepare shapes s for drawing. Widths must be measured on prepared text.
// Runes outside the Basic Multilingual Plane, which fpdf cannot measure,
// become U+FFFD.
func Prepare(s string) string {
	return script.ShapeArabic(strings.Map(func(r rune) rune {
		if r > 0xFFFF {
			return utf8.RuneError
		}
		return r
	}, s))
}

// Visual reorders one prepared line for drawing in the document direction.
func (e *Engine) Visual(line string) string {
	return script.Visual(line, e.dir)
}

// TextWidth measures s in style st.
func (e *Engine) TextWidth(s string, st TextStyle) float64 {
	s = Prepare(s)
	e.UseFont(s, st)
	return e.pdf.GetStringWidth(s)
}

// Lines prepares s and wraps it to width in style st. Hard line breaks in s
// are kept.
func (e *Engine) Lines(s string, width float64, st TextStyle) []string {
	s = Prepare(s)
	e.UseFont(s, st)
	return e.wrap(s, width)
}

// Paragraph draws s across the content area from the cursor, breaking pages
// between lines, and returns the number of lines drawn.
func (e *Engine) Paragraph(s string, st TextStyle) int {
	return e.TextBlock(e.Left(), e.Width(), s, st)
}

// TextBlock draws s wrapped to a column at logical x with width w. Each
// line that does not fit on the page moves to the next one.
func (e *Engine) TextBlock(x, w float64, s string, st TextStyle) int {
	lines := e.Lines(s, w, st)
	lh := e.LineHeight(st)
	sample := Prepare(s)
	for _, line := range lines {
		if e.EnsureSpace(lh) {
			e.UseFont(sample, st)
		}
		e.drawLine(x, w, e.y, lh, line, st)
		e.y += lh
	}
	return len(lines)
}

// DrawLines draws already wrapped lines at y without moving the cursor or
// breaking pages. It is used inside boxes whose height was measured first.
func (e *Engine) DrawLines(x, w, y float64, lines []string, st TextStyle) {
	if len(lines) == 0 {
		return
	}
	e.UseFont(strings.Join(lines, " "), st)
	lh := e.LineHeight(st)
	for i, line := range lines {
		e.drawLine(x, w, y+float64(i)*lh, lh, line, st)
	}
}

// Text draws a single unwrapped line at logical x inside a box of width w
// whose top is y.
func (e *Engine) Text(x, w, y float64, s string, st TextStyle) {
	s = Prepare(s)
	e.UseFont(s, st)
	e.drawLine(x, w, y, e.LineHeight(st), s, st)
}

func (e *Engine) drawLine(x, w, top, lh float64, line string, st TextStyle) {
	if line == "" {
		return
	}
	tw := e.pdf.GetStringWidth(line)
	left := e.X(x, w)

	var px float64
	switch e.resolve(st.Align) {
	case alignLeft:
		px = left
	case alignRight:
		px = left + w - tw
	default:
		px = left + (w-tw)/2
	}

	size := theme.PointsToMM(st.Size)
	baseline := top + (lh-size)/2 + size*0.8
	e.pdf.Text(px, baseline, e.Visual(line))
}

type physical int

const (
	alignLeft physical = iota
	alignRight
	alignMiddle
)

func (e *Engine) resolve(a Align) physical {
	switch a {
	case AlignCenter:
		return alignMiddle
	case AlignEnd:
		if e.RTL() {
			return alignLeft
		}
		return alignRight
	}
	if e.RTL() {
		return alignRight
	}
	return alignLeft
}

// wrap breaks s on hard line breaks, then between words, and between
// characters for CJK text and for words wider than the line.
func (e *Engine) wrap(s string, width float64) []string {
	var lines []string
	for _, para := range strings.Split(s, "\n") {
		lines = append(lines, e.wrapLine(para, width)...)
	}
	return lines
}

func (e *Engine) wrapLine(s string, width float64) []string {
	s = strings.TrimRight(s, " \t\r")
	if s == "" {
		return []string{""}
	}

	var lines []string
	line := ""
	for _, tok := range tokenize(s) {
		next := line + tok
		if e.pdf.GetStringWidth(strings.TrimRight(next, " ")) <= width {
			line = next
			continue
		}
		if strings.TrimSpace(line) != "" {
			lines = append(lines, strings.TrimRight(line, " "))
		}
		tok = strings.TrimLeft(tok, " ")
		for tok != "" && e.pdf.GetStringWidth(strings.TrimRight(tok, " ")) > width {
			cut := e.fit(tok, width)
			lines = append(lines, tok[:cut])
			tok = tok[cut:]
		}
		line = tok
	}
	if strings.TrimSpace(line) != "" {
		lines = append(lines, strings.TrimRight(line, " "))
	}
	return lines
}

// fit returns the byte length of the longest prefix of s no wider than
// width, and at least one rune.
func (e *Engine) fit(s string, width float64) int {
	end := 0
	for i := range s {
		_, size := utf8.DecodeRuneInString(s[i:])
		j := i + size
		if end > 0 && e.pdf.GetStringWidth(s[:j]) > width {
			break
		}
		end = j
	}
	return end
}

// tokenize splits s into words that carry their trailing spaces. CJK
// characters are tokens of their own.
func tokenize(s string) []string {
	var toks []string
	start := 0
	inSpace := false
	for i, r := range s {
		switch {
		case script.IsCJK(r):
			if i > start {
				toks = append(toks, s[start:i])
			}
			_, size := utf8.DecodeRuneInString(s[i:])
			end := i + size
			toks = append(toks, s[i:end])
			start = end
			inSpace = false
		case r == ' ':
			inSpace = true
		default:
			if inSpace {
				toks = append(toks, s[start:i])
				start = i
				inSpace = false
			}
		}
	}
	if start < len(s) {
		toks = append(toks, s[start:])
	}
	return toks
}
