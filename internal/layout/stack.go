package layout

// Line is one wrapped line and the style it is drawn in.
type Line struct {
	Text  string
	Style TextStyle
}

// Stack is a column of lines at logical x with width W.
type Stack struct {
	X, W  float64
	Lines []Line
}

// StyledLines wraps s like Lines and tags every line with st.
func (e *Engine) StyledLines(s string, w float64, st TextStyle) []Line {
	wrapped := e.Lines(s, w, st)
	lines := make([]Line, len(wrapped))
	for i, text := range wrapped {
		lines[i] = Line{Text: text, Style: st}
	}
	return lines
}

// StackHeight is the height of lines drawn one below the other.
func (e *Engine) StackHeight(lines []Line) float64 {
	h := 0.0
	for _, l := range lines {
		h += e.LineHeight(l.Style)
	}
	return h
}

// DrawStacks draws stacks side by side from the cursor with their tops
// aligned, and leaves the cursor below the tallest. A group that does not
// fit in the space left but fits on an empty page moves to the next page
// whole; a taller group is split between lines and every stack continues
// at the top of the next page. decorate, when set, runs before the text of
// each page's part with that part's top and height.
func (e *Engine) DrawStacks(stacks []Stack, decorate func(top, h float64)) {
	if e.pdf.PageNo() == 0 {
		e.AddPage()
	}
	total := 0.0
	for _, s := range stacks {
		total = max(total, e.StackHeight(s.Lines))
	}
	if !e.AtTop() && total > e.Remaining()+epsilon && total <= e.Bottom()-e.Top()+epsilon {
		e.AddPage()
	}

	next := make([]int, len(stacks))
	counts := make([]int, len(stacks))
	for {
		top := e.y
		part := 0.0
		done := true
		for i, s := range stacks {
			n, h := e.fitLines(s.Lines[next[i]:], e.Bottom()-top)
			if n == 0 && next[i] < len(s.Lines) && e.AtTop() {
				// A line taller than the page is drawn anyway rather than looping.
				n, h = 1, e.LineHeight(s.Lines[next[i]].Style)
			}
			counts[i] = n
			part = max(part, h)
			if next[i]+n < len(s.Lines) {
				done = false
			}
		}

		if decorate != nil && part > 0 {
			decorate(top, part)
		}
		for i, s := range stacks {
			y := top
			for _, l := range s.Lines[next[i] : next[i]+counts[i]] {
				lh := e.LineHeight(l.Style)
				e.UseFont(l.Text, l.Style)
				e.drawLine(s.X, s.W, y, lh, l.Text, l.Style)
				y += lh
			}
			next[i] += counts[i]
		}
		e.y = top + part
		if done {
			return
		}
		e.AddPage()
	}
}

// fitLines returns how many leading lines fit in space, and their height.
func (e *Engine) fitLines(lines []Line, space float64) (int, float64) {
	h := 0.0
	for i, l := range lines {
		lh := e.LineHeight(l.Style)
		if h+lh > space+epsilon {
			return i, h
		}
		h += lh
	}
	return len(lines), h
}
