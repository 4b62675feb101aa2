package compose

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/alnah/go-docpdf/internal/document"
	"github.com/alnah/go-docpdf/internal/fonts"
	"github.com/alnah/go-docpdf/internal/layout"
	"github.com/alnah/go-docpdf/internal/theme"
)

const (
	logoName      = "company-logo"
	logoHeight    = 16.0
	logoMaxWidth  = 50.0
	watermarkSize = 64.0
	watermarkTilt = 45.0
	labelColumn   = 42.0
	totalsWidth   = 85.0
	columnGap     = 10.0
	signatureGap  = 14.0
)

// begin installs the per-page decorations and opens the first page.
func (c *Context) begin(st Style, defaultWatermark string) {
	e := c.Engine
	th := e.Theme()

	if st.PageAccent {
		e.OnNewPage(func(int) {
			w, _ := e.PageSize()
			e.Fill(0, 0, w, 2.5, th.Colors.Accent)
		})
	}
	if c.Options.IncludeWatermark {
		text := strings.TrimSpace(c.Options.WatermarkText)
		if text == "" {
			text = defaultWatermark
		}
		e.OnNewPage(func(int) { c.watermark(text) })
	}
	c.registerLogo()
	e.AddPage()
}

func (c *Context) watermark(text string) {
	e := c.Engine
	pdf := e.PDF()
	st := layout.TextStyle{Size: watermarkSize, Style: fonts.StyleBold, Color: e.Theme().Colors.Muted}

	shaped := layout.Prepare(text)
	e.UseFont(shaped, st)
	w, h := e.PageSize()
	tw := pdf.GetStringWidth(shaped)
	cx, cy := w/2, h/2

	pdf.SetAlpha(0.12, "Normal")
	pdf.TransformBegin()
	pdf.TransformRotate(watermarkTilt, cx, cy)
	pdf.Text(cx-tw/2, cy+theme.PointsToMM(st.Size)/3, e.Visual(shaped))
	pdf.TransformEnd()
	pdf.SetAlpha(1, "Normal")
}

// registerLogo makes the logo available to the document. Logos are
// validated before composition, so a registration failure here is logged
// and the logo dropped rather than failing the render.
func (c *Context) registerLogo() {
	logo := c.Options.Logo
	if logo == nil || len(logo.Data) == 0 || logo.Width <= 0 || logo.Height <= 0 {
		c.Options.Logo = nil
		return
	}
	pdf := c.Engine.PDF()
	info := pdf.RegisterImageOptionsReader(logoName, fpdf.ImageOptions{ImageType: imageType(logo.Format)}, bytes.NewReader(logo.Data))
	if pdf.Err() || info == nil {
		c.Logger.Warn("company logo skipped: image could not be registered")
		pdf.ClearError()
		c.Options.Logo = nil
	}
}

func imageType(format string) string {
	switch strings.ToLower(format) {
	case "jpeg", "jpg":
		return "JPG"
	case "gif":
		return "GIF"
	}
	return "PNG"
}

// logoSize scales the logo to the header height, capped in width.
func (c *Context) logoSize() (float64, float64) {
	logo := c.Options.Logo
	if logo == nil {
		return 0, 0
	}
	h := logoHeight
	w := h * float64(logo.Width) / float64(logo.Height)
	if w > logoMaxWidth {
		w = logoMaxWidth
		h = w * float64(logo.Height) / float64(logo.Width)
	}
	return w, h
}

// drawLogo places the logo with its logical top-left corner at x, y.
func (c *Context) drawLogo(x, y float64) {
	w, h := c.logoSize()
	if w == 0 {
		return
	}
	e := c.Engine
	e.PDF().ImageOptions(logoName, e.X(x, w), y, w, h, false,
		fpdf.ImageOptions{ImageType: imageType(c.Options.Logo.Format)}, 0, "")
}

func (c *Context) headingColor(st Style) theme.RGB {
	th := c.Engine.Theme()
	if st.Muted {
		return th.Colors.Text
	}
	return th.Colors.Primary
}

// header draws the title block of the first page.
func (c *Context) header(st Style, title, subtitle string) {
	switch {
	case st.HeaderBand:
		c.bandHeader(title, subtitle)
	case st.Centered:
		c.centeredHeader(st, title, subtitle)
	default:
		c.plainHeader(st, title, subtitle)
	}
}

func (c *Context) bandHeader(title, subtitle string) {
	e := c.Engine
	th := e.Theme()
	pdf := e.PDF()
	pageW, _ := e.PageSize()
	bandH := th.Spacing.Margin + 24

	if th.Effects.GradientHeader {
		x1, x2 := 0.0, 1.0
		if e.RTL() {
			x1, x2 = 1, 0
		}
		p, s := th.Colors.Primary, th.Colors.Secondary
		pdf.LinearGradient(0, 0, pageW, bandH, p.R, p.G, p.B, s.R, s.G, s.B, x1, 0, x2, 0)
	} else {
		e.Fill(0, 0, pageW, bandH, th.Colors.Primary)
	}

	white := theme.RGB{R: 255, G: 255, B: 255}
	logoW, _ := c.logoSize()
	textW := e.Width() - logoW
	titleStyle := layout.TextStyle{Size: th.Typography.TitleSize, Style: fonts.StyleBold, Color: white}
	y := th.Spacing.Margin
	e.Text(e.Left(), textW, y, title, titleStyle)
	if subtitle != "" {
		y += e.LineHeight(titleStyle)
		e.Text(e.Left(), textW, y, subtitle, layout.TextStyle{Size: th.Typography.BodySize, Color: white})
	}
	c.drawLogo(e.Left()+e.Width()-logoW, th.Spacing.Margin)

	e.SetY(bandH + th.Spacing.SectionGap)
}

func (c *Context) centeredHeader(st Style, title, subtitle string) {
	e := c.Engine
	th := e.Theme()

	if logoW, logoH := c.logoSize(); logoW > 0 {
		c.drawLogo(e.Left()+(e.Width()-logoW)/2, e.Y())
		e.Advance(logoH + th.Spacing.ParagraphGap)
	}
	titleStyle := layout.TextStyle{
		Size:  th.Typography.TitleSize,
		Style: fonts.StyleBold,
		Color: c.headingColor(st),
		Align: layout.AlignCenter,
	}
	e.TextBlock(e.Left(), e.Width(), title, titleStyle)
	if subtitle != "" {
		sub := e.Small()
		sub.Align = layout.AlignCenter
		e.TextBlock(e.Left(), e.Width(), subtitle, sub)
	}
	e.Advance(th.Spacing.ParagraphGap)
	e.Rule(th.Colors.Primary, 0.6)
	e.Advance(0.8)
	e.Rule(th.Colors.Primary, 0.2)
	e.Advance(th.Spacing.SectionGap)
}

func (c *Context) plainHeader(st Style, title, subtitle string) {
	e := c.Engine
	th := e.Theme()
	top := e.Y()

	logoW, logoH := c.logoSize()
	textW := e.Width() - logoW
	titleStyle := layout.TextStyle{Size: th.Typography.TitleSize, Color: c.headingColor(st)}
	e.TextBlock(e.Left(), textW, title, titleStyle)
	if subtitle != "" {
		e.TextBlock(e.Left(), textW, subtitle, e.Small())
	}
	c.drawLogo(e.Left()+e.Width()-logoW, top)
	if bottom := top + logoH; e.Y() < bottom {
		e.SetY(bottom)
	}
	e.Advance(th.Spacing.ParagraphGap)
	e.Rule(th.Colors.Border, 0.2)
	e.Advance(th.Spacing.SectionGap)
}

// keyValues draws label/value rows, the labels in a fixed start column. A
// value too long for one page continues on the next.
func (c *Context) keyValues(rows [][2]string) {
	e := c.Engine
	label := e.Small()
	value := e.Body()
	valueW := e.Width() - labelColumn

	for _, row := range rows {
		e.DrawStacks([]layout.Stack{
			{X: e.Left(), W: labelColumn - 2, Lines: e.StyledLines(row[0], labelColumn-2, label)},
			{X: e.Left() + labelColumn, W: valueW, Lines: e.StyledLines(row[1], valueW, value)},
		}, nil)
	}
}

// parties draws two party blocks side by side.
func (c *Context) parties(st Style, firstTitle string, first document.Party, secondTitle string, second document.Party) {
	e := c.Engine
	th := e.Theme()
	colW := (e.Width() - columnGap) / 2

	stacks := []layout.Stack{
		{X: e.Left(), W: colW, Lines: c.partyLines(st, firstTitle, first, colW)},
		{X: e.Left() + colW + columnGap, W: colW, Lines: c.partyLines(st, secondTitle, second, colW)},
	}
	var shadow func(top, h float64)
	if st.HeaderBand && th.Effects.Shadows {
		shadow = func(top, h float64) {
			for _, s := range stacks {
				e.Fill(s.X-1.5, top-1.5, s.W+3, h+3, th.Colors.Surface)
			}
		}
	}
	e.DrawStacks(stacks, shadow)
}

func (c *Context) partyLines(st Style, title string, p document.Party, w float64) []layout.Line {
	e := c.Engine
	th := e.Theme()
	titleStyle := layout.TextStyle{Size: th.Typography.SmallSize, Style: fonts.StyleBold, Color: c.headingColor(st)}
	nameStyle := layout.TextStyle{Size: th.Typography.BodySize, Style: fonts.StyleBold, Color: th.Colors.Text}

	var lines []layout.Line
	lines = append(lines, e.StyledLines(strings.ToUpper(title), w, titleStyle)...)
	lines = append(lines, e.StyledLines(p.Name, w, nameStyle)...)
	lines = append(lines, e.StyledLines(p.Address, w, e.Body())...)
	lines = append(lines, e.StyledLines(p.Email, w, e.Small())...)
	return append(lines, e.StyledLines(p.Phone, w, e.Small())...)
}

// heading draws a section title, keeping it on the page of the first body
// lines that follow.
func (c *Context) heading(st Style, title string) {
	e := c.Engine
	th := e.Theme()
	hs := e.Heading()
	hs.Color = c.headingColor(st)
	e.EnsureSpace(e.LineHeight(hs) + 2*e.LineHeight(e.Body()))
	e.Paragraph(title, hs)
	if st.Rules {
		e.Rule(th.Colors.Border, 0.2)
	}
	e.Advance(th.Spacing.ParagraphGap)
}

// section draws a heading and a body paragraph.
func (c *Context) section(st Style, title, body string) {
	c.heading(st, title)
	c.Engine.Paragraph(body, c.Engine.Body())
	c.gap()
}

func (c *Context) gap() {
	c.Engine.Advance(c.Engine.Theme().Spacing.SectionGap)
}

// totals draws a label/amount block aligned to the end side. The last row
// is emphasized.
func (c *Context) totals(st Style, rows [][2]string) {
	e := c.Engine
	th := e.Theme()
	x := e.Left() + e.Width() - totalsWidth
	labelW := totalsWidth * 0.5
	body := e.Body()
	lh := e.LineHeight(body) + 1

	e.EnsureSpace(float64(len(rows))*lh + 2)
	for i, row := range rows {
		label := body
		value := body
		value.Align = layout.AlignEnd
		y := e.Y()
		if i == len(rows)-1 {
			label.Style, value.Style = fonts.StyleBold, fonts.StyleBold
			switch {
			case st.HeaderBand:
				e.Fill(x, y, totalsWidth, lh, th.Colors.Primary)
				white := theme.RGB{R: 255, G: 255, B: 255}
				label.Color, value.Color = white, white
			case st.Rules:
				e.Rule(th.Colors.Text, 0.3)
				y = e.Y()
			}
		}
		e.Text(x+1.5, labelW, y, row[0], label)
		e.Text(x+labelW, totalsWidth-labelW-1.5, y, row[1], value)
		e.SetY(y + lh)
	}
}

// footer numbers every page and repeats the website URL.
func (c *Context) footer(st Style) {
	e := c.Engine
	th := e.Theme()
	url := strings.TrimSpace(c.Options.WebsiteURL)

	e.Finish(func(page, total int) {
		y := e.FooterY()
		small := e.Small()
		if !st.Muted {
			e.PDF().SetDrawColor(th.Colors.Border.R, th.Colors.Border.G, th.Colors.Border.B)
			e.PDF().SetLineWidth(0.2)
			e.PDF().Line(e.Left(), y-1.5, e.Left()+e.Width(), y-1.5)
		}

		number := small
		number.Align = layout.AlignEnd
		if st.Centered {
			number.Align = layout.AlignCenter
		}
		e.Text(e.Left(), e.Width(), y, fmt.Sprintf("%d / %d", page, total), number)
		switch {
		case url == "":
		case st.Centered:
			link := small
			link.Align = layout.AlignCenter
			e.Text(e.Left(), e.Width(), y-e.LineHeight(small), url, link)
		default:
			e.Text(e.Left(), e.Width()/2, y, url, small)
		}
	})
}

func (c *Context) err() error {
	pdf := c.Engine.PDF()
	if pdf.Err() {
		return pdf.Error()
	}
	return nil
}
