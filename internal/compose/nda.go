package compose

import (
	"strconv"

	"github.com/alnah/go-docpdf/internal/document"
	"github.com/alnah/go-docpdf/internal/fonts"
)

type ndaComposer struct {
	style Style
}

func (nc ndaComposer) Style() Style { return nc.style }

// Compose draws the title, term, parties, purpose, numbered clauses,
// governing law and a signature block.
func (nc ndaComposer) Compose(c *Context, doc document.Document) error {
	nda, ok := doc.(*document.NDA)
	if !ok || nda == nil {
		return mismatch(document.TypeNDA, doc)
	}
	st := nc.style
	l := c.Labels

	title := nda.Title
	if title == document.DefaultNDATitle {
		title = l.NDA
	}
	subtitle := ""
	if nda.Mutual {
		subtitle = l.Mutual
	}

	c.begin(st, l.Confidential)
	c.header(st, title, subtitle)

	termination := nda.TerminationDate
	if termination.IsZero() && !nda.EffectiveDate.IsZero() {
		termination = nda.EffectiveDate.AddDate(0, nda.TermMonths, 0)
	}
	c.keyValues([][2]string{
		{l.EffectiveDate, c.Date(nda.EffectiveDate)},
		{l.Term, l.Months(nda.TermMonths)},
		{l.TerminationDate, c.Date(termination)},
	})
	c.gap()
	c.parties(st, l.Disclosing, nda.Disclosing, l.Receiving, nda.Receiving)
	c.gap()

	c.section(st, l.Purpose, nda.Purpose)

	c.heading(st, l.Clauses)
	e := c.Engine
	clause := e.Body()
	clause.Style = fonts.StyleBold
	for i, s := range nda.Sections {
		e.EnsureSpace(e.LineHeight(clause) + 2*e.LineHeight(e.Body()))
		e.Paragraph(strconv.Itoa(i+1)+". "+s.Title, clause)
		e.Paragraph(s.Body, e.Body())
		e.Advance(e.Theme().Spacing.ParagraphGap)
	}
	c.gap()

	jurisdiction := nda.Jurisdiction
	if jurisdiction == document.NotSpecified {
		jurisdiction = l.NotSpecified
	}
	c.section(st, l.GoverningLaw, jurisdiction)

	c.signatures(st, nda)
	c.footer(st)
	return c.err()
}

// signatures draws one signature column per party. The block is kept on
// one page.
func (c *Context) signatures(st Style, nda *document.NDA) {
	e := c.Engine
	th := e.Theme()
	l := c.Labels
	colW := (e.Width() - columnGap) / 2
	small := e.Small()
	name := e.Body()
	name.Style = fonts.StyleBold

	lh := e.LineHeight(name)
	sh := e.LineHeight(small)
	blockH := e.LineHeight(e.Heading()) + th.Spacing.ParagraphGap + lh + signatureGap + 3*sh

	e.EnsureSpace(blockH)
	c.heading(st, l.Signatures)
	top := e.Y()

	parties := []struct {
		role  string
		party document.Party
	}{
		{l.Disclosing, nda.Disclosing},
		{l.Receiving, nda.Receiving},
	}
	for i, p := range parties {
		x := e.Left() + float64(i)*(colW+columnGap)
		y := top
		e.Text(x, colW, y, p.role, small)
		y += sh
		e.Text(x, colW, y, p.party.Name, name)
		y += lh + signatureGap

		pdf := e.PDF()
		pdf.SetDrawColor(th.Colors.Text.R, th.Colors.Text.G, th.Colors.Text.B)
		pdf.SetLineWidth(0.3)
		pdf.Line(e.X(x, colW), y, e.X(x, colW)+colW, y)
		y += 1

		e.Text(x, colW, y, l.Signature, small)
		y += sh
		e.Text(x, colW, y, l.Date+": ____________________", small)
	}
	e.SetY(top + sh + lh + signatureGap + 1 + 2*sh)
	e.Advance(th.Spacing.ParagraphGap)
}
