package compose

import (
	"fmt"

	"github.com/alnah/go-docpdf/internal/document"
	"github.com/alnah/go-docpdf/internal/locale"
	"github.com/alnah/go-docpdf/internal/table"
)

type invoiceComposer struct {
	style Style
}

func (ic invoiceComposer) Style() Style { return ic.style }

// Compose draws the header, dates, parties, line items, totals, then notes
// and terms when present.
func (ic invoiceComposer) Compose(c *Context, doc document.Document) error {
	inv, ok := doc.(*document.Invoice)
	if !ok || inv == nil {
		return mismatch(document.TypeInvoice, doc)
	}
	st := ic.style
	l := c.Labels

	c.begin(st, l.Draft)
	c.header(st, l.Invoice, l.InvoiceNumber+" "+inv.Number)
	c.keyValues([][2]string{
		{l.InvoiceNumber, inv.Number},
		{l.IssueDate, c.Date(inv.IssueDate)},
		{l.DueDate, c.Date(inv.DueDate)},
	})
	c.gap()
	c.parties(st, l.From, inv.From, l.BillTo, inv.To)
	c.gap()

	if _, err := c.itemsTable(st, inv).Render(c.Engine); err != nil {
		return fmt.Errorf("drawing line items: %w", err)
	}
	c.gap()

	money := func(v float64) string { return c.Formatter.FormatCurrency(v, inv.Currency, c.Locale) }
	c.totals(st, [][2]string{
		{l.Subtotal, money(inv.Subtotal)},
		{fmt.Sprintf("%s (%s)", l.Tax, c.Formatter.FormatPercent(inv.TaxRate, c.Locale)), money(inv.TaxAmount)},
		{l.Total, money(inv.Total)},
	})
	c.gap()

	if inv.Notes != "" {
		c.section(st, l.Notes, inv.Notes)
	}
	if inv.Terms != "" {
		c.section(st, l.Terms, inv.Terms)
	}

	c.footer(st)
	return c.err()
}

func (c *Context) itemsTable(st Style, inv *document.Invoice) *table.Table {
	th := c.Engine.Theme()
	l := c.Labels

	tbl := table.New(th,
		table.Column{Header: l.Description},
		table.Column{Header: l.Quantity, Width: 20, Numeric: true},
		table.Column{Header: l.Rate, Width: 32, Numeric: true},
		table.Column{Header: l.Amount, Width: 34, Numeric: true},
	)
	ts := table.StyleFor(th)
	ts.Striped = st.Striped
	ts.Borders = st.Borders
	if st.Muted {
		ts.HeaderFill = th.Colors.Surface
		ts.Header.Color = th.Colors.Text
	}
	tbl.SetStyle(ts)

	if len(inv.Items) == 0 {
		tbl.AddRow(l.NoItems)
		return tbl
	}
	qty := locale.NumberOptions{MinFraction: 0, MaxFraction: 2}
	for _, it := range inv.Items {
		tbl.AddRow(
			it.Description,
			c.Formatter.FormatNumber(it.Quantity, c.Locale, qty),
			c.Formatter.FormatCurrency(it.Rate, inv.Currency, c.Locale),
			c.Formatter.FormatCurrency(it.Amount, inv.Currency, c.Locale),
		)
	}
	return tbl
}
