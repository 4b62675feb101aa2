package document

import (
	"math"
	"strconv"
	"strings"

	"github.com/alnah/go-docpdf/internal/locale"
)

// Placeholders substituted for missing values.
const (
	UnknownParty         = "Unknown Party"
	NoAddress            = "No address provided"
	NoEmail              = "No email provided"
	NoPhone              = "No phone provided"
	NotSpecified         = "Not specified"
	DefaultInvoiceNumber = "N/A"
	DefaultItem          = "Item"
	DefaultNDATitle      = "Non-Disclosure Agreement"
	DefaultNDAPurpose    = "Evaluating a potential business relationship between the parties."
	DefaultTerm          = 12
)

// DefaultSection is synthesized when an agreement has no usable section.
var DefaultSection = Section{
	Title: "Confidentiality",
	Body: "The Receiving Party shall hold all Confidential Information in strict confidence " +
		"and shall not disclose it to any third party without the prior written consent " +
		"of the Disclosing Party.",
}

// Normalize applies the sanitization rules to a document built in code.
// It returns a new document and never modifies d. A nil document stays nil.
func Normalize(d Document) Document {
	switch v := d.(type) {
	case *Invoice:
		if v == nil {
			return nil
		}
		return NormalizeInvoice(*v)
	case *NDA:
		if v == nil {
			return nil
		}
		return NormalizeNDA(*v)
	}
	return nil
}

// NormalizeParty fills empty fields with placeholders.
func NormalizeParty(p Party) Party {
	return Party{
		Name:    orDefault(p.Name, UnknownParty),
		Address: orDefault(p.Address, NoAddress),
		Email:   orDefault(p.Email, NoEmail),
		Phone:   orDefault(p.Phone, NoPhone),
	}
}

// NormalizeInvoice trims text, fills placeholders and recomputes totals.
func NormalizeInvoice(in Invoice) *Invoice {
	out := in
	out.Number = orDefault(in.Number, DefaultInvoiceNumber)
	out.From = NormalizeParty(in.From)
	out.To = NormalizeParty(in.To)
	out.Currency = normalizeCurrency(in.Currency)
	out.Locale = strings.TrimSpace(in.Locale)
	out.Notes = strings.TrimSpace(in.Notes)
	out.Terms = strings.TrimSpace(in.Terms)

	out.Items = make([]LineItem, 0, len(in.Items))
	for _, item := range in.Items {
		item.Description = orDefault(item.Description, DefaultItem)
		item.Quantity = finite(item.Quantity)
		item.Rate = finite(item.Rate)
		out.Items = append(out.Items, item)
	}
	Recalculate(&out)
	return &out
}

// Recalculate enforces Total == Subtotal + TaxAmount. Line amounts are
// Quantity × Rate; the subtotal is their sum when there are items and the
// supplied subtotal otherwise. A tax rate above 1 is read as a percentage.
func Recalculate(inv *Invoice) {
	if len(inv.Items) > 0 {
		sum := 0.0
		for i := range inv.Items {
			inv.Items[i].Amount = locale.Round2(inv.Items[i].Quantity * inv.Items[i].Rate)
			sum += inv.Items[i].Amount
		}
		inv.Subtotal = sum
	}
	inv.Subtotal = locale.Round2(inv.Subtotal)
	inv.TaxRate = NormalizeTaxRate(inv.TaxRate)
	inv.TaxAmount = locale.Round2(inv.Subtotal * inv.TaxRate)
	inv.Total = locale.Round2(inv.Subtotal + inv.TaxAmount)
}

// NormalizeTaxRate turns 8 into 0.08 and clamps negative rates to 0.
func NormalizeTaxRate(rate float64) float64 {
	rate = finite(rate)
	if rate < 0 {
		return 0
	}
	if rate > 1 {
		return rate / 100
	}
	return rate
}

// NormalizeNDA trims text, fills placeholders and guarantees a section.
func NormalizeNDA(in NDA) *NDA {
	out := in
	out.Title = orDefault(in.Title, DefaultNDATitle)
	out.Disclosing = NormalizeParty(in.Disclosing)
	out.Receiving = NormalizeParty(in.Receiving)
	out.Purpose = orDefault(in.Purpose, DefaultNDAPurpose)
	out.Jurisdiction = orDefault(in.Jurisdiction, NotSpecified)
	out.Locale = strings.TrimSpace(in.Locale)
	if out.TermMonths <= 0 {
		out.TermMonths = DefaultTerm
	}

	out.Sections = make([]Section, 0, len(in.Sections))
	for _, s := range in.Sections {
		title := strings.TrimSpace(s.Title)
		body := strings.TrimSpace(s.Body)
		if body == "" {
			continue
		}
		if title == "" {
			title = "Section " + strconv.Itoa(len(out.Sections)+1)
		}
		out.Sections = append(out.Sections, Section{Title: title, Body: body})
	}
	if len(out.Sections) == 0 {
		out.Sections = []Section{DefaultSection}
	}
	return &out
}

func normalizeCurrency(code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	if len(code) != 3 {
		return locale.DefaultCurrency
	}
	for _, r := range code {
		if r < 'A' || r > 'Z' {
			return locale.DefaultCurrency
		}
	}
	return code
}

func orDefault(s, def string) string {
	if s = strings.TrimSpace(s); s == "" {
		return def
	}
	return s
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
