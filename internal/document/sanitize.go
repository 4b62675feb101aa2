package document

import (
	"strconv"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

// dateLayouts are tried in order when a date arrives as a string.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
}

// Decode sanitizes raw JSON into the document variant named by docType.
// Only the type can fail; malformed or partial payloads produce a document
// filled with placeholders.
func Decode(docType string, raw []byte) (Document, error) {
	t, err := ParseType(docType)
	if err != nil {
		return nil, err
	}
	if t == TypeNDA {
		return SanitizeNDA(raw), nil
	}
	return SanitizeInvoice(raw), nil
}

// SanitizeInvoice builds an invoice from untrusted JSON. It never fails:
// null, non-object and wrongly typed input all yield a valid invoice.
func SanitizeInvoice(raw []byte) *Invoice {
	root := parseObject(raw)

	inv := Invoice{
		Number:    text(first(root, "invoiceNumber", "number", "id")),
		IssueDate: date(first(root, "issueDate", "date", "invoiceDate")),
		DueDate:   date(first(root, "dueDate", "paymentDue")),
		From:      party(first(root, "from", "seller", "company")),
		To:        party(first(root, "to", "billTo", "client", "customer")),
		Subtotal:  number(first(root, "subtotal")),
		TaxRate:   number(first(root, "taxRate", "tax_rate")),
		Currency:  text(first(root, "currency")),
		Locale:    text(first(root, "locale", "language")),
		Notes:     Flatten(text(first(root, "notes"))),
		Terms:     Flatten(text(first(root, "terms", "paymentTerms"))),
	}

	items := first(root, "items", "lineItems")
	if items.IsArray() {
		for _, it := range items.Array() {
			if item, ok := lineItem(it); ok {
				inv.Items = append(inv.Items, item)
			}
		}
	}
	return NormalizeInvoice(inv)
}

// SanitizeNDA builds an agreement from untrusted JSON. It never fails and
// the result always carries at least one section.
func SanitizeNDA(raw []byte) *NDA {
	root := parseObject(raw)

	nda := NDA{
		Title:           text(first(root, "title")),
		EffectiveDate:   date(first(root, "effectiveDate", "date")),
		TerminationDate: date(first(root, "terminationDate", "expirationDate")),
		Disclosing:      party(first(root, "disclosingParty", "discloser")),
		Receiving:       party(first(root, "receivingParty", "recipient")),
		Purpose:         Flatten(text(first(root, "purpose"))),
		Jurisdiction:    text(first(root, "jurisdiction", "governingLaw")),
		TermMonths:      int(number(first(root, "termMonths", "term", "duration"))),
		Mutual:          flag(first(root, "mutual", "isMutual")),
		Locale:          text(first(root, "locale", "language")),
	}

	sections := first(root, "sections", "clauses")
	switch {
	case sections.IsArray():
		for _, s := range sections.Array() {
			nda.Sections = append(nda.Sections, section(s))
		}
	case sections.IsObject():
		sections.ForEach(func(key, value gjson.Result) bool {
			nda.Sections = append(nda.Sections, Section{Title: key.String(), Body: Flatten(text(value))})
			return true
		})
	}
	return NormalizeNDA(nda)
}

func parseObject(raw []byte) gjson.Result {
	if !gjson.ValidBytes(raw) {
		return gjson.Result{}
	}
	res := gjson.ParseBytes(raw)
	if !res.IsObject() {
		return gjson.Result{}
	}
	return res
}

// first returns the first key present with a non-null value.
func first(obj gjson.Result, keys ...string) gjson.Result {
	if !obj.IsObject() {
		return gjson.Result{}
	}
	for _, k := range keys {
		if v := obj.Get(k); v.Exists() && v.Type != gjson.Null {
			return v
		}
	}
	return gjson.Result{}
}

// text accepts strings and numbers; everything else is empty.
func text(v gjson.Result) string {
	switch v.Type {
	case gjson.String:
		return strings.TrimSpace(v.Str)
	case gjson.Number:
		return v.Raw
	}
	return ""
}

// number accepts numbers and numeric strings such as "$1,200.50" or "8%".
func number(v gjson.Result) float64 {
	switch v.Type {
	case gjson.Number:
		return finite(v.Num)
	case gjson.String:
		s := strings.Map(func(r rune) rune {
			if (r >= '0' && r <= '9') || r == '.' || r == '-' {
				return r
			}
			return -1
		}, v.Str)
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0
		}
		return finite(f)
	}
	return 0
}

func flag(v gjson.Result) bool {
	switch v.Type {
	case gjson.True:
		return true
	case gjson.String:
		switch strings.ToLower(strings.TrimSpace(v.Str)) {
		case "true", "yes", "1":
			return true
		}
	case gjson.Number:
		return v.Num != 0
	}
	return false
}

// date accepts the layouts in dateLayouts and Unix seconds. Anything else
// is the zero time, rendered as "Not specified".
func date(v gjson.Result) time.Time {
	switch v.Type {
	case gjson.String:
		s := strings.TrimSpace(v.Str)
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t
			}
		}
	case gjson.Number:
		if v.Num > 0 {
			return time.Unix(int64(v.Num), 0).UTC()
		}
	}
	return time.Time{}
}

// party accepts an object or a bare name.
func party(v gjson.Result) Party {
	if v.Type == gjson.String {
		return Party{Name: strings.TrimSpace(v.Str)}
	}
	return Party{
		Name:    text(first(v, "name", "company")),
		Address: text(first(v, "address")),
		Email:   text(first(v, "email")),
		Phone:   text(first(v, "phone")),
	}
}

// lineItem reads one item. A missing quantity defaults to 1; items that are
// not objects or carry neither a description nor a rate are dropped.
func lineItem(v gjson.Result) (LineItem, bool) {
	if !v.IsObject() {
		return LineItem{}, false
	}
	item := LineItem{
		Description: text(first(v, "description", "name", "item")),
		Quantity:    1,
		Rate:        number(first(v, "rate", "price", "unitPrice")),
	}
	if q := first(v, "quantity", "qty"); q.Exists() {
		item.Quantity = number(q)
	}
	if item.Description == "" && item.Rate == 0 {
		return LineItem{}, false
	}
	return item, true
}

// section accepts an object or a bare clause body.
func section(v gjson.Result) Section {
	if v.Type == gjson.String {
		return Section{Body: Flatten(v.Str)}
	}
	return Section{
		Title: text(first(v, "title", "heading")),
		Body:  Flatten(text(first(v, "content", "body", "text"))),
	}
}
