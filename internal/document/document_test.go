package document

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestParseType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    Type
		wantErr bool
	}{
		{"invoice", TypeInvoice, false},
		{"INVOICE", TypeInvoice, false},
		{" nda ", TypeNDA, false},
		{"receipt", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			got, err := ParseType(tt.in)
			if tt.wantErr {
				var typeErr *UnsupportedTypeError
				if !errors.As(err, &typeErr) {
					t.Fatalf("ParseType(%q) error = %v, want *UnsupportedTypeError", tt.in, err)
				}
				if typeErr.Type != tt.in {
					t.Errorf("Type = %q, want %q", typeErr.Type, tt.in)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Errorf("ParseType(%q) = %q, %v; want %q", tt.in, got, err, tt.want)
			}
		})
	}
}

func TestSanitizersNeverFail(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"",
		"null",
		"{}",
		"[]",
		`"invoice"`,
		"42",
		"{not json",
		`{"from": 3, "to": [], "items": "many", "taxRate": {}}`,
		`{"items": [null, 1, "x", {"quantity": "abc", "rate": null}]}`,
		`{"sections": [null, 2, {"title": 3}], "disclosingParty": true}`,
		`{"sections": {}, "termMonths": "forever", "mutual": []}`,
		`{"date": "yesterday", "dueDate": -1, "effectiveDate": false}`,
	}

	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			t.Parallel()

			inv := SanitizeInvoice([]byte(in))
			assertParty(t, "from", inv.From)
			assertParty(t, "to", inv.To)
			if inv.Total != inv.Subtotal+inv.TaxAmount {
				t.Errorf("total %v != subtotal %v + tax %v", inv.Total, inv.Subtotal, inv.TaxAmount)
			}
			if len(inv.Currency) != 3 {
				t.Errorf("currency = %q", inv.Currency)
			}

			nda := SanitizeNDA([]byte(in))
			assertParty(t, "disclosing", nda.Disclosing)
			assertParty(t, "receiving", nda.Receiving)
			if len(nda.Sections) == 0 {
				t.Fatal("expected at least one section")
			}
			for _, s := range nda.Sections {
				if s.Title == "" || s.Body == "" {
					t.Errorf("empty section %+v", s)
				}
			}
			if nda.TermMonths <= 0 {
				t.Errorf("TermMonths = %d", nda.TermMonths)
			}
		})
	}
}

func assertParty(t *testing.T, role string, p Party) {
	t.Helper()
	if p.Name == "" || p.Address == "" || p.Email == "" || p.Phone == "" {
		t.Errorf("%s party has empty fields: %+v", role, p)
	}
}

func TestSanitizeInvoicePlaceholders(t *testing.T) {
	t.Parallel()

	inv := SanitizeInvoice([]byte(`{"from": {"name": "Acme"}}`))

	want := Party{Name: "Acme", Address: NoAddress, Email: NoEmail, Phone: NoPhone}
	if inv.From != want {
		t.Errorf("From = %+v, want %+v", inv.From, want)
	}
	if inv.To.Name != UnknownParty {
		t.Errorf("To.Name = %q, want %q", inv.To.Name, UnknownParty)
	}
	if !inv.IssueDate.IsZero() {
		t.Errorf("IssueDate = %v, want zero", inv.IssueDate)
	}
}

func TestSanitizeInvoiceRecomputesTotals(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name                 string
		in                   string
		subtotal, tax, total float64
		wantItems            int
	}{
		{
			name:     "stale tax and total",
			in:       `{"subtotal": 100, "taxRate": 0.08, "taxAmount": 50, "total": 1}`,
			subtotal: 100, tax: 8, total: 108,
		},
		{
			name:     "percent tax rate",
			in:       `{"subtotal": 100, "taxRate": 8}`,
			subtotal: 100, tax: 8, total: 108,
		},
		{
			name: "items override subtotal",
			in: `{"subtotal": 999, "taxRate": 0.1, "items": [
				{"description": "Design", "quantity": 2, "rate": 25},
				{"description": "Hosting", "rate": "$50.00"}
			]}`,
			subtotal: 100, tax: 10, total: 110, wantItems: 2,
		},
		{
			name:     "string amounts",
			in:       `{"subtotal": "1,000.00", "taxRate": "20%"}`,
			subtotal: 1000, tax: 200, total: 1200,
		},
		{
			name:     "negative rate clamps",
			in:       `{"subtotal": 10, "taxRate": -5}`,
			subtotal: 10, tax: 0, total: 10,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			inv := SanitizeInvoice([]byte(tt.in))
			if inv.Subtotal != tt.subtotal || inv.TaxAmount != tt.tax || inv.Total != tt.total {
				t.Errorf("got subtotal=%v tax=%v total=%v, want %v %v %v",
					inv.Subtotal, inv.TaxAmount, inv.Total, tt.subtotal, tt.tax, tt.total)
			}
			if len(inv.Items) != tt.wantItems {
				t.Errorf("items = %d, want %d", len(inv.Items), tt.wantItems)
			}
		})
	}
}

func TestSanitizeInvoiceItems(t *testing.T) {
	t.Parallel()

	inv := SanitizeInvoice([]byte(`{"items": [
		{"description": "  Consulting ", "qty": 1.5, "price": 100},
		{"rate": 10},
		{},
		{"description": "Free"}
	]}`))

	want := []LineItem{
		{Description: "Consulting", Quantity: 1.5, Rate: 100, Amount: 150},
		{Description: DefaultItem, Quantity: 1, Rate: 10, Amount: 10},
		{Description: "Free", Quantity: 1, Rate: 0, Amount: 0},
	}
	if len(inv.Items) != len(want) {
		t.Fatalf("items = %+v, want %+v", inv.Items, want)
	}
	for i := range want {
		if inv.Items[i] != want[i] {
			t.Errorf("item %d = %+v, want %+v", i, inv.Items[i], want[i])
		}
	}
}

func TestSanitizeInvoiceFieldsAndDates(t *testing.T) {
	t.Parallel()

	inv := SanitizeInvoice([]byte(`{
		"invoiceNumber": "INV-7",
		"date": "2024-03-05",
		"dueDate": "2024-04-05T10:00:00Z",
		"currency": "eur",
		"locale": "fr-FR",
		"billTo": "Globex",
		"notes": "Thanks for **your** business"
	}`))

	if inv.Number != "INV-7" {
		t.Errorf("Number = %q", inv.Number)
	}
	if got := inv.IssueDate.Format("2006-01-02"); got != "2024-03-05" {
		t.Errorf("IssueDate = %s", got)
	}
	if !inv.DueDate.Equal(time.Date(2024, 4, 5, 10, 0, 0, 0, time.UTC)) {
		t.Errorf("DueDate = %v", inv.DueDate)
	}
	if inv.Currency != "EUR" || inv.Locale != "fr-FR" {
		t.Errorf("Currency, Locale = %q, %q", inv.Currency, inv.Locale)
	}
	if inv.To.Name != "Globex" {
		t.Errorf("To.Name = %q", inv.To.Name)
	}
	if inv.Notes != "Thanks for your business" {
		t.Errorf("Notes = %q", inv.Notes)
	}
}

func TestSanitizeInvoiceBadCurrency(t *testing.T) {
	t.Parallel()

	for _, c := range []string{`"euro"`, `"E1R"`, `12`, `""`} {
		inv := SanitizeInvoice([]byte(`{"currency": ` + c + `}`))
		if inv.Currency != "USD" {
			t.Errorf("currency %s -> %q, want USD", c, inv.Currency)
		}
	}
}

func TestSanitizeNDA(t *testing.T) {
	t.Parallel()

	nda := SanitizeNDA([]byte(`{
		"title": "Mutual NDA",
		"effectiveDate": "2024-01-15",
		"disclosingParty": {"name": "Acme", "address": "1 Main St", "email": "a@acme.test", "phone": "555"},
		"receivingParty": {"name": "Globex"},
		"sections": [
			{"title": "Definitions", "content": "- Confidential data\n- Trade secrets"},
			{"title": "Empty", "content": "   "},
			"Obligations survive termination."
		],
		"termMonths": "24",
		"mutual": "yes",
		"jurisdiction": "Delaware"
	}`))

	if nda.Title != "Mutual NDA" || nda.Jurisdiction != "Delaware" {
		t.Errorf("Title, Jurisdiction = %q, %q", nda.Title, nda.Jurisdiction)
	}
	if nda.TermMonths != 24 || !nda.Mutual {
		t.Errorf("TermMonths, Mutual = %d, %v", nda.TermMonths, nda.Mutual)
	}
	if nda.Receiving.Email != NoEmail {
		t.Errorf("Receiving.Email = %q", nda.Receiving.Email)
	}

	want := []Section{
		{Title: "Definitions", Body: Bullet + "Confidential data\n" + Bullet + "Trade secrets"},
		{Title: "Section 2", Body: "Obligations survive termination."},
	}
	if len(nda.Sections) != len(want) {
		t.Fatalf("sections = %+v", nda.Sections)
	}
	for i := range want {
		if nda.Sections[i] != want[i] {
			t.Errorf("section %d = %+v, want %+v", i, nda.Sections[i], want[i])
		}
	}
}

func TestSanitizeNDADefaults(t *testing.T) {
	t.Parallel()

	nda := SanitizeNDA([]byte(`{"sections": []}`))
	if len(nda.Sections) != 1 || nda.Sections[0] != DefaultSection {
		t.Errorf("sections = %+v, want default section", nda.Sections)
	}
	if nda.Title != DefaultNDATitle || nda.TermMonths != DefaultTerm || nda.Jurisdiction != NotSpecified {
		t.Errorf("defaults not applied: %+v", nda)
	}
	if !nda.TerminationDate.IsZero() {
		t.Errorf("TerminationDate = %v, want zero", nda.TerminationDate)
	}
}

func TestSanitizeNDASectionObject(t *testing.T) {
	t.Parallel()

	nda := SanitizeNDA([]byte(`{"clauses": {"Term": "Two years.", "Remedies": "Injunctive relief."}}`))
	if len(nda.Sections) != 2 {
		t.Fatalf("sections = %+v", nda.Sections)
	}
	if nda.Sections[0].Title != "Term" || nda.Sections[1].Body != "Injunctive relief." {
		t.Errorf("sections = %+v", nda.Sections)
	}
}

func TestDecode(t *testing.T) {
	t.Parallel()

	doc, err := Decode("nda", []byte(`{}`))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if doc.Type() != TypeNDA {
		t.Errorf("Type = %q", doc.Type())
	}

	doc, err = Decode("invoice", []byte(`{"locale": "ja-JP"}`))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if doc.DocumentLocale() != "ja-JP" {
		t.Errorf("locale = %q", doc.DocumentLocale())
	}

	_, err = Decode("letter", []byte(`{}`))
	var typeErr *UnsupportedTypeError
	if !errors.As(err, &typeErr) {
		t.Errorf("Decode(letter) error = %v", err)
	}
}

func TestNormalizeTypedDocuments(t *testing.T) {
	t.Parallel()

	in := &Invoice{
		Items:   []LineItem{{Description: "Widget", Quantity: 4, Rate: 2.5, Amount: 99}},
		TaxRate: 0.08,
		Total:   1,
	}
	out, ok := Normalize(in).(*Invoice)
	if !ok {
		t.Fatal("Normalize did not return *Invoice")
	}
	if out.Subtotal != 10 || out.TaxAmount != 0.8 || out.Total != 10.8 {
		t.Errorf("totals = %v %v %v", out.Subtotal, out.TaxAmount, out.Total)
	}
	if in.Items[0].Amount != 99 {
		t.Error("Normalize modified its input")
	}

	nda, ok := Normalize(&NDA{Sections: []Section{{Body: "Keep it secret."}}}).(*NDA)
	if !ok {
		t.Fatal("Normalize did not return *NDA")
	}
	if nda.Sections[0].Title != "Section 1" {
		t.Errorf("section title = %q", nda.Sections[0].Title)
	}

	if Normalize((*Invoice)(nil)) != nil {
		t.Error("Normalize(nil invoice) should be nil")
	}
}

func TestFlatten(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "  ", ""},
		{"plain", "Hello world", "Hello world"},
		{"emphasis", "Pay *within* **30** days", "Pay within 30 days"},
		{"paragraphs", "First.\n\nSecond.", "First.\nSecond."},
		{"soft break", "one\ntwo", "one two"},
		{"heading", "# Scope\nBody", "Scope\nBody"},
		{"bullets", "- a\n- b", Bullet + "a\n" + Bullet + "b"},
		{"ordered", "3. c\n4. d", "3. c\n4. d"},
		{"code span", "Use `KEY` here", "Use KEY here"},
		{"link", "See [terms](https://example.com)", "See terms"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Flatten(tt.in); got != tt.want {
				t.Errorf("Flatten(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestFlattenKeepsNonLatinText(t *testing.T) {
	t.Parallel()

	in := "شروط الدفع\n\n- 支付条款"
	got := Flatten(in)
	if !strings.Contains(got, "شروط الدفع") || !strings.Contains(got, Bullet+"支付条款") {
		t.Errorf("Flatten(%q) = %q", in, got)
	}
}
