package compose

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"reflect"
	"strconv"
	"strings"
	"testing"
	"time"
	"unicode/utf16"

	"github.com/go-pdf/fpdf"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/alnah/go-docpdf/internal/document"
	"github.com/alnah/go-docpdf/internal/fonts"
	"github.com/alnah/go-docpdf/internal/layout"
	"github.com/alnah/go-docpdf/internal/locale"
	"github.com/alnah/go-docpdf/internal/script"
	"github.com/alnah/go-docpdf/internal/theme"
)

func newContext(t *testing.T, dir script.Direction, opts Options) (*Context, *fpdf.Fpdf) {
	t.Helper()
	set, err := fonts.NewRegistry().Prepare(context.Background(), "en-US")
	if err != nil {
		t.Fatalf("Prepare: %v", err)
	}
	pdf := fpdf.New("P", "mm", "A4", "")
	set.Register(pdf)
	e := layout.New(pdf, layout.Config{Theme: theme.Default(), Fonts: set, Direction: dir})
	return NewContext(e, locale.New(), "en-US", opts, zap.NewNop()), pdf
}

func pngLogo(t *testing.T) *Logo {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 40, 20))
	for x := range 40 {
		for y := range 20 {
			img.Set(x, y, color.RGBA{R: 200, G: 30, B: 30, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return &Logo{Data: buf.Bytes(), Format: "png", Width: 40, Height: 20}
}

func sampleInvoice(items int) *document.Invoice {
	inv := document.Invoice{
		Number:    "INV-2024-001",
		IssueDate: time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
		From:      document.Party{Name: "Acme Studio", Address: "1 Main Street\nSpringfield", Email: "billing@acme.test"},
		To:        document.Party{Name: "Globex"},
		TaxRate:   0.08,
		Currency:  "EUR",
		Notes:     "Thank you for your business.",
		Terms:     "Payment due within 30 days.",
	}
	for i := range items {
		inv.Items = append(inv.Items, document.LineItem{
			Description: "Design work, milestone " + strconv.Itoa(i+1),
			Quantity:    2,
			Rate:        45.5,
		})
	}
	return document.NormalizeInvoice(inv)
}

func sampleNDA() *document.NDA {
	return document.NormalizeNDA(document.NDA{
		EffectiveDate: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		Disclosing:    document.Party{Name: "Acme"},
		Receiving:     document.Party{Name: "Globex"},
		Sections: []document.Section{
			{Title: "Definitions", Body: "Confidential Information means any non-public information."},
			{Title: "Obligations", Body: "The Receiving Party shall protect the information."},
		},
		Jurisdiction: "Delaware",
		Mutual:       true,
	})
}

func TestParseTemplate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in     string
		want   Template
		wantOK bool
	}{
		{"modern", TemplateModern, true},
		{"Classic", TemplateClassic, true},
		{" minimal ", TemplateMinimal, true},
		{"fancy", TemplateModern, false},
		{"", TemplateModern, false},
	}

	for _, tt := range tests {
		got, ok := ParseTemplate(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ParseTemplate(%q) = %q, %v; want %q, %v", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestSelect(t *testing.T) {
	t.Parallel()

	for _, dt := range document.Types() {
		for _, tpl := range Templates() {
			c, err := Select(dt, tpl)
			if err != nil {
				t.Fatalf("Select(%s, %s): %v", dt, tpl, err)
			}
			if c.Style().Template != tpl {
				t.Errorf("Select(%s, %s) style = %s", dt, tpl, c.Style().Template)
			}
		}
	}

	c, err := Select(document.TypeInvoice, Template("fancy"))
	if err != nil || c.Style().Template != TemplateModern {
		t.Errorf("unknown template should use modern, got %v, %v", c, err)
	}

	_, err = Select(document.Type("receipt"), TemplateModern)
	var typeErr *document.UnsupportedTypeError
	if !errors.As(err, &typeErr) {
		t.Errorf("Select(receipt) error = %v, want *UnsupportedTypeError", err)
	}
}

func TestComposeEveryTemplate(t *testing.T) {
	t.Parallel()

	docs := []document.Document{sampleInvoice(3), sampleNDA()}
	for _, doc := range docs {
		for _, tpl := range Templates() {
			for _, dir := range []script.Direction{script.LTR, script.RTL} {
				name := fmt.Sprintf("%s/%s/%s", doc.Type(), tpl, dir)
				t.Run(name, func(t *testing.T) {
					t.Parallel()

					ctx, pdf := newContext(t, dir, Options{
						IncludeWatermark: true,
						Logo:             pngLogo(t),
						WebsiteURL:       "https://acme.test",
					})
					c, err := Select(doc.Type(), tpl)
					if err != nil {
						t.Fatalf("Select: %v", err)
					}
					if err := c.Compose(ctx, doc); err != nil {
						t.Fatalf("Compose: %v", err)
					}

					var buf bytes.Buffer
					if err := pdf.Output(&buf); err != nil {
						t.Fatalf("Output: %v", err)
					}
					if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
						t.Errorf("output does not start with a PDF header")
					}
				})
			}
		}
	}
}

func TestComposeLongInvoiceSpansPages(t *testing.T) {
	t.Parallel()

	ctx, pdf := newContext(t, script.LTR, Options{})
	c, _ := Select(document.TypeInvoice, TemplateClassic)
	if err := c.Compose(ctx, sampleInvoice(90)); err != nil {
		t.Fatalf("Compose: %v", err)
	}
	if pdf.PageCount() < 2 {
		t.Errorf("PageCount = %d, want at least 2", pdf.PageCount())
	}
}

// pdfText encodes s the way fpdf writes UTF-8 font text into a content
// stream.
func pdfText(s string) []byte {
	var b []byte
	for _, u := range utf16.Encode([]rune(s)) {
		b = append(b, byte(u>>8), byte(u))
	}
	return b
}

func TestComposeInvoiceDrawsRecomputedTotals(t *testing.T) {
	t.Parallel()

	ctx, pdf := newContext(t, script.LTR, Options{})
	pdf.SetCompression(false)
	inv := document.SanitizeInvoice([]byte(`{"currency": "USD", "subtotal": 100, "taxRate": 0.08, "taxAmount": 50, "total": 1}`))
	c, _ := Select(document.TypeInvoice, TemplateClassic)
	if err := c.Compose(ctx, inv); err != nil {
		t.Fatalf("Compose: %v", err)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		t.Fatalf("Output: %v", err)
	}
	for _, want := range []string{"$100.00", "$8.00", "$108.00"} {
		if !bytes.Contains(buf.Bytes(), pdfText(want)) {
			t.Errorf("content stream does not draw %q", want)
		}
	}
	if bytes.Contains(buf.Bytes(), pdfText("$50.00")) {
		t.Error("content stream draws the stale tax amount $50.00")
	}
}

func TestComposeSplitsPartyTallerThanPage(t *testing.T) {
	t.Parallel()

	ctx, pdf := newContext(t, script.LTR, Options{})
	inv := sampleInvoice(1)
	inv.From.Address = strings.Repeat("Building 7, Industrial Park Road, Springfield\n", 120)
	c, _ := Select(document.TypeInvoice, TemplateModern)
	if err := c.Compose(ctx, inv); err != nil {
		t.Fatalf("Compose: %v", err)
	}
	if pdf.PageCount() < 2 {
		t.Errorf("PageCount = %d, want the address to continue on a second page", pdf.PageCount())
	}
	if y := ctx.Engine.Y(); y > ctx.Engine.Bottom() {
		t.Errorf("cursor %.1f is past the bottom %.1f", y, ctx.Engine.Bottom())
	}
}

func TestComposeEmptyInvoice(t *testing.T) {
	t.Parallel()

	ctx, pdf := newContext(t, script.LTR, Options{})
	c, _ := Select(document.TypeInvoice, TemplateMinimal)
	if err := c.Compose(ctx, document.SanitizeInvoice([]byte(`null`))); err != nil {
		t.Fatalf("Compose: %v", err)
	}
	if pdf.PageCount() != 1 {
		t.Errorf("PageCount = %d, want 1", pdf.PageCount())
	}
}

func TestComposeRejectsMismatchedDocument(t *testing.T) {
	t.Parallel()

	ctx, _ := newContext(t, script.LTR, Options{})
	c, _ := Select(document.TypeInvoice, TemplateModern)
	if err := c.Compose(ctx, sampleNDA()); !errors.Is(err, ErrDocumentMismatch) {
		t.Errorf("err = %v, want ErrDocumentMismatch", err)
	}

	c, _ = Select(document.TypeNDA, TemplateModern)
	if err := c.Compose(ctx, nil); !errors.Is(err, ErrDocumentMismatch) {
		t.Errorf("err = %v, want ErrDocumentMismatch", err)
	}
}

func TestComposeSkipsBrokenLogo(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zap.WarnLevel)
	ctx, pdf := newContext(t, script.LTR, Options{
		Logo: &Logo{Data: []byte("not an image"), Format: "png", Width: 10, Height: 10},
	})
	ctx.Logger = zap.New(core)

	c, _ := Select(document.TypeInvoice, TemplateModern)
	if err := c.Compose(ctx, sampleInvoice(1)); err != nil {
		t.Fatalf("Compose: %v", err)
	}
	if ctx.Options.Logo != nil {
		t.Error("broken logo should be dropped")
	}
	if logs.FilterMessageSnippet("logo").Len() != 1 {
		t.Errorf("expected one logo warning, got %d", logs.Len())
	}
	if err := pdf.Output(&bytes.Buffer{}); err != nil {
		t.Errorf("Output: %v", err)
	}
}

func TestLabelsFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		locale string
		want   string
	}{
		{"en-US", "Invoice"},
		{"fr-FR", "Facture"},
		{"es_MX", "Factura"},
		{"de", "Rechnung"},
		{"ar-SA", "فاتورة"},
		{"zh-CN", "发票"},
		{"zh-TW", "發票"},
		{"ja-JP", "請求書"},
		{"ko-KR", "청구서"},
		{"sw-KE", "Invoice"},
		{"not a locale", "Invoice"},
	}

	for _, tt := range tests {
		if got := LabelsFor(tt.locale).Invoice; got != tt.want {
			t.Errorf("LabelsFor(%q).Invoice = %q, want %q", tt.locale, got, tt.want)
		}
	}
}

func TestEveryTranslationIsComplete(t *testing.T) {
	t.Parallel()

	fields := 0
	lt := reflect.TypeOf(Labels{})
	for i := range lt.NumField() {
		if lt.Field(i).Type.Kind() == reflect.String {
			fields++
		}
	}
	// Every label field has a message, plus the term length.
	want := fields + 1

	for _, tag := range labelLanguages[1:] {
		messages := translations[tag]
		if len(messages) != want {
			t.Errorf("%s: %d messages, want %d", tag, len(messages), want)
		}
		l := LabelsFor(tag.String())
		if l.Invoice != messages[msgInvoice] {
			t.Errorf("LabelsFor(%q).Invoice = %q, want %q", tag, l.Invoice, messages[msgInvoice])
		}
		v := reflect.ValueOf(l)
		for i := range v.NumField() {
			if f := v.Field(i); f.Kind() == reflect.String && f.String() == "" {
				t.Errorf("%s: %s is empty", tag, lt.Field(i).Name)
			}
		}
		if got := l.Months(6); !strings.Contains(got, "6") {
			t.Errorf("%s: Months(6) = %q", tag, got)
		}
	}
}

func TestLabelsMonths(t *testing.T) {
	t.Parallel()

	tests := []struct {
		locale string
		want   string
	}{
		{"en-US", "12 months"},
		{"fr-FR", "12 mois"},
		{"de-AT", "12 Monate"},
		{"ko", "12개월"},
	}
	for _, tt := range tests {
		if got := LabelsFor(tt.locale).Months(12); got != tt.want {
			t.Errorf("LabelsFor(%q).Months(12) = %q, want %q", tt.locale, got, tt.want)
		}
	}
	if got := (Labels{}).Months(3); got != "3 months" {
		t.Errorf("zero Labels Months(3) = %q, want English", got)
	}
}

func TestContextDate(t *testing.T) {
	t.Parallel()

	ctx, _ := newContext(t, script.LTR, Options{})
	if got := ctx.Date(time.Time{}); got != "Not specified" {
		t.Errorf("zero date = %q", got)
	}

	ctx.Options.DateFormat = "YYYY-MM-DD"
	if got := ctx.Date(time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)); got != "2024-03-05" {
		t.Errorf("custom format = %q", got)
	}

	ctx.Labels = LabelsFor("fr")
	if got := ctx.Date(time.Time{}); got != "Non spécifié" {
		t.Errorf("French zero date = %q", got)
	}
}
