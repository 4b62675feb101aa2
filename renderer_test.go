package docpdf

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/alnah/go-docpdf/internal/fonts"
)

const invoiceJSON = `{
  "invoiceNumber": "INV-7",
  "issueDate": "2024-03-05",
  "from": {"name": "Acme Studio", "email": "billing@acme.test"},
  "to": "Globex",
  "items": [
    {"description": "Design", "quantity": 2, "rate": 40},
    {"description": "Build", "quantity": 1, "rate": 20}
  ],
  "taxRate": 0.08,
  "taxAmount": 999,
  "total": 1,
  "currency": "EUR"
}`

const ndaJSON = `{
  "documentType": "nda",
  "disclosingParty": {"name": "Acme"},
  "receivingParty": {"name": "Globex"},
  "sections": [{"title": "Scope", "content": "**All** shared material."}],
  "jurisdiction": "Delaware"
}`

// offlineFetcher serves the Go regular font for every source.
func offlineFetcher(calls *atomic.Int64) FontFetcher {
	return fonts.FetcherFunc(func(ctx context.Context, source string) ([]byte, error) {
		if calls != nil {
			calls.Add(1)
		}
		return goregular.TTF, nil
	})
}

func newRenderer(t *testing.T, opts ...Option) *Renderer {
	t.Helper()
	base := []Option{
		WithFontFetcher(offlineFetcher(nil)),
		WithClock(func() time.Time { return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC) }),
	}
	r, err := NewRenderer(append(base, opts...)...)
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	return r
}

func pngDataURI(t *testing.T) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 30, 12))
	for x := range 30 {
		for y := range 12 {
			img.Set(x, y, color.RGBA{B: 180, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}

func TestRenderToDataURI(t *testing.T) {
	t.Parallel()

	r := newRenderer(t)
	uri, err := r.RenderToDataURI(context.Background(), []byte(invoiceJSON), RenderOptions{DocumentType: "invoice"})
	if err != nil {
		t.Fatalf("RenderToDataURI: %v", err)
	}
	if !strings.HasPrefix(uri, "data:application/pdf;") {
		t.Errorf("data URI prefix = %q", uri[:min(len(uri), 40)])
	}
}

func TestResultPayloadsAreIdentical(t *testing.T) {
	t.Parallel()

	r := newRenderer(t)
	res, err := r.RenderJSON(context.Background(), []byte(invoiceJSON), RenderOptions{DocumentType: "invoice"})
	if err != nil {
		t.Fatalf("RenderJSON: %v", err)
	}

	blob := res.Blob()
	if blob.Type != "application/pdf" {
		t.Errorf("blob type = %q", blob.Type)
	}
	decoded, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(res.DataURI(), DataURIPrefix))
	if err != nil {
		t.Fatalf("decoding data URI: %v", err)
	}
	var written bytes.Buffer
	if _, err := res.WriteTo(&written); err != nil {
		t.Fatalf("WriteTo: %v", err)
	}

	for name, payload := range map[string][]byte{"blob": blob.Data, "data URI": decoded, "WriteTo": written.Bytes()} {
		if !bytes.Equal(payload, res.Bytes()) {
			t.Errorf("%s payload differs from Bytes()", name)
		}
	}
	if !bytes.HasPrefix(res.Bytes(), []byte("%PDF-")) {
		t.Error("payload is not a PDF")
	}
	if res.Pages() != 1 || res.Filename() != "invoice-INV-7.pdf" {
		t.Errorf("pages %d, filename %q", res.Pages(), res.Filename())
	}
}

func TestUnknownThemeRendersAsDefault(t *testing.T) {
	t.Parallel()

	r := newRenderer(t)
	ctx := context.Background()
	plain, err := r.RenderJSON(ctx, []byte(invoiceJSON), RenderOptions{DocumentType: "invoice"})
	if err != nil {
		t.Fatal(err)
	}
	unknown, err := r.RenderJSON(ctx, []byte(invoiceJSON), RenderOptions{DocumentType: "invoice", Theme: "no-such-theme"})
	if err != nil {
		t.Fatal(err)
	}

	if unknown.Theme() != "default" {
		t.Errorf("theme = %q, want default", unknown.Theme())
	}
	if !bytes.Equal(plain.Bytes(), unknown.Bytes()) {
		t.Error("unknown theme output differs from the default theme output")
	}
}

func TestRenderEveryTemplateAndType(t *testing.T) {
	t.Parallel()

	r := newRenderer(t)
	for _, raw := range []string{invoiceJSON, ndaJSON} {
		for _, tpl := range Templates() {
			for _, loc := range []string{"en-US", "ar-SA", "ja-JP", "zh-TW"} {
				t.Run(fmt.Sprintf("%s/%s", tpl, loc), func(t *testing.T) {
					t.Parallel()

					opts := RenderOptions{
						Template:         tpl,
						Locale:           loc,
						IncludeWatermark: true,
						CompanyLogo:      pngDataURI(t),
						WebsiteURL:       "https://acme.test",
					}
					if raw == invoiceJSON {
						opts.DocumentType = "invoice"
					}
					res, err := r.RenderJSON(context.Background(), []byte(raw), opts)
					if err != nil {
						t.Fatalf("RenderJSON: %v", err)
					}
					if res.RTL() != (loc == "ar-SA") {
						t.Errorf("RTL = %v for %s", res.RTL(), loc)
					}
					if string(res.Template()) != tpl {
						t.Errorf("template = %q", res.Template())
					}
				})
			}
		}
	}
}

func TestRenderJSONDetectsType(t *testing.T) {
	t.Parallel()

	res, err := newRenderer(t).RenderJSON(context.Background(), []byte(ndaJSON), RenderOptions{})
	if err != nil {
		t.Fatalf("RenderJSON: %v", err)
	}
	if res.DocumentType() != TypeNDA {
		t.Errorf("type = %q, want nda", res.DocumentType())
	}
}

func TestRenderTypedDocument(t *testing.T) {
	t.Parallel()

	r := newRenderer(t)
	inv := &Invoice{Items: []LineItem{{Description: "Audit", Quantity: 1, Rate: 100}}, TaxRate: 8, Total: 5}
	res, err := r.Render(context.Background(), inv, RenderOptions{Locale: "de-DE", TextDirection: "rtl"})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !res.RTL() {
		t.Error("text direction override ignored")
	}
	if inv.Total != 5 {
		t.Error("Render modified its input")
	}

	if _, err := r.Render(context.Background(), nil, RenderOptions{}); !errors.Is(err, ErrNilDocument) {
		t.Errorf("nil document err = %v", err)
	}
	var nilInvoice *Invoice
	if _, err := r.Render(context.Background(), nilInvoice, RenderOptions{}); !errors.Is(err, ErrNilDocument) {
		t.Errorf("typed nil err = %v", err)
	}
}

func TestRenderErrors(t *testing.T) {
	t.Parallel()

	canceled, cancel := context.WithCancel(context.Background())
	cancel()

	tests := []struct {
		name     string
		ctx      context.Context
		raw      string
		opts     RenderOptions
		wantKind ErrorKind
		wantIs   error
	}{
		{"unknown type", context.Background(), invoiceJSON, RenderOptions{DocumentType: "receipt"}, KindUnsupportedDocumentType, nil},
		{"undetectable type", context.Background(), `{}`, RenderOptions{}, KindUnsupportedDocumentType, nil},
		{"page size", context.Background(), invoiceJSON, RenderOptions{DocumentType: "invoice", PageSize: "a5"}, KindInvalidOptions, ErrInvalidPageSize},
		{"direction", context.Background(), invoiceJSON, RenderOptions{DocumentType: "invoice", TextDirection: "up"}, KindInvalidOptions, ErrInvalidTextDirection},
		{"date format", context.Background(), invoiceJSON, RenderOptions{DocumentType: "invoice", DateFormat: "[oops"}, KindInvalidOptions, ErrInvalidDateFormat},
		{"empty input", context.Background(), "  \n", RenderOptions{DocumentType: "invoice"}, KindInvalidOptions, ErrEmptyInput},
		{"canceled", canceled, invoiceJSON, RenderOptions{DocumentType: "invoice"}, KindCanceled, context.Canceled},
	}

	r := newRenderer(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			res, err := r.RenderJSON(tt.ctx, []byte(tt.raw), tt.opts)
			if err == nil || res != nil {
				t.Fatalf("RenderJSON = %v, %v; want an error and no result", res, err)
			}
			if got := KindOf(err); got != tt.wantKind {
				t.Errorf("KindOf = %q, want %q (err %v)", got, tt.wantKind, err)
			}
			if tt.wantIs != nil && !errors.Is(err, tt.wantIs) {
				t.Errorf("err = %v, want %v", err, tt.wantIs)
			}
		})
	}
}

func TestFontLoadFailure(t *testing.T) {
	t.Parallel()

	boom := errors.New("network unreachable")
	r := newRenderer(t, WithFontFetcher(fonts.FetcherFunc(func(ctx context.Context, source string) ([]byte, error) {
		return nil, boom
	})))

	_, err := r.RenderJSON(context.Background(), []byte(invoiceJSON), RenderOptions{DocumentType: "invoice", Locale: "ko-KR"})
	var loadErr *FontLoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("err = %v, want *FontLoadError", err)
	}
	if !errors.Is(err, boom) || loadErr.Key == "" {
		t.Errorf("load error = %+v", loadErr)
	}
	if KindOf(err) != KindFontLoad {
		t.Errorf("KindOf = %q", KindOf(err))
	}
}

func TestFontsFetchedOncePerVariant(t *testing.T) {
	t.Parallel()

	var calls atomic.Int64
	r := newRenderer(t, WithFontFetcher(offlineFetcher(&calls)))
	_, bundle := r.FontBundle("ar-SA")

	for range 3 {
		if _, err := r.RenderJSON(context.Background(), []byte(ndaJSON), RenderOptions{Locale: "ar-SA"}); err != nil {
			t.Fatal(err)
		}
	}
	if got := calls.Load(); got != int64(len(bundle.Variants)) {
		t.Errorf("fetches = %d, want %d", got, len(bundle.Variants))
	}
}

func TestRenderRecordsMetricsAndLogs(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zap.InfoLevel)
	reg := prometheus.NewRegistry()
	r := newRenderer(t, WithLogger(zap.New(core)), WithMetrics(reg))

	res, err := r.RenderJSON(context.Background(), []byte(invoiceJSON), RenderOptions{DocumentType: "invoice"})
	if err != nil {
		t.Fatal(err)
	}
	_, _ = r.RenderJSON(context.Background(), []byte(invoiceJSON), RenderOptions{DocumentType: "invoice", PageSize: "a0"})

	if got := testutil.ToFloat64(r.metrics.RendersCounter().WithLabelValues("invoice", "modern", "success")); got != 1 {
		t.Errorf("success renders = %v, want 1", got)
	}

	entries := logs.FilterMessage("rendered").All()
	if len(entries) != 1 {
		t.Fatalf("got %d rendered entries", len(entries))
	}
	if id := entries[0].ContextMap()["render_id"]; id != res.ID() {
		t.Errorf("render_id = %v, want %s", id, res.ID())
	}
}

func TestBrokenLogoIsSkipped(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zap.WarnLevel)
	r := newRenderer(t, WithLogger(zap.New(core)))

	_, err := r.RenderJSON(context.Background(), []byte(invoiceJSON), RenderOptions{
		DocumentType: "invoice",
		CompanyLogo:  "/does/not/exist.png",
	})
	if err != nil {
		t.Fatalf("RenderJSON: %v", err)
	}
	if logs.FilterMessageSnippet("company logo skipped").Len() != 1 {
		t.Errorf("expected one logo warning, got %d entries", logs.Len())
	}
}

func TestLoadLogo(t *testing.T) {
	t.Parallel()

	r := newRenderer(t)
	ctx := context.Background()

	logo, err := r.loadLogo(ctx, pngDataURI(t))
	if err != nil {
		t.Fatalf("loadLogo: %v", err)
	}
	if logo.Format != "png" || logo.Width != 30 || logo.Height != 12 {
		t.Errorf("logo = %s %dx%d", logo.Format, logo.Width, logo.Height)
	}

	if logo, err := r.loadLogo(ctx, "  "); logo != nil || err != nil {
		t.Errorf("empty ref = %v, %v", logo, err)
	}
	if _, err := r.loadLogo(ctx, "data:image/png,raw"); !errors.Is(err, errLogoDataURI) {
		t.Errorf("non-base64 data URI err = %v", err)
	}
	text := "data:text/plain;base64," + base64.StdEncoding.EncodeToString([]byte("hello"))
	if _, err := r.loadLogo(ctx, text); !errors.Is(err, errLogoFormat) {
		t.Errorf("text logo err = %v", err)
	}
}

func TestTriggerDownloadWithoutBrowser(t *testing.T) {
	t.Parallel()

	r := newRenderer(t)
	r.lookBrowser = func() (string, bool) { return "", false }

	_, err := r.TriggerDownload(context.Background(), []byte(invoiceJSON), RenderOptions{DocumentType: "invoice"}, DownloadOptions{Dir: t.TempDir()})
	var envErr *EnvironmentError
	if !errors.As(err, &envErr) {
		t.Fatalf("err = %v, want *EnvironmentError", err)
	}
	if !errors.Is(err, ErrNoBrowser) || KindOf(err) != KindEnvironment {
		t.Errorf("err = %v, kind %q", err, KindOf(err))
	}
	if !strings.Contains(err.Error(), "hint:") {
		t.Errorf("error should carry a hint: %v", err)
	}
}

func TestDownloaderClosed(t *testing.T) {
	t.Parallel()

	d := newRenderer(t).NewDownloader()
	if err := d.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := d.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
	if _, err := d.Download(context.Background(), &Result{}, DownloadOptions{}); !errors.Is(err, ErrDownloaderClosed) {
		t.Errorf("err = %v, want ErrDownloaderClosed", err)
	}
}

func TestSafeFilename(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"invoice-INV-7":      "invoice-INV-7.pdf",
		"report.PDF":         "report.PDF",
		"../../etc/passwd":   "passwd.pdf",
		`a:b*c?.pdf`:         "a-b-c-.pdf",
		"":                   "document.pdf",
		"   ":                "document.pdf",
		"facture n°12 é.pdf": "facture n°12 é.pdf",
	}
	for in, want := range tests {
		if got := safeFilename(in); got != want {
			t.Errorf("safeFilename(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestKindOf(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err  error
		want ErrorKind
	}{
		{nil, ""},
		{&UnsupportedDocumentTypeError{Type: "x"}, KindUnsupportedDocumentType},
		{fmt.Errorf("wrapped: %w", &OutputEncodingError{Format: "pdf", Err: errors.New("x")}), KindOutputEncoding},
		{&EnvironmentError{Requirement: "browser", Err: ErrNoBrowser}, KindEnvironment},
		{&FontLoadError{Key: "k", Err: context.DeadlineExceeded}, KindFontLoad},
		{context.DeadlineExceeded, KindTimeout},
		{fmt.Errorf("x: %w", context.Canceled), KindCanceled},
		{ErrEmptyInput, KindInvalidOptions},
		{errors.New("other"), KindInternal},
	}
	for _, tt := range tests {
		if got := KindOf(tt.err); got != tt.want {
			t.Errorf("KindOf(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}
