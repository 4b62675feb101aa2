package docpdf

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/google/uuid"
	"github.com/tidwall/gjson"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/alnah/go-docpdf/internal/compose"
	"github.com/alnah/go-docpdf/internal/dateutil"
	"github.com/alnah/go-docpdf/internal/document"
	"github.com/alnah/go-docpdf/internal/fonts"
	"github.com/alnah/go-docpdf/internal/hints"
	"github.com/alnah/go-docpdf/internal/layout"
	"github.com/alnah/go-docpdf/internal/locale"
	"github.com/alnah/go-docpdf/internal/observability"
	"github.com/alnah/go-docpdf/internal/script"
	"github.com/alnah/go-docpdf/internal/theme"
)

// DefaultLocale is used when neither the options nor the document name one.
const DefaultLocale = "en-US"

const creator = "go-docpdf"

// Renderer turns documents into PDFs. It is safe for concurrent use; the
// font cache is shared by every render of the same Renderer.
type Renderer struct {
	fonts      *fonts.Registry
	themes     *theme.Registry
	formatter  *locale.Formatter
	logger     *zap.Logger
	metrics    *observability.Metrics
	tracer     trace.Tracer
	clock      func() time.Time
	httpClient *http.Client

	lookBrowser func() (string, bool)
}

// NewRenderer creates a Renderer. It fails only on invalid custom themes
// or a metrics registry that rejects the collectors.
func NewRenderer(opts ...Option) (*Renderer, error) {
	cfg := rendererConfig{
		logger: zap.NewNop(),
		clock:  time.Now,
		native: true,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	metrics, err := observability.NewMetrics(cfg.registerer)
	if err != nil {
		return nil, fmt.Errorf("registering metrics: %w", err)
	}
	themes, err := theme.NewRegistry(cfg.themes...)
	if err != nil {
		return nil, fmt.Errorf("loading themes: %w", err)
	}

	client := cfg.httpClient
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second, Transport: observability.TracingTransport(nil, nil)}
	}

	return &Renderer{
		fonts: fonts.NewRegistry(
			fonts.WithTable(cfg.fontTable),
			fonts.WithFetcher(cfg.fontFetcher),
			fonts.WithTimeout(cfg.fontTimeout),
			fonts.WithLogger(cfg.logger),
			fonts.WithMetrics(metrics),
		),
		themes:      themes,
		formatter:   locale.New(locale.WithNative(cfg.native), locale.WithLogger(cfg.logger)),
		logger:      cfg.logger,
		metrics:     metrics,
		tracer:      observability.Tracer(),
		clock:       cfg.clock,
		httpClient:  client,
		lookBrowser: browserPath,
	}, nil
}

// Themes returns the registered theme names.
func (r *Renderer) Themes() []string {
	return r.themes.Names()
}

// FontBundle reports the font table entry used for locale.
func (r *Renderer) FontBundle(loc string) (key string, b FontBundle) {
	return r.fonts.Table().Lookup(loc)
}

// RenderToDataURI renders raw JSON and returns a data:application/pdf URI.
func (r *Renderer) RenderToDataURI(ctx context.Context, raw []byte, opts RenderOptions) (string, error) {
	res, err := r.RenderJSON(ctx, raw, opts)
	if err != nil {
		return "", err
	}
	return res.DataURI(), nil
}

// RenderToBytes renders raw JSON and returns the PDF bytes.
func (r *Renderer) RenderToBytes(ctx context.Context, raw []byte, opts RenderOptions) ([]byte, error) {
	res, err := r.RenderJSON(ctx, raw, opts)
	if err != nil {
		return nil, err
	}
	return res.Bytes(), nil
}

// RenderToBlob renders raw JSON and returns the PDF as a typed blob.
func (r *Renderer) RenderToBlob(ctx context.Context, raw []byte, opts RenderOptions) (Blob, error) {
	res, err := r.RenderJSON(ctx, raw, opts)
	if err != nil {
		return Blob{}, err
	}
	return res.Blob(), nil
}

// RenderJSON decodes raw with the sanitizer for opts.DocumentType and
// renders it. Malformed content never fails; only the type can. Input
// with no bytes at all is ErrEmptyInput.
func (r *Renderer) RenderJSON(ctx context.Context, raw []byte, opts RenderOptions) (*Result, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, ErrEmptyInput
	}
	docType := opts.DocumentType
	if strings.TrimSpace(docType) == "" {
		docType = detectType(raw)
	}
	doc, err := document.Decode(docType, raw)
	if err != nil {
		r.metrics.ObserveRender(docType, opts.Template, 0, 0, err)
		return nil, err
	}
	return r.render(ctx, doc, opts)
}

// Render draws doc. The document is normalized first, so totals and
// placeholders are recomputed; doc itself is not modified.
func (r *Renderer) Render(ctx context.Context, doc Document, opts RenderOptions) (*Result, error) {
	doc = document.Normalize(doc)
	if doc == nil {
		return nil, ErrNilDocument
	}
	return r.render(ctx, doc, opts)
}

// detectType reads the document type from the JSON itself.
func detectType(raw []byte) string {
	if !gjson.ValidBytes(raw) {
		return ""
	}
	root := gjson.ParseBytes(raw)
	for _, k := range []string{"documentType", "type", "kind"} {
		if v := root.Get(k); v.Type == gjson.String {
			return v.String()
		}
	}
	return ""
}

// plan is a render with its options resolved.
type plan struct {
	id        string
	doc       Document
	locale    string
	template  compose.Template
	theme     Theme
	direction script.Direction
	pageSize  string
	logo      *compose.Logo
}

func (r *Renderer) render(ctx context.Context, doc Document, opts RenderOptions) (res *Result, err error) {
	start := time.Now()
	p, err := r.plan(doc, opts)
	if err != nil {
		r.metrics.ObserveRender(string(doc.Type()), opts.Template, 0, time.Since(start), err)
		return nil, err
	}

	ctx, span := r.tracer.Start(ctx, "docpdf.Render", trace.WithAttributes(
		attribute.String("docpdf.render_id", p.id),
		attribute.String("docpdf.document_type", string(doc.Type())),
		attribute.String("docpdf.locale", p.locale),
		attribute.String("docpdf.template", string(p.template)),
		attribute.String("docpdf.theme", p.theme.Name),
	))
	log := r.logger.With(
		zap.String("render_id", p.id),
		zap.String("document_type", string(doc.Type())),
		zap.String("locale", p.locale),
	)
	defer func() {
		pages := 0
		if res != nil {
			pages = res.pages
			span.SetAttributes(attribute.Int("docpdf.pages", pages))
		}
		r.metrics.ObserveRender(string(doc.Type()), string(p.template), pages, time.Since(start), err)
		observability.EndSpan(span, err)
		if err != nil {
			log.Error("render failed", zap.String("kind", string(KindOf(err))), zap.Error(err))
			return
		}
		log.Info("rendered",
			zap.String("template", string(p.template)),
			zap.String("theme", p.theme.Name),
			zap.Int("pages", pages),
			zap.Int("bytes", len(res.data)),
			zap.Duration("elapsed", time.Since(start)))
	}()

	logo, err := r.loadLogo(ctx, opts.CompanyLogo)
	if err != nil {
		log.Warn("company logo skipped"+hints.ForLogo(), zap.Error(err))
	}
	p.logo = logo

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	set, err := r.fonts.Prepare(ctx, p.locale)
	if err != nil {
		var loadErr *FontLoadError
		if errors.As(err, &loadErr) {
			log.Debug("font hint" + hints.ForFontLoad(loadErr.Source))
		}
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, pages, err := r.draw(p, set, opts, log)
	if err != nil {
		return nil, err
	}
	return &Result{
		data:      data,
		pages:     pages,
		id:        p.id,
		docType:   doc.Type(),
		locale:    p.locale,
		template:  p.template,
		theme:     p.theme.Name,
		direction: p.direction,
		filename:  suggestedFilename(doc),
	}, nil
}

// plan validates opts and resolves every fallback.
func (r *Renderer) plan(doc Document, opts RenderOptions) (plan, error) {
	p := plan{id: uuid.NewString(), doc: doc}

	size, err := layout.ParsePageSize(opts.PageSize)
	if err != nil {
		return p, err
	}
	p.pageSize = size

	if strings.TrimSpace(opts.TextDirection) != "" {
		dir, ok := script.ParseDirection(opts.TextDirection)
		if !ok {
			return p, fmt.Errorf("%w: %q (must be ltr or rtl)", ErrInvalidTextDirection, opts.TextDirection)
		}
		p.direction = dir
	}
	if opts.DateFormat != "" {
		if _, err := dateutil.Parse(opts.DateFormat); err != nil {
			return p, err
		}
	}

	p.locale = firstNonEmpty(opts.Locale, doc.DocumentLocale(), DefaultLocale)
	if p.direction == "" {
		p.direction = script.DirectionFor(p.locale)
	}

	tpl, ok := compose.ParseTemplate(opts.Template)
	if !ok && opts.Template != "" {
		r.logger.Debug("unknown template, using modern", zap.String("template", opts.Template))
	}
	p.template = tpl

	p.theme = r.themes.Resolve(opts.Theme)
	if opts.AccentColor != "" {
		if accent, err := theme.ParseHexColor(opts.AccentColor); err == nil {
			p.theme = p.theme.WithAccent(accent)
		} else {
			r.logger.Warn("accent color ignored", zap.Error(err))
		}
	}
	return p, nil
}

// draw composes the document into a fresh PDF. Once it starts it runs to
// completion: no partial output is returned.
func (r *Renderer) draw(p plan, set *fonts.Set, opts RenderOptions, log *zap.Logger) (data []byte, pages int, err error) {
	defer func() {
		if v := recover(); v != nil {
			err = fmt.Errorf("render panicked: %v", v)
		}
	}()

	pdf := fpdf.New("P", "mm", p.pageSize, "")
	pdf.SetCatalogSort(true)
	now := r.clock()
	pdf.SetCreationDate(now)
	pdf.SetModificationDate(now)
	pdf.SetCreator(creator, true)
	pdf.SetTitle(documentTitle(p.doc), true)
	set.Register(pdf)
	if err := pdf.Error(); err != nil {
		return nil, 0, &FontLoadError{Key: set.Key, Family: set.Primary, Source: "registration", Err: err}
	}

	engine := layout.New(pdf, layout.Config{Theme: p.theme, Fonts: set, Direction: p.direction})
	composer, err := compose.Select(p.doc.Type(), p.template)
	if err != nil {
		return nil, 0, err
	}
	cctx := compose.NewContext(engine, r.formatter, p.locale, compose.Options{
		IncludeWatermark: opts.IncludeWatermark,
		WatermarkText:    opts.WatermarkText,
		Logo:             p.logo,
		WebsiteURL:       opts.WebsiteURL,
		DateFormat:       opts.DateFormat,
	}, log)
	if err := composer.Compose(cctx, p.doc); err != nil {
		return nil, 0, fmt.Errorf("composing %s: %w", p.doc.Type(), err)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, 0, &OutputEncodingError{Format: "pdf", Err: err}
	}
	return buf.Bytes(), pdf.PageCount(), nil
}

func documentTitle(doc Document) string {
	switch d := doc.(type) {
	case *Invoice:
		return "Invoice " + d.Number
	case *NDA:
		return d.Title
	}
	return string(doc.Type())
}

func suggestedFilename(doc Document) string {
	name := string(doc.Type())
	if inv, ok := doc.(*Invoice); ok && inv.Number != document.DefaultInvoiceNumber {
		name += "-" + inv.Number
	}
	return safeFilename(name)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}
