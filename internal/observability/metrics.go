package observability

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the renderer's prometheus collectors. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	renders        *prometheus.CounterVec
	renderDuration *prometheus.HistogramVec
	pages          *prometheus.HistogramVec
	fontFetches    *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them on reg. Collectors
// already registered on reg by another Metrics are reused.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		renders: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "docpdf_renders_total",
				Help: "Documents rendered, by document type, template and result.",
			},
			[]string{"document_type", "template", "result"}, // result: success | error
		),
		renderDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "docpdf_render_duration_seconds",
				Help:    "Time spent rendering one document, font provisioning included.",
				Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"document_type"},
		),
		pages: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "docpdf_render_pages",
				Help:    "Pages per rendered document.",
				Buckets: []float64{1, 2, 3, 5, 8, 13, 21},
			},
			[]string{"document_type"},
		),
		fontFetches: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "docpdf_font_fetches_total",
				Help: "Font variant downloads, by family and result.",
			},
			[]string{"family", "result"}, // result: success | error
		),
	}

	if reg == nil {
		return m, nil
	}
	var err error
	m.renders, err = register(reg, m.renders)
	if err != nil {
		return nil, err
	}
	m.renderDuration, err = register(reg, m.renderDuration)
	if err != nil {
		return nil, err
	}
	m.pages, err = register(reg, m.pages)
	if err != nil {
		return nil, err
	}
	m.fontFetches, err = register(reg, m.fontFetches)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

// ObserveRender records one finished render.
func (m *Metrics) ObserveRender(docType, template string, pages int, d time.Duration, err error) {
	if m == nil {
		return
	}
	m.renders.WithLabelValues(docType, template, result(err)).Inc()
	m.renderDuration.WithLabelValues(docType).Observe(d.Seconds())
	if err == nil {
		m.pages.WithLabelValues(docType).Observe(float64(pages))
	}
}

// ObserveFontFetch records one font download attempt.
func (m *Metrics) ObserveFontFetch(family string, err error) {
	if m == nil {
		return
	}
	m.fontFetches.WithLabelValues(family, result(err)).Inc()
}

// RendersCounter exposes the render counter for tests and dashboards.
func (m *Metrics) RendersCounter() *prometheus.CounterVec {
	return m.renders
}

// FontFetchCounter exposes the font fetch counter.
func (m *Metrics) FontFetchCounter() *prometheus.CounterVec {
	return m.fontFetches
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
