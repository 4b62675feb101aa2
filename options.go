package docpdf

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// Option configures a Renderer.
type Option func(*rendererConfig)

type rendererConfig struct {
	logger      *zap.Logger
	registerer  prometheus.Registerer
	fontTable   FontTable
	fontFetcher FontFetcher
	fontTimeout time.Duration
	themes      []Theme
	clock       func() time.Time
	httpClient  *http.Client
	native      bool
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(c *rendererConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithMetrics registers the render and font collectors on reg.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(c *rendererConfig) { c.registerer = reg }
}

// WithFontTable replaces the font source table.
func WithFontTable(t FontTable) Option {
	return func(c *rendererConfig) { c.fontTable = t }
}

// WithFontFetcher replaces how font sources are read.
func WithFontFetcher(f FontFetcher) Option {
	return func(c *rendererConfig) { c.fontFetcher = f }
}

// WithFontTimeout bounds each font download.
func WithFontTimeout(d time.Duration) Option {
	return func(c *rendererConfig) { c.fontTimeout = d }
}

// WithThemes adds custom themes next to the built-in ones.
func WithThemes(themes ...Theme) Option {
	return func(c *rendererConfig) { c.themes = append(c.themes, themes...) }
}

// WithClock sets the time source for PDF creation dates.
func WithClock(now func() time.Time) Option {
	return func(c *rendererConfig) {
		if now != nil {
			c.clock = now
		}
	}
}

// WithHTTPClient sets the client used to fetch remote logos.
func WithHTTPClient(client *http.Client) Option {
	return func(c *rendererConfig) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithNativeFormatting toggles CLDR number, currency and date formatting.
// When disabled the built-in tables are used for every locale.
func WithNativeFormatting(enabled bool) Option {
	return func(c *rendererConfig) { c.native = enabled }
}
