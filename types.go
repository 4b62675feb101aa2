package docpdf

import (
	"github.com/alnah/go-docpdf/internal/compose"
	"github.com/alnah/go-docpdf/internal/document"
	"github.com/alnah/go-docpdf/internal/fonts"
	"github.com/alnah/go-docpdf/internal/theme"
)

// Document is an *Invoice or an *NDA.
type Document = document.Document

// DocumentType names a kind of document.
type DocumentType = document.Type

// Document types.
const (
	TypeInvoice = document.TypeInvoice
	TypeNDA     = document.TypeNDA
)

// Document model. Values built in code go through the same normalization
// as decoded JSON: placeholders for missing fields and recomputed totals.
type (
	Invoice  = document.Invoice
	NDA      = document.NDA
	Party    = document.Party
	LineItem = document.LineItem
	Section  = document.Section
)

// Template selects a layout family.
type Template = compose.Template

// Templates.
const (
	TemplateModern  = compose.TemplateModern
	TemplateClassic = compose.TemplateClassic
	TemplateMinimal = compose.TemplateMinimal
)

// Theme and font types accepted by the renderer options.
type (
	Theme       = theme.Theme
	RGB         = theme.RGB
	FontTable   = fonts.Table
	FontBundle  = fonts.Bundle
	FontVariant = fonts.Variant
	FontFetcher = fonts.Fetcher
)

// RenderOptions are the per-call settings. The zero value renders with
// the document's locale, the modern template and the default theme.
type RenderOptions struct {
	// Locale is a BCP 47 tag such as "en-US" or "ar-SA". Empty uses the
	// document's locale, then "en-US".
	Locale string

	// DocumentType selects the decoder for RenderJSON and friends. Empty
	// reads a "documentType" or "type" field from the JSON.
	DocumentType string

	Template string // modern, classic or minimal; unknown names use modern
	Theme    string // unknown names use the default theme

	IncludeWatermark bool
	WatermarkText    string // empty uses DRAFT for invoices, CONFIDENTIAL for NDAs

	// AccentColor (#rgb or #rrggbb) replaces the theme's primary color.
	// Invalid values are ignored.
	AccentColor string

	// CompanyLogo is a file path, an http(s) URL or a data URI of a PNG,
	// JPEG or GIF image. A logo that cannot be loaded is skipped.
	CompanyLogo string

	WebsiteURL    string
	TextDirection string // "ltr" or "rtl"; empty follows the locale
	DateFormat    string // tokens such as "DD/MM/YYYY" or a preset name
	PageSize      string // a4 (default), letter or legal
}

// Templates lists the template names, default first.
func Templates() []string {
	out := make([]string, 0, 3)
	for _, t := range compose.Templates() {
		out = append(out, string(t))
	}
	return out
}

// DocumentTypes lists the supported document types.
func DocumentTypes() []string {
	types := document.Types()
	out := make([]string, len(types))
	for i, t := range types {
		out[i] = string(t)
	}
	return out
}

// ParseDocument decodes raw JSON of the given type through the sanitizer.
// It never fails on malformed content, only on unknown types.
func ParseDocument(docType string, raw []byte) (Document, error) {
	return document.Decode(docType, raw)
}
