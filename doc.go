// Package docpdf renders invoices and non-disclosure agreements to PDF in
// many languages, including right-to-left Arabic-script locales and
// Chinese, Japanese and Korean.
//
// # Quick Start
//
// Create one Renderer per process and render JSON documents with it:
//
//	r, err := docpdf.NewRenderer()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	res, err := r.RenderJSON(ctx, raw, docpdf.RenderOptions{
//	    DocumentType: "invoice",
//	    Locale:       "fr-FR",
//	    Template:     "classic",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("invoice.pdf", res.Bytes(), 0o644)
//
// A Result holds one rendered payload and exposes it as bytes, a blob or a
// data URI. RenderToBytes, RenderToBlob and RenderToDataURI are shortcuts
// for the common case.
//
// # Untrusted Input
//
// JSON documents go through a sanitizer that never fails: missing parties
// get placeholder text, line amounts and totals are recomputed from
// quantities, rates and the tax rate, Markdown in free text is flattened,
// and an agreement without clauses gets a default confidentiality clause.
// Only an unknown document type is an error.
//
// # Pipeline
//
//  1. Decode and sanitize the document
//  2. Resolve the theme, template, locale and text direction
//  3. Load the fonts the locale needs (each font file once per process)
//  4. Compose pages: header, parties, items or clauses, totals or signatures
//  5. Serialize the PDF
//
// # Fonts
//
// Latin text uses the embedded Go fonts and needs no network. Other
// scripts use Noto and Amiri fonts downloaded on first use. Use
// WithFontTable to point the renderer at local copies.
//
// # Errors
//
// Failures carry a kind reported by KindOf: *FontLoadError,
// *UnsupportedDocumentTypeError, *OutputEncodingError and *EnvironmentError
// (browser downloads without a browser). Invalid options such as an
// unknown page size wrap sentinel errors like ErrInvalidPageSize.
//
// # Batches
//
// RenderBatch renders many documents on a bounded worker pool sized by
// ResolveWorkers.
package docpdf
