package docpdf

import (
	"encoding/base64"
	"io"

	"github.com/alnah/go-docpdf/internal/compose"
	"github.com/alnah/go-docpdf/internal/script"
)

// MIMEType is the media type of every rendered document.
const MIMEType = "application/pdf"

// DataURIPrefix starts every data URI returned by Result.DataURI.
const DataURIPrefix = "data:" + MIMEType + ";base64,"

// Blob is a PDF payload with its media type.
type Blob struct {
	Type string
	Data []byte
}

// Size returns the payload length in bytes.
func (b Blob) Size() int { return len(b.Data) }

// Result is one rendered document. Every accessor serves the same payload,
// produced once; the returned slices must not be modified.
type Result struct {
	data      []byte
	pages     int
	id        string
	docType   DocumentType
	locale    string
	template  compose.Template
	theme     string
	direction script.Direction
	filename  string
}

// Bytes returns the PDF.
func (r *Result) Bytes() []byte { return r.data }

// Blob returns the PDF as a typed blob.
func (r *Result) Blob() Blob { return Blob{Type: MIMEType, Data: r.data} }

// DataURI returns the PDF as a base64 data URI.
func (r *Result) DataURI() string {
	return DataURIPrefix + base64.StdEncoding.EncodeToString(r.data)
}

// WriteTo writes the PDF to w.
func (r *Result) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(r.data)
	return int64(n), err
}

// Filename suggests a file name for the document, such as
// "invoice-INV-001.pdf".
func (r *Result) Filename() string { return r.filename }

// Pages returns the page count.
func (r *Result) Pages() int { return r.pages }

// ID returns the render id used in logs and traces.
func (r *Result) ID() string { return r.id }

// DocumentType returns the rendered document's type.
func (r *Result) DocumentType() DocumentType { return r.docType }

// Locale returns the locale the document was rendered in.
func (r *Result) Locale() string { return r.locale }

// Template returns the template used, after fallback.
func (r *Result) Template() Template { return r.template }

// Theme returns the name of the theme used, after fallback.
func (r *Result) Theme() string { return r.theme }

// RTL reports whether the document was laid out right to left.
func (r *Result) RTL() bool { return r.direction == script.RTL }
