package docpdf

import (
	"context"
	"errors"
	"fmt"

	"github.com/alnah/go-docpdf/internal/dateutil"
	"github.com/alnah/go-docpdf/internal/document"
	"github.com/alnah/go-docpdf/internal/fonts"
	"github.com/alnah/go-docpdf/internal/layout"
)

// Sentinel errors for invalid render options.
var (
	ErrInvalidPageSize      = layout.ErrInvalidPageSize
	ErrInvalidTextDirection = errors.New("invalid text direction")
	ErrInvalidDateFormat    = dateutil.ErrInvalidDateFormat
	ErrNilDocument          = errors.New("document cannot be nil")
	ErrEmptyInput           = errors.New("document JSON cannot be empty")
	ErrNoBrowser            = errors.New("no Chrome or Chromium browser found")
	ErrDownloaderClosed     = errors.New("downloader is closed")
)

// ErrorKind classifies render failures so callers can branch without
// matching messages.
type ErrorKind string

const (
	KindFontLoad                ErrorKind = "font_load"
	KindUnsupportedDocumentType ErrorKind = "unsupported_document_type"
	KindOutputEncoding          ErrorKind = "output_encoding"
	KindEnvironment             ErrorKind = "environment"
	KindInvalidOptions          ErrorKind = "invalid_options"
	KindCanceled                ErrorKind = "canceled"
	KindTimeout                 ErrorKind = "timeout"
	KindInternal                ErrorKind = "internal"
)

// FontLoadError reports a font variant that could not be fetched or
// decoded. The render that needed it fails; nothing is cached.
type FontLoadError = fonts.LoadError

// UnsupportedDocumentTypeError reports a document type other than invoice
// or nda.
type UnsupportedDocumentTypeError = document.UnsupportedTypeError

// OutputEncodingError reports a failure to serialize the rendered pages.
type OutputEncodingError struct {
	Format string // "pdf", "data-uri", ...
	Err    error
}

func (e *OutputEncodingError) Error() string {
	return fmt.Sprintf("encoding %s output: %v", e.Format, e.Err)
}

func (e *OutputEncodingError) Unwrap() error { return e.Err }

// EnvironmentError reports that the running environment lacks something an
// operation needs, such as a browser for downloads. Hint, when set, starts
// with a newline and suggests a fix.
type EnvironmentError struct {
	Requirement string
	Err         error
	Hint        string
}

func (e *EnvironmentError) Error() string {
	return fmt.Sprintf("%s unavailable: %v%s", e.Requirement, e.Err, e.Hint)
}

func (e *EnvironmentError) Unwrap() error { return e.Err }

// KindOf classifies err. Nil yields the empty kind.
func KindOf(err error) ErrorKind {
	var (
		fontErr *FontLoadError
		typeErr *UnsupportedDocumentTypeError
		encErr  *OutputEncodingError
		envErr  *EnvironmentError
	)
	switch {
	case err == nil:
		return ""
	case errors.As(err, &typeErr):
		return KindUnsupportedDocumentType
	case errors.As(err, &envErr):
		return KindEnvironment
	case errors.As(err, &encErr):
		return KindOutputEncoding
	case errors.As(err, &fontErr):
		return KindFontLoad
	case errors.Is(err, context.Canceled):
		return KindCanceled
	case errors.Is(err, context.DeadlineExceeded):
		return KindTimeout
	case errors.Is(err, ErrInvalidPageSize),
		errors.Is(err, ErrInvalidTextDirection),
		errors.Is(err, ErrInvalidDateFormat),
		errors.Is(err, ErrNilDocument),
		errors.Is(err, ErrEmptyInput):
		return KindInvalidOptions
	}
	return KindInternal
}
