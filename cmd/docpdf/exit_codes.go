package main

import (
	"errors"
	"os"

	docpdf "github.com/alnah/go-docpdf"
	"github.com/alnah/go-docpdf/internal/config"
	"github.com/alnah/go-docpdf/internal/observability"
)

// Exit codes for the docpdf CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, custom codes < 126,
// and 130 for an interrupt.
const (
	ExitSuccess     = 0
	ExitGeneral     = 1
	ExitUsage       = 2 // invalid flags, config or options
	ExitIO          = 3 // unreadable input, unwritable output
	ExitEnvironment = 4 // no browser for --download
	ExitFontLoad    = 5
	ExitOutput      = 6 // PDF encoding failed
	ExitTimeout     = 7
	ExitInterrupted = 130
)

// exitCodeFor returns the exit code for err. Render failures are mapped by
// docpdf.KindOf; CLI failures by their sentinels.
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	switch docpdf.KindOf(err) {
	case docpdf.KindEnvironment:
		return ExitEnvironment
	case docpdf.KindFontLoad:
		return ExitFontLoad
	case docpdf.KindOutputEncoding:
		return ExitOutput
	case docpdf.KindUnsupportedDocumentType, docpdf.KindInvalidOptions:
		return ExitUsage
	case docpdf.KindCanceled:
		return ExitInterrupted
	case docpdf.KindTimeout:
		return ExitTimeout
	}

	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadInput) ||
		errors.Is(err, ErrWriteOutput) ||
		errors.Is(err, ErrNoInput) {
		return ExitIO
	}

	if errors.Is(err, ErrUsage) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, ErrConflictingOutput) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, observability.ErrInvalidLogFormat) {
		return ExitUsage
	}

	return ExitGeneral
}
