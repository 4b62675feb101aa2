// Package document defines the business documents the renderer draws and the
// sanitizers that turn loosely structured JSON into them.
//
// Sanitizers are the only place where input is normalized. Everything
// downstream may assume a sanitized document: no empty party fields, at least
// one agreement section, recomputed invoice totals.
package document

import (
	"fmt"
	"strings"
	"time"
)

// Type tags a document variant.
type Type string

const (
	TypeInvoice Type = "invoice"
	TypeNDA     Type = "nda"
)

// Types lists the supported document types.
func Types() []Type {
	return []Type{TypeInvoice, TypeNDA}
}

// UnsupportedTypeError reports a document type outside the supported set.
type UnsupportedTypeError struct {
	Type string
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("unsupported document type %q (supported: invoice, nda)", e.Type)
}

// ParseType accepts the supported type names case-insensitively.
func ParseType(s string) (Type, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "invoice":
		return TypeInvoice, nil
	case "nda", "non-disclosure-agreement":
		return TypeNDA, nil
	}
	return "", &UnsupportedTypeError{Type: s}
}

// Document is implemented by *Invoice and *NDA only.
type Document interface {
	Type() Type
	DocumentLocale() string
	isDocument()
}

// Party is a person or organization named on a document.
type Party struct {
	Name    string
	Address string
	Email   string
	Phone   string
}

// LineItem is one billed line. Amount is recomputed from Quantity and Rate.
type LineItem struct {
	Description string
	Quantity    float64
	Rate        float64
	Amount      float64
}

// Invoice is a billing document.
type Invoice struct {
	Number    string
	IssueDate time.Time
	DueDate   time.Time
	From      Party
	To        Party
	Items     []LineItem
	Subtotal  float64
	TaxRate   float64
	TaxAmount float64
	Total     float64
	Currency  string
	Locale    string
	Notes     string
	Terms     string
}

// Type implements Document.
func (*Invoice) Type() Type { return TypeInvoice }

// DocumentLocale implements Document.
func (i *Invoice) DocumentLocale() string { return i.Locale }

func (*Invoice) isDocument() {}

// Section is one titled clause of an agreement.
type Section struct {
	Title string
	Body  string
}

// NDA is a non-disclosure agreement.
type NDA struct {
	Title           string
	EffectiveDate   time.Time
	TerminationDate time.Time
	Disclosing      Party
	Receiving       Party
	Purpose         string
	Sections        []Section
	Jurisdiction    string
	TermMonths      int
	Mutual          bool
	Locale          string
}

// Type implements Document.
func (*NDA) Type() Type { return TypeNDA }

// DocumentLocale implements Document.
func (n *NDA) DocumentLocale() string { return n.Locale }

func (*NDA) isDocument() {}
