package fonts

import (
	"github.com/go-pdf/fpdf"

	"github.com/alnah/go-docpdf/internal/script"
)

// Set is the loaded font bundle for one render.
type Set struct {
	Key       string
	Primary   string
	Secondary string
	Direction script.Direction

	variants []loaded
	styles   map[string]map[string]bool
}

type loaded struct {
	Variant
	data []byte
}

func (s *Set) add(v Variant, data []byte) {
	s.variants = append(s.variants, loaded{Variant: v, data: data})
	if s.styles[v.Family] == nil {
		s.styles[v.Family] = make(map[string]bool)
	}
	s.styles[v.Family][v.Style] = true
}

// Variants returns the loaded variants in bundle order.
func (s *Set) Variants() []Variant {
	out := make([]Variant, len(s.variants))
	for i, v := range s.variants {
		out[i] = v.Variant
	}
	return out
}

// Register adds every variant to pdf.
func (s *Set) Register(pdf *fpdf.Fpdf) {
	for _, v := range s.variants {
		pdf.AddUTF8FontFromBytes(v.Family, v.Style, v.data)
	}
}

// Style returns style if family has it, otherwise the closest available
// style: bold italic degrades to bold, then to regular.
func (s *Set) Style(family, style string) string {
	styles := s.styles[family]
	if styles[style] {
		return style
	}
	if style == StyleBoldItalic && styles[StyleBold] {
		return StyleBold
	}
	return StyleRegular
}

// FamilyFor picks the family used to draw text: the secondary family for
// text the default fonts cover, the primary family otherwise.
func (s *Set) FamilyFor(text string) string {
	if s.Secondary != "" && !script.NeedsWideFont(text) {
		return s.Secondary
	}
	return s.Primary
}
