package fonts

import (
	"strings"

	"github.com/alnah/go-docpdf/internal/script"
)

// Font styles as understood by fpdf.
const (
	StyleRegular    = ""
	StyleBold       = "B"
	StyleItalic     = "I"
	StyleBoldItalic = "BI"
)

// LatinFamily is the family name of the embedded default fonts.
const LatinFamily = "GoSans"

const googleFonts = "https://raw.githubusercontent.com/google/fonts/main/ofl/"

// Variant is one font file: a family in one style.
type Variant struct {
	Key    string `yaml:"key"`
	Family string `yaml:"family"`
	Style  string `yaml:"style"`
	Source string `yaml:"source"`
}

// Bundle is the set of fonts a locale needs. Primary covers the locale's
// script; Secondary, when set, is preferred for text the primary font does
// not need to draw (Latin addresses in an Arabic invoice).
type Bundle struct {
	Primary   string    `yaml:"primary"`
	Secondary string    `yaml:"secondary"`
	Variants  []Variant `yaml:"variants"`
}

// Table maps locale keys to bundles. Keys are lowercase BCP 47 tags
// ("zh-tw") or script family names ("arabic", "hebrew", "zh", "ja", "ko",
// "latin").
type Table map[string]Bundle

var latinVariants = []Variant{
	{Key: "go-regular", Family: LatinFamily, Style: StyleRegular, Source: "embed://go/regular"},
	{Key: "go-bold", Family: LatinFamily, Style: StyleBold, Source: "embed://go/bold"},
	{Key: "go-italic", Family: LatinFamily, Style: StyleItalic, Source: "embed://go/italic"},
	{Key: "go-bolditalic", Family: LatinFamily, Style: StyleBoldItalic, Source: "embed://go/bolditalic"},
}

func withLatin(vs ...Variant) []Variant {
	return append(vs, latinVariants...)
}

// DefaultTable returns the built-in font sources.
func DefaultTable() Table {
	return Table{
		string(script.FamilyLatin): {
			Primary:  LatinFamily,
			Variants: latinVariants,
		},
		string(script.FamilyArabic): {
			Primary:   "Amiri",
			Secondary: LatinFamily,
			Variants: withLatin(
				Variant{Key: "amiri-regular", Family: "Amiri", Style: StyleRegular, Source: googleFonts + "amiri/Amiri-Regular.ttf"},
				Variant{Key: "amiri-bold", Family: "Amiri", Style: StyleBold, Source: googleFonts + "amiri/Amiri-Bold.ttf"},
			),
		},
		string(script.FamilyHebrew): {
			Primary:   "Alef",
			Secondary: LatinFamily,
			Variants: withLatin(
				Variant{Key: "alef-regular", Family: "Alef", Style: StyleRegular, Source: googleFonts + "alef/Alef-Regular.ttf"},
				Variant{Key: "alef-bold", Family: "Alef", Style: StyleBold, Source: googleFonts + "alef/Alef-Bold.ttf"},
			),
		},
		string(script.FamilyChinese): {
			Primary:   "ZCOOLXiaoWei",
			Secondary: LatinFamily,
			Variants: withLatin(
				Variant{Key: "zcoolxiaowei-regular", Family: "ZCOOLXiaoWei", Style: StyleRegular, Source: googleFonts + "zcoolxiaowei/ZCOOLXiaoWei-Regular.ttf"},
			),
		},
		"zh-tw": {
			Primary:   "LXGWWenKaiTC",
			Secondary: LatinFamily,
			Variants: withLatin(
				Variant{Key: "lxgwwenkaitc-regular", Family: "LXGWWenKaiTC", Style: StyleRegular, Source: googleFonts + "lxgwwenkaitc/LXGWWenKaiTC-Regular.ttf"},
				Variant{Key: "lxgwwenkaitc-bold", Family: "LXGWWenKaiTC", Style: StyleBold, Source: googleFonts + "lxgwwenkaitc/LXGWWenKaiTC-Bold.ttf"},
			),
		},
		string(script.FamilyJapanese): {
			Primary:   "SawarabiGothic",
			Secondary: LatinFamily,
			Variants: withLatin(
				Variant{Key: "sawarabigothic-regular", Family: "SawarabiGothic", Style: StyleRegular, Source: googleFonts + "sawarabigothic/SawarabiGothic-Regular.ttf"},
			),
		},
		string(script.FamilyKorean): {
			Primary:   "NanumGothic",
			Secondary: LatinFamily,
			Variants: withLatin(
				Variant{Key: "nanumgothic-regular", Family: "NanumGothic", Style: StyleRegular, Source: googleFonts + "nanumgothic/NanumGothic-Regular.ttf"},
				Variant{Key: "nanumgothic-bold", Family: "NanumGothic", Style: StyleBold, Source: googleFonts + "nanumgothic/NanumGothic-Bold.ttf"},
			),
		},
	}
}

// Merge returns a copy of t with the bundles of other added or replaced.
func (t Table) Merge(other Table) Table {
	out := make(Table, len(t)+len(other))
	for k, v := range t {
		out[k] = v
	}
	for k, v := range other {
		out[strings.ToLower(k)] = v
	}
	return out
}

// Lookup resolves a locale to its bundle: the exact locale first, then the
// locale's script family, then the Latin default.
func (t Table) Lookup(locale string) (key string, b Bundle) {
	exact := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(locale), "_", "-"))
	if b, ok := t[exact]; ok && exact != "" {
		return exact, b
	}
	family := string(script.FamilyFor(locale))
	if family == string(script.FamilyTraditional) {
		if b, ok := t["zh-tw"]; ok {
			return "zh-tw", b
		}
		family = string(script.FamilyChinese)
	}
	if b, ok := t[family]; ok {
		return family, b
	}
	return string(script.FamilyLatin), t[string(script.FamilyLatin)]
}
