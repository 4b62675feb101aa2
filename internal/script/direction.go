// Package script classifies locales and text by writing system and prepares
// right-to-left text for drawing on a PDF page.
package script

import (
	"strings"
	"unicode"

	"golang.org/x/text/language"
)

// Direction is the base writing direction of a document.
type Direction string

const (
	LTR Direction = "ltr"
	RTL Direction = "rtl"
)

// Family groups locales that share a font bundle.
type Family string

const (
	FamilyLatin       Family = "latin"
	FamilyArabic      Family = "arabic"
	FamilyHebrew      Family = "hebrew"
	FamilyChinese     Family = "zh"
	FamilyTraditional Family = "zh-hant"
	FamilyJapanese    Family = "ja"
	FamilyKorean      Family = "ko"
)

// arabicScriptLanguages is consulted when the locale cannot be parsed.
var arabicScriptLanguages = map[string]bool{
	"ar":  true,
	"fa":  true,
	"ur":  true,
	"ps":  true,
	"ckb": true,
	"sd":  true,
	"ug":  true,
}

var arabScript = language.MustParseScript("Arab")

// ParseDirection accepts "ltr" or "rtl" in any case. Anything else returns false.
func ParseDirection(s string) (Direction, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ltr":
		return LTR, true
	case "rtl":
		return RTL, true
	}
	return "", false
}

// DirectionFor returns RTL for locales written in Arabic script and LTR for
// every other locale, including unparsable ones.
func DirectionFor(locale string) Direction {
	if IsArabicScript(locale) {
		return RTL
	}
	return LTR
}

// IsArabicScript reports whether the locale is written in Arabic script,
// either explicitly (pa-Arab) or by the language's likely script (fa-IR).
func IsArabicScript(locale string) bool {
	tag, err := language.Parse(normalize(locale))
	if err != nil {
		return arabicScriptLanguages[baseLanguage(locale)]
	}
	s, conf := tag.Script()
	if conf == language.No {
		return arabicScriptLanguages[baseLanguage(locale)]
	}
	return s == arabScript
}

// FamilyFor maps a locale to the font family bundle that covers its script.
func FamilyFor(locale string) Family {
	if IsArabicScript(locale) {
		return FamilyArabic
	}
	tag, err := language.Parse(normalize(locale))
	if err != nil {
		return FamilyLatin
	}
	s, _ := tag.Script()
	switch s.String() {
	case "Hebr":
		return FamilyHebrew
	case "Hans":
		return FamilyChinese
	case "Hant":
		return FamilyTraditional
	case "Jpan":
		return FamilyJapanese
	case "Kore":
		return FamilyKorean
	}
	return FamilyLatin
}

// NeedsWideFont reports whether s contains runes outside the Latin, Greek
// and Cyrillic ranges covered by the default fonts.
func NeedsWideFont(s string) bool {
	for _, r := range s {
		switch {
		case r < 0x0590:
		case r >= 0x2000 && r <= 0x20CF:
		case r == 0x2116 || r == 0x2122:
		default:
			return true
		}
	}
	return false
}

// IsCJK reports whether r belongs to a script that wraps per character.
func IsCJK(r rune) bool {
	return unicode.Is(unicode.Han, r) ||
		unicode.Is(unicode.Hiragana, r) ||
		unicode.Is(unicode.Katakana, r) ||
		unicode.Is(unicode.Hangul, r) ||
		(r >= 0x3000 && r <= 0x303F) ||
		(r >= 0xFF00 && r <= 0xFFEF)
}

// Canonical returns the BCP 47 form of locale, or "en-US" when it cannot be
// parsed. Underscores are accepted as separators.
func Canonical(locale string) string {
	tag, err := language.Parse(normalize(locale))
	if err != nil || tag == language.Und {
		return "en-US"
	}
	return tag.String()
}

func normalize(locale string) string {
	return strings.ReplaceAll(strings.TrimSpace(locale), "_", "-")
}

func baseLanguage(locale string) string {
	l := strings.ToLower(normalize(locale))
	if i := strings.IndexByte(l, '-'); i >= 0 {
		l = l[:i]
	}
	return l
}
