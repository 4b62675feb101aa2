package locale

import (
	"math"
	"strconv"
	"strings"

	"github.com/alnah/go-docpdf/internal/dateutil"
)

var currencySymbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"JPY": "¥",
	"CNY": "¥",
	"KRW": "₩",
	"INR": "₹",
	"RUB": "₽",
	"TRY": "₺",
	"BRL": "R$",
	"CAD": "CA$",
	"AUD": "A$",
	"MXN": "MX$",
	"CHF": "CHF",
	"SEK": "kr",
	"NOK": "kr",
	"DKK": "kr",
	"PLN": "zł",
	"SAR": "ر.س",
	"AED": "د.إ",
	"EGP": "ج.م",
	"QAR": "ر.ق",
	"KWD": "د.ك",
	"IRR": "﷼",
	"PKR": "Rs",
}

// suffixLanguages place the currency symbol after the amount.
var suffixLanguages = map[string]bool{
	"fr": true,
	"de": true,
	"es": true,
	"it": true,
	"pt": true,
	"ru": true,
	"pl": true,
	"cs": true,
	"sv": true,
	"nb": true,
	"da": true,
	"fi": true,
	"uk": true,
}

type separators struct {
	group   string
	decimal string
}

var separatorsByLanguage = map[string]separators{
	"de": {".", ","},
	"es": {".", ","},
	"it": {".", ","},
	"pt": {".", ","},
	"nl": {".", ","},
	"tr": {".", ","},
	"id": {".", ","},
	"fr": {" ", ","},
	"ru": {" ", ","},
	"pl": {" ", ","},
	"cs": {" ", ","},
	"sv": {" ", ","},
	"nb": {" ", ","},
	"fi": {" ", ","},
	"uk": {" ", ","},
	"da": {".", ","},
}

func separatorsFor(lang string) separators {
	if s, ok := separatorsByLanguage[lang]; ok {
		return s
	}
	return separators{group: ",", decimal: "."}
}

// groupDigits formats v with ASCII digits, grouping thousands and keeping
// between minFrac and maxFrac fraction digits.
func groupDigits(v float64, minFrac, maxFrac int, sep separators) string {
	neg := v < 0
	v = math.Abs(v)

	s := strconv.FormatFloat(v, 'f', maxFrac, 64)
	intPart, frac, _ := strings.Cut(s, ".")
	for len(frac) > minFrac && strings.HasSuffix(frac, "0") {
		frac = frac[:len(frac)-1]
	}

	var b strings.Builder
	if neg && strings.Trim(s, "0.") != "" {
		b.WriteByte('-')
	}
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteString(sep.group)
		}
		b.WriteRune(r)
	}
	if frac != "" {
		b.WriteString(sep.decimal)
		b.WriteString(frac)
	}
	return b.String()
}

// fallbackMonths covers languages the date library does not ship.
var fallbackMonths = map[string]dateutil.MonthNames{
	"ar": {
		Full: [12]string{
			"يناير", "فبراير", "مارس", "أبريل", "مايو", "يونيو",
			"يوليو", "أغسطس", "سبتمبر", "أكتوبر", "نوفمبر", "ديسمبر",
		},
		Short: [12]string{
			"يناير", "فبراير", "مارس", "أبريل", "مايو", "يونيو",
			"يوليو", "أغسطس", "سبتمبر", "أكتوبر", "نوفمبر", "ديسمبر",
		},
	},
	"fa": {
		Full: [12]string{
			"ژانویه", "فوریه", "مارس", "آوریل", "مه", "ژوئن",
			"ژوئیه", "اوت", "سپتامبر", "اکتبر", "نوامبر", "دسامبر",
		},
		Short: [12]string{
			"ژانویه", "فوریه", "مارس", "آوریل", "مه", "ژوئن",
			"ژوئیه", "اوت", "سپتامبر", "اکتبر", "نوامبر", "دسامبر",
		},
	},
	"ur": {
		Full: [12]string{
			"جنوری", "فروری", "مارچ", "اپریل", "مئی", "جون",
			"جولائی", "اگست", "ستمبر", "اکتوبر", "نومبر", "دسمبر",
		},
		Short: [12]string{
			"جنوری", "فروری", "مارچ", "اپریل", "مئی", "جون",
			"جولائی", "اگست", "ستمبر", "اکتوبر", "نومبر", "دسمبر",
		},
	},
}
