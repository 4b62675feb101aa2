// Package locale formats currency amounts, numbers and dates for a locale.
//
// Every function degrades instead of failing: the native CLDR path
// (golang.org/x/text and github.com/goodsign/monday) is tried first, then a
// small built-in table, then the en-US reference format. The result is never
// empty and no input makes these functions panic.
package locale

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/alnah/go-docpdf/internal/dateutil"
	"github.com/alnah/go-docpdf/internal/script"
)

// ReferenceLocale is the hard fallback for all formatting.
const ReferenceLocale = "en-US"

// DefaultCurrency is used when no currency code is given.
const DefaultCurrency = "USD"

var (
	errUnknownCurrency = errors.New("unknown currency")
	errUnknownLocale   = errors.New("unknown locale")
)

// NumberOptions bounds the fraction digits of a formatted number.
type NumberOptions struct {
	MinFraction int
	MaxFraction int
}

// Formatter formats values for display. It is safe for concurrent use.
type Formatter struct {
	native bool
	logger *zap.Logger
	months *monthCache
}

// Option configures a Formatter.
type Option func(*Formatter)

// WithNative enables or disables the CLDR formatting path. Disabling it
// forces the built-in tables, which is mostly useful in tests.
func WithNative(enabled bool) Option {
	return func(f *Formatter) { f.native = enabled }
}

// WithLogger sets the logger used to report fallbacks.
func WithLogger(l *zap.Logger) Option {
	return func(f *Formatter) {
		if l != nil {
			f.logger = l
		}
	}
}

// New creates a Formatter with the native path enabled.
func New(opts ...Option) *Formatter {
	f := &Formatter{native: true, logger: zap.NewNop(), months: newMonthCache()}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// FormatCurrency formats amount with two fraction digits and the currency
// symbol placed as the locale expects. Right-to-left locales that fall back
// to the built-in table put the amount before the symbol.
func (f *Formatter) FormatCurrency(amount float64, code, locale string) string {
	amount = finite(amount)
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		code = DefaultCurrency
	}

	if f.native {
		s, err := guard(func() (string, error) { return nativeCurrency(amount, code, locale) })
		if err == nil && s != "" {
			return s
		}
		f.logger.Debug("native currency format failed",
			zap.String("locale", locale), zap.String("currency", code), zap.Error(err))
	}

	s, err := guard(func() (string, error) { return tableCurrency(amount, code, locale) })
	if err == nil && s != "" {
		return s
	}
	f.logger.Debug("table currency format failed",
		zap.String("locale", locale), zap.String("currency", code), zap.Error(err))

	return code + " " + groupDigits(amount, 2, 2, separatorsFor("en"))
}

// FormatNumber formats v with locale digits and separators.
func (f *Formatter) FormatNumber(v float64, locale string, opts NumberOptions) string {
	v = finite(v)
	opts = clampFraction(opts)

	if f.native {
		s, err := guard(func() (string, error) {
			tag, err := parseTag(locale)
			if err != nil {
				return "", err
			}
			p := message.NewPrinter(tag)
			return p.Sprint(number.Decimal(v,
				number.MinFractionDigits(opts.MinFraction),
				number.MaxFractionDigits(opts.MaxFraction))), nil
		})
		if err == nil && s != "" {
			return s
		}
	}
	return groupDigits(v, opts.MinFraction, opts.MaxFraction, separatorsFor(baseLanguage(locale)))
}

// FormatPercent formats a fractional rate (0.08) as a percentage (8%).
func (f *Formatter) FormatPercent(rate float64, locale string) string {
	return f.FormatNumber(finite(rate)*100, locale, NumberOptions{MinFraction: 0, MaxFraction: 2}) + "%"
}

// FormatDate formats t in the locale's long date style.
func (f *Formatter) FormatDate(t time.Time, locale string) string {
	if f.native {
		s, err := guard(func() (string, error) { return nativeDate(t, locale) })
		if err == nil && s != "" {
			return s
		}
		f.logger.Debug("native date format failed", zap.String("locale", locale), zap.Error(err))
	}

	if months, ok := fallbackMonths[baseLanguage(locale)]; ok {
		if s, err := dateutil.Format(t, "D MMMM YYYY", months); err == nil {
			return s
		}
	}
	return t.Format("January 2, 2006")
}

// FormatDatePattern formats t with a dateutil pattern such as "DD/MM/YYYY",
// using the locale's month names. An invalid pattern falls back to
// FormatDate.
func (f *Formatter) FormatDatePattern(t time.Time, pattern, locale string) string {
	p, err := dateutil.Parse(pattern)
	if err != nil {
		f.logger.Debug("invalid date pattern", zap.String("pattern", pattern), zap.Error(err))
		return f.FormatDate(t, locale)
	}
	return p.Format(t, f.MonthNames(locale))
}

// MonthNames returns localized month names, or English names when the locale
// has none.
func (f *Formatter) MonthNames(locale string) dateutil.MonthNames {
	if months, ok := fallbackMonths[baseLanguage(locale)]; ok {
		return months
	}
	if f.native {
		if months, ok := f.months.get(locale); ok {
			return months
		}
	}
	return dateutil.EnglishMonths
}

func nativeCurrency(amount float64, code, locale string) (string, error) {
	tag, err := parseTag(locale)
	if err != nil {
		return "", err
	}
	unit, err := currency.ParseISO(code)
	if err != nil {
		return "", fmt.Errorf("%w: %s", errUnknownCurrency, code)
	}

	p := message.NewPrinter(tag)
	digits := p.Sprint(number.Decimal(amount,
		number.MinFractionDigits(2),
		number.MaxFractionDigits(2)))
	symbol := p.Sprint(currency.NarrowSymbol(unit))
	if symbol == "" {
		symbol = code
	}
	return place(digits, symbol, locale), nil
}

func tableCurrency(amount float64, code, locale string) (string, error) {
	symbol, ok := currencySymbols[code]
	if !ok {
		return "", fmt.Errorf("%w: %s", errUnknownCurrency, code)
	}
	digits := groupDigits(amount, 2, 2, separatorsFor(baseLanguage(locale)))
	return place(digits, symbol, locale), nil
}

// place joins digits and symbol. Arabic-script and suffix locales put the
// symbol after the amount; letters in a prefix symbol get a separating space.
func place(digits, symbol, locale string) string {
	lang := baseLanguage(locale)
	if script.IsArabicScript(locale) || suffixLanguages[lang] {
		return digits + " " + symbol
	}
	last := []rune(symbol)
	if r := last[len(last)-1]; (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') {
		return symbol + " " + digits
	}
	return symbol + digits
}

func parseTag(locale string) (language.Tag, error) {
	l := strings.ReplaceAll(strings.TrimSpace(locale), "_", "-")
	if l == "" {
		return language.Und, errUnknownLocale
	}
	tag, err := language.Parse(l)
	if err != nil {
		return language.Und, fmt.Errorf("%w: %s: %v", errUnknownLocale, locale, err)
	}
	return tag, nil
}

func baseLanguage(locale string) string {
	l := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(locale), "_", "-"))
	if i := strings.IndexByte(l, '-'); i >= 0 {
		l = l[:i]
	}
	return l
}

// guard converts a panic inside fn into an error.
func guard(fn func() (string, error)) (s string, err error) {
	defer func() {
		if r := recover(); r != nil {
			s, err = "", fmt.Errorf("formatter panic: %v", r)
		}
	}()
	return fn()
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func clampFraction(o NumberOptions) NumberOptions {
	if o.MinFraction < 0 {
		o.MinFraction = 0
	}
	if o.MaxFraction > 6 {
		o.MaxFraction = 6
	}
	if o.MaxFraction < o.MinFraction {
		o.MaxFraction = o.MinFraction
	}
	return o
}

// Round2 rounds half away from zero to two decimals.
func Round2(v float64) float64 {
	return math.Round(finite(v)*100) / 100
}
