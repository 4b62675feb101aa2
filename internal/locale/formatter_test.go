package locale

import (
	"math"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestFormatCurrency(t *testing.T) {
	t.Parallel()

	f := New()

	tests := []struct {
		name     string
		amount   float64
		currency string
		locale   string
		want     string
	}{
		{"en-US dollars", 12.5, "USD", "en-US", "$12.50"},
		{"rounds to two decimals", 1234.567, "USD", "en-US", "$1,234.57"},
		{"lowercase code accepted", 3, "usd", "en-US", "$3.00"},
		{"unknown currency falls back to ISO code", 12.5, "XYZ", "en-US", "XYZ 12.50"},
		{"NaN renders as zero", math.NaN(), "USD", "en-US", "$0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := f.FormatCurrency(tt.amount, tt.currency, tt.locale); got != tt.want {
				t.Errorf("FormatCurrency(%v, %q, %q) = %q, want %q", tt.amount, tt.currency, tt.locale, got, tt.want)
			}
		})
	}
}

func TestFormatCurrencyNeverEmpty(t *testing.T) {
	t.Parallel()

	inputs := []struct{ currency, locale string }{
		{"", ""},
		{"EUR", "not-a-locale!!"},
		{"???", "fr-FR"},
		{"JPY", "ja-JP"},
		{"SAR", "ar-SA"},
		{"EUR", "de-DE"},
	}
	for _, native := range []bool{true, false} {
		f := New(WithNative(native))
		for _, in := range inputs {
			if got := f.FormatCurrency(99.99, in.currency, in.locale); got == "" {
				t.Errorf("native=%v FormatCurrency(%q, %q) returned empty string", native, in.currency, in.locale)
			}
		}
	}
}

func TestFormatCurrencyFallback(t *testing.T) {
	t.Parallel()

	f := New(WithNative(false))

	tests := []struct {
		name     string
		amount   float64
		currency string
		locale   string
		want     string
	}{
		{"en-US prefix symbol", 12.5, "USD", "en-US", "$12.50"},
		{"ar-SA amount before symbol", 12.5, "USD", "ar-SA", "12.50 $"},
		{"ar-SA riyal", 1500, "SAR", "ar-SA", "1,500.00 ر.س"},
		{"fr-FR suffix and separators", 1234.5, "EUR", "fr-FR", "1 234,50 €"},
		{"de-DE separators", 1234.5, "EUR", "de-DE", "1.234,50 €"},
		{"alphabetic prefix symbol is spaced", 10, "CHF", "en-GB", "CHF 10.00"},
		{"negative amount", -5, "GBP", "en-GB", "£-5.00"},
		{"unknown code uses reference locale", 7, "ZZZ", "ar-SA", "ZZZ 7.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := f.FormatCurrency(tt.amount, tt.currency, tt.locale); got != tt.want {
				t.Errorf("FormatCurrency(%v, %q, %q) = %q, want %q", tt.amount, tt.currency, tt.locale, got, tt.want)
			}
		})
	}
}

func TestFormatCurrencyFallbackPlacesAmountFirstForRTL(t *testing.T) {
	t.Parallel()

	got := New(WithNative(false)).FormatCurrency(12.5, "USD", "ar-SA")
	amount := strings.Index(got, "12.50")
	symbol := strings.Index(got, "$")
	if amount < 0 || symbol < 0 || amount > symbol {
		t.Errorf("FormatCurrency() = %q, want amount before symbol", got)
	}
}

func TestFormatCurrencyLogsFallback(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.DebugLevel)
	f := New(WithLogger(zap.New(core)))

	_ = f.FormatCurrency(1, "XYZ", "en-US")

	if logs.FilterMessage("native currency format failed").Len() != 1 {
		t.Errorf("expected native fallback to be logged, got %v", logs.All())
	}
}

func TestFormatNumber(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		native bool
		v      float64
		locale string
		opts   NumberOptions
		want   string
	}{
		{"native grouping", true, 1234567.891, "en-US", NumberOptions{MinFraction: 0, MaxFraction: 2}, "1,234,567.89"},
		{"native integer", true, 3, "en-US", NumberOptions{}, "3"},
		{"fallback trims zeros", false, 2.5, "en-US", NumberOptions{MinFraction: 0, MaxFraction: 3}, "2.5"},
		{"fallback keeps min fraction", false, 2, "en-US", NumberOptions{MinFraction: 2, MaxFraction: 2}, "2.00"},
		{"fallback german", false, 1234.5, "de", NumberOptions{MinFraction: 1, MaxFraction: 1}, "1.234,5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			f := New(WithNative(tt.native))
			if got := f.FormatNumber(tt.v, tt.locale, tt.opts); got != tt.want {
				t.Errorf("FormatNumber(%v) = %q, want %q", tt.v, got, tt.want)
			}
		})
	}
}

func TestFormatPercent(t *testing.T) {
	t.Parallel()

	if got := New().FormatPercent(0.08, "en-US"); got != "8%" {
		t.Errorf("FormatPercent(0.08) = %q, want 8%%", got)
	}
	if got := New(WithNative(false)).FormatPercent(0.075, "en-US"); got != "7.5%" {
		t.Errorf("FormatPercent(0.075) = %q, want 7.5%%", got)
	}
}

func TestFormatDate(t *testing.T) {
	t.Parallel()

	d := time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		native   bool
		locale   string
		contains []string
	}{
		{"english", true, "en-US", []string{"March", "5", "2024"}},
		{"french", true, "fr-FR", []string{"mars", "2024"}},
		{"arabic uses month table", true, "ar-SA", []string{"مارس", "2024"}},
		{"unknown locale uses reference", true, "xx-XX", []string{"March 5, 2024"}},
		{"fallback english", false, "en-US", []string{"March 5, 2024"}},
		{"fallback arabic", false, "ar", []string{"5 مارس 2024"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := New(WithNative(tt.native)).FormatDate(d, tt.locale)
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("FormatDate(%q) = %q, want it to contain %q", tt.locale, got, want)
				}
			}
		})
	}
}

func TestFormatDatePattern(t *testing.T) {
	t.Parallel()

	d := time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC)
	f := New()

	if got := f.FormatDatePattern(d, "DD/MM/YYYY", "en-US"); got != "05/03/2024" {
		t.Errorf("FormatDatePattern(DD/MM/YYYY) = %q", got)
	}
	if got := f.FormatDatePattern(d, "D MMMM YYYY", "ar"); got != "5 مارس 2024" {
		t.Errorf("FormatDatePattern(arabic) = %q", got)
	}
	if got := f.FormatDatePattern(d, "[unclosed", "en-US"); got != f.FormatDate(d, "en-US") {
		t.Errorf("invalid pattern should fall back to FormatDate, got %q", got)
	}
}

func TestRound2(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in, want float64
	}{
		{8, 8},
		{1.005 * 1000, 1005},
		{2.346, 2.35},
		{-2.346, -2.35},
		{math.Inf(1), 0},
	}
	for _, tt := range tests {
		if got := Round2(tt.in); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Round2(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
