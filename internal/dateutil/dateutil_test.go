package dateutil

import (
	"errors"
	"strings"
	"testing"
	"time"
)

var frenchMonths = MonthNames{
	Full: [12]string{
		"janvier", "février", "mars", "avril", "mai", "juin",
		"juillet", "août", "septembre", "octobre", "novembre", "décembre",
	},
	Short: [12]string{
		"janv.", "févr.", "mars", "avr.", "mai", "juin",
		"juil.", "août", "sept.", "oct.", "nov.", "déc.",
	},
}

func TestFormat(t *testing.T) {
	t.Parallel()

	// Fixed time for deterministic tests: 2024-03-05
	fixedTime := time.Date(2024, 3, 5, 10, 30, 0, 0, time.UTC)

	tests := []struct {
		name    string
		format  string
		months  MonthNames
		want    string
		wantErr error
	}{
		// Tokens
		{name: "YYYY", format: "YYYY", want: "2024"},
		{name: "YY", format: "YY", want: "24"},
		{name: "MMMM", format: "MMMM", want: "March"},
		{name: "MMM", format: "MMM", want: "Mar"},
		{name: "MM", format: "MM", want: "03"},
		{name: "M", format: "M", want: "3"},
		{name: "DD", format: "DD", want: "05"},
		{name: "D", format: "D", want: "5"},
		// Combined formats
		{name: "ISO date", format: "YYYY-MM-DD", want: "2024-03-05"},
		{name: "European", format: "DD/MM/YYYY", want: "05/03/2024"},
		{name: "US", format: "MM/DD/YYYY", want: "03/05/2024"},
		{name: "long", format: "MMMM D, YYYY", want: "March 5, 2024"},
		// Presets
		{name: "iso preset", format: "iso", want: "2024-03-05"},
		{name: "preset is case insensitive", format: "European", want: "05/03/2024"},
		{name: "long preset", format: "long", want: "March 5, 2024"},
		// Localized month names
		{name: "french full month", format: "D MMMM YYYY", months: frenchMonths, want: "5 mars 2024"},
		{name: "french short month", format: "DD MMM YY", months: frenchMonths, want: "05 mars 24"},
		// Literals
		{name: "D in text is matched as day token", format: "Date: YYYY", want: "5ate: 2024"},
		{name: "brackets preserve literal text", format: "[Date]: YYYY", want: "Date: 2024"},
		{name: "brackets preserve tokens as literals", format: "[YYYY]-MM-DD", want: "YYYY-03-05"},
		{name: "empty brackets are valid", format: "YYYY[]MM", want: "202403"},
		{name: "nested-looking brackets use first close", format: "[a[b]c", want: "a[bc"},
		{name: "only literal characters", format: "---", want: "---"},
		// Errors
		{name: "unclosed bracket", format: "[Date YYYY", wantErr: ErrInvalidDateFormat},
		{name: "empty format", format: "", wantErr: ErrInvalidDateFormat},
		{name: "too long", format: strings.Repeat("-", MaxDateFormatLength+1), wantErr: ErrInvalidDateFormat},
		{name: "at max length", format: strings.Repeat("-", MaxDateFormatLength), want: strings.Repeat("-", MaxDateFormatLength)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			months := tt.months
			if months.Full[0] == "" {
				months = EnglishMonths
			}
			got, err := Format(fixedTime, tt.format, months)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Format(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Format(%q) unexpected error: %v", tt.format, err)
			}
			if got != tt.want {
				t.Errorf("Format(%q) = %q, want %q", tt.format, got, tt.want)
			}
		})
	}
}

func TestFormatFallsBackToEnglishNames(t *testing.T) {
	t.Parallel()

	p, err := Parse("MMMM")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	got := p.Format(time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC), MonthNames{})
	if got != "December" {
		t.Errorf("Format() with empty names = %q, want December", got)
	}
}
