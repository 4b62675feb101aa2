// Package dateutil renders dates from user-friendly format patterns such as
// "DD/MM/YYYY" or "MMMM D, YYYY", with month names supplied by the caller so
// patterns work in any language.
package dateutil

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidDateFormat indicates an invalid date format string.
var ErrInvalidDateFormat = errors.New("invalid date format")

// MaxDateFormatLength limits format string length to prevent abuse.
const MaxDateFormatLength = 50

// DatePresets provides named shortcuts for common date formats.
var DatePresets = map[string]string{
	"iso":      "YYYY-MM-DD",
	"european": "DD/MM/YYYY",
	"us":       "MM/DD/YYYY",
	"long":     "MMMM D, YYYY",
}

// MonthNames holds the full and abbreviated month names, January first.
type MonthNames struct {
	Full  [12]string
	Short [12]string
}

// EnglishMonths is used when no localized names are available.
var EnglishMonths = MonthNames{
	Full: [12]string{
		"January", "February", "March", "April", "May", "June",
		"July", "August", "September", "October", "November", "December",
	},
	Short: [12]string{
		"Jan", "Feb", "Mar", "Apr", "May", "Jun",
		"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
	},
}

type token int

const (
	literal token = iota
	year4
	year2
	monthFull
	monthShort
	month2
	month1
	day2
	day1
)

// dateTokens is ordered by length descending for greedy matching.
var dateTokens = []struct {
	text string
	tok  token
}{
	{"YYYY", year4},
	{"MMMM", monthFull},
	{"MMM", monthShort},
	{"YY", year2},
	{"MM", month2},
	{"DD", day2},
	{"M", month1},
	{"D", day1},
}

type segment struct {
	tok  token
	text string
}

// Pattern is a parsed date format.
type Pattern struct {
	segments []segment
}

// Parse parses a format pattern or preset name.
// Tokens: YYYY, YY, MMMM, MMM, MM, M, DD, D.
// Use brackets to escape literal text: [Date] preserves "Date" literally.
// Any non-token characters outside brackets are preserved as literals.
// Returns ErrInvalidDateFormat if the format is empty, too long, or has unclosed brackets.
func Parse(format string) (*Pattern, error) {
	if preset, ok := DatePresets[strings.ToLower(strings.TrimSpace(format))]; ok {
		format = preset
	}
	if format == "" {
		return nil, fmt.Errorf("%w: format cannot be empty", ErrInvalidDateFormat)
	}
	if len(format) > MaxDateFormatLength {
		return nil, fmt.Errorf("%w: format exceeds %d characters", ErrInvalidDateFormat, MaxDateFormatLength)
	}

	p := &Pattern{}
	var lit strings.Builder
	flush := func() {
		if lit.Len() > 0 {
			p.segments = append(p.segments, segment{tok: literal, text: lit.String()})
			lit.Reset()
		}
	}

	i := 0
	for i < len(format) {
		if format[i] == '[' {
			end := strings.Index(format[i+1:], "]")
			if end == -1 {
				return nil, fmt.Errorf("%w: unclosed bracket at position %d", ErrInvalidDateFormat, i)
			}
			lit.WriteString(format[i+1 : i+1+end])
			i += end + 2
			continue
		}

		matched := false
		for _, t := range dateTokens {
			if strings.HasPrefix(format[i:], t.text) {
				flush()
				p.segments = append(p.segments, segment{tok: t.tok})
				i += len(t.text)
				matched = true
				break
			}
		}
		if !matched {
			lit.WriteByte(format[i])
			i++
		}
	}
	flush()
	return p, nil
}

// Format renders t with the given month names.
func (p *Pattern) Format(t time.Time, months MonthNames) string {
	var b strings.Builder
	m := int(t.Month()) - 1
	for _, s := range p.segments {
		switch s.tok {
		case literal:
			b.WriteString(s.text)
		case year4:
			b.WriteString(fmt.Sprintf("%04d", t.Year()))
		case year2:
			b.WriteString(fmt.Sprintf("%02d", t.Year()%100))
		case monthFull:
			b.WriteString(nameOr(months.Full[m], EnglishMonths.Full[m]))
		case monthShort:
			b.WriteString(nameOr(months.Short[m], EnglishMonths.Short[m]))
		case month2:
			b.WriteString(fmt.Sprintf("%02d", m+1))
		case month1:
			b.WriteString(strconv.Itoa(m + 1))
		case day2:
			b.WriteString(fmt.Sprintf("%02d", t.Day()))
		case day1:
			b.WriteString(strconv.Itoa(t.Day()))
		}
	}
	return b.String()
}

// Format parses format and renders t in one step.
func Format(t time.Time, format string, months MonthNames) (string, error) {
	p, err := Parse(format)
	if err != nil {
		return "", err
	}
	return p.Format(t, months), nil
}

func nameOr(name, fallback string) string {
	if name == "" {
		return fallback
	}
	return name
}
