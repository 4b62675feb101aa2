package locale

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/goodsign/monday"

	"github.com/alnah/go-docpdf/internal/dateutil"
)

const referenceLayout = "January 2, 2006"

// mondayLocales indexes the date library's locales by exact tag ("fr_CA")
// and by language ("fr"), the first listed locale winning for a language.
var mondayLocales = func() map[string]monday.Locale {
	m := make(map[string]monday.Locale)
	for _, loc := range monday.ListLocales() {
		key := strings.ToLower(string(loc))
		m[key] = loc
		lang, _, _ := strings.Cut(key, "_")
		if _, ok := m[lang]; !ok {
			m[lang] = loc
		}
	}
	return m
}()

func lookupMonday(locale string) (monday.Locale, bool) {
	key := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(locale), "-", "_"))
	if loc, ok := mondayLocales[key]; ok {
		return loc, true
	}
	lang, _, _ := strings.Cut(key, "_")
	loc, ok := mondayLocales[lang]
	return loc, ok
}

func nativeDate(t time.Time, locale string) (string, error) {
	loc, ok := lookupMonday(locale)
	if !ok {
		return "", fmt.Errorf("%w: no date names for %s", errUnknownLocale, locale)
	}
	layout, ok := monday.LongFormatsByLocale[loc]
	if !ok || layout == "" {
		layout = referenceLayout
	}
	return monday.Format(t, layout, loc), nil
}

// monthCache memoizes month names per date-library locale.
type monthCache struct {
	mu    sync.RWMutex
	names map[monday.Locale]dateutil.MonthNames
}

func newMonthCache() *monthCache {
	return &monthCache{names: make(map[monday.Locale]dateutil.MonthNames)}
}

func (c *monthCache) get(locale string) (dateutil.MonthNames, bool) {
	loc, ok := lookupMonday(locale)
	if !ok {
		return dateutil.MonthNames{}, false
	}

	c.mu.RLock()
	names, ok := c.names[loc]
	c.mu.RUnlock()
	if ok {
		return names, true
	}

	for m := 0; m < 12; m++ {
		d := time.Date(2000, time.Month(m+1), 1, 0, 0, 0, 0, time.UTC)
		names.Full[m] = monday.Format(d, "January", loc)
		names.Short[m] = monday.Format(d, "Jan", loc)
	}

	c.mu.Lock()
	c.names[loc] = names
	c.mu.Unlock()
	return names, true
}
