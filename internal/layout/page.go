package layout

import (
	"errors"
	"fmt"
	"strings"
)

// DefaultPageSize is used when no page size is configured.
const DefaultPageSize = "a4"

// ErrInvalidPageSize is returned for page sizes other than PageSizes.
var ErrInvalidPageSize = errors.New("invalid page size")

// PageSizes lists the accepted page sizes, lowercase.
var PageSizes = []string{"a4", "letter", "legal"}

var fpdfSizes = map[string]string{
	"a4":     "A4",
	"letter": "Letter",
	"legal":  "Legal",
}

// ParsePageSize returns the fpdf size name for s. An empty s is the
// default size.
func ParsePageSize(s string) (string, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if key == "" {
		key = DefaultPageSize
	}
	size, ok := fpdfSizes[key]
	if !ok {
		return "", fmt.Errorf("%w: %q (use %s)", ErrInvalidPageSize, s, strings.Join(PageSizes, ", "))
	}
	return size, nil
}
