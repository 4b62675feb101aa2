package fonts

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/alnah/go-docpdf/internal/observability"
)

// MaxFontSize bounds a downloaded font file (CJK fonts are large).
const MaxFontSize = 32 << 20

// Sentinel errors for font fetching.
var (
	ErrUnknownEmbed     = errors.New("unknown embedded font")
	ErrUnexpectedStatus = errors.New("unexpected HTTP status")
	ErrFontTooLarge     = errors.New("font file exceeds maximum size")
)

// Fetcher retrieves raw font bytes for a source.
type Fetcher interface {
	Fetch(ctx context.Context, source string) ([]byte, error)
}

// FetcherFunc adapts a function to Fetcher.
type FetcherFunc func(ctx context.Context, source string) ([]byte, error)

// Fetch calls f.
func (f FetcherFunc) Fetch(ctx context.Context, source string) ([]byte, error) {
	return f(ctx, source)
}

var embedded = map[string][]byte{
	"embed://go/regular":    goregular.TTF,
	"embed://go/bold":       gobold.TTF,
	"embed://go/italic":     goitalic.TTF,
	"embed://go/bolditalic": gobolditalic.TTF,
}

// SourceFetcher resolves embed://, http(s):// and file sources.
type SourceFetcher struct {
	Client *http.Client
}

// NewSourceFetcher returns a fetcher whose HTTP requests are traced.
func NewSourceFetcher() *SourceFetcher {
	return &SourceFetcher{Client: &http.Client{Transport: observability.TracingTransport(nil, nil)}}
}

// Fetch implements Fetcher.
func (f *SourceFetcher) Fetch(ctx context.Context, source string) ([]byte, error) {
	switch {
	case strings.HasPrefix(source, "embed://"):
		data, ok := embedded[source]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownEmbed, source)
		}
		return data, nil
	case strings.HasPrefix(source, "http://"), strings.HasPrefix(source, "https://"):
		return f.fetchHTTP(ctx, source)
	default:
		path := strings.TrimPrefix(source, "file://")
		return os.ReadFile(path) // #nosec G304 -- font paths come from configuration
	}
}

func (f *SourceFetcher) fetchHTTP(ctx context.Context, url string) ([]byte, error) {
	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s", ErrUnexpectedStatus, resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxFontSize+1))
	if err != nil {
		return nil, fmt.Errorf("reading body: %w", err)
	}
	if len(data) > MaxFontSize {
		return nil, ErrFontTooLarge
	}
	return data, nil
}
