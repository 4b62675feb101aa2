package docpdf

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif" // register decoders for image.DecodeConfig
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/alnah/go-docpdf/internal/compose"
	"github.com/alnah/go-docpdf/internal/fileutil"
)

// MaxLogoSize caps the size of a company logo (5MB).
const MaxLogoSize = 5 << 20

var (
	errLogoTooLarge   = errors.New("logo exceeds maximum size")
	errLogoFormat     = errors.New("logo must be PNG, JPEG or GIF")
	errLogoDataURI    = errors.New("malformed data URI")
	errLogoHTTPStatus = errors.New("unexpected HTTP status")
)

// loadLogo reads and identifies the logo referenced by ref. An empty ref
// is not an error and yields nil.
func (r *Renderer) loadLogo(ctx context.Context, ref string) (*compose.Logo, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, nil
	}

	var (
		data []byte
		err  error
	)
	switch {
	case strings.HasPrefix(ref, "data:"):
		data, err = decodeDataURI(ref)
	case fileutil.IsURL(ref):
		data, err = r.fetchLogo(ctx, ref)
	default:
		data, err = readLimited(ref)
	}
	if err != nil {
		return nil, err
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errLogoFormat, err)
	}
	switch format {
	case "png", "jpeg", "gif":
	default:
		return nil, fmt.Errorf("%w: got %s", errLogoFormat, format)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("%w: empty image", errLogoFormat)
	}
	return &compose.Logo{Data: data, Format: format, Width: cfg.Width, Height: cfg.Height}, nil
}

func decodeDataURI(ref string) ([]byte, error) {
	meta, payload, ok := strings.Cut(strings.TrimPrefix(ref, "data:"), ",")
	if !ok || !strings.HasSuffix(meta, ";base64") {
		return nil, errLogoDataURI
	}
	if base64.StdEncoding.DecodedLen(len(payload)) > MaxLogoSize {
		return nil, errLogoTooLarge
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errLogoDataURI, err)
	}
	return data, nil
}

func (r *Renderer) fetchLogo(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s", errLogoHTTPStatus, resp.Status)
	}
	return readAllLimited(resp.Body)
}

func readLimited(path string) ([]byte, error) {
	f, err := os.Open(path) // #nosec G304 -- logo path is caller-provided
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	return readAllLimited(f)
}

func readAllLimited(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxLogoSize+1))
	if err != nil {
		return nil, err
	}
	if len(data) > MaxLogoSize {
		return nil, errLogoTooLarge
	}
	return data, nil
}
