package docpdf

import (
	"bytes"
	"cmp"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"go.uber.org/zap"

	"github.com/alnah/go-docpdf/internal/fileutil"
	"github.com/alnah/go-docpdf/internal/hints"
	"github.com/alnah/go-docpdf/internal/process"
)

// DefaultDownloadTimeout bounds one browser download.
const DefaultDownloadTimeout = time.Minute

// DownloadOptions controls where a browser download is saved.
type DownloadOptions struct {
	Filename string        // empty derives one from the document
	Dir      string        // empty uses the current directory
	Timeout  time.Duration // zero uses DefaultDownloadTimeout
}

// The page turns the embedded PDF into a Blob, points an anchor at an
// object URL for it and clicks the anchor. The URL is revoked by
// docpdfRevoke, which the downloader calls on every exit path.
var downloadPage = template.Must(template.New("download").Parse(`<!doctype html>
<html><head><meta charset="utf-8"><title>{{.Filename}}</title></head>
<body>
<script>
window.docpdfURL = null;
window.docpdfRevoke = function () {
  if (window.docpdfURL) {
    URL.revokeObjectURL(window.docpdfURL);
    window.docpdfURL = null;
  }
  return true;
};
window.docpdfDownload = function () {
  const raw = atob({{.Payload}});
  const bytes = new Uint8Array(raw.length);
  for (let i = 0; i < raw.length; i++) bytes[i] = raw.charCodeAt(i);
  window.docpdfURL = URL.createObjectURL(new Blob([bytes], {type: {{.Type}}}));
  try {
    const a = document.createElement("a");
    a.href = window.docpdfURL;
    a.download = {{.Filename}};
    document.body.appendChild(a);
    a.click();
    a.remove();
  } catch (e) {
    window.docpdfRevoke();
    throw e;
  }
  return true;
};
</script>
</body></html>
`))

// browserPath finds the browser to drive: ROD_BROWSER_BIN when it names a
// file, otherwise a system Chrome or Chromium.
func browserPath() (string, bool) {
	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" && fileutil.FileExists(bin) {
		return bin, true
	}
	return launcher.LookPath()
}

// TriggerDownload renders raw JSON and saves it through a real browser
// download, returning the saved path. Without a browser it fails with an
// *EnvironmentError before rendering.
func (r *Renderer) TriggerDownload(ctx context.Context, raw []byte, opts RenderOptions, dl DownloadOptions) (string, error) {
	if _, ok := r.lookBrowser(); !ok {
		return "", noBrowserError()
	}
	res, err := r.RenderJSON(ctx, raw, opts)
	if err != nil {
		return "", err
	}
	d := r.NewDownloader()
	defer func() { _ = d.Close() }()
	return d.Download(ctx, res, dl)
}

func noBrowserError() error {
	return &EnvironmentError{Requirement: "browser", Err: ErrNoBrowser, Hint: hints.ForBrowser()}
}

// Downloader saves rendered documents through a headless browser. The
// browser starts on first use and is reused until Close. Downloads through
// one Downloader run one at a time.
type Downloader struct {
	logger *zap.Logger
	look   func() (string, bool)

	mu       sync.Mutex
	launcher *launcher.Launcher
	browser  *rod.Browser
	closed   bool
}

// NewDownloader returns a Downloader that logs through the renderer's logger.
func (r *Renderer) NewDownloader() *Downloader {
	return &Downloader{logger: r.logger, look: r.lookBrowser}
}

// Download saves res as a file and returns its path.
func (d *Downloader) Download(ctx context.Context, res *Result, opts DownloadOptions) (path string, err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return "", ErrDownloaderClosed
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultDownloadTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	dir, err := filepath.Abs(cmp.Or(strings.TrimSpace(opts.Dir), "."))
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating download directory: %w%s", err, hints.ForOutputDirectory())
	}
	name := safeFilename(cmp.Or(strings.TrimSpace(opts.Filename), res.filename))

	page, cleanup, err := writeDownloadPage(res, name)
	if err != nil {
		return "", &OutputEncodingError{Format: "download page", Err: err}
	}
	defer cleanup()

	if err := d.ensureBrowser(); err != nil {
		return "", err
	}
	browser := d.browser.Context(ctx)
	wait := browser.WaitDownload(dir)

	tab, err := browser.Page(proto.TargetCreateTarget{URL: "file://" + filepath.ToSlash(page)})
	if err != nil {
		return "", fmt.Errorf("opening download page: %w", err)
	}
	defer func() { _ = tab.Close() }()
	if err := tab.WaitLoad(); err != nil {
		return "", fmt.Errorf("loading download page: %w", err)
	}
	defer func() {
		if _, rerr := tab.Context(context.WithoutCancel(ctx)).Eval(`() => window.docpdfRevoke()`); rerr != nil {
			d.logger.Debug("revoking object URL", zap.Error(rerr))
		}
	}()
	if _, err := tab.Eval(`() => window.docpdfDownload()`); err != nil {
		return "", fmt.Errorf("starting download: %w", err)
	}

	info := wait()
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if info == nil {
		return "", errors.New("browser reported no download")
	}

	saved := filepath.Join(dir, info.GUID)
	target := filepath.Join(dir, name)
	if err := os.Rename(saved, target); err != nil {
		return "", fmt.Errorf("moving download into place: %w", err)
	}
	d.logger.Info("downloaded", zap.String("render_id", res.id), zap.String("path", target))
	return target, nil
}

// ensureBrowser lazily launches and connects to the browser.
func (d *Downloader) ensureBrowser() error {
	if d.browser != nil {
		return nil
	}
	bin, ok := d.look()
	if !ok {
		return noBrowserError()
	}

	l := launcher.New().Bin(bin).Headless(true)
	if os.Getenv("ROD_NO_SANDBOX") == "1" || os.Getenv("CI") == "true" || hints.IsInContainer() {
		l = l.NoSandbox(true)
	}
	u, err := l.Launch()
	if err != nil {
		l.Kill()
		return &EnvironmentError{Requirement: "browser", Err: err, Hint: hints.ForBrowser()}
	}

	b := rod.New().ControlURL(u)
	if err := b.Connect(); err != nil {
		d.kill(l)
		return &EnvironmentError{Requirement: "browser", Err: err, Hint: hints.ForBrowser()}
	}
	d.launcher, d.browser = l, b
	return nil
}

// Close shuts the browser down and removes its profile directory.
func (d *Downloader) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return nil
	}
	d.closed = true

	var err error
	if d.browser != nil {
		err = d.browser.Close()
		d.browser = nil
	}
	if d.launcher != nil {
		d.kill(d.launcher)
		d.launcher = nil
	}
	return err
}

func (d *Downloader) kill(l *launcher.Launcher) {
	if err := process.KillGroup(l.PID()); err != nil {
		d.logger.Debug("killing browser process group", zap.Error(err))
	}
	l.Kill()
	l.Cleanup()
}

func writeDownloadPage(res *Result, filename string) (string, func(), error) {
	var buf bytes.Buffer
	err := downloadPage.Execute(&buf, struct {
		Filename string
		Type     string
		Payload  string
	}{filename, MIMEType, base64.StdEncoding.EncodeToString(res.data)})
	if err != nil {
		return "", nil, err
	}
	return fileutil.WriteTempFile(buf.Bytes(), "html")
}

// safeFilename reduces name to a base name without reserved characters and
// with a .pdf extension.
func safeFilename(name string) string {
	name = filepath.Base(strings.TrimSpace(name))
	name = strings.Map(func(r rune) rune {
		if strings.ContainsRune(`<>:"/\|?*`, r) || r < 0x20 {
			return '-'
		}
		return r
	}, name)
	if name == "" || name == "." || name == ".." {
		name = "document"
	}
	if !strings.EqualFold(filepath.Ext(name), ".pdf") {
		name += ".pdf"
	}
	return name
}
