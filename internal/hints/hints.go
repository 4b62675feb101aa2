// Package hints builds the short remediation notes appended to error
// messages. Every hint reads "\n  hint: <text>".
package hints

import (
	"os"
	"strings"

	"github.com/alnah/go-docpdf/internal/fileutil"
)

// IsInContainer reports whether the process runs inside Docker.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

func inCI() bool {
	for _, k := range []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL"} {
		if os.Getenv(k) != "" {
			return true
		}
	}
	return false
}

// ForBrowser returns hints for a missing or unreachable browser, which only
// the download output needs.
func ForBrowser() string {
	var hints []string
	if os.Getenv("ROD_BROWSER_BIN") == "" {
		hints = append(hints, "install Chrome or Chromium, or set ROD_BROWSER_BIN")
	}
	if (inCI() || IsInContainer()) && os.Getenv("ROD_NO_SANDBOX") != "1" {
		hints = append(hints, "set ROD_NO_SANDBOX=1 for Docker/CI")
	}
	hints = append(hints, "use --output to write the PDF without a browser")
	return formatHints(hints)
}

// ForFontLoad returns hints for a font that could not be fetched or decoded.
func ForFontLoad(source string) string {
	if fileutil.IsURL(source) {
		return formatHints([]string{
			"check network access to " + hostOf(source),
			"raise fonts.timeout or point fonts.sources at a local file",
		})
	}
	return format("check that " + source + " exists and is a TrueType or OpenType font")
}

// ForTimeout returns a hint about slow font downloads.
func ForTimeout() string {
	return format("use --font-timeout to wait longer for font downloads")
}

// ForConfigNotFound suggests --config and, when one of the searched paths
// is the per-user location, creating the file there.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"
	for _, p := range searchedPaths {
		if strings.Contains(p, ".config/go-docpdf") || strings.Contains(p, "go-docpdf"+string(os.PathSeparator)) {
			hint += " or create " + p
			break
		}
	}
	return format(hint)
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForUnsupportedType lists the document types that can be rendered.
func ForUnsupportedType(supported []string) string {
	return ForChoices(supported)
}

// ForChoices lists the accepted values of a named option.
func ForChoices(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", "))
}

// ForLogo returns hints for a company logo that could not be loaded.
func ForLogo() string {
	return format("supported formats: PNG, JPEG, GIF; use a file path or an http(s) URL")
}

func hostOf(url string) string {
	rest := url[strings.Index(url, "//")+2:]
	if i := strings.IndexByte(rest, '/'); i >= 0 {
		return rest[:i]
	}
	return rest
}

func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
