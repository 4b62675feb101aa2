package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config    string
	quiet     bool
	verbose   bool
	logLevel  string
	logFormat string
}

// documentFlags selects how documents are read and laid out.
type documentFlags struct {
	locale     string
	docType    string
	template   string
	theme      string
	pageSize   string
	direction  string
	dateFormat string
}

// brandingFlags holds the company branding flags.
type brandingFlags struct {
	accent  string
	logo    string
	website string
}

// watermarkFlags holds watermark flags.
type watermarkFlags struct {
	enabled  bool
	text     string
	disabled bool
}

// outputFlags selects where rendered documents go.
type outputFlags struct {
	dir      string
	dataURI  bool
	download bool
}

// renderFlags holds all flags for the render command.
type renderFlags struct {
	common      commonFlags
	document    documentFlags
	branding    brandingFlags
	watermark   watermarkFlags
	output      outputFlags
	workers     int
	fontTimeout string
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "log at debug level")
	fs.StringVar(&f.logLevel, "log-level", "", "log level: debug, info, warn, error")
	fs.StringVar(&f.logFormat, "log-format", "", "log format: console, json")
}

// addDocumentFlags adds document flags to a FlagSet.
func addDocumentFlags(fs *flag.FlagSet, f *documentFlags) {
	fs.StringVarP(&f.locale, "locale", "l", "", "BCP 47 locale, e.g. en-US, ar-SA, ja-JP")
	fs.StringVarP(&f.docType, "type", "t", "", "document type: invoice, nda (default: read from the JSON)")
	fs.StringVar(&f.template, "template", "", "template: modern, classic, minimal")
	fs.StringVar(&f.theme, "theme", "", "theme name")
	fs.StringVarP(&f.pageSize, "page-size", "p", "", "page size: a4, letter, legal")
	fs.StringVar(&f.direction, "direction", "", "text direction: ltr, rtl (default: from the locale)")
	fs.StringVar(&f.dateFormat, "date-format", "", "date format, e.g. DD/MM/YYYY or iso")
}

// addBrandingFlags adds branding flags to a FlagSet.
func addBrandingFlags(fs *flag.FlagSet, f *brandingFlags) {
	fs.StringVar(&f.accent, "accent", "", "accent color (#rgb or #rrggbb)")
	fs.StringVar(&f.logo, "logo", "", "company logo path, URL or data URI")
	fs.StringVar(&f.website, "website", "", "website URL shown in the footer")
}

// addWatermarkFlags adds watermark flags to a FlagSet.
func addWatermarkFlags(fs *flag.FlagSet, f *watermarkFlags) {
	fs.BoolVar(&f.enabled, "watermark", false, "draw a diagonal watermark")
	fs.StringVar(&f.text, "watermark-text", "", "watermark text (implies --watermark)")
	fs.BoolVar(&f.disabled, "no-watermark", false, "disable the watermark set in the config")
}

// addOutputFlags adds output flags to a FlagSet.
func addOutputFlags(fs *flag.FlagSet, f *outputFlags) {
	fs.StringVarP(&f.dir, "output", "o", "", "output directory")
	fs.BoolVar(&f.dataURI, "data-uri", false, "print data:application/pdf URIs instead of writing files")
	fs.BoolVar(&f.download, "download", false, "save through a headless browser download")
}

// parseRenderFlags parses render command flags and returns positional args.
func parseRenderFlags(args []string, stderr io.Writer) (*renderFlags, []string, error) {
	fs := flag.NewFlagSet("render", flag.ContinueOnError)
	fs.SetOutput(stderr)
	f := &renderFlags{}

	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel renders (0 = auto)")
	fs.StringVar(&f.fontTimeout, "font-timeout", "", "font download timeout (e.g. 30s, 2m)")

	addCommonFlags(fs, &f.common)
	addDocumentFlags(fs, &f.document)
	addBrandingFlags(fs, &f.branding)
	addWatermarkFlags(fs, &f.watermark)
	addOutputFlags(fs, &f.output)

	fs.Usage = func() { printRenderUsage(stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parseListFlags parses the flags of the listing commands, which only read
// the configuration.
func parseListFlags(name string, args []string, stderr io.Writer) (*commonFlags, []string, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	f := &commonFlags{}
	addCommonFlags(fs, f)
	fs.Usage = func() { printCommandUsage(stderr, name) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}
