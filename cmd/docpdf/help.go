package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: docpdf <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  render       Render invoice or NDA JSON files to PDF")
	fmt.Fprintln(w, "  themes       List available themes")
	fmt.Fprintln(w, "  templates    List templates and document types")
	fmt.Fprintln(w, "  fonts        Show the fonts used for a locale")
	fmt.Fprintln(w, "  version      Show version information")
	fmt.Fprintln(w, "  help         Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'docpdf help <command>' for details on a specific command.")
}

// printRenderUsage prints usage for the render command.
func printRenderUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: docpdf render <input>... [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render JSON documents to PDF.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    JSON file, directory of .json files, or - for stdin")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output:")
	fmt.Fprintln(w, "  -o, --output <dir>        Output directory (default: next to each input)")
	fmt.Fprintln(w, "      --data-uri            Print data:application/pdf URIs to stdout")
	fmt.Fprintln(w, "      --download            Save through a headless browser download")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel renders (0 = auto)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Document:")
	fmt.Fprintln(w, "  -l, --locale <tag>        Locale, e.g. en-US, fr-FR, ar-SA, zh-TW")
	fmt.Fprintln(w, "  -t, --type <s>            Document type: invoice, nda")
	fmt.Fprintln(w, "      --template <s>        Template: modern, classic, minimal")
	fmt.Fprintln(w, "      --theme <s>           Theme name (see 'docpdf themes')")
	fmt.Fprintln(w, "  -p, --page-size <s>       Page size: a4, letter, legal")
	fmt.Fprintln(w, "      --direction <s>       Text direction: ltr, rtl")
	fmt.Fprintln(w, "      --date-format <s>     Tokens: YYYY, YY, MMMM, MMM, MM, M, DD, D")
	fmt.Fprintln(w, "                            Presets: iso, european, us, long")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Branding:")
	fmt.Fprintln(w, "      --accent <hex>        Accent color (#rgb or #rrggbb)")
	fmt.Fprintln(w, "      --logo <ref>          Logo path, URL or data URI (PNG, JPEG, GIF)")
	fmt.Fprintln(w, "      --website <url>       Website shown in the footer")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Watermark:")
	fmt.Fprintln(w, "      --watermark           Draw a diagonal watermark")
	fmt.Fprintln(w, "      --watermark-text <s>  Watermark text")
	fmt.Fprintln(w, "      --no-watermark        Disable the configured watermark")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Fonts:")
	fmt.Fprintln(w, "      --font-timeout <d>    Font download timeout (e.g. 30s, 2m)")
	fmt.Fprintln(w)
	printCommonUsage(w)
}

func printCommonUsage(w io.Writer) {
	fmt.Fprintln(w, "Common:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Log at debug level")
	fmt.Fprintln(w, "      --log-level <s>       debug, info, warn, error")
	fmt.Fprintln(w, "      --log-format <s>      console, json")
}

// printCommandUsage prints usage for the commands other than render.
func printCommandUsage(w io.Writer, name string) {
	switch name {
	case "render":
		printRenderUsage(w)
		return
	case "themes":
		fmt.Fprintln(w, "Usage: docpdf themes [flags]")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "List built-in themes and the custom themes of the config.")
	case "templates":
		fmt.Fprintln(w, "Usage: docpdf templates")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "List templates and supported document types.")
	case "fonts":
		fmt.Fprintln(w, "Usage: docpdf fonts <locale> [flags]")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Show the font bundle and sources used for a locale.")
	case "version":
		fmt.Fprintln(w, "Usage: docpdf version")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Show version information.")
		return
	case "help":
		fmt.Fprintln(w, "Usage: docpdf help [command]")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Show help for a command.")
		return
	}
	fmt.Fprintln(w)
	printCommonUsage(w)
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) error {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return nil
	}

	switch args[0] {
	case "render", "themes", "templates", "fonts", "version", "help":
		printCommandUsage(env.Stdout, args[0])
		return nil
	}
	printUsage(env.Stderr)
	return fmt.Errorf("%w: unknown command %q", ErrUsage, args[0])
}
