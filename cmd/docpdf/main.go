// Command docpdf renders invoice and NDA JSON documents to PDF.
package main

import (
	"fmt"
	"os"
	"slices"

	"go.uber.org/automaxprocs/maxprocs"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	// maxprocs.Set only fails on an invalid GOMAXPROCS, and the runtime
	// default then applies.
	verbose := slices.Contains(os.Args, "--verbose") || slices.Contains(os.Args, "-v")
	_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...any) {
		if verbose {
			fmt.Fprintf(os.Stderr, format+"\n", args...)
		}
	}))

	os.Exit(runMain(os.Args, DefaultEnv()))
}
