package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	flag "github.com/spf13/pflag"
)

// ErrUsage marks command line mistakes.
var ErrUsage = errors.New("invalid usage")

// runMain dispatches args[1] and returns the process exit code.
func runMain(args []string, env *Environment) int {
	if len(args) < 2 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	ctx, stop := notifyContext(context.Background())
	defer stop()

	cmd, rest := args[1], args[2:]
	var err error
	switch cmd {
	case "render":
		err = runRender(ctx, rest, env)
	case "themes":
		err = runThemes(rest, env)
	case "templates":
		err = runTemplates(rest, env)
	case "fonts":
		err = runFonts(rest, env)
	case "version", "--version":
		fmt.Fprintf(env.Stdout, "docpdf %s\n", Version)
	case "help", "-h", "--help":
		err = runHelp(rest, env)
	default:
		if strings.HasSuffix(strings.ToLower(cmd), ".json") || cmd == "-" {
			// "docpdf invoice.json" is shorthand for "docpdf render invoice.json".
			err = runRender(ctx, args[1:], env)
			break
		}
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", cmd)
		printUsage(env.Stderr)
		return ExitUsage
	}

	if err == nil || errors.Is(err, flag.ErrHelp) {
		return ExitSuccess
	}
	fmt.Fprintln(env.Stderr, "error:", err)
	return exitCodeFor(err)
}

// usageError wraps a flag parsing error so it maps to ExitUsage.
func usageError(err error) error {
	if err == nil || errors.Is(err, flag.ErrHelp) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrUsage, err)
}
