package main

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	docpdf "github.com/alnah/go-docpdf"
	"github.com/alnah/go-docpdf/internal/fileutil"
	"github.com/alnah/go-docpdf/internal/hints"
)

// Sentinel errors for render operations.
var (
	ErrNoInput            = errors.New("no input specified")
	ErrReadInput          = errors.New("failed to read input")
	ErrWriteOutput        = errors.New("failed to write output")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
	ErrConflictingOutput  = errors.New("--data-uri and --download cannot be combined")
)

// filePermissions is rw-r--r--: rendered PDFs are meant to be shared.
const filePermissions = 0o644

// stdinName names the job read from standard input.
const stdinName = "-"

// outcome is the delivery state of one input.
type outcome struct {
	input  string
	output string // file path, empty for --data-uri
	pages  int
	err    error
}

// runRender renders every input and delivers the PDFs as files, data URIs
// or browser downloads. A failing input does not stop the others.
func runRender(ctx context.Context, args []string, env *Environment) error {
	f, inputs, err := parseRenderFlags(args, env.Stderr)
	if err != nil {
		return usageError(err)
	}
	if f.workers < 0 {
		return fmt.Errorf("%w: %d (must be 0 or more)", ErrInvalidWorkerCount, f.workers)
	}
	if f.output.dataURI && f.output.download {
		return ErrConflictingOutput
	}
	if len(inputs) == 0 {
		return ErrNoInput
	}

	cfg, err := loadConfig(f.common.config)
	if err != nil {
		return err
	}
	mergeFlags(f, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := newLogger(f.common, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	r, err := newRenderer(cfg, logger, env)
	if err != nil {
		return err
	}

	jobs, err := readJobs(inputs, renderOptions(cfg), env.Stdin)
	if err != nil {
		return err
	}

	results := r.RenderBatch(ctx, jobs, cfg.Workers)
	dir := cfg.Output.Dir

	var outcomes []outcome
	switch {
	case f.output.dataURI:
		outcomes = printDataURIs(results, env.Stdout)
	case f.output.download:
		outcomes = downloadResults(ctx, r, results, dir)
	default:
		outcomes = writeResults(results, dir)
	}

	return report(outcomes, f.common, !f.output.dataURI, env)
}

// readJobs reads every input. Directories contribute their .json files;
// "-" reads standard input once.
func readJobs(inputs []string, opts docpdf.RenderOptions, stdin io.Reader) ([]docpdf.Job, error) {
	var jobs []docpdf.Job
	readStdin := false
	for _, in := range inputs {
		if in == stdinName {
			if readStdin {
				continue
			}
			readStdin = true
			raw, err := io.ReadAll(stdin)
			if err != nil {
				return nil, fmt.Errorf("%w: stdin: %v", ErrReadInput, err)
			}
			jobs = append(jobs, docpdf.Job{Name: stdinName, Raw: raw, Options: opts})
			continue
		}

		paths, err := expandInput(in)
		if err != nil {
			return nil, err
		}
		for _, p := range paths {
			raw, err := os.ReadFile(p) // #nosec G304 -- user-provided path
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrReadInput, err)
			}
			jobs = append(jobs, docpdf.Job{Name: p, Raw: raw, Options: opts})
		}
	}
	if len(jobs) == 0 {
		return nil, fmt.Errorf("%w: no .json files in %s", ErrNoInput, strings.Join(inputs, ", "))
	}
	return jobs, nil
}

// expandInput returns path itself, or the .json files of a directory in
// name order. Subdirectories are not visited.
func expandInput(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadInput, err)
	}
	if !info.IsDir() {
		return []string{path}, nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadInput, err)
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".json") {
			continue
		}
		paths = append(paths, filepath.Join(path, e.Name()))
	}
	return paths, nil
}

// outputPath places the PDF for a job: next to the input, or in dir when
// set. Standard input uses the document's suggested file name.
func outputPath(job docpdf.Job, res *docpdf.Result, dir string) string {
	if job.Name == stdinName {
		return filepath.Join(cmp.Or(dir, "."), res.Filename())
	}
	return fileutil.ReplaceExt(job.Name, dir, ".pdf")
}

func writeResults(results []docpdf.BatchResult, dir string) []outcome {
	out := make([]outcome, len(results))
	for i, br := range results {
		out[i] = outcome{input: br.Job.Name, err: br.Err}
		if br.Err != nil {
			continue
		}
		path := outputPath(br.Job, br.Result, dir)
		if err := fileutil.WriteFileAtomic(path, br.Result.Bytes(), filePermissions); err != nil {
			out[i].err = fmt.Errorf("%w: %v%s", ErrWriteOutput, err, hints.ForOutputDirectory())
			continue
		}
		out[i].output = path
		out[i].pages = br.Result.Pages()
	}
	return out
}

func printDataURIs(results []docpdf.BatchResult, w io.Writer) []outcome {
	out := make([]outcome, len(results))
	for i, br := range results {
		out[i] = outcome{input: br.Job.Name, err: br.Err}
		if br.Err != nil {
			continue
		}
		if _, err := fmt.Fprintln(w, br.Result.DataURI()); err != nil {
			out[i].err = fmt.Errorf("%w: %v", ErrWriteOutput, err)
			continue
		}
		out[i].pages = br.Result.Pages()
	}
	return out
}

// downloadResults saves each rendered document through one shared browser.
// Once the browser is known to be missing the remaining documents fail
// with the same error.
func downloadResults(ctx context.Context, r *docpdf.Renderer, results []docpdf.BatchResult, dir string) []outcome {
	d := r.NewDownloader()
	defer func() { _ = d.Close() }()

	out := make([]outcome, len(results))
	var envErr error
	for i, br := range results {
		out[i] = outcome{input: br.Job.Name, err: br.Err}
		if br.Err != nil {
			continue
		}
		if envErr != nil {
			out[i].err = envErr
			continue
		}
		target := outputPath(br.Job, br.Result, dir)
		path, err := d.Download(ctx, br.Result, docpdf.DownloadOptions{
			Filename: filepath.Base(target),
			Dir:      filepath.Dir(target),
		})
		if err != nil {
			if docpdf.KindOf(err) == docpdf.KindEnvironment {
				envErr = err
			}
			out[i].err = err
			continue
		}
		out[i].output = path
		out[i].pages = br.Result.Pages()
	}
	return out
}

// report prints one line per input and a summary for batches. It returns
// the first failure, counted, so the exit code follows its kind.
func report(outcomes []outcome, f commonFlags, printCreated bool, env *Environment) error {
	var failed []outcome
	for _, o := range outcomes {
		if o.err != nil {
			failed = append(failed, o)
			fmt.Fprintf(env.Stderr, "FAILED %s: %v%s\n", o.input, o.err, hintFor(o.err))
			continue
		}
		if f.quiet || !printCreated {
			continue
		}
		if f.verbose {
			fmt.Fprintf(env.Stdout, "%s -> %s (%d pages)\n", o.input, o.output, o.pages)
		} else {
			fmt.Fprintf(env.Stdout, "Created %s\n", o.output)
		}
	}

	if !f.quiet && len(outcomes) > 1 {
		fmt.Fprintf(env.Stderr, "\n%d succeeded, %d failed\n", len(outcomes)-len(failed), len(failed))
	}
	if len(failed) == 0 {
		return nil
	}
	return fmt.Errorf("%d of %d document(s) failed: %w", len(failed), len(outcomes), failed[0].err)
}

// hintFor suggests a fix for render failures the user can act on.
func hintFor(err error) string {
	switch docpdf.KindOf(err) {
	case docpdf.KindUnsupportedDocumentType:
		return hints.ForUnsupportedType(docpdf.DocumentTypes())
	case docpdf.KindFontLoad:
		if errors.Is(err, context.DeadlineExceeded) {
			return hints.ForTimeout()
		}
	}
	return ""
}
