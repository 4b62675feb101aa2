package docpdf

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Worker pool sizing.
const (
	MinWorkers = 1
	MaxWorkers = 8
)

// ResolveWorkers returns workers when positive, otherwise GOMAXPROCS
// (container-aware when the binary imports automaxprocs) clamped to
// MinWorkers..MaxWorkers.
func ResolveWorkers(workers int) int {
	if workers > 0 {
		return workers
	}
	return min(max(runtime.GOMAXPROCS(0), MinWorkers), MaxWorkers)
}

// Job is one document of a batch.
type Job struct {
	Name    string // caller's label, typically the input path
	Raw     []byte
	Options RenderOptions
}

// BatchResult pairs a job with its outcome. Exactly one of Result and Err
// is set.
type BatchResult struct {
	Job    Job
	Result *Result
	Err    error
}

// RenderBatch renders jobs on at most workers goroutines. One failing job
// does not stop the others. Results are in job order. Jobs not started
// when ctx ends fail with the context error.
func (r *Renderer) RenderBatch(ctx context.Context, jobs []Job, workers int) []BatchResult {
	results := make([]BatchResult, len(jobs))
	var g errgroup.Group
	g.SetLimit(ResolveWorkers(workers))

	for i, job := range jobs {
		results[i].Job = job
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i].Err = err
				return nil
			}
			results[i].Result, results[i].Err = r.RenderJSON(ctx, job.Raw, job.Options)
			return nil
		})
	}
	_ = g.Wait()
	return results
}

// Failed returns the results that carry an error.
func Failed(results []BatchResult) []BatchResult {
	var out []BatchResult
	for _, res := range results {
		if res.Err != nil {
			out = append(out, res)
		}
	}
	return out
}
