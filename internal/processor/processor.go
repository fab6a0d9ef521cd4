// Package processor resolves conversion targets and converts the resulting
// files concurrently, isolating failures per file.
package processor

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"runtime"
	"strings"
	"sync"

	"pmaconv/internal/metadata"
	"pmaconv/internal/pma"
	"pmaconv/pkg/imgutil"
)

// Processor converts files with a codec and reports through a Reporter.
// A Processor is meant for a single run: it remembers which output paths
// were already written to.
type Processor struct {
	codec    Codec
	reporter Reporter
	updates  chan<- ProgressUpdate
	claims   *outputClaims
}

// New returns a Processor. updates may be nil; otherwise it receives a
// progress delta for every finished file and must be drained by the caller.
func New(codec Codec, reporter Reporter, updates chan<- ProgressUpdate) *Processor {
	return &Processor{
		codec:    codec,
		reporter: reporter,
		updates:  updates,
		claims:   newOutputClaims(),
	}
}

// Run converts targets in the given order. Files already converted earlier in
// the run are not converted again. The returned error is non-nil only when
// ctx was cancelled; per-file and per-target failures are in the report.
func (p *Processor) Run(ctx context.Context, targets []string, opts Options) (BatchReport, error) {
	var report BatchReport
	seen := make(map[string]bool)

	for _, target := range targets {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		info, err := os.Stat(target)
		if err != nil {
			report.Results = append(report.Results, p.targetFailed(targetFailure(target, err)))
			continue
		}

		if !info.IsDir() {
			report.Merge(p.Process(ctx, unseen([]string{target}, seen), opts))
			continue
		}

		p.reporter.Info("Converting everything in the '%s'...", target)
		files, failures := Resolve([]string{target}, opts)
		rootFailed := false
		for _, f := range failures {
			report.Results = append(report.Results, p.targetFailed(f))
			if pathKey(f.Path) == pathKey(target) {
				rootFailed = true
			}
		}
		if rootFailed {
			continue
		}

		p.reporter.Info("Total %d files found.", len(files))
		report.Merge(p.Process(ctx, unseen(files, seen), opts))
		if ctx.Err() == nil {
			p.reporter.Success("Directory '%s' done!", target)
		}
	}

	if err := ctx.Err(); err != nil {
		return report, err
	}
	return report, nil
}

// Process converts files concurrently and returns once every dispatched file
// has finished. When ctx is cancelled no further files are dispatched; those
// files get no result.
func (p *Processor) Process(ctx context.Context, files []string, opts Options) BatchReport {
	var report BatchReport
	if len(files) == 0 {
		return report
	}
	p.progress(ProgressUpdate{TotalDelta: len(files)})

	jobs := make(chan Job)
	results := make(chan Result)

	workers := workerCount(opts.Workers, len(files))
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			p.worker(ctx, jobs, results, opts)
		}()
	}

	collectorDone := make(chan struct{})
	go func() {
		defer close(collectorDone)
		for res := range results {
			report.Results = append(report.Results, res)
			p.progress(progressFor(res.Outcome))
		}
	}()

	p.dispatch(ctx, files, opts, jobs)
	close(jobs)

	wg.Wait()
	close(results)
	<-collectorDone

	return report
}

// dispatch feeds files to the workers until all are sent or ctx is cancelled.
func (p *Processor) dispatch(ctx context.Context, files []string, opts Options, jobs chan<- Job) {
	for _, path := range files {
		job := Job{Path: path, Output: OutputPath(opts.OutputDir, path)}
		if prev, clash := p.claims.claim(job.Output, job.Path); clash {
			p.reporter.Warn("'%s' and '%s' are both written to '%s'; the last one to finish wins.", prev, job.Path, job.Output)
		}
		select {
		case jobs <- job:
		case <-ctx.Done():
			return
		}
	}
}

func (p *Processor) worker(ctx context.Context, jobs <-chan Job, results chan<- Result, opts Options) {
	for job := range jobs {
		if err := ctx.Err(); err != nil {
			return
		}
		results <- p.convert(job, opts)
	}
}

func (p *Processor) convert(job Job, opts Options) (res Result) {
	res = Result{Path: job.Path, Output: job.Output}

	if !matchesExtension(job.Path, opts.Extension) {
		res.Outcome = Skipped
		p.reporter.Warn("'%s' does not end with '%s', skipping.", job.Path, opts.Extension)
		return res
	}

	defer func() {
		if r := recover(); r != nil {
			res.Outcome = Failed
			res.Err = fmt.Errorf("conversion panicked: %v", r)
		}
		if res.Outcome == Failed {
			p.reporter.Error("%s: %v", job.Path, res.Err)
		}
	}()

	p.reporter.Info("Converting '%s'...", job.Path)
	img, err := p.load(job.Path, opts.Verbose)
	if err != nil {
		res.Outcome = Failed
		res.Err = err
		return res
	}

	pma.Transform(img, opts.Direction)

	p.reporter.Info("Writing to '%s'...", job.Output)
	if err := p.codec.Save(img, job.Output); err != nil {
		res.Outcome = Failed
		res.Err = err
		return res
	}

	res.Outcome = Converted
	p.reporter.Success("File '%s' done!", job.Path)
	return res
}

func (p *Processor) load(path string, verbose bool) (*image.NRGBA, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	kind, err := imgutil.SniffReader(file)
	if err != nil && !errors.Is(err, imgutil.ErrShortHeader) {
		return nil, err
	}

	if verbose && kind != imgutil.KindUnknown {
		findings, err := metadata.Inspect(file, kind)
		switch {
		case err != nil:
			p.reporter.Info("Could not inspect metadata of '%s': %v", path, err)
		case len(findings) > 0:
			p.reporter.Info("'%s' carries %s metadata that will not be copied.", path, strings.Join(findings, ", "))
		}
	}

	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}
	img, err := p.codec.Decode(file)
	if err != nil {
		if kind == imgutil.KindUnknown {
			return nil, fmt.Errorf("unrecognized image data: %w", err)
		}
		return nil, err
	}
	return img, nil
}

func (p *Processor) targetFailed(res Result) Result {
	if errors.Is(res.Err, ErrNotFound) {
		p.reporter.Error("'%s' does not exist.", res.Path)
	} else {
		p.reporter.Error("%s: %v", res.Path, res.Err)
	}
	p.progress(ProgressUpdate{TotalDelta: 1, FailedDelta: 1})
	return res
}

func (p *Processor) progress(u ProgressUpdate) {
	if p.updates != nil {
		p.updates <- u
	}
}

func progressFor(o Outcome) ProgressUpdate {
	switch o {
	case Converted:
		return ProgressUpdate{ConvertedDelta: 1}
	case Skipped:
		return ProgressUpdate{SkippedDelta: 1}
	default:
		return ProgressUpdate{FailedDelta: 1}
	}
}

func workerCount(requested, files int) int {
	n := requested
	if n <= 0 {
		n = runtime.NumCPU()
	}
	if n > files {
		n = files
	}
	return n
}

func unseen(files []string, seen map[string]bool) []string {
	out := files[:0:0]
	for _, f := range files {
		key := pathKey(f)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, f)
	}
	return out
}
