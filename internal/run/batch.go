package run

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Job is one input file with its workbook, Output may be empty
type Job struct {
	Input  string
	Output string
}

// JobResult is the outcome of a job in a batch
type JobResult struct {
	Job
	Outcome *Outcome
	Err     error
}

// Jobs derives a job per input, writing <name>.xlsx into dir. An empty dir
// writes next to the input.
func Jobs(inputs []string, dir string) []Job {
	jobs := make([]Job, len(inputs))
	for i, in := range inputs {
		base := strings.TrimSuffix(filepath.Base(in), filepath.Ext(in)) + ".xlsx"
		out := filepath.Join(filepath.Dir(in), base)
		if dir != "" {
			out = filepath.Join(dir, base)
		}
		jobs[i] = Job{Input: in, Output: out}
	}
	return jobs
}

// Batch runs jobs concurrently with at most limit runs at a time. A failed
// job does not stop the others; results keep the order of jobs and the
// error reports how many failed. Jobs sharing an output are rejected before
// any run starts.
func Batch(ctx context.Context, jobs []Job, limit int, opts ...Option) ([]JobResult, error) {
	if limit < 1 {
		return nil, fmt.Errorf("batch limit must be >= 1, got %d", limit)
	}
	if err := checkOutputs(jobs); err != nil {
		return nil, err
	}

	results := make([]JobResult, len(jobs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, job := range jobs {
		i, job := i, job
		results[i].Job = job
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				results[i].Err = err
				return nil
			}
			r, err := New(job.Input, job.Output, opts...)
			if err != nil {
				results[i].Err = err
				return nil
			}
			results[i].Outcome, results[i].Err = r.Execute(gctx)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}

	failed := 0
	for _, res := range results {
		if res.Err != nil {
			failed++
		}
	}
	if failed > 0 {
		return results, fmt.Errorf("%d of %d runs failed", failed, len(jobs))
	}
	return results, nil
}

// checkOutputs fails if two jobs write the same workbook
func checkOutputs(jobs []Job) error {
	seen := make(map[string]string, len(jobs))
	for _, job := range jobs {
		if job.Output == "" {
			continue
		}
		key, err := filepath.Abs(job.Output)
		if err != nil {
			key = filepath.Clean(job.Output)
		}
		if prev, ok := seen[key]; ok {
			return fmt.Errorf("inputs %q and %q both write %q", prev, job.Input, job.Output)
		}
		seen[key] = job.Input
	}
	return nil
}

// LogSummary writes one log entry per job
func LogSummary(logger *zap.Logger, results []JobResult) {
	for _, res := range results {
		if res.Err != nil {
			logger.Warn("batch job failed", zap.String("input", res.Input), zap.Error(res.Err))
			continue
		}
		logger.Info("batch job finished",
			zap.String("input", res.Input),
			zap.String("run_id", res.Outcome.ID),
			zap.Float64s("frequencies", res.Outcome.Result.Frequencies),
		)
	}
}
