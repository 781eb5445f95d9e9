// SPDX-License-Identifier: AGPL-3.0-or-later

// Package batch runs conversion jobs sequentially and keeps their outcome on
// disk so that failed jobs can be resumed.
package batch

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Runner manages the execution of jobs.
type Runner struct {
	jobs     []Job
	store    *StateStore
	out      io.Writer
	logger   *zap.Logger
	parallel int
}

// NewRunner creates a runner over jobs. Progress lines go to out; logger may
// be nil.
func NewRunner(jobs []Job, store *StateStore, out io.Writer, logger *zap.Logger) *Runner {
	if out == nil {
		out = io.Discard
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{
		jobs:   jobs,
		store:  store,
		out:    out,
		logger: logger,
	}
}

// SetParallel sets how many jobs may run at once. Values below 2 run jobs
// one after another.
func (r *Runner) SetParallel(n int) {
	r.parallel = n
}

// RunAll executes all jobs in order.
// It continues after a failed job and returns an error if any job failed.
func (r *Runner) RunAll(ctx context.Context) error {
	return r.executeSequence(ctx, r.jobs)
}

// Resume reruns only the jobs that failed in the last run.
func (r *Runner) Resume(ctx context.Context) error {
	failed, err := r.store.LoadFailedJobs()
	if err != nil {
		return fmt.Errorf("loading failed jobs: %w", err)
	}
	if len(failed) == 0 {
		fmt.Fprintln(r.out, "No failed jobs to resume.")
		return nil
	}

	var toRun []Job
	for _, id := range failed {
		if job := r.findJob(id); job != nil {
			toRun = append(toRun, job)
			continue
		}
		r.logger.Warn("failed job no longer available", zap.String("job", id))
	}
	return r.executeSequence(ctx, toRun)
}

// RunList executes the jobs with the given ids in the given order.
func (r *Runner) RunList(ctx context.Context, ids []string) error {
	var toRun []Job
	for _, id := range ids {
		job := r.findJob(id)
		if job == nil {
			return fmt.Errorf("job not found: %s", id)
		}
		toRun = append(toRun, job)
	}
	return r.executeSequence(ctx, toRun)
}

func (r *Runner) findJob(id string) Job {
	for _, j := range r.jobs {
		if j.ID() == id {
			return j
		}
	}
	return nil
}

// executeSequence runs jobs and records every result plus the run summary.
// A cancelled context stops the run before the next job starts.
func (r *Runner) executeSequence(ctx context.Context, jobs []Job) error {
	if r.parallel > 1 {
		return r.executeParallel(ctx, jobs)
	}

	results := make([]Result, 0, len(jobs))
	for _, job := range jobs {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("run interrupted: %w", err)
		}
		r.printHeader(job.ID())
		res := r.run(ctx, job)
		if err := r.record(res); err != nil {
			return err
		}
		results = append(results, res)
	}
	return r.finish(results)
}

// executeParallel runs up to r.parallel jobs at once. Progress is printed
// once all jobs are done, in job order.
func (r *Runner) executeParallel(ctx context.Context, jobs []Job) error {
	results := make([]Result, len(jobs))

	var g errgroup.Group
	g.SetLimit(r.parallel)
	for i, job := range jobs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = r.run(ctx, job)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("run interrupted: %w", err)
	}

	for _, res := range results {
		r.printHeader(res.Job)
		if err := r.record(res); err != nil {
			return err
		}
	}
	return r.finish(results)
}

func (r *Runner) run(ctx context.Context, job Job) Result {
	id := job.ID()
	start := time.Now()
	res := job.Run(ctx)
	if res.Job == "" {
		res.Job = id
	}
	res.Elapsed = time.Since(start)
	r.logger.Debug("job finished",
		zap.String("job", id),
		zap.String("status", string(res.Status)),
		zap.Duration("elapsed", res.Elapsed))
	return res
}

func (r *Runner) printHeader(id string) {
	fmt.Fprintf(r.out, "\n%s\nJOB: %s\n%s\n", rule, id, rule)
}

// record stores res and prints its outcome.
func (r *Runner) record(res Result) error {
	if err := r.store.WriteJobResult(res); err != nil {
		return fmt.Errorf("writing result for %s: %w", res.Job, err)
	}

	switch res.Status {
	case StatusSkip:
		fmt.Fprintf(r.out, "SKIP: %s\n", res.Job)
	case StatusPass:
		fmt.Fprintf(r.out, "PASS: %s\n", res.Job)
	default:
		fmt.Fprintf(r.out, "FAIL: %s (exit %d)\n", res.Job, res.ExitCode)
	}
	if res.Note != "" {
		fmt.Fprintln(r.out, res.Note)
	}
	return nil
}

// finish writes the run summary and reports failed jobs as an error.
func (r *Runner) finish(results []Result) error {
	last := LastRun{Status: string(StatusPass), Jobs: []string{}, Failed: []string{}}
	for _, res := range results {
		last.Jobs = append(last.Jobs, res.Job)
		if res.Status != StatusPass && res.Status != StatusSkip {
			last.Failed = append(last.Failed, res.Job)
		}
	}
	if !last.Passed() {
		last.Status = string(StatusFail)
	}
	if err := r.store.WriteLastRun(last); err != nil {
		return fmt.Errorf("writing last run: %w", err)
	}

	if !last.Passed() {
		return fmt.Errorf("run failed: %s", strings.Join(last.Failed, ", "))
	}
	return nil
}

var rule = strings.Repeat("━", 40)
