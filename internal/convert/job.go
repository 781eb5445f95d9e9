package convert

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/bartekus/dfmreport/internal/batch"
)

// Job converts one model file as part of a batch run.
type Job struct {
	App     *Application
	Source  string
	Process string
	Target  string
}

// ID returns the source path.
func (j *Job) ID() string {
	return j.Source
}

// Run converts the model and reports the outcome with the conversion's
// return code.
func (j *Job) Run(ctx context.Context) batch.Result {
	res, err := j.App.Run(ctx, j.Source, j.Process, j.Target)
	if err != nil {
		return batch.Result{
			Job:      j.Source,
			Status:   batch.StatusFail,
			ExitCode: ExitCode(err),
			Note:     err.Error(),
		}
	}
	return batch.Result{
		Job:    j.Source,
		Status: batch.StatusPass,
		Note:   res.ReportPath,
	}
}

// Jobs builds one job per source, each exporting into its own folder under
// targetRoot named after the source path relative to base.
func Jobs(app *Application, sources []string, processName, targetRoot, base string) []batch.Job {
	jobs := make([]batch.Job, 0, len(sources))
	for _, src := range sources {
		rel := src
		if r, err := filepath.Rel(base, src); err == nil && !strings.HasPrefix(r, "..") {
			rel = r
		}
		jobs = append(jobs, &Job{
			App:     app,
			Source:  src,
			Process: processName,
			Target:  TargetFor(targetRoot, rel),
		})
	}
	return jobs
}
