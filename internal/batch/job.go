package batch

import "context"

// Job is a unit of work run by the Runner.
type Job interface {
	// ID returns the unique identifier (e.g. the model path).
	ID() string

	// Run executes the job.
	Run(ctx context.Context) Result
}
