package batch

import "time"

// Status is the outcome of a job.
type Status string

const (
	StatusPass Status = "pass"
	StatusFail Status = "fail"
	StatusSkip Status = "skip"
)

// Result is the outcome of a single job, stored as <state-dir>/jobs/<job>.json.
type Result struct {
	Job      string        `json:"job"`
	Status   Status        `json:"status"`
	ExitCode int           `json:"exit_code"`
	Note     string        `json:"note,omitempty"`
	Elapsed  time.Duration `json:"elapsed_ns,omitempty"`
}

// LastRun is the summary of the last execution, stored as
// <state-dir>/last-run.json. Jobs keeps the run order.
type LastRun struct {
	Status string   `json:"status"`
	Jobs   []string `json:"jobs"`
	Failed []string `json:"failed"`
}

// Passed reports whether no job of the run failed.
func (l *LastRun) Passed() bool {
	return l != nil && len(l.Failed) == 0
}
