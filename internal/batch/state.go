package batch

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bartekus/dfmreport/internal/projection"
)

// StateStore handles reading and writing run state.
type StateStore struct {
	baseDir string
}

// NewStateStore creates a store at the given base directory (e.g. .dfmreport/run).
func NewStateStore(baseDir string) *StateStore {
	return &StateStore{baseDir: baseDir}
}

// Dir returns the base directory.
func (s *StateStore) Dir() string {
	return s.baseDir
}

func (s *StateStore) lastRunPath() string {
	return filepath.Join(s.baseDir, "last-run.json")
}

// jobPath flattens a job id into a single file name under jobs/.
func (s *StateStore) jobPath(id string) string {
	name := strings.NewReplacer("/", "__", `\`, "__", "..", "_").Replace(id)
	return filepath.Join(s.baseDir, "jobs", name+".json")
}

// ReadLastRun loads the last execution summary. It returns nil when no run
// was recorded.
func (s *StateStore) ReadLastRun() (*LastRun, error) {
	var last LastRun
	found, err := readJSON(s.lastRunPath(), &last)
	if err != nil || !found {
		return nil, err
	}
	return &last, nil
}

// ReadJob loads the recorded result of a job, or nil.
func (s *StateStore) ReadJob(id string) (*Result, error) {
	var res Result
	found, err := readJSON(s.jobPath(id), &res)
	if err != nil || !found {
		return nil, err
	}
	return &res, nil
}

// WriteLastRun saves the execution summary.
func (s *StateStore) WriteLastRun(last LastRun) error {
	return writeJSON(s.lastRunPath(), last)
}

// WriteJobResult saves a job's result.
func (s *StateStore) WriteJobResult(res Result) error {
	return writeJSON(s.jobPath(res.Job), res)
}

// Reset clears the state directory.
func (s *StateStore) Reset() error {
	return os.RemoveAll(s.baseDir)
}

// LoadFailedJobs returns the jobs that failed in the last run.
func (s *StateStore) LoadFailedJobs() ([]string, error) {
	last, err := s.ReadLastRun()
	if err != nil {
		return nil, err
	}
	if last == nil {
		return nil, nil
	}
	return last.Failed, nil
}

// StatusCounts tallies the recorded results of the last run by status.
func (s *StateStore) StatusCounts() (map[string]int, error) {
	last, err := s.ReadLastRun()
	if err != nil || last == nil {
		return nil, err
	}
	counts := make(map[string]int)
	for _, id := range last.Jobs {
		res, err := s.ReadJob(id)
		if err != nil {
			return nil, err
		}
		if res == nil {
			counts["missing"]++
			continue
		}
		counts[string(res.Status)]++
	}
	return counts, nil
}

// RenderLastRun renders the last run as Markdown, one row per job.
func (s *StateStore) RenderLastRun() (string, error) {
	last, err := s.ReadLastRun()
	if err != nil {
		return "", err
	}
	if last == nil {
		return "No run state found.\n", nil
	}

	rows := make([][]string, 0, len(last.Jobs))
	for _, id := range last.Jobs {
		res, err := s.ReadJob(id)
		if err != nil {
			return "", err
		}
		if res == nil {
			rows = append(rows, []string{projection.EscapeCell(id), "missing", "", ""})
			continue
		}
		rows = append(rows, []string{
			projection.EscapeCell(id),
			string(res.Status),
			fmt.Sprint(res.ExitCode),
			projection.EscapeCell(res.Note),
		})
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i][0] < rows[j][0] })

	counts, err := s.StatusCounts()
	if err != nil {
		return "", err
	}
	var items []string
	for _, k := range projection.SortedKeys(counts) {
		items = append(items, fmt.Sprintf("%s: %d", k, counts[k]))
	}

	var b strings.Builder
	b.WriteString(projection.RenderHeader(1, "Last run: "+last.Status))
	b.WriteString(projection.RenderTable([]string{"Job", "Status", "Exit", "Note"}, rows))
	b.WriteString("\n")
	b.WriteString(projection.RenderList(items))
	return b.String(), nil
}

func readJSON(path string, v any) (bool, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("opening %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	if err := json.NewDecoder(f).Decode(v); err != nil {
		return false, fmt.Errorf("decoding %s: %w", path, err)
	}
	return true, nil
}

func writeJSON(path string, v any) error {
	return projection.AtomicWriteFunc(path, func(w io.Writer) error {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	})
}
