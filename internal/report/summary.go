// SPDX-License-Identifier: AGPL-3.0-or-later
package report

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bartekus/dfmreport/internal/feature"
	"github.com/bartekus/dfmreport/internal/process"
	"github.com/bartekus/dfmreport/internal/projection"
)

// StatusAnalyzed is the summary status of a part that produced results.
const StatusAnalyzed = "analyzed"

// Summary is the one-line outcome of a part record.
type Summary struct {
	PartID   string `json:"part_id"`
	Name     string `json:"name"`
	Process  string `json:"process"`
	Status   string `json:"status"`
	Features int    `json:"features"`
	Issues   int    `json:"issues"`
}

// Summaries returns one row per part record in report order. Status is
// StatusAnalyzed or the error written to the JSON report.
func (r *Report) Summaries() []Summary {
	out := make([]Summary, 0, len(r.data))
	for _, d := range r.data {
		p := d.Part()
		s := Summary{PartID: p.ID, Name: p.DisplayName(), Status: StatusAnalyzed}
		s.Process, _ = processName(d)
		if msg := partError(d); msg != "" {
			s.Status = msg
			out = append(out, s)
			continue
		}
		switch data := d.(type) {
		case *process.MachiningData:
			s.Features = len(feature.Flatten(data.Features))
			s.Issues = len(feature.Flatten(data.Issues))
		case *process.SheetMetalData:
			s.Features = len(feature.Flatten(data.Features))
			s.Issues = len(feature.Flatten(data.Issues)) + len(feature.Flatten(data.Unfolded.Issues))
		}
		out = append(out, s)
	}
	return out
}

// RenderSummary renders the part summaries of a model as Markdown.
func RenderSummary(modelName string, rows []Summary) string {
	var b strings.Builder
	b.WriteString(projection.RenderHeader(1, fmt.Sprintf("Process summary: %s", modelName)))
	if len(rows) == 0 {
		b.WriteString(msgNoParts + "\n")
		return b.String()
	}

	table := make([][]string, 0, len(rows))
	analyzed := 0
	for _, s := range rows {
		if s.Status == StatusAnalyzed {
			analyzed++
		}
		table = append(table, []string{
			s.PartID,
			projection.EscapeCell(s.Name),
			s.Process,
			projection.EscapeCell(s.Status),
			strconv.Itoa(s.Features),
			strconv.Itoa(s.Issues),
		})
	}
	b.WriteString(projection.RenderTable([]string{"Part", "Name", "Process", "Status", "Features", "Issues"}, table))
	b.WriteString("\n")
	b.WriteString(projection.RenderList([]string{
		fmt.Sprintf("Records: %d", len(rows)),
		fmt.Sprintf("Analyzed: %d", analyzed),
	}))
	return b.String()
}

// WriteSummary renders the part summaries of the report to path atomically.
func (r *Report) WriteSummary(path, modelName string) error {
	if err := projection.AtomicWrite(path, []byte(RenderSummary(modelName, r.Summaries()))); err != nil {
		return fmt.Errorf("failed to write summary %s: %w", path, err)
	}
	return nil
}
