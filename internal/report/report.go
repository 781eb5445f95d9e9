// SPDX-License-Identifier: AGPL-3.0-or-later

// Package report assembles per-part process records into the JSON process
// report and the console summaries.
package report

import (
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/bartekus/dfmreport/internal/classify"
	"github.com/bartekus/dfmreport/internal/feature"
	"github.com/bartekus/dfmreport/internal/group"
	"github.com/bartekus/dfmreport/internal/jsonwriter"
	"github.com/bartekus/dfmreport/internal/process"
	"github.com/bartekus/dfmreport/internal/projection"
	"github.com/bartekus/dfmreport/internal/shape"
)

// Version is the report format version.
const Version = "1"

const (
	msgNoParts        = "The model doesn't contain any parts."
	msgGenericError   = "An error occurred while processing the part."
	msgNoMachiningRep = "The part can't be analyzed due to lack of: BRep representation or solids in BRep representation."
	msgNoWallRep      = "The part can't be analyzed due to lack of: BRep representation, solids in BRep representation or Poly representations."
	msgNoSheetRep     = "The part can't be analyzed due to lack of: BRep representation, solids and shells in BRep representation."
	msgNotSheetMetal  = "The part wasn't recognized as a sheet metal part."
	msgUnknownProcess = "Unrecognized process"

	msgNoFeatures         = "Part contains no features."
	msgNoIssues           = "Part contains no DFM improvement suggestions."
	msgNoUnfoldedIssues   = "Unfolded part contains no DFM improvement suggestions."
	msgUnfoldedNotCreated = "Unfolded part wasn't generated."
)

// Option configures a Report.
type Option func(*Report)

// WithComparator sets the comparator used to merge and order features.
func WithComparator(cmp feature.Comparator) Option {
	return func(r *Report) { r.cmp = cmp }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(r *Report) { r.logger = l }
}

// Report accumulates part records and renders them.
type Report struct {
	data   []process.Data
	cmp    feature.Comparator
	logger *zap.Logger
}

// New returns an empty report using feature.DefaultCompare unless another
// comparator is given.
func New(opts ...Option) *Report {
	r := &Report{cmp: feature.DefaultCompare, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = zap.NewNop()
	}
	return r
}

// AddData appends part records in report order.
func (r *Report) AddData(data ...process.Data) {
	r.data = append(r.data, data...)
}

// Len returns the number of part records.
func (r *Report) Len() int {
	return len(r.data)
}

// WriteJSON renders the process report to out.
func (r *Report) WriteJSON(out io.Writer) error {
	w := jsonwriter.New(out)
	w.OpenSection("")
	w.WriteData("version", Version)

	if len(r.data) == 0 {
		w.WriteData("error", msgNoParts)
	} else {
		w.OpenArraySection("parts")
		for _, d := range r.data {
			w.OpenSection("")
			r.writePart(w, d)
			w.CloseSection()
		}
		w.CloseArraySection()
	}
	w.CloseSection()

	if err := w.Err(); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

// WriteFile renders the process report to path atomically.
func (r *Report) WriteFile(path string) error {
	if err := projection.AtomicWriteFunc(path, r.WriteJSON); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

func (r *Report) writePart(w *jsonwriter.Writer, d process.Data) {
	w.WriteData("partId", d.Part().ID)

	name, ok := processName(d)
	if !ok {
		w.WriteData("error", msgUnknownProcess)
		return
	}
	w.WriteData("process", name)

	if msg := partError(d); msg != "" {
		w.WriteData("error", msg)
		return
	}
	switch data := d.(type) {
	case *process.MachiningData:
		b := data.Part().BRep
		r.writeFeatures(w, "featureRecognition", "Feature Recognition", data.Features, b, "")
		r.writeFeatures(w, "dfm", "Design for Manufacturing", data.Issues, b, msgNoIssues)
	case *process.WallThicknessData:
		writeThicknessNode(w, "minThickness", "Minimum Thickness", data.Min, data.MinPoints)
		writeThicknessNode(w, "maxThickness", "Maximum Thickness", data.Max, data.MaxPoints)
	case *process.SheetMetalData:
		b := data.Part().BRep
		r.writeFeatures(w, "featureRecognition", "Feature Recognition", data.Features, b, msgNoFeatures)
		r.writeFeatures(w, "dfm", "Design for Manufacturing", data.Issues, b, msgNoIssues)
		writeUnfolded(w, &data.Unfolded)
		if data.Unfolded.Init {
			r.writeFeatures(w, "dfmUnfolded", "Design for Manufacturing", data.Unfolded.Issues, data.Unfolded.BRep, msgNoUnfoldedIssues)
		}
	}
}

// processName returns the report label of the record's process.
func processName(d process.Data) (string, bool) {
	switch data := d.(type) {
	case *process.MachiningData:
		return data.Operation.ProcessName(), true
	case *process.WallThicknessData:
		return "Wall Thickness Analysis", true
	case *process.SheetMetalData:
		return "Sheet Metal", true
	default:
		return "", false
	}
}

// partError explains why a record carries no results. It is empty for
// records that were analysed.
func partError(d process.Data) string {
	p := d.Part()
	switch data := d.(type) {
	case *process.MachiningData:
		switch {
		case data.Analyzed:
			return ""
		case !p.BRep.HasShapes(shape.TypeSolid):
			return msgNoMachiningRep
		}
	case *process.WallThicknessData:
		switch {
		case data.Init:
			return ""
		case !p.BRep.HasShapes(shape.TypeSolid) && !p.HasMeshes():
			return msgNoWallRep
		}
	case *process.SheetMetalData:
		switch {
		case data.IsSheetMetalPart:
			return ""
		case !p.BRep.HasShapes(shape.TypeSolid) && !p.BRep.HasShapes(shape.TypeShell):
			return msgNoSheetRep
		default:
			return msgNotSheetMetal
		}
	default:
		return msgUnknownProcess
	}
	return msgGenericError
}

func writeThicknessNode(w *jsonwriter.Writer, section, name string, value float64, pts [2]shape.Vec3) {
	w.OpenSection(section)
	w.WriteData("name", name)
	w.WriteData("units", "mm")
	w.WriteData("value", value)
	w.WriteData("firstPoint", point(pts[0]))
	w.WriteData("secondPoint", point(pts[1]))
	w.CloseSection()
}

func point(v shape.Vec3) classify.Point {
	return classify.Point{X: v.X(), Y: v.Y(), Z: v.Z()}
}

func writeUnfolded(w *jsonwriter.Writer, u *process.UnfoldedPartData) {
	w.OpenSection("featureRecognitionUnfolded")
	w.WriteData("name", "Feature Recognition")
	if u.Init {
		w.WriteRawData(unfoldedFragment([]classify.Param{
			{Name: "Length", Units: "mm", Value: u.Length},
			{Name: "Width", Units: "mm", Value: u.Width},
			{Name: "Thickness", Units: "mm", Value: u.Thickness},
			{Name: "Perimeter", Units: "mm", Value: u.Perimeter},
		}))
	} else {
		w.WriteData("message", msgUnfoldedNotCreated)
	}
	w.CloseSection()
}

// pending is one group contribution waiting to be handed to the group
// manager. Parameterless contributions of the same group share one entry.
type pending struct {
	label    classify.Label
	fragment string
	vecs     [][]uint64
	count    int
}

// writeFeatures writes a feature section: the merged, ordered features
// bucketed into display groups.
func (r *Report) writeFeatures(w *jsonwriter.Writer, section, name string, features []*feature.Feature, ids shape.IDMapper, emptyMsg string) {
	w.OpenSection(section)
	w.WriteData("name", name)

	leaves := feature.Flatten(features)
	if len(leaves) == 0 && emptyMsg != "" {
		w.WriteData("message", emptyMsg)
	}

	if ids == nil {
		ids = &shape.BRep{}
	}
	sorted := feature.NewOrderedList(r.cmp)
	for _, f := range leaves {
		d, ok := classify.Lookup(f.Kind)
		if !ok {
			r.logger.Debug("skipping unclassified feature", zap.Stringer("kind", f.Kind))
			continue
		}
		sorted.Append(f, d.ShapeIDs(f, ids))
	}

	var entries []*pending
	plain := make(map[string]*pending)
	for i := 0; i < sorted.Size(); i++ {
		f := sorted.Feature(i)
		d, _ := classify.Lookup(f.Kind)
		label := d.LabelFor(f)

		if d.HasParameters() {
			entries = append(entries, &pending{
				label:    label,
				fragment: paramFragment(d.Parameters(f), sorted.ShapeIDs(i)),
				count:    sorted.Count(i),
			})
			continue
		}
		e, ok := plain[label.Name]
		if !ok {
			e = &pending{label: label}
			plain[label.Name] = e
			entries = append(entries, e)
		}
		e.vecs = append(e.vecs, sorted.ShapeIDs(i)...)
		e.count += sorted.Count(i)
	}

	m := group.NewManager(r.cmp)
	for _, e := range entries {
		frag := e.fragment
		if frag == "" {
			frag = plainFragment(e.vecs)
		}
		m.AddGroupData(e.label.Name, e.label.Color.String(), frag, e.count)
	}

	w.WriteData("totalFeatureCount", m.TotalFeatureCount())
	if m.Len() == 0 {
		w.WriteEmptyArray("featureGroups")
	} else {
		w.OpenArraySection("featureGroups")
		m.Write(w)
		w.CloseArraySection()
	}
	w.CloseSection()
}
