// SPDX-License-Identifier: AGPL-3.0-or-later
package process

import (
	"github.com/bartekus/dfmreport/internal/feature"
	"github.com/bartekus/dfmreport/internal/model"
	"github.com/bartekus/dfmreport/internal/shape"
)

// Operation is the machining setup a part is analysed for.
type Operation int

const (
	OperationUndefined Operation = iota
	OperationMilling
	OperationLatheMilling
)

// ProcessName returns the report label of the operation.
func (o Operation) ProcessName() string {
	switch o {
	case OperationMilling:
		return "CNC Machining Milling"
	case OperationLatheMilling:
		return "CNC Machining Lathe+Milling"
	default:
		return "CNC Machining"
	}
}

// MachiningData is the record of one analysed solid.
type MachiningData struct {
	part      *model.Part
	Operation Operation
	// Analyzed is set when feature recognition found at least one feature.
	Analyzed bool
	Features []*feature.Feature
	Issues   []*feature.Feature
}

func (d *MachiningData) Part() *model.Part { return d.part }

// MachiningProcessor reports CNC machining features and DFM issues.
type MachiningProcessor struct {
	VoidProcessor
	operation Operation
}

// NewMachiningProcessor returns a processor for the given operation.
func NewMachiningProcessor(op Operation) *MachiningProcessor {
	return &MachiningProcessor{operation: op}
}

// ProcessSolid records the analysis of solid.
func (m *MachiningProcessor) ProcessSolid(p *model.Part, solid *shape.Shape) {
	d := &MachiningData{part: p, Operation: m.operation}
	m.add(d)

	a := p.AnalysisOf(solid.ID)
	if a == nil || a.Machining == nil || len(a.Machining.Features) == 0 {
		return
	}
	d.Analyzed = true
	d.Features = append(d.Features, a.Machining.Features...)
	d.Issues = MachiningIssues(a.Machining, m.operation)
}

// MachiningIssues combines the DFM issues of an analysis for op. Drilling
// and milling issues are always reported. Lathe+milling keeps only deep
// pocket milling issues and adds turning issues.
func MachiningIssues(a *model.MachiningAnalysis, op Operation) []*feature.Feature {
	if a == nil {
		return nil
	}
	var out []*feature.Feature
	out = append(out, a.DrillingIssues...)
	for _, issue := range a.MillingIssues {
		if op == OperationLatheMilling && issue.Kind != feature.KindDeepPocketIssue {
			continue
		}
		out = append(out, issue)
	}
	if op == OperationLatheMilling {
		out = append(out, a.TurningIssues...)
	}
	return out
}

// Empty returns an unanalysed record so the part is still reported.
func (m *MachiningProcessor) Empty(p *model.Part) Data {
	return &MachiningData{part: p, Operation: m.operation}
}
