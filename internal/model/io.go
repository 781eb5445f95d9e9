// SPDX-License-Identifier: AGPL-3.0-or-later
package model

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/bartekus/dfmreport/internal/feature"
	"github.com/bartekus/dfmreport/internal/projection"
)

// ErrUnexpectedFormat is returned when a document cannot be decoded as a
// model.
var ErrUnexpectedFormat = errors.New("unexpected model format")

// Decode reads a YAML or JSON model document. Unknown fields and unknown
// feature kinds are rejected.
func Decode(r io.Reader) (*Model, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var m Model
	if err := dec.Decode(&m); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", ErrUnexpectedFormat)
		}
		return nil, fmt.Errorf("%w: %v", ErrUnexpectedFormat, err)
	}
	for i, p := range m.Parts {
		if p == nil {
			return nil, fmt.Errorf("%w: part %d is empty", ErrUnexpectedFormat, i)
		}
		if err := checkPart(p); err != nil {
			return nil, fmt.Errorf("%w: part %d: %v", ErrUnexpectedFormat, i, err)
		}
	}
	return &m, nil
}

// checkPart rejects null entries in the feature and issue lists of p.
func checkPart(p *Part) error {
	for _, a := range p.Analyses {
		if a == nil {
			continue
		}
		type list struct {
			name     string
			features []*feature.Feature
		}
		var lists []list
		if mc := a.Machining; mc != nil {
			lists = append(lists,
				list{"features", mc.Features},
				list{"drilling_issues", mc.DrillingIssues},
				list{"milling_issues", mc.MillingIssues},
				list{"turning_issues", mc.TurningIssues})
		}
		if sm := a.SheetMetal; sm != nil {
			lists = append(lists,
				list{"features", sm.Features},
				list{"issues", sm.Issues})
		}
		for _, l := range lists {
			if err := checkFeatures(l.features); err != nil {
				return fmt.Errorf("shape %d %s: %w", a.Shape, l.name, err)
			}
		}
	}
	return nil
}

func checkFeatures(fs []*feature.Feature) error {
	for i, f := range fs {
		if f == nil {
			return fmt.Errorf("entry %d is empty", i)
		}
		if err := checkFeatures(f.Children); err != nil {
			return fmt.Errorf("%s child: %w", f.Kind, err)
		}
	}
	return nil
}

// Load decodes the model stored at path. A model without a name is named
// after the file.
func Load(path string) (*Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open model: %w", err)
	}
	defer f.Close()

	m, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if m.Name == "" {
		base := filepath.Base(path)
		m.Name = base[:len(base)-len(filepath.Ext(base))]
	}
	return m, nil
}

// Encode writes m as YAML.
func Encode(w io.Writer, m *Model) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(m); err != nil {
		return fmt.Errorf("failed to encode model: %w", err)
	}
	return enc.Close()
}

// Save writes m as YAML to path, replacing any previous file atomically.
func Save(path string, m *Model) error {
	return projection.AtomicWriteFunc(path, func(w io.Writer) error {
		return Encode(w, m)
	})
}
