// SPDX-License-Identifier: AGPL-3.0-or-later
package report

import (
	"strings"

	"github.com/bartekus/dfmreport/internal/classify"
	"github.com/bartekus/dfmreport/internal/jsonwriter"
)

// Nesting levels at which group fragments are rendered so that they line up
// once spliced into a part section.
const (
	paramFragmentLevel    = 7
	plainFragmentLevel    = 6
	unfoldedFragmentLevel = 4
)

func writeParameter(w *jsonwriter.Writer, p classify.Param) {
	w.OpenSection("")
	w.WriteData("name", p.Name)
	w.WriteData("units", p.Units)
	w.WriteData("value", p.Value)
	w.CloseSection()
}

// writeShapeIDs writes one entry per merged feature occurrence. Nothing is
// written when there are no occurrences.
func writeShapeIDs(w *jsonwriter.Writer, vecs [][]uint64) {
	if len(vecs) == 0 {
		return
	}
	w.WriteData("featureCount", len(vecs))
	w.OpenArraySection("features")
	for _, ids := range vecs {
		w.OpenSection("")
		w.WriteData("shapeIDCount", len(ids))
		if len(ids) == 0 {
			w.WriteEmptyArray("shapeIDs")
		} else {
			w.OpenArraySection("shapeIDs")
			for _, id := range ids {
				w.OpenSection("")
				w.WriteData("id", id)
				w.CloseSection()
			}
			w.CloseArraySection()
		}
		w.CloseSection()
	}
	w.CloseArraySection()
}

// paramFragment renders one subgroup object: its parameters and the shape
// ids of every occurrence.
func paramFragment(params []classify.Param, vecs [][]uint64) string {
	var b strings.Builder
	w := jsonwriter.NewAt(&b, paramFragmentLevel)
	w.OpenSection("")
	w.WriteData("parametersCount", len(params))
	w.OpenArraySection("parameters")
	for _, p := range params {
		writeParameter(w, p)
	}
	w.CloseArraySection()
	writeShapeIDs(w, vecs)
	w.CloseSection()
	return b.String()
}

// plainFragment renders the shape ids of a parameterless group directly
// into the group object.
func plainFragment(vecs [][]uint64) string {
	var b strings.Builder
	writeShapeIDs(jsonwriter.NewAt(&b, plainFragmentLevel), vecs)
	return b.String()
}

// unfoldedFragment renders the flat pattern dimensions into the
// featureRecognitionUnfolded section.
func unfoldedFragment(params []classify.Param) string {
	var b strings.Builder
	w := jsonwriter.NewAt(&b, unfoldedFragmentLevel)
	w.WriteData("parametersCount", len(params))
	w.OpenArraySection("parameters")
	for _, p := range params {
		writeParameter(w, p)
	}
	w.CloseArraySection()
	return b.String()
}
