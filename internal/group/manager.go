// SPDX-License-Identifier: AGPL-3.0-or-later

// Package group buckets classified features under display labels and
// renders the buckets either as JSON report sections or console summaries.
package group

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/bartekus/dfmreport/internal/feature"
	"github.com/bartekus/dfmreport/internal/jsonwriter"
)

// PrintFunc writes the parameter lines of one feature.
type PrintFunc func(w io.Writer, f *feature.Feature)

type group struct {
	name  string
	color string
	count int

	// JSON report data.
	fragments []string

	// Console report data.
	subgroup  string
	hasParams bool
	features  *feature.OrderedList
}

func (g *group) total() int {
	n := g.count
	if g.features != nil {
		n += g.features.Total()
	}
	return n
}

// Manager collects groups in order of first appearance.
type Manager struct {
	cmp    feature.Comparator
	groups []*group
}

// NewManager returns an empty manager. cmp orders features inside console
// groups and breaks ties between groups when printing.
func NewManager(cmp feature.Comparator) *Manager {
	return &Manager{cmp: cmp}
}

func (m *Manager) findOrCreate(name string) *group {
	for _, g := range m.groups {
		if g.name == name {
			return g
		}
	}
	g := &group{name: name}
	m.groups = append(m.groups, g)
	return g
}

// AddGroupData appends a pre-rendered feature fragment to the named group
// and adds count to its total. The color of the first call wins.
func (m *Manager) AddGroupData(name, color, data string, count int) {
	g := m.findOrCreate(name)
	if g.color == "" {
		g.color = color
	}
	g.fragments = append(g.fragments, data)
	g.count += count
}

// AddFeature records a raw feature for console output. Equivalent features
// within a group are merged by the manager's comparator.
func (m *Manager) AddFeature(name, subgroup string, hasParams bool, f *feature.Feature) {
	g := m.findOrCreate(name)
	if g.features == nil {
		g.subgroup = subgroup
		g.hasParams = hasParams
		g.features = feature.NewOrderedList(m.cmp)
	}
	g.features.Append(f, nil)
}

// Len returns the number of groups.
func (m *Manager) Len() int {
	return len(m.groups)
}

// TotalFeatureCount sums the counts of every group.
func (m *Manager) TotalFeatureCount() int {
	n := 0
	for _, g := range m.groups {
		n += g.total()
	}
	return n
}

// Write emits one object per group. Groups whose fragments carry parameters
// list them under subGroups; other fragments are spliced into the group
// object directly.
func (m *Manager) Write(w *jsonwriter.Writer) {
	for _, g := range m.groups {
		w.OpenSection("")
		w.WriteData("name", g.name)
		w.WriteData("color", g.color)
		w.WriteData("totalGroupFeatureCount", g.total())

		if len(g.fragments) > 0 && hasParameters(g.fragments[0]) {
			w.WriteData("subGroupCount", len(g.fragments))
			w.OpenArraySection("subGroups")
			for _, frag := range g.fragments {
				w.WriteRawData(frag)
			}
			w.CloseArraySection()
		} else {
			for _, frag := range g.fragments {
				if frag == "" {
					continue
				}
				w.WriteRawData(frag)
			}
		}

		w.CloseSection()
	}
}

func hasParameters(fragment string) bool {
	return strings.Contains(fragment, `"parameters":`)
}

// Print writes the console summary: one line per group, one block per
// distinct feature when the group has parameters, then the total.
func (m *Manager) Print(out io.Writer, typeLabel string, printFn PrintFunc) {
	groups := make([]*group, len(m.groups))
	copy(groups, m.groups)
	sort.SliceStable(groups, func(i, j int) bool {
		return m.compareGroups(groups[i], groups[j]) < 0
	})

	total := 0
	for _, g := range groups {
		count := g.total()
		total += count
		fmt.Fprintf(out, "    %s: %d\n", g.name, count)

		if !g.hasParams || g.features == nil {
			continue
		}
		for i := 0; i < g.features.Size(); i++ {
			fmt.Fprintf(out, "        %d %s with\n", g.features.Count(i), g.subgroup)
			if printFn != nil {
				printFn(out, g.features.Feature(i))
			}
		}
	}

	fmt.Fprintf(out, "\n    Total %s: %d\n\n", typeLabel, total)
}

// compareGroups orders groups by their first feature. Groups without
// features are ordered by name. Groups whose first features are equivalent
// compare equal and keep the order they were created in.
func (m *Manager) compareGroups(a, b *group) int {
	if a.name == b.name {
		return 0
	}
	if a.features == nil || b.features == nil || a.features.Size() == 0 || b.features.Size() == 0 {
		return strings.Compare(a.name, b.name)
	}
	return m.cmp(a.features.Feature(0), b.features.Feature(0))
}
