// SPDX-License-Identifier: AGPL-3.0-or-later
package feature

type entry struct {
	feature  *Feature
	count    int
	shapeIDs [][]uint64
}

// OrderedList keeps features sorted under a Comparator, merging equivalent
// features into a single entry that counts occurrences and accumulates the
// shape ids of each one.
type OrderedList struct {
	cmp     Comparator
	entries []entry
}

// NewOrderedList returns an empty list ordered by cmp.
func NewOrderedList(cmp Comparator) *OrderedList {
	return &OrderedList{cmp: cmp}
}

// Append inserts f before the first entry that does not sort before it, or
// merges it into that entry when they compare equal.
func (l *OrderedList) Append(f *Feature, shapeIDs []uint64) {
	i := 0
	for ; i < len(l.entries); i++ {
		if l.cmp(l.entries[i].feature, f) >= 0 {
			break
		}
	}
	if i < len(l.entries) && l.cmp(l.entries[i].feature, f) == 0 {
		e := &l.entries[i]
		e.count++
		e.shapeIDs = append(e.shapeIDs, shapeIDs)
		return
	}
	l.entries = append(l.entries, entry{})
	copy(l.entries[i+1:], l.entries[i:])
	l.entries[i] = entry{feature: f, count: 1, shapeIDs: [][]uint64{shapeIDs}}
}

// Size returns the number of distinct entries.
func (l *OrderedList) Size() int {
	return len(l.entries)
}

// Feature returns the representative feature of entry i.
func (l *OrderedList) Feature(i int) *Feature {
	return l.entries[i].feature
}

// Count returns how many features were merged into entry i.
func (l *OrderedList) Count(i int) int {
	return l.entries[i].count
}

// ShapeIDs returns the shape id lists of every feature merged into entry i,
// one list per occurrence.
func (l *OrderedList) ShapeIDs(i int) [][]uint64 {
	return l.entries[i].shapeIDs
}

// Total returns the number of appended features.
func (l *OrderedList) Total() int {
	n := 0
	for _, e := range l.entries {
		n += e.count
	}
	return n
}
