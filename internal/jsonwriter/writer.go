// SPDX-License-Identifier: AGPL-3.0-or-later

// Package jsonwriter is a small streaming JSON emitter with explicit
// section nesting. Output is indented four spaces per level, siblings on the
// same level are separated by commas, and pre-rendered fragments produced by
// another Writer can be spliced in verbatim.
//
// The writer does not check that opens and closes are balanced.
package jsonwriter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
)

const indent = "    "

// Writer emits JSON to an underlying sink. The first write error is kept
// and returned by Err; later calls become no-ops.
type Writer struct {
	out    io.Writer
	level  int
	prev   int
	inited bool
	err    error
}

// New returns a Writer whose top-level entries sit at nesting level 0.
func New(out io.Writer) *Writer {
	return NewAt(out, 0)
}

// NewAt returns a Writer starting at the given nesting level. Fragments
// rendered this way line up when spliced into a parent with WriteRawData.
func NewAt(out io.Writer, level int) *Writer {
	return &Writer{out: out, level: level, prev: level - 1}
}

// OpenSection writes `"name": {`, or a bare `{` when name is empty, and
// descends one level.
func (w *Writer) OpenSection(name string) {
	w.open(name, "{")
}

// CloseSection ascends one level and writes `}`.
func (w *Writer) CloseSection() {
	w.close("}")
}

// OpenArraySection writes `"name": [`, or a bare `[` when name is empty,
// and descends one level.
func (w *Writer) OpenArraySection(name string) {
	w.open(name, "[")
}

// CloseArraySection ascends one level and writes `]`.
func (w *Writer) CloseArraySection() {
	w.close("]")
}

// WriteData writes `"key": "value"`. Floats are rendered with two decimals,
// everything else through its string form.
func (w *Writer) WriteData(key string, value any) {
	w.stream()
	w.writeString(quote(key) + ": " + quote(FormatValue(value)))
}

// WriteRawData splices a pre-rendered fragment at the current position.
func (w *Writer) WriteRawData(raw string) {
	w.prepare()
	w.writeString(raw)
}

// WriteEmptyArray writes `"key": []`.
func (w *Writer) WriteEmptyArray(key string) {
	w.stream()
	w.writeString(quote(key) + ": []")
}

// NestingLevel returns the current nesting level.
func (w *Writer) NestingLevel() int {
	return w.level
}

// Err returns the first error reported by the sink.
func (w *Writer) Err() error {
	return w.err
}

func (w *Writer) open(name, bracket string) {
	w.stream()
	if name != "" {
		w.writeString(quote(name) + ": ")
	}
	w.writeString(bracket)
	w.level++
}

// close ends the current section. An empty section gets no separator
// before its closing bracket.
func (w *Writer) close(bracket string) {
	empty := w.prev < w.level
	w.level--
	if empty {
		w.prev = w.level - 1
	}
	w.stream()
	w.writeString(bracket)
}

// prepare separates the next entry from the previous one: a comma when it is
// a sibling on the same level, then a line break unless it is the very
// first entry.
func (w *Writer) prepare() {
	if w.level == w.prev {
		w.writeString(",")
	}
	w.prev = w.level
	if w.inited {
		w.writeString("\n")
	}
	w.inited = true
}

func (w *Writer) stream() {
	w.prepare()
	if w.level > 0 {
		w.writeString(strings.Repeat(indent, w.level))
	}
}

func (w *Writer) writeString(s string) {
	if w.err != nil {
		return
	}
	_, w.err = io.WriteString(w.out, s)
}

// FormatValue renders a value the way WriteData does.
func FormatValue(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', 2, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', 2, 32)
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(v)
	}
}

func quote(s string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return strconv.Quote(s)
	}
	return strings.TrimSuffix(buf.String(), "\n")
}
