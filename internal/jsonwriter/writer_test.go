package jsonwriter

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriter_Document(t *testing.T) {
	var b strings.Builder
	w := New(&b)

	w.OpenSection("")
	w.WriteData("version", "1")
	w.OpenArraySection("parts")
	w.OpenSection("")
	w.WriteData("partId", "a")
	w.WriteData("value", 2.0)
	w.CloseSection()
	w.OpenSection("")
	w.WriteData("partId", "b")
	w.WriteEmptyArray("groups")
	w.CloseSection()
	w.CloseArraySection()
	w.CloseSection()

	want := `{
    "version": "1",
    "parts": [
        {
            "partId": "a",
            "value": "2.00"
        },
        {
            "partId": "b",
            "groups": []
        }
    ]
}`
	assert.Equal(t, want, b.String())
	assert.Equal(t, 0, w.NestingLevel())
	require.NoError(t, w.Err())
	assert.True(t, json.Valid([]byte(b.String())))
}

func TestWriter_NestingLevel(t *testing.T) {
	var b strings.Builder
	w := NewAt(&b, 3)
	assert.Equal(t, 3, w.NestingLevel())
	w.OpenSection("x")
	assert.Equal(t, 4, w.NestingLevel())
	w.OpenArraySection("y")
	assert.Equal(t, 5, w.NestingLevel())
	w.CloseArraySection()
	w.CloseSection()
	assert.Equal(t, 3, w.NestingLevel())
}

func TestWriter_SplicesFragment(t *testing.T) {
	var frag strings.Builder
	fw := NewAt(&frag, 2)
	fw.WriteData("a", 1)
	fw.WriteData("b", 2)
	assert.Equal(t, "        \"a\": \"1\",\n        \"b\": \"2\"", frag.String())

	var b strings.Builder
	w := New(&b)
	w.OpenSection("")
	w.OpenSection("group")
	w.WriteData("name", "g")
	w.WriteRawData(frag.String())
	w.CloseSection()
	w.CloseSection()

	want := `{
    "group": {
        "name": "g",
        "a": "1",
        "b": "2"
    }
}`
	assert.Equal(t, want, b.String())
}

func TestWriter_NoTrailingNewline(t *testing.T) {
	var b strings.Builder
	w := New(&b)
	w.OpenSection("")
	w.CloseSection()
	assert.Equal(t, "{\n}", b.String())
}

func TestWriter_EmptySections(t *testing.T) {
	tests := []struct {
		name  string
		write func(w *Writer)
		want  string
	}{
		{
			name: "empty array section",
			write: func(w *Writer) {
				w.OpenSection("")
				w.OpenArraySection("parameters")
				w.CloseArraySection()
				w.CloseSection()
			},
			want: "{\n    \"parameters\": [\n    ]\n}",
		},
		{
			name: "empty object between siblings",
			write: func(w *Writer) {
				w.OpenSection("")
				w.WriteData("a", "1")
				w.OpenSection("b")
				w.CloseSection()
				w.WriteData("c", "2")
				w.CloseSection()
			},
			want: "{\n    \"a\": \"1\",\n    \"b\": {\n    },\n    \"c\": \"2\"\n}",
		},
		{
			name: "nested empty arrays",
			write: func(w *Writer) {
				w.OpenArraySection("")
				w.OpenArraySection("")
				w.CloseArraySection()
				w.OpenArraySection("")
				w.CloseArraySection()
				w.CloseArraySection()
			},
			want: "[\n    [\n    ],\n    [\n    ]\n]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var b strings.Builder
			w := New(&b)
			tt.write(w)
			assert.Equal(t, tt.want, b.String())
			assert.True(t, json.Valid([]byte(b.String())))
			assert.Equal(t, 0, w.NestingLevel())
		})
	}
}

func TestWriter_EscapesStrings(t *testing.T) {
	var b strings.Builder
	w := NewAt(&b, 0)
	w.WriteData(`na"me`, "a\\b <c>\n")
	assert.Equal(t, `"na\"me": "a\\b <c>\n"`, b.String())
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{"text", "text"},
		{3.14159, "3.14"},
		{float32(0.5), "0.50"},
		{-0.004, "-0.00"},
		{42, "42"},
		{uint64(7), "7"},
		{true, "true"},
		{stringer{}, "str"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatValue(tt.in))
	}
}

type stringer struct{}

func (stringer) String() string { return "str" }

type failingWriter struct{ n int }

func (f *failingWriter) Write(p []byte) (int, error) {
	f.n++
	return 0, errors.New("disk full")
}

func TestWriter_StickyError(t *testing.T) {
	fw := &failingWriter{}
	w := New(fw)
	w.OpenSection("")
	w.WriteData("k", "v")
	w.CloseSection()

	require.EqualError(t, w.Err(), "disk full")
	assert.Equal(t, 1, fw.n)
}
