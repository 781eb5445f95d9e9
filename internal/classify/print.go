// SPDX-License-Identifier: AGPL-3.0-or-later
package classify

import (
	"fmt"
	"io"
	"strings"

	"github.com/bartekus/dfmreport/internal/feature"
)

// PrintParameters writes one console line per reported parameter of f. Kinds
// without a descriptor print nothing.
func PrintParameters(w io.Writer, f *feature.Feature) {
	d, ok := Lookup(f.Kind)
	if !ok {
		return
	}
	for _, p := range d.Parameters(f) {
		PrintParameter(w, strings.ToLower(p.Name), p.Value, p.Units)
	}
}

// PrintParameter writes a single indented "name: value units" line.
func PrintParameter(w io.Writer, name string, value any, units string) {
	fmt.Fprintf(w, "          %s: %s %s\n", name, consoleValue(value), units)
}

func consoleValue(v any) string {
	switch x := v.(type) {
	case float64:
		return FormatDecimal(x)
	case Pair:
		return x.Format(5)
	case Dimension:
		return x.Format(5)
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(v)
	}
}
