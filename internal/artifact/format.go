// Package artifact prints the two text surfaces spec.md §4.1/§6 asks a
// catalog entry's result to produce: the coefficient assignment block
// (`name:value;` per line) and the Maxima-format order-condition /
// Shu-Osher identity text used to verify a discovered scheme externally.
// Neither surface is evaluated by this module — spec.md's non-goals
// explicitly exclude symbolic simplification and correctness proof.
package artifact

import (
	"fmt"
	"strings"
)

// FormatLongDouble renders v the way the original long-double writer did
// (original_source/rk.c's "%.19Le"), then swaps the scientific-notation
// exponent marker for Maxima's bigfloat marker so the emitted literal
// reads as an exact big-float in a Maxima session rather than a plain
// double.
func FormatLongDouble(v float64) string {
	return toMaximaBigfloat(fmt.Sprintf("%.19e", v))
}

// toMaximaBigfloat replaces the 'e' exponent marker with Maxima's 'b'
// bigfloat marker, e.g. "1.5000000000000000000e+00" -> "1.5000000000000000000b+00".
func toMaximaBigfloat(s string) string {
	idx := strings.LastIndexByte(s, 'e')
	if idx < 0 {
		return s
	}
	return s[:idx] + "b" + s[idx+1:]
}
