package artifact

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestFormatLongDouble_UsesBigfloatMarker checks the exponent marker is
// rewritten from 'e' to 'b' and the mantissa keeps 19 fractional digits.
func TestFormatLongDouble_UsesBigfloatMarker(t *testing.T) {
	s := FormatLongDouble(0.5)
	require.NotContains(t, s, "e")
	require.Contains(t, s, "b")
	mantissa := strings.SplitN(s, "b", 2)[0]
	frac := strings.SplitN(mantissa, ".", 2)[1]
	require.Len(t, frac, 19)
}

// TestFormatLongDouble_NegativeValue checks the sign survives the
// exponent-marker rewrite.
func TestFormatLongDouble_NegativeValue(t *testing.T) {
	s := FormatLongDouble(-1.25)
	require.True(t, strings.HasPrefix(s, "-1.25"))
}

// TestRKIdentities_RowSumAndSecondOrder checks the two unconditional
// identities write.c's rk_print_maxima always emits for a 3-stage, order-2
// request.
func TestRKIdentities_RowSumAndSecondOrder(t *testing.T) {
	lines := RKIdentities(3, 3, 2, "b")
	require.Equal(t, "b30+b31+b32+-1", lines[0])
	require.Equal(t, "b31*t1+b32*t2+-1/2", lines[1])
	require.Len(t, lines, 2) // row-sum and 1/2 — the 1/3 and 1/6 identities start at order 3
}

// TestRKIdentities_OrderGating checks higher-order identities are only
// emitted when the requested order is high enough.
func TestRKIdentities_OrderGating(t *testing.T) {
	order1 := RKIdentities(2, 2, 1, "b")
	require.Len(t, order1, 2) // row-sum and the 1/2 identity are unconditional

	order4 := RKIdentities(4, 4, 4, "b")
	require.Greater(t, len(order4), len(order1))
}

// TestMultistepIdentities_SumToOneFirst checks the first emitted identity
// is the Σa_i - 1 b0-weighted form steps_print_maxima always writes
// first.
func TestMultistepIdentities_SumToOneFirst(t *testing.T) {
	lines := MultistepIdentities(3, 2)
	require.Equal(t, "a0+a1+a2-1b0", lines[0])
	require.Len(t, lines, 3) // 0th, 1st, and one q=2 high-order identity
}

// TestWrite_EmitsAssignmentsThenIdentities checks the composed document
// writes assignments first, then a blank separator, then
// semicolon-terminated identities.
func TestWrite_EmitsAssignmentsThenIdentities(t *testing.T) {
	doc := Document{
		Assignments: []string{"t1:1.0e+00;"},
		Identities:  []string{"b10+b11-1"},
	}
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, doc))
	out := buf.String()
	require.True(t, strings.HasPrefix(out, "t1:1.0e+00;\n"))
	require.True(t, strings.HasSuffix(out, "b10+b11-1;\n"))
}
