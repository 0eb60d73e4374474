package kernel_test

import (
	"testing"

	"github.com/jotoba/odeopt/internal/kernel"
	"github.com/stretchr/testify/require"
)

// TestSolveN_Identity2x2 checks a trivial diagonal system resolves exactly.
func TestSolveN_Identity2x2(t *testing.T) {
	a := [][]float64{{2, 0}, {0, 4}}
	b := []float64{4, 8}
	x, ok := kernel.SolveN(a, b)
	require.True(t, ok)
	require.InDelta(t, 2.0, x[0], 1e-12)
	require.InDelta(t, 2.0, x[1], 1e-12)
}

// TestSolveN_Dense3x3 checks a non-trivial dense system against a known
// analytic solution.
func TestSolveN_Dense3x3(t *testing.T) {
	// x + y + z = 6; 2y + 5z = -4; 2x + 5y - z = 27 (classic textbook system)
	a := [][]float64{
		{1, 1, 1},
		{0, 2, 5},
		{2, 5, -1},
	}
	b := []float64{6, -4, 27}
	x, ok := kernel.SolveN(a, b)
	require.True(t, ok)
	require.InDelta(t, 5.0, x[0], 1e-9)
	require.InDelta(t, 3.0, x[1], 1e-9)
	require.InDelta(t, -2.0, x[2], 1e-9)
}

// TestSolveN_SingularFails ensures a singular system is reported infeasible
// rather than returning NaN/Inf.
func TestSolveN_SingularFails(t *testing.T) {
	a := [][]float64{{1, 1}, {1, 1}}
	b := []float64{2, 2}
	_, ok := kernel.SolveN(a, b)
	require.False(t, ok)
}

// TestSolveN_BadShapeFails ensures out-of-range and mismatched shapes fail
// cleanly instead of panicking.
func TestSolveN_BadShapeFails(t *testing.T) {
	_, ok := kernel.SolveN(nil, []float64{1})
	require.False(t, ok)

	_, ok = kernel.SolveN([][]float64{{1, 2}}, []float64{1})
	require.False(t, ok)

	big := make([][]float64, 7)
	bigB := make([]float64, 7)
	for i := range big {
		big[i] = make([]float64, 7)
		big[i][i] = 1
	}
	_, ok = kernel.SolveN(big, bigB)
	require.False(t, ok, "n beyond MaxSolveN must fail")
}

// TestSolveN_CrossCheckAgreesWithGonum confirms the hand-rolled no-pivot
// solve agrees with gonum's LU-backed solve on a well-conditioned system.
func TestSolveN_CrossCheckAgreesWithGonum(t *testing.T) {
	a := [][]float64{
		{4, 1, 0},
		{1, 4, 1},
		{0, 1, 4},
	}
	b := []float64{5, 10, 5}
	x, ok := kernel.SolveN(a, b)
	require.True(t, ok)

	agrees, ok := kernel.CrossCheck(a, b, x, 1e-6)
	require.True(t, ok)
	require.True(t, agrees)
}

// TestSolveDenseVerified_SmallSystemSkipsCrossCheck checks that below
// DenseVerifyThreshold the result is exactly SolveN's, with no behavior
// change from wiring in the gonum witness.
func TestSolveDenseVerified_SmallSystemSkipsCrossCheck(t *testing.T) {
	a := [][]float64{{2, 0}, {0, 4}}
	b := []float64{4, 8}
	x, ok := kernel.SolveDenseVerified(a, b)
	require.True(t, ok)
	require.InDelta(t, 2.0, x[0], 1e-12)
	require.InDelta(t, 2.0, x[1], 1e-12)
}

// TestSolveDenseVerified_WellConditioned4x4AgreesWithGonum checks a
// DenseVerifyThreshold-or-larger, well-conditioned system (the size class
// the higher-dimension RK and multistep catalog entries actually solve)
// passes the gonum cross-check and returns SolveN's own values.
func TestSolveDenseVerified_WellConditioned4x4AgreesWithGonum(t *testing.T) {
	a := [][]float64{
		{4, 1, 0, 0},
		{1, 4, 1, 0},
		{0, 1, 4, 1},
		{0, 0, 1, 4},
	}
	b := []float64{5, 10, 10, 5}
	want, ok := kernel.SolveN(a, b)
	require.True(t, ok)

	got, ok := kernel.SolveDenseVerified(a, b)
	require.True(t, ok)
	for i := range want {
		require.InDelta(t, want[i], got[i], 1e-9)
	}
}

// TestSolveDenseVerified_SingularStillFails confirms SolveDenseVerified
// does not mask a singular system that SolveN itself already rejects.
func TestSolveDenseVerified_SingularStillFails(t *testing.T) {
	a := [][]float64{
		{1, 1, 0, 0},
		{1, 1, 0, 0},
		{0, 0, 1, 1},
		{0, 0, 1, 1},
	}
	b := []float64{2, 2, 2, 2}
	_, ok := kernel.SolveDenseVerified(a, b)
	require.False(t, ok)
}
