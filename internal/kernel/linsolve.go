package kernel

import "math"

// MaxSolveN is the largest system size this module will solve. The scheme
// catalog never needs more than a 6x6 system (the densest order-condition
// block in the multistep and high-stage RK families); this cap keeps the
// in-place scratch buffers fixed-size and avoids runaway allocations from a
// malformed catalog entry.
const MaxSolveN = 6

// SolveN solves the dense linear system A*x = b for n in [1, MaxSolveN],
// using Gaussian elimination with NO partial pivoting: the top row of the
// active submatrix is always used as the pivot. This mirrors the spirit of
// matrix.LU's Doolittle decomposition (also pivot-free, trading numerical
// stability for determinism) collapsed into a single parametric routine
// per the "solve_n recursion -> single parametric routine" redesign note.
//
// A is consumed as a fresh copy internally; the caller's slices are never
// mutated. After each component of x is computed it is passed through
// FlushEps, exactly preserving the epsilon-flush semantics that shape the
// feasibility boundary of the scheme solvers calling into this routine.
//
// SolveN returns ok=false (and a nil x) when:
//   - n is out of [1, MaxSolveN],
//   - A or b have the wrong shape,
//   - any pivot encountered is smaller than Eps in magnitude (no pivoting
//     means such a system is treated as degenerate, not solved via a
//     workaround), or
//   - any intermediate or final value is non-finite.
//
// Complexity: O(n^3) time, O(n^2) space (n <= 6, so effectively O(1)).
func SolveN(a [][]float64, b []float64) ([]float64, bool) {
	n := len(b)
	if n < 1 || n > MaxSolveN || len(a) != n {
		return nil, false
	}

	// Work on a private copy so the caller's matrix/vector are untouched.
	m := make([][]float64, n)
	for i := 0; i < n; i++ {
		if len(a[i]) != n {
			return nil, false
		}
		m[i] = make([]float64, n+1)
		copy(m[i], a[i])
		m[i][n] = b[i]
	}

	// Forward elimination: eliminate column k using row k as pivot, no
	// partial pivoting (caller is expected to have screened degenerate
	// draws upstream; a tiny pivot here is reported as infeasible).
	for k := 0; k < n; k++ {
		pivot := m[k][k]
		if math.Abs(pivot) < Eps {
			return nil, false
		}
		for i := k + 1; i < n; i++ {
			factor := m[i][k] / pivot
			if !IsFinite(factor) {
				return nil, false
			}
			for j := k; j <= n; j++ {
				m[i][j] -= factor * m[k][j]
			}
		}
	}

	// Back substitution.
	x := make([]float64, n)
	for i := n - 1; i >= 0; i-- {
		sum := m[i][n]
		for j := i + 1; j < n; j++ {
			sum -= m[i][j] * x[j]
		}
		pivot := m[i][i]
		if math.Abs(pivot) < Eps {
			return nil, false
		}
		v := sum / pivot
		if !IsFinite(v) {
			return nil, false
		}
		x[i] = FlushEps(v)
	}

	if !AllFinite(x) {
		return nil, false
	}
	return x, true
}
