package kernel

import "gonum.org/v1/gonum/mat"

// CrossCheck solves A*x = b using gonum's LU-backed mat.Dense.Solve and
// reports whether its answer agrees with SolveN's pivot-free result within
// tol. It exists purely as an independent numerical witness for the denser
// catalog systems (n >= DenseVerifyThreshold via SolveDenseVerified: RK
// 6-4 and multistep entries of order 4 or more): those systems are
// the ones most likely to expose a pivot-selection difference between a
// no-pivot elimination and a partially-pivoted one, so a disagreement here
// is a signal (not a certainty) that the draw sits near the no-pivoting
// method's stability boundary.
//
// CrossCheck never replaces SolveN's result; the scheme catalog always
// uses SolveN's output so the epsilon-flush feasibility boundary stays
// exactly as specified. Returns ok=false if gonum's solve itself fails
// (singular system) or shapes mismatch.
//
// Complexity: O(n^3) via gonum's LU, n <= MaxSolveN.
func CrossCheck(a [][]float64, b []float64, x []float64, tol float64) (agrees bool, ok bool) {
	n := len(b)
	if n < 1 || n > MaxSolveN || len(a) != n || len(x) != n {
		return false, false
	}

	flat := make([]float64, n*n)
	for i := 0; i < n; i++ {
		if len(a[i]) != n {
			return false, false
		}
		copy(flat[i*n:(i+1)*n], a[i])
	}
	am := mat.NewDense(n, n, flat)
	bm := mat.NewDense(n, 1, append([]float64(nil), b...))

	var xm mat.Dense
	if err := xm.Solve(am, bm); err != nil {
		return false, false
	}

	for i := 0; i < n; i++ {
		gv := xm.At(i, 0)
		if !IsFinite(gv) {
			return false, false
		}
		if abs64(gv-x[i]) > tol {
			return false, true
		}
	}
	return true, true
}

func abs64(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// DenseVerifyThreshold is the smallest system size at which SolveDenseVerified
// actually invokes CrossCheck. Below it a no-pivot elimination is not close
// enough to degenerate for partial pivoting to matter in practice.
const DenseVerifyThreshold = 4

// crossCheckTol is the agreement tolerance SolveDenseVerified asks
// CrossCheck to use: loose enough not to flag ordinary floating-point
// drift between the two elimination strategies, tight enough to catch a
// genuine near-singular draw.
const crossCheckTol = 1e-6

// SolveDenseVerified is SolveN for the catalog's higher-dimension systems
// (RK 5-4/6-3/6-4, the denser multistep families): at n >= DenseVerifyThreshold
// it additionally asks CrossCheck to confirm gonum's partially-pivoted solve
// agrees. A disagreement means the draw sits too close to the no-pivoting
// method's stability boundary to trust, so the draw is reported as
// infeasible — SolveN's own numeric answer is still what would have been
// returned on agreement, exactly matching CrossCheck's doc that it never
// substitutes its own solution.
func SolveDenseVerified(a [][]float64, b []float64) ([]float64, bool) {
	x, ok := SolveN(a, b)
	if !ok {
		return nil, false
	}
	if len(b) < DenseVerifyThreshold {
		return x, true
	}
	agrees, checked := CrossCheck(a, b, x, crossCheckTol)
	if checked && !agrees {
		return nil, false
	}
	return x, true
}
