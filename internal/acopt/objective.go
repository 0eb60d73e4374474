package acopt

import "math"

// feasibilityPenalty scans every a_{ij} then every c_{ij} for negative
// entries and sums the (all-negative) shortfall S, matching spec.md §4.2's
// two-tier feasibility check: "the Shu-Osher check uses the code path that
// tests c_ij after a_ij." Returns (penalty, infeasible); when infeasible,
// penalty is 10-S and the caller must not evaluate the CFL scalar.
func feasibilityPenalty(a, c [][]float64, s int) (penalty float64, infeasible bool) {
	sum := 0.0
	for i := 2; i <= s; i++ {
		for j := 0; j < i; j++ {
			if a[i][j] < 0 {
				sum += a[i][j]
			}
		}
	}
	for i := 2; i <= s; i++ {
		for j := 0; j < i; j++ {
			if c[i][j] < 0 {
				sum += c[i][j]
			}
		}
	}
	if sum < 0 {
		return 10 - sum, true
	}
	return 0, false
}

// objective scores a feasible Shu-Osher decomposition as J = max(t_1, max
// c_ij), the reciprocal of the CFL number spec.md §4.2 defines for the
// strong-stability path; a smaller J means a larger admissible CFL step.
func objective(t []float64, a, c [][]float64, s int) float64 {
	if penalty, infeasible := feasibilityPenalty(a, c, s); infeasible {
		return penalty
	}
	maxC := 0.0
	for i := 2; i <= s; i++ {
		for j := 0; j < i; j++ {
			if c[i][j] > maxC {
				maxC = c[i][j]
			}
		}
	}
	return math.Max(t[1], maxC)
}
