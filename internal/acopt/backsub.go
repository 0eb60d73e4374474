package acopt

import "github.com/jotoba/odeopt/internal/kernel"

// bHat returns the "b-hat" substitution spec.md §4.3 calls for when
// back-substituting column 0: stage 1 has no real b_{1,0} entry (the first
// stage's weight is the node time itself), so bHat(t, b, 1) = t_1; for all
// later stages j>1, bHat falls back to the already-known b_{j,0}.
func bHat(t []float64, b [][]float64, j int) float64 {
	if j == 1 {
		return t[1]
	}
	return b[j][0]
}

// solve derives the full a_{ij}/c_{ij} Shu-Osher decomposition for stages
// 2..s from the node times t, the known weight matrix b, and a strict
// lower-triangular block of free c_{ij} values already installed into c by
// the caller (c[i][j] for j in [1, i-1]). It fills a in place (and the
// derived c[i][0] column) by the back-substitution formulas of spec.md
// §4.3, processing stages in increasing order. Each stage reads only t, b
// and its own row of a and c (bHat looks up t_1 or b[j][0]), so no stage
// depends on another stage's derived values.
//
// ok=false means some division hit a near-zero denominator (spec.md's
// SolverInfeasible path); a, c are left partially filled in that case and
// must not be used.
func solve(t []float64, b, a, c [][]float64, s int) (ok bool) {
	for i := 2; i <= s; i++ {
		// a_{i,i-1} = b_{i,i-1} / c_{i,i-1}
		v, divOK := kernel.SafeDiv(b[i][i-1], c[i][i-1])
		if !divOK {
			return false
		}
		a[i][i-1] = v

		// a_{i,j} for j = i-2 .. 1
		for j := i - 2; j >= 1; j-- {
			sum := 0.0
			for k := j + 1; k <= i-1; k++ {
				sum += a[i][k] * b[k][j]
			}
			v, divOK := kernel.SafeDiv(b[i][j]-sum, c[i][j])
			if !divOK {
				return false
			}
			a[i][j] = v
		}

		// a_{i,0} = 1 - sum_{j>0} a_{i,j}
		sumA := 0.0
		for j := 1; j <= i-1; j++ {
			sumA += a[i][j]
		}
		a[i][0] = kernel.FlushEps(1 - sumA)

		// c_{i,0} = (b_{i,0} - sum_{j>0} a_{i,j} * bHat(j,0)) / a_{i,0}
		sumB := 0.0
		for j := 1; j <= i-1; j++ {
			sumB += a[i][j] * bHat(t, b, j)
		}
		v, divOK = kernel.SafeDiv(b[i][0]-sumB, a[i][0])
		if !divOK {
			return false
		}
		c[i][0] = v

		for j := 0; j < i; j++ {
			if !kernel.IsFinite(a[i][j]) || !kernel.IsFinite(c[i][j]) {
				return false
			}
		}
	}
	return true
}
