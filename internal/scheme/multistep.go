package scheme

import "github.com/jotoba/odeopt/internal/kernel"

// MultistepSolver builds the solver for a k-step, order-p linear
// multi-step scheme, per spec.md §3/§4.1: all k values of c_i are drawn
// freely, the top (k-1-p) values of a_i (indices p+1..k-1) are drawn
// freely, and the middle p unknowns a_1..a_p are solved as a dense p x p
// system from the order-condition family
//
//	q · Σ_i i^{q-1} b_i − Σ_i i^q a_i = (−1)^{q−1}, q = 1..p, b_i = a_i c_i,
//
// with a_0 eliminated via the total-sum invariant Σ a_i = 1 and derived
// afterward. This is the sign convention original_source/write.c's
// steps_print_maxima (and internal/artifact's MultistepIdentities, which
// ports it) actually emits and verifies, not spec.md §3's literal
// transcription with the opposite sign — the two disagree, and
// identities.go's convention is the one the catalog's printed artifact
// must satisfy, so the solver targets it. This mirrors the structural
// pattern of original_source/steps_5_2.c and steps_6_3.c (fix c_i freely,
// fix the top a_i freely, solve a small dense system of size p for the
// rest via kernel.SolveDenseVerified).
func MultistepSolver(k, p int) (nfree int, layout MultistepLayout, solve func(free, coef []float64) bool) {
	layout = NewMultistepLayout(k)
	topFree := k - 1 - p
	nfree = k + topFree

	solve = func(free, coef []float64) bool {
		kk := 0
		for i := 0; i < k; i++ {
			layout.SetC(coef, i, free[kk])
			kk++
		}
		for i := k - topFree; i <= k-1; i++ {
			layout.SetA(coef, i, free[kk])
			kk++
		}

		// Assemble the p x p system for unknowns a_1..a_p, with a_0
		// eliminated via a_0 = 1 - Σ_{i>=1} a_i substituted into every
		// row's i=0 term, and the top-free a_i (i = p+1..k-1) moved to
		// the right-hand side as known quantities.
		a := make([][]float64, p)
		rhs := make([]float64, p)
		for row := 0; row < p; row++ {
			a[row] = make([]float64, p)
			q := row + 1
			c0 := layout.C(coef, 0)

			coeff0 := termCoeff(0, q, c0) // a_0's moment coefficient, pre-substitution
			known := coeff0               // the constant term left by substituting a_0=1-Σ
			for col := 0; col < p; col++ {
				i := col + 1
				ci := layout.C(coef, i)
				a[row][col] = termCoeff(i, q, ci) - coeff0
			}
			for i := p + 1; i <= k-1; i++ {
				ci := layout.C(coef, i)
				ai := layout.A(coef, i)
				known += (termCoeff(i, q, ci) - coeff0) * ai
			}
			// target_q = -(-1)^(q-1) = (-1)^q: the negation of spec.md §3's
			// literal sign, needed because termCoeff below is the coefficient
			// of a_i in the "Σ i^q a_i − q Σ i^{q-1} b_i" form, which is
			// minus the write.c/identities.go convention this solver targets.
			sign := -1.0
			if q%2 == 0 {
				sign = 1.0
			}
			rhs[row] = sign - known
		}

		x, ok := kernel.SolveDenseVerified(a, rhs)
		if !ok {
			return false
		}
		for col := 0; col < p; col++ {
			layout.SetA(coef, col+1, x[col])
		}

		sum := 0.0
		for i := 1; i < k; i++ {
			sum += layout.A(coef, i)
		}
		a0 := kernel.FlushEps(1 - sum)
		if !kernel.IsFinite(a0) {
			return false
		}
		layout.SetA(coef, 0, a0)
		return true
	}
	return nfree, layout, solve
}

// termCoeff returns the coefficient of a_i in Σ_i [i^q - q·i^{q-1}·c_i] a_i,
// i.e. i^q - q*i^{q-1}*c_i, with the i=0, q>1 case (0^{q-1}=0) handled by
// ipow's convention that ipow(0,0)=1. The solver targets this sum equal
// to (-1)^q, not (-1)^{q-1} (see MultistepSolver's sign note above).
func termCoeff(i, q int, ci float64) float64 {
	return ipow(i, q) - float64(q)*ipow(i, q-1)*ci
}

func ipow(base, exp int) float64 {
	if exp < 0 {
		return 0
	}
	r := 1.0
	for k := 0; k < exp; k++ {
		r *= float64(base)
	}
	return r
}
