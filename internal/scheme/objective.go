package scheme

import (
	"math"

	"github.com/jotoba/odeopt/internal/acopt"
)

// rkFeasibilityPenalty sums the negative shortfall of every b_{ij} (and,
// for pair variants, every e_{ij}) per spec.md §4.2's "weights" tier,
// returning (20-S, true) when infeasible.
func rkFeasibilityPenalty(l RKLayout, coef []float64) (float64, bool) {
	sum := 0.0
	for i := 2; i <= l.S; i++ {
		for j := 0; j < i; j++ {
			if v := l.B(coef, i, j); v < 0 {
				sum += v
			}
		}
	}
	if l.Pair {
		for j := 0; j < l.S; j++ {
			if v := l.E(coef, j); v < 0 {
				sum += v
			}
		}
	}
	if sum < 0 {
		return 20 - sum, true
	}
	return 0, false
}

// RKObjective builds the objective for a non-SSP RK entry per spec.md
// §4.2: feasibility penalty, else CFL = 1/max(1, max_i t_i).
func RKObjective(l RKLayout) func(coef []float64) float64 {
	return func(coef []float64) float64 {
		if penalty, infeasible := rkFeasibilityPenalty(l, coef); infeasible {
			return penalty
		}
		maxT := 1.0
		for i := 1; i <= l.S; i++ {
			if t := l.T(coef, i); t > maxT {
				maxT = t
			}
		}
		return maxT
	}
}

// RKStrongObjective builds the objective for an SSP ("strong") RK entry:
// it first checks feasibility of the t-b block, then invokes the acopt
// inner optimizer over the Shu-Osher a-c decomposition and returns
// min(outerCFL, J_ac), per spec.md §4.2's "the final objective returned
// is min(penalty_or_cfl, J_ac)".
func RKStrongObjective(l RKLayout, acCfg acopt.Config) func(coef []float64) float64 {
	return func(coef []float64) float64 {
		if penalty, infeasible := rkFeasibilityPenalty(l, coef); infeasible {
			return penalty
		}

		t := make([]float64, l.S+1)
		maxT := 1.0
		for i := 1; i <= l.S; i++ {
			t[i] = l.T(coef, i)
			if t[i] > maxT {
				maxT = t[i]
			}
		}
		b := make([][]float64, l.S+1)
		for i := range b {
			b[i] = make([]float64, l.S+1)
		}
		for i := 2; i <= l.S; i++ {
			for j := 0; j < i; j++ {
				b[i][j] = l.B(coef, i, j)
			}
		}

		res := acopt.Run(l.S, t, b, acCfg)
		return math.Min(maxT, res.J)
	}
}

// MultistepObjective builds the objective for a multi-step entry per
// spec.md §4.2: feasibility penalty over a_i (weights must be
// non-negative), else CFL = 1/max_i c_i.
func MultistepObjective(l MultistepLayout) func(coef []float64) float64 {
	return func(coef []float64) float64 {
		sum := 0.0
		for i := 0; i < l.K; i++ {
			if v := l.A(coef, i); v < 0 {
				sum += v
			}
		}
		if sum < 0 {
			return 20 - sum
		}
		maxC := 0.0
		for i := 0; i < l.K; i++ {
			if v := l.C(coef, i); v > maxC {
				maxC = v
			}
		}
		if maxC <= 0 {
			return math.Inf(1)
		}
		return maxC
	}
}
