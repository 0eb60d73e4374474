package scheme

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestRKGeneralOrder2_RowSumAndFinalTime checks spec.md §8's core RK
// invariants for every stage count the general order-2 family supports:
// Σ_j b_{ij} = t_i and t_s = 1, for an arbitrary feasible free draw.
func TestRKGeneralOrder2_RowSumAndFinalTime(t *testing.T) {
	for s := 2; s <= 6; s++ {
		nfree, layout, solve := RKGeneralOrder2(s)
		free := make([]float64, nfree)
		for i := range free {
			free[i] = 0.3 + 0.05*float64(i)
		}
		coef := make([]float64, layout.Size())
		ok := solve(free, coef)
		require.True(t, ok, "s=%d", s)

		require.InDelta(t, 1.0, layout.T(coef, s), 1e-12, "s=%d", s)
		for i := 2; i <= s; i++ {
			sum := 0.0
			for j := 0; j < i; j++ {
				sum += layout.B(coef, i, j)
			}
			require.InDelta(t, layout.T(coef, i), sum, 1e-9, "s=%d row=%d", s, i)
		}
	}
}

// TestRKGeneralOrder2_TwoStageMatchesScenario1 checks spec.md §8 scenario
// 1's expected point once the free t_1 value hits 1.
func TestRKGeneralOrder2_TwoStageMatchesScenario1(t *testing.T) {
	_, layout, solve := RKGeneralOrder2(2)
	coef := make([]float64, layout.Size())
	ok := solve([]float64{1.0}, coef)
	require.True(t, ok)
	require.InDelta(t, 1.0, layout.T(coef, 1), 1e-12)
	require.InDelta(t, 1.0, layout.T(coef, 2), 1e-12)
	require.InDelta(t, 0.5, layout.B(coef, 2, 1), 1e-12)
	require.InDelta(t, 0.5, layout.B(coef, 2, 0), 1e-12)
}

// TestRK33_SatisfiesOrderConditions checks the closed-form 3-stage
// order-3 solver reproduces the order conditions
// original_source/rk_3_3.c's tb_print_maxima_3_3 asserts reduce to zero.
func TestRK33_SatisfiesOrderConditions(t *testing.T) {
	_, layout, solve := RK33()
	coef := make([]float64, layout.Size())
	ok := solve([]float64{0.3, 0.7}, coef)
	require.True(t, ok)

	b30, b31, b32 := layout.B(coef, 3, 0), layout.B(coef, 3, 1), layout.B(coef, 3, 2)
	t1, t2 := layout.T(coef, 1), layout.T(coef, 2)
	b21 := layout.B(coef, 2, 1)

	require.InDelta(t, 1.0, b30+b31+b32, 1e-9)
	require.InDelta(t, 0.5, b31*t1+b32*t2, 1e-9)
	require.InDelta(t, 1.0/3, b31*t1*t1+b32*t2*t2, 1e-9)
	require.InDelta(t, 1.0/6, b32*b21*t1, 1e-9)
}

// TestRK44_ClassicalPointSatisfiesRowSum checks that the closed-form 4-4
// solver, near the classical RK4 point (t1=t2=1/2), produces a feasible,
// row-sum-consistent coefficient vector (spec.md §8 scenario 5).
func TestRK44_ClassicalPointSatisfiesRowSum(t *testing.T) {
	_, layout, solve := RK44()
	coef := make([]float64, layout.Size())
	ok := solve([]float64{0.5, 0.5}, coef)
	require.True(t, ok)
	for i := 2; i <= 4; i++ {
		sum := 0.0
		for j := 0; j < i; j++ {
			sum += layout.B(coef, i, j)
		}
		require.InDelta(t, layout.T(coef, i), sum, 1e-9, "row=%d", i)
	}
	require.InDelta(t, 1.0/6, layout.B(coef, 4, 0), 1e-9)
	require.InDelta(t, 1.0/3, layout.B(coef, 4, 1), 1e-9)
	require.InDelta(t, 1.0/3, layout.B(coef, 4, 2), 1e-9)
	require.InDelta(t, 1.0/6, layout.B(coef, 4, 3), 1e-9)
}

// TestRKDenseOrder_RowSumHolds checks the dense-solve RK families (5-4,
// 6-3, 6-4) still satisfy the row-sum invariant after a feasible draw.
func TestRKDenseOrder_RowSumHolds(t *testing.T) {
	cases := []struct{ s, p, n int }{{5, 4, 3}, {6, 3, 3}, {6, 4, 4}}
	for _, c := range cases {
		nfree, layout, solve := RKDenseOrder(c.s, c.p, c.n)
		free := make([]float64, nfree)
		for i := range free {
			free[i] = 0.2 + 0.03*float64(i)
		}
		coef := make([]float64, layout.Size())
		ok := solve(free, coef)
		if !ok {
			continue // a degenerate draw is an acceptable SolverInfeasible outcome
		}
		for i := 2; i <= c.s; i++ {
			sum := 0.0
			for j := 0; j < i; j++ {
				sum += layout.B(coef, i, j)
			}
			require.InDelta(t, layout.T(coef, i), sum, 1e-6, "s=%d row=%d", c.s, i)
		}
	}
}

// TestRKPairExtra_EmbeddedWeightsSumToOne checks spec.md §3's pair
// invariant directly.
func TestRKPairExtra_EmbeddedWeightsSumToOne(t *testing.T) {
	baseFree, base, baseSolve := RKGeneralOrder2(4)
	_ = base
	extra, layout, solve := RKPairExtra(4, baseSolve)
	free := make([]float64, 0, baseFree+extra)
	for i := 0; i < baseFree+extra; i++ {
		free = append(free, 0.3+0.05*float64(i))
	}
	coef := make([]float64, layout.Size())
	ok := solve(free, coef)
	require.True(t, ok)
	sum := 0.0
	for j := 0; j < 4; j++ {
		sum += layout.E(coef, j)
	}
	require.InDelta(t, 1.0, sum, 1e-9)
}

// TestRKObjective_InfeasibleDrawPenalized checks the feasibility tier of
// the non-SSP RK objective fires on a negative weight.
func TestRKObjective_InfeasibleDrawPenalized(t *testing.T) {
	layout := NewRKLayout(2, false)
	coef := make([]float64, layout.Size())
	layout.SetT(coef, 1, 1)
	layout.SetT(coef, 2, 1)
	layout.SetB(coef, 2, 1, -0.3)
	layout.SetB(coef, 2, 0, 1.3)
	obj := RKObjective(layout)
	j := obj(coef)
	require.InDelta(t, 20.3, j, 1e-9)
}

// TestRKObjective_FeasibleReturnsMaxT checks the stability-scalar tier.
func TestRKObjective_FeasibleReturnsMaxT(t *testing.T) {
	layout := NewRKLayout(2, false)
	coef := make([]float64, layout.Size())
	layout.SetT(coef, 1, 1.3)
	layout.SetT(coef, 2, 1)
	layout.SetB(coef, 2, 1, 0.5)
	layout.SetB(coef, 2, 0, 0.5)
	obj := RKObjective(layout)
	require.InDelta(t, 1.3, obj(coef), 1e-12)
	require.False(t, math.IsInf(obj(coef), 0))
}
