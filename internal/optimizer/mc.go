// Package optimizer implements the two-phase derivative-free search from
// spec.md §4.4: a Monte-Carlo sweep (Phase A) followed by axis-parallel
// hill-climbing with adaptive step control (Phase B). It operates on a
// searchctx.Ctx and mutates the shared searchctx.Best.
//
// The local-search shape (prefetch into scratch, accept-if-improves, track
// whether any move improved the sweep) is grounded on tsp/two_opt.go's
// deterministic first-improvement loop, generalized from tour permutations
// to continuous free-variable vectors.
package optimizer

import (
	"math"

	"github.com/jotoba/odeopt/internal/kernel"
	"github.com/jotoba/odeopt/internal/searchctx"
)

// ThreadRange computes the half-open-to-inclusive sample index range
// [i0, i1] assigned to (rank, tid) out of worldSize ranks and
// threadsPerRank threads, per spec.md §4.4:
//
//	i0 = NSim * (rank*T + tid)     / (R*T)
//	i1 = NSim * (rank*T + tid + 1) / (R*T) - 1
//
// Complexity: O(1).
func ThreadRange(nsim, worldSize, threadsPerRank, rank, tid int) (i0, i1 int) {
	rt := worldSize * threadsPerRank
	idx := rank*threadsPerRank + tid
	i0 = nsim * idx / rt
	i1 = nsim*(idx+1)/rt - 1
	return i0, i1
}

// drawFree fills free[j] for every j using ctx.RType[j]'s distribution over
// [ctx.Min[j], ctx.Min[j]+ctx.Span[j]].
func drawFree(ctx *searchctx.Ctx, rng kernel.Source, free []float64) {
	for j := 0; j < ctx.NFree; j++ {
		var u float64
		switch ctx.RType[j] {
		case searchctx.BiasedZero:
			u = kernel.BiasedZero(rng)
		case searchctx.BiasedOne:
			u = kernel.BiasedOne(rng)
		default:
			// Uniform and the reserved hooks (Bottom/Extreme/Top/Regular/
			// Orthogonal) all draw uniformly per spec.md §3: "Only uniform,
			// biased-0, biased-1 participate in the core MC draw; the
			// others are reserved hooks."
			u = kernel.Uniform(rng)
		}
		free[j] = kernel.InRange(u, ctx.Min[j], ctx.Span[j])
	}
}

// evaluate solves and scores a single free-variable draw. It returns +Inf
// when the solver reports infeasibility (spec.md §4.2/§7: SolverInfeasible
// is absorbed here, never propagated as an error).
func evaluate(ctx *searchctx.Ctx, free, coef []float64) float64 {
	if !ctx.Solver(free, coef) {
		return math.Inf(1)
	}
	return ctx.Objective(coef)
}

// MonteCarlo runs Phase A over the sample index range [i0, i1] assigned to
// this thread. It updates the thread-local best (jLocal, xLocal) and also
// pushes improving draws into the shared Best under the best-lock. The
// thread-local best is returned so a caller can inspect it directly.
func MonteCarlo(ctx *searchctx.Ctx, rng kernel.Source, i0, i1 int) (jLocal float64, xLocal []float64) {
	free := make([]float64, ctx.NFree)
	coef := make([]float64, ctx.Size)
	jLocal = math.Inf(1)
	xLocal = make([]float64, ctx.NFree)

	for i := i0; i <= i1; i++ {
		drawFree(ctx, rng, free)
		j := evaluate(ctx, free, coef)
		if j < jLocal {
			jLocal = j
			copy(xLocal, free)
		}
		ctx.Best.UpdateIfBetter(j, free)
	}
	return jLocal, xLocal
}
