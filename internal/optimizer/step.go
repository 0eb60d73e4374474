package optimizer

import (
	"github.com/jotoba/odeopt/internal/kernel"
	"github.com/jotoba/odeopt/internal/searchctx"
)

// Step runs one full optimization step for a single (rank, thread) slot:
// Phase A (Monte-Carlo sweep over this thread's index range) followed by
// Phase B (hill-climbing). It mutates ctx.Best in place; the parallel
// coordinator is responsible for the MPI-style consensus and interval
// contraction that bracket repeated calls to Step (spec.md §4.5).
func Step(ctx *searchctx.Ctx, rng kernel.Source, worldSize, threadsPerRank, rank, tid int) {
	i0, i1 := ThreadRange(ctx.NSim, worldSize, threadsPerRank, rank, tid)
	MonteCarlo(ctx, rng, i0, i1)
	HillClimb(ctx)
}

// StepSerial runs Step as a single-rank, single-thread search (R=1, T=1,
// rank 0, thread 0).
func StepSerial(ctx *searchctx.Ctx, rng kernel.Source) {
	Step(ctx, rng, 1, 1, 0, 0)
}
