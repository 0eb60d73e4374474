package acopt

import (
	"github.com/jotoba/odeopt/internal/coordinator"
	"github.com/jotoba/odeopt/internal/searchctx"
)

// Result is the converged Shu-Osher decomposition for an s-stage strong-
// stability-preserving RK scheme: a, c are (s+1)x(s+1) dense matrices
// (rows 0 and 1 are unused placeholders so row i is stage i, matching the
// stage/column indexing of spec.md §4.3), and J is the converged objective (max(t_1,
// max c_ij), the reciprocal of the admissible CFL number).
type Result struct {
	A [][]float64
	C [][]float64
	J float64
}

// Config bundles the search-control knobs the outer driver already reads
// out of a request document (spec.md §6): these are reused verbatim for
// the inner acopt search rather than invented separately.
type Config struct {
	Seed       int64
	NSim       int
	NClimbings int
	NIter      int
	Shrink     float64
	Climb0     float64
}

// Run searches the strict lower-triangular c_{ij} free variables for an
// s-stage RK scheme with node times t and weight matrix b, deriving the
// matching a_{ij} by back-substitution at every trial draw (solve) and
// scoring the result with objective. It runs the same two-phase search as
// the outer catalog, serially and under no MPI, per spec.md §4.3 ("the
// inner optimization over a_ij, c_ij is serial ... and participates in no
// MPI").
func Run(s int, t []float64, b [][]float64, cfg Config) Result {
	lay := newLayout(s)
	order := freeOrder(s)
	nfree := len(order)

	min0 := make([]float64, nfree)
	span0 := make([]float64, nfree)
	rtype := make([]searchctx.RType, nfree)
	for k := range order {
		span0[k] = 2.0 // c_ij for SSP schemes typically lies in [0,2]
		rtype[k] = searchctx.Uniform
	}

	// cfg.NSim is the per-variable sample density V; a sweep draws V^nfree.
	nsim := 1
	for k := 0; k < nfree; k++ {
		nsim *= cfg.NSim
	}
	ctx := searchctx.NewCtx(nfree, lay.size, min0, span0, rtype,
		nsim, cfg.NClimbings, cfg.NIter, cfg.Shrink, cfg.Climb0)

	ctx.Solver = func(free, coef []float64) bool {
		a := newSquare(s + 1)
		c := newSquare(s + 1)
		for k, pair := range order {
			c[pair[0]][pair[1]] = free[k]
		}
		if !solve(t, b, a, c, s) {
			return false
		}
		lay.flatten(a, c, coef)
		return true
	}
	ctx.Objective = func(coef []float64) float64 {
		a, c := lay.unflatten(coef)
		return objective(t, a, c, s)
	}

	co := &coordinator.Coordinator{Ctx: ctx, Threads: 1, Rank: 0, WorldSize: 1, Seed: cfg.Seed}
	co.Run()

	j, xStar := ctx.Best.Snapshot()
	coef := make([]float64, lay.size)
	ctx.Solver(xStar, coef) // re-derive the full a,c at the converged free point
	a, c := lay.unflatten(coef)
	return Result{A: a, C: c, J: j}
}
