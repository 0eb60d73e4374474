package optimizer

import (
	"math"

	"github.com/jotoba/odeopt/internal/searchctx"
)

// HillClimb runs Phase B (spec.md §4.4) for ctx.NClimb rounds (already
// multiplied by NFree at Ctx construction time, see DESIGN.md). It starts
// from the current shared best and perturbs each coordinate independently
// by an adaptive step h, growing h by 1.2x after any improving sweep and
// shrinking it by 0.5x otherwise — mirroring tsp/two_opt.go's
// track-whether-any-move-improved bookkeeping, generalized to a
// multi-dimensional step vector.
func HillClimb(ctx *searchctx.Ctx) {
	_, v := ctx.Best.Snapshot()
	h := make([]float64, ctx.NFree)
	for j := 0; j < ctx.NFree; j++ {
		h[j] = ctx.Span0[j] * ctx.Climb0
	}

	coef := make([]float64, ctx.Size)
	trial := make([]float64, ctx.NFree)
	base := make([]float64, ctx.NFree)

	for round := 0; round < ctx.NClimb; round++ {
		anyImproved := false
		vJ, _ := ctx.Best.Snapshot()

		// base is fixed for the whole round: both trials for every
		// coordinate probe from the round's starting point, matching
		// original_source/optimize.c's optimize_step (Jacobi-style — a
		// coordinate's improving move is folded into v but never feeds
		// the next coordinate's own +/- probes until the round is over).
		copy(base, v)

		for j := 0; j < ctx.NFree; j++ {
			copy(trial, base)

			// Trial 1: v_j + h[j].
			trial[j] = base[j] + h[j]
			if jPlus := evaluate(ctx, trial, coef); jPlus < vJ {
				if ctx.Best.UpdateIfBetter(jPlus, trial) {
					vJ = jPlus
					v[j] = trial[j]
					anyImproved = true
				}
			}

			// Trial 2: max(0, v_j - h[j]).
			trial[j] = math.Max(0, base[j]-h[j])
			if jMinus := evaluate(ctx, trial, coef); jMinus < vJ {
				if ctx.Best.UpdateIfBetter(jMinus, trial) {
					vJ = jMinus
					v[j] = trial[j]
					anyImproved = true
				}
			}
		}

		if anyImproved {
			for j := range h {
				h[j] *= 1.2
			}
		} else {
			for j := range h {
				h[j] *= 0.5
			}
		}
	}
}
