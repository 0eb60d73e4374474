package coordinator_test

import (
	"sync"
	"testing"

	"github.com/jotoba/odeopt/internal/coordinator"
	"github.com/jotoba/odeopt/internal/searchctx"
	"github.com/stretchr/testify/require"
)

func bowlCtx() *searchctx.Ctx {
	target := []float64{0.42}
	ctx := searchctx.NewCtx(1, 1, []float64{0}, []float64{1},
		[]searchctx.RType{searchctx.Uniform}, 8, 6, 1, 0.8, 0.2)
	ctx.Solver = func(free, coef []float64) bool {
		copy(coef, free)
		return true
	}
	ctx.Objective = func(coef []float64) float64 {
		d := coef[0] - target[0]
		return d * d
	}
	return ctx
}

// TestRunIteration_MonotonicBest checks that J* never worsens across
// iterations, per spec.md §8.
func TestRunIteration_MonotonicBest(t *testing.T) {
	ctx := bowlCtx()
	ctx.NIter = 1
	co := &coordinator.Coordinator{Ctx: ctx, Threads: 3, Rank: 0, WorldSize: 1, Seed: 7}
	ctx.Best.Reset(ctx.Min, ctx.Span)

	prev, _ := ctx.Best.Snapshot()
	for i := 0; i < 8; i++ {
		co.RunIteration()
		cur, _ := ctx.Best.Snapshot()
		require.LessOrEqual(t, cur, prev)
		prev = cur
	}
}

// TestChannelReducer_TwoRanksAgreeOnMinimum checks that a two-rank,
// two-thread consensus round converges to bit-identical (J, x) on both
// ranks, matching spec.md §8 scenario 6.
func TestChannelReducer_TwoRanksAgreeOnMinimum(t *testing.T) {
	const world = 2
	reducer := coordinator.NewChannelReducer(world)

	ctxA := bowlCtx()
	ctxB := bowlCtx()
	ctxA.NIter, ctxB.NIter = 1, 1
	ctxA.Best.Reset(ctxA.Min, ctxA.Span)
	ctxB.Best.Reset(ctxB.Min, ctxB.Span)

	coA := &coordinator.Coordinator{Ctx: ctxA, Threads: 2, Rank: 0, WorldSize: world, Reducer: reducer, Seed: 7}
	coB := &coordinator.Coordinator{Ctx: ctxB, Threads: 2, Rank: 1, WorldSize: world, Reducer: reducer, Seed: 7}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() { defer wg.Done(); coA.RunIteration() }()
	go func() { defer wg.Done(); coB.RunIteration() }()
	wg.Wait()

	jA, xA := ctxA.Best.Snapshot()
	jB, xB := ctxB.Best.Snapshot()
	require.Equal(t, jA, jB, "both ranks must agree on J* after consensus")
	require.Equal(t, xA, xB, "both ranks must agree on x* after consensus")
}

// TestRun_DeterministicForFixedSeed checks T=1,R=1 determinism per
// spec.md §8.
func TestRun_DeterministicForFixedSeed(t *testing.T) {
	run := func() (float64, []float64) {
		ctx := bowlCtx()
		co := &coordinator.Coordinator{Ctx: ctx, Threads: 1, Rank: 0, WorldSize: 1, Seed: 7}
		co.Run()
		return ctx.Best.Snapshot()
	}
	j1, x1 := run()
	j2, x2 := run()
	require.Equal(t, j1, j2)
	require.Equal(t, x1, x2)
}

// TestRun_ZeroIterationsLeavesMidpoint checks spec.md §8's boundary case:
// N_iter=0 leaves Best.J*=+Inf and Best.x* at the initial midpoint.
func TestRun_ZeroIterationsLeavesMidpoint(t *testing.T) {
	ctx := bowlCtx()
	ctx.NIter = 0
	co := &coordinator.Coordinator{Ctx: ctx, Threads: 1, Rank: 0, WorldSize: 1, Seed: 7}
	co.Run()
	j, x := ctx.Best.Snapshot()
	require.True(t, j > 1e300)
	require.InDelta(t, 0.5, x[0], 1e-12)
}
