package coordinator

import (
	"sync"

	"github.com/jotoba/odeopt/internal/kernel"
	"github.com/jotoba/odeopt/internal/optimizer"
	"github.com/jotoba/odeopt/internal/searchctx"
)

// Coordinator runs one rank's share of the outer optimization loop
// (spec.md §4.5): per iteration it fans out Threads-1 worker goroutines
// (the main goroutine runs one Step inline, matching "When T=1 the main
// thread runs the step inline"), joins them, performs cross-rank consensus
// via Reducer, then applies the driver-level interval contraction.
type Coordinator struct {
	Ctx       *searchctx.Ctx
	Threads   int
	Rank      int
	WorldSize int
	Reducer   Reducer
	Seed      int64
}

// RunIteration executes exactly one outer iteration: fan-out/join, MPI-style
// consensus, interval contraction.
func (c *Coordinator) RunIteration() {
	var wg sync.WaitGroup
	for tid := 0; tid < c.Threads; tid++ {
		stream := uint64(c.Rank*c.Threads + tid)
		threadCtx := c.Ctx.Clone()
		rng := kernel.DeriveRNGFor(c.Seed, stream, c.Ctx.RNGSource)

		if tid == c.Threads-1 {
			// Main goroutine runs the last slot inline; when Threads==1
			// this is the only slot and no goroutine is spawned at all.
			optimizer.Step(threadCtx, rng, c.WorldSize, c.Threads, c.Rank, tid)
			continue
		}

		wg.Add(1)
		go func(ctx *searchctx.Ctx, rng kernel.Source, tid int) {
			defer wg.Done()
			optimizer.Step(ctx, rng, c.WorldSize, c.Threads, c.Rank, tid)
		}(threadCtx, rng, tid)
	}
	wg.Wait()

	j, x := c.Ctx.Best.Snapshot()
	reducer := c.Reducer
	if reducer == nil {
		reducer = LocalReducer{}
	}
	consensus := reducer.Reduce(c.Rank, RankResult{J: j, X: x})
	c.Ctx.Best.ForceSet(consensus.J, consensus.X)

	c.Ctx.Contract()
}

// Run executes Ctx.NIter iterations, initializing Best beforehand per
// spec.md §4.6 step 4.
func (c *Coordinator) Run() {
	c.Ctx.Best.Reset(c.Ctx.Min, c.Ctx.Span)
	for i := 0; i < c.Ctx.NIter; i++ {
		c.RunIteration()
	}
}
