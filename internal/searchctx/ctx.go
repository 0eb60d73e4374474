// Package searchctx defines the shared optimization data model described in
// spec.md §3: the per-scheme search context (Ctx) and the running best
// solution (Best), plus the sampling-distribution enumeration (RType).
//
// Locking model: Ctx.min/Ctx.span and Best.JStar/Best.XStar are the only
// mutable, cross-goroutine-shared state. Best carries its own mutex (the
// "best-lock" from spec.md §5); Ctx's min/span are written only by the
// driver between iterations, when no worker goroutines are live, mirroring
// core.Graph's split between a read-mostly config section and a
// separately-locked mutable section.
package searchctx

import (
	"math"
	"sync"
)

// RType enumerates the per-variable sampling distribution. Only Uniform,
// BiasedZero, and BiasedOne participate in the Monte-Carlo draw (C4); the
// remaining values are reserved hooks named directly by spec.md §3.
type RType int

const (
	Uniform RType = iota
	BiasedZero
	BiasedOne
	Bottom
	Extreme
	Top
	Regular
	Orthogonal
)

// Solver maps a free-variable draw to a full coefficient vector. ok=false
// means the draw produced a non-finite or otherwise infeasible coefficient
// and must be scored as SolverInfeasible (J = +Inf) by the caller.
type Solver func(free []float64, coef []float64) (ok bool)

// Objective maps a filled coefficient vector to the scalar the optimizer
// minimizes (see spec.md §4.2).
type Objective func(coef []float64) float64

// Ctx describes one optimization problem exactly as spec.md §3 defines it.
// A Ctx is created once by the driver (or by a catalog entry, for the
// acopt inner problem) and then shared read-mostly across worker
// goroutines; only min/span are mutated between iterations.
type Ctx struct {
	NFree int // number of free variables
	Size  int // total coefficients in the scheme

	Min0  []float64 // initial lower bound, read-only after init
	Span0 []float64 // initial width, read-only after init
	Min   []float64 // current lower bound, contracted across iterations
	Span  []float64 // current width, contracted across iterations

	RType []RType // per-variable sampling distribution

	NSim   int     // MC samples per iteration (V^nfree)
	NClimb int     // hill-climbing rounds, already multiplied by NFree (see DESIGN.md)
	NIter  int     // outer iterations
	Shrink float64 // per-iteration contraction factor, in (eps, 1]
	Climb0 float64 // initial climb step as a fraction of Span0, in (eps, inf)

	Solver    Solver
	Objective Objective

	// RNGSource selects the per-thread PRNG backend the coordinator derives
	// streams from: "" (default) for math/rand, "xexp" for
	// golang.org/x/exp/rand (see internal/kernel.DeriveRNGFor). Read-only
	// after Ctx construction, like Min0/Span0.
	RNGSource string

	Best *Best // shared running best; multiple per-thread Ctx copies point at the same Best
}

// NewCtx builds a Ctx from the raw per-variable specs and performs the
// NClimb = nclimbings * nfree multiplication exactly once, resolving the
// spec's documented doubling ambiguity (see DESIGN.md "Open Question
// resolutions"): nclimbings is the configuration value, already NOT
// multiplied by nfree; NewCtx performs that multiplication here and nowhere
// else.
func NewCtx(nfree, size int, min0, span0 []float64, rtype []RType, nsim, nclimbings, niter int, shrink, climb0 float64) *Ctx {
	min := append([]float64(nil), min0...)
	span := append([]float64(nil), span0...)
	return &Ctx{
		NFree:  nfree,
		Size:   size,
		Min0:   append([]float64(nil), min0...),
		Span0:  append([]float64(nil), span0...),
		Min:    min,
		Span:   span,
		RType:  append([]RType(nil), rtype...),
		NSim:   nsim,
		NClimb: nclimbings * nfree,
		NIter:  niter,
		Shrink: shrink,
		Climb0: climb0,
		Best:   NewBest(nfree),
	}
}

// Clone returns a copy of ctx that shares Best, Min0/Span0 (read-only) and
// the Solver/Objective function values, but owns its own Min/Span/RType
// backing arrays per thread. This matches spec.md §4.6 step 3: per-thread
// Ctx copies share the Best and read-only config, each with its own
// scratch.
func (c *Ctx) Clone() *Ctx {
	cp := *c
	cp.Min = append([]float64(nil), c.Min...)
	cp.Span = append([]float64(nil), c.Span...)
	cp.RType = append([]RType(nil), c.RType...)
	return &cp
}

// Contract applies the driver-level iterative interval contraction from
// spec.md §4.4: span *= shrink, min = max(0, x* - span/2), centering the
// next search on the current best and lower-bounding at zero.
func (c *Ctx) Contract() {
	c.Best.mu.Lock()
	xstar := append([]float64(nil), c.Best.XStar...)
	c.Best.mu.Unlock()

	for j := 0; j < c.NFree; j++ {
		c.Span[j] *= c.Shrink
		m := xstar[j] - c.Span[j]/2
		if m < 0 {
			m = 0
		}
		c.Min[j] = m
	}
}

// Best holds the running optimization record shared across worker
// goroutines within a rank, guarded by mu (spec.md §3's "best-lock").
type Best struct {
	mu    sync.Mutex
	JStar float64
	XStar []float64
}

// NewBest returns a Best initialized to J*=+Inf and x* the zero vector of
// length nfree; callers typically overwrite XStar immediately
// via Reset once Min/Span are known (spec.md §4.6 step 4).
func NewBest(nfree int) *Best {
	return &Best{
		JStar: math.Inf(1),
		XStar: make([]float64, nfree),
	}
}

// Reset sets J*=+Inf and x*=midpoint(min,span), per spec.md §4.6 step 4 and
// §8's "N_iter=0 leaves Best.x* at the midpoint of the initial region".
func (b *Best) Reset(min, span []float64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.JStar = math.Inf(1)
	for j := range b.XStar {
		b.XStar[j] = min[j] + span[j]/2
	}
}

// Snapshot returns a coherent (JStar, XStar) pair under the best-lock.
func (b *Best) Snapshot() (float64, []float64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.JStar, append([]float64(nil), b.XStar...)
}

// UpdateIfBetter atomically replaces the running best when j < current J*,
// returning whether the update happened. This is the single serialization
// point spec.md §5 describes for cross-goroutine best mutation.
func (b *Best) UpdateIfBetter(j float64, x []float64) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if j < b.JStar {
		b.JStar = j
		if len(b.XStar) != len(x) {
			b.XStar = make([]float64, len(x))
		}
		copy(b.XStar, x)
		return true
	}
	return false
}

// ForceSet overwrites the best unconditionally, used by the parallel
// coordinator to install the cross-rank consensus value (spec.md §4.5
// step 3): "All ranks copy it into their local best."
func (b *Best) ForceSet(j float64, x []float64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.JStar = j
	if len(b.XStar) != len(x) {
		b.XStar = make([]float64, len(x))
	}
	copy(b.XStar, x)
}
