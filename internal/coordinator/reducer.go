// Package coordinator implements the two-tier parallel execution model from
// spec.md §4.5: goroutine fan-out/join within a rank, plus a pluggable
// cross-rank consensus step standing in for the original MPI
// all-to-master reduction.
//
// No MPI binding exists anywhere in the retrieved corpus, so the cross-rank
// exchange is expressed as a Reducer interface: LocalReducer is the R=1
// no-op spec.md §4.5 calls out ("If MPI is absent, R=1 and this step is a
// no-op"), and ChannelReducer simulates the all-to-master-then-broadcast
// consensus in-process for tests and for single-binary multi-rank runs.
// The rank-consensus shape (collect per-rank candidates, pick the unique
// minimum, broadcast it back) is grounded on the qscod consensus package's
// Set.best() (other_examples/dedis-tlc), generalized from a "best history"
// to a "best (J, x) pair".
package coordinator

import "sync"

// RankResult is the wire-level record exchanged during consensus: the
// objective value and the free-variable vector attaining it.
type RankResult struct {
	J float64
	X []float64
}

// Reducer performs one round of cross-rank consensus: given this rank's
// locally-best RankResult, it returns the globally-best RankResult after
// all ranks have contributed (spec.md §4.5 step 3).
type Reducer interface {
	Reduce(rank int, local RankResult) RankResult
}

// LocalReducer is the R=1 reducer: it returns the local result unchanged,
// exactly matching spec.md's "If MPI is absent, R=1 and this step is a
// no-op."
type LocalReducer struct{}

func (LocalReducer) Reduce(_ int, local RankResult) RankResult { return local }

// ChannelReducer simulates an MPI all-to-master-then-broadcast exchange
// in-process across worldSize participants using a generation-counted
// barrier. Every rank in [0, worldSize) must call Reduce exactly once per
// round; the call blocks until all ranks have arrived, at which point the
// rank with the minimum J is selected and broadcast back to every caller.
//
// This is the coordinator-level analogue of spec.md §9's note on the
// original MPI send loop's off-by-loop bug: this is new code, built around
// the correct per-rank index from the start.
type ChannelReducer struct {
	worldSize int

	mu      sync.Mutex
	cond    *sync.Cond
	arrived int
	results []RankResult
	best    RankResult
	gen     int
}

// NewChannelReducer returns a ChannelReducer for exactly worldSize ranks.
func NewChannelReducer(worldSize int) *ChannelReducer {
	r := &ChannelReducer{
		worldSize: worldSize,
		results:   make([]RankResult, worldSize),
	}
	r.cond = sync.NewCond(&r.mu)
	return r
}

// Reduce blocks until every rank in [0, worldSize) has submitted its local
// result for the current round, then returns the globally-minimal
// RankResult to all callers.
func (r *ChannelReducer) Reduce(rank int, local RankResult) RankResult {
	r.mu.Lock()
	myGen := r.gen
	r.results[rank] = local
	r.arrived++

	if r.arrived == r.worldSize {
		best := r.results[0]
		for _, res := range r.results[1:] {
			if res.J < best.J {
				best = res
			}
		}
		r.best = RankResult{J: best.J, X: append([]float64(nil), best.X...)}
		r.arrived = 0
		r.gen++
		r.cond.Broadcast()
	} else {
		for myGen == r.gen {
			r.cond.Wait()
		}
	}

	result := r.best
	r.mu.Unlock()
	return result
}
