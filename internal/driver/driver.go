// Package driver wires a parsed request (internal/config) to a catalog
// entry (internal/scheme), runs the outer parallel search
// (internal/coordinator), and writes the converged coefficients plus
// verification identities (internal/artifact) — spec.md §4.6's numbered
// driver lifecycle.
package driver

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/jotoba/odeopt/internal/acopt"
	"github.com/jotoba/odeopt/internal/artifact"
	"github.com/jotoba/odeopt/internal/config"
	"github.com/jotoba/odeopt/internal/coordinator"
	"github.com/jotoba/odeopt/internal/scheme"
	"github.com/jotoba/odeopt/internal/searchctx"
)

// Sentinel errors for the taxonomy spec.md §7 names that are not already
// raised by internal/config or internal/scheme.
var (
	ErrIOOpenFail = errors.New("driver: could not create output artifact")
)

// Options carries the run-time knobs cmd/odeopt reads from its flags
// (spec.md §6): thread count and PRNG master seed. Rank/WorldSize are
// fixed at single-process defaults — this module has no MPI binding
// (see internal/coordinator's Reducer doc), so a driver Run always
// executes as the sole rank.
type Options struct {
	Threads int
	Seed    int64

	// Trace, if non-nil, receives one "iteration J*" line after each outer
	// iteration: the iteration index and the best objective so far.
	// Individual MC draws and hill-climbing probes are not written.
	Trace io.Writer
}

// Result is what a converged Run hands back to the CLI layer: the final
// objective, the rendered artifact text, and the filename spec.md §4.1's
// naming convention assigns it.
type Result struct {
	JStar        float64
	ArtifactName string
	ArtifactText string
}

// Run executes the full lifecycle for one request: resolve the catalog
// entry, build the Ctx, drive the coordinator for NIterations, then
// render the artifact from the converged best.
func Run(req *config.Request, opts Options) (*Result, error) {
	family, err := familyFromString(req.Family)
	if err != nil {
		return nil, err
	}

	acCfg := acopt.Config{Seed: opts.Seed}
	if req.AC != nil {
		acCfg.NSim = req.AC.NSimulations
		acCfg.NClimbings = req.AC.NClimbings
		acCfg.NIter = req.AC.NIterations
		acCfg.Shrink = req.AC.ConvergenceFactor
		acCfg.Climb0 = req.AC.ClimbingFactor
	}

	flags := scheme.Flags{Strong: req.Strong, Pair: req.Pair, TimeAccuracy: req.TimeAccuracy}
	entry, err := scheme.Lookup(family, req.Steps, req.Order, flags, acCfg)
	if err != nil {
		return nil, err
	}

	if len(req.Variables) != entry.NFree {
		return nil, fmt.Errorf("%w: request supplies %d variables, entry needs %d", config.ErrConfigBadValue, len(req.Variables), entry.NFree)
	}

	ctx := buildCtx(entry, req)

	threads := opts.Threads
	if threads < 1 {
		threads = 1
	}
	co := &coordinator.Coordinator{
		Ctx:       ctx,
		Threads:   threads,
		Rank:      0,
		WorldSize: 1,
		Seed:      opts.Seed,
	}
	ctx.Best.Reset(ctx.Min, ctx.Span)
	for i := 0; i < ctx.NIter; i++ {
		co.RunIteration()
		if opts.Trace != nil {
			j, _ := ctx.Best.Snapshot()
			fmt.Fprintf(opts.Trace, "%d %.19e\n", i, j)
		}
	}

	jStar, xStar := ctx.Best.Snapshot()
	coef := make([]float64, entry.Size)
	if !entry.Solver(xStar, coef) {
		// The converged free-variable point failed to re-derive a feasible
		// coefficient vector: spec.md §7 treats this as SolverInfeasible,
		// surfaced here because it would otherwise silently emit garbage.
		return nil, fmt.Errorf("driver: converged point %v is infeasible at re-solve", xStar)
	}

	lines := entry.Print(coef)
	identities := identitiesFor(family, req)
	doc := artifact.Document{Assignments: lines, Identities: identities}

	var buf bytes.Buffer
	if err := artifact.Write(&buf, doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIOOpenFail, err)
	}

	return &Result{
		JStar:        jStar,
		ArtifactName: artifactName(family, req),
		ArtifactText: buf.String(),
	}, nil
}

func familyFromString(s string) (scheme.Family, error) {
	switch s {
	case "Runge-Kutta":
		return scheme.RungeKutta, nil
	case "steps":
		return scheme.Multistep, nil
	default:
		return 0, fmt.Errorf("%w: unrecognized request root %q", config.ErrConfigBadValue, s)
	}
}

func buildCtx(entry *scheme.Entry, req *config.Request) *searchctx.Ctx {
	min0 := make([]float64, entry.NFree)
	span0 := make([]float64, entry.NFree)
	rtype := make([]searchctx.RType, entry.NFree)
	for i, v := range req.Variables {
		min0[i] = v.Minimum
		span0[i] = v.Interval
		rtype[i] = v.Type
	}
	// nsimulations is the per-variable sample density V; a sweep draws V^nfree.
	nsim := 1
	for j := 0; j < entry.NFree; j++ {
		nsim *= req.NSimulations
	}
	ctx := searchctx.NewCtx(entry.NFree, entry.Size, min0, span0, rtype,
		nsim, req.NClimbings, req.NIterations, req.ConvergenceFactor, req.ClimbingFactor)
	ctx.Solver = entry.Solver
	ctx.Objective = entry.Objective
	ctx.RNGSource = req.RNGSource
	return ctx
}

func artifactName(family scheme.Family, req *config.Request) string {
	yn := func(b bool) int {
		if b {
			return 1
		}
		return 0
	}
	if family == scheme.RungeKutta {
		return fmt.Sprintf("rk-%d-%d-%d-%d-%d.mc", req.Steps, req.Order, yn(req.TimeAccuracy), yn(req.Pair), yn(req.Strong))
	}
	return fmt.Sprintf("steps-%d-%d.mc", req.Steps, req.Order)
}

func identitiesFor(family scheme.Family, req *config.Request) []string {
	if family == scheme.RungeKutta {
		lines := artifact.RKIdentities(req.Steps, req.Steps, req.Order, "b")
		if req.Pair {
			lines = append(lines, artifact.RKIdentities(req.Steps, req.Steps-1, req.Order-1, "e")...)
		}
		return lines
	}
	return artifact.MultistepIdentities(req.Steps, req.Order)
}
