package scheme

import (
	"errors"
	"fmt"

	"github.com/jotoba/odeopt/internal/acopt"
	"github.com/jotoba/odeopt/internal/searchctx"
)

// ErrUnknownMethod is returned by Lookup when no catalog entry matches
// the requested (family, steps, order, flags) tuple, mapping to
// spec.md §7's UnknownMethod error kind.
var ErrUnknownMethod = errors.New("scheme: unknown method")

// Family enumerates the two scheme families spec.md §1 names.
type Family int

const (
	RungeKutta Family = iota
	Multistep
)

// Flags bundles the RK variant flags from spec.md §3; ignored for
// Multistep lookups.
type Flags struct {
	Strong       bool
	Pair         bool
	TimeAccuracy bool
}

// Entry is one catalog row: the free-variable count, total coefficient
// count, and the solver/objective pair a Ctx needs (spec.md §4.1).
type Entry struct {
	Family Family
	Steps  int
	Order  int
	Flags  Flags

	NFree int
	Size  int

	Solver    searchctx.Solver
	Objective searchctx.Objective
	Print     Printer
}

// Lookup resolves a catalog entry for the requested tuple, or
// ErrUnknownMethod if unsupported. acCfg is only consulted for
// strong (SSP) RK entries, which delegate their inner a-c search to
// internal/acopt.
func Lookup(family Family, steps, order int, flags Flags, acCfg acopt.Config) (*Entry, error) {
	switch family {
	case RungeKutta:
		return lookupRK(steps, order, flags, acCfg)
	case Multistep:
		return lookupMultistep(steps, order)
	default:
		return nil, fmt.Errorf("%w: family %d", ErrUnknownMethod, family)
	}
}

func lookupRK(steps, order int, flags Flags, acCfg acopt.Config) (*Entry, error) {
	if flags.TimeAccuracy {
		// Generalizing "one order higher for time-only right-hand sides"
		// beyond the order-2 family is out of scope for this catalog
		// (no original_source closed form exists past rk_2_2t/rk_3_2t
		// for every stage count); reject rather than fabricate.
		return nil, fmt.Errorf("%w: time-accuracy variant unsupported for steps=%d order=%d", ErrUnknownMethod, steps, order)
	}

	var nfree, size int
	var layout RKLayout
	var solverFn func(free, coef []float64) bool

	switch {
	case steps == 3 && order == 3 && !flags.Strong:
		nfree, layout, solverFn = RK33()
	case steps == 4 && order == 4 && !flags.Strong:
		nfree, layout, solverFn = RK44()
	case order == 2 && steps >= 2 && steps <= 6:
		nfree, layout, solverFn = RKGeneralOrder2(steps)
	case (steps == 5 && order == 4) || (steps == 6 && order == 3):
		nfree, layout, solverFn = RKDenseOrder(steps, order, 3)
	case steps == 6 && order == 4:
		nfree, layout, solverFn = RKDenseOrder(steps, order, 4)
	default:
		return nil, fmt.Errorf("%w: RK steps=%d order=%d strong=%v", ErrUnknownMethod, steps, order, flags.Strong)
	}

	if flags.Pair {
		extra, pairLayout, pairSolve := RKPairExtra(steps, solverFn)
		nfree += extra
		layout = pairLayout
		solverFn = pairSolve
	}
	size = layout.Size()

	var objective func(coef []float64) float64
	if flags.Strong {
		objective = RKStrongObjective(layout, acCfg)
	} else {
		objective = RKObjective(layout)
	}

	return &Entry{
		Family:    RungeKutta,
		Steps:     steps,
		Order:     order,
		Flags:     flags,
		NFree:     nfree,
		Size:      size,
		Solver:    solverFn,
		Objective: objective,
		Print:     NewRKPrinter(layout),
	}, nil
}

func lookupMultistep(steps, order int) (*Entry, error) {
	if order < 1 || order > steps-1 {
		return nil, fmt.Errorf("%w: multistep steps=%d order=%d", ErrUnknownMethod, steps, order)
	}
	nfree, layout, solverFn := MultistepSolver(steps, order)
	return &Entry{
		Family:    Multistep,
		Steps:     steps,
		Order:     order,
		NFree:     nfree,
		Size:      layout.Size(),
		Solver:    solverFn,
		Objective: MultistepObjective(layout),
		Print:     NewMultistepPrinter(layout),
	}, nil
}
