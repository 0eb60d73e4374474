package scheme

import (
	"testing"

	"github.com/jotoba/odeopt/internal/acopt"
	"github.com/stretchr/testify/require"
)

func defaultACConfig() acopt.Config {
	return acopt.Config{Seed: 7, NSim: 4, NClimbings: 2, NIter: 2, Shrink: 0.8, Climb0: 0.2}
}

// TestLookup_RKOrder2Family checks every supported RK order-2 stage
// count resolves to an RK entry with a positive free-variable count and
// coefficient size.
func TestLookup_RKOrder2Family(t *testing.T) {
	for s := 2; s <= 6; s++ {
		entry, err := Lookup(RungeKutta, s, 2, Flags{}, defaultACConfig())
		require.NoError(t, err, "s=%d", s)
		require.Equal(t, RungeKutta, entry.Family)
		require.Greater(t, entry.NFree, 0)
		require.Greater(t, entry.Size, 0)
	}
}

// TestLookup_RK33And44SpecializedForms checks the closed-form entries
// resolve distinctly from the general order-2 family.
func TestLookup_RK33And44SpecializedForms(t *testing.T) {
	e33, err := Lookup(RungeKutta, 3, 3, Flags{}, defaultACConfig())
	require.NoError(t, err)
	require.Equal(t, 2, e33.NFree)

	e44, err := Lookup(RungeKutta, 4, 4, Flags{}, defaultACConfig())
	require.NoError(t, err)
	require.Equal(t, 2, e44.NFree)
}

// TestLookup_StrongRKWiresAcopt checks a strong (SSP) RK entry's
// objective runs the inner acopt search and returns a finite value for a
// feasible draw.
func TestLookup_StrongRKWiresAcopt(t *testing.T) {
	entry, err := Lookup(RungeKutta, 3, 2, Flags{Strong: true}, defaultACConfig())
	require.NoError(t, err)

	// t1, t2, b21, b31: every derived weight is non-negative (b20 = 0.5,
	// b32 = 0.5, b30 = 0.5), so the objective reaches the acopt search.
	free := []float64{0.5, 1.0, 0.5, 0.0}
	require.Len(t, free, entry.NFree)
	coef := make([]float64, entry.Size)
	ok := entry.Solver(free, coef)
	require.True(t, ok)

	j := entry.Objective(coef)
	require.False(t, j != j) // not NaN
}

// TestLookup_UnknownMethodRejected checks unsupported tuples return
// ErrUnknownMethod, matching spec.md §7.
func TestLookup_UnknownMethodRejected(t *testing.T) {
	_, err := Lookup(RungeKutta, 3, 2, Flags{TimeAccuracy: true}, defaultACConfig())
	require.ErrorIs(t, err, ErrUnknownMethod)

	_, err = Lookup(Multistep, 3, 5, Flags{}, defaultACConfig())
	require.ErrorIs(t, err, ErrUnknownMethod)
}

// TestLookup_MultistepFamily checks a range of multi-step entries
// resolve successfully.
func TestLookup_MultistepFamily(t *testing.T) {
	entry, err := Lookup(Multistep, 4, 3, Flags{}, defaultACConfig())
	require.NoError(t, err)
	require.Equal(t, Multistep, entry.Family)
	require.Equal(t, 8, entry.Size) // 2*k
}

// TestPrinter_RKAssignmentForm checks the printer emits `name:value;`
// lines for every coefficient.
func TestPrinter_RKAssignmentForm(t *testing.T) {
	_, layout, solve := RKGeneralOrder2(2)
	coef := make([]float64, layout.Size())
	require.True(t, solve([]float64{1.0}, coef))
	lines := NewRKPrinter(layout)(coef)
	require.Len(t, lines, layout.Size())
	for _, l := range lines {
		require.Contains(t, l, ":")
		require.True(t, l[len(l)-1] == ';')
	}
}
