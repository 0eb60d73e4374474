// Package acopt implements the RK a-c inner optimizer (spec.md §4.3): for
// strong-stability-preserving (SSP) RK schemes, it searches the strict
// lower-triangular Shu-Osher c_{ij} free variables and derives the
// matching a_{ij} by triangular back-substitution, then scores the result
// with the same CFL-style objective the outer RK path uses.
//
// It reuses internal/optimizer's two-phase search through an
// internal/coordinator.Coordinator configured with one thread and one rank
// (T=1, R=1, LocalReducer), per spec.md's "the inner optimization ... is
// serial ... and participates in no MPI".
package acopt

// layout precomputes the flat-coefficient offsets for an s-stage Shu-Osher
// block. Coefficients are stored stage-by-stage for i in [2, s]; each
// stage's block holds i entries of a_{i,*} (columns 0..i-1) followed by i
// entries of c_{i,*} (columns 0..i-1).
type layout struct {
	s       int
	offsets []int // offsets[i] = flat index where stage i's block begins
	size    int
}

func newLayout(s int) layout {
	offsets := make([]int, s+1)
	pos := 0
	for i := 2; i <= s; i++ {
		offsets[i] = pos
		pos += 2 * i
	}
	return layout{s: s, offsets: offsets, size: pos}
}

// NFree returns s(s-1)/2, the count of strict lower-triangular c_{ij} free
// variables (i in [2,s], j in [1,i-1]) per spec.md §4.3.
func NFree(s int) int {
	return s * (s - 1) / 2
}

func (l layout) aIndex(i, j int) int { return l.offsets[i] + j }
func (l layout) cIndex(i, j int) int { return l.offsets[i] + i + j }

// unflatten decodes a coef vector into s+1 x s+1 dense a, c matrices
// (rows/cols 0 and 1 mostly unused placeholders so 1-based stage/column
// indices can be used directly, matching the formulas in spec.md §4.3).
func (l layout) unflatten(coef []float64) (a, c [][]float64) {
	a = newSquare(l.s + 1)
	c = newSquare(l.s + 1)
	for i := 2; i <= l.s; i++ {
		for j := 0; j < i; j++ {
			a[i][j] = coef[l.aIndex(i, j)]
			c[i][j] = coef[l.cIndex(i, j)]
		}
	}
	return a, c
}

func (l layout) flatten(a, c [][]float64, coef []float64) {
	for i := 2; i <= l.s; i++ {
		for j := 0; j < i; j++ {
			coef[l.aIndex(i, j)] = a[i][j]
			coef[l.cIndex(i, j)] = c[i][j]
		}
	}
}

// freeOrder returns, in the order the free vector is consumed, the (i, j)
// column pairs for the strict lower-triangular c_{ij} variables: i in
// [2,s], j in [1, i-1].
func freeOrder(s int) [][2]int {
	order := make([][2]int, 0, NFree(s))
	for i := 2; i <= s; i++ {
		for j := 1; j <= i-1; j++ {
			order = append(order, [2]int{i, j})
		}
	}
	return order
}

func newSquare(n int) [][]float64 {
	m := make([][]float64, n)
	for i := range m {
		m[i] = make([]float64, n)
	}
	return m
}
