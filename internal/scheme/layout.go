// Package scheme is the coefficient catalog (spec.md §4.1): for each
// (family, steps, order, variant-flags) tuple it builds a searchctx.Ctx
// whose Solver/Objective pair implements that entry's closed-form or
// dense-solve coefficient derivation, ready to hand to the optimizer.
//
// Coefficient layouts are expressed as typed accessor methods
// (RKLayout, MultistepLayout) instead of the macro-indexed offsets
// (`t4(x)`, `b43(x)`) the original implementation used — spec.md §9's
// redesign note on macro-based coefficient indexing.
package scheme

// RKLayout describes the flat coefficient vector ("tb" in spec.md §3) for
// an s-stage RK scheme: node times t_1..t_s, the strictly-lower-triangular
// weight matrix b_{i,j} (i in [2,s], j in [0,i-1]), and, when Pair is set,
// one row of embedded weights e_{s,j} (j in [0,s-1]).
type RKLayout struct {
	S    int
	Pair bool

	bOff int
	eOff int
	size int
}

// NewRKLayout builds the layout for an s-stage scheme.
func NewRKLayout(s int, pair bool) RKLayout {
	bSize := 0
	for i := 2; i <= s; i++ {
		bSize += i
	}
	l := RKLayout{S: s, Pair: pair, bOff: s}
	pos := l.bOff + bSize
	if pair {
		l.eOff = pos
		pos += s
	}
	l.size = pos
	return l
}

// Size returns the total flat coefficient count for this layout.
func (l RKLayout) Size() int { return l.size }

// TIndex returns the flat index of node time t_i, i in [1, S].
func (l RKLayout) TIndex(i int) int { return i - 1 }

// T reads t_i from coef.
func (l RKLayout) T(coef []float64, i int) float64 { return coef[l.TIndex(i)] }

// SetT writes t_i into coef.
func (l RKLayout) SetT(coef []float64, i int, v float64) { coef[l.TIndex(i)] = v }

// rowStart returns the flat offset of row i's b-block (i in [2, S]).
func (l RKLayout) rowStart(i int) int {
	off := l.bOff
	for k := 2; k < i; k++ {
		off += k
	}
	return off
}

// BIndex returns the flat index of b_{i,j}, i in [2,S], j in [0,i-1].
func (l RKLayout) BIndex(i, j int) int { return l.rowStart(i) + j }

// B reads b_{i,j} from coef.
func (l RKLayout) B(coef []float64, i, j int) float64 { return coef[l.BIndex(i, j)] }

// SetB writes b_{i,j} into coef.
func (l RKLayout) SetB(coef []float64, i, j int, v float64) { coef[l.BIndex(i, j)] = v }

// EIndex returns the flat index of the embedded weight e_{S,j}, j in
// [0,S-1]. Only valid when l.Pair is true.
func (l RKLayout) EIndex(j int) int { return l.eOff + j }

// E reads e_{S,j} from coef.
func (l RKLayout) E(coef []float64, j int) float64 { return coef[l.EIndex(j)] }

// SetE writes e_{S,j} into coef.
func (l RKLayout) SetE(coef []float64, j int, v float64) { coef[l.EIndex(j)] = v }

// MultistepLayout describes the flat coefficient vector for a k-step
// linear multi-step scheme: positions 2i hold c_i, positions 2i+1 hold
// a_i, per spec.md §3; the implied b_i = a_i*c_i is not stored.
type MultistepLayout struct {
	K int
}

// NewMultistepLayout builds the layout for a k-step scheme.
func NewMultistepLayout(k int) MultistepLayout { return MultistepLayout{K: k} }

// Size returns the total flat coefficient count (2k).
func (l MultistepLayout) Size() int { return 2 * l.K }

// CIndex returns the flat index of c_i, i in [0, K).
func (l MultistepLayout) CIndex(i int) int { return 2 * i }

// AIndex returns the flat index of a_i, i in [0, K).
func (l MultistepLayout) AIndex(i int) int { return 2*i + 1 }

func (l MultistepLayout) C(coef []float64, i int) float64 { return coef[l.CIndex(i)] }
func (l MultistepLayout) A(coef []float64, i int) float64 { return coef[l.AIndex(i)] }

func (l MultistepLayout) SetC(coef []float64, i int, v float64) { coef[l.CIndex(i)] = v }
func (l MultistepLayout) SetA(coef []float64, i int, v float64) { coef[l.AIndex(i)] = v }

// B returns the implied b_i = a_i * c_i.
func (l MultistepLayout) B(coef []float64, i int) float64 {
	return l.A(coef, i) * l.C(coef, i)
}
