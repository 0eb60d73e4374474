package scheme

import "fmt"

// Printer serializes a filled coefficient vector in the assignment form
// `name:value;` spec.md §4.1 specifies, one line per coefficient in
// scheme order.
type Printer func(coef []float64) []string

// NewRKPrinter builds the printer for an RK layout: t_i, then each row's
// b_{ij} in column order, then (if Pair) the e_{S,j} row.
func NewRKPrinter(l RKLayout) Printer {
	return func(coef []float64) []string {
		lines := make([]string, 0, l.Size())
		for i := 1; i <= l.S; i++ {
			lines = append(lines, assign(fmt.Sprintf("t%d", i), l.T(coef, i)))
		}
		for i := 2; i <= l.S; i++ {
			for j := 0; j < i; j++ {
				lines = append(lines, assign(fmt.Sprintf("b%d%d", i, j), l.B(coef, i, j)))
			}
		}
		if l.Pair {
			for j := 0; j < l.S; j++ {
				lines = append(lines, assign(fmt.Sprintf("e%d%d", l.S, j), l.E(coef, j)))
			}
		}
		return lines
	}
}

// NewMultistepPrinter builds the printer for a multi-step layout: a_i,
// c_i, and the implied b_i for every step in order.
func NewMultistepPrinter(l MultistepLayout) Printer {
	return func(coef []float64) []string {
		lines := make([]string, 0, 3*l.K)
		for i := 0; i < l.K; i++ {
			lines = append(lines, assign(fmt.Sprintf("a%d", i), l.A(coef, i)))
			lines = append(lines, assign(fmt.Sprintf("c%d", i), l.C(coef, i)))
			lines = append(lines, assign(fmt.Sprintf("b%d", i), l.B(coef, i)))
		}
		return lines
	}
}

func assign(name string, v float64) string {
	return fmt.Sprintf("%s:%.19e;", name, v)
}
