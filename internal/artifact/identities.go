package artifact

import (
	"fmt"
	"strings"
)

// RKIdentities builds the Maxima order-condition text for an s-stage RK
// scheme at the given accuracy order, in the label's coefficient name
// (normally "b"; "e" for the embedded-pair row, per the call convention
// original_source/rk.c uses: rk_print_maxima(file, nsteps, nsteps, order,
// 'b') for the primary weights and rk_print_maxima(file, nsteps,
// nsteps-1, order-1, 'e') for the pair). ncoefficients is the number of
// terms summed in the row-sum/moment identities (s for the primary row,
// s-1 for the embedded row).
func RKIdentities(nsteps, ncoefficients, order int, label string) []string {
	var lines []string
	add := func(format string) { lines = append(lines, format) }

	var b strings.Builder
	for i := 0; i < ncoefficients; i++ {
		fmt.Fprintf(&b, "%s%d%d+", label, nsteps, i)
	}
	b.WriteString("-1")
	add(b.String())

	b.Reset()
	for i := 1; i < ncoefficients; i++ {
		fmt.Fprintf(&b, "%s%d%d*t%d+", label, nsteps, i, i)
	}
	b.WriteString("-1/2")
	add(b.String())

	if order < 3 {
		return lines
	}

	b.Reset()
	for i := 1; i < ncoefficients; i++ {
		fmt.Fprintf(&b, "%s%d%d*t%d^2+", label, nsteps, i, i)
	}
	b.WriteString("-1/3")
	add(b.String())

	b.Reset()
	for i := 2; i < ncoefficients; i++ {
		fmt.Fprintf(&b, "%s%d%d*(", label, nsteps, i)
		for j := 1; j < i; j++ {
			fmt.Fprintf(&b, "b%d%d*t%d+", i, j, j)
		}
		b.WriteString("0)+")
	}
	b.WriteString("-1/6")
	add(b.String())

	if order < 4 {
		return lines
	}

	b.Reset()
	for i := 1; i < ncoefficients; i++ {
		fmt.Fprintf(&b, "%s%d%d*t%d^3+", label, nsteps, i, i)
	}
	b.WriteString("-1/4")
	add(b.String())

	b.Reset()
	for i := 3; i < ncoefficients; i++ {
		fmt.Fprintf(&b, "%s%d%d*(", label, nsteps, i)
		for j := 2; j < i; j++ {
			fmt.Fprintf(&b, "b%d%d*(", i, j)
			for k := 1; k < j; k++ {
				fmt.Fprintf(&b, "b%d%d*t%d+", j, k, k)
			}
			b.WriteString("0)+")
		}
		b.WriteString("0)+")
	}
	b.WriteString("-1/24")
	add(b.String())

	b.Reset()
	for i := 2; i < ncoefficients; i++ {
		fmt.Fprintf(&b, "%s%d%d*(", label, nsteps, i)
		for j := 1; j < i; j++ {
			fmt.Fprintf(&b, "b%d%d*t%d^2+", i, j, j)
		}
		b.WriteString("0)+")
	}
	b.WriteString("-1/12")
	add(b.String())

	b.Reset()
	for i := 2; i < ncoefficients; i++ {
		fmt.Fprintf(&b, "%s%d%d*t%d*(", label, nsteps, i, i)
		for j := 1; j < i; j++ {
			fmt.Fprintf(&b, "b%d%d*t%d+", i, j, j)
		}
		b.WriteString("0)+")
	}
	b.WriteString("-1/8")
	add(b.String())

	return lines
}

// MultistepIdentities builds the Maxima order-condition text for a
// k-step linear multi-step scheme up to the given order, grounded on
// original_source/write.c's steps_print_maxima.
func MultistepIdentities(nsteps, order int) []string {
	var lines []string

	var b strings.Builder
	b.WriteString("a0")
	for i := 1; i < nsteps; i++ {
		fmt.Fprintf(&b, "+a%d", i)
	}
	b.WriteString("-1b0")
	lines = append(lines, b.String())

	b.Reset()
	b.WriteString("b0")
	for i := 1; i < nsteps; i++ {
		fmt.Fprintf(&b, "+b%d", i)
	}
	for i := 1; i < nsteps; i++ {
		fmt.Fprintf(&b, "-%db0*a%d", i, i)
	}
	b.WriteString("-1b0")
	lines = append(lines, b.String())

	m := 1
	for j := 2; j <= order; j++ {
		b.Reset()
		for i := 1; i < nsteps; i++ {
			l := i
			for k := 1; k < j; k++ {
				l *= i
			}
			fmt.Fprintf(&b, "-%db0*a%d", l, i)
		}
		for i := 1; i < nsteps; i++ {
			l := i * j
			for k := 2; k < j; k++ {
				l *= i
			}
			fmt.Fprintf(&b, "+%db0*b%d", l, i)
		}
		fmt.Fprintf(&b, "+%db0", m)
		lines = append(lines, b.String())
		m = -m
	}

	return lines
}
