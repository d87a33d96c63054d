package olawarp

import (
	"math"

	"golang.org/x/exp/constraints"
)

const pipi = 2 * math.Pi

// wrap maps phase into [0, 2π).
func wrap(phase float64) float64 {
	r := math.Mod(phase, pipi)
	if r < 0 {
		r += pipi
	}
	// Small negative remainders round up to exactly 2π after the shift.
	if r >= pipi {
		r -= pipi
	}
	return r
}

func mul[T constraints.Float](dst, src []T) {
	for i := 0; i < min(len(dst), len(src)); i++ {
		dst[i] *= src[i]
	}
}

func mix[F constraints.Float](a, b, x F) F {
	return a*(1-x) + b*x
}

func clamp[T constraints.Ordered](lo, hi, x T) T {
	return max(lo, min(hi, x))
}

func boolfloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// normalize divides acc by weight in place. Zero weights are replaced with 1,
// so samples no frame touched stay 0.
func normalize(acc, weight []float64) {
	for i := range acc {
		w := weight[i]
		if w == 0 {
			w = 1
		}
		acc[i] /= w
	}
}

// overlapAdd adds the windowed grain g into acc and the window weights into
// weight at offset at. Everything past the end of acc is dropped.
// It returns the end of the written span.
func overlapAdd(acc, weight, g, window []float64, at int) (end int) {
	end = min(len(acc), at+len(g))
	for k := at; k < end; k++ {
		acc[k] += g[k-at]
		weight[k] += window[k-at]
	}
	return end
}

// frameCount is the number of hops needed to cover n samples.
func frameCount(n, hop int) int {
	return (n + hop - 1) / hop
}

func grid(rows, cols int) [][]float64 {
	g := make([][]float64, rows)
	for i := range g {
		g[i] = make([]float64, cols)
	}
	return g
}

func checkFraming(fn string, n, hop int) {
	if n <= 0 {
		panic(fn + `: window size must be positive`)
	}
	if hop <= 0 {
		panic(fn + `: hop length must be positive`)
	}
}

func checkScale(fn string, scale float64) {
	if !(scale > 0) || math.IsInf(scale, 0) {
		panic(fn + `: scale factor must be positive and finite`)
	}
}
