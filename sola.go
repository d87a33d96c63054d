package olawarp

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// SOLA stretches x by scale with synchronized overlap-add. It works like OLA,
// but every frame after the first is nudged to the place where it correlates
// best with the audio already written.
//
// See Roucos, S., & Wilgus, A. (1985). High quality time-scale modification
// for speech.
func SOLA(x []float64, scale float64, n, hop int, shape ShapeFunc) []float64 {
	out, _ := SOLAOffsets(x, scale, n, hop, shape)
	return out
}

// SOLAOffsets is SOLA that also reports where each frame was placed.
func SOLAOffsets(x []float64, scale float64, n, hop int, shape ShapeFunc) (out []float64, offsets []int) {
	checkFraming(`olawarp.SOLA`, n, hop)
	checkScale(`olawarp.SOLA`, scale)

	window := BuildWindow(shape, n)
	outLen := synthLen(len(x), n, hop, scale)
	sum := make([]float64, outLen)
	wsum := make([]float64, outLen)
	// norm mirrors sum/wsum over everything placed so far.
	norm := make([]float64, outLen)
	g := make([]float64, n)
	offsets = make([]int, 0, frameCount(len(x), hop))

	last := 0
	for i := 0; i < len(x); i += hop {
		l := min(n, len(x)-i)
		copy(g, x[i:i+l])
		mul(g[:l], window)

		at := int(math.Round(float64(i) * scale))
		if i > 0 {
			// Back off by a tenth of a window before searching.
			at = max(0, at-n/10)
			at = align(g[:l], norm, at, last, n)
		}

		end := overlapAdd(sum, wsum, g[:l], window, at)
		for k := at; k < end; k++ {
			w := wsum[k]
			if w == 0 {
				w = 1
			}
			norm[k] = sum[k] / w
		}
		offsets = append(offsets, at)
		last = at
	}

	return norm, offsets
}

// align searches [at, at+n/5) for the offset where g has the largest dot
// product with norm over the region the previous frame, placed at last,
// still covers. Each later candidate overlaps one sample less.
func align(g, norm []float64, at, last, n int) int {
	overlap := min(last+n-at, len(norm)-at, len(g))
	stop := min(at+n/5, len(norm)-len(g), at+overlap)

	best, area := at, math.Inf(1)
	for j := at; j < stop && overlap > 0; j++ {
		a := -floats.Dot(g[:overlap], norm[j:j+overlap])
		if a < area {
			best, area = j, a
		}
		overlap--
	}
	return best
}
