package olawarp

import "math"

// synthLen is the output length shared by OLA and SOLA.
func synthLen(n, win, hop int, scale float64) int {
	return frameCount(n, hop)*int(math.Round(float64(hop)*scale)) + win
}

// OLA stretches x by scale with plain overlap-add: frames taken every hop
// samples are moved to round(i*scale) and summed, then every sample is
// divided by the window weight it received.
//
// Nothing aligns the moved frames, so a periodic signal whose period does
// not divide the hop cancels itself partially. See SOLA and PhaseVocoder.
func OLA(x []float64, scale float64, n, hop int, shape ShapeFunc) []float64 {
	checkFraming(`olawarp.OLA`, n, hop)
	checkScale(`olawarp.OLA`, scale)

	window := BuildWindow(shape, n)
	outLen := synthLen(len(x), n, hop, scale)
	out := make([]float64, outLen)
	wsum := make([]float64, outLen)
	g := make([]float64, n)

	for i := 0; i < len(x); i += hop {
		l := min(n, len(x)-i)
		copy(g, x[i:i+l])
		mul(g[:l], window)
		overlapAdd(out, wsum, g[:l], window, int(math.Round(float64(i)*scale)))
	}
	normalize(out, wsum)

	return out
}
