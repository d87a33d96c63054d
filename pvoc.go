package olawarp

import (
	"math"
	"math/cmplx"
)

// DefaultTransientCutoff is the magnitude rise ratio above which a bin
// is treated as an onset.
const DefaultTransientCutoff = 0.5

// PhaseVocoder stretches x by scale in the STFT domain. Magnitudes and
// per-hop phase advances are interpolated onto a frame grid scale times
// denser, and the advances are integrated to get the new phases. Bins whose
// magnitude jumps by at least cutoff, measured as (m1-m0)/(m1+m0), take the
// original frame's phase instead so that attacks stay sharp.
//
// The output has ceil(ceil(len(x)/hop)*scale)*hop + n samples.
//
// See Laroche, J., & Dolson, M. (1999). Improved phase vocoder time-scale
// modification of audio.
func PhaseVocoder(x []float64, scale float64, n, hop int, cutoff float64, shape ShapeFunc) []float64 {
	checkFraming(`olawarp.PhaseVocoder`, n, hop)
	checkScale(`olawarp.PhaseVocoder`, scale)

	window := BuildWindow(shape, n)
	mags, phases := vocode(STFT(x, n, hop, window), scale, cutoff)

	spec := make([][]complex128, len(mags))
	for t := range spec {
		spec[t] = make([]complex128, n)
		for w := range spec[t] {
			spec[t][w] = cmplx.Rect(mags[t][w], phases[t][w])
		}
	}

	return ISTFT(spec, n, hop, len(spec)*hop+n, window)
}

// vocode returns the magnitudes and phases of the synthesis frames.
// Every phase is in [0, 2π).
func vocode(spec [][]complex128, scale, cutoff float64) (smags, sphases [][]float64) {
	frames := len(spec)
	synth := int(math.Ceil(float64(frames) * scale))
	if frames == 0 {
		return nil, nil
	}
	nbins := len(spec[0])

	mags := grid(frames, nbins)
	phases := grid(frames, nbins)
	for t, X := range spec {
		for w, c := range X {
			mags[t][w] = cmplx.Abs(c)
			phases[t][w] = cmplx.Phase(c)
		}
	}

	// Phase advance per hop. Frame 0 is measured against silence.
	diffs := grid(frames, nbins)
	for t := range phases {
		for w := range phases[t] {
			prev := 0.
			if t > 0 {
				prev = phases[t-1][w]
			}
			diffs[t][w] = wrap(phases[t][w] - prev)
		}
	}

	smags = grid(synth, nbins)
	sdiffs := grid(synth, nbins)
	sphases = grid(synth, nbins)
	for t := range synth {
		pos := float64(t) / scale
		lerp(smags[t], mags, pos)
		lerp(sdiffs[t], diffs, pos)
	}

	for w := range sdiffs[0] {
		sphases[0][w] = wrap(sdiffs[0][w])
	}
	for t := 1; t < synth; t++ {
		// Frequency-locked estimate: the nearest original frame's phase.
		locked := phases[clamp(0, frames-1, int(math.Round(float64(t)/scale)))]
		for w := range sphases[t] {
			integrated := sphases[t-1][w] + sdiffs[t][w]

			m1, m0 := smags[t][w], smags[t-1][w]
			transient := 0.
			if s := m1 + m0; s > 0 {
				transient = boolfloat((m1-m0)/s >= cutoff)
			}
			sphases[t][w] = wrap(mix(integrated, locked[w], transient))
		}
	}

	return smags, sphases
}

// lerp linearly interpolates the rows of src at fractional row pos into dst.
// Row lookups are clamped to src.
func lerp(dst []float64, src [][]float64, pos float64) {
	last := len(src) - 1
	i0, i1 := math.Floor(pos), math.Ceil(pos)
	d0, d1 := pos-i0, i1-pos
	if i0 == i1 {
		d1 = 1
	}
	r0 := src[min(int(i0), last)]
	r1 := src[min(int(i1), last)]
	for i := range dst {
		dst[i] = r0[i]*(1-d0) + r1[i]*(1-d1)
	}
}
