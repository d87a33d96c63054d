package olawarp

import (
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Frames analyzed per goroutine.
const stftChunk = 16

// STFT splits x into frames of n samples every hop samples, weighs each by
// window and returns their spectra. There are ceil(len(x)/hop) frames;
// the ones running past the end of x are zero padded.
func STFT(x []float64, n, hop int, window []float64) [][]complex128 {
	checkFraming(`olawarp.STFT`, n, hop)
	if len(window) < n {
		panic(fmt.Sprintf(`olawarp.STFT: window has %d weights, need %d`, len(window), n))
	}

	nframes := frameCount(len(x), hop)
	frames := make([][]complex128, nframes)
	if nframes == 0 {
		return frames
	}

	// Frames are independent, every goroutine owns a contiguous run of slots.
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for lo := 0; lo < nframes; lo += stftChunk {
		hi := min(nframes, lo+stftChunk)
		g.Go(func() error {
			t := acquire(n)
			defer t.release()
			fr := make([]float64, n)
			for i := lo; i < hi; i++ {
				at := i * hop
				seg := x[at:min(len(x), at+n)]
				clear(fr)
				copy(fr, seg)
				mul(fr[:len(seg)], window)
				frames[i] = t.forward(nil, fr)
			}
			return nil
		})
	}
	g.Wait()

	return frames
}

// ISTFT resynthesizes outLen samples from frames placed every hop samples.
// Each inverse frame is weighed by window again and the sum is divided by
// the accumulated squared window, which undoes both the analysis and the
// synthesis weighting. Samples with zero accumulated weight come out as 0.
func ISTFT(frames [][]complex128, n, hop, outLen int, window []float64) []float64 {
	checkFraming(`olawarp.ISTFT`, n, hop)
	if len(window) < n {
		panic(fmt.Sprintf(`olawarp.ISTFT: window has %d weights, need %d`, len(window), n))
	}

	out := make([]float64, outLen)
	wsum := make([]float64, outLen)

	t := acquire(n)
	defer t.release()
	fr := make([]float64, n)
	inv := 1 / float64(n)

	// Neighbouring frames write to the same samples, this loop must stay serial.
	for i, X := range frames {
		at := i * hop
		if at >= outLen {
			break
		}
		if len(X) != n {
			panic(fmt.Sprintf(`olawarp.ISTFT: frame %d has %d bins, need %d`, i, len(X), n))
		}
		t.inverse(fr, X)
		end := min(outLen, at+n)
		for k := at; k < end; k++ {
			w := window[k-at]
			out[k] += fr[k-at] * inv * w
			wsum[k] += w * w
		}
	}
	normalize(out, wsum)

	return out
}
