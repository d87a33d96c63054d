package olawarp

import (
	"sync"

	"gonum.org/v1/gonum/dsp/fourier"
)

// FFT plans are not safe for concurrent use, so every length gets a pool of them.
var plans sync.Map // map[int]*sync.Pool

type transform struct {
	pool *sync.Pool
	fft  *fourier.CmplxFFT
	buf  []complex128
}

func acquire(n int) *transform {
	p, ok := plans.Load(n)
	if !ok {
		p, _ = plans.LoadOrStore(n, &sync.Pool{
			New: func() any {
				return &transform{
					fft: fourier.NewCmplxFFT(n),
					buf: make([]complex128, n),
				}
			},
		})
	}
	pool := p.(*sync.Pool)
	t := pool.Get().(*transform)
	t.pool = pool
	return t
}

func (t *transform) release() {
	t.pool.Put(t)
}

// forward transforms the real frame src into dst, allocating dst if it is nil.
func (t *transform) forward(dst []complex128, src []float64) []complex128 {
	for i, v := range src {
		t.buf[i] = complex(v, 0)
	}
	return t.fft.Coefficients(dst, t.buf)
}

// inverse writes the real part of the unnormalized inverse of src into dst.
func (t *transform) inverse(dst []float64, src []complex128) []float64 {
	if dst == nil {
		dst = make([]float64, len(src))
	}
	t.fft.Sequence(t.buf, src)
	for i, c := range t.buf {
		dst[i] = real(c)
	}
	return dst
}

// Forward returns the full complex spectrum of x, one bin per sample.
// The transform is unnormalized.
func Forward(x []float64) []complex128 {
	if len(x) == 0 {
		return []complex128{}
	}
	t := acquire(len(x))
	defer t.release()
	return t.forward(nil, x)
}

// Inverse returns the real part of the unnormalized inverse transform of X,
// so Inverse(Forward(x)) is x scaled by len(x).
func Inverse(X []complex128) []float64 {
	if len(X) == 0 {
		return []float64{}
	}
	t := acquire(len(X))
	defer t.release()
	return t.inverse(nil, X)
}
