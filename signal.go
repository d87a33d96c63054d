package olawarp

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Signal is a mono sequence of samples at Rate Hz.
type Signal struct {
	Samples []float64
	Rate    int
}

// FromFunc samples f(t), t in seconds, for the given duration.
func FromFunc(rate int, seconds float64, f func(t float64) float64) Signal {
	s := Signal{
		Samples: make([]float64, int(math.Floor(float64(rate)*seconds))),
		Rate:    rate,
	}
	for i := range s.Samples {
		s.Samples[i] = f(float64(i) / float64(rate))
	}
	return s
}

// Len returns the number of samples.
func (s Signal) Len() int { return len(s.Samples) }

// Duration returns the length of s in seconds.
func (s Signal) Duration() float64 {
	if s.Rate == 0 {
		return 0
	}
	return float64(len(s.Samples)) / float64(s.Rate)
}

// Clone returns a copy of s that shares no memory with it.
func (s Signal) Clone() Signal {
	return Signal{Samples: append([]float64(nil), s.Samples...), Rate: s.Rate}
}

// Normalize scales s so that its peak absolute value is 1.
// Silence is left as is.
func (s *Signal) Normalize() {
	if len(s.Samples) == 0 {
		return
	}
	peak := floats.Norm(s.Samples, math.Inf(1))
	if peak == 0 {
		return
	}
	floats.Scale(1/peak, s.Samples)
}

// Trim returns a copy of s cut or zero padded to n samples.
func (s Signal) Trim(n int) Signal {
	out := Signal{Samples: make([]float64, n), Rate: s.Rate}
	copy(out.Samples, s.Samples)
	return out
}

// Merge combines a and b sample by sample with f.
// It panics if their rates or lengths differ.
func Merge(a, b Signal, f func(x, y float64) float64) Signal {
	if a.Rate != b.Rate || len(a.Samples) != len(b.Samples) {
		panic(fmt.Sprintf(`olawarp.Merge: mismatched signals: %d samples at %d Hz, %d samples at %d Hz`,
			len(a.Samples), a.Rate, len(b.Samples), b.Rate))
	}
	out := Signal{Samples: make([]float64, len(a.Samples)), Rate: a.Rate}
	for i := range out.Samples {
		out.Samples[i] = f(a.Samples[i], b.Samples[i])
	}
	return out
}
