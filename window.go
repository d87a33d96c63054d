package olawarp

import "math"

// ShapeFunc maps an offset x from the window center, x in [-n/2, n/2],
// to a weight for a window of size n.
type ShapeFunc func(x float64, n int) float64

// BuildWindow samples shape at every integer step across [-n/2, n/2],
// both ends included, so the result has n+1 weights and is symmetric
// for an even shape. Frames use the first n of them.
func BuildWindow(shape ShapeFunc, n int) []float64 {
	if n <= 0 {
		panic(`olawarp.BuildWindow: window size must be positive`)
	}
	w := make([]float64, n+1)
	half := float64(n) / 2
	for i := range w {
		w[i] = shape(float64(i)-half, n)
	}
	return w
}

// Hann is a squared cosine scaled by 1/n. It is zero at both edges, and any
// two copies overlapping by half sum to the constant 1/n.
func Hann(x float64, n int) float64 {
	// cos² written as (1+cos 2θ)/2, which is exactly zero at the edges.
	return (1 + math.Cos(pipi*(x/float64(n)))) / (2 * float64(n))
}

// Rectangular weighs every sample by 1/n.
func Rectangular(x float64, n int) float64 {
	return 1 / float64(n)
}

// Triangle falls linearly from 1/n at the center to zero at the edges.
func Triangle(x float64, n int) float64 {
	return (1 - math.Abs(2*x/float64(n))) / float64(n)
}

// Blackman is the classic three-term Blackman window, centered and scaled by 1/n.
func Blackman(x float64, n int) float64 {
	p := pipi * (x / float64(n))
	// Clamp roundoff at the edges.
	return max(0, .42+.5*math.Cos(p)+.08*math.Cos(2*p)) / float64(n)
}
