package olawarp

import (
	"math"
	"math/cmplx"
	"math/rand/v2"
	"sync"
	"testing"

	"github.com/mjibson/go-dsp/fft"
)

func noise(n int, seed uint64) []float64 {
	r := rand.New(rand.NewPCG(seed, seed))
	x := make([]float64, n)
	for i := range x {
		x[i] = r.Float64()*2 - 1
	}
	return x
}

func TestForwardMatchesReference(t *testing.T) {
	for _, n := range []int{1, 8, 100, 1024} {
		x := noise(n, uint64(n))
		got := Forward(x)
		want := fft.FFTReal(x)
		if len(got) != n {
			t.Fatalf("n=%d: len=%d", n, len(got))
		}
		for k := range got {
			if d := cmplx.Abs(got[k] - want[k]); d > 1e-9 {
				t.Fatalf("n=%d bin %d: got %v, want %v", n, k, got[k], want[k])
			}
		}
	}
}

func TestInverseIsUnnormalized(t *testing.T) {
	const n = 512
	x := noise(n, 1)
	y := Inverse(Forward(x))
	for i := range y {
		if d := math.Abs(y[i] - n*x[i]); d > 1e-9 {
			t.Fatalf("y[%d]=%v, want %v", i, y[i], n*x[i])
		}
	}
}

func TestTransformEmpty(t *testing.T) {
	if len(Forward(nil)) != 0 || len(Inverse(nil)) != 0 {
		t.Fatal("empty input must give empty output")
	}
}

func TestTransformConcurrent(t *testing.T) {
	x := noise(256, 2)
	want := Forward(x)

	var wg sync.WaitGroup
	errs := make(chan int, 16)
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 50 {
				got := Forward(x)
				for k := range got {
					if got[k] != want[k] {
						errs <- k
						return
					}
				}
			}
		}()
	}
	wg.Wait()
	close(errs)
	for k := range errs {
		t.Fatalf("bin %d differs between concurrent calls", k)
	}
}
