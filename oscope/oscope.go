// Package oscope renders intermediate signals as grayscale PNG images
// for eyeballing what an engine did.
package oscope

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"math/cmplx"
	"os"

	"golang.org/x/exp/constraints"
)

type number interface {
	constraints.Integer | constraints.Float
}

// Magnitudes below this are drawn as silence.
const floor = 1e-9

// SpectrogramImage draws one column per frame and one row per bin below
// Nyquist, log magnitude as brightness, low frequencies at the bottom.
func SpectrogramImage(frames [][]complex128) *image.Gray {
	if len(frames) == 0 {
		return image.NewGray(image.Rect(0, 0, 0, 0))
	}
	bins := max(1, len(frames[0])/2)
	db := make([][]float64, len(frames))
	for x, X := range frames {
		db[x] = make([]float64, bins)
		for y := range db[x] {
			m := floor
			if y < len(X) {
				m = max(floor, cmplx.Abs(X[y]))
			}
			db[x][bins-1-y] = 20 * math.Log10(m)
		}
	}
	return texture(db)
}

// WaveformImage draws samples as a width by height trace. Every column
// spans the min to max of the samples it covers.
func WaveformImage[T number](samples []T, width, height int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, width, height))
	if len(samples) == 0 || width <= 0 || height <= 0 {
		return img
	}
	lo, hi := extent(samples)
	scale := 0.
	if hi > lo {
		scale = float64(height-1) / float64(hi-lo)
	}
	row := func(v T) int {
		if scale == 0 {
			return height / 2
		}
		return height - 1 - int(math.Round(float64(v-lo)*scale))
	}

	for x := range width {
		a := x * len(samples) / width
		b := max(a+1, (x+1)*len(samples)/width)
		cl, ch := extent(samples[a:b])
		for y := row(ch); y <= row(cl); y++ {
			img.SetGray(x, y, color.Gray{Y: 255})
		}
	}
	return img
}

// Spectrogram writes SpectrogramImage(frames) to path.
func Spectrogram(path string, frames [][]complex128) error {
	if len(frames) == 0 {
		return errors.New("oscope: no frames to draw")
	}
	return save(path, SpectrogramImage(frames))
}

// Waveform writes WaveformImage(samples, width, height) to path.
func Waveform[T number](path string, samples []T, width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("oscope: bad image size %dx%d", width, height)
	}
	return save(path, WaveformImage(samples, width, height))
}

func texture[T number](data [][]T) *image.Gray {
	width, height := len(data), len(data[0])
	lo, hi := data[0][0], data[0][0]
	for _, col := range data {
		l, h := extent(col)
		lo, hi = min(lo, l), max(hi, h)
	}
	scale := 0.
	if hi > lo {
		scale = 255 / float64(hi-lo)
	}

	img := image.NewGray(image.Rect(0, 0, width, height))
	for x := range width {
		for y := range height {
			v := float64(data[x][y]-lo) * scale
			img.SetGray(x, y, color.Gray{Y: uint8(max(0, min(255, v+0.5)))})
		}
	}
	return img
}

func extent[T number](s []T) (lo, hi T) {
	lo, hi = s[0], s[0]
	for _, v := range s[1:] {
		lo, hi = min(lo, v), max(hi, v)
	}
	return lo, hi
}

func save(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("oscope: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("oscope: encoding %s: %w", path, err)
	}
	return f.Close()
}
