package wavio

import (
	"bytes"
	"encoding/binary"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/neputevshina/olawarp"
	"github.com/youpy/go-wav"
)

func TestWriteReadRoundTrip(t *testing.T) {
	s := olawarp.FromFunc(22050, 0.1, func(t float64) float64 {
		return 0.8 * math.Sin(2*math.Pi*300*t)
	})
	path := filepath.Join(t.TempDir(), "sine.wav")
	if err := Write(path, s, 16); err != nil {
		t.Fatal(err)
	}
	got, err := Read(path)
	if err != nil {
		t.Fatal(err)
	}
	if got.Rate != s.Rate || got.Len() != s.Len() {
		t.Fatalf("got %d samples at %d Hz, want %d at %d", got.Len(), got.Rate, s.Len(), s.Rate)
	}
	for i := range s.Samples {
		if d := math.Abs(got.Samples[i] - s.Samples[i]); d > 1./math.MaxInt16 {
			t.Fatalf("sample %d: got %v, want %v", i, got.Samples[i], s.Samples[i])
		}
	}
}

func TestDecodeSumsChannels(t *testing.T) {
	var buf bytes.Buffer
	wr := wav.NewWriter(&buf, 3, 2, 8000, 16)
	err := wr.WriteSamples([]wav.Sample{
		{Values: [2]int{1000, 2000}},
		{Values: [2]int{-500, 500}},
		{Values: [2]int{math.MaxInt16, math.MaxInt16}},
	})
	if err != nil {
		t.Fatal(err)
	}

	s, err := Decode(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	want := []float64{3000. / math.MaxInt16, 0, 2}
	if s.Rate != 8000 || s.Len() != len(want) {
		t.Fatalf("got %d samples at %d Hz", s.Len(), s.Rate)
	}
	for i := range want {
		if math.Abs(s.Samples[i]-want[i]) > 1e-12 {
			t.Fatalf("got %v, want %v", s.Samples, want)
		}
	}
}

// floatWAV builds a mono 32-bit IEEE float WAV stream.
func floatWAV(rate uint32, samples []float32) []byte {
	var b bytes.Buffer
	le := binary.LittleEndian
	size := uint32(4 * len(samples))
	b.WriteString("RIFF")
	binary.Write(&b, le, 4+8+16+8+size)
	b.WriteString("WAVEfmt ")
	binary.Write(&b, le, uint32(16))
	binary.Write(&b, le, uint16(wav.AudioFormatIEEEFloat))
	binary.Write(&b, le, uint16(1))
	binary.Write(&b, le, rate)
	binary.Write(&b, le, rate*4)
	binary.Write(&b, le, uint16(4))
	binary.Write(&b, le, uint16(32))
	b.WriteString("data")
	binary.Write(&b, le, size)
	binary.Write(&b, le, samples)
	return b.Bytes()
}

func TestDecodeFloat(t *testing.T) {
	want := []float32{0, 0.5, -0.25, 1}
	s, err := Decode(bytes.NewReader(floatWAV(16000, want)))
	if err != nil {
		t.Fatal(err)
	}
	if s.Rate != 16000 || s.Len() != len(want) {
		t.Fatalf("got %d samples at %d Hz", s.Len(), s.Rate)
	}
	for i := range want {
		if math.Abs(s.Samples[i]-float64(want[i])) > 1e-6 {
			t.Fatalf("got %v, want %v", s.Samples, want)
		}
	}
}

func TestEncodeClips(t *testing.T) {
	var buf bytes.Buffer
	s := olawarp.Signal{Samples: []float64{3, -3, 0.5}, Rate: 8000}
	if err := Encode(&buf, s, 16); err != nil {
		t.Fatal(err)
	}
	got, err := Decode(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	if got.Samples[0] != 1 || got.Samples[1] != -1 {
		t.Fatalf("out of range samples not clipped: %v", got.Samples)
	}
}

func TestUnsupported(t *testing.T) {
	dir := t.TempDir()
	s := olawarp.Signal{Samples: []float64{0}, Rate: 8000}

	if _, err := Read(filepath.Join(dir, "track.mp3")); !errors.Is(err, ErrFormat) {
		t.Fatalf("mp3: got %v, want ErrFormat", err)
	}
	if err := Write(filepath.Join(dir, "out.wav"), s, 12); !errors.Is(err, ErrBits) {
		t.Fatalf("12 bits: got %v, want ErrBits", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "out.wav")); !os.IsNotExist(err) {
		t.Fatal("rejected write left a file behind")
	}
	if _, err := Read(filepath.Join(dir, "missing.wav")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("missing file: got %v, want os.ErrNotExist", err)
	}
}

func TestSampleConversion(t *testing.T) {
	for _, tc := range []struct {
		v, bits int
		want    float64
	}{
		{0, 16, 0},
		{math.MaxInt16, 16, 1},
		{math.MinInt16, 16, -1},
		{1 << 22, 24, float64(1<<22) / (1<<23 - 1)},
		{math.MinInt32, 32, -1},
	} {
		if got := IntToFloat(tc.v, tc.bits); math.Abs(got-tc.want) > 1e-15 {
			t.Errorf("IntToFloat(%d, %d) = %v, want %v", tc.v, tc.bits, got, tc.want)
		}
	}

	for _, tc := range []struct {
		f    float64
		bits int
		want int
	}{
		{0, 16, 0},
		{1, 16, math.MaxInt16},
		{-1, 16, -math.MaxInt16},
		{2, 16, math.MaxInt16},
		{-7, 32, -math.MaxInt32},
		{0.5, 16, 16384},
	} {
		if got := FloatToInt(tc.f, tc.bits); got != tc.want {
			t.Errorf("FloatToInt(%v, %d) = %d, want %d", tc.f, tc.bits, got, tc.want)
		}
	}

	if got := Int16To32(-2); got != -2<<16 {
		t.Errorf("Int16To32(-2) = %d", got)
	}
	if got := Int32To16(Int16To32(12345)); got != 12345 {
		t.Errorf("Int32To16 round trip = %d", got)
	}
}
