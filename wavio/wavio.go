// Package wavio reads and writes mono signals as audio files.
package wavio

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mewkiz/flac"
	"github.com/neputevshina/olawarp"
	"github.com/youpy/go-wav"
)

var (
	ErrFormat   = errors.New("unsupported format")
	ErrChannels = errors.New("unsupported channel count")
	ErrBits     = errors.New("unsupported bit depth")
)

// Read decodes a .wav or .flac file into a mono signal. Channels are summed.
func Read(path string) (olawarp.Signal, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".wav":
		f, err := os.Open(path)
		if err != nil {
			return olawarp.Signal{}, fmt.Errorf("wavio: %w", err)
		}
		defer f.Close()
		return Decode(f)
	case ".flac":
		return readFLAC(path)
	default:
		return olawarp.Signal{}, fmt.Errorf("wavio: %q: %w", ext, ErrFormat)
	}
}

// Decode reads a PCM or 32-bit float WAV stream into a mono signal. Channels are summed.
func Decode(r interface {
	io.Reader
	io.ReaderAt
}) (olawarp.Signal, error) {
	rd := wav.NewReader(r)
	f, err := rd.Format()
	if err != nil {
		return olawarp.Signal{}, fmt.Errorf("wavio: reading header: %w", err)
	}
	bits := int(f.BitsPerSample)
	switch f.AudioFormat {
	case wav.AudioFormatPCM:
		if err := checkBits(bits, 16, 24, 32); err != nil {
			return olawarp.Signal{}, err
		}
	case wav.AudioFormatIEEEFloat:
		// go-wav hands float samples back as ints scaled by MaxInt32.
		if err := checkBits(bits, 32); err != nil {
			return olawarp.Signal{}, err
		}
	default:
		return olawarp.Signal{}, fmt.Errorf("wavio: audio format %d: %w", f.AudioFormat, ErrFormat)
	}
	// go-wav samples hold at most two channels.
	if f.NumChannels < 1 || f.NumChannels > 2 {
		return olawarp.Signal{}, fmt.Errorf("wavio: %d channels: %w", f.NumChannels, ErrChannels)
	}

	s := olawarp.Signal{Rate: int(f.SampleRate)}
	for {
		samples, err := rd.ReadSamples()
		if err == io.EOF {
			break
		}
		if err != nil {
			return olawarp.Signal{}, fmt.Errorf("wavio: reading samples: %w", err)
		}
		for _, sample := range samples {
			v := 0.
			for ch := range uint(f.NumChannels) {
				v += IntToFloat(rd.IntValue(sample, ch), bits)
			}
			s.Samples = append(s.Samples, v)
		}
	}
	return s, nil
}

func readFLAC(path string) (olawarp.Signal, error) {
	stream, err := flac.ParseFile(path)
	if err != nil {
		return olawarp.Signal{}, fmt.Errorf("wavio: %w", err)
	}
	defer stream.Close()

	bits := int(stream.Info.BitsPerSample)
	if err := checkBits(bits, 16, 24, 32); err != nil {
		return olawarp.Signal{}, err
	}

	s := olawarp.Signal{Rate: int(stream.Info.SampleRate)}
	for {
		frame, err := stream.ParseNext()
		if err == io.EOF {
			break
		}
		if err != nil {
			return olawarp.Signal{}, fmt.Errorf("wavio: reading flac frame: %w", err)
		}
		if len(frame.Subframes) == 0 {
			continue
		}
		at := len(s.Samples)
		s.Samples = append(s.Samples, make([]float64, len(frame.Subframes[0].Samples))...)
		for _, sub := range frame.Subframes {
			for i, v := range sub.Samples {
				s.Samples[at+i] += IntToFloat(int(v), bits)
			}
		}
	}
	return s, nil
}

// Write encodes s as a mono PCM WAV file of the given bit depth, 16 or 32.
func Write(path string, s olawarp.Signal, bits int) error {
	if err := checkBits(bits, 16, 32); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("wavio: %w", err)
	}
	if err := Encode(f, s, bits); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("wavio: %w", err)
	}
	return nil
}

// Encode writes s to w as a mono PCM WAV stream of the given bit depth, 16 or 32.
func Encode(w io.Writer, s olawarp.Signal, bits int) error {
	if err := checkBits(bits, 16, 32); err != nil {
		return err
	}
	samples := make([]wav.Sample, len(s.Samples))
	for i, v := range s.Samples {
		samples[i].Values[0] = FloatToInt(v, bits)
	}
	wr := wav.NewWriter(w, uint32(len(samples)), 1, uint32(s.Rate), uint16(bits))
	if err := wr.WriteSamples(samples); err != nil {
		return fmt.Errorf("wavio: writing samples: %w", err)
	}
	return nil
}

func checkBits(bits int, supported ...int) error {
	for _, b := range supported {
		if bits == b {
			return nil
		}
	}
	return fmt.Errorf("wavio: %d bits: %w", bits, ErrBits)
}
