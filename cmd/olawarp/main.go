// Command olawarp time-stretches an audio file, or a generated sine,
// with one of the OLA, SOLA or phase vocoder engines.
package main

import (
	"errors"
	"flag"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/neputevshina/olawarp"
	"github.com/neputevshina/olawarp/oscope"
	"github.com/neputevshina/olawarp/wavio"
	"github.com/sirupsen/logrus"
)

type engine func(x []float64, scale float64, n, hop int, cutoff float64, shape olawarp.ShapeFunc) []float64

var engines = map[string]engine{
	"ola": func(x []float64, scale float64, n, hop int, _ float64, shape olawarp.ShapeFunc) []float64 {
		return olawarp.OLA(x, scale, n, hop, shape)
	},
	"sola": func(x []float64, scale float64, n, hop int, _ float64, shape olawarp.ShapeFunc) []float64 {
		return olawarp.SOLA(x, scale, n, hop, shape)
	},
	"pv": olawarp.PhaseVocoder,
}

var shapes = map[string]olawarp.ShapeFunc{
	"hann":        olawarp.Hann,
	"rectangular": olawarp.Rectangular,
	"triangle":    olawarp.Triangle,
	"blackman":    olawarp.Blackman,
}

var errUsage = errors.New("usage")

type options struct {
	in, out     string
	algo, shape string
	scale       float64
	window, hop int
	cutoff      float64
	bits        int
	normalize   bool
	trim        bool
	gen         float64
	rate        int
	duration    float64
	spectrogram string
	waveform    string
}

func (o options) validate() error {
	bad := func(format string, a ...any) error {
		return fmt.Errorf("%w: %s", errUsage, fmt.Sprintf(format, a...))
	}
	switch {
	case o.out == "":
		return bad("-out is required")
	case o.in == "" && o.gen == 0:
		return bad("one of -in or -gen is required")
	case o.in != "" && o.gen != 0:
		return bad("-in and -gen are mutually exclusive")
	case engines[o.algo] == nil:
		return bad("unknown algorithm %q", o.algo)
	case shapes[o.shape] == nil:
		return bad("unknown window shape %q", o.shape)
	case !(o.scale > 0) || math.IsInf(o.scale, 0):
		return bad("-scale must be positive, got %v", o.scale)
	case o.window <= 0:
		return bad("-window must be positive, got %d", o.window)
	case o.hop <= 0:
		return bad("-hop must be positive, got %d", o.hop)
	case o.bits != 16 && o.bits != 32:
		return bad("-bits must be 16 or 32, got %d", o.bits)
	case o.gen < 0:
		return bad("-gen must be positive, got %v", o.gen)
	case o.gen > 0 && (o.rate <= 0 || !(o.duration > 0)):
		return bad("-rate and -duration must be positive")
	case strings.ToLower(filepath.Ext(o.out)) != ".wav":
		return bad("-out must be a .wav file")
	}
	return nil
}

func run(o options, log *logrus.Logger) error {
	var s olawarp.Signal
	if o.gen > 0 {
		s = olawarp.FromFunc(o.rate, o.duration, func(t float64) float64 {
			return math.Sin(2 * math.Pi * o.gen * t)
		})
		log.WithFields(logrus.Fields{"hz": o.gen, "rate": s.Rate, "samples": s.Len()}).Info("generated sine")
	} else {
		var err error
		if s, err = wavio.Read(o.in); err != nil {
			return err
		}
		log.WithFields(logrus.Fields{"file": o.in, "rate": s.Rate, "samples": s.Len(), "seconds": s.Duration()}).Info("read input")
	}

	log.WithFields(logrus.Fields{
		"algo":   o.algo,
		"scale":  o.scale,
		"window": o.window,
		"hop":    o.hop,
		"shape":  o.shape,
		"cutoff": o.cutoff,
	}).Info("stretching")

	start := time.Now()
	shape := shapes[o.shape]
	var y []float64
	if o.algo == "sola" && log.IsLevelEnabled(logrus.DebugLevel) {
		var offsets []int
		y, offsets = olawarp.SOLAOffsets(s.Samples, o.scale, o.window, o.hop, shape)
		drift := 0
		for i, at := range offsets {
			drift = max(drift, int(math.Round(float64(i*o.hop)*o.scale))-at)
		}
		log.WithFields(logrus.Fields{"frames": len(offsets), "max_backoff": drift}).Debug("sola placement")
	} else {
		y = engines[o.algo](s.Samples, o.scale, o.window, o.hop, o.cutoff, shape)
	}
	out := olawarp.Signal{Samples: y, Rate: s.Rate}
	log.WithFields(logrus.Fields{"samples": out.Len(), "elapsed": time.Since(start)}).Info("stretched")

	if o.trim {
		out = out.Trim(int(math.Round(float64(s.Len()) * o.scale)))
	}
	if o.normalize {
		out.Normalize()
	}

	if o.spectrogram != "" {
		spec := olawarp.STFT(out.Samples, o.window, o.hop, olawarp.BuildWindow(olawarp.Hann, o.window))
		if err := oscope.Spectrogram(o.spectrogram, spec); err != nil {
			return err
		}
		log.WithField("file", o.spectrogram).Debug("wrote spectrogram")
	}
	if o.waveform != "" {
		if err := oscope.Waveform(o.waveform, out.Samples, 2048, 256); err != nil {
			return err
		}
		log.WithField("file", o.waveform).Debug("wrote waveform")
	}

	if err := wavio.Write(o.out, out, o.bits); err != nil {
		return err
	}
	log.WithFields(logrus.Fields{"file": o.out, "samples": out.Len(), "bits": o.bits}).Info("wrote output")
	return nil
}

func main() {
	var o options
	flag.StringVar(&o.in, "in", "", "input `file`, .wav or .flac")
	flag.StringVar(&o.out, "out", "", "output .wav `file`")
	flag.StringVar(&o.algo, "algo", "pv", "stretching algorithm: ola, sola or pv")
	flag.StringVar(&o.shape, "shape", "hann", "window shape: hann, rectangular, triangle or blackman")
	flag.Float64Var(&o.scale, "scale", 2, "duration scale `factor`")
	flag.IntVar(&o.window, "window", 1024, "window size in `samples`")
	flag.IntVar(&o.hop, "hop", 256, "analysis hop in `samples`")
	flag.Float64Var(&o.cutoff, "cutoff", olawarp.DefaultTransientCutoff, "phase vocoder transient `ratio`")
	flag.IntVar(&o.bits, "bits", 16, "output bit depth, 16 or 32")
	flag.BoolVar(&o.normalize, "normalize", false, "scale the output peak to full range")
	flag.BoolVar(&o.trim, "trim", false, "cut the output to the input length times scale")
	flag.Float64Var(&o.gen, "gen", 0, "stretch a generated sine of this `frequency` instead of -in")
	flag.IntVar(&o.rate, "rate", 44100, "sample `rate` of the generated sine")
	flag.Float64Var(&o.duration, "duration", 1, "length of the generated sine in `seconds`")
	flag.StringVar(&o.spectrogram, "spectrogram", "", "also draw the output spectrogram to this PNG `file`")
	flag.StringVar(&o.waveform, "waveform", "", "also draw the output waveform to this PNG `file`")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	if err := o.validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		flag.Usage()
		os.Exit(2)
	}

	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if *verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	if err := run(o, log); err != nil {
		log.WithError(err).Fatal("olawarp failed")
	}
}
