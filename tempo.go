package olawarp

// BPMScale returns the duration scale factor that turns a track
// at from BPM into one at to BPM.
func BPMScale(from, to float64) float64 {
	if !(from > 0) || !(to > 0) {
		panic(`olawarp.BPMScale: tempo must be positive`)
	}
	return from / to
}
