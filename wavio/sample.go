package wavio

import "math"

// IntToFloat maps a signed PCM sample of the given bit depth to [-1, 1].
func IntToFloat(v, bits int) float64 {
	f := float64(v) / peak(bits)
	return max(-1, min(1, f))
}

// FloatToInt maps f in [-1, 1] to a signed PCM sample of the given bit depth.
// Values outside the range are clipped.
func FloatToInt(f float64, bits int) int {
	p := peak(bits)
	return int(math.Round(max(-p, min(p, f*p))))
}

// Int16To32 widens a 16-bit sample to 32 bits.
func Int16To32(v int16) int32 { return int32(v) << 16 }

// Int32To16 narrows a 32-bit sample to 16 bits, dropping the low half.
func Int32To16(v int32) int16 { return int16(v >> 16) }

func peak(bits int) float64 {
	return float64(int64(1)<<(bits-1) - 1)
}
