// Package particles generates deterministic particle layouts for the
// ambient visual effects.
//
// The generator is a linear congruential stream passed by value: every call
// to Next returns the drawn value together with the advanced stream, so no
// state survives between Generate calls and replaying a seed replays the
// layout exactly.
package particles

import "unicode/utf16"

const (
	lcgMul = 9301
	lcgInc = 49297
	lcgMod = 233280

	// zeroSeed replaces a string seed whose code units sum to zero.
	zeroSeed = 1
)

type Stream struct {
	state int64
}

func NewStream(seed int64) Stream {
	s := seed % lcgMod
	if s < 0 {
		s += lcgMod
	}
	return Stream{state: s}
}

// Next returns a draw in [0, 1) and the stream positioned after it.
func (s Stream) Next() (float64, Stream) {
	next := (s.state*lcgMul + lcgInc) % lcgMod
	return float64(next) / lcgMod, Stream{state: next}
}

func (s Stream) State() int64 { return s.state }

// SeedFromString sums the UTF-16 code units of seed, the same units a
// browser reports through charCodeAt, so layouts line up with the web client.
func SeedFromString(seed string) int64 {
	var sum int64
	for _, u := range utf16.Encode([]rune(seed)) {
		sum += int64(u)
	}
	if sum == 0 {
		return zeroSeed
	}
	return sum
}
