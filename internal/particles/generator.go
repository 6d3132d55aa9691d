package particles

import "strconv"

type Particle struct {
	ID       string  `json:"id"`
	Size     float64 `json:"size"`
	Top      float64 `json:"top"`
	Left     float64 `json:"left"`
	Blur     float64 `json:"blur"`
	Opacity  float64 `json:"opacity"`
	Delay    float64 `json:"delay"`
	Duration float64 `json:"duration"`
}

// Generate lays out count particles with DefaultPreset.
func Generate(count int, seed string) []Particle {
	return GenerateWith(count, seed, DefaultPreset)
}

// GenerateWith draws seven values per particle, in field order size, top,
// left, blur, opacity, delay, duration. Changing that order changes every
// layout derived from the same seed.
func GenerateWith(count int, seed string, p Preset) []Particle {
	if count <= 0 {
		return []Particle{}
	}

	s := NewStream(SeedFromString(seed))
	draw := func(r Range) float64 {
		var v float64
		v, s = s.Next()
		return r.at(v)
	}

	out := make([]Particle, count)
	for i := range out {
		pt := Particle{ID: seed + "-" + strconv.Itoa(i)}
		pt.Size = draw(p.Size)
		pt.Top = draw(p.Top)
		pt.Left = draw(p.Left)
		pt.Blur = draw(p.Blur)
		pt.Opacity = draw(p.Opacity)
		pt.Delay = draw(p.Delay)
		pt.Duration = draw(p.Duration)
		out[i] = pt
	}
	return out
}
