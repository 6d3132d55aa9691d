package particles

import (
	"sort"
	"strings"
)

type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

func (r Range) at(draw float64) float64 {
	return r.Min + draw*(r.Max-r.Min)
}

// Contains reports whether v lies in [Min, Max). A zero-width range only
// contains Min.
func (r Range) Contains(v float64) bool {
	if r.Max == r.Min {
		return v == r.Min
	}
	return v >= r.Min && v < r.Max
}

// Preset holds the output range of every particle field. Top and Left are
// percentages of the container.
type Preset struct {
	Size     Range `json:"size"`
	Top      Range `json:"top"`
	Left     Range `json:"left"`
	Blur     Range `json:"blur"`
	Opacity  Range `json:"opacity"`
	Delay    Range `json:"delay"`
	Duration Range `json:"duration"`
}

var DefaultPreset = Preset{
	Size:     Range{6, 24},
	Top:      Range{0, 100},
	Left:     Range{0, 100},
	Blur:     Range{2, 16},
	Opacity:  Range{0.18, 0.68},
	Delay:    Range{0, 6},
	Duration: Range{6, 40},
}

var presets = map[string]Preset{
	"default": DefaultPreset,
	"cloud": {
		Size:     Range{6, 24},
		Top:      Range{0, 100},
		Left:     Range{0, 100},
		Blur:     Range{4, 14},
		Opacity:  Range{0.18, 0.48},
		Delay:    Range{0, 6},
		Duration: Range{40, 65},
	},
	"flame": {
		Size:     Range{4, 14},
		Top:      Range{40, 100},
		Left:     Range{0, 100},
		Blur:     Range{2, 8},
		Opacity:  Range{0.3, 0.68},
		Delay:    Range{0, 4},
		Duration: Range{6, 14},
	},
	"water": {
		Size:     Range{8, 24},
		Top:      Range{0, 100},
		Left:     Range{0, 100},
		Blur:     Range{6, 16},
		Opacity:  Range{0.18, 0.45},
		Delay:    Range{0, 6},
		Duration: Range{18, 40},
	},
	"mist": {
		Size:     Range{12, 24},
		Top:      Range{0, 100},
		Left:     Range{0, 100},
		Blur:     Range{10, 16},
		Opacity:  Range{0.18, 0.35},
		Delay:    Range{0, 6},
		Duration: Range{24, 40},
	},
	"lightning": {
		Size:     Range{2, 8},
		Top:      Range{0, 100},
		Left:     Range{0, 100},
		Blur:     Range{2, 4},
		Opacity:  Range{0.4, 0.68},
		Delay:    Range{0, 3},
		Duration: Range{6, 10},
	},
	"shadow": {
		Size:     Range{10, 24},
		Top:      Range{0, 100},
		Left:     Range{0, 100},
		Blur:     Range{8, 16},
		Opacity:  Range{0.2, 0.5},
		Delay:    Range{0, 6},
		Duration: Range{20, 40},
	},
	"ice": {
		Size:     Range{4, 12},
		Top:      Range{0, 100},
		Left:     Range{0, 100},
		Blur:     Range{2, 6},
		Opacity:  Range{0.25, 0.6},
		Delay:    Range{0, 6},
		Duration: Range{12, 30},
	},
	"blood": {
		Size:     Range{6, 18},
		Top:      Range{0, 100},
		Left:     Range{0, 100},
		Blur:     Range{2, 10},
		Opacity:  Range{0.25, 0.68},
		Delay:    Range{0, 5},
		Duration: Range{8, 24},
	},
}

// PresetFor looks a preset up by effect name. An empty name is the default.
func PresetFor(name string) (Preset, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return DefaultPreset, true
	}
	p, ok := presets[name]
	return p, ok
}

func PresetNames() []string {
	out := make([]string, 0, len(presets))
	for name := range presets {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
