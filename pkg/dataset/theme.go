package dataset

import (
	"strings"

	"slayervault/pkg/models"
)

const defaultBackdrop = "#0b1120"

func resolveTheme(c models.Character, raw rawTheme) models.Theme {
	t := models.Theme{
		PrimaryGlow:   raw.PrimaryGlow,
		SecondaryGlow: raw.SecondaryGlow,
		Bg:            [3]string{raw.PrimaryGlow, raw.SecondaryGlow, defaultBackdrop},
		VFX:           models.VFX(raw.VFX),
		Motion:        models.Motion(raw.Motion),
	}
	if len(raw.Bg) == 3 {
		copy(t.Bg[:], raw.Bg)
	}
	if t.VFX == "" {
		t.VFX = ResolveVFX(c)
	}
	if t.Motion == "" {
		t.Motion = ResolveMotion(c.Faction)
	}
	return t
}

// ResolveVFX picks an ambient effect from the technique name and tags.
// The keyword checks run in priority order; water wins over flame for
// characters that carry both.
func ResolveVFX(c models.Character) models.VFX {
	var name string
	if c.Technique != nil {
		name = c.Technique.Title()
	}
	src := strings.ToLower(strings.TrimSpace(name + " " + strings.Join(c.Tags, " ")))

	switch {
	case strings.Contains(src, "water"):
		return models.VFXWater
	case strings.Contains(src, "flame"), strings.Contains(src, "hinokami"), strings.Contains(src, "fire"):
		return models.VFXFlame
	case strings.Contains(src, "thunder"), strings.Contains(src, "lightning"):
		return models.VFXLightning
	case strings.Contains(src, "mist"):
		return models.VFXMist
	case strings.Contains(src, "shadow"), strings.Contains(src, "moon"):
		return models.VFXShadow
	case strings.Contains(src, "ice"):
		return models.VFXIce
	case strings.Contains(src, "blood"):
		return models.VFXBlood
	}
	return models.VFXMist
}

func ResolveMotion(f models.Faction) models.Motion {
	switch f {
	case models.FactionDemon:
		return models.MotionChaotic
	case models.FactionHashira:
		return models.MotionAggressive
	}
	return models.MotionCalm
}
