package models

type VFX string

const (
	VFXFlame     VFX = "flame"
	VFXWater     VFX = "water"
	VFXMist      VFX = "mist"
	VFXLightning VFX = "lightning"
	VFXShadow    VFX = "shadow"
	VFXIce       VFX = "ice"
	VFXBlood     VFX = "blood"
)

type Motion string

const (
	MotionCalm       Motion = "calm"
	MotionAggressive Motion = "aggressive"
	MotionChaotic    Motion = "chaotic"
	MotionHeavy      Motion = "heavy"
)

type Theme struct {
	PrimaryGlow   string    `json:"primaryGlow"`
	SecondaryGlow string    `json:"secondaryGlow"`
	Bg            [3]string `json:"bg"`
	VFX           VFX       `json:"vfx"`
	Motion        Motion    `json:"motion"`
}
