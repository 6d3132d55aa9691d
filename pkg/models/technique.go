package models

import (
	"errors"
	"fmt"
)

var ErrUnknownTechnique = errors.New("unknown technique type")

type TechniqueKind string

const (
	KindBreathing     TechniqueKind = "breathing"
	KindBloodDemonArt TechniqueKind = "blood_demon_art"
)

// Technique is a closed sum: Breathing or BloodDemonArt. The unexported
// method keeps other packages from adding variants.
type Technique interface {
	Kind() TechniqueKind
	Title() string
	isTechnique()
}

type Form struct {
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description,omitempty" yaml:"description"`
	Difficulty  string `json:"difficulty,omitempty" yaml:"difficulty"`
}

type Breathing struct {
	Name  string
	Forms []Form
}

func (Breathing) Kind() TechniqueKind { return KindBreathing }
func (b Breathing) Title() string     { return b.Name }
func (Breathing) isTechnique()        {}

type BloodDemonArt struct {
	Name      string
	Abilities []Form
}

func (BloodDemonArt) Kind() TechniqueKind { return KindBloodDemonArt }
func (a BloodDemonArt) Title() string     { return a.Name }
func (BloodDemonArt) isTechnique()        {}

// TechniqueWire is the tagged on-the-wire shape shared by JSON and YAML.
type TechniqueWire struct {
	Type      TechniqueKind `json:"type" yaml:"type"`
	Name      string        `json:"name" yaml:"name"`
	Forms     []Form        `json:"forms,omitempty" yaml:"forms,omitempty"`
	Abilities []Form        `json:"abilities,omitempty" yaml:"abilities,omitempty"`
}

func EncodeTechnique(t Technique) TechniqueWire {
	switch v := t.(type) {
	case Breathing:
		return TechniqueWire{Type: KindBreathing, Name: v.Name, Forms: v.Forms}
	case BloodDemonArt:
		return TechniqueWire{Type: KindBloodDemonArt, Name: v.Name, Abilities: v.Abilities}
	}
	return TechniqueWire{}
}

// DecodeTechnique rejects payloads that populate the other variant's list.
func DecodeTechnique(w TechniqueWire) (Technique, error) {
	switch w.Type {
	case KindBreathing:
		if len(w.Abilities) > 0 {
			return nil, fmt.Errorf("breathing technique %q has abilities", w.Name)
		}
		return Breathing{Name: w.Name, Forms: w.Forms}, nil
	case KindBloodDemonArt:
		if len(w.Forms) > 0 {
			return nil, fmt.Errorf("blood demon art %q has forms", w.Name)
		}
		return BloodDemonArt{Name: w.Name, Abilities: w.Abilities}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownTechnique, w.Type)
	}
}
