package models

import (
	"encoding/json"
	"fmt"
	"slices"
)

type Faction string

const (
	FactionCorps   Faction = "corps"
	FactionHashira Faction = "hashira"
	FactionDemon   Faction = "demon"
)

func (f Faction) Valid() bool {
	switch f {
	case FactionCorps, FactionHashira, FactionDemon:
		return true
	}
	return false
}

// Images is the default artwork of a character. An admin override replaces
// the whole value, never individual fields.
type Images struct {
	PosterURL   string   `json:"posterUrl"`
	GalleryURLs []string `json:"galleryUrls"`
}

func (im Images) Clone() Images {
	return Images{PosterURL: im.PosterURL, GalleryURLs: slices.Clone(im.GalleryURLs)}
}

// Character is one entry of the static catalog. Records are built once at
// startup and treated as read-only afterwards.
type Character struct {
	Slug        string    `json:"slug"`
	Name        string    `json:"name"`
	Faction     Faction   `json:"faction"`
	Rank        string    `json:"rank"`
	Technique   Technique `json:"-"`
	PowerReveal []string  `json:"powerReveal,omitempty"`
	Tags        []string  `json:"tags"`
	Description string    `json:"description,omitempty"`
	Theme       Theme     `json:"theme"`
	Images      Images    `json:"images"`
}

// HasAnyTag reports whether the character carries at least one of tags.
func (c Character) HasAnyTag(tags []string) bool {
	for _, t := range tags {
		if slices.Contains(c.Tags, t) {
			return true
		}
	}
	return false
}

type characterJSON struct {
	characterAlias
	Technique *TechniqueWire `json:"technique"`
}

type characterAlias Character

func (c Character) MarshalJSON() ([]byte, error) {
	out := characterJSON{characterAlias: characterAlias(c)}
	if c.Technique != nil {
		w := EncodeTechnique(c.Technique)
		out.Technique = &w
	}
	return json.Marshal(out)
}

func (c *Character) UnmarshalJSON(b []byte) error {
	var in characterJSON
	if err := json.Unmarshal(b, &in); err != nil {
		return err
	}
	*c = Character(in.characterAlias)
	if in.Technique == nil {
		return nil
	}
	t, err := DecodeTechnique(*in.Technique)
	if err != nil {
		return fmt.Errorf("character %s: %w", c.Slug, err)
	}
	c.Technique = t
	return nil
}
