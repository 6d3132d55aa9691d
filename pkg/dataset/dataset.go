// Package dataset loads the canonical character list.
//
// The embedded characters.yaml is the default source; its order is the
// canonical order that popularity is derived from, so entries must never be
// re-sorted on load.
package dataset

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"slayervault/pkg/models"
)

//go:embed characters.yaml
var embedded []byte

var ErrDuplicateSlug = errors.New("duplicate slug")

type rawTheme struct {
	PrimaryGlow   string   `yaml:"primary_glow"`
	SecondaryGlow string   `yaml:"secondary_glow"`
	Bg            []string `yaml:"bg"`
	VFX           string   `yaml:"vfx"`
	Motion        string   `yaml:"motion"`
}

type rawImages struct {
	PosterURL   string   `yaml:"poster_url"`
	GalleryURLs []string `yaml:"gallery_urls"`
}

type rawCharacter struct {
	Slug        string               `yaml:"slug"`
	Name        string               `yaml:"name"`
	Faction     string               `yaml:"faction"`
	Rank        string               `yaml:"rank"`
	Technique   models.TechniqueWire `yaml:"technique"`
	PowerReveal []string             `yaml:"power_reveal"`
	Tags        []string             `yaml:"tags"`
	Description string               `yaml:"description"`
	Theme       rawTheme             `yaml:"theme"`
	Images      rawImages            `yaml:"images"`
}

// Load returns the embedded dataset.
func Load() ([]models.Character, error) {
	return Parse(embedded)
}

// LoadFile reads a dataset in the same YAML shape as the embedded one.
func LoadFile(path string) ([]models.Character, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dataset %s: %w", path, err)
	}
	return Parse(b)
}

// MustLoad is Load for process start-up; the embedded file is validated by tests.
// LoadPath reads the dataset at path, or the embedded one when path is empty.
func LoadPath(path string) ([]models.Character, error) {
	if path == "" {
		return Load()
	}
	return LoadFile(path)
}

func MustLoad() []models.Character {
	out, err := Load()
	if err != nil {
		panic(fmt.Sprintf("embedded dataset: %v", err))
	}
	return out
}

func Parse(b []byte) ([]models.Character, error) {
	var raw []rawCharacter
	if err := yaml.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("decode dataset: %w", err)
	}

	seen := make(map[string]struct{}, len(raw))
	out := make([]models.Character, 0, len(raw))
	for i, r := range raw {
		c, err := r.toModel()
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		if _, dup := seen[c.Slug]; dup {
			return nil, fmt.Errorf("entry %d: %w: %s", i, ErrDuplicateSlug, c.Slug)
		}
		seen[c.Slug] = struct{}{}
		out = append(out, c)
	}
	return out, nil
}

func (r rawCharacter) toModel() (models.Character, error) {
	slug := strings.TrimSpace(r.Slug)
	if slug == "" {
		return models.Character{}, errors.New("slug required")
	}
	if strings.TrimSpace(r.Name) == "" {
		return models.Character{}, fmt.Errorf("%s: name required", slug)
	}
	faction := models.Faction(strings.ToLower(strings.TrimSpace(r.Faction)))
	if !faction.Valid() {
		return models.Character{}, fmt.Errorf("%s: unknown faction %q", slug, r.Faction)
	}
	tech, err := models.DecodeTechnique(r.Technique)
	if err != nil {
		return models.Character{}, fmt.Errorf("%s: %w", slug, err)
	}

	c := models.Character{
		Slug:        slug,
		Name:        r.Name,
		Faction:     faction,
		Rank:        r.Rank,
		Technique:   tech,
		PowerReveal: r.PowerReveal,
		Tags:        r.Tags,
		Description: r.Description,
		Images: models.Images{
			PosterURL:   r.Images.PosterURL,
			GalleryURLs: r.Images.GalleryURLs,
		},
	}
	if c.Tags == nil {
		c.Tags = []string{}
	}
	if c.Images.GalleryURLs == nil {
		c.Images.GalleryURLs = []string{}
	}
	c.Theme = resolveTheme(c, r.Theme)
	return c, nil
}
