package catalog

import (
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"slayervault/pkg/models"
)

// Query overlays image overrides onto records, keeps the records that pass
// every active filter of q and orders them by q.Sort.
//
// records must be in canonical dataset order; popularity is derived from it.
// Neither records nor overrides are modified, and the result never aliases
// an override's gallery slice.
func Query(records []models.Character, overrides map[string]models.Images, q QuerySpec) []models.Character {
	q = q.normalized()
	needle := strings.ToLower(q.Text)

	type entry struct {
		rec        models.Character
		popularity int
	}

	kept := make([]entry, 0, len(records))
	for i, rec := range records {
		rec = WithOverride(rec, overrides)
		if !matches(rec, q, needle) {
			continue
		}
		kept = append(kept, entry{rec: rec, popularity: PopularityScore(len(records), i)})
	}

	// collate.Collator keeps scratch buffers, so each call gets its own.
	col := collate.New(language.English)
	byName := func(a, b entry) int {
		return col.CompareString(a.rec.Name, b.rec.Name)
	}
	byPopularity := func(a, b entry) int {
		return b.popularity - a.popularity
	}

	var cmp func(a, b entry) int
	switch q.Sort {
	case SortName:
		cmp = func(a, b entry) int {
			if c := byName(a, b); c != 0 {
				return c
			}
			return byPopularity(a, b)
		}
	case SortRank:
		cmp = func(a, b entry) int {
			if c := RankWeight(a.rec.Rank) - RankWeight(b.rec.Rank); c != 0 {
				return c
			}
			return byName(a, b)
		}
	default:
		cmp = func(a, b entry) int {
			if c := byPopularity(a, b); c != 0 {
				return c
			}
			return byName(a, b)
		}
	}
	slices.SortStableFunc(kept, cmp)

	out := make([]models.Character, len(kept))
	for i, e := range kept {
		out[i] = e.rec
	}
	return out
}

// WithOverride returns rec with its images replaced by the override for its
// slug, if any.
func WithOverride(rec models.Character, overrides map[string]models.Images) models.Character {
	if img, ok := overrides[rec.Slug]; ok {
		rec.Images = img.Clone()
	}
	return rec
}

func matches(rec models.Character, q QuerySpec, needle string) bool {
	return matchFaction(rec, q.Faction) &&
		matchRank(rec, q.Rank) &&
		matchTechnique(rec, q.Technique) &&
		(len(q.Tags) == 0 || rec.HasAnyTag(q.Tags)) &&
		(needle == "" || strings.Contains(strings.ToLower(rec.Name), needle))
}

func matchFaction(rec models.Character, f Faction) bool {
	switch f {
	case FactionCorps:
		return rec.Faction == models.FactionCorps
	case FactionHashira:
		return rec.Faction == models.FactionHashira
	case FactionDemons:
		return rec.Faction == models.FactionDemon
	}
	return true
}

func matchRank(rec models.Character, r RankFilter) bool {
	switch r {
	case RankUpperMoons:
		return strings.Contains(strings.ToLower(rec.Rank), upperMoonPrefix)
	case RankLowerMoons:
		return strings.Contains(strings.ToLower(rec.Rank), lowerMoonPrefix)
	case RankHashira:
		return rec.Rank == "Hashira"
	case RankCorps:
		return rec.Rank == "Corps"
	}
	return true
}

func matchTechnique(rec models.Character, t TechniqueFilter) bool {
	if t == TechniqueAll {
		return true
	}
	if rec.Technique == nil {
		return false
	}
	switch t {
	case TechniqueBreathing:
		return rec.Technique.Kind() == models.KindBreathing
	case TechniqueBloodDemonArt:
		return rec.Technique.Kind() == models.KindBloodDemonArt
	}
	return true
}
