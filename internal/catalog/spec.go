package catalog

import "strings"

type Faction string

const (
	FactionAll     Faction = "All"
	FactionCorps   Faction = "Corps"
	FactionHashira Faction = "Hashira"
	FactionDemons  Faction = "Demons"
)

type RankFilter string

const (
	RankAll        RankFilter = "All"
	RankUpperMoons RankFilter = "Upper Moons"
	RankLowerMoons RankFilter = "Lower Moons"
	RankHashira    RankFilter = "Hashira"
	RankCorps      RankFilter = "Corps"
)

type TechniqueFilter string

const (
	TechniqueAll           TechniqueFilter = "All"
	TechniqueBreathing     TechniqueFilter = "Breathing"
	TechniqueBloodDemonArt TechniqueFilter = "Blood Demon Art"
)

type SortKey string

const (
	SortPopularity SortKey = "Popularity"
	SortName       SortKey = "Name"
	SortRank       SortKey = "Rank"
)

// QuerySpec describes one catalog query. The zero value, and any value
// outside the constants above, matches every record and sorts by popularity.
type QuerySpec struct {
	Text      string          `json:"text"`
	Faction   Faction         `json:"faction"`
	Rank      RankFilter      `json:"rank"`
	Technique TechniqueFilter `json:"technique"`
	Tags      []string        `json:"tags"`
	Sort      SortKey         `json:"sort"`
}

func ParseFaction(s string) Faction {
	for _, f := range []Faction{FactionCorps, FactionHashira, FactionDemons} {
		if equalFold(s, string(f)) {
			return f
		}
	}
	return FactionAll
}

func ParseRankFilter(s string) RankFilter {
	for _, r := range []RankFilter{RankUpperMoons, RankLowerMoons, RankHashira, RankCorps} {
		if equalFold(s, string(r)) {
			return r
		}
	}
	return RankAll
}

func ParseTechniqueFilter(s string) TechniqueFilter {
	for _, t := range []TechniqueFilter{TechniqueBreathing, TechniqueBloodDemonArt} {
		if equalFold(s, string(t)) {
			return t
		}
	}
	// accept the wire names too
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "breathing":
		return TechniqueBreathing
	case "blood_demon_art":
		return TechniqueBloodDemonArt
	}
	return TechniqueAll
}

func ParseSortKey(s string) SortKey {
	for _, k := range []SortKey{SortName, SortRank} {
		if equalFold(s, string(k)) {
			return k
		}
	}
	return SortPopularity
}

// normalized maps unknown enum values to their match-everything defaults and
// drops blank tags.
func (q QuerySpec) normalized() QuerySpec {
	q.Faction = ParseFaction(string(q.Faction))
	q.Rank = ParseRankFilter(string(q.Rank))
	q.Technique = ParseTechniqueFilter(string(q.Technique))
	q.Sort = ParseSortKey(string(q.Sort))

	tags := make([]string, 0, len(q.Tags))
	for _, t := range q.Tags {
		if strings.TrimSpace(t) != "" {
			tags = append(tags, t)
		}
	}
	q.Tags = tags
	return q
}

func equalFold(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), b)
}
